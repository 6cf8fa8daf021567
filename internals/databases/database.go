package database

import (
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"learnhub_backend/internals/configs"
	classroomModel "learnhub_backend/internals/features/classrooms/classrooms/model"
	lessonModel "learnhub_backend/internals/features/classrooms/lessons/model"
	sectionModel "learnhub_backend/internals/features/classrooms/sections/model"
	communityModel "learnhub_backend/internals/features/communities/communities/model"
	memberModel "learnhub_backend/internals/features/communities/members/model"
	commentModel "learnhub_backend/internals/features/forums/comments/model"
	postModel "learnhub_backend/internals/features/forums/posts/model"
	attemptModel "learnhub_backend/internals/features/quizzes/attempts/model"
	questionModel "learnhub_backend/internals/features/quizzes/questions/model"
	quizModel "learnhub_backend/internals/features/quizzes/quizzes/model"
)

var DB *gorm.DB

func ConnectDB() {
	log.Println("🔌 Connecting to PostgreSQL...")

	sslmode := getenv("DB_SSLMODE", "require")
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&application_name=learnhub&options=-c statement_timeout=3000",
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_HOST"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_NAME"),
		sslmode,
	)

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true, // plays nice with PgBouncer transaction pooling
	}), &gorm.Config{
		Logger:         configs.NewGormLogger(),
		TranslateError: true, // duplicate-key detection relies on gorm.ErrDuplicatedKey
	})
	if err != nil {
		log.Fatalf("❌ DB connection failed: %v", err)
	}
	DB = db
	log.Println("✅ DB connected.")
}

func TunePool() {
	sqlDB, err := DB.DB()
	if err != nil {
		log.Printf("pool tune err: %v", err)
		return
	}
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxIdleTime(60 * time.Second)
	sqlDB.SetConnMaxLifetime(10 * time.Minute)
}

// Migrate keeps the schema in sync with the registered models. The unique
// indexes declared on membership and attempt models are part of the
// correctness story (single attempt per user/quiz), so migration is not
// optional in any environment.
func Migrate() {
	if err := DB.AutoMigrate(
		&communityModel.CommunityModel{},
		&memberModel.CommunityMemberModel{},
		&classroomModel.ClassroomModel{},
		&sectionModel.SectionModel{},
		&lessonModel.LessonModel{},
		&questionModel.QuestionModel{},
		&quizModel.QuizModel{},
		&quizModel.QuizQuestionModel{},
		&attemptModel.QuizAttemptModel{},
		&postModel.PostModel{},
		&commentModel.CommentModel{},
	); err != nil {
		log.Fatalf("❌ migration failed: %v", err)
	}
	log.Println("✅ Schema migrated.")
}

func WarmUpQueries() {
	go func() {
		time.Sleep(500 * time.Millisecond)
		if err := ping(); err != nil {
			log.Printf("warm-up ping err: %v", err)
		}
	}()
}

func ping() error {
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
