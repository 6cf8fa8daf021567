// file: internals/route/details/quiz_routes.go
package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	attemptController "learnhub_backend/internals/features/quizzes/attempts/controller"
	questionController "learnhub_backend/internals/features/quizzes/questions/controller"
	quizController "learnhub_backend/internals/features/quizzes/quizzes/controller"
)

func QuizRoutes(private fiber.Router, public fiber.Router, db *gorm.DB) {
	quizzes := quizController.NewQuizController(db)
	quizUser := quizController.NewQuizUserController(db)
	questions := questionController.NewQuestionController(db)
	attempts := attemptController.NewQuizAttemptController(db)

	// Question bank (authoring; the answer key rides along, so even reads
	// stay behind auth)
	private.Post("/questions", questions.CreateQuestion)
	private.Get("/questions/:questionId", questions.GetQuestionByID)
	private.Patch("/questions/:questionId", questions.PatchQuestion)
	private.Delete("/questions/:questionId", questions.DeleteQuestion)
	private.Get("/classrooms/:classroomId/questions", questions.GetQuestionsByClassroom)

	// Quiz authoring
	private.Post("/quizzes", quizzes.CreateQuiz)
	private.Patch("/quizzes/:quizId", quizzes.PatchQuiz)
	private.Delete("/quizzes/:quizId", quizzes.DeleteQuiz)

	// Quiz reads. The list routes go first so the :quizId param route does
	// not swallow them.
	private.Get("/quizzes/classroom/:classroomId", quizzes.GetQuizzesByClassroom)
	public.Get("/quizzes/community/:communityId", quizzes.GetQuizzesByCommunity)
	private.Get("/quizzes/:quizId", quizzes.GetQuizByID)

	// Taking a quiz
	private.Get("/quizzes/:quizId/quiz-questions", quizUser.GetQuizQuestions)
	private.Post("/quizzes/:quizId/start", attempts.StartAttempt)
	private.Post("/quizzes/:quizId/submit", attempts.EndAttempt)
	private.Post("/quizzes/:quizId/submit-quiz", attempts.SubmitQuiz)
	private.Get("/quizzes/:quizId/attempt", attempts.GetMyAttempt)
}
