// file: internals/features/quizzes/attempts/service/scoring.go
package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	questionModel "learnhub_backend/internals/features/quizzes/questions/model"
	quizModel "learnhub_backend/internals/features/quizzes/quizzes/model"
)

/* =========================================================
   Scoring

   All-or-nothing per question: full points when the submitted
   answer set equals the correct set, zero otherwise. No
   partial credit, no ordering sensitivity. Comparison is on
   trimmed, case-folded strings.
========================================================= */

// AnswerKey is the grading material for one question on a quiz.
type AnswerKey struct {
	Points  int
	Answers []string
}

// ComputeMaxScore sums point values over a quiz's question links.
func ComputeMaxScore(links []quizModel.QuizQuestionModel) int {
	total := 0
	for _, l := range links {
		total += l.QuizQuestionPoints
	}
	return total
}

// BuildAnswerKey loads the correct answers for every question linked to the
// quiz and pairs them with the per-link point values. Links pointing at
// questions that no longer exist contribute nothing.
func BuildAnswerKey(ctx context.Context, db *gorm.DB, links []quizModel.QuizQuestionModel) (map[uuid.UUID]AnswerKey, error) {
	if len(links) == 0 {
		return map[uuid.UUID]AnswerKey{}, nil
	}

	ids := make([]uuid.UUID, 0, len(links))
	points := make(map[uuid.UUID]int, len(links))
	for _, l := range links {
		ids = append(ids, l.QuizQuestionQuestionID)
		points[l.QuizQuestionQuestionID] = l.QuizQuestionPoints
	}

	var questions []questionModel.QuestionModel
	if err := db.WithContext(ctx).
		Where("question_id IN ?", ids).
		Find(&questions).Error; err != nil {
		return nil, err
	}

	key := make(map[uuid.UUID]AnswerKey, len(questions))
	for _, q := range questions {
		key[q.QuestionID] = AnswerKey{
			Points:  points[q.QuestionID],
			Answers: q.Answers(),
		}
	}
	return key, nil
}

// ComputeEarnedScore grades a submission against the answer key. Questions
// the taker skipped earn zero; submissions for questions not on the quiz are
// ignored.
func ComputeEarnedScore(submitted map[uuid.UUID][]string, key map[uuid.UUID]AnswerKey) int {
	total := 0
	for questionID, k := range key {
		given, ok := submitted[questionID]
		if !ok {
			continue
		}
		if answerSetsEqual(given, k.Answers) {
			total += k.Points
		}
	}
	return total
}

// answerSetsEqual compares the two answer lists as sets of normalized
// strings. Duplicates collapse, order is irrelevant.
func answerSetsEqual(given, correct []string) bool {
	g := normalizeSet(given)
	c := normalizeSet(correct)
	if len(g) != len(c) {
		return false
	}
	for v := range c {
		if _, ok := g[v]; !ok {
			return false
		}
	}
	return true
}

func normalizeSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[strings.ToLower(strings.TrimSpace(v))] = struct{}{}
	}
	return set
}
