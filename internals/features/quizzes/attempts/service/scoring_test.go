package service

import (
	"testing"

	"github.com/google/uuid"

	quizModel "learnhub_backend/internals/features/quizzes/quizzes/model"
)

func TestComputeMaxScore(t *testing.T) {
	links := []quizModel.QuizQuestionModel{
		{QuizQuestionPoints: 5},
		{QuizQuestionPoints: 10},
		{QuizQuestionPoints: 3},
	}
	if got := ComputeMaxScore(links); got != 18 {
		t.Fatalf("ComputeMaxScore = %d, want 18", got)
	}
	if got := ComputeMaxScore(nil); got != 0 {
		t.Fatalf("ComputeMaxScore(nil) = %d, want 0", got)
	}
}

func TestAnswerSetsEqual(t *testing.T) {
	cases := []struct {
		name    string
		given   []string
		correct []string
		want    bool
	}{
		{"exact", []string{"a", "b"}, []string{"a", "b"}, true},
		{"order ignored", []string{"b", "a"}, []string{"a", "b"}, true},
		{"case folded", []string{"Paris"}, []string{"paris"}, true},
		{"whitespace trimmed", []string{"  paris "}, []string{"paris"}, true},
		{"duplicates collapse", []string{"a", "a", "b"}, []string{"a", "b"}, true},
		{"missing answer", []string{"a"}, []string{"a", "b"}, false},
		{"extra answer", []string{"a", "b", "c"}, []string{"a", "b"}, false},
		{"wrong answer", []string{"c"}, []string{"a"}, false},
		{"empty vs nonempty", nil, []string{"a"}, false},
	}
	for _, tc := range cases {
		if got := answerSetsEqual(tc.given, tc.correct); got != tc.want {
			t.Errorf("%s: answerSetsEqual(%v, %v) = %v, want %v", tc.name, tc.given, tc.correct, got, tc.want)
		}
	}
}

func TestComputeEarnedScore(t *testing.T) {
	q1 := uuid.New()
	q2 := uuid.New()
	q3 := uuid.New()

	key := map[uuid.UUID]AnswerKey{
		q1: {Points: 5, Answers: []string{"a"}},
		q2: {Points: 10, Answers: []string{"x", "y"}},
		q3: {Points: 3, Answers: []string{"true"}},
	}

	// All-or-nothing: q2 half right earns zero, skipped q3 earns zero.
	submitted := map[uuid.UUID][]string{
		q1: {"A"},
		q2: {"x"},
	}
	if got := ComputeEarnedScore(submitted, key); got != 5 {
		t.Fatalf("ComputeEarnedScore = %d, want 5", got)
	}

	// Answers for questions not on the quiz are ignored.
	submitted[uuid.New()] = []string{"whatever"}
	if got := ComputeEarnedScore(submitted, key); got != 5 {
		t.Fatalf("ComputeEarnedScore with stray answer = %d, want 5", got)
	}

	// Full marks.
	full := map[uuid.UUID][]string{
		q1: {"a"},
		q2: {"y", "x"},
		q3: {"TRUE"},
	}
	if got := ComputeEarnedScore(full, key); got != 18 {
		t.Fatalf("ComputeEarnedScore full = %d, want 18", got)
	}

	// Nothing submitted.
	if got := ComputeEarnedScore(map[uuid.UUID][]string{}, key); got != 0 {
		t.Fatalf("ComputeEarnedScore empty = %d, want 0", got)
	}
}
