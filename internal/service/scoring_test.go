package service

import (
	"testing"

	"github.com/lshigami/examadmin/internal/model"
)

func uintPtr(v uint) *uint        { return &v }
func floatPtr(v float64) *float64 { return &v }
func strPtr(v string) *string     { return &v }

func multipleChoiceQuestion(id uint, points float64, correctOptionID uint, optionIDs ...uint) model.Question {
	q := model.Question{
		ID:           id,
		QuestionType: model.QuestionTypeMultipleChoice,
		Points:       points,
	}
	for _, oid := range optionIDs {
		q.Options = append(q.Options, model.Option{ID: oid, QuestionID: id, IsCorrect: oid == correctOptionID})
	}
	return q
}

func TestScoreMultipleChoice(t *testing.T) {
	q := multipleChoiceQuestion(1, 10, 11, 11, 12, 13)

	if got := scoreMultipleChoice(&q, uintPtr(11)); got != 10 {
		t.Errorf("correct option: got %v, want 10", got)
	}
	if got := scoreMultipleChoice(&q, uintPtr(12)); got != 0 {
		t.Errorf("wrong option: got %v, want 0", got)
	}
	if got := scoreMultipleChoice(&q, nil); got != 0 {
		t.Errorf("no selection: got %v, want 0", got)
	}

	noCorrect := model.Question{
		ID:           2,
		QuestionType: model.QuestionTypeMultipleChoice,
		Points:       5,
		Options:      []model.Option{{ID: 21}, {ID: 22}},
	}
	if got := scoreMultipleChoice(&noCorrect, uintPtr(21)); got != 0 {
		t.Errorf("question without a correct option must score 0, got %v", got)
	}
}

func TestApplyAutoScoresFullMarks(t *testing.T) {
	q1 := multipleChoiceQuestion(1, 10, 11, 11, 12)
	q2 := multipleChoiceQuestion(2, 7, 22, 21, 22)
	answers := []model.Answer{
		{QuestionID: 1, Question: q1, SelectedOptionID: uintPtr(11)},
		{QuestionID: 2, Question: q2, SelectedOptionID: uintPtr(22)},
	}

	if total := applyAutoScores(answers); total != 17 {
		t.Errorf("all-correct submission: got %v, want 17", total)
	}
}

// The worked example: one multiple-choice question worth 10 answered
// correctly plus one open-ended question worth 5. Auto-scoring yields 10;
// after a manual award of 3 the recomputed total is 13.
func TestApplyAutoScoresMixedAndManualAward(t *testing.T) {
	mc := multipleChoiceQuestion(1, 10, 11, 11, 12, 13)
	open := model.Question{ID: 2, QuestionType: model.QuestionTypeOpenEnded, Points: 5}

	answers := []model.Answer{
		{QuestionID: 1, Question: mc, SelectedOptionID: uintPtr(11)},
		{QuestionID: 2, Question: open, TextResponse: strPtr("my essay")},
	}

	if total := applyAutoScores(answers); total != 10 {
		t.Errorf("before evaluation: got %v, want 10", total)
	}
	if answers[1].PointsAwarded != nil {
		t.Error("open-ended answer must stay unevaluated until manual review")
	}

	answers[1].PointsAwarded = floatPtr(3)
	if total := applyAutoScores(answers); total != 13 {
		t.Errorf("after evaluation: got %v, want 13", total)
	}
}

func TestApplyAutoScoresIdempotent(t *testing.T) {
	q := multipleChoiceQuestion(1, 10, 11, 11, 12)
	answers := []model.Answer{
		{QuestionID: 1, Question: q, SelectedOptionID: uintPtr(12)},
	}

	first := applyAutoScores(answers)
	for i := 0; i < 5; i++ {
		if total := applyAutoScores(answers); total != first {
			t.Fatalf("recomputation %d changed the total: %v != %v", i, total, first)
		}
	}
	if first != 0 {
		t.Errorf("wrong answer must score 0, got %v", first)
	}
}
