package service

import "github.com/lshigami/examadmin/internal/model"

// scoreMultipleChoice awards the question's full points when the selected
// option is the one flagged correct, zero otherwise.
func scoreMultipleChoice(q *model.Question, selectedOptionID *uint) float64 {
	correct := q.CorrectOption()
	if correct == nil || selectedOptionID == nil {
		return 0
	}
	if *selectedOptionID == correct.ID {
		return q.Points
	}
	return 0
}

// applyAutoScores recomputes points_awarded for every multiple-choice answer
// and returns the aggregate of all non-nil points across the slice. Open-ended
// answers keep whatever manual evaluation set; unevaluated ones contribute
// nothing. Calling it repeatedly without answer changes yields the same total.
// Answers must carry their Question (with Options) loaded.
func applyAutoScores(answers []model.Answer) float64 {
	total := 0.0
	for i := range answers {
		a := &answers[i]
		if a.Question.QuestionType == model.QuestionTypeMultipleChoice {
			points := scoreMultipleChoice(&a.Question, a.SelectedOptionID)
			a.PointsAwarded = &points
		}
		if a.PointsAwarded != nil {
			total += *a.PointsAwarded
		}
	}
	return total
}
