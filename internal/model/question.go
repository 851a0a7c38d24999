package model

import "time"

const (
	QuestionTypeMultipleChoice = "multiple_choice"
	QuestionTypeOpenEnded      = "open_ended"
)

type Question struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	ExamID       uint      `json:"exam_id" gorm:"not null;index"`
	Text         string    `json:"text" gorm:"type:text;not null"`
	QuestionType string    `json:"question_type" gorm:"not null"` // "multiple_choice" or "open_ended"
	Points       float64   `json:"points" gorm:"not null"`
	Order        int       `json:"order"`
	Options      []Option  `json:"options,omitempty" gorm:"foreignKey:QuestionID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// CorrectOption returns the option flagged correct, or nil for open-ended
// questions and multiple-choice questions missing a correct flag.
func (q *Question) CorrectOption() *Option {
	for i := range q.Options {
		if q.Options[i].IsCorrect {
			return &q.Options[i]
		}
	}
	return nil
}
