package model

import "time"

// Answer holds one candidate response to one question. The composite unique
// index guards against the same question being answered twice on a result.
type Answer struct {
	ID               uint      `gorm:"primarykey" json:"id"`
	ResultID         uint      `json:"result_id" gorm:"not null;uniqueIndex:idx_answers_result_question"`
	QuestionID       uint      `json:"question_id" gorm:"not null;uniqueIndex:idx_answers_result_question"`
	Question         Question  `json:"question,omitempty" gorm:"foreignKey:QuestionID"`
	SelectedOptionID *uint     `json:"selected_option_id,omitempty"`
	TextResponse     *string   `json:"text_response,omitempty" gorm:"type:text"`
	PointsAwarded    *float64  `json:"points_awarded,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}
