package dto

import "time"

type OptionCreateRequest struct {
	Text      string `json:"text" binding:"required"`
	IsCorrect bool   `json:"is_correct"`
	Order     int    `json:"order"`
}

type QuestionCreateRequest struct {
	ExamID       uint                  `json:"exam_id" binding:"required"`
	Text         string                `json:"text" binding:"required"`
	QuestionType string                `json:"question_type" binding:"required,oneof=multiple_choice open_ended"`
	Points       float64               `json:"points" binding:"required,gt=0"`
	Order        int                   `json:"order"`
	Options      []OptionCreateRequest `json:"options" binding:"dive"`
}

// QuestionUpdateRequest carries partial updates. A non-nil Options slice
// replaces the question's options wholesale.
type QuestionUpdateRequest struct {
	Text         *string                `json:"text"`
	QuestionType *string                `json:"question_type" binding:"omitempty,oneof=multiple_choice open_ended"`
	Points       *float64               `json:"points" binding:"omitempty,gt=0"`
	Order        *int                   `json:"order"`
	Options      *[]OptionCreateRequest `json:"options" binding:"omitempty,dive"`
}

// OptionResponse is the creator-side view and includes the correct flag.
type OptionResponse struct {
	ID         uint   `json:"id"`
	QuestionID uint   `json:"question_id"`
	Text       string `json:"text"`
	IsCorrect  bool   `json:"is_correct"`
	Order      int    `json:"order"`
}

type QuestionResponse struct {
	ID           uint             `json:"id"`
	ExamID       uint             `json:"exam_id"`
	Text         string           `json:"text"`
	QuestionType string           `json:"question_type"`
	Points       float64          `json:"points"`
	Order        int              `json:"order"`
	Options      []OptionResponse `json:"options,omitempty"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

type QuestionMutationResponse struct {
	Message  string           `json:"message"`
	Question QuestionResponse `json:"question"`
}
