package dto

import "time"

type AnswerResponse struct {
	ID               uint             `json:"id"`
	ResultID         uint             `json:"result_id"`
	QuestionID       uint             `json:"question_id"`
	Question         QuestionResponse `json:"question"`
	SelectedOptionID *uint            `json:"selected_option_id,omitempty"`
	TextResponse     *string          `json:"text_response,omitempty"`
	PointsAwarded    *float64         `json:"points_awarded,omitempty"`
}

type ResultResponse struct {
	ID          uint      `json:"id"`
	CandidateID uint      `json:"candidate_id"`
	ExamID      uint      `json:"exam_id"`
	Score       *float64  `json:"score,omitempty"`
	Feedback    *string   `json:"feedback,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

type ResultDetailResponse struct {
	ResultResponse
	Answers []AnswerResponse `json:"answers"`
}

type EvaluationEntry struct {
	AnswerID      uint     `json:"answer_id" binding:"required"`
	PointsAwarded *float64 `json:"points_awarded" binding:"required"`
}

type EvaluateRequest struct {
	Evaluations []EvaluationEntry `json:"evaluations" binding:"dive"`
	Feedback    *string           `json:"feedback"`
}

type EvaluateResponse struct {
	Message string               `json:"message"`
	Result  ResultDetailResponse `json:"result"`
}

type ExportResponse struct {
	Message string               `json:"message"`
	Result  ResultDetailResponse `json:"result"`
}
