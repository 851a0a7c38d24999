package dto

import "time"

type ExamCreateRequest struct {
	Title           string   `json:"title" binding:"required"`
	Description     string   `json:"description"`
	DurationMinutes int      `json:"duration_minutes" binding:"required,gt=0"`
	PassingScore    *float64 `json:"passing_score" binding:"required"`
	IsRandomized    bool     `json:"is_randomized"`
}

// ExamUpdateRequest carries partial updates; nil fields are left untouched.
type ExamUpdateRequest struct {
	Title           *string  `json:"title"`
	Description     *string  `json:"description"`
	DurationMinutes *int     `json:"duration_minutes"`
	PassingScore    *float64 `json:"passing_score"`
	IsRandomized    *bool    `json:"is_randomized"`
	IsActive        *bool    `json:"is_active"`
}

type ExamResponse struct {
	ID              uint      `json:"id"`
	Title           string    `json:"title"`
	Description     string    `json:"description,omitempty"`
	DurationMinutes int       `json:"duration_minutes"`
	PassingScore    float64   `json:"passing_score"`
	IsRandomized    bool      `json:"is_randomized"`
	IsActive        bool      `json:"is_active"`
	CreatorID       uint      `json:"creator_id"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type ExamMutationResponse struct {
	Message string       `json:"message"`
	Exam    ExamResponse `json:"exam"`
}
