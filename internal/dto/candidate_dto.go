package dto

import "time"

type CandidateCreateRequest struct {
	Name   string `json:"name" binding:"required"`
	Email  string `json:"email" binding:"required,email"`
	ExamID uint   `json:"exam_id" binding:"required"`
}

// CandidateUpdateRequest carries partial updates. Re-assigning ExamID is
// allowed and re-validates ownership of the target exam.
type CandidateUpdateRequest struct {
	Name   *string `json:"name"`
	Email  *string `json:"email" binding:"omitempty,email"`
	ExamID *uint   `json:"exam_id"`
}

type CandidateResponse struct {
	ID              uint       `json:"id"`
	Name            string     `json:"name"`
	Email           string     `json:"email"`
	UniqueLink      string     `json:"unique_link"`
	IsTestCompleted bool       `json:"is_test_completed"`
	TestStartTime   *time.Time `json:"test_start_time,omitempty"`
	TestEndTime     *time.Time `json:"test_end_time,omitempty"`
	InvitationSent  bool       `json:"invitation_sent"`
	LastInvitedAt   *time.Time `json:"last_invited_at,omitempty"`
	ExamID          uint       `json:"exam_id"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

type CandidateMutationResponse struct {
	Message   string            `json:"message"`
	Candidate CandidateResponse `json:"candidate"`
}

type InvitationResponse struct {
	Success    bool              `json:"success"`
	Message    string            `json:"message"`
	Candidate  CandidateResponse `json:"candidate"`
	AccessLink string            `json:"access_link"`
}
