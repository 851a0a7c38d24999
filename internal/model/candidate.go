package model

import "time"

type Candidate struct {
	ID              uint       `gorm:"primarykey" json:"id"`
	Name            string     `json:"name" gorm:"not null"`
	Email           string     `json:"email" gorm:"not null"`
	UniqueLink      string     `json:"unique_link" gorm:"not null;uniqueIndex"`
	IsTestCompleted bool       `json:"is_test_completed" gorm:"default:false"`
	TestStartTime   *time.Time `json:"test_start_time,omitempty"`
	TestEndTime     *time.Time `json:"test_end_time,omitempty"`
	InvitationSent  bool       `json:"invitation_sent" gorm:"default:false"`
	LastInvitedAt   *time.Time `json:"last_invited_at,omitempty"`
	ExamID          uint       `json:"exam_id" gorm:"not null;index"`
	Result          *Result    `json:"result,omitempty" gorm:"foreignKey:CandidateID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}
