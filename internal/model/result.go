package model

import "time"

type Result struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	CandidateID uint      `json:"candidate_id" gorm:"not null;uniqueIndex"`
	ExamID      uint      `json:"exam_id" gorm:"not null;index"`
	Score       *float64  `json:"score,omitempty"`
	Feedback    *string   `json:"feedback,omitempty" gorm:"type:text"`
	Answers     []Answer  `json:"answers,omitempty" gorm:"foreignKey:ResultID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
