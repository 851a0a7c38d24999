package model

import "time"

type Exam struct {
	ID              uint        `gorm:"primarykey" json:"id"`
	Title           string      `json:"title" gorm:"not null"`
	Description     string      `json:"description,omitempty" gorm:"type:text"`
	DurationMinutes int         `json:"duration_minutes" gorm:"not null"`
	PassingScore    float64     `json:"passing_score" gorm:"not null"`
	IsRandomized    bool        `json:"is_randomized" gorm:"default:false"`
	IsActive        bool        `json:"is_active" gorm:"default:true"`
	CreatorID       uint        `json:"creator_id" gorm:"not null;index"`
	Questions       []Question  `json:"questions,omitempty" gorm:"foreignKey:ExamID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Candidates      []Candidate `json:"candidates,omitempty" gorm:"foreignKey:ExamID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Results         []Result    `json:"results,omitempty" gorm:"foreignKey:ExamID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
}
