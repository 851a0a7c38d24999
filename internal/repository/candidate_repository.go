package repository

import (
	"time"

	"github.com/lshigami/examadmin/internal/model"
	"gorm.io/gorm"
)

type CandidateRepository interface {
	Create(candidate *model.Candidate) error
	FindByIDForCreator(id, creatorID uint) (*model.Candidate, error)
	FindAllForCreator(creatorID uint) ([]model.Candidate, error)
	FindByExamID(examID uint) ([]model.Candidate, error)
	FindByUniqueLink(link string) (*model.Candidate, error)
	Save(candidate *model.Candidate) error
	Delete(candidate *model.Candidate) error
	MarkStarted(id uint, startedAt time.Time) error
}

type candidateRepository struct {
	db *gorm.DB
}

func NewCandidateRepository(db *gorm.DB) CandidateRepository {
	return &candidateRepository{db: db}
}

func (r *candidateRepository) Create(candidate *model.Candidate) error {
	return r.db.Create(candidate).Error
}

func (r *candidateRepository) FindByIDForCreator(id, creatorID uint) (*model.Candidate, error) {
	var candidate model.Candidate
	err := r.db.
		Joins("JOIN exams ON exams.id = candidates.exam_id").
		Where("candidates.id = ? AND exams.creator_id = ?", id, creatorID).
		First(&candidate).Error
	if err != nil {
		return nil, err
	}
	return &candidate, nil
}

func (r *candidateRepository) FindAllForCreator(creatorID uint) ([]model.Candidate, error) {
	var candidates []model.Candidate
	err := r.db.
		Joins("JOIN exams ON exams.id = candidates.exam_id").
		Where("exams.creator_id = ?", creatorID).
		Order("candidates.created_at DESC").
		Find(&candidates).Error
	return candidates, err
}

func (r *candidateRepository) FindByExamID(examID uint) ([]model.Candidate, error) {
	var candidates []model.Candidate
	err := r.db.Where("exam_id = ?", examID).Order("created_at DESC").Find(&candidates).Error
	return candidates, err
}

func (r *candidateRepository) FindByUniqueLink(link string) (*model.Candidate, error) {
	var candidate model.Candidate
	if err := r.db.Where("unique_link = ?", link).First(&candidate).Error; err != nil {
		return nil, err
	}
	return &candidate, nil
}

func (r *candidateRepository) Save(candidate *model.Candidate) error {
	return r.db.Save(candidate).Error
}

func (r *candidateRepository) Delete(candidate *model.Candidate) error {
	return r.db.Delete(candidate).Error
}

// MarkStarted stamps test_start_time once. The IS NULL guard keeps a second
// concurrent access from re-stamping it.
func (r *candidateRepository) MarkStarted(id uint, startedAt time.Time) error {
	return r.db.Model(&model.Candidate{}).
		Where("id = ? AND test_start_time IS NULL", id).
		Update("test_start_time", startedAt).Error
}
