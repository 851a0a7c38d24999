package repository

import (
	"github.com/lshigami/examadmin/internal/model"
	"gorm.io/gorm"
)

type ResultRepository interface {
	FindByIDForCreator(id, creatorID uint) (*model.Result, error)
	FindByExamID(examID uint) ([]model.Result, error)
	FindByCandidateID(candidateID uint) (*model.Result, error)
	Save(result *model.Result) error
}

type resultRepository struct {
	db *gorm.DB
}

func NewResultRepository(db *gorm.DB) ResultRepository {
	return &resultRepository{db: db}
}

// FindByIDForCreator loads the result with its answers, their questions and
// the question options so scoring context is available to callers.
func (r *resultRepository) FindByIDForCreator(id, creatorID uint) (*model.Result, error) {
	var result model.Result
	err := r.db.
		Joins("JOIN exams ON exams.id = results.exam_id").
		Where("results.id = ? AND exams.creator_id = ?", id, creatorID).
		Preload("Answers").
		Preload("Answers.Question").
		Preload("Answers.Question.Options").
		First(&result).Error
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *resultRepository) FindByExamID(examID uint) ([]model.Result, error) {
	var results []model.Result
	err := r.db.Where("exam_id = ?", examID).Order("created_at DESC").Find(&results).Error
	return results, err
}

func (r *resultRepository) FindByCandidateID(candidateID uint) (*model.Result, error) {
	var result model.Result
	err := r.db.
		Where("candidate_id = ?", candidateID).
		Preload("Answers").
		Preload("Answers.Question").
		Preload("Answers.Question.Options").
		First(&result).Error
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *resultRepository) Save(result *model.Result) error {
	return r.db.Omit("Answers").Save(result).Error
}
