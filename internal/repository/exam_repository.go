package repository

import (
	"github.com/lshigami/examadmin/internal/model"
	"gorm.io/gorm"
)

type ExamRepository interface {
	Create(exam *model.Exam) error
	FindAllByCreator(creatorID uint) ([]model.Exam, error)
	FindByIDForCreator(id, creatorID uint) (*model.Exam, error)
	FindByIDWithQuestions(id uint) (*model.Exam, error)
	Save(exam *model.Exam) error
	Delete(exam *model.Exam) error
}

type examRepository struct {
	db *gorm.DB
}

func NewExamRepository(db *gorm.DB) ExamRepository {
	return &examRepository{db: db}
}

func (r *examRepository) Create(exam *model.Exam) error {
	return r.db.Create(exam).Error
}

func (r *examRepository) FindAllByCreator(creatorID uint) ([]model.Exam, error) {
	var exams []model.Exam
	err := r.db.Where("creator_id = ?", creatorID).Order("created_at DESC").Find(&exams).Error
	return exams, err
}

// FindByIDForCreator scopes the lookup to the owning creator; a foreign
// exam is indistinguishable from a missing one.
func (r *examRepository) FindByIDForCreator(id, creatorID uint) (*model.Exam, error) {
	var exam model.Exam
	err := r.db.Where("id = ? AND creator_id = ?", id, creatorID).First(&exam).Error
	if err != nil {
		return nil, err
	}
	return &exam, nil
}

// FindByIDWithQuestions loads the exam with its questions and options in
// display order. Used by the public exam-taking flow.
func (r *examRepository) FindByIDWithQuestions(id uint) (*model.Exam, error) {
	var exam model.Exam
	err := r.db.
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order(`questions."order" ASC`)
		}).
		Preload("Questions.Options", func(db *gorm.DB) *gorm.DB {
			return db.Order(`options."order" ASC`)
		}).
		First(&exam, id).Error
	if err != nil {
		return nil, err
	}
	return &exam, nil
}

func (r *examRepository) Save(exam *model.Exam) error {
	return r.db.Save(exam).Error
}

// Delete removes the exam; questions, options, candidates, results and
// answers go with it through the ON DELETE CASCADE constraints.
func (r *examRepository) Delete(exam *model.Exam) error {
	return r.db.Delete(exam).Error
}
