package repository

import (
	"github.com/lshigami/examadmin/internal/model"
	"gorm.io/gorm"
)

type AnswerRepository interface {
	FindByIDAndResult(id, resultID uint) (*model.Answer, error)
	FindByResultID(resultID uint) ([]model.Answer, error)
	Save(answer *model.Answer) error
}

type answerRepository struct {
	db *gorm.DB
}

func NewAnswerRepository(db *gorm.DB) AnswerRepository {
	return &answerRepository{db: db}
}

func (r *answerRepository) FindByIDAndResult(id, resultID uint) (*model.Answer, error) {
	var answer model.Answer
	err := r.db.
		Where("id = ? AND result_id = ?", id, resultID).
		Preload("Question").
		Preload("Question.Options").
		First(&answer).Error
	if err != nil {
		return nil, err
	}
	return &answer, nil
}

func (r *answerRepository) FindByResultID(resultID uint) ([]model.Answer, error) {
	var answers []model.Answer
	err := r.db.
		Where("result_id = ?", resultID).
		Preload("Question").
		Preload("Question.Options").
		Find(&answers).Error
	return answers, err
}

func (r *answerRepository) Save(answer *model.Answer) error {
	return r.db.Omit("Question").Save(answer).Error
}
