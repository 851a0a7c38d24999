package repository

import (
	"github.com/lshigami/examadmin/internal/model"
	"gorm.io/gorm"
)

type QuestionRepository interface {
	Create(question *model.Question) error
	FindByIDForCreator(id, creatorID uint) (*model.Question, error)
	FindByExamID(examID uint) ([]model.Question, error)
	Save(question *model.Question) error
	ReplaceOptions(questionID uint, options []model.Option) error
	Delete(question *model.Question) error
}

type questionRepository struct {
	db *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) QuestionRepository {
	return &questionRepository{db: db}
}

func (r *questionRepository) Create(question *model.Question) error {
	// Creates the options along with the question when populated.
	return r.db.Create(question).Error
}

func (r *questionRepository) FindByIDForCreator(id, creatorID uint) (*model.Question, error) {
	var question model.Question
	err := r.db.
		Joins("JOIN exams ON exams.id = questions.exam_id").
		Where("questions.id = ? AND exams.creator_id = ?", id, creatorID).
		Preload("Options", func(db *gorm.DB) *gorm.DB {
			return db.Order(`options."order" ASC`)
		}).
		First(&question).Error
	if err != nil {
		return nil, err
	}
	return &question, nil
}

func (r *questionRepository) FindByExamID(examID uint) ([]model.Question, error) {
	var questions []model.Question
	err := r.db.
		Where("exam_id = ?", examID).
		Order(`"order" ASC`).
		Preload("Options", func(db *gorm.DB) *gorm.DB {
			return db.Order(`options."order" ASC`)
		}).
		Find(&questions).Error
	return questions, err
}

func (r *questionRepository) Save(question *model.Question) error {
	return r.db.Omit("Options").Save(question).Error
}

// ReplaceOptions deletes every existing option of the question and inserts
// the given set, in one transaction. Updates never merge options.
func (r *questionRepository) ReplaceOptions(questionID uint, options []model.Option) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("question_id = ?", questionID).Delete(&model.Option{}).Error; err != nil {
			return err
		}
		for i := range options {
			options[i].ID = 0
			options[i].QuestionID = questionID
		}
		if len(options) == 0 {
			return nil
		}
		return tx.Create(&options).Error
	})
}

func (r *questionRepository) Delete(question *model.Question) error {
	return r.db.Delete(question).Error
}
