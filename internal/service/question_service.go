package service

import (
	"errors"
	"fmt"

	"github.com/jinzhu/copier"
	"github.com/lshigami/examadmin/internal/apperr"
	"github.com/lshigami/examadmin/internal/dto"
	"github.com/lshigami/examadmin/internal/model"
	"github.com/lshigami/examadmin/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type QuestionService interface {
	CreateQuestion(creatorID uint, req dto.QuestionCreateRequest) (*dto.QuestionMutationResponse, error)
	GetQuestion(id, creatorID uint) (*dto.QuestionResponse, error)
	UpdateQuestion(id, creatorID uint, req dto.QuestionUpdateRequest) (*dto.QuestionMutationResponse, error)
	DeleteQuestion(id, creatorID uint) error
	ListQuestionsForExam(examID, creatorID uint) ([]dto.QuestionResponse, error)
}

type questionService struct {
	questionRepo repository.QuestionRepository
	examRepo     repository.ExamRepository
}

func NewQuestionService(questionRepo repository.QuestionRepository, examRepo repository.ExamRepository) QuestionService {
	return &questionService{questionRepo: questionRepo, examRepo: examRepo}
}

func (s *questionService) CreateQuestion(creatorID uint, req dto.QuestionCreateRequest) (*dto.QuestionMutationResponse, error) {
	if _, err := s.examRepo.FindByIDForCreator(req.ExamID, creatorID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("Exam not found or access denied")
		}
		return nil, fmt.Errorf("looking up exam %d: %w", req.ExamID, err)
	}

	question := model.Question{
		ExamID:       req.ExamID,
		Text:         req.Text,
		QuestionType: req.QuestionType,
		Points:       req.Points,
		Order:        req.Order,
	}
	// Options only make sense on multiple-choice questions; anything
	// supplied alongside an open-ended question is dropped.
	if req.QuestionType == model.QuestionTypeMultipleChoice {
		for _, o := range req.Options {
			question.Options = append(question.Options, model.Option{
				Text:      o.Text,
				IsCorrect: o.IsCorrect,
				Order:     o.Order,
			})
		}
	}

	if err := s.questionRepo.Create(&question); err != nil {
		log.Error().Err(err).Uint("examID", req.ExamID).Msg("CreateQuestion: database error")
		return nil, fmt.Errorf("creating question: %w", err)
	}
	return s.mutationResponse(&question, "Question created successfully")
}

func (s *questionService) GetQuestion(id, creatorID uint) (*dto.QuestionResponse, error) {
	question, err := s.findOwned(id, creatorID)
	if err != nil {
		return nil, err
	}
	var resp dto.QuestionResponse
	if err := copier.Copy(&resp, question); err != nil {
		return nil, fmt.Errorf("preparing question response: %w", err)
	}
	return &resp, nil
}

func (s *questionService) UpdateQuestion(id, creatorID uint, req dto.QuestionUpdateRequest) (*dto.QuestionMutationResponse, error) {
	question, err := s.findOwned(id, creatorID)
	if err != nil {
		return nil, err
	}
	if req.Text != nil {
		question.Text = *req.Text
	}
	if req.QuestionType != nil {
		question.QuestionType = *req.QuestionType
	}
	if req.Points != nil {
		question.Points = *req.Points
	}
	if req.Order != nil {
		question.Order = *req.Order
	}
	if err := s.questionRepo.Save(question); err != nil {
		log.Error().Err(err).Uint("questionID", id).Msg("UpdateQuestion: database error")
		return nil, fmt.Errorf("updating question %d: %w", id, err)
	}

	// Supplied options replace the existing set wholesale; there is no merge.
	if req.Options != nil && question.QuestionType == model.QuestionTypeMultipleChoice {
		options := make([]model.Option, 0, len(*req.Options))
		for _, o := range *req.Options {
			options = append(options, model.Option{
				Text:      o.Text,
				IsCorrect: o.IsCorrect,
				Order:     o.Order,
			})
		}
		if err := s.questionRepo.ReplaceOptions(question.ID, options); err != nil {
			log.Error().Err(err).Uint("questionID", id).Msg("UpdateQuestion: failed to replace options")
			return nil, fmt.Errorf("replacing options for question %d: %w", id, err)
		}
	}

	updated, err := s.findOwned(id, creatorID)
	if err != nil {
		return nil, err
	}
	return s.mutationResponse(updated, "Question updated successfully")
}

func (s *questionService) DeleteQuestion(id, creatorID uint) error {
	question, err := s.findOwned(id, creatorID)
	if err != nil {
		return err
	}
	if err := s.questionRepo.Delete(question); err != nil {
		log.Error().Err(err).Uint("questionID", id).Msg("DeleteQuestion: database error")
		return fmt.Errorf("deleting question %d: %w", id, err)
	}
	return nil
}

func (s *questionService) ListQuestionsForExam(examID, creatorID uint) ([]dto.QuestionResponse, error) {
	if _, err := s.examRepo.FindByIDForCreator(examID, creatorID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("Exam not found")
		}
		return nil, fmt.Errorf("looking up exam %d: %w", examID, err)
	}
	questions, err := s.questionRepo.FindByExamID(examID)
	if err != nil {
		return nil, fmt.Errorf("listing questions for exam %d: %w", examID, err)
	}
	resp := make([]dto.QuestionResponse, 0, len(questions))
	for i := range questions {
		var q dto.QuestionResponse
		if err := copier.Copy(&q, &questions[i]); err != nil {
			return nil, fmt.Errorf("preparing question list response: %w", err)
		}
		resp = append(resp, q)
	}
	return resp, nil
}

func (s *questionService) findOwned(id, creatorID uint) (*model.Question, error) {
	question, err := s.questionRepo.FindByIDForCreator(id, creatorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("Question not found")
		}
		return nil, fmt.Errorf("looking up question %d: %w", id, err)
	}
	return question, nil
}

func (s *questionService) mutationResponse(question *model.Question, message string) (*dto.QuestionMutationResponse, error) {
	resp := dto.QuestionMutationResponse{Message: message}
	if err := copier.Copy(&resp.Question, question); err != nil {
		return nil, fmt.Errorf("preparing question response: %w", err)
	}
	return &resp, nil
}
