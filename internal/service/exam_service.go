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

type ExamService interface {
	CreateExam(creatorID uint, req dto.ExamCreateRequest) (*dto.ExamMutationResponse, error)
	ListExams(creatorID uint) ([]dto.ExamResponse, error)
	GetExam(id, creatorID uint) (*dto.ExamResponse, error)
	UpdateExam(id, creatorID uint, req dto.ExamUpdateRequest) (*dto.ExamMutationResponse, error)
	DeleteExam(id, creatorID uint) error
}

type examService struct {
	examRepo repository.ExamRepository
}

func NewExamService(examRepo repository.ExamRepository) ExamService {
	return &examService{examRepo: examRepo}
}

func (s *examService) CreateExam(creatorID uint, req dto.ExamCreateRequest) (*dto.ExamMutationResponse, error) {
	exam := model.Exam{
		Title:           req.Title,
		Description:     req.Description,
		DurationMinutes: req.DurationMinutes,
		PassingScore:    *req.PassingScore,
		IsRandomized:    req.IsRandomized,
		IsActive:        true,
		CreatorID:       creatorID,
	}
	if err := s.examRepo.Create(&exam); err != nil {
		log.Error().Err(err).Uint("creatorID", creatorID).Msg("CreateExam: database error")
		return nil, fmt.Errorf("creating exam: %w", err)
	}
	return s.mutationResponse(&exam, "Exam created successfully")
}

func (s *examService) ListExams(creatorID uint) ([]dto.ExamResponse, error) {
	exams, err := s.examRepo.FindAllByCreator(creatorID)
	if err != nil {
		return nil, fmt.Errorf("listing exams: %w", err)
	}
	resp := make([]dto.ExamResponse, 0, len(exams))
	for i := range exams {
		var e dto.ExamResponse
		if err := copier.Copy(&e, &exams[i]); err != nil {
			return nil, fmt.Errorf("preparing exam list response: %w", err)
		}
		resp = append(resp, e)
	}
	return resp, nil
}

func (s *examService) GetExam(id, creatorID uint) (*dto.ExamResponse, error) {
	exam, err := s.findOwned(id, creatorID)
	if err != nil {
		return nil, err
	}
	var resp dto.ExamResponse
	if err := copier.Copy(&resp, exam); err != nil {
		return nil, fmt.Errorf("preparing exam response: %w", err)
	}
	return &resp, nil
}

func (s *examService) UpdateExam(id, creatorID uint, req dto.ExamUpdateRequest) (*dto.ExamMutationResponse, error) {
	exam, err := s.findOwned(id, creatorID)
	if err != nil {
		return nil, err
	}
	if req.Title != nil {
		exam.Title = *req.Title
	}
	if req.Description != nil {
		exam.Description = *req.Description
	}
	if req.DurationMinutes != nil {
		exam.DurationMinutes = *req.DurationMinutes
	}
	if req.PassingScore != nil {
		exam.PassingScore = *req.PassingScore
	}
	if req.IsRandomized != nil {
		exam.IsRandomized = *req.IsRandomized
	}
	if req.IsActive != nil {
		exam.IsActive = *req.IsActive
	}
	if err := s.examRepo.Save(exam); err != nil {
		log.Error().Err(err).Uint("examID", id).Msg("UpdateExam: database error")
		return nil, fmt.Errorf("updating exam %d: %w", id, err)
	}
	return s.mutationResponse(exam, "Exam updated successfully")
}

func (s *examService) DeleteExam(id, creatorID uint) error {
	exam, err := s.findOwned(id, creatorID)
	if err != nil {
		return err
	}
	if err := s.examRepo.Delete(exam); err != nil {
		log.Error().Err(err).Uint("examID", id).Msg("DeleteExam: database error")
		return fmt.Errorf("deleting exam %d: %w", id, err)
	}
	return nil
}

func (s *examService) findOwned(id, creatorID uint) (*model.Exam, error) {
	exam, err := s.examRepo.FindByIDForCreator(id, creatorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("Exam not found")
		}
		return nil, fmt.Errorf("looking up exam %d: %w", id, err)
	}
	return exam, nil
}

func (s *examService) mutationResponse(exam *model.Exam, message string) (*dto.ExamMutationResponse, error) {
	resp := dto.ExamMutationResponse{Message: message}
	if err := copier.Copy(&resp.Exam, exam); err != nil {
		return nil, fmt.Errorf("preparing exam response: %w", err)
	}
	return &resp, nil
}
