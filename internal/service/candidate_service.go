package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
	"github.com/lshigami/examadmin/config"
	"github.com/lshigami/examadmin/internal/apperr"
	"github.com/lshigami/examadmin/internal/dto"
	"github.com/lshigami/examadmin/internal/model"
	"github.com/lshigami/examadmin/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type CandidateService interface {
	CreateCandidate(creatorID uint, req dto.CandidateCreateRequest) (*dto.CandidateMutationResponse, error)
	ListCandidates(creatorID uint) ([]dto.CandidateResponse, error)
	ListCandidatesForExam(examID, creatorID uint) ([]dto.CandidateResponse, error)
	GetCandidate(id, creatorID uint) (*dto.CandidateResponse, error)
	UpdateCandidate(id, creatorID uint, req dto.CandidateUpdateRequest) (*dto.CandidateMutationResponse, error)
	DeleteCandidate(id, creatorID uint) error
	SendInvitation(id, creatorID uint) (*dto.InvitationResponse, error)
}

type candidateService struct {
	candidateRepo repository.CandidateRepository
	examRepo      repository.ExamRepository
	mailer        Mailer
	frontendURL   string
}

func NewCandidateService(
	candidateRepo repository.CandidateRepository,
	examRepo repository.ExamRepository,
	mailer Mailer,
	cfg *config.Config,
) CandidateService {
	return &candidateService{
		candidateRepo: candidateRepo,
		examRepo:      examRepo,
		mailer:        mailer,
		frontendURL:   strings.TrimRight(cfg.FrontendURL, "/"),
	}
}

func (s *candidateService) CreateCandidate(creatorID uint, req dto.CandidateCreateRequest) (*dto.CandidateMutationResponse, error) {
	if _, err := s.examRepo.FindByIDForCreator(req.ExamID, creatorID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("Exam not found or access denied")
		}
		return nil, fmt.Errorf("looking up exam %d: %w", req.ExamID, err)
	}

	// The access link is assigned eagerly so every candidate row always
	// carries one. It is never regenerated afterwards.
	candidate := model.Candidate{
		Name:       req.Name,
		Email:      req.Email,
		ExamID:     req.ExamID,
		UniqueLink: uuid.NewString(),
	}
	if err := s.candidateRepo.Create(&candidate); err != nil {
		log.Error().Err(err).Uint("examID", req.ExamID).Msg("CreateCandidate: database error")
		return nil, fmt.Errorf("creating candidate: %w", err)
	}
	return s.mutationResponse(&candidate, "Candidate created successfully")
}

func (s *candidateService) ListCandidates(creatorID uint) ([]dto.CandidateResponse, error) {
	candidates, err := s.candidateRepo.FindAllForCreator(creatorID)
	if err != nil {
		return nil, fmt.Errorf("listing candidates: %w", err)
	}
	return s.listResponse(candidates)
}

func (s *candidateService) ListCandidatesForExam(examID, creatorID uint) ([]dto.CandidateResponse, error) {
	if _, err := s.examRepo.FindByIDForCreator(examID, creatorID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("Exam not found")
		}
		return nil, fmt.Errorf("looking up exam %d: %w", examID, err)
	}
	candidates, err := s.candidateRepo.FindByExamID(examID)
	if err != nil {
		return nil, fmt.Errorf("listing candidates for exam %d: %w", examID, err)
	}
	return s.listResponse(candidates)
}

func (s *candidateService) GetCandidate(id, creatorID uint) (*dto.CandidateResponse, error) {
	candidate, err := s.findOwned(id, creatorID)
	if err != nil {
		return nil, err
	}
	var resp dto.CandidateResponse
	if err := copier.Copy(&resp, candidate); err != nil {
		return nil, fmt.Errorf("preparing candidate response: %w", err)
	}
	return &resp, nil
}

func (s *candidateService) UpdateCandidate(id, creatorID uint, req dto.CandidateUpdateRequest) (*dto.CandidateMutationResponse, error) {
	candidate, err := s.findOwned(id, creatorID)
	if err != nil {
		return nil, err
	}
	if req.ExamID != nil && *req.ExamID != candidate.ExamID {
		if _, err := s.examRepo.FindByIDForCreator(*req.ExamID, creatorID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperr.NotFoundf("Exam not found or access denied")
			}
			return nil, fmt.Errorf("looking up exam %d: %w", *req.ExamID, err)
		}
		candidate.ExamID = *req.ExamID
	}
	if req.Name != nil {
		candidate.Name = *req.Name
	}
	if req.Email != nil {
		candidate.Email = *req.Email
	}
	if err := s.candidateRepo.Save(candidate); err != nil {
		log.Error().Err(err).Uint("candidateID", id).Msg("UpdateCandidate: database error")
		return nil, fmt.Errorf("updating candidate %d: %w", id, err)
	}
	return s.mutationResponse(candidate, "Candidate updated successfully")
}

func (s *candidateService) DeleteCandidate(id, creatorID uint) error {
	candidate, err := s.findOwned(id, creatorID)
	if err != nil {
		return err
	}
	if err := s.candidateRepo.Delete(candidate); err != nil {
		log.Error().Err(err).Uint("candidateID", id).Msg("DeleteCandidate: database error")
		return fmt.Errorf("deleting candidate %d: %w", id, err)
	}
	return nil
}

// SendInvitation marks the candidate invited and returns the constructed
// access URL. The email itself goes out on a goroutine so SMTP latency never
// holds up the response.
func (s *candidateService) SendInvitation(id, creatorID uint) (*dto.InvitationResponse, error) {
	candidate, err := s.findOwned(id, creatorID)
	if err != nil {
		return nil, err
	}
	exam, err := s.examRepo.FindByIDForCreator(candidate.ExamID, creatorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("Exam not found")
		}
		return nil, fmt.Errorf("looking up exam %d: %w", candidate.ExamID, err)
	}

	// Candidates created before the eager-assignment rule may still lack a
	// link; backfill without ever touching an existing one.
	if candidate.UniqueLink == "" {
		candidate.UniqueLink = uuid.NewString()
	}
	now := time.Now().UTC()
	candidate.InvitationSent = true
	candidate.LastInvitedAt = &now
	if err := s.candidateRepo.Save(candidate); err != nil {
		log.Error().Err(err).Uint("candidateID", id).Msg("SendInvitation: database error")
		return nil, fmt.Errorf("recording invitation for candidate %d: %w", id, err)
	}

	accessLink := fmt.Sprintf("%s/exam/%s", s.frontendURL, candidate.UniqueLink)

	go func(to, name, title, link string) {
		if err := s.mailer.SendInvitation(to, name, title, link); err != nil {
			log.Error().Err(err).Str("email", to).Msg("SendInvitation: email delivery failed")
		}
	}(candidate.Email, candidate.Name, exam.Title, accessLink)

	resp := dto.InvitationResponse{
		Success:    true,
		Message:    "Invitation sent successfully",
		AccessLink: accessLink,
	}
	if err := copier.Copy(&resp.Candidate, candidate); err != nil {
		return nil, fmt.Errorf("preparing invitation response: %w", err)
	}
	return &resp, nil
}

func (s *candidateService) findOwned(id, creatorID uint) (*model.Candidate, error) {
	candidate, err := s.candidateRepo.FindByIDForCreator(id, creatorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("Candidate not found")
		}
		return nil, fmt.Errorf("looking up candidate %d: %w", id, err)
	}
	return candidate, nil
}

func (s *candidateService) listResponse(candidates []model.Candidate) ([]dto.CandidateResponse, error) {
	resp := make([]dto.CandidateResponse, 0, len(candidates))
	for i := range candidates {
		var c dto.CandidateResponse
		if err := copier.Copy(&c, &candidates[i]); err != nil {
			return nil, fmt.Errorf("preparing candidate list response: %w", err)
		}
		resp = append(resp, c)
	}
	return resp, nil
}

func (s *candidateService) mutationResponse(candidate *model.Candidate, message string) (*dto.CandidateMutationResponse, error) {
	resp := dto.CandidateMutationResponse{Message: message}
	if err := copier.Copy(&resp.Candidate, candidate); err != nil {
		return nil, fmt.Errorf("preparing candidate response: %w", err)
	}
	return &resp, nil
}
