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

type ResultService interface {
	GetResult(id, creatorID uint) (*dto.ResultDetailResponse, error)
	ListResultsForExam(examID, creatorID uint) ([]dto.ResultResponse, error)
	GetCandidateResult(candidateID, creatorID uint) (*dto.ResultDetailResponse, error)
	EvaluateOpenEnded(resultID, creatorID uint, req dto.EvaluateRequest) (*dto.ResultDetailResponse, error)
	ExportResult(id, creatorID uint) (*dto.ResultDetailResponse, error)
}

type resultService struct {
	resultRepo    repository.ResultRepository
	answerRepo    repository.AnswerRepository
	candidateRepo repository.CandidateRepository
	examRepo      repository.ExamRepository
}

func NewResultService(
	resultRepo repository.ResultRepository,
	answerRepo repository.AnswerRepository,
	candidateRepo repository.CandidateRepository,
	examRepo repository.ExamRepository,
) ResultService {
	return &resultService{
		resultRepo:    resultRepo,
		answerRepo:    answerRepo,
		candidateRepo: candidateRepo,
		examRepo:      examRepo,
	}
}

func (s *resultService) GetResult(id, creatorID uint) (*dto.ResultDetailResponse, error) {
	result, err := s.findOwned(id, creatorID)
	if err != nil {
		return nil, err
	}
	return resultDetail(result)
}

func (s *resultService) ListResultsForExam(examID, creatorID uint) ([]dto.ResultResponse, error) {
	if _, err := s.examRepo.FindByIDForCreator(examID, creatorID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("Exam not found")
		}
		return nil, fmt.Errorf("looking up exam %d: %w", examID, err)
	}
	results, err := s.resultRepo.FindByExamID(examID)
	if err != nil {
		return nil, fmt.Errorf("listing results for exam %d: %w", examID, err)
	}
	resp := make([]dto.ResultResponse, 0, len(results))
	for i := range results {
		var r dto.ResultResponse
		if err := copier.Copy(&r, &results[i]); err != nil {
			return nil, fmt.Errorf("preparing result list response: %w", err)
		}
		resp = append(resp, r)
	}
	return resp, nil
}

func (s *resultService) GetCandidateResult(candidateID, creatorID uint) (*dto.ResultDetailResponse, error) {
	if _, err := s.candidateRepo.FindByIDForCreator(candidateID, creatorID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("Candidate not found")
		}
		return nil, fmt.Errorf("looking up candidate %d: %w", candidateID, err)
	}
	result, err := s.resultRepo.FindByCandidateID(candidateID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("Result not found")
		}
		return nil, fmt.Errorf("looking up result for candidate %d: %w", candidateID, err)
	}
	return resultDetail(result)
}

// EvaluateOpenEnded applies manual point awards to open-ended answers and
// recomputes the aggregate score. Entries for unknown answers or answers to
// non-open-ended questions are skipped without error.
func (s *resultService) EvaluateOpenEnded(resultID, creatorID uint, req dto.EvaluateRequest) (*dto.ResultDetailResponse, error) {
	result, err := s.findOwned(resultID, creatorID)
	if err != nil {
		return nil, err
	}
	if len(req.Evaluations) == 0 {
		return nil, apperr.Validationf("No evaluations provided")
	}

	for _, entry := range req.Evaluations {
		answer, err := s.answerRepo.FindByIDAndResult(entry.AnswerID, resultID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				log.Warn().Uint("answerID", entry.AnswerID).Uint("resultID", resultID).
					Msg("EvaluateOpenEnded: answer not on this result, skipping")
				continue
			}
			return nil, fmt.Errorf("looking up answer %d: %w", entry.AnswerID, err)
		}
		if answer.Question.QuestionType != model.QuestionTypeOpenEnded {
			log.Warn().Uint("answerID", entry.AnswerID).
				Msg("EvaluateOpenEnded: answer is not open-ended, skipping")
			continue
		}
		answer.PointsAwarded = entry.PointsAwarded
		if err := s.answerRepo.Save(answer); err != nil {
			return nil, fmt.Errorf("saving evaluation for answer %d: %w", entry.AnswerID, err)
		}
	}

	if err := s.recomputeScore(result); err != nil {
		return nil, err
	}
	if req.Feedback != nil {
		result.Feedback = req.Feedback
	}
	if err := s.resultRepo.Save(result); err != nil {
		return nil, fmt.Errorf("saving result %d: %w", resultID, err)
	}

	updated, err := s.findOwned(resultID, creatorID)
	if err != nil {
		return nil, err
	}
	return resultDetail(updated)
}

// ExportResult verifies ownership and returns the result payload; document
// generation itself is left to an external collaborator.
func (s *resultService) ExportResult(id, creatorID uint) (*dto.ResultDetailResponse, error) {
	result, err := s.findOwned(id, creatorID)
	if err != nil {
		return nil, err
	}
	return resultDetail(result)
}

// recomputeScore re-scores every multiple-choice answer and aggregates all
// awarded points onto the result. Idempotent.
func (s *resultService) recomputeScore(result *model.Result) error {
	answers, err := s.answerRepo.FindByResultID(result.ID)
	if err != nil {
		return fmt.Errorf("loading answers for result %d: %w", result.ID, err)
	}
	total := applyAutoScores(answers)
	for i := range answers {
		if answers[i].Question.QuestionType != model.QuestionTypeMultipleChoice {
			continue
		}
		if err := s.answerRepo.Save(&answers[i]); err != nil {
			return fmt.Errorf("saving recomputed answer %d: %w", answers[i].ID, err)
		}
	}
	result.Score = &total
	return nil
}

func (s *resultService) findOwned(id, creatorID uint) (*model.Result, error) {
	result, err := s.resultRepo.FindByIDForCreator(id, creatorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("Result not found")
		}
		return nil, fmt.Errorf("looking up result %d: %w", id, err)
	}
	return result, nil
}

func resultDetail(result *model.Result) (*dto.ResultDetailResponse, error) {
	var resp dto.ResultDetailResponse
	if err := copier.Copy(&resp.ResultResponse, result); err != nil {
		return nil, fmt.Errorf("preparing result response: %w", err)
	}
	resp.Answers = make([]dto.AnswerResponse, 0, len(result.Answers))
	for i := range result.Answers {
		var a dto.AnswerResponse
		if err := copier.Copy(&a, &result.Answers[i]); err != nil {
			return nil, fmt.Errorf("preparing answer response: %w", err)
		}
		resp.Answers = append(resp.Answers, a)
	}
	return &resp, nil
}
