package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/jinzhu/copier"
	"github.com/lshigami/examadmin/internal/apperr"
	"github.com/lshigami/examadmin/internal/dto"
	"github.com/lshigami/examadmin/internal/model"
	"github.com/lshigami/examadmin/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// SessionService is the public, unauthenticated exam-taking flow. A candidate
// is identified solely by the unguessable unique link.
type SessionService interface {
	AccessExam(uniqueLink string) (*dto.AccessExamResponse, error)
	SubmitExam(uniqueLink string, req dto.SubmitExamRequest) (*dto.SubmitExamResponse, error)
}

type sessionService struct {
	candidateRepo repository.CandidateRepository
	examRepo      repository.ExamRepository
	db            *gorm.DB
}

func NewSessionService(
	candidateRepo repository.CandidateRepository,
	examRepo repository.ExamRepository,
	db *gorm.DB,
) SessionService {
	return &sessionService{candidateRepo: candidateRepo, examRepo: examRepo, db: db}
}

// AccessExam resolves the candidate by link and serves the exam with every
// correct-answer flag stripped. The first access stamps test_start_time;
// later accesses leave it alone.
func (s *sessionService) AccessExam(uniqueLink string) (*dto.AccessExamResponse, error) {
	candidate, err := s.resolveCandidate(uniqueLink)
	if err != nil {
		return nil, err
	}
	if candidate.IsTestCompleted {
		return nil, apperr.Conflictf("Test already completed")
	}

	if candidate.TestStartTime == nil {
		now := time.Now().UTC()
		if err := s.candidateRepo.MarkStarted(candidate.ID, now); err != nil {
			return nil, fmt.Errorf("stamping test start time: %w", err)
		}
		candidate.TestStartTime = &now
	}

	exam, err := s.examRepo.FindByIDWithQuestions(candidate.ExamID)
	if err != nil {
		return nil, fmt.Errorf("loading exam %d: %w", candidate.ExamID, err)
	}

	resp := dto.AccessExamResponse{
		Exam: dto.SessionExamView{
			ID:              exam.ID,
			Title:           exam.Title,
			Description:     exam.Description,
			DurationMinutes: exam.DurationMinutes,
			IsRandomized:    exam.IsRandomized,
		},
		Questions: restrictedQuestionViews(exam.Questions),
	}
	if err := copier.Copy(&resp.Candidate, candidate); err != nil {
		return nil, fmt.Errorf("preparing access response: %w", err)
	}
	return &resp, nil
}

// SubmitExam closes the candidate's session and records the result. The
// completed-flag flip, result creation, answer inserts and score computation
// run in one transaction; the flip is a conditional update so two racing
// submissions cannot both get through.
func (s *sessionService) SubmitExam(uniqueLink string, req dto.SubmitExamRequest) (*dto.SubmitExamResponse, error) {
	candidate, err := s.resolveCandidate(uniqueLink)
	if err != nil {
		return nil, err
	}
	if candidate.IsTestCompleted {
		return nil, apperr.Conflictf("Test already completed")
	}
	if len(req.Answers) == 0 {
		return nil, apperr.Validationf("No answers provided")
	}

	exam, err := s.examRepo.FindByIDWithQuestions(candidate.ExamID)
	if err != nil {
		return nil, fmt.Errorf("loading exam %d: %w", candidate.ExamID, err)
	}
	answers := buildSubmissionAnswers(exam.Questions, req.Answers)

	now := time.Now().UTC()
	var result model.Result

	err = s.db.Transaction(func(tx *gorm.DB) error {
		// Atomic check-and-set: only one submission may complete the test.
		res := tx.Model(&model.Candidate{}).
			Where("id = ? AND is_test_completed = ?", candidate.ID, false).
			Updates(map[string]interface{}{
				"is_test_completed": true,
				"test_end_time":     now,
			})
		if res.Error != nil {
			return fmt.Errorf("marking candidate complete: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return apperr.Conflictf("Test already completed")
		}

		result = model.Result{CandidateID: candidate.ID, ExamID: candidate.ExamID}
		if err := tx.Create(&result).Error; err != nil {
			return fmt.Errorf("creating result: %w", err)
		}

		total := 0.0
		for i := range answers {
			answers[i].ResultID = result.ID
			if answers[i].PointsAwarded != nil {
				total += *answers[i].PointsAwarded
			}
		}
		if len(answers) > 0 {
			if err := tx.Create(&answers).Error; err != nil {
				return fmt.Errorf("persisting answers: %w", err)
			}
		}

		result.Score = &total
		if err := tx.Model(&model.Result{}).Where("id = ?", result.ID).
			Update("score", total).Error; err != nil {
			return fmt.Errorf("storing score: %w", err)
		}
		return nil
	})
	if err != nil {
		log.Error().Err(err).Str("link", uniqueLink).Msg("SubmitExam: submission transaction failed")
		return nil, err
	}

	resp := dto.SubmitExamResponse{Message: "Exam submitted successfully"}
	if err := copier.Copy(&resp.Result, &result); err != nil {
		return nil, fmt.Errorf("preparing submit response: %w", err)
	}
	return &resp, nil
}

func (s *sessionService) resolveCandidate(uniqueLink string) (*model.Candidate, error) {
	candidate, err := s.candidateRepo.FindByUniqueLink(uniqueLink)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("Invalid access link")
		}
		return nil, fmt.Errorf("resolving access link: %w", err)
	}
	return candidate, nil
}

// buildSubmissionAnswers turns the submitted payload into answer rows.
// Answers for questions outside the exam are silently skipped and only the
// first answer per question survives, so a duplicate entry cannot skew the
// score. The stored question type decides which field is kept, never the
// shape of the client payload. Multiple-choice answers are scored here so the
// submission transaction persists them already evaluated.
func buildSubmissionAnswers(questions []model.Question, submitted []dto.SubmittedAnswer) []model.Answer {
	questionMap := make(map[uint]*model.Question, len(questions))
	for i := range questions {
		questionMap[questions[i].ID] = &questions[i]
	}

	answers := make([]model.Answer, 0, len(submitted))
	seen := make(map[uint]bool, len(submitted))
	for _, sub := range submitted {
		question, ok := questionMap[sub.QuestionID]
		if !ok {
			log.Warn().Uint("questionID", sub.QuestionID).
				Msg("SubmitExam: answer for question outside this exam, skipping")
			continue
		}
		if seen[sub.QuestionID] {
			log.Warn().Uint("questionID", sub.QuestionID).
				Msg("SubmitExam: duplicate answer for question, keeping first")
			continue
		}
		seen[sub.QuestionID] = true

		answer := model.Answer{QuestionID: question.ID}
		if question.QuestionType == model.QuestionTypeMultipleChoice {
			answer.SelectedOptionID = sub.SelectedOptionID
			points := scoreMultipleChoice(question, sub.SelectedOptionID)
			answer.PointsAwarded = &points
		} else {
			answer.TextResponse = sub.TextResponse
		}
		answers = append(answers, answer)
	}
	return answers
}

// restrictedQuestionViews maps questions to the candidate-facing shape,
// dropping the is_correct flag from every option.
func restrictedQuestionViews(questions []model.Question) []dto.SessionQuestionView {
	views := make([]dto.SessionQuestionView, 0, len(questions))
	for i := range questions {
		q := &questions[i]
		view := dto.SessionQuestionView{
			ID:           q.ID,
			ExamID:       q.ExamID,
			Text:         q.Text,
			QuestionType: q.QuestionType,
			Points:       q.Points,
			Order:        q.Order,
		}
		for j := range q.Options {
			o := &q.Options[j]
			view.Options = append(view.Options, dto.SessionOptionView{
				ID:    o.ID,
				Text:  o.Text,
				Order: o.Order,
			})
		}
		views = append(views, view)
	}
	return views
}
