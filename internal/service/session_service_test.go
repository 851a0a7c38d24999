package service

import (
	"testing"
	"time"

	"github.com/lshigami/examadmin/internal/apperr"
	"github.com/lshigami/examadmin/internal/dto"
	"github.com/lshigami/examadmin/internal/model"
	"gorm.io/gorm"
)

type fakeExamRepo struct {
	exams  map[uint]*model.Exam
	nextID uint
}

func newFakeExamRepo() *fakeExamRepo {
	return &fakeExamRepo{exams: make(map[uint]*model.Exam)}
}

func (f *fakeExamRepo) Create(exam *model.Exam) error {
	f.nextID++
	exam.ID = f.nextID
	stored := *exam
	f.exams[exam.ID] = &stored
	return nil
}

func (f *fakeExamRepo) FindAllByCreator(creatorID uint) ([]model.Exam, error) {
	var exams []model.Exam
	for _, exam := range f.exams {
		if exam.CreatorID == creatorID {
			exams = append(exams, *exam)
		}
	}
	return exams, nil
}

func (f *fakeExamRepo) FindByIDForCreator(id, creatorID uint) (*model.Exam, error) {
	exam, ok := f.exams[id]
	if !ok || exam.CreatorID != creatorID {
		return nil, gorm.ErrRecordNotFound
	}
	e := *exam
	return &e, nil
}

func (f *fakeExamRepo) FindByIDWithQuestions(id uint) (*model.Exam, error) {
	exam, ok := f.exams[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	e := *exam
	return &e, nil
}

func (f *fakeExamRepo) Save(exam *model.Exam) error {
	stored := *exam
	f.exams[exam.ID] = &stored
	return nil
}

func (f *fakeExamRepo) Delete(exam *model.Exam) error {
	delete(f.exams, exam.ID)
	return nil
}

type fakeCandidateRepo struct {
	candidates       map[uint]*model.Candidate
	exams            *fakeExamRepo
	nextID           uint
	markStartedCalls int
}

func newFakeCandidateRepo(exams *fakeExamRepo) *fakeCandidateRepo {
	return &fakeCandidateRepo{candidates: make(map[uint]*model.Candidate), exams: exams}
}

func (f *fakeCandidateRepo) Create(candidate *model.Candidate) error {
	f.nextID++
	candidate.ID = f.nextID
	stored := *candidate
	f.candidates[candidate.ID] = &stored
	return nil
}

func (f *fakeCandidateRepo) FindByIDForCreator(id, creatorID uint) (*model.Candidate, error) {
	candidate, ok := f.candidates[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	exam, ok := f.exams.exams[candidate.ExamID]
	if !ok || exam.CreatorID != creatorID {
		return nil, gorm.ErrRecordNotFound
	}
	c := *candidate
	return &c, nil
}

func (f *fakeCandidateRepo) FindAllForCreator(creatorID uint) ([]model.Candidate, error) {
	var candidates []model.Candidate
	for _, candidate := range f.candidates {
		if exam, ok := f.exams.exams[candidate.ExamID]; ok && exam.CreatorID == creatorID {
			candidates = append(candidates, *candidate)
		}
	}
	return candidates, nil
}

func (f *fakeCandidateRepo) FindByExamID(examID uint) ([]model.Candidate, error) {
	var candidates []model.Candidate
	for _, candidate := range f.candidates {
		if candidate.ExamID == examID {
			candidates = append(candidates, *candidate)
		}
	}
	return candidates, nil
}

func (f *fakeCandidateRepo) FindByUniqueLink(link string) (*model.Candidate, error) {
	for _, candidate := range f.candidates {
		if candidate.UniqueLink == link {
			c := *candidate
			return &c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeCandidateRepo) Save(candidate *model.Candidate) error {
	stored := *candidate
	f.candidates[candidate.ID] = &stored
	return nil
}

func (f *fakeCandidateRepo) Delete(candidate *model.Candidate) error {
	delete(f.candidates, candidate.ID)
	return nil
}

func (f *fakeCandidateRepo) MarkStarted(id uint, startedAt time.Time) error {
	f.markStartedCalls++
	if candidate, ok := f.candidates[id]; ok && candidate.TestStartTime == nil {
		t := startedAt
		candidate.TestStartTime = &t
	}
	return nil
}

func sessionFixture(t *testing.T) (*fakeCandidateRepo, *fakeExamRepo, SessionService) {
	t.Helper()
	exams := newFakeExamRepo()
	candidates := newFakeCandidateRepo(exams)

	exam := model.Exam{
		Title:           "Go Fundamentals",
		DurationMinutes: 60,
		CreatorID:       1,
	}
	if err := exams.Create(&exam); err != nil {
		t.Fatalf("seeding exam: %v", err)
	}
	mc := multipleChoiceQuestion(1, 10, 11, 11, 12)
	mc.ExamID = exam.ID
	open := model.Question{ID: 2, ExamID: exam.ID, QuestionType: model.QuestionTypeOpenEnded, Points: 5}
	exam.Questions = []model.Question{mc, open}
	if err := exams.Save(&exam); err != nil {
		t.Fatalf("seeding questions: %v", err)
	}

	candidate := model.Candidate{
		Name:       "Alice",
		Email:      "alice@example.com",
		ExamID:     exam.ID,
		UniqueLink: "link-alice",
	}
	if err := candidates.Create(&candidate); err != nil {
		t.Fatalf("seeding candidate: %v", err)
	}

	return candidates, exams, NewSessionService(candidates, exams, nil)
}

func TestAccessExamInvalidLink(t *testing.T) {
	_, _, svc := sessionFixture(t)
	if _, err := svc.AccessExam("no-such-link"); !apperr.IsKind(err, apperr.KindNotFound) {
		t.Errorf("invalid link: got %v, want not found", err)
	}
}

func TestAccessExamStampsStartOnce(t *testing.T) {
	candidates, _, svc := sessionFixture(t)

	first, err := svc.AccessExam("link-alice")
	if err != nil {
		t.Fatalf("first access: %v", err)
	}
	if first.Candidate.TestStartTime == nil {
		t.Fatal("first access must stamp test_start_time")
	}
	stamped := candidates.candidates[1].TestStartTime
	if stamped == nil {
		t.Fatal("start time not persisted")
	}

	second, err := svc.AccessExam("link-alice")
	if err != nil {
		t.Fatalf("second access: %v", err)
	}
	if second.Candidate.TestStartTime == nil || !second.Candidate.TestStartTime.Equal(*stamped) {
		t.Error("second access must keep the original start time")
	}
	if candidates.markStartedCalls != 1 {
		t.Errorf("MarkStarted called %d times, want 1", candidates.markStartedCalls)
	}
}

func TestAccessExamNeverLeaksCorrectFlags(t *testing.T) {
	_, _, svc := sessionFixture(t)

	resp, err := svc.AccessExam("link-alice")
	if err != nil {
		t.Fatalf("access: %v", err)
	}
	if len(resp.Questions) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(resp.Questions))
	}
	for _, q := range resp.Questions {
		if q.QuestionType == model.QuestionTypeMultipleChoice && len(q.Options) == 0 {
			t.Errorf("question %d: options missing from candidate view", q.ID)
		}
	}
}

func TestAccessExamAfterCompletion(t *testing.T) {
	candidates, _, svc := sessionFixture(t)
	candidates.candidates[1].IsTestCompleted = true

	if _, err := svc.AccessExam("link-alice"); !apperr.IsKind(err, apperr.KindConflict) {
		t.Errorf("completed candidate: got %v, want conflict", err)
	}
}

func TestSubmitExamRejectsBeforeTransaction(t *testing.T) {
	candidates, _, svc := sessionFixture(t)

	answers := []dto.SubmittedAnswer{{QuestionID: 1, SelectedOptionID: uintPtr(11)}}

	if _, err := svc.SubmitExam("no-such-link", dto.SubmitExamRequest{Answers: answers}); !apperr.IsKind(err, apperr.KindNotFound) {
		t.Errorf("invalid link: got %v, want not found", err)
	}
	if _, err := svc.SubmitExam("link-alice", dto.SubmitExamRequest{}); !apperr.IsKind(err, apperr.KindValidation) {
		t.Errorf("empty submission: got %v, want validation error", err)
	}

	candidates.candidates[1].IsTestCompleted = true
	if _, err := svc.SubmitExam("link-alice", dto.SubmitExamRequest{Answers: answers}); !apperr.IsKind(err, apperr.KindConflict) {
		t.Errorf("second submission: got %v, want conflict", err)
	}
}

func TestBuildSubmissionAnswersFiltering(t *testing.T) {
	mc := multipleChoiceQuestion(1, 10, 11, 11, 12)
	open := model.Question{ID: 2, QuestionType: model.QuestionTypeOpenEnded, Points: 5}
	questions := []model.Question{mc, open}

	submitted := []dto.SubmittedAnswer{
		{QuestionID: 1, SelectedOptionID: uintPtr(11)},
		{QuestionID: 1, SelectedOptionID: uintPtr(12)},
		{QuestionID: 99, SelectedOptionID: uintPtr(11)},
		{QuestionID: 2, TextResponse: strPtr("an essay")},
	}

	answers := buildSubmissionAnswers(questions, submitted)
	if len(answers) != 2 {
		t.Fatalf("expected 2 answers after filtering, got %d", len(answers))
	}
	if answers[0].QuestionID != 1 || answers[0].SelectedOptionID == nil || *answers[0].SelectedOptionID != 11 {
		t.Error("duplicate answer must keep the first submission")
	}
	if answers[0].PointsAwarded == nil || *answers[0].PointsAwarded != 10 {
		t.Errorf("multiple-choice answer must be pre-scored, got %v", answers[0].PointsAwarded)
	}
	if answers[1].QuestionID != 2 || answers[1].TextResponse == nil || *answers[1].TextResponse != "an essay" {
		t.Error("open-ended answer must keep its text response")
	}
	if answers[1].PointsAwarded != nil {
		t.Error("open-ended answer must stay unscored at submission")
	}
}

func TestBuildSubmissionAnswersTypeDecidedByQuestion(t *testing.T) {
	open := model.Question{ID: 2, QuestionType: model.QuestionTypeOpenEnded, Points: 5}

	// A payload that carries an option for an open-ended question keeps the
	// text side only; the stored type wins over the payload shape.
	answers := buildSubmissionAnswers([]model.Question{open}, []dto.SubmittedAnswer{
		{QuestionID: 2, SelectedOptionID: uintPtr(11), TextResponse: strPtr("still an essay")},
	})
	if len(answers) != 1 {
		t.Fatalf("expected 1 answer, got %d", len(answers))
	}
	if answers[0].SelectedOptionID != nil {
		t.Error("open-ended answer must not record a selected option")
	}
	if answers[0].TextResponse == nil || *answers[0].TextResponse != "still an essay" {
		t.Error("open-ended answer must keep the text response")
	}
}

func TestRestrictedQuestionViewsShape(t *testing.T) {
	q := multipleChoiceQuestion(1, 10, 11, 11, 12)
	q.Text = "Pick one"
	q.Order = 3

	views := restrictedQuestionViews([]model.Question{q})
	if len(views) != 1 {
		t.Fatalf("expected 1 view, got %d", len(views))
	}
	view := views[0]
	if view.Text != "Pick one" || view.Order != 3 || view.Points != 10 {
		t.Errorf("question metadata lost in candidate view: %+v", view)
	}
	if len(view.Options) != 2 {
		t.Fatalf("expected 2 options, got %d", len(view.Options))
	}
	for _, o := range view.Options {
		if o.ID == 0 {
			t.Error("option id missing from candidate view")
		}
	}
}
