package service

import (
	"testing"
	"time"

	"github.com/lshigami/examadmin/config"
	"github.com/lshigami/examadmin/internal/apperr"
	"github.com/lshigami/examadmin/internal/dto"
	"github.com/lshigami/examadmin/internal/model"
)

type sentInvitation struct {
	to   string
	name string
	exam string
	link string
}

type fakeMailer struct {
	sent chan sentInvitation
}

func newFakeMailer() *fakeMailer {
	return &fakeMailer{sent: make(chan sentInvitation, 8)}
}

func (f *fakeMailer) SendInvitation(to, name, examTitle, accessLink string) error {
	f.sent <- sentInvitation{to: to, name: name, exam: examTitle, link: accessLink}
	return nil
}

func candidateFixture(t *testing.T) (*fakeCandidateRepo, *fakeExamRepo, *fakeMailer, CandidateService) {
	t.Helper()
	exams := newFakeExamRepo()
	candidates := newFakeCandidateRepo(exams)
	mailer := newFakeMailer()

	if err := exams.Create(&model.Exam{Title: "Go Fundamentals", DurationMinutes: 60, CreatorID: 1}); err != nil {
		t.Fatalf("seeding exam: %v", err)
	}
	if err := exams.Create(&model.Exam{Title: "Someone Else's Exam", DurationMinutes: 30, CreatorID: 2}); err != nil {
		t.Fatalf("seeding exam: %v", err)
	}

	svc := NewCandidateService(candidates, exams, mailer, &config.Config{FrontendURL: "http://localhost:3000"})
	return candidates, exams, mailer, svc
}

func TestCreateCandidateAssignsDistinctLinks(t *testing.T) {
	_, _, _, svc := candidateFixture(t)

	seen := make(map[string]bool)
	for i := 0; i < 5; i++ {
		resp, err := svc.CreateCandidate(1, dto.CandidateCreateRequest{
			Name: "Alice", Email: "alice@example.com", ExamID: 1,
		})
		if err != nil {
			t.Fatalf("create candidate: %v", err)
		}
		link := resp.Candidate.UniqueLink
		if link == "" {
			t.Fatal("candidate created without an access link")
		}
		if seen[link] {
			t.Fatalf("duplicate access link %q", link)
		}
		seen[link] = true
	}
}

func TestCreateCandidateForeignExam(t *testing.T) {
	_, _, _, svc := candidateFixture(t)

	_, err := svc.CreateCandidate(1, dto.CandidateCreateRequest{
		Name: "Alice", Email: "alice@example.com", ExamID: 2,
	})
	if !apperr.IsKind(err, apperr.KindNotFound) {
		t.Errorf("foreign exam: got %v, want not found", err)
	}
}

func TestGetCandidateCrossTenant(t *testing.T) {
	_, _, _, svc := candidateFixture(t)

	created, err := svc.CreateCandidate(1, dto.CandidateCreateRequest{
		Name: "Alice", Email: "alice@example.com", ExamID: 1,
	})
	if err != nil {
		t.Fatalf("create candidate: %v", err)
	}

	if _, err := svc.GetCandidate(created.Candidate.ID, 2); !apperr.IsKind(err, apperr.KindNotFound) {
		t.Errorf("foreign creator lookup: got %v, want not found", err)
	}
	if _, err := svc.GetCandidate(created.Candidate.ID, 1); err != nil {
		t.Errorf("owner lookup: %v", err)
	}
}

func TestSendInvitation(t *testing.T) {
	candidates, _, mailer, svc := candidateFixture(t)

	created, err := svc.CreateCandidate(1, dto.CandidateCreateRequest{
		Name: "Alice", Email: "alice@example.com", ExamID: 1,
	})
	if err != nil {
		t.Fatalf("create candidate: %v", err)
	}

	resp, err := svc.SendInvitation(created.Candidate.ID, 1)
	if err != nil {
		t.Fatalf("send invitation: %v", err)
	}
	if !resp.Success {
		t.Error("invitation response must report success")
	}
	wantLink := "http://localhost:3000/exam/" + created.Candidate.UniqueLink
	if resp.AccessLink != wantLink {
		t.Errorf("access link = %q, want %q", resp.AccessLink, wantLink)
	}

	stored := candidates.candidates[created.Candidate.ID]
	if !stored.InvitationSent {
		t.Error("invitation_sent flag not persisted")
	}
	if stored.LastInvitedAt == nil {
		t.Error("last_invited_at not persisted")
	}
	if stored.UniqueLink != created.Candidate.UniqueLink {
		t.Error("sending an invitation must not regenerate the access link")
	}

	select {
	case msg := <-mailer.sent:
		if msg.to != "alice@example.com" || msg.exam != "Go Fundamentals" || msg.link != wantLink {
			t.Errorf("unexpected invitation email: %+v", msg)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("invitation email never dispatched")
	}
}

func TestSendInvitationCrossTenant(t *testing.T) {
	_, _, _, svc := candidateFixture(t)

	created, err := svc.CreateCandidate(1, dto.CandidateCreateRequest{
		Name: "Alice", Email: "alice@example.com", ExamID: 1,
	})
	if err != nil {
		t.Fatalf("create candidate: %v", err)
	}

	if _, err := svc.SendInvitation(created.Candidate.ID, 2); !apperr.IsKind(err, apperr.KindNotFound) {
		t.Errorf("foreign creator invitation: got %v, want not found", err)
	}
}

func TestUpdateCandidateReassignExam(t *testing.T) {
	_, exams, _, svc := candidateFixture(t)

	if err := exams.Create(&model.Exam{Title: "Second Exam", DurationMinutes: 45, CreatorID: 1}); err != nil {
		t.Fatalf("seeding exam: %v", err)
	}
	created, err := svc.CreateCandidate(1, dto.CandidateCreateRequest{
		Name: "Alice", Email: "alice@example.com", ExamID: 1,
	})
	if err != nil {
		t.Fatalf("create candidate: %v", err)
	}

	newExam := uint(3)
	updated, err := svc.UpdateCandidate(created.Candidate.ID, 1, dto.CandidateUpdateRequest{ExamID: &newExam})
	if err != nil {
		t.Fatalf("reassign to owned exam: %v", err)
	}
	if updated.Candidate.ExamID != newExam {
		t.Errorf("exam_id = %d, want %d", updated.Candidate.ExamID, newExam)
	}

	foreign := uint(2)
	if _, err := svc.UpdateCandidate(created.Candidate.ID, 1, dto.CandidateUpdateRequest{ExamID: &foreign}); !apperr.IsKind(err, apperr.KindNotFound) {
		t.Errorf("reassign to foreign exam: got %v, want not found", err)
	}
}
