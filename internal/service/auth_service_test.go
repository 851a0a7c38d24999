package service

import (
	"testing"

	"github.com/lshigami/examadmin/config"
	"github.com/lshigami/examadmin/internal/apperr"
	"github.com/lshigami/examadmin/internal/dto"
	"github.com/lshigami/examadmin/internal/model"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type fakeUserRepo struct {
	users  map[uint]*model.User
	nextID uint
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uint]*model.User)}
}

func (f *fakeUserRepo) Create(user *model.User) error {
	f.nextID++
	user.ID = f.nextID
	stored := *user
	f.users[user.ID] = &stored
	return nil
}

func (f *fakeUserRepo) FindByID(id uint) (*model.User, error) {
	if user, ok := f.users[id]; ok {
		u := *user
		return &u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) FindByEmail(email string) (*model.User, error) {
	for _, user := range f.users {
		if user.Email == email {
			u := *user
			return &u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) FindByUsername(username string) (*model.User, error) {
	for _, user := range f.users {
		if user.Username == username {
			u := *user
			return &u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func newTestTokenService() TokenService {
	return NewTokenService(&config.Config{JWT: config.JWT{Secret: "test-secret", ExpiryHours: 1}})
}

func TestRegisterAndLogin(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewAuthService(repo, newTestTokenService())

	resp, err := svc.Register(dto.RegisterRequest{
		Email:    "creator@example.com",
		Username: "creator",
		Password: "s3cret-pass",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if resp.AccessToken == "" {
		t.Error("register must return an access token")
	}
	if resp.User.ID == 0 {
		t.Error("register must return the persisted user id")
	}

	login, err := svc.Login(dto.LoginRequest{Email: "creator@example.com", Password: "s3cret-pass"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if login.User.ID != resp.User.ID {
		t.Errorf("login returned user %d, want %d", login.User.ID, resp.User.ID)
	}
}

func TestRegisterNeverStoresPlaintext(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewAuthService(repo, newTestTokenService())

	if _, err := svc.Register(dto.RegisterRequest{
		Email:    "creator@example.com",
		Username: "creator",
		Password: "s3cret-pass",
	}); err != nil {
		t.Fatalf("register: %v", err)
	}

	stored := repo.users[1]
	if stored.PasswordHash == "s3cret-pass" {
		t.Fatal("password stored in plaintext")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("s3cret-pass")); err != nil {
		t.Errorf("stored hash does not verify against the password: %v", err)
	}
}

func TestRegisterConflicts(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewAuthService(repo, newTestTokenService())

	base := dto.RegisterRequest{Email: "creator@example.com", Username: "creator", Password: "pw"}
	if _, err := svc.Register(base); err != nil {
		t.Fatalf("register: %v", err)
	}

	_, err := svc.Register(dto.RegisterRequest{Email: base.Email, Username: "other", Password: "pw"})
	if !apperr.IsKind(err, apperr.KindConflict) {
		t.Errorf("duplicate email: got %v, want conflict", err)
	}
	_, err = svc.Register(dto.RegisterRequest{Email: "other@example.com", Username: base.Username, Password: "pw"})
	if !apperr.IsKind(err, apperr.KindConflict) {
		t.Errorf("duplicate username: got %v, want conflict", err)
	}
	if len(repo.users) != 1 {
		t.Errorf("conflicting registrations must not create rows, have %d users", len(repo.users))
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewAuthService(repo, newTestTokenService())

	if _, err := svc.Register(dto.RegisterRequest{
		Email: "creator@example.com", Username: "creator", Password: "right-password",
	}); err != nil {
		t.Fatalf("register: %v", err)
	}

	_, err := svc.Login(dto.LoginRequest{Email: "creator@example.com", Password: "wrong"})
	if !apperr.IsKind(err, apperr.KindAuth) {
		t.Errorf("wrong password: got %v, want auth error", err)
	}
	_, err = svc.Login(dto.LoginRequest{Email: "nobody@example.com", Password: "whatever"})
	if !apperr.IsKind(err, apperr.KindAuth) {
		t.Errorf("unknown email: got %v, want auth error", err)
	}
}

func TestTokenRoundTrip(t *testing.T) {
	tokens := newTestTokenService()

	signed, err := tokens.Generate(42)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	userID, err := tokens.Parse(signed)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if userID != 42 {
		t.Errorf("round trip returned user %d, want 42", userID)
	}

	if _, err := tokens.Parse("not-a-token"); !apperr.IsKind(err, apperr.KindAuth) {
		t.Errorf("garbage token: got %v, want auth error", err)
	}
}

func TestCurrentUserMissing(t *testing.T) {
	svc := NewAuthService(newFakeUserRepo(), newTestTokenService())
	if _, err := svc.CurrentUser(99); !apperr.IsKind(err, apperr.KindNotFound) {
		t.Errorf("missing user: got %v, want not found", err)
	}
}
