package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/studiora/studiora-api/internal/domain/user"
	"github.com/studiora/studiora-api/internal/pkg/jwt"
	"github.com/studiora/studiora-api/internal/pkg/password"
)

type fakeUserRepo struct {
	byEmail map[string]*user.User
	byID    map[uuid.UUID]*user.User

	lastLoginIP string
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byEmail: make(map[string]*user.User),
		byID:    make(map[uuid.UUID]*user.User),
	}
}

func (f *fakeUserRepo) Create(ctx context.Context, u *user.User) error {
	f.byEmail[u.Email] = u
	f.byID[u.ID] = u
	return nil
}
func (f *fakeUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	return f.byID[id], nil
}
func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	return f.byEmail[email], nil
}
func (f *fakeUserRepo) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	return nil
}
func (f *fakeUserRepo) UpdateLastLogin(ctx context.Context, id uuid.UUID, ip string) error {
	f.lastLoginIP = ip
	return nil
}
func (f *fakeUserRepo) SetBanned(ctx context.Context, id uuid.UUID, banned bool) error {
	if u, ok := f.byID[id]; ok {
		u.IsBanned = banned
	}
	return nil
}
func (f *fakeUserRepo) List(ctx context.Context, limit, offset int) ([]*user.User, error) {
	return nil, nil
}
func (f *fakeUserRepo) Count(ctx context.Context) (int, error) { return len(f.byID), nil }
func (f *fakeUserRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(f.byID, id)
	return nil
}

type recordedEvent struct {
	event  string
	userID uuid.UUID
	ip     string
}

type fakeSecurityLog struct {
	events []recordedEvent
}

func (f *fakeSecurityLog) Record(ctx context.Context, event string, userID uuid.UUID, ip, detail string) {
	f.events = append(f.events, recordedEvent{event: event, userID: userID, ip: ip})
}

func newTestService(repo *fakeUserRepo, sec *fakeSecurityLog) *Service {
	jwtService := jwt.NewService("test-secret", 15*time.Minute, 7*24*time.Hour)
	// Avoid wrapping a typed nil in the SecurityLogger interface so the
	// service's nil check still disables recording.
	var logger SecurityLogger
	if sec != nil {
		logger = sec
	}
	return NewService(repo, jwtService, nil, logger)
}

func TestRegisterCreatesUserAndIssuesTokens(t *testing.T) {
	repo := newFakeUserRepo()
	sec := &fakeSecurityLog{}
	svc := newTestService(repo, sec)

	resp, err := svc.Register(context.Background(), &RegisterRequest{
		Email:    "Anna@Example.COM",
		Name:     "Anna",
		Password: "correcthorse",
		Role:     "customer",
	}, "10.0.0.1")
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}

	if resp.User.Email != "anna@example.com" {
		t.Fatalf("email = %q, want normalized lowercase", resp.User.Email)
	}
	if resp.Tokens.AccessToken == "" || resp.Tokens.RefreshToken == "" {
		t.Fatalf("tokens missing from response: %+v", resp.Tokens)
	}

	stored := repo.byEmail["anna@example.com"]
	if stored == nil {
		t.Fatalf("user not persisted")
	}
	if stored.PasswordHash == "correcthorse" {
		t.Fatalf("password stored in plain text")
	}
	if !password.Verify("correcthorse", stored.PasswordHash) {
		t.Fatalf("stored hash does not verify against the password")
	}

	if len(sec.events) != 1 || sec.events[0].event != "register" {
		t.Fatalf("security events = %+v, want one register event", sec.events)
	}
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestService(repo, nil)

	req := &RegisterRequest{Email: "a@b.com", Name: "Anna", Password: "correcthorse", Role: "customer"}
	if _, err := svc.Register(context.Background(), req, ""); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	if _, err := svc.Register(context.Background(), req, ""); !errors.Is(err, ErrEmailAlreadyExists) {
		t.Fatalf("error = %v, want ErrEmailAlreadyExists", err)
	}
}

func TestRegisterRejectsAdminRole(t *testing.T) {
	svc := newTestService(newFakeUserRepo(), nil)

	_, err := svc.Register(context.Background(), &RegisterRequest{
		Email:    "a@b.com",
		Name:     "Anna",
		Password: "correcthorse",
		Role:     "admin",
	}, "")
	if !errors.Is(err, ErrInvalidRole) {
		t.Fatalf("error = %v, want ErrInvalidRole", err)
	}
}

func TestLoginVerifiesPassword(t *testing.T) {
	repo := newFakeUserRepo()
	sec := &fakeSecurityLog{}
	svc := newTestService(repo, sec)

	ctx := context.Background()
	if _, err := svc.Register(ctx, &RegisterRequest{
		Email: "a@b.com", Name: "Anna", Password: "correcthorse", Role: "customer",
	}, ""); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if _, err := svc.Login(ctx, &LoginRequest{Email: "a@b.com", Password: "wrong"}, "10.0.0.2"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("wrong password error = %v, want ErrInvalidCredentials", err)
	}
	if _, err := svc.Login(ctx, &LoginRequest{Email: "nobody@b.com", Password: "correcthorse"}, "10.0.0.2"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("unknown email error = %v, want ErrInvalidCredentials", err)
	}

	resp, err := svc.Login(ctx, &LoginRequest{Email: "a@b.com", Password: "correcthorse"}, "10.0.0.2")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if resp.Tokens.AccessToken == "" {
		t.Fatalf("no access token issued")
	}
	if repo.lastLoginIP != "10.0.0.2" {
		t.Fatalf("last login ip = %q, want 10.0.0.2", repo.lastLoginIP)
	}

	var sawFailed bool
	for _, e := range sec.events {
		if e.event == "login_failed" {
			sawFailed = true
		}
	}
	if !sawFailed {
		t.Fatalf("failed login attempts were not recorded: %+v", sec.events)
	}
}

func TestLoginRejectsBannedUser(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestService(repo, nil)

	ctx := context.Background()
	resp, err := svc.Register(ctx, &RegisterRequest{
		Email: "a@b.com", Name: "Anna", Password: "correcthorse", Role: "customer",
	}, "")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if err := repo.SetBanned(ctx, resp.User.ID, true); err != nil {
		t.Fatalf("ban failed: %v", err)
	}

	if _, err := svc.Login(ctx, &LoginRequest{Email: "a@b.com", Password: "correcthorse"}, ""); !errors.Is(err, ErrUserBanned) {
		t.Fatalf("error = %v, want ErrUserBanned", err)
	}
}

func TestRefreshWithoutStoreFails(t *testing.T) {
	// No Redis wired: refresh tokens cannot be validated
	svc := newTestService(newFakeUserRepo(), nil)

	if _, err := svc.Refresh(context.Background(), "sometoken"); !errors.Is(err, ErrInvalidRefreshToken) {
		t.Fatalf("error = %v, want ErrInvalidRefreshToken", err)
	}
	if _, err := svc.Refresh(context.Background(), ""); !errors.Is(err, ErrRefreshTokenRequired) {
		t.Fatalf("empty token error = %v, want ErrRefreshTokenRequired", err)
	}
}

func TestGetCurrentUser(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestService(repo, nil)

	ctx := context.Background()
	resp, err := svc.Register(ctx, &RegisterRequest{
		Email: "a@b.com", Name: "Anna", Password: "correcthorse", Role: "owner",
	}, "")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	me, err := svc.GetCurrentUser(ctx, resp.User.ID)
	if err != nil {
		t.Fatalf("GetCurrentUser returned error: %v", err)
	}
	if me.Email != "a@b.com" || me.Role != "owner" {
		t.Fatalf("current user = %+v", me)
	}

	if _, err := svc.GetCurrentUser(ctx, uuid.New()); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("unknown id error = %v, want ErrUserNotFound", err)
	}
}
