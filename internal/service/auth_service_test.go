package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"event_rsvp/internal/models"
	"event_rsvp/internal/repository"

	"github.com/golang-jwt/jwt/v5"
)

// mockAdminRepo is a lightweight in-test mock for repository.AdminRepo.
type mockAdminRepo struct {
	CreateFn        func(username, hash string) (int64, error)
	GetByUsernameFn func(username string) (*models.Admin, error)

	createCalls []struct {
		username string
		hash     string
	}
	getCalls []string
}

func (m *mockAdminRepo) Create(ctx context.Context, username, hash string) (int64, error) {
	m.createCalls = append(m.createCalls, struct {
		username string
		hash     string
	}{username: username, hash: hash})
	return m.CreateFn(username, hash)
}

func (m *mockAdminRepo) GetByUsername(ctx context.Context, username string) (*models.Admin, error) {
	m.getCalls = append(m.getCalls, username)
	return m.GetByUsernameFn(username)
}

func newTestAuthService(repo *mockAdminRepo) (*AuthService, *SessionStore) {
	store := NewSessionStore(time.Hour)
	svc := NewAuthService(repo, store, Config{
		SessionSigningKey:    "test-signing-key",
		SessionTTL:           time.Hour,
		DefaultAdminPassword: "01121000099",
	})
	return svc, store
}

// --- Login tests ---

func TestAuthService_Login_SuccessOpensSession(t *testing.T) {
	hash, err := hashPassword("letmein")
	if err != nil {
		t.Fatalf("hashPassword failed: %v", err)
	}
	mock := &mockAdminRepo{
		GetByUsernameFn: func(username string) (*models.Admin, error) {
			if username != "diana" {
				t.Fatalf("expected username 'diana', got %q", username)
			}
			return &models.Admin{ID: 7, Username: "diana", PasswordHash: hash}, nil
		},
	}
	svc, store := newTestAuthService(mock)

	token, err := svc.Login(context.Background(), "diana", "letmein")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if token == "" {
		t.Fatalf("expected non-empty token")
	}
	if store.Len() != 1 {
		t.Fatalf("expected 1 stored session, got %d", store.Len())
	}

	// Token resolves back to a live session for the same admin.
	sess, err := svc.Authenticate(token)
	if err != nil {
		t.Fatalf("Authenticate failed: %v", err)
	}
	if sess.Username != "diana" {
		t.Fatalf("expected session for diana, got %q", sess.Username)
	}
}

func TestAuthService_Login_UnknownUser(t *testing.T) {
	mock := &mockAdminRepo{
		GetByUsernameFn: func(username string) (*models.Admin, error) {
			return nil, nil
		},
	}
	svc, store := newTestAuthService(mock)

	_, err := svc.Login(context.Background(), "ghost", "pw")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if store.Len() != 0 {
		t.Fatalf("expected no session on failed login")
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	hash, err := hashPassword("correct")
	if err != nil {
		t.Fatalf("hashPassword failed: %v", err)
	}
	mock := &mockAdminRepo{
		GetByUsernameFn: func(username string) (*models.Admin, error) {
			return &models.Admin{ID: 1, Username: "eve", PasswordHash: hash}, nil
		},
	}
	svc, store := newTestAuthService(mock)

	_, err = svc.Login(context.Background(), "eve", "wrong")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if store.Len() != 0 {
		t.Fatalf("expected no session on failed login")
	}
}

func TestAuthService_Login_EmptyFields(t *testing.T) {
	svc, _ := newTestAuthService(&mockAdminRepo{})

	if _, err := svc.Login(context.Background(), "", "pw"); !errors.Is(err, ErrCredentialsRequired) {
		t.Fatalf("expected ErrCredentialsRequired, got %v", err)
	}
	if _, err := svc.Login(context.Background(), "admin", ""); !errors.Is(err, ErrCredentialsRequired) {
		t.Fatalf("expected ErrCredentialsRequired, got %v", err)
	}
}

func TestAuthService_Login_RepoError(t *testing.T) {
	mock := &mockAdminRepo{
		GetByUsernameFn: func(username string) (*models.Admin, error) {
			return nil, errors.New("query failed")
		},
	}
	svc, _ := newTestAuthService(mock)

	if _, err := svc.Login(context.Background(), "john", "pw"); err == nil {
		t.Fatalf("expected repo error, got nil")
	}
}

// --- Authenticate tests ---

func TestAuthService_Authenticate_Malformed(t *testing.T) {
	svc, _ := newTestAuthService(&mockAdminRepo{})

	if _, err := svc.Authenticate("not-a-jwt"); !errors.Is(err, ErrNoSession) {
		t.Fatalf("expected ErrNoSession, got %v", err)
	}
}

func TestAuthService_Authenticate_ForgedSignature(t *testing.T) {
	svc, store := newTestAuthService(&mockAdminRepo{})
	sess := store.Create("diana")

	// A cookie carrying a real session id but signed with the wrong key must fail.
	forged := jwt.NewWithClaims(jwt.SigningMethodHS256, &sessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(sess.ExpiresAt),
			IssuedAt:  jwt.NewNumericDate(sess.CreatedAt),
		},
		SessionID: sess.ID,
	})
	token, err := forged.SignedString([]byte("different-key"))
	if err != nil {
		t.Fatalf("SignedString failed: %v", err)
	}

	if _, err := svc.Authenticate(token); !errors.Is(err, ErrNoSession) {
		t.Fatalf("expected ErrNoSession for forged token, got %v", err)
	}
}

func TestAuthService_Authenticate_SessionGone(t *testing.T) {
	hash, err := hashPassword("pw")
	if err != nil {
		t.Fatalf("hashPassword failed: %v", err)
	}
	mock := &mockAdminRepo{
		GetByUsernameFn: func(username string) (*models.Admin, error) {
			return &models.Admin{ID: 1, Username: "diana", PasswordHash: hash}, nil
		},
	}
	svc, store := newTestAuthService(mock)

	token, err := svc.Login(context.Background(), "diana", "pw")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	// Simulate a restart: the store is emptied, the cookie stays valid-looking.
	store.purgeExpired(time.Now().Add(48 * time.Hour))

	if _, err := svc.Authenticate(token); !errors.Is(err, ErrNoSession) {
		t.Fatalf("expected ErrNoSession after store purge, got %v", err)
	}
}

// --- CreateAdmin tests ---

func TestAuthService_CreateAdmin_HashesPassword(t *testing.T) {
	mock := &mockAdminRepo{
		CreateFn: func(username, hash string) (int64, error) {
			return 42, nil
		},
	}
	svc, _ := newTestAuthService(mock)

	id, err := svc.CreateAdmin(context.Background(), "alice", "s3cr3t")
	if err != nil {
		t.Fatalf("CreateAdmin returned error: %v", err)
	}
	if id != 42 {
		t.Fatalf("expected id 42, got %d", id)
	}

	if len(mock.createCalls) != 1 {
		t.Fatalf("expected 1 Create call, got %d", len(mock.createCalls))
	}
	call := mock.createCalls[0]
	if call.username != "alice" {
		t.Errorf("expected username 'alice', got %q", call.username)
	}
	if call.hash == "s3cr3t" {
		t.Errorf("expected hashed password not equal to raw password")
	}
	if err := verifyPassword(call.hash, "s3cr3t"); err != nil {
		t.Errorf("stored hash does not verify with original password: %v", err)
	}
}

func TestAuthService_CreateAdmin_EmptyFields(t *testing.T) {
	mock := &mockAdminRepo{
		CreateFn: func(username, hash string) (int64, error) {
			t.Fatal("Create should not be called for empty credentials")
			return 0, nil
		},
	}
	svc, _ := newTestAuthService(mock)

	if _, err := svc.CreateAdmin(context.Background(), "  ", "pw"); !errors.Is(err, ErrCredentialsRequired) {
		t.Fatalf("expected ErrCredentialsRequired, got %v", err)
	}
	if _, err := svc.CreateAdmin(context.Background(), "bob", ""); !errors.Is(err, ErrCredentialsRequired) {
		t.Fatalf("expected ErrCredentialsRequired, got %v", err)
	}
}

func TestAuthService_CreateAdmin_DuplicateUsername(t *testing.T) {
	mock := &mockAdminRepo{
		CreateFn: func(username, hash string) (int64, error) {
			return 0, repository.ErrDuplicateUsername
		},
	}
	svc, _ := newTestAuthService(mock)

	if _, err := svc.CreateAdmin(context.Background(), "alice", "pw"); !errors.Is(err, ErrUsernameTaken) {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}
}

// --- Bootstrap tests ---

func TestAuthService_EnsureDefaultAdmin_CreatesWhenMissing(t *testing.T) {
	mock := &mockAdminRepo{
		GetByUsernameFn: func(username string) (*models.Admin, error) {
			return nil, nil
		},
		CreateFn: func(username, hash string) (int64, error) {
			return 1, nil
		},
	}
	svc, _ := newTestAuthService(mock)

	created, err := svc.EnsureDefaultAdmin(context.Background())
	if err != nil {
		t.Fatalf("EnsureDefaultAdmin returned error: %v", err)
	}
	if !created {
		t.Fatalf("expected created=true")
	}

	if len(mock.createCalls) != 1 {
		t.Fatalf("expected 1 Create call, got %d", len(mock.createCalls))
	}
	call := mock.createCalls[0]
	if call.username != DefaultAdminUsername {
		t.Fatalf("expected bootstrap username %q, got %q", DefaultAdminUsername, call.username)
	}
	// The documented default password must verify against the stored hash,
	// so a first login works before rotation.
	if err := verifyPassword(call.hash, "01121000099"); err != nil {
		t.Fatalf("default password does not verify: %v", err)
	}
}

func TestAuthService_EnsureDefaultAdmin_SkipsWhenPresent(t *testing.T) {
	mock := &mockAdminRepo{
		GetByUsernameFn: func(username string) (*models.Admin, error) {
			return &models.Admin{ID: 1, Username: DefaultAdminUsername, PasswordHash: "h"}, nil
		},
		CreateFn: func(username, hash string) (int64, error) {
			t.Fatal("Create should not be called when admin exists")
			return 0, nil
		},
	}
	svc, _ := newTestAuthService(mock)

	created, err := svc.EnsureDefaultAdmin(context.Background())
	if err != nil {
		t.Fatalf("EnsureDefaultAdmin returned error: %v", err)
	}
	if created {
		t.Fatalf("expected created=false when admin exists")
	}
}

func TestAuthService_EnsureDefaultAdmin_RepoError(t *testing.T) {
	mock := &mockAdminRepo{
		GetByUsernameFn: func(username string) (*models.Admin, error) {
			return nil, errors.New("db down")
		},
	}
	svc, _ := newTestAuthService(mock)

	if _, err := svc.EnsureDefaultAdmin(context.Background()); err == nil {
		t.Fatalf("expected error, got nil")
	}
}
