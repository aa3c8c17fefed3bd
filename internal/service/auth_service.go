package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"event_rsvp/internal/models"
	"event_rsvp/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// DefaultAdminUsername is the bootstrap account created on first startup.
// Its default password comes from config and must be rotated after deploy.
const DefaultAdminUsername = "admin"

// AuthService verifies admin credentials and issues cookie session tokens.
// The cookie value is a signed JWT carrying only the session id; the session
// itself lives in the in-memory store, so a forged cookie fails signature
// verification and every session dies with the process.
type AuthService struct {
	admins            repository.AdminRepo
	sessions          *SessionStore
	signingKey        []byte
	bootstrapPassword string
}

func NewAuthService(admins repository.AdminRepo, sessions *SessionStore, cfg Config) *AuthService {
	return &AuthService{
		admins:            admins,
		sessions:          sessions,
		signingKey:        []byte(cfg.SessionSigningKey),
		bootstrapPassword: cfg.DefaultAdminPassword,
	}
}

// sessionClaims binds a JWT to a server-side session.
type sessionClaims struct {
	jwt.RegisteredClaims
	SessionID string `json:"sid"`
}

// Login checks credentials and, on success, opens a session and returns the
// signed cookie token. Unknown username and wrong password both come back as
// ErrInvalidCredentials so the response does not leak which one it was.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	if strings.TrimSpace(username) == "" || password == "" {
		return "", ErrCredentialsRequired
	}

	admin, err := s.admins.GetByUsername(ctx, username)
	if err != nil {
		return "", err
	}
	if admin == nil {
		return "", ErrInvalidCredentials
	}
	if err := verifyPassword(admin.PasswordHash, password); err != nil {
		return "", ErrInvalidCredentials
	}

	sess := s.sessions.Create(admin.Username)
	return s.signSessionToken(sess)
}

// Authenticate resolves a cookie token back to its live session.
func (s *AuthService) Authenticate(token string) (*models.Session, error) {
	claims := &sessionClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		// Ensure HMAC signing is used
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.signingKey, nil
	})
	if err != nil || !parsed.Valid {
		return nil, ErrNoSession
	}

	sess, ok := s.sessions.Get(claims.SessionID)
	if !ok {
		return nil, ErrNoSession
	}
	return sess, nil
}

// CreateAdmin registers a further staff account. The handler layer guards
// this behind an authenticated session.
func (s *AuthService) CreateAdmin(ctx context.Context, username, password string) (int64, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return 0, ErrCredentialsRequired
	}

	hash, err := hashPassword(password)
	if err != nil {
		return 0, err
	}

	id, err := s.admins.Create(ctx, username, hash)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateUsername) {
			return 0, ErrUsernameTaken
		}
		return 0, err
	}
	return id, nil
}

// EnsureDefaultAdmin creates the bootstrap "admin" account if it is absent.
// Reports whether a new account was created so main can log a rotation warning.
func (s *AuthService) EnsureDefaultAdmin(ctx context.Context) (bool, error) {
	existing, err := s.admins.GetByUsername(ctx, DefaultAdminUsername)
	if err != nil {
		return false, err
	}
	if existing != nil {
		return false, nil
	}

	hash, err := hashPassword(s.bootstrapPassword)
	if err != nil {
		return false, fmt.Errorf("hash bootstrap password: %w", err)
	}
	if _, err := s.admins.Create(ctx, DefaultAdminUsername, hash); err != nil {
		return false, fmt.Errorf("create bootstrap admin: %w", err)
	}
	return true, nil
}

// signSessionToken wraps a session id in a signed JWT for cookie transport.
func (s *AuthService) signSessionToken(sess models.Session) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &sessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(sess.ExpiresAt),
			IssuedAt:  jwt.NewNumericDate(sess.CreatedAt),
		},
		SessionID: sess.ID,
	})
	return token.SignedString(s.signingKey)
}

// helper: hash password safely
func hashPassword(password string) (string, error) {
	if strings.TrimSpace(password) == "" {
		return "", errors.New("password is empty")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// helper: verify password against hash
func verifyPassword(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}
