package handlers

import (
	"context"

	"event_rsvp/internal/models"
	"event_rsvp/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockRsvps struct {
	listResp   []models.Rsvp
	listErr    error
	createResp models.Rsvp
	createErr  error
	editErr    error
	deleteErr  error

	lastCreateName string
	lastCreateKey  string
	lastEditID     int64
	lastEditName   string
	lastEditKey    string
	lastDeleteID   int64
	lastDeleteKey  string

	listCalls   int
	createCalls int
	editCalls   int
	deleteCalls int
}

func (m *mockRsvps) List(ctx context.Context) ([]models.Rsvp, error) {
	m.listCalls++
	return m.listResp, m.listErr
}

func (m *mockRsvps) Create(ctx context.Context, name, deviceKey string) (models.Rsvp, error) {
	m.createCalls++
	m.lastCreateName = name
	m.lastCreateKey = deviceKey
	return m.createResp, m.createErr
}

func (m *mockRsvps) Edit(ctx context.Context, id int64, name, deviceKey string) error {
	m.editCalls++
	m.lastEditID = id
	m.lastEditName = name
	m.lastEditKey = deviceKey
	return m.editErr
}

func (m *mockRsvps) Delete(ctx context.Context, id int64, deviceKey string) error {
	m.deleteCalls++
	m.lastDeleteID = id
	m.lastDeleteKey = deviceKey
	return m.deleteErr
}

type mockAuth struct {
	loginToken  string
	loginErr    error
	authSession *models.Session
	authErr     error
	createID    int64
	createErr   error

	lastLoginUsername  string
	lastLoginPassword  string
	lastAuthToken      string
	lastCreateUsername string
	lastCreatePassword string
}

func (m *mockAuth) Login(ctx context.Context, username, password string) (string, error) {
	m.lastLoginUsername = username
	m.lastLoginPassword = password
	return m.loginToken, m.loginErr
}

func (m *mockAuth) Authenticate(token string) (*models.Session, error) {
	m.lastAuthToken = token
	return m.authSession, m.authErr
}

func (m *mockAuth) CreateAdmin(ctx context.Context, username, password string) (int64, error) {
	m.lastCreateUsername = username
	m.lastCreatePassword = password
	return m.createID, m.createErr
}

func (m *mockAuth) EnsureDefaultAdmin(ctx context.Context) (bool, error) {
	return false, nil
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, nil)
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}
