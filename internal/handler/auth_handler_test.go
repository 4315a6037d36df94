package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hanifzr/expense-reporting-service/internal/domain"
	"github.com/hanifzr/expense-reporting-service/internal/model"
	"github.com/hanifzr/expense-reporting-service/internal/service"
)

type stubAuthService struct {
	registerErr error
	loginErr    error
	user        *domain.User
	token       string
}

func (s *stubAuthService) Register(ctx context.Context, input service.RegisterInput) (*domain.User, error) {
	if s.registerErr != nil {
		return nil, s.registerErr
	}
	return s.user, nil
}

func (s *stubAuthService) Login(ctx context.Context, username, password string) (string, *domain.User, error) {
	if s.loginErr != nil {
		return "", nil, s.loginErr
	}
	return s.token, s.user, nil
}

func (s *stubAuthService) ValidateAccessToken(tokenString string) (*service.Claims, error) {
	return nil, service.ErrInvalidToken
}

func newAuthRouter(svc *stubAuthService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	NewAuthHandler(svc, time.Hour).RegisterRoutes(router)
	return router
}

func signupBody() []byte {
	body, _ := json.Marshal(model.RegisterRequest{
		Name:     "Jordan Lee",
		Country:  "US",
		Number:   "+1-555-0100",
		Email:    "jordan@example.com",
		Username: "jordanlee",
		Password: "hunter22",
		Role:     "employee",
	})
	return body
}

func TestSignupSuccess(t *testing.T) {
	svc := &stubAuthService{user: &domain.User{
		ID: "user-1", Name: "Jordan Lee", Username: "jordanlee",
		Email: "jordan@example.com", Role: domain.RoleEmployee,
	}}
	router := newAuthRouter(svc)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/signup", bytes.NewReader(signupBody()))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp model.UserResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "user-1", resp.ID)
	assert.Equal(t, "employee", resp.Role)
	assert.NotContains(t, w.Body.String(), "hunter22")
}

func TestSignupManagerRejected(t *testing.T) {
	svc := &stubAuthService{registerErr: service.ErrManagerSignup}
	router := newAuthRouter(svc)

	body, _ := json.Marshal(model.RegisterRequest{
		Name: "M", Country: "US", Number: "1", Email: "m@example.com",
		Username: "manager1", Password: "password", Role: "manager",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/signup", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Registration failed for manager")
}

func TestSignupDuplicateUsername(t *testing.T) {
	svc := &stubAuthService{registerErr: service.ErrUsernameTaken}
	router := newAuthRouter(svc)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/signup", bytes.NewReader(signupBody()))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestLoginSuccess(t *testing.T) {
	svc := &stubAuthService{
		token: "signed-token",
		user: &domain.User{
			ID: "user-1", Username: "jordanlee", Role: domain.RoleEmployee,
		},
	}
	router := newAuthRouter(svc)

	body, _ := json.Marshal(model.LoginRequest{Username: "jordanlee", Password: "hunter22"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp model.AuthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "signed-token", resp.AccessToken)
	assert.Equal(t, "Bearer", resp.TokenType)
	assert.Equal(t, int64(3600), resp.ExpiresIn)
	assert.Equal(t, "user-1", resp.User.ID)
}

func TestLoginInvalidCredentials(t *testing.T) {
	svc := &stubAuthService{loginErr: service.ErrInvalidCredentials}
	router := newAuthRouter(svc)

	body, _ := json.Marshal(model.LoginRequest{Username: "jordanlee", Password: "wrong"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
