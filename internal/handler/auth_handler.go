package handler

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hanifzr/expense-reporting-service/internal/domain"
	"github.com/hanifzr/expense-reporting-service/internal/model"
	"github.com/hanifzr/expense-reporting-service/internal/service"
)

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	authService service.AuthService
	tokenExpiry time.Duration
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService service.AuthService, tokenExpiry time.Duration) *AuthHandler {
	if tokenExpiry <= 0 {
		tokenExpiry = time.Hour
	}
	return &AuthHandler{
		authService: authService,
		tokenExpiry: tokenExpiry,
	}
}

// Signup handles user registration
// @Summary Register a new user
// @Description Create a new account. Manager accounts cannot self-register.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body model.RegisterRequest true "Registration details"
// @Success 201 {object} model.UserResponse "Registration successful"
// @Failure 400 {object} model.ErrorResponse "Bad request"
// @Failure 409 {object} model.ErrorResponse "Username or email already taken"
// @Failure 500 {object} model.ErrorResponse "Internal server error"
// @Router /v1/auth/signup [post]
func (h *AuthHandler) Signup(c *gin.Context) {
	var req model.RegisterRequest
	if err := bindJSON(c, &req); err != nil {
		respondBadRequest(c, ErrInvalidInput)
		return
	}

	input := service.RegisterInput{
		Name:     req.Name,
		Country:  req.Country,
		Number:   req.Number,
		Email:    req.Email,
		Username: req.Username,
		Password: req.Password,
		Role:     domain.Role(req.Role),
	}
	if problems := service.ValidateRegisterInput(input); len(problems) > 0 {
		respondBadRequest(c, ErrInvalidInput, buildValidationErrors(problems)...)
		return
	}

	user, err := h.authService.Register(c.Request.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrManagerSignup):
			respondBadRequest(c, "Registration failed for manager")
		case errors.Is(err, service.ErrUsernameTaken):
			respondConflict(c, "Username is already taken")
		case errors.Is(err, service.ErrEmailTaken):
			respondConflict(c, "Email is already registered")
		default:
			logError(c, "registration_failed", err, map[string]interface{}{
				"username": req.Username,
			})
			respondInternalServerError(c, "Failed to register user")
		}
		return
	}

	respondCreated(c, formatUserResponse(user))
}

// Login handles user login
// @Summary Login with username and password
// @Description Authenticate a user and issue an access token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body model.LoginRequest true "Login credentials"
// @Success 200 {object} model.AuthResponse "Login successful"
// @Failure 400 {object} model.ErrorResponse "Bad request"
// @Failure 401 {object} model.ErrorResponse "Invalid credentials"
// @Failure 500 {object} model.ErrorResponse "Internal server error"
// @Router /v1/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := bindJSON(c, &req); err != nil {
		respondBadRequest(c, ErrInvalidInput)
		return
	}

	token, user, err := h.authService.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			respondUnauthorized(c, "Invalid username or password")
			return
		}
		logError(c, "login_failed", err, map[string]interface{}{
			"username": req.Username,
		})
		respondInternalServerError(c, "Failed to login")
		return
	}

	respondOK(c, model.AuthResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int64(h.tokenExpiry.Seconds()),
		User:        formatUserResponse(user),
	})
}

// formatUserResponse formats a user for response
func formatUserResponse(user *domain.User) model.UserResponse {
	return model.UserResponse{
		ID:       user.ID,
		Name:     user.Name,
		Country:  user.Country,
		Number:   user.Number,
		Email:    user.Email,
		Username: user.Username,
		Role:     string(user.Role),
	}
}

// RegisterRoutes registers the auth routes
func (h *AuthHandler) RegisterRoutes(router *gin.Engine) {
	auth := router.Group("/api/v1/auth")
	{
		auth.POST("/signup", h.Signup)
		auth.POST("/login", h.Login)
	}
}
