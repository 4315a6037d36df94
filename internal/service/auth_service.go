package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/hanifzr/expense-reporting-service/internal/domain"
	"github.com/hanifzr/expense-reporting-service/internal/repository"
)

// Common auth service errors
var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUsernameTaken      = errors.New("username is already taken")
	ErrEmailTaken         = errors.New("email is already registered")
	ErrManagerSignup      = errors.New("registration failed for manager")
	ErrInvalidToken       = errors.New("invalid or expired token")
)

// Claims is the JWT payload issued at login
type Claims struct {
	UserID string      `json:"userId"`
	Role   domain.Role `json:"role"`
	jwt.RegisteredClaims
}

// RegisterInput carries the fields required to create an account
type RegisterInput struct {
	Name     string
	Country  string
	Number   string
	Email    string
	Username string
	Password string
	Role     domain.Role
}

// AuthService defines authentication and account operations
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	Login(ctx context.Context, username, password string) (string, *domain.User, error)
	ValidateAccessToken(tokenString string) (*Claims, error)
}

// AuthServiceImpl implements AuthService
type AuthServiceImpl struct {
	repository  repository.UserRepository
	jwtSecret   []byte
	tokenExpiry time.Duration
}

// NewAuthService creates a new AuthService
func NewAuthService(repo repository.UserRepository, jwtSecret string, tokenExpiry time.Duration) *AuthServiceImpl {
	if tokenExpiry <= 0 {
		tokenExpiry = time.Hour
	}
	return &AuthServiceImpl{
		repository:  repo,
		jwtSecret:   []byte(jwtSecret),
		tokenExpiry: tokenExpiry,
	}
}

// ValidateRegisterInput checks required fields, returning a map of
// field name to problem for the transport layer.
func ValidateRegisterInput(input RegisterInput) map[string]string {
	problems := map[string]string{}

	if input.Name == "" {
		problems["name"] = "Name is required"
	}
	if input.Country == "" {
		problems["country"] = "Country is required"
	}
	if input.Number == "" {
		problems["number"] = "Phone number is required"
	}
	if input.Email == "" {
		problems["email"] = "Email is required"
	}
	if input.Username == "" {
		problems["username"] = "Username is required"
	}
	if len(input.Password) < 6 {
		problems["password"] = "Password must be at least 6 characters"
	}
	if !input.Role.IsValid() {
		problems["role"] = fmt.Sprintf("%s is not a valid role", input.Role)
	}

	return problems
}

// Register creates a new account. Manager accounts are provisioned by
// an admin, never self-registered.
func (s *AuthServiceImpl) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	if input.Role == domain.RoleManager {
		return nil, ErrManagerSignup
	}

	if _, err := s.repository.GetUserByUsername(ctx, input.Username); err == nil {
		return nil, ErrUsernameTaken
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, &ServiceError{Op: "check_username", Err: err}
	}

	if _, err := s.repository.GetUserByEmail(ctx, input.Email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, &ServiceError{Op: "check_email", Err: err}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, &ServiceError{Op: "hash_password", Err: err}
	}

	user := &domain.User{
		Name:         input.Name,
		Country:      input.Country,
		Number:       input.Number,
		Email:        input.Email,
		Username:     input.Username,
		PasswordHash: string(hash),
		Role:         input.Role,
	}
	if err := s.repository.CreateUser(ctx, user); err != nil {
		return nil, &ServiceError{Op: "create_user", Err: err}
	}
	return user, nil
}

// Login verifies credentials and issues a signed access token. The
// same error is returned for an unknown username and a wrong password
// so the response does not reveal which accounts exist.
func (s *AuthServiceImpl) Login(ctx context.Context, username, password string) (string, *domain.User, error) {
	user, err := s.repository.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, &ServiceError{Op: "get_user", Err: err}
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.issueToken(user)
	if err != nil {
		return "", nil, &ServiceError{Op: "sign_token", Err: err}
	}
	return token, user, nil
}

func (s *AuthServiceImpl) issueToken(user *domain.User) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: user.ID,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenExpiry)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

// ValidateAccessToken parses and verifies an access token, returning
// its claims.
func (s *AuthServiceImpl) ValidateAccessToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
