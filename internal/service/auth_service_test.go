package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/hanifzr/expense-reporting-service/internal/domain"
	"github.com/hanifzr/expense-reporting-service/internal/repository"
)

type stubUserRepo struct {
	users  map[string]*domain.User
	nextID int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: map[string]*domain.User{}, nextID: 1}
}

func (r *stubUserRepo) CreateUser(ctx context.Context, user *domain.User) error {
	user.ID = string(rune('0' + r.nextID))
	r.nextID++
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	stored := *user
	r.users[user.ID] = &stored
	return nil
}

func (r *stubUserRepo) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	user, ok := r.users[userID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return user, nil
}

func (r *stubUserRepo) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	for _, user := range r.users {
		if user.Username == username {
			return user, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *stubUserRepo) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, repository.ErrNotFound
}

func validRegisterInput() RegisterInput {
	return RegisterInput{
		Name:     "Jordan Lee",
		Country:  "US",
		Number:   "+1-555-0100",
		Email:    "jordan@example.com",
		Username: "jordanlee",
		Password: "hunter22",
		Role:     domain.RoleEmployee,
	}
}

func TestRegisterHashesPassword(t *testing.T) {
	svc := NewAuthService(newStubUserRepo(), "test-secret", time.Hour)

	user, err := svc.Register(context.Background(), validRegisterInput())
	require.NoError(t, err)

	assert.NotEmpty(t, user.ID)
	assert.NotEqual(t, "hunter22", user.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("hunter22")))
}

func TestRegisterRejectsManagerRole(t *testing.T) {
	svc := NewAuthService(newStubUserRepo(), "test-secret", time.Hour)

	input := validRegisterInput()
	input.Role = domain.RoleManager
	_, err := svc.Register(context.Background(), input)
	assert.ErrorIs(t, err, ErrManagerSignup)
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	svc := NewAuthService(newStubUserRepo(), "test-secret", time.Hour)

	_, err := svc.Register(context.Background(), validRegisterInput())
	require.NoError(t, err)

	dup := validRegisterInput()
	dup.Email = "other@example.com"
	_, err = svc.Register(context.Background(), dup)
	assert.ErrorIs(t, err, ErrUsernameTaken)

	dup = validRegisterInput()
	dup.Username = "someoneelse"
	_, err = svc.Register(context.Background(), dup)
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestValidateRegisterInput(t *testing.T) {
	problems := ValidateRegisterInput(RegisterInput{Password: "short", Role: "ceo"})
	for _, field := range []string{"name", "country", "number", "email", "username", "password", "role"} {
		assert.Contains(t, problems, field)
	}

	assert.Empty(t, ValidateRegisterInput(validRegisterInput()))
}

func TestLoginIssuesValidToken(t *testing.T) {
	svc := NewAuthService(newStubUserRepo(), "test-secret", time.Hour)

	registered, err := svc.Register(context.Background(), validRegisterInput())
	require.NoError(t, err)

	token, user, err := svc.Login(context.Background(), "jordanlee", "hunter22")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)

	claims, err := svc.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, registered.ID, claims.UserID)
	assert.Equal(t, domain.RoleEmployee, claims.Role)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc := NewAuthService(newStubUserRepo(), "test-secret", time.Hour)

	_, err := svc.Register(context.Background(), validRegisterInput())
	require.NoError(t, err)

	_, _, err = svc.Login(context.Background(), "jordanlee", "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = svc.Login(context.Background(), "nobody", "hunter22")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestValidateAccessTokenRejectsForeignSignature(t *testing.T) {
	issuer := NewAuthService(newStubUserRepo(), "secret-a", time.Hour)
	verifier := NewAuthService(newStubUserRepo(), "secret-b", time.Hour)

	_, err := issuer.Register(context.Background(), validRegisterInput())
	require.NoError(t, err)
	token, _, err := issuer.Login(context.Background(), "jordanlee", "hunter22")
	require.NoError(t, err)

	_, err = verifier.ValidateAccessToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
