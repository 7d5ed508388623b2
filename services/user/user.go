package user

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"roomly/models"
	"roomly/utils"
)

// ErrEmailTaken signals a registration with an already-used email address.
var ErrEmailTaken = errors.New("email already registered")

// ErrInvalidCredentials signals a failed login attempt.
var ErrInvalidCredentials = errors.New("invalid email or password")

// ErrUserNotFound signals that the referenced user does not exist.
var ErrUserNotFound = errors.New("user not found")

// Register creates a new account with a bcrypt-hashed password.
func (s *DefaultUserService) Register(input RegisterInput) (*models.User, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, fmt.Errorf("invalid email address")
	}
	if len(input.Password) < 8 {
		return nil, fmt.Errorf("password must be at least 8 characters long")
	}

	existing, err := s.Repo.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	user := &models.User{
		ID:           uuid.New().String(),
		Email:        email,
		FullName:     strings.TrimSpace(input.FullName),
		PasswordHash: string(hash),
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.Repo.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

// Authenticate verifies credentials and issues a token pair.
func (s *DefaultUserService) Authenticate(email, password string) (*models.User, *AuthTokens, error) {
	user, err := s.Repo.GetByEmail(strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, nil, err
	}
	if user == nil || !user.IsActive {
		return nil, nil, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, nil, ErrInvalidCredentials
	}

	tokens, err := s.IssueTokens(user.ID)
	if err != nil {
		return nil, nil, err
	}
	return user, tokens, nil
}

// IssueTokens creates a fresh access/refresh token pair for the user.
func (s *DefaultUserService) IssueTokens(userID string) (*AuthTokens, error) {
	access, err := utils.GenerateAccessToken(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}
	refresh, err := utils.GenerateRefreshToken(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}
	return &AuthTokens{AccessToken: access, RefreshToken: refresh, TokenType: "bearer"}, nil
}

// GetByID retrieves a user profile.
func (s *DefaultUserService) GetByID(id string) (*models.User, error) {
	user, err := s.Repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// UpdateProfile updates the mutable profile fields.
func (s *DefaultUserService) UpdateProfile(id, fullName string) (*models.User, error) {
	user, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	user.FullName = strings.TrimSpace(fullName)
	if err := s.Repo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

// List returns all users, for participant pickers.
func (s *DefaultUserService) List() ([]models.User, error) {
	return s.Repo.GetAll()
}
