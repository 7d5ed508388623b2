package user

import (
	userRepo "roomly/database/repository/user"
	"roomly/models"
)

// RegisterInput carries the fields required to create an account.
type RegisterInput struct {
	Email    string
	FullName string
	Password string
}

// AuthTokens is an issued access/refresh token pair.
type AuthTokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
}

// UserService owns account creation, credential checks and profile reads.
type UserService interface {
	Register(input RegisterInput) (*models.User, error)
	Authenticate(email, password string) (*models.User, *AuthTokens, error)
	IssueTokens(userID string) (*AuthTokens, error)
	GetByID(id string) (*models.User, error)
	UpdateProfile(id, fullName string) (*models.User, error)
	List() ([]models.User, error)
}

// DefaultUserService is the production user service.
type DefaultUserService struct {
	Repo userRepo.UserRepository
}
