package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.mongodb.org/mongo-driver/bson"

	"roomly/config"
	"roomly/models"
)

type memUserRepo struct {
	users map[string]*models.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[string]*models.User)}
}

func (m *memUserRepo) GetByID(id string) (*models.User, error) {
	if u, ok := m.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func (m *memUserRepo) GetByEmail(email string) (*models.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memUserRepo) GetAll() ([]models.User, error) {
	out := make([]models.User, 0, len(m.users))
	for _, u := range m.users {
		out = append(out, *u)
	}
	return out, nil
}

func (m *memUserRepo) Create(user *models.User) error {
	cp := *user
	m.users[user.ID] = &cp
	return nil
}

func (m *memUserRepo) Update(user *models.User) error {
	cp := *user
	m.users[user.ID] = &cp
	return nil
}

func (m *memUserRepo) GetByIDWithProjection(id string, _ bson.M) (*models.User, error) {
	return m.GetByID(id)
}

func newTestUserService(t *testing.T) *DefaultUserService {
	t.Helper()
	config.AppConfig.JWTSecret = "test-secret"
	config.AppConfig.AccessTokenMinutes = 30
	config.AppConfig.RefreshTokenDays = 7
	return &DefaultUserService{Repo: newMemUserRepo()}
}

func TestRegister(t *testing.T) {
	svc := newTestUserService(t)

	usr, err := svc.Register(RegisterInput{
		Email:    "  Alice@Example.COM ",
		FullName: "Alice Doe",
		Password: "correct horse",
	})
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", usr.Email)
	assert.NotEmpty(t, usr.ID)
	assert.True(t, usr.IsActive)
	assert.NotEqual(t, "correct horse", usr.PasswordHash)
}

func TestRegisterValidation(t *testing.T) {
	svc := newTestUserService(t)

	_, err := svc.Register(RegisterInput{Email: "not-an-email", Password: "long enough"})
	assert.Error(t, err)

	_, err = svc.Register(RegisterInput{Email: "a@b.com", Password: "short"})
	assert.Error(t, err)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := newTestUserService(t)

	_, err := svc.Register(RegisterInput{Email: "a@b.com", FullName: "A", Password: "password1"})
	require.NoError(t, err)

	_, err = svc.Register(RegisterInput{Email: "A@B.com", FullName: "A2", Password: "password2"})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestAuthenticate(t *testing.T) {
	svc := newTestUserService(t)

	registered, err := svc.Register(RegisterInput{Email: "a@b.com", FullName: "A", Password: "password1"})
	require.NoError(t, err)

	usr, tokens, err := svc.Authenticate("a@b.com", "password1")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, usr.ID)
	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEmpty(t, tokens.RefreshToken)
	assert.Equal(t, "bearer", tokens.TokenType)

	_, _, err = svc.Authenticate("a@b.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = svc.Authenticate("ghost@b.com", "password1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthenticateInactiveUser(t *testing.T) {
	svc := newTestUserService(t)

	usr, err := svc.Register(RegisterInput{Email: "a@b.com", FullName: "A", Password: "password1"})
	require.NoError(t, err)

	usr.IsActive = false
	require.NoError(t, svc.Repo.Update(usr))

	_, _, err = svc.Authenticate("a@b.com", "password1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestUpdateProfile(t *testing.T) {
	svc := newTestUserService(t)

	usr, err := svc.Register(RegisterInput{Email: "a@b.com", FullName: "A", Password: "password1"})
	require.NoError(t, err)

	updated, err := svc.UpdateProfile(usr.ID, "  Alice Updated ")
	require.NoError(t, err)
	assert.Equal(t, "Alice Updated", updated.FullName)

	_, err = svc.UpdateProfile("missing", "X")
	assert.ErrorIs(t, err, ErrUserNotFound)
}
