package auth

import (
	"context"
	"testing"

	"homeservice/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, u *domain.User) error {
	args := m.Called(ctx, u)
	if u != nil {
		u.ID = 42 // simulate DB insert
	}
	return args.Error(0)
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	args := m.Called(ctx, username)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

type MockWorkerRepository struct {
	mock.Mock
}

func (m *MockWorkerRepository) Create(ctx context.Context, w *domain.Worker) error {
	args := m.Called(ctx, w)
	return args.Error(0)
}

type fakeJWT struct{}

func (fakeJWT) GenerateToken(userID int64, role string) (string, error) {
	return "test-token", nil
}

func TestService_Register_DefaultsToUserRole(t *testing.T) {
	users := new(MockUserRepository)
	workers := new(MockWorkerRepository)

	users.On("ExistsByUsername", mock.Anything, "alice").Return(false, nil)
	users.On("ExistsByEmail", mock.Anything, "Alice@Example.com").Return(false, nil)
	users.On("Create", mock.Anything, mock.AnythingOfType("*domain.User")).Return(nil)

	svc := NewService(users, workers, fakeJWT{})

	user, token, err := svc.Register(context.Background(), RegisterRequest{
		Username: "alice",
		Email:    "Alice@Example.com",
		Password: "password123",
	})

	assert.NoError(t, err)
	assert.Equal(t, "test-token", token)
	assert.Equal(t, domain.RoleUser, user.Role)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.Empty(t, user.PasswordHash)
	workers.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestService_Register_WorkerGetsProfile(t *testing.T) {
	users := new(MockUserRepository)
	workers := new(MockWorkerRepository)

	users.On("ExistsByUsername", mock.Anything, "bob_plumber").Return(false, nil)
	users.On("ExistsByEmail", mock.Anything, "bob@example.com").Return(false, nil)
	users.On("Create", mock.Anything, mock.AnythingOfType("*domain.User")).Return(nil)
	workers.On("Create", mock.Anything, mock.MatchedBy(func(w *domain.Worker) bool {
		return w.OwnerID != nil && *w.OwnerID == 42 && w.Name == "Bob the Plumber" && w.IsActive
	})).Return(nil)

	svc := NewService(users, workers, fakeJWT{})

	user, _, err := svc.Register(context.Background(), RegisterRequest{
		Username:   "bob_plumber",
		Email:      "bob@example.com",
		Password:   "password123",
		Role:       "Worker",
		Name:       "Bob the Plumber",
		Profession: "plumber",
	})

	assert.NoError(t, err)
	assert.Equal(t, domain.RoleWorker, user.Role)
	workers.AssertExpectations(t)
}

func TestService_Register_InvalidRole(t *testing.T) {
	svc := NewService(new(MockUserRepository), new(MockWorkerRepository), fakeJWT{})

	_, _, err := svc.Register(context.Background(), RegisterRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "password123",
		Role:     "admin",
	})

	assert.ErrorIs(t, err, ErrInvalidRole)
}

func TestService_Register_DuplicateUsername(t *testing.T) {
	users := new(MockUserRepository)
	users.On("ExistsByUsername", mock.Anything, "alice").Return(true, nil)

	svc := NewService(users, new(MockWorkerRepository), fakeJWT{})

	_, _, err := svc.Register(context.Background(), RegisterRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "password123",
	})

	assert.ErrorIs(t, err, ErrUsernameTaken)
}

func TestService_Login(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	assert.NoError(t, err)

	users := new(MockUserRepository)
	users.On("GetByUsername", mock.Anything, "alice").Return(&domain.User{
		ID:           42,
		Username:     "alice",
		PasswordHash: string(hash),
		Role:         domain.RoleUser,
	}, nil)
	users.On("GetByUsername", mock.Anything, "ghost").Return(nil, gorm.ErrRecordNotFound)

	svc := NewService(users, new(MockWorkerRepository), fakeJWT{})

	user, token, err := svc.Login(context.Background(), LoginRequest{Username: "alice", Password: "password123"})
	assert.NoError(t, err)
	assert.Equal(t, "test-token", token)
	assert.Empty(t, user.PasswordHash)

	_, _, err = svc.Login(context.Background(), LoginRequest{Username: "alice", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = svc.Login(context.Background(), LoginRequest{Username: "ghost", Password: "password123"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
