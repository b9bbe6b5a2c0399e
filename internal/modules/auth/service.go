package auth

import (
	"context"
	"strings"

	"homeservice/internal/domain"

	"golang.org/x/crypto/bcrypt"
)

type jwtService interface {
	GenerateToken(userID int64, role string) (string, error)
}

type Service struct {
	users   UserRepositoryInterface
	workers WorkerRepositoryInterface
	jwt     jwtService
}

func NewService(users UserRepositoryInterface, workers WorkerRepositoryInterface, jwt jwtService) *Service {
	return &Service{users: users, workers: workers, jwt: jwt}
}

// Register creates an account. Role defaults to user; worker
// registrations also get an empty worker profile to fill in later.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*domain.User, string, error) {
	role := domain.RoleUser
	if strings.TrimSpace(req.Role) != "" {
		parsed, ok := domain.ParseRole(req.Role)
		if !ok {
			return nil, "", ErrInvalidRole
		}
		role = parsed
	}

	if taken, err := s.users.ExistsByUsername(ctx, req.Username); err != nil {
		return nil, "", err
	} else if taken {
		return nil, "", ErrUsernameTaken
	}
	if taken, err := s.users.ExistsByEmail(ctx, req.Email); err != nil {
		return nil, "", err
	} else if taken {
		return nil, "", ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	user := &domain.User{
		Username:     strings.TrimSpace(req.Username),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: string(hash),
		Role:         role,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, "", err
	}

	if role == domain.RoleWorker {
		name := strings.TrimSpace(req.Name)
		if name == "" {
			name = user.Username
		}
		w := &domain.Worker{
			OwnerID:    &user.ID,
			Name:       name,
			Phone:      req.Phone,
			Profession: req.Profession,
			Location:   req.Location,
			IsActive:   true,
		}
		if err := s.workers.Create(ctx, w); err != nil {
			return nil, "", err
		}
	}

	token, err := s.jwt.GenerateToken(user.ID, user.Role.String())
	if err != nil {
		return nil, "", err
	}

	user.PasswordHash = ""
	return user, token, nil
}

func (s *Service) Login(ctx context.Context, req LoginRequest) (*domain.User, string, error) {
	user, err := s.users.GetByUsername(ctx, req.Username)
	if err != nil {
		return nil, "", ErrInvalidCredentials
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.jwt.GenerateToken(user.ID, user.Role.String())
	if err != nil {
		return nil, "", err
	}

	user.PasswordHash = ""
	return user, token, nil
}
