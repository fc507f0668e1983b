package service

import (
	"errors"
	"log/slog"
	"time"

	"gorm.io/gorm"

	"github.com/waldy-ctt/TFLH-BE/internal/entity"
	"github.com/waldy-ctt/TFLH-BE/internal/repository"
)

var (
	ErrUsernameTaken      = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

type AuthService interface {
	SignUp(username, password string) (*entity.User, error)
	SignIn(username, password string) (*entity.User, error)
}

type authService struct {
	users repository.UserRepository
	log   *slog.Logger
}

func NewAuthService(users repository.UserRepository, log *slog.Logger) AuthService {
	return &authService{users: users, log: log}
}

func (a *authService) SignUp(username, password string) (*entity.User, error) {
	user := &entity.User{
		Username:  username,
		Password:  password,
		CreatedAt: time.Now(),
	}
	if err := a.users.Create(user); err != nil {
		if errors.Is(err, repository.ErrDuplicateUsername) {
			return nil, ErrUsernameTaken
		}
		return nil, err
	}
	a.log.Info("user created", "user", user.ID, "username", user.Username)
	return user, nil
}

// SignIn compares credentials as stored. This is deliberately not a
// security model; see the project notes.
func (a *authService) SignIn(username, password string) (*entity.User, error) {
	user, err := a.users.GetByCredentials(username, password)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	return user, nil
}
