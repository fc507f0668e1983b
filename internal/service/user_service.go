package service

import (
	"log/slog"

	"github.com/waldy-ctt/TFLH-BE/internal/entity"
	"github.com/waldy-ctt/TFLH-BE/internal/repository"
)

type UserService interface {
	List() ([]*entity.User, error)
	Search(query string) ([]*entity.User, error)
}

type userService struct {
	users repository.UserRepository
	log   *slog.Logger
}

func NewUserService(users repository.UserRepository, log *slog.Logger) UserService {
	return &userService{users: users, log: log}
}

func (u *userService) List() ([]*entity.User, error) {
	return u.users.GetAll()
}

func (u *userService) Search(query string) ([]*entity.User, error) {
	return u.users.Search(query)
}
