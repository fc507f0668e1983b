package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/waldy-ctt/TFLH-BE/internal/entity"
)

// ErrDuplicateUsername is returned when a signup reuses a taken username.
var ErrDuplicateUsername = errors.New("username already exists")

type UserRepository interface {
	Create(user *entity.User) error

	GetByID(id uint) (*entity.User, error)
	GetByCredentials(username, password string) (*entity.User, error)
	GetAll() ([]*entity.User, error)
	Search(query string) ([]*entity.User, error)
}

type SQLiteUserRepository struct {
	db *gorm.DB
}

func NewSQLiteUserRepository(db *gorm.DB) UserRepository {
	return &SQLiteUserRepository{db}
}

func (repo *SQLiteUserRepository) Create(user *entity.User) error {
	return repo.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&entity.User{}).Where("username = ?", user.Username).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrDuplicateUsername
		}
		return tx.Create(user).Error
	})
}

func (repo *SQLiteUserRepository) GetByID(id uint) (*entity.User, error) {
	var user entity.User
	if err := repo.db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (repo *SQLiteUserRepository) GetByCredentials(username, password string) (*entity.User, error) {
	var user entity.User
	err := repo.db.Where("username = ? AND password = ?", username, password).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (repo *SQLiteUserRepository) GetAll() ([]*entity.User, error) {
	var users []*entity.User
	err := repo.db.Order("username ASC").Find(&users).Error
	return users, err
}

func (repo *SQLiteUserRepository) Search(query string) ([]*entity.User, error) {
	var users []*entity.User
	err := repo.db.Where("username LIKE ?", "%"+query+"%").Limit(10).Find(&users).Error
	return users, err
}
