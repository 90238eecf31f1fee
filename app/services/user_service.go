package services

import (
	"fmt"

	"mysite/app/models"
	"mysite/app/repositories"
)

// UserService manages post authors
type UserService struct {
	userRepo repositories.UserRepository
}

func NewUserService(userRepo repositories.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// CreateUser hashes password and stores a new author
func (s *UserService) CreateUser(username, email, password string) (*models.User, error) {
	user := &models.User{Username: username, Email: email}
	if err := user.SetPassword(password); err != nil {
		return nil, err
	}
	user.BeforeCreate()
	if err := user.Validate(); err != nil {
		return nil, fmt.Errorf("invalid user: %w", err)
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) GetByUsername(username string) (*models.User, error) {
	return s.userRepo.GetByUsername(username)
}

func (s *UserService) ListUsers() ([]*models.User, error) {
	return s.userRepo.List()
}
