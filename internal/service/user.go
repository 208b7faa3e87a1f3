package service

import (
	"context"
	"fmt"

	"github.com/vietanh2810/prompt-rewards-api/internal/domain"
	"github.com/vietanh2810/prompt-rewards-api/internal/repository"
)

var (
	ErrUserNotFound = repository.ErrUserNotFound
)

type UserRepository interface {
	FindByID(ctx context.Context, id uint) (domain.User, error)
	SubmissionCount(ctx context.Context, userID uint) (int, error)
}

type UserService struct {
	repo UserRepository
}

func NewUserService(repo UserRepository) *UserService {
	return &UserService{
		repo: repo,
	}
}

func (s *UserService) GetUser(ctx context.Context, id uint) (domain.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.User{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return user, nil
}

func (s *UserService) GetSubmissionCount(ctx context.Context, userID uint) (int, error) {
	count, err := s.repo.SubmissionCount(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("s.repo.SubmissionCount -> %w", err)
	}

	return count, nil
}
