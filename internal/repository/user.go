package repository

import (
	"context"
	"fmt"

	"github.com/vietanh2810/prompt-rewards-api/internal/domain"
	"github.com/vietanh2810/prompt-rewards-api/internal/repository/dao"
)

var (
	ErrUserNotFound = dao.ErrUserNotFound
)

type UserDAO interface {
	FindByID(ctx context.Context, id uint) (dao.User, error)
	IncrementSubmissionCount(ctx context.Context, userID uint) (int, error)
	FindSubmissionCount(ctx context.Context, userID uint) (int, error)
}

type UserRepository struct {
	dao UserDAO
}

func NewUserRepository(dao UserDAO) *UserRepository {
	return &UserRepository{
		dao: dao,
	}
}

func (r *UserRepository) FindByID(ctx context.Context, id uint) (domain.User, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *UserRepository) IncrementSubmissionCount(ctx context.Context, userID uint) (int, error) {
	count, err := r.dao.IncrementSubmissionCount(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("r.dao.IncrementSubmissionCount -> %w", err)
	}
	return count, nil
}

func (r *UserRepository) SubmissionCount(ctx context.Context, userID uint) (int, error) {
	count, err := r.dao.FindSubmissionCount(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("r.dao.FindSubmissionCount -> %w", err)
	}
	return count, nil
}

func (r *UserRepository) daoToDomain(u dao.User) domain.User {
	return domain.User{
		ID:              u.ID,
		Name:            u.Name,
		Email:           u.Email,
		IsStaff:         u.IsStaff,
		SubmissionCount: u.Settings.SubmissionCount,
		CreatedAt:       u.CreatedAt,
		UpdatedAt:       u.UpdatedAt,
	}
}
