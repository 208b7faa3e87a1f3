package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/vietanh2810/prompt-rewards-api/internal/domain"
	"github.com/vietanh2810/prompt-rewards-api/internal/repository/dao"
)

var (
	ErrSubmissionNotFound   = dao.ErrSubmissionNotFound
	ErrSubmissionNotPending = dao.ErrSubmissionNotPending
	ErrSubmissionContended  = dao.ErrSubmissionContended
)

type SubmissionDAO interface {
	Insert(ctx context.Context, submission dao.Submission) (dao.Submission, error)
	FindByID(ctx context.Context, id uint) (dao.Submission, error)
	FindForUpdate(ctx context.Context, id uint) (dao.Submission, error)
	UpdateReviewed(ctx context.Context, submission dao.Submission) (dao.Submission, error)
	List(ctx context.Context, status string, limit, offset int) ([]dao.Submission, error)
	InsertCharacters(ctx context.Context, characters []dao.SubmissionCharacter) ([]dao.SubmissionCharacter, error)
	DeleteCharacters(ctx context.Context, submissionID uint) error
}

type SubmissionRepository struct {
	dao SubmissionDAO
}

func NewSubmissionRepository(dao SubmissionDAO) *SubmissionRepository {
	return &SubmissionRepository{
		dao: dao,
	}
}

func (r *SubmissionRepository) Create(ctx context.Context, submission domain.Submission) (domain.Submission, error) {
	created, err := r.dao.Insert(ctx, submissionDomainToDao(submission))
	if err != nil {
		return domain.Submission{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return submissionDaoToDomain(created), nil
}

func (r *SubmissionRepository) FindByID(ctx context.Context, id uint) (domain.Submission, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Submission{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return submissionDaoToDomain(found), nil
}

func (r *SubmissionRepository) FindForReview(ctx context.Context, id uint) (domain.Submission, error) {
	found, err := r.dao.FindForUpdate(ctx, id)
	if err != nil {
		return domain.Submission{}, fmt.Errorf("r.dao.FindForUpdate -> %w", err)
	}

	return submissionDaoToDomain(found), nil
}

func (r *SubmissionRepository) UpdateReviewed(ctx context.Context, submission domain.Submission) (domain.Submission, error) {
	record := submissionDomainToDao(submission)
	record.UpdatedAt = time.Now()

	updated, err := r.dao.UpdateReviewed(ctx, record)
	if err != nil {
		return domain.Submission{}, fmt.Errorf("r.dao.UpdateReviewed -> %w", err)
	}

	return submissionDaoToDomain(updated), nil
}

func (r *SubmissionRepository) List(ctx context.Context, status domain.SubmissionStatus, limit, offset int) ([]domain.Submission, error) {
	found, err := r.dao.List(ctx, string(status), limit, offset)
	if err != nil {
		return nil, fmt.Errorf("r.dao.List -> %w", err)
	}

	submissions := make([]domain.Submission, len(found))
	for i, s := range found {
		submissions[i] = submissionDaoToDomain(s)
	}
	return submissions, nil
}

func (r *SubmissionRepository) CreateCharacterGrants(ctx context.Context, submissionID uint, grants []domain.SubmissionCharacterGrant) ([]domain.SubmissionCharacterGrant, error) {
	records := make([]dao.SubmissionCharacter, len(grants))
	for i, g := range grants {
		records[i] = dao.SubmissionCharacter{
			SubmissionID: submissionID,
			CharacterID:  g.CharacterID,
			Data:         snapshotDomainToDao(g.Data),
		}
	}

	created, err := r.dao.InsertCharacters(ctx, records)
	if err != nil {
		return nil, fmt.Errorf("r.dao.InsertCharacters -> %w", err)
	}

	return grantsDaoToDomain(created), nil
}

func (r *SubmissionRepository) DeleteCharacterGrants(ctx context.Context, submissionID uint) error {
	if err := r.dao.DeleteCharacters(ctx, submissionID); err != nil {
		return fmt.Errorf("r.dao.DeleteCharacters -> %w", err)
	}
	return nil
}

// IsContended reports whether err came from losing a row lock race.
func IsContended(err error) bool {
	return errors.Is(err, ErrSubmissionContended) || errors.Is(err, ErrSubmissionNotPending)
}
