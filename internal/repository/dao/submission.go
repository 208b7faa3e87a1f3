package dao

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrSubmissionNotFound   = errors.New("submission not found")
	ErrSubmissionNotPending = errors.New("submission is not pending")
	ErrSubmissionContended  = errors.New("submission is being reviewed concurrently")
)

const (
	StatusPending  = "Pending"
	StatusApproved = "Approved"
	StatusRejected = "Rejected"
)

type SnapshotEntry struct {
	Kind        string `json:"kind"`
	ReferenceID uint   `json:"reference_id"`
	Quantity    int    `json:"quantity"`
}

type Submission struct {
	ID            uint   `gorm:"primaryKey"`
	PromptID      uint   `gorm:"not null;index"`
	UserID        uint   `gorm:"not null;index"`
	URL           string `gorm:"not null"`
	Comments      string
	Status        string `gorm:"not null;index;default:Pending"`
	StaffID       *uint
	StaffComments string
	Data          []SnapshotEntry       `gorm:"type:jsonb;serializer:json"`
	Characters    []SubmissionCharacter `gorm:"foreignKey:SubmissionID;constraint:OnDelete:CASCADE"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type SubmissionCharacter struct {
	ID           uint            `gorm:"primaryKey"`
	SubmissionID uint            `gorm:"not null;index"`
	CharacterID  uint            `gorm:"not null;index"`
	Data         []SnapshotEntry `gorm:"type:jsonb;serializer:json"`
}

func (SubmissionCharacter) TableName() string {
	return "submission_characters"
}

type SubmissionDAO struct {
	db *gorm.DB
}

func NewSubmissionDAO(db *gorm.DB) *SubmissionDAO {
	return &SubmissionDAO{
		db: db,
	}
}

func isLockConflict(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == pgerrcode.LockNotAvailable ||
		pgErr.Code == pgerrcode.SerializationFailure ||
		pgErr.Code == pgerrcode.DeadlockDetected
}

func (d *SubmissionDAO) Insert(ctx context.Context, submission Submission) (Submission, error) {
	result := conn(ctx, d.db).Omit("Characters").Create(&submission)
	if result.Error != nil {
		return Submission{}, result.Error
	}

	return submission, nil
}

func (d *SubmissionDAO) FindByID(ctx context.Context, id uint) (Submission, error) {
	var submission Submission

	result := conn(ctx, d.db).
		Preload("Characters", func(db *gorm.DB) *gorm.DB { return db.Order("id") }).
		First(&submission, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Submission{}, ErrSubmissionNotFound
		}
		return Submission{}, result.Error
	}

	return submission, nil
}

// FindForUpdate row-locks the submission until the surrounding transaction ends.
// A second reviewer blocks here and then observes the first reviewer's status.
func (d *SubmissionDAO) FindForUpdate(ctx context.Context, id uint) (Submission, error) {
	var submission Submission

	result := conn(ctx, d.db).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&submission, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Submission{}, ErrSubmissionNotFound
		}
		if isLockConflict(result.Error) {
			return Submission{}, ErrSubmissionContended
		}
		return Submission{}, result.Error
	}

	return submission, nil
}

// UpdateReviewed writes the staff decision. The status guard makes the write a no-op
// when another transaction already moved the submission out of Pending.
func (d *SubmissionDAO) UpdateReviewed(ctx context.Context, submission Submission) (Submission, error) {
	result := conn(ctx, d.db).
		Model(&Submission{ID: submission.ID}).
		Where("status = ?", StatusPending).
		Select("Status", "StaffID", "StaffComments", "Data", "UpdatedAt").
		Updates(&submission)
	if result.Error != nil {
		if isLockConflict(result.Error) {
			return Submission{}, ErrSubmissionContended
		}
		return Submission{}, result.Error
	}
	if result.RowsAffected == 0 {
		return Submission{}, ErrSubmissionNotPending
	}

	return submission, nil
}

func (d *SubmissionDAO) List(ctx context.Context, status string, limit, offset int) ([]Submission, error) {
	var submissions []Submission

	query := conn(ctx, d.db).Order("id").Limit(limit).Offset(offset)
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if err := query.Find(&submissions).Error; err != nil {
		return nil, err
	}

	return submissions, nil
}

func (d *SubmissionDAO) InsertCharacters(ctx context.Context, characters []SubmissionCharacter) ([]SubmissionCharacter, error) {
	if len(characters) == 0 {
		return characters, nil
	}

	if err := conn(ctx, d.db).Create(&characters).Error; err != nil {
		return nil, err
	}

	return characters, nil
}

func (d *SubmissionDAO) DeleteCharacters(ctx context.Context, submissionID uint) error {
	return conn(ctx, d.db).
		Where("submission_id = ?", submissionID).
		Delete(&SubmissionCharacter{}).Error
}
