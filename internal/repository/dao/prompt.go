package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrPromptNotFound = errors.New("prompt not found")
)

type Prompt struct {
	ID       uint   `gorm:"primaryKey"`
	Name     string `gorm:"not null"`
	IsActive bool   `gorm:"not null"`
	// StartAt and EndAt bound the submission window when set.
	StartAt   *time.Time
	EndAt     *time.Time
	Rewards   []PromptReward `gorm:"foreignKey:PromptID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

type PromptReward struct {
	ID             uint   `gorm:"primaryKey"`
	PromptID       uint   `gorm:"not null;index"`
	RewardableType string `gorm:"not null"`
	RewardableID   uint   `gorm:"not null"`
	Quantity       int    `gorm:"not null"`
}

type PromptDAO struct {
	db  *gorm.DB
	now func() time.Time
}

func NewPromptDAO(db *gorm.DB) *PromptDAO {
	return &PromptDAO{
		db:  db,
		now: time.Now,
	}
}

func preloadRewards(db *gorm.DB) *gorm.DB {
	return db.Preload("Rewards", func(db *gorm.DB) *gorm.DB { return db.Order("id") })
}

// FindActive returns the prompt only while it is flagged active and inside its window.
func (d *PromptDAO) FindActive(ctx context.Context, id uint) (Prompt, error) {
	var prompt Prompt
	now := d.now()

	result := preloadRewards(conn(ctx, d.db)).
		Where("is_active = ?", true).
		Where("start_at IS NULL OR start_at <= ?", now).
		Where("end_at IS NULL OR end_at >= ?", now).
		First(&prompt, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Prompt{}, ErrPromptNotFound
		}
		return Prompt{}, result.Error
	}

	return prompt, nil
}

func (d *PromptDAO) FindByID(ctx context.Context, id uint) (Prompt, error) {
	var prompt Prompt

	result := preloadRewards(conn(ctx, d.db)).First(&prompt, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Prompt{}, ErrPromptNotFound
		}
		return Prompt{}, result.Error
	}

	return prompt, nil
}
