package dao

import (
	"context"
	"time"

	"gorm.io/gorm"
)

type Character struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    uint   `gorm:"not null;index"`
	Slug      string `gorm:"uniqueIndex;not null"`
	Name      string
	IsVisible bool `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

type CharacterDAO struct {
	db *gorm.DB
}

func NewCharacterDAO(db *gorm.DB) *CharacterDAO {
	return &CharacterDAO{
		db: db,
	}
}

func (d *CharacterDAO) FindVisibleBySlugs(ctx context.Context, slugs []string) ([]Character, error) {
	var characters []Character
	if len(slugs) == 0 {
		return characters, nil
	}

	result := conn(ctx, d.db).
		Where("slug IN ? AND is_visible = ?", slugs, true).
		Find(&characters)
	if result.Error != nil {
		return nil, result.Error
	}

	return characters, nil
}
