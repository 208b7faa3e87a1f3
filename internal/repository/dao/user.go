package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrUserNotFound = errors.New("user not found")
)

type User struct {
	ID uint `gorm:"primaryKey"`

	Name    string `gorm:"unique;not null"`
	Email   string `gorm:"unique;not null"`
	IsStaff bool   `gorm:"not null;default:false"`

	Settings UserSettings `gorm:"foreignKey:UserID"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type UserSettings struct {
	UserID          uint `gorm:"primaryKey;autoIncrement:false"`
	SubmissionCount int  `gorm:"not null;default:0"`
	UpdatedAt       time.Time
}

type UserDAO struct {
	db *gorm.DB
}

func NewUserDAO(db *gorm.DB) *UserDAO {
	return &UserDAO{
		db: db,
	}
}

func (d *UserDAO) FindByID(ctx context.Context, id uint) (User, error) {
	var user User

	result := conn(ctx, d.db).Preload("Settings").First(&user, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return User{}, ErrUserNotFound
		}

		return User{}, result.Error
	}

	return user, nil
}

// IncrementSubmissionCount bumps the counter in a single statement and returns the new value.
func (d *UserDAO) IncrementSubmissionCount(ctx context.Context, userID uint) (int, error) {
	settings := UserSettings{UserID: userID, SubmissionCount: 1}

	result := conn(ctx, d.db).
		Clauses(
			clause.OnConflict{
				Columns: []clause.Column{{Name: "user_id"}},
				DoUpdates: clause.Assignments(map[string]interface{}{
					"submission_count": gorm.Expr("user_settings.submission_count + 1"),
					"updated_at":       gorm.Expr("EXCLUDED.updated_at"),
				}),
			},
			clause.Returning{Columns: []clause.Column{{Name: "submission_count"}}},
		).
		Create(&settings)
	if result.Error != nil {
		return 0, result.Error
	}

	return settings.SubmissionCount, nil
}

func (d *UserDAO) FindSubmissionCount(ctx context.Context, userID uint) (int, error) {
	var settings UserSettings

	result := conn(ctx, d.db).Where("user_id = ?", userID).Limit(1).Find(&settings)
	if result.Error != nil {
		return 0, result.Error
	}

	return settings.SubmissionCount, nil
}
