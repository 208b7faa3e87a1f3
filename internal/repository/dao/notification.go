package dao

import (
	"context"
	"time"

	"gorm.io/gorm"
)

type Notification struct {
	ID               uint                   `gorm:"primaryKey"`
	UserID           uint                   `gorm:"not null;index"`
	NotificationType string                 `gorm:"not null"`
	Data             map[string]interface{} `gorm:"type:jsonb;serializer:json"`
	IsUnread         bool                   `gorm:"not null"`
	CreatedAt        time.Time
}

type NotificationDAO struct {
	db *gorm.DB
}

func NewNotificationDAO(db *gorm.DB) *NotificationDAO {
	return &NotificationDAO{
		db: db,
	}
}

func (d *NotificationDAO) Insert(ctx context.Context, n Notification) (Notification, error) {
	if err := conn(ctx, d.db).Create(&n).Error; err != nil {
		return Notification{}, err
	}
	return n, nil
}
