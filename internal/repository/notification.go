package repository

import (
	"context"
	"fmt"

	"github.com/vietanh2810/prompt-rewards-api/internal/domain"
	"github.com/vietanh2810/prompt-rewards-api/internal/repository/dao"
)

type NotificationDAO interface {
	Insert(ctx context.Context, n dao.Notification) (dao.Notification, error)
}

// NotificationRepository stores notifications for the recipient's inbox.
type NotificationRepository struct {
	dao NotificationDAO
}

func NewNotificationRepository(dao NotificationDAO) *NotificationRepository {
	return &NotificationRepository{
		dao: dao,
	}
}

func (r *NotificationRepository) Notify(ctx context.Context, event domain.NotificationEvent, recipientID uint, payload map[string]interface{}) error {
	_, err := r.dao.Insert(ctx, dao.Notification{
		UserID:           recipientID,
		NotificationType: string(event),
		Data:             payload,
		IsUnread:         true,
	})
	if err != nil {
		return fmt.Errorf("r.dao.Insert -> %w", err)
	}
	return nil
}
