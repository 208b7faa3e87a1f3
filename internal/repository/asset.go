package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/vietanh2810/prompt-rewards-api/internal/domain"
	"github.com/vietanh2810/prompt-rewards-api/internal/repository/dao"
)

var (
	ErrAssetMissing      = dao.ErrAssetMissing
	ErrBalanceOutOfRange = dao.ErrBalanceOutOfRange
)

type AssetDAO interface {
	Credit(ctx context.Context, owned dao.OwnedAsset) error
	InsertLog(ctx context.Context, log dao.AssetLog) (dao.AssetLog, error)
	FindByOwner(ctx context.Context, ownerType string, ownerID uint) ([]dao.OwnedAsset, error)
}

type AssetLocker interface {
	LockAsset(ctx context.Context, rewardableType string, id uint) error
}

type AssetRepository struct {
	dao    AssetDAO
	locker AssetLocker
}

func NewAssetRepository(dao AssetDAO, locker AssetLocker) *AssetRepository {
	return &AssetRepository{
		dao:    dao,
		locker: locker,
	}
}

// Credit share-locks the catalog row and then increments the balance atomically.
// ErrAssetMissing is returned when the asset was deleted in the meantime, and
// ErrBalanceOutOfRange when the new balance would be negative or overflow.
func (r *AssetRepository) Credit(ctx context.Context, owner domain.Owner, asset domain.AssetKey, quantity int) error {
	if err := r.locker.LockAsset(ctx, string(asset.Kind), asset.ID); err != nil {
		return fmt.Errorf("r.locker.LockAsset -> %w", err)
	}

	err := r.dao.Credit(ctx, dao.OwnedAsset{
		OwnerType: string(owner.Type),
		OwnerID:   owner.ID,
		AssetKind: string(asset.Kind),
		AssetID:   asset.ID,
		Quantity:  quantity,
		UpdatedAt: time.Now(),
	})
	if err != nil {
		return fmt.Errorf("r.dao.Credit -> %w", err)
	}
	return nil
}

func (r *AssetRepository) WriteLog(ctx context.Context, log domain.AssetLog) error {
	_, err := r.dao.InsertLog(ctx, dao.AssetLog{
		CorrelationID: log.CorrelationID,
		SenderID:      log.SenderID,
		RecipientType: string(log.Recipient.Type),
		RecipientID:   log.Recipient.ID,
		AssetKind:     string(log.Asset.Kind),
		AssetID:       log.Asset.ID,
		Quantity:      log.Quantity,
		LogType:       log.LogType,
		Data:          log.Data,
	})
	if err != nil {
		return fmt.Errorf("r.dao.InsertLog -> %w", err)
	}
	return nil
}

func (r *AssetRepository) Holdings(ctx context.Context, owner domain.Owner) ([]domain.OwnedAsset, error) {
	found, err := r.dao.FindByOwner(ctx, string(owner.Type), owner.ID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByOwner -> %w", err)
	}

	owned := make([]domain.OwnedAsset, len(found))
	for i, o := range found {
		owned[i] = ownedAssetDaoToDomain(o)
	}
	return owned, nil
}
