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

const (
	OwnerUser      = "User"
	OwnerCharacter = "Character"
)

var (
	ErrBalanceOutOfRange = errors.New("resulting balance is out of range")
)

// OwnedAsset holds one owner's balance of one asset. The composite unique index is
// what the credit upsert conflicts on.
type OwnedAsset struct {
	ID        uint   `gorm:"primaryKey"`
	OwnerType string `gorm:"not null;uniqueIndex:idx_owned_assets_owner_asset"`
	OwnerID   uint   `gorm:"not null;uniqueIndex:idx_owned_assets_owner_asset"`
	AssetKind string `gorm:"not null;uniqueIndex:idx_owned_assets_owner_asset"`
	AssetID   uint   `gorm:"not null;uniqueIndex:idx_owned_assets_owner_asset"`
	Quantity  int    `gorm:"not null;check:quantity >= 0"`
	UpdatedAt time.Time
}

type AssetLog struct {
	ID            uint   `gorm:"primaryKey"`
	CorrelationID string `gorm:"type:uuid;index"`
	SenderID      uint   `gorm:"not null"`
	RecipientType string `gorm:"not null;index:idx_asset_logs_recipient"`
	RecipientID   uint   `gorm:"not null;index:idx_asset_logs_recipient"`
	AssetKind     string `gorm:"not null"`
	AssetID       uint   `gorm:"not null"`
	Quantity      int    `gorm:"not null"`
	LogType       string `gorm:"not null"`
	Data          string
	CreatedAt     time.Time
}

type AssetDAO struct {
	db *gorm.DB
}

func NewAssetDAO(db *gorm.DB) *AssetDAO {
	return &AssetDAO{
		db: db,
	}
}

// Credit adds quantity to the owner's balance with one INSERT .. ON CONFLICT statement,
// so concurrent grants to the same owner and asset never lose an update.
func (d *AssetDAO) Credit(ctx context.Context, owned OwnedAsset) error {
	result := conn(ctx, d.db).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "owner_type"}, {Name: "owner_id"}, {Name: "asset_kind"}, {Name: "asset_id"},
			},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"quantity":   gorm.Expr("owned_assets.quantity + EXCLUDED.quantity"),
				"updated_at": gorm.Expr("EXCLUDED.updated_at"),
			}),
		}).
		Create(&owned)
	if result.Error != nil {
		var pgErr *pgconn.PgError
		if errors.As(result.Error, &pgErr) &&
			(pgErr.Code == pgerrcode.CheckViolation || pgErr.Code == pgerrcode.NumericValueOutOfRange) {
			return ErrBalanceOutOfRange
		}
		return result.Error
	}

	return nil
}

func (d *AssetDAO) InsertLog(ctx context.Context, log AssetLog) (AssetLog, error) {
	if err := conn(ctx, d.db).Create(&log).Error; err != nil {
		return AssetLog{}, err
	}
	return log, nil
}

func (d *AssetDAO) FindByOwner(ctx context.Context, ownerType string, ownerID uint) ([]OwnedAsset, error) {
	var owned []OwnedAsset

	result := conn(ctx, d.db).
		Where("owner_type = ? AND owner_id = ? AND quantity > 0", ownerType, ownerID).
		Order("asset_kind").Order("asset_id").
		Find(&owned)
	if result.Error != nil {
		return nil, result.Error
	}

	return owned, nil
}
