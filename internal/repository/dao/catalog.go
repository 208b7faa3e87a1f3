package dao

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrCatalogEntryNotFound = errors.New("catalog entry not found")
	ErrAssetMissing         = errors.New("referenced asset no longer exists")
)

// Rewardable types as stored in the polymorphic rewardable_type columns.
const (
	RewardableCurrency  = "Currency"
	RewardableItem      = "Item"
	RewardableLootTable = "LootTable"
)

type Item struct {
	ID          uint   `gorm:"primaryKey"`
	Name        string `gorm:"not null"`
	Description string
}

type Currency struct {
	ID               uint   `gorm:"primaryKey"`
	Name             string `gorm:"not null"`
	IsUserOwned      bool   `gorm:"not null"`
	IsCharacterOwned bool   `gorm:"not null"`
}

type LootTable struct {
	ID      uint             `gorm:"primaryKey"`
	Name    string           `gorm:"not null"`
	Entries []LootTableEntry `gorm:"foreignKey:LootTableID;constraint:OnDelete:CASCADE"`
}

type LootTableEntry struct {
	ID             uint   `gorm:"primaryKey"`
	LootTableID    uint   `gorm:"not null;index"`
	RewardableType string `gorm:"not null"`
	RewardableID   uint   `gorm:"not null"`
	Quantity       int    `gorm:"not null;default:1"`
	Weight         int    `gorm:"not null"`
}

type CatalogDAO struct {
	db *gorm.DB
}

func NewCatalogDAO(db *gorm.DB) *CatalogDAO {
	return &CatalogDAO{
		db: db,
	}
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrCatalogEntryNotFound
	}
	return err
}

func (d *CatalogDAO) FindItem(ctx context.Context, id uint) (Item, error) {
	var item Item
	if err := conn(ctx, d.db).First(&item, id).Error; err != nil {
		return Item{}, notFound(err)
	}
	return item, nil
}

func (d *CatalogDAO) FindCurrency(ctx context.Context, id uint) (Currency, error) {
	var currency Currency
	if err := conn(ctx, d.db).First(&currency, id).Error; err != nil {
		return Currency{}, notFound(err)
	}
	return currency, nil
}

func (d *CatalogDAO) FindCurrencies(ctx context.Context, ids []uint) ([]Currency, error) {
	var currencies []Currency
	if len(ids) == 0 {
		return currencies, nil
	}

	result := conn(ctx, d.db).Where("id IN ?", ids).Order("id").Find(&currencies)
	if result.Error != nil {
		return nil, result.Error
	}
	return currencies, nil
}

func (d *CatalogDAO) FindLootTable(ctx context.Context, id uint) (LootTable, error) {
	var table LootTable
	result := conn(ctx, d.db).
		Preload("Entries", func(db *gorm.DB) *gorm.DB { return db.Order("id") }).
		First(&table, id)
	if result.Error != nil {
		return LootTable{}, notFound(result.Error)
	}
	return table, nil
}

// LockAsset takes a share lock on the catalog row so it cannot be deleted until the
// surrounding transaction ends.
func (d *CatalogDAO) LockAsset(ctx context.Context, rewardableType string, id uint) error {
	var model interface{}
	switch rewardableType {
	case RewardableItem:
		model = &Item{}
	case RewardableCurrency:
		model = &Currency{}
	case RewardableLootTable:
		model = &LootTable{}
	default:
		return fmt.Errorf("unknown rewardable type %q", rewardableType)
	}

	result := conn(ctx, d.db).
		Clauses(clause.Locking{Strength: "SHARE"}).
		Select("id").
		First(model, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return ErrAssetMissing
		}
		return result.Error
	}
	return nil
}
