package service

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/vietanh2810/prompt-rewards-api/internal/domain"
	"github.com/vietanh2810/prompt-rewards-api/internal/repository"
)

const DefaultMaxLootRolls = 100

var (
	ErrAssetMissing      = repository.ErrAssetMissing
	ErrBalanceOutOfRange = repository.ErrBalanceOutOfRange
	ErrOwnerMismatch     = errors.New("bag owner kind does not match recipient")
	ErrLootRollLimit     = errors.New("loot table quantity exceeds the roll limit")
)

type AssetRepository interface {
	Credit(ctx context.Context, owner domain.Owner, asset domain.AssetKey, quantity int) error
	WriteLog(ctx context.Context, log domain.AssetLog) error
	Holdings(ctx context.Context, owner domain.Owner) ([]domain.OwnedAsset, error)
}

// LootCatalog is the catalog subset needed to expand loot tables.
type LootCatalog interface {
	FindLootTable(ctx context.Context, id uint) (domain.LootTable, error)
	FindCurrency(ctx context.Context, id uint) (domain.Currency, error)
}

// GrantContext describes who grants a bag to whom, and why.
type GrantContext struct {
	ActorID       uint
	Owner         domain.Owner
	LogType       string
	Data          string
	CorrelationID string
}

type AssetDistributor struct {
	assets   AssetRepository
	catalog  LootCatalog
	roller   LootRoller
	maxRolls atomic.Int64
}

func NewAssetDistributor(assets AssetRepository, catalog LootCatalog, roller LootRoller, maxRolls int) *AssetDistributor {
	d := &AssetDistributor{
		assets:  assets,
		catalog: catalog,
		roller:  roller,
	}
	d.SetMaxRolls(maxRolls)

	return d
}

// SetMaxRolls changes the roll cap for subsequent distributions.
func (d *AssetDistributor) SetMaxRolls(n int) {
	if n <= 0 {
		n = DefaultMaxLootRolls
	}
	d.maxRolls.Store(int64(n))
}

func (d *AssetDistributor) MaxRolls() int {
	return int(d.maxRolls.Load())
}

// CheckRolls rejects loot table entries that need more rolls than the current limit.
func (d *AssetDistributor) CheckRolls(bag domain.AssetBag) error {
	limit := d.MaxRolls()
	for _, entry := range bag.Entries() {
		if entry.Asset.Kind == domain.AssetLootTable && entry.Quantity > limit {
			return domain.NewValidationError(domain.ErrInvalidAsset, "%s quantity %d exceeds the roll limit of %d",
				entry.Asset.Key(), entry.Quantity, limit)
		}
	}
	return nil
}

// Distribute credits every bag entry to grant.Owner and writes one audit log per credit.
// It must run inside the caller's transaction: on error part of the bag may already be
// credited and only the rollback undoes it.
func (d *AssetDistributor) Distribute(ctx context.Context, bag domain.AssetBag, grant GrantContext) (domain.AssetBag, error) {
	if bag.IsCharacter() != grant.Owner.IsCharacter() {
		return domain.AssetBag{}, &domain.DistributionError{Owner: grant.Owner, Err: ErrOwnerMismatch}
	}

	for _, entry := range bag.Entries() {
		key := entry.Asset.Key()

		var err error
		if key.Kind == domain.AssetLootTable {
			err = d.rollLootTable(ctx, grant, key.ID, entry.Quantity)
		} else {
			err = d.credit(ctx, grant, key, entry.Quantity, grant.Data)
		}
		if err != nil {
			return domain.AssetBag{}, err
		}
	}

	return bag, nil
}

func (d *AssetDistributor) credit(ctx context.Context, grant GrantContext, key domain.AssetKey, quantity int, data string) error {
	if err := d.assets.Credit(ctx, grant.Owner, key, quantity); err != nil {
		return &domain.DistributionError{Owner: grant.Owner, Asset: key, Err: fmt.Errorf("d.assets.Credit -> %w", err)}
	}

	err := d.assets.WriteLog(ctx, domain.AssetLog{
		CorrelationID: grant.CorrelationID,
		SenderID:      grant.ActorID,
		Recipient:     grant.Owner,
		Asset:         key,
		Quantity:      quantity,
		LogType:       grant.LogType,
		Data:          data,
	})
	if err != nil {
		return &domain.DistributionError{Owner: grant.Owner, Asset: key, Err: fmt.Errorf("d.assets.WriteLog -> %w", err)}
	}

	return nil
}

func (d *AssetDistributor) rollLootTable(ctx context.Context, grant GrantContext, tableID uint, quantity int) error {
	tableKey := domain.AssetKey{Kind: domain.AssetLootTable, ID: tableID}
	fail := func(err error) error {
		return &domain.DistributionError{Owner: grant.Owner, Asset: tableKey, Err: err}
	}

	table, err := d.catalog.FindLootTable(ctx, tableID)
	if err != nil {
		if errors.Is(err, ErrCatalogEntryNotFound) {
			return fail(ErrAssetMissing)
		}
		return fail(fmt.Errorf("d.catalog.FindLootTable -> %w", err))
	}

	if quantity > d.MaxRolls() {
		return fail(ErrLootRollLimit)
	}
	data := fmt.Sprintf("Rolled from loot table #%d", tableID)

	for i := 0; i < quantity; i++ {
		drawn, err := d.roller.Roll(table)
		if err != nil {
			return fail(err)
		}

		key := domain.AssetKey{Kind: drawn.Kind, ID: drawn.ReferenceID}
		if err := d.checkDrawn(ctx, grant.Owner, key); err != nil {
			return &domain.DistributionError{Owner: grant.Owner, Asset: key, Err: err}
		}

		qty := drawn.Quantity
		if qty <= 0 {
			qty = 1
		}
		if err := d.credit(ctx, grant, key, qty, data); err != nil {
			return err
		}
	}

	return nil
}

// checkDrawn rejects draws the owner could not have been granted directly.
func (d *AssetDistributor) checkDrawn(ctx context.Context, owner domain.Owner, key domain.AssetKey) error {
	switch key.Kind {
	case domain.AssetItem:
		return nil
	case domain.AssetCurrency:
		currency, err := d.catalog.FindCurrency(ctx, key.ID)
		if err != nil {
			if errors.Is(err, ErrCatalogEntryNotFound) {
				return ErrAssetMissing
			}
			return fmt.Errorf("d.catalog.FindCurrency -> %w", err)
		}
		if owner.IsCharacter() && !currency.IsCharacterOwned || !owner.IsCharacter() && !currency.IsUserOwned {
			return domain.ErrIneligibleAsset
		}
		return nil
	}
	return domain.ErrInvalidAsset
}
