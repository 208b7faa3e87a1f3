package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/vietanh2810/prompt-rewards-api/internal/domain"
	"github.com/vietanh2810/prompt-rewards-api/internal/repository"
)

var (
	ErrCatalogEntryNotFound = repository.ErrCatalogEntryNotFound
	ErrPromptNotFound       = repository.ErrPromptNotFound
)

type CatalogRepository interface {
	FindItem(ctx context.Context, id uint) (domain.Item, error)
	FindCurrency(ctx context.Context, id uint) (domain.Currency, error)
	FindCurrencies(ctx context.Context, ids []uint) ([]domain.Currency, error)
	FindLootTable(ctx context.Context, id uint) (domain.LootTable, error)
	FindActivePrompt(ctx context.Context, id uint) (domain.Prompt, error)
	FindPrompt(ctx context.Context, id uint) (domain.Prompt, error)
	FindVisibleCharactersBySlug(ctx context.Context, slugs []string) ([]domain.Character, error)
}

// RewardResolver turns prompt rewards and form input into validated asset bags.
// It never writes anything.
type RewardResolver struct {
	catalog CatalogRepository
}

func NewRewardResolver(catalog CatalogRepository) *RewardResolver {
	return &RewardResolver{
		catalog: catalog,
	}
}

// ResolveUserRewards builds the submitter's bag: the prompt rewards followed by the
// extra rewards. Catalog references that no longer exist are skipped, and loot tables
// are only honoured when staffContext is set.
func (r *RewardResolver) ResolveUserRewards(ctx context.Context, promptRewards []domain.PromptReward, extras []domain.RewardInput, staffContext bool) (domain.AssetBag, error) {
	promptBag := domain.NewAssetBag(false)
	for _, reward := range promptRewards {
		if reward.Quantity <= 0 {
			continue
		}
		if err := promptBag.Add(reward.Asset, reward.Quantity); err != nil {
			return domain.AssetBag{}, err
		}
	}

	extraBag := domain.NewAssetBag(false)
	for _, input := range extras {
		asset, ok, err := r.resolveExtra(ctx, input, staffContext)
		if err != nil {
			return domain.AssetBag{}, err
		}
		if !ok {
			continue
		}
		if err := extraBag.Add(asset, input.Quantity); err != nil {
			return domain.AssetBag{}, err
		}
	}

	return promptBag.Merge(extraBag)
}

func (r *RewardResolver) resolveExtra(ctx context.Context, input domain.RewardInput, staffContext bool) (domain.Asset, bool, error) {
	if input.Quantity <= 0 {
		return domain.Asset{}, false, domain.NewValidationError(domain.ErrInvalidAsset,
			"%s quantity must be positive, got %d", domain.AssetKey{Kind: input.Kind, ID: input.ReferenceID}, input.Quantity)
	}

	switch input.Kind {
	case domain.AssetItem:
		item, err := r.catalog.FindItem(ctx, input.ReferenceID)
		if err != nil {
			return skipMissing(err, "r.catalog.FindItem")
		}
		return item.Asset(), true, nil

	case domain.AssetCurrency:
		currency, err := r.catalog.FindCurrency(ctx, input.ReferenceID)
		if err != nil {
			return skipMissing(err, "r.catalog.FindCurrency")
		}
		if !currency.IsUserOwned {
			return domain.Asset{}, false, domain.NewValidationError(domain.ErrIneligibleAsset,
				"%s cannot be held by users", currency.Asset().Key())
		}
		return currency.Asset(), true, nil

	case domain.AssetLootTable:
		if !staffContext {
			return domain.Asset{}, false, nil
		}
		table, err := r.catalog.FindLootTable(ctx, input.ReferenceID)
		if err != nil {
			return skipMissing(err, "r.catalog.FindLootTable")
		}
		return table.Asset(), true, nil
	}

	return domain.Asset{}, false, domain.NewValidationError(domain.ErrInvalidAsset, "unknown asset kind %q", input.Kind)
}

func skipMissing(err error, call string) (domain.Asset, bool, error) {
	if errors.Is(err, ErrCatalogEntryNotFound) {
		return domain.Asset{}, false, nil
	}
	return domain.Asset{}, false, fmt.Errorf("%s -> %w", call, err)
}

// CurrencyIndex loads every currency referenced by the allocations, keyed by id.
// Unknown ids are simply absent from the index.
func (r *RewardResolver) CurrencyIndex(ctx context.Context, allocations domain.CharacterAllocations) (map[uint]domain.Currency, error) {
	index := make(map[uint]domain.Currency)

	ids := allocations.CurrencyIDs()
	if len(ids) == 0 {
		return index, nil
	}

	currencies, err := r.catalog.FindCurrencies(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("r.catalog.FindCurrencies -> %w", err)
	}
	for _, c := range currencies {
		index[c.ID] = c
	}

	return index, nil
}

// ResolveCharacterRewards builds the bag for one character from its own allocations.
func ResolveCharacterRewards(characterID uint, allocations domain.CharacterAllocations, index map[uint]domain.Currency) (domain.AssetBag, error) {
	bag := domain.NewAssetBag(true)

	for _, alloc := range allocations[characterID] {
		if alloc.Quantity == 0 {
			continue
		}
		if alloc.Quantity < 0 {
			return domain.AssetBag{}, domain.NewValidationError(domain.ErrInvalidAsset,
				"Currency #%d quantity must be positive, got %d", alloc.CurrencyID, alloc.Quantity)
		}

		currency, ok := index[alloc.CurrencyID]
		if !ok {
			continue
		}
		if !currency.IsCharacterOwned {
			return domain.AssetBag{}, domain.NewValidationError(domain.ErrIneligibleAsset,
				"%s cannot be held by characters", currency.Asset().Key())
		}
		if err := bag.Add(currency.Asset(), alloc.Quantity); err != nil {
			return domain.AssetBag{}, err
		}
	}

	return bag, nil
}
