package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/vietanh2810/prompt-rewards-api/internal/domain"
	"github.com/vietanh2810/prompt-rewards-api/internal/repository/dao"
)

var (
	ErrCatalogEntryNotFound = dao.ErrCatalogEntryNotFound
	ErrPromptNotFound       = dao.ErrPromptNotFound
)

type CatalogDAO interface {
	FindItem(ctx context.Context, id uint) (dao.Item, error)
	FindCurrency(ctx context.Context, id uint) (dao.Currency, error)
	FindCurrencies(ctx context.Context, ids []uint) ([]dao.Currency, error)
	FindLootTable(ctx context.Context, id uint) (dao.LootTable, error)
}

type PromptDAO interface {
	FindActive(ctx context.Context, id uint) (dao.Prompt, error)
	FindByID(ctx context.Context, id uint) (dao.Prompt, error)
}

type CharacterDAO interface {
	FindVisibleBySlugs(ctx context.Context, slugs []string) ([]dao.Character, error)
}

// CatalogRepository serves the read-only reference data: items, currencies, loot
// tables, prompts and characters.
type CatalogRepository struct {
	catalog    CatalogDAO
	prompts    PromptDAO
	characters CharacterDAO
}

func NewCatalogRepository(catalog CatalogDAO, prompts PromptDAO, characters CharacterDAO) *CatalogRepository {
	return &CatalogRepository{
		catalog:    catalog,
		prompts:    prompts,
		characters: characters,
	}
}

func (r *CatalogRepository) FindItem(ctx context.Context, id uint) (domain.Item, error) {
	item, err := r.catalog.FindItem(ctx, id)
	if err != nil {
		return domain.Item{}, fmt.Errorf("r.catalog.FindItem -> %w", err)
	}
	return itemDaoToDomain(item), nil
}

func (r *CatalogRepository) FindCurrency(ctx context.Context, id uint) (domain.Currency, error) {
	currency, err := r.catalog.FindCurrency(ctx, id)
	if err != nil {
		return domain.Currency{}, fmt.Errorf("r.catalog.FindCurrency -> %w", err)
	}
	return currencyDaoToDomain(currency), nil
}

func (r *CatalogRepository) FindCurrencies(ctx context.Context, ids []uint) ([]domain.Currency, error) {
	found, err := r.catalog.FindCurrencies(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("r.catalog.FindCurrencies -> %w", err)
	}

	currencies := make([]domain.Currency, len(found))
	for i, c := range found {
		currencies[i] = currencyDaoToDomain(c)
	}
	return currencies, nil
}

func (r *CatalogRepository) FindLootTable(ctx context.Context, id uint) (domain.LootTable, error) {
	table, err := r.catalog.FindLootTable(ctx, id)
	if err != nil {
		return domain.LootTable{}, fmt.Errorf("r.catalog.FindLootTable -> %w", err)
	}
	return lootTableDaoToDomain(table), nil
}

func (r *CatalogRepository) FindActivePrompt(ctx context.Context, id uint) (domain.Prompt, error) {
	prompt, err := r.prompts.FindActive(ctx, id)
	if err != nil {
		return domain.Prompt{}, fmt.Errorf("r.prompts.FindActive -> %w", err)
	}
	return r.promptDaoToDomain(ctx, prompt)
}

func (r *CatalogRepository) FindPrompt(ctx context.Context, id uint) (domain.Prompt, error) {
	prompt, err := r.prompts.FindByID(ctx, id)
	if err != nil {
		return domain.Prompt{}, fmt.Errorf("r.prompts.FindByID -> %w", err)
	}
	return r.promptDaoToDomain(ctx, prompt)
}

// promptDaoToDomain resolves each polymorphic reward row to its catalog asset.
// Rewards pointing at removed catalog entries are dropped.
func (r *CatalogRepository) promptDaoToDomain(ctx context.Context, p dao.Prompt) (domain.Prompt, error) {
	prompt := domain.Prompt{
		ID:       p.ID,
		Name:     p.Name,
		IsActive: p.IsActive,
		Rewards:  make([]domain.PromptReward, 0, len(p.Rewards)),
	}

	for _, reward := range p.Rewards {
		asset, err := r.findAsset(ctx, reward.RewardableType, reward.RewardableID)
		if err != nil {
			if errors.Is(err, ErrCatalogEntryNotFound) {
				continue
			}
			return domain.Prompt{}, fmt.Errorf("r.findAsset -> %w", err)
		}
		prompt.Rewards = append(prompt.Rewards, domain.PromptReward{
			Asset:    asset,
			Quantity: reward.Quantity,
		})
	}

	return prompt, nil
}

func (r *CatalogRepository) findAsset(ctx context.Context, rewardableType string, id uint) (domain.Asset, error) {
	switch rewardableType {
	case dao.RewardableItem:
		item, err := r.FindItem(ctx, id)
		return item.Asset(), err
	case dao.RewardableCurrency:
		currency, err := r.FindCurrency(ctx, id)
		return currency.Asset(), err
	case dao.RewardableLootTable:
		table, err := r.FindLootTable(ctx, id)
		return table.Asset(), err
	}
	return domain.Asset{}, ErrCatalogEntryNotFound
}

func (r *CatalogRepository) FindVisibleCharactersBySlug(ctx context.Context, slugs []string) ([]domain.Character, error) {
	found, err := r.characters.FindVisibleBySlugs(ctx, slugs)
	if err != nil {
		return nil, fmt.Errorf("r.characters.FindVisibleBySlugs -> %w", err)
	}

	characters := make([]domain.Character, len(found))
	for i, c := range found {
		characters[i] = characterDaoToDomain(c)
	}
	return characters, nil
}
