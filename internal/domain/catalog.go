package domain

type Item struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

func (i Item) Asset() Asset {
	return Asset{Kind: AssetItem, ID: i.ID, Name: i.Name}
}

type Currency struct {
	ID               uint   `json:"id"`
	Name             string `json:"name"`
	IsUserOwned      bool   `json:"is_user_owned"`
	IsCharacterOwned bool   `json:"is_character_owned"`
}

func (c Currency) Asset() Asset {
	return Asset{
		Kind:             AssetCurrency,
		ID:               c.ID,
		Name:             c.Name,
		UserOwnable:      c.IsUserOwned,
		CharacterOwnable: c.IsCharacterOwned,
	}
}

type LootTable struct {
	ID      uint        `json:"id"`
	Name    string      `json:"name"`
	Entries []LootEntry `json:"entries"`
}

func (t LootTable) Asset() Asset {
	return Asset{Kind: AssetLootTable, ID: t.ID, Name: t.Name}
}

// TotalWeight is the sum of all positive entry weights.
func (t LootTable) TotalWeight() int {
	total := 0
	for _, e := range t.Entries {
		if e.Weight > 0 {
			total += e.Weight
		}
	}
	return total
}

// LootEntry is one weighted outcome of a loot table roll. Only items and
// currencies can be drawn.
type LootEntry struct {
	Kind        AssetKind `json:"kind"`
	ReferenceID uint      `json:"reference_id"`
	Quantity    int       `json:"quantity"`
	Weight      int       `json:"weight"`
}

type Prompt struct {
	ID       uint           `json:"id"`
	Name     string         `json:"name"`
	IsActive bool           `json:"is_active"`
	Rewards  []PromptReward `json:"rewards"`
}

// PromptReward is a fixed reward every submission to the prompt receives.
type PromptReward struct {
	Asset    Asset `json:"asset"`
	Quantity int   `json:"quantity"`
}

type Character struct {
	ID        uint   `json:"id"`
	UserID    uint   `json:"user_id"`
	Slug      string `json:"slug"`
	Name      string `json:"name"`
	IsVisible bool   `json:"is_visible"`
}
