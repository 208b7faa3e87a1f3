package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vietanh2810/prompt-rewards-api/internal/domain"
)

var crate = domain.LootTable{ID: 9, Entries: []domain.LootEntry{
	{Kind: domain.AssetItem, ReferenceID: 1, Quantity: 1, Weight: 1},
	{Kind: domain.AssetItem, ReferenceID: 2, Quantity: 1, Weight: 3},
	{Kind: domain.AssetCurrency, ReferenceID: 3, Quantity: 5, Weight: 6},
}}

func TestWeightedRoller_SameSeedSameDraws(t *testing.T) {
	a, err := NewWeightedRoller(42)
	require.NoError(t, err)
	b, err := NewWeightedRoller(42)
	require.NoError(t, err)

	for i := 0; i < 50; i++ {
		x, err := a.Roll(crate)
		require.NoError(t, err)
		y, err := b.Roll(crate)
		require.NoError(t, err)
		assert.Equal(t, x, y)
	}
}

func TestWeightedRoller_SkipsZeroWeight(t *testing.T) {
	r, err := NewWeightedRoller(0)
	require.NoError(t, err)
	table := domain.LootTable{ID: 3, Entries: []domain.LootEntry{
		{Kind: domain.AssetItem, ReferenceID: 1, Weight: 0},
		{Kind: domain.AssetItem, ReferenceID: 2, Weight: 4},
		{Kind: domain.AssetItem, ReferenceID: 3, Weight: -2},
	}}

	for i := 0; i < 20; i++ {
		drawn, err := r.Roll(table)
		require.NoError(t, err)
		assert.Equal(t, uint(2), drawn.ReferenceID)
	}
}

func TestWeightedRoller_Distribution(t *testing.T) {
	r, err := NewWeightedRoller(7)
	require.NoError(t, err)

	counts := map[uint]int{}
	for i := 0; i < 10000; i++ {
		drawn, err := r.Roll(crate)
		require.NoError(t, err)
		counts[drawn.ReferenceID]++
	}

	assert.InDelta(t, 1000, counts[1], 200)
	assert.InDelta(t, 3000, counts[2], 300)
	assert.InDelta(t, 6000, counts[3], 300)
}

func TestWeightedRoller_EmptyTable(t *testing.T) {
	r, err := NewWeightedRoller(1)
	require.NoError(t, err)

	_, err = r.Roll(domain.LootTable{ID: 4})
	assert.ErrorIs(t, err, ErrEmptyLootTable)

	_, err = r.Roll(domain.LootTable{ID: 5, Entries: []domain.LootEntry{{Kind: domain.AssetItem, ReferenceID: 1}}})
	assert.ErrorIs(t, err, ErrEmptyLootTable)
}
