package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vietanh2810/prompt-rewards-api/internal/domain"
)

func userBag(t *testing.T, entries ...domain.AssetEntry) domain.AssetBag {
	t.Helper()

	bag := domain.NewAssetBag(false)
	for _, e := range entries {
		require.NoError(t, bag.Add(e.Asset, e.Quantity))
	}
	return bag
}

func TestAssetDistributor_Distribute(t *testing.T) {
	m := seededStore()
	d := NewAssetDistributor(m, m, &sequenceRoller{picks: []int{0}}, 0)
	bag := userBag(t,
		domain.AssetEntry{Asset: gold.Asset(), Quantity: 10},
		domain.AssetEntry{Asset: sketch.Asset(), Quantity: 1},
	)

	got, err := d.Distribute(context.Background(), bag, GrantContext{
		ActorID:       2,
		Owner:         domain.UserOwner(1),
		LogType:       "Staff Grant",
		Data:          "because",
		CorrelationID: "c-1",
	})
	require.NoError(t, err)

	assert.Equal(t, bag.Snapshot(), got.Snapshot())
	assert.Equal(t, 10, m.balance(domain.UserOwner(1), goldKey))
	assert.Equal(t, 1, m.balance(domain.UserOwner(1), sketchKey))
	require.Len(t, m.state.logs, 2)
	assert.Equal(t, domain.AssetLog{
		ID:            1,
		CorrelationID: "c-1",
		SenderID:      2,
		Recipient:     domain.UserOwner(1),
		Asset:         goldKey,
		Quantity:      10,
		LogType:       "Staff Grant",
		Data:          "because",
	}, m.state.logs[0])
}

func TestAssetDistributor_OwnerMismatch(t *testing.T) {
	m := seededStore()
	d := NewAssetDistributor(m, m, &sequenceRoller{picks: []int{0}}, 0)

	_, err := d.Distribute(context.Background(), domain.NewAssetBag(true), GrantContext{Owner: domain.UserOwner(1)})

	assert.ErrorIs(t, err, domain.ErrDistributionFailure)
	assert.ErrorIs(t, err, ErrOwnerMismatch)
}

func TestAssetDistributor_CreditFailure(t *testing.T) {
	m := seededStore()
	m.failCredit[domain.UserOwner(1)] = errors.New("boom")
	d := NewAssetDistributor(m, m, &sequenceRoller{picks: []int{0}}, 0)

	_, err := d.Distribute(context.Background(), userBag(t, domain.AssetEntry{Asset: sketch.Asset(), Quantity: 1}),
		GrantContext{Owner: domain.UserOwner(1)})

	var distErr *domain.DistributionError
	require.ErrorAs(t, err, &distErr)
	assert.Equal(t, sketchKey, distErr.Asset)
	assert.Empty(t, m.state.logs)
}

func TestAssetDistributor_MaxRolls(t *testing.T) {
	m := seededStore()
	d := NewAssetDistributor(m, m, &sequenceRoller{picks: []int{0}}, 3)
	table := m.tables[9]

	_, err := d.Distribute(context.Background(), userBag(t, domain.AssetEntry{Asset: table.Asset(), Quantity: 3}),
		GrantContext{Owner: domain.UserOwner(1)})
	require.NoError(t, err)
	assert.Equal(t, 6, m.balance(domain.UserOwner(1), sketchKey))

	d.SetMaxRolls(1)
	_, err = d.Distribute(context.Background(), userBag(t, domain.AssetEntry{Asset: table.Asset(), Quantity: 3}),
		GrantContext{Owner: domain.UserOwner(1)})
	assert.ErrorIs(t, err, domain.ErrDistributionFailure)
	assert.ErrorIs(t, err, ErrLootRollLimit)
	assert.Equal(t, 6, m.balance(domain.UserOwner(1), sketchKey))

	d.SetMaxRolls(0)
	assert.Equal(t, DefaultMaxLootRolls, d.MaxRolls())
}

func TestAssetDistributor_CheckRolls(t *testing.T) {
	m := seededStore()
	d := NewAssetDistributor(m, m, &sequenceRoller{picks: []int{0}}, 5)
	table := m.tables[9]

	assert.NoError(t, d.CheckRolls(userBag(t,
		domain.AssetEntry{Asset: table.Asset(), Quantity: 5},
		domain.AssetEntry{Asset: gold.Asset(), Quantity: 500},
	)))

	err := d.CheckRolls(userBag(t, domain.AssetEntry{Asset: table.Asset(), Quantity: 6}))
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.ErrorIs(t, err, domain.ErrInvalidAsset)
}

func TestAssetDistributor_IneligibleDraw(t *testing.T) {
	m := seededStore()
	m.tables[20] = domain.LootTable{ID: 20, Entries: []domain.LootEntry{
		{Kind: domain.AssetCurrency, ReferenceID: stardust.ID, Quantity: 1, Weight: 1},
	}}
	d := NewAssetDistributor(m, m, &sequenceRoller{picks: []int{0}}, 0)
	bag := domain.NewAssetBag(true)
	require.NoError(t, bag.Add(m.tables[20].Asset(), 1))

	_, err := d.Distribute(context.Background(), bag, GrantContext{Owner: domain.CharacterOwner(11)})

	assert.ErrorIs(t, err, domain.ErrDistributionFailure)
	assert.ErrorIs(t, err, domain.ErrIneligibleAsset)
}

func TestAssetDistributor_MissingLootTable(t *testing.T) {
	m := seededStore()
	d := NewAssetDistributor(m, m, &sequenceRoller{picks: []int{0}}, 0)
	bag := userBag(t, domain.AssetEntry{Asset: domain.Asset{Kind: domain.AssetLootTable, ID: 77}, Quantity: 1})

	_, err := d.Distribute(context.Background(), bag, GrantContext{Owner: domain.UserOwner(1)})

	assert.ErrorIs(t, err, domain.ErrDistributionFailure)
	assert.ErrorIs(t, err, ErrAssetMissing)
}
