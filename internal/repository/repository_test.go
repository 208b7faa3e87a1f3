package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vietanh2810/prompt-rewards-api/internal/domain"
	"github.com/vietanh2810/prompt-rewards-api/internal/repository/dao"
)

type stubCatalogDAO struct {
	items      map[uint]dao.Item
	currencies map[uint]dao.Currency
	calls      []string
}

func (s *stubCatalogDAO) FindItem(_ context.Context, id uint) (dao.Item, error) {
	if i, ok := s.items[id]; ok {
		return i, nil
	}
	return dao.Item{}, dao.ErrCatalogEntryNotFound
}

func (s *stubCatalogDAO) FindCurrency(_ context.Context, id uint) (dao.Currency, error) {
	if c, ok := s.currencies[id]; ok {
		return c, nil
	}
	return dao.Currency{}, dao.ErrCatalogEntryNotFound
}

func (s *stubCatalogDAO) FindCurrencies(context.Context, []uint) ([]dao.Currency, error) {
	return nil, nil
}

func (s *stubCatalogDAO) FindLootTable(context.Context, uint) (dao.LootTable, error) {
	return dao.LootTable{}, dao.ErrCatalogEntryNotFound
}

func (s *stubCatalogDAO) LockAsset(_ context.Context, rewardableType string, _ uint) error {
	s.calls = append(s.calls, "lock "+rewardableType)
	return nil
}

type stubPromptDAO struct {
	prompt dao.Prompt
}

func (s stubPromptDAO) FindActive(_ context.Context, id uint) (dao.Prompt, error) {
	if s.prompt.ID != id || !s.prompt.IsActive {
		return dao.Prompt{}, dao.ErrPromptNotFound
	}
	return s.prompt, nil
}

func (s stubPromptDAO) FindByID(_ context.Context, id uint) (dao.Prompt, error) {
	if s.prompt.ID != id {
		return dao.Prompt{}, dao.ErrPromptNotFound
	}
	return s.prompt, nil
}

func TestCatalogRepository_FindActivePrompt(t *testing.T) {
	catalog := &stubCatalogDAO{
		items:      map[uint]dao.Item{7: {ID: 7, Name: "Sketchbook"}},
		currencies: map[uint]dao.Currency{5: {ID: 5, Name: "Gold", IsUserOwned: true}},
	}
	prompts := stubPromptDAO{prompt: dao.Prompt{ID: 1, Name: "Daily", IsActive: true, Rewards: []dao.PromptReward{
		{RewardableType: dao.RewardableCurrency, RewardableID: 5, Quantity: 10},
		{RewardableType: dao.RewardableItem, RewardableID: 404, Quantity: 1},
		{RewardableType: dao.RewardableItem, RewardableID: 7, Quantity: 1},
	}}}
	r := NewCatalogRepository(catalog, prompts, nil)

	prompt, err := r.FindActivePrompt(context.Background(), 1)
	require.NoError(t, err)

	require.Len(t, prompt.Rewards, 2)
	assert.Equal(t, domain.AssetKey{Kind: domain.AssetCurrency, ID: 5}, prompt.Rewards[0].Asset.Key())
	assert.True(t, prompt.Rewards[0].Asset.UserOwnable)
	assert.Equal(t, 10, prompt.Rewards[0].Quantity)
	assert.Equal(t, domain.AssetKey{Kind: domain.AssetItem, ID: 7}, prompt.Rewards[1].Asset.Key())

	_, err = r.FindActivePrompt(context.Background(), 2)
	assert.ErrorIs(t, err, ErrPromptNotFound)
}

type stubAssetDAO struct {
	calls  *[]string
	credit error
	owned  []dao.OwnedAsset
	logs   []dao.AssetLog
}

func (s *stubAssetDAO) Credit(_ context.Context, owned dao.OwnedAsset) error {
	*s.calls = append(*s.calls, "credit "+owned.AssetKind)
	return s.credit
}

func (s *stubAssetDAO) InsertLog(_ context.Context, log dao.AssetLog) (dao.AssetLog, error) {
	s.logs = append(s.logs, log)
	return log, nil
}

func (s *stubAssetDAO) FindByOwner(context.Context, string, uint) ([]dao.OwnedAsset, error) {
	return s.owned, nil
}

func TestAssetRepository_Credit(t *testing.T) {
	catalog := &stubCatalogDAO{}
	assets := &stubAssetDAO{calls: &catalog.calls}
	r := NewAssetRepository(assets, catalog)

	err := r.Credit(context.Background(), domain.CharacterOwner(11), domain.AssetKey{Kind: domain.AssetCurrency, ID: 5}, 4)

	require.NoError(t, err)
	assert.Equal(t, []string{"lock Currency", "credit Currency"}, catalog.calls)
}

func TestAssetRepository_Credit_Missing(t *testing.T) {
	catalog := &stubCatalogDAO{}
	assets := &stubAssetDAO{calls: &catalog.calls, credit: dao.ErrAssetMissing}
	r := NewAssetRepository(assets, catalog)

	err := r.Credit(context.Background(), domain.UserOwner(1), domain.AssetKey{Kind: domain.AssetItem, ID: 7}, 1)

	assert.ErrorIs(t, err, ErrAssetMissing)
}

func TestAssetRepository_Credit_OutOfRange(t *testing.T) {
	catalog := &stubCatalogDAO{}
	assets := &stubAssetDAO{calls: &catalog.calls, credit: dao.ErrBalanceOutOfRange}
	r := NewAssetRepository(assets, catalog)

	err := r.Credit(context.Background(), domain.UserOwner(1), domain.AssetKey{Kind: domain.AssetCurrency, ID: 5}, 1)

	assert.ErrorIs(t, err, ErrBalanceOutOfRange)
	assert.NotErrorIs(t, err, ErrAssetMissing)
}

func TestAssetRepository_WriteLog(t *testing.T) {
	assets := &stubAssetDAO{calls: new([]string)}
	r := NewAssetRepository(assets, &stubCatalogDAO{})

	err := r.WriteLog(context.Background(), domain.AssetLog{
		CorrelationID: "c-1",
		SenderID:      2,
		Recipient:     domain.CharacterOwner(11),
		Asset:         domain.AssetKey{Kind: domain.AssetItem, ID: 7},
		Quantity:      1,
		LogType:       "Prompt Rewards",
		Data:          "Received rewards for submission #3",
	})
	require.NoError(t, err)

	require.Len(t, assets.logs, 1)
	assert.Equal(t, dao.AssetLog{
		CorrelationID: "c-1",
		SenderID:      2,
		RecipientType: dao.OwnerCharacter,
		RecipientID:   11,
		AssetKind:     dao.RewardableItem,
		AssetID:       7,
		Quantity:      1,
		LogType:       "Prompt Rewards",
		Data:          "Received rewards for submission #3",
	}, assets.logs[0])
}

type stubSubmissionDAO struct {
	SubmissionDAO
	updateErr error
	inserted  []dao.SubmissionCharacter
}

func (s *stubSubmissionDAO) UpdateReviewed(_ context.Context, submission dao.Submission) (dao.Submission, error) {
	return submission, s.updateErr
}

func (s *stubSubmissionDAO) InsertCharacters(_ context.Context, characters []dao.SubmissionCharacter) ([]dao.SubmissionCharacter, error) {
	for i := range characters {
		characters[i].ID = uint(i + 1)
	}
	s.inserted = characters
	return characters, nil
}

func TestSubmissionRepository_UpdateReviewed(t *testing.T) {
	r := NewSubmissionRepository(&stubSubmissionDAO{updateErr: dao.ErrSubmissionNotPending})

	_, err := r.UpdateReviewed(context.Background(), domain.Submission{ID: 3, Status: domain.SubmissionApproved})

	assert.ErrorIs(t, err, ErrSubmissionNotPending)
	assert.True(t, IsContended(err))
	assert.False(t, IsContended(errors.New("other")))
}

func TestSubmissionRepository_CreateCharacterGrants(t *testing.T) {
	stub := &stubSubmissionDAO{}
	r := NewSubmissionRepository(stub)

	grants, err := r.CreateCharacterGrants(context.Background(), 3, []domain.SubmissionCharacterGrant{
		{CharacterID: 11, Data: domain.Snapshot{{Kind: domain.AssetCurrency, ReferenceID: 5, Quantity: 4}}},
		{CharacterID: 12, Data: domain.Snapshot{}},
	})
	require.NoError(t, err)

	require.Len(t, grants, 2)
	assert.Equal(t, uint(3), grants[0].SubmissionID)
	assert.Equal(t, uint(11), grants[0].CharacterID)
	assert.Equal(t, domain.Snapshot{{Kind: domain.AssetCurrency, ReferenceID: 5, Quantity: 4}}, grants[0].Data)
	assert.Equal(t, []dao.SnapshotEntry{{Kind: "Currency", ReferenceID: 5, Quantity: 4}}, stub.inserted[0].Data)
}
