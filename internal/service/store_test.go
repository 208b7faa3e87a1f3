package service

import (
	"context"
	"sort"
	"sync"

	"github.com/vietanh2810/prompt-rewards-api/internal/domain"
	"github.com/vietanh2810/prompt-rewards-api/internal/repository"
)

// memState is everything a transaction can change.
type memState struct {
	submissions map[uint]domain.Submission
	grants      map[uint][]domain.SubmissionCharacterGrant
	balances    map[domain.Owner]map[domain.AssetKey]int
	logs        []domain.AssetLog
	counts      map[uint]int
	nextSubID   uint
	nextGrantID uint
}

func newMemState() memState {
	return memState{
		submissions: map[uint]domain.Submission{},
		grants:      map[uint][]domain.SubmissionCharacterGrant{},
		balances:    map[domain.Owner]map[domain.AssetKey]int{},
		counts:      map[uint]int{},
	}
}

func (s memState) clone() memState {
	c := newMemState()
	for id, sub := range s.submissions {
		sub.Data = append(domain.Snapshot(nil), sub.Data...)
		c.submissions[id] = sub
	}
	for id, grants := range s.grants {
		cp := make([]domain.SubmissionCharacterGrant, len(grants))
		copy(cp, grants)
		c.grants[id] = cp
	}
	for owner, held := range s.balances {
		c.balances[owner] = map[domain.AssetKey]int{}
		for k, v := range held {
			c.balances[owner][k] = v
		}
	}
	c.logs = append([]domain.AssetLog(nil), s.logs...)
	for id, n := range s.counts {
		c.counts[id] = n
	}
	c.nextSubID = s.nextSubID
	c.nextGrantID = s.nextGrantID
	return c
}

type sentNotification struct {
	event     domain.NotificationEvent
	recipient uint
	payload   map[string]interface{}
}

// memStore is an in-memory unit of work. A transaction copies the state on begin and
// restores the copy when fn fails.
type memStore struct {
	mu    sync.Mutex
	state memState

	items      map[uint]domain.Item
	currencies map[uint]domain.Currency
	tables     map[uint]domain.LootTable
	prompts    map[uint]domain.Prompt
	characters []domain.Character

	failCredit    map[domain.Owner]error
	failNotify    error
	notifications []sentNotification
}

func newMemStore() *memStore {
	return &memStore{
		state:      newMemState(),
		items:      map[uint]domain.Item{},
		currencies: map[uint]domain.Currency{},
		tables:     map[uint]domain.LootTable{},
		prompts:    map[uint]domain.Prompt{},
		failCredit: map[domain.Owner]error{},
	}
}

func (m *memStore) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	m.mu.Lock()
	saved := m.state.clone()
	m.mu.Unlock()

	if err := fn(ctx); err != nil {
		m.mu.Lock()
		m.state = saved
		m.mu.Unlock()
		return err
	}
	return nil
}

// catalog

func (m *memStore) FindItem(_ context.Context, id uint) (domain.Item, error) {
	if i, ok := m.items[id]; ok {
		return i, nil
	}
	return domain.Item{}, repository.ErrCatalogEntryNotFound
}

func (m *memStore) FindCurrency(_ context.Context, id uint) (domain.Currency, error) {
	if c, ok := m.currencies[id]; ok {
		return c, nil
	}
	return domain.Currency{}, repository.ErrCatalogEntryNotFound
}

func (m *memStore) FindCurrencies(_ context.Context, ids []uint) ([]domain.Currency, error) {
	var found []domain.Currency
	for _, id := range ids {
		if c, ok := m.currencies[id]; ok {
			found = append(found, c)
		}
	}
	return found, nil
}

func (m *memStore) FindLootTable(_ context.Context, id uint) (domain.LootTable, error) {
	if t, ok := m.tables[id]; ok {
		return t, nil
	}
	return domain.LootTable{}, repository.ErrCatalogEntryNotFound
}

func (m *memStore) FindActivePrompt(ctx context.Context, id uint) (domain.Prompt, error) {
	p, err := m.FindPrompt(ctx, id)
	if err != nil || !p.IsActive {
		return domain.Prompt{}, repository.ErrPromptNotFound
	}
	return p, nil
}

func (m *memStore) FindPrompt(_ context.Context, id uint) (domain.Prompt, error) {
	if p, ok := m.prompts[id]; ok {
		return p, nil
	}
	return domain.Prompt{}, repository.ErrPromptNotFound
}

// FindVisibleCharactersBySlug answers in id order, not request order.
func (m *memStore) FindVisibleCharactersBySlug(_ context.Context, slugs []string) ([]domain.Character, error) {
	wanted := map[string]bool{}
	for _, s := range slugs {
		wanted[s] = true
	}
	var found []domain.Character
	for _, c := range m.characters {
		if c.IsVisible && wanted[c.Slug] {
			found = append(found, c)
		}
	}
	return found, nil
}

// submissions

func (m *memStore) Create(_ context.Context, submission domain.Submission) (domain.Submission, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.state.nextSubID++
	submission.ID = m.state.nextSubID
	m.state.submissions[submission.ID] = submission
	return submission, nil
}

func (m *memStore) FindByID(_ context.Context, id uint) (domain.Submission, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	sub, ok := m.state.submissions[id]
	if !ok {
		return domain.Submission{}, repository.ErrSubmissionNotFound
	}
	sub.Characters = append([]domain.SubmissionCharacterGrant(nil), m.state.grants[id]...)
	return sub, nil
}

func (m *memStore) FindForReview(ctx context.Context, id uint) (domain.Submission, error) {
	sub, err := m.FindByID(ctx, id)
	sub.Characters = nil
	return sub, err
}

func (m *memStore) UpdateReviewed(_ context.Context, submission domain.Submission) (domain.Submission, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored, ok := m.state.submissions[submission.ID]
	if !ok {
		return domain.Submission{}, repository.ErrSubmissionNotFound
	}
	if stored.Status != domain.SubmissionPending {
		return domain.Submission{}, repository.ErrSubmissionNotPending
	}
	m.state.submissions[submission.ID] = submission
	return submission, nil
}

func (m *memStore) List(_ context.Context, status domain.SubmissionStatus, limit, offset int) ([]domain.Submission, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var all []domain.Submission
	for _, s := range m.state.submissions {
		if status == "" || s.Status == status {
			all = append(all, s)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })

	if offset >= len(all) {
		return nil, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

func (m *memStore) CreateCharacterGrants(_ context.Context, submissionID uint, grants []domain.SubmissionCharacterGrant) ([]domain.SubmissionCharacterGrant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	created := make([]domain.SubmissionCharacterGrant, len(grants))
	for i, g := range grants {
		m.state.nextGrantID++
		g.ID = m.state.nextGrantID
		g.SubmissionID = submissionID
		created[i] = g
	}
	m.state.grants[submissionID] = append(m.state.grants[submissionID], created...)
	return created, nil
}

func (m *memStore) DeleteCharacterGrants(_ context.Context, submissionID uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.state.grants, submissionID)
	return nil
}

// balances

func (m *memStore) IncrementSubmissionCount(_ context.Context, userID uint) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.state.counts[userID]++
	return m.state.counts[userID], nil
}

func (m *memStore) Credit(_ context.Context, owner domain.Owner, asset domain.AssetKey, quantity int) error {
	if err := m.failCredit[owner]; err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state.balances[owner] == nil {
		m.state.balances[owner] = map[domain.AssetKey]int{}
	}
	m.state.balances[owner][asset] += quantity
	return nil
}

func (m *memStore) WriteLog(_ context.Context, log domain.AssetLog) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	log.ID = uint(len(m.state.logs) + 1)
	m.state.logs = append(m.state.logs, log)
	return nil
}

func (m *memStore) Holdings(_ context.Context, owner domain.Owner) ([]domain.OwnedAsset, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var owned []domain.OwnedAsset
	for key, qty := range m.state.balances[owner] {
		owned = append(owned, domain.OwnedAsset{Owner: owner, Asset: key, Quantity: qty})
	}
	sort.Slice(owned, func(i, j int) bool { return owned[i].Asset.String() < owned[j].Asset.String() })
	return owned, nil
}

func (m *memStore) Notify(_ context.Context, event domain.NotificationEvent, recipientID uint, payload map[string]interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.notifications = append(m.notifications, sentNotification{event: event, recipient: recipientID, payload: payload})
	return m.failNotify
}

func (m *memStore) balance(owner domain.Owner, key domain.AssetKey) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.state.balances[owner][key]
}

// sequenceRoller returns table entries by index, cycling through picks.
type sequenceRoller struct {
	picks []int
	next  int
}

func (r *sequenceRoller) Roll(table domain.LootTable) (domain.LootEntry, error) {
	if len(table.Entries) == 0 {
		return domain.LootEntry{}, ErrEmptyLootTable
	}
	pick := r.picks[r.next%len(r.picks)]
	r.next++
	return table.Entries[pick], nil
}
