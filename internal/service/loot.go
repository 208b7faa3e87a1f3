package service

import (
	crand "crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	"math/rand"
	"sync"

	"github.com/vietanh2810/prompt-rewards-api/internal/domain"
)

var (
	ErrEmptyLootTable = errors.New("loot table has nothing to roll")
)

type LootRoller interface {
	Roll(table domain.LootTable) (domain.LootEntry, error)
}

// WeightedRoller draws loot entries with probability proportional to their weight.
// It is safe for concurrent use.
type WeightedRoller struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewWeightedRoller seeds the roller with seed, or from crypto/rand when seed is 0.
func NewWeightedRoller(seed int64) (*WeightedRoller, error) {
	if seed == 0 {
		var err error
		if seed, err = newSeed(); err != nil {
			return nil, err
		}
	}

	return &WeightedRoller{
		rng: rand.New(rand.NewSource(seed)),
	}, nil
}

func newSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}

	return int64(binary.LittleEndian.Uint64(b[:])), nil
}

func (r *WeightedRoller) Roll(table domain.LootTable) (domain.LootEntry, error) {
	total := table.TotalWeight()
	if total <= 0 {
		return domain.LootEntry{}, fmt.Errorf("%w: LootTable #%d", ErrEmptyLootTable, table.ID)
	}

	r.mu.Lock()
	n := r.rng.Intn(total)
	r.mu.Unlock()

	for _, e := range table.Entries {
		if e.Weight <= 0 {
			continue
		}
		if n < e.Weight {
			return e, nil
		}
		n -= e.Weight
	}

	// unreachable while TotalWeight matches the loop above
	return domain.LootEntry{}, fmt.Errorf("%w: LootTable #%d", ErrEmptyLootTable, table.ID)
}
