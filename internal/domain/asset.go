package domain

import (
	"fmt"
	"math"
)

type AssetKind string

const (
	AssetCurrency  AssetKind = "Currency"
	AssetItem      AssetKind = "Item"
	AssetLootTable AssetKind = "LootTable"
)

func (k AssetKind) Valid() bool {
	switch k {
	case AssetCurrency, AssetItem, AssetLootTable:
		return true
	}
	return false
}

// AssetKey identifies one catalog entry.
type AssetKey struct {
	Kind AssetKind `json:"kind"`
	ID   uint      `json:"reference_id"`
}

func (k AssetKey) String() string {
	return fmt.Sprintf("%s #%d", k.Kind, k.ID)
}

// Asset is a resolved catalog reference together with its ownability flags.
// Ownability only matters for currencies; items and loot tables can be held by anyone.
type Asset struct {
	Kind             AssetKind
	ID               uint
	Name             string
	UserOwnable      bool
	CharacterOwnable bool
}

func (a Asset) Key() AssetKey {
	return AssetKey{Kind: a.Kind, ID: a.ID}
}

type AssetEntry struct {
	Asset    Asset
	Quantity int
}

// AssetBag accumulates asset entries in first-seen order. Two entries never share
// the same AssetKey; adding an existing asset increments its quantity instead.
type AssetBag struct {
	character bool
	entries   []AssetEntry
}

func NewAssetBag(ownerIsCharacter bool) AssetBag {
	return AssetBag{character: ownerIsCharacter}
}

func (b *AssetBag) IsCharacter() bool {
	return b.character
}

func (b *AssetBag) Len() int {
	return len(b.entries)
}

func (b *AssetBag) Add(asset Asset, quantity int) error {
	if quantity <= 0 {
		return NewValidationError(ErrInvalidAsset, "%s quantity must be positive, got %d", asset.Key(), quantity)
	}
	if !asset.Kind.Valid() || asset.ID == 0 {
		return NewValidationError(ErrInvalidAsset, "unknown asset %s", asset.Key())
	}
	if b.character && asset.Kind == AssetCurrency && !asset.CharacterOwnable {
		return NewValidationError(ErrInvalidAsset, "%s cannot be held by characters", asset.Key())
	}

	if i := b.indexOf(asset.Key()); i >= 0 {
		if b.entries[i].Quantity > math.MaxInt-quantity {
			return NewValidationError(ErrInvalidAsset, "%s quantity overflows: %d + %d", asset.Key(), b.entries[i].Quantity, quantity)
		}
		b.entries[i].Quantity += quantity
		return nil
	}
	b.entries = append(b.entries, AssetEntry{Asset: asset, Quantity: quantity})
	return nil
}

// Merge returns a new bag holding the receiver's entries followed by the entries of
// other, summed by key. The result keeps the receiver's owner kind.
func (b *AssetBag) Merge(other AssetBag) (AssetBag, error) {
	merged := AssetBag{
		character: b.character,
		entries:   make([]AssetEntry, 0, len(b.entries)+len(other.entries)),
	}
	for _, src := range [][]AssetEntry{b.entries, other.entries} {
		for _, e := range src {
			if e.Quantity <= 0 {
				continue
			}
			if err := merged.Add(e.Asset, e.Quantity); err != nil {
				return AssetBag{}, err
			}
		}
	}
	return merged, nil
}

// Entries returns a copy of the bag contents.
func (b *AssetBag) Entries() []AssetEntry {
	out := make([]AssetEntry, len(b.entries))
	copy(out, b.entries)
	return out
}

// Quantity returns the held quantity for key, 0 when absent.
func (b *AssetBag) Quantity(key AssetKey) int {
	if i := b.indexOf(key); i >= 0 {
		return b.entries[i].Quantity
	}
	return 0
}

func (b *AssetBag) Snapshot() Snapshot {
	snap := make(Snapshot, 0, len(b.entries))
	for _, e := range b.entries {
		snap = append(snap, SnapshotEntry{
			Kind:        e.Asset.Kind,
			ReferenceID: e.Asset.ID,
			Quantity:    e.Quantity,
		})
	}
	return snap
}

func (b *AssetBag) indexOf(key AssetKey) int {
	for i, e := range b.entries {
		if e.Asset.Key() == key {
			return i
		}
	}
	return -1
}

// SnapshotEntry is the persisted form of one bag entry.
type SnapshotEntry struct {
	Kind        AssetKind `json:"kind"`
	ReferenceID uint      `json:"reference_id"`
	Quantity    int       `json:"quantity"`
}

func (e SnapshotEntry) Key() AssetKey {
	return AssetKey{Kind: e.Kind, ID: e.ReferenceID}
}

// Snapshot is the immutable, ordered record of what was granted to one owner.
type Snapshot []SnapshotEntry

// Totals sums the snapshot by key.
func (s Snapshot) Totals() map[AssetKey]int {
	totals := make(map[AssetKey]int, len(s))
	for _, e := range s {
		totals[e.Key()] += e.Quantity
	}
	return totals
}
