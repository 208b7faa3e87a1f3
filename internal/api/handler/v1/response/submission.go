package response

import (
	"time"

	"github.com/vietanh2810/prompt-rewards-api/internal/domain"
)

type SnapshotEntry struct {
	Kind        string `json:"kind"`
	ReferenceID uint   `json:"reference_id"`
	Quantity    int    `json:"quantity"`
}

type CharacterGrant struct {
	CharacterID uint            `json:"character_id"`
	Rewards     []SnapshotEntry `json:"rewards"`
}

type Submission struct {
	ID            uint             `json:"id"`
	PromptID      uint             `json:"prompt_id"`
	UserID        uint             `json:"user_id"`
	URL           string           `json:"url"`
	Comments      string           `json:"comments,omitempty"`
	Status        string           `json:"status"`
	StaffID       *uint            `json:"staff_id,omitempty"`
	StaffComments string           `json:"staff_comments,omitempty"`
	Rewards       []SnapshotEntry  `json:"rewards"`
	Characters    []CharacterGrant `json:"characters"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}

type OwnedAsset struct {
	Kind      string    `json:"kind"`
	AssetID   uint      `json:"asset_id"`
	Quantity  int       `json:"quantity"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Holdings struct {
	OwnerType string       `json:"owner_type"`
	OwnerID   uint         `json:"owner_id"`
	Assets    []OwnedAsset `json:"assets"`
}

func NewSubmission(s domain.Submission) Submission {
	resp := Submission{
		ID:            s.ID,
		PromptID:      s.PromptID,
		UserID:        s.UserID,
		URL:           s.URL,
		Comments:      s.Comments,
		Status:        string(s.Status),
		StaffID:       s.StaffID,
		StaffComments: s.StaffComments,
		Rewards:       newSnapshot(s.Data),
		Characters:    make([]CharacterGrant, len(s.Characters)),
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
	}
	for i, g := range s.Characters {
		resp.Characters[i] = CharacterGrant{CharacterID: g.CharacterID, Rewards: newSnapshot(g.Data)}
	}
	return resp
}

func NewSubmissions(submissions []domain.Submission) []Submission {
	resp := make([]Submission, len(submissions))
	for i, s := range submissions {
		resp[i] = NewSubmission(s)
	}
	return resp
}

func NewHoldings(owner domain.Owner, owned []domain.OwnedAsset) Holdings {
	resp := Holdings{
		OwnerType: string(owner.Type),
		OwnerID:   owner.ID,
		Assets:    make([]OwnedAsset, len(owned)),
	}
	for i, o := range owned {
		resp.Assets[i] = OwnedAsset{
			Kind:      string(o.Asset.Kind),
			AssetID:   o.Asset.ID,
			Quantity:  o.Quantity,
			UpdatedAt: o.UpdatedAt,
		}
	}
	return resp
}

func newSnapshot(s domain.Snapshot) []SnapshotEntry {
	entries := make([]SnapshotEntry, len(s))
	for i, e := range s {
		entries[i] = SnapshotEntry{Kind: string(e.Kind), ReferenceID: e.ReferenceID, Quantity: e.Quantity}
	}
	return entries
}
