package repository

import (
	"github.com/vietanh2810/prompt-rewards-api/internal/domain"
	"github.com/vietanh2810/prompt-rewards-api/internal/repository/dao"
)

func snapshotDomainToDao(s domain.Snapshot) []dao.SnapshotEntry {
	entries := make([]dao.SnapshotEntry, len(s))
	for i, e := range s {
		entries[i] = dao.SnapshotEntry{
			Kind:        string(e.Kind),
			ReferenceID: e.ReferenceID,
			Quantity:    e.Quantity,
		}
	}
	return entries
}

func snapshotDaoToDomain(entries []dao.SnapshotEntry) domain.Snapshot {
	s := make(domain.Snapshot, len(entries))
	for i, e := range entries {
		s[i] = domain.SnapshotEntry{
			Kind:        domain.AssetKind(e.Kind),
			ReferenceID: e.ReferenceID,
			Quantity:    e.Quantity,
		}
	}
	return s
}

func itemDaoToDomain(i dao.Item) domain.Item {
	return domain.Item{
		ID:   i.ID,
		Name: i.Name,
	}
}

func currencyDaoToDomain(c dao.Currency) domain.Currency {
	return domain.Currency{
		ID:               c.ID,
		Name:             c.Name,
		IsUserOwned:      c.IsUserOwned,
		IsCharacterOwned: c.IsCharacterOwned,
	}
}

func lootTableDaoToDomain(t dao.LootTable) domain.LootTable {
	table := domain.LootTable{
		ID:      t.ID,
		Name:    t.Name,
		Entries: make([]domain.LootEntry, 0, len(t.Entries)),
	}
	for _, e := range t.Entries {
		table.Entries = append(table.Entries, domain.LootEntry{
			Kind:        domain.AssetKind(e.RewardableType),
			ReferenceID: e.RewardableID,
			Quantity:    e.Quantity,
			Weight:      e.Weight,
		})
	}
	return table
}

func characterDaoToDomain(c dao.Character) domain.Character {
	return domain.Character{
		ID:        c.ID,
		UserID:    c.UserID,
		Slug:      c.Slug,
		Name:      c.Name,
		IsVisible: c.IsVisible,
	}
}

func submissionDomainToDao(s domain.Submission) dao.Submission {
	return dao.Submission{
		ID:            s.ID,
		PromptID:      s.PromptID,
		UserID:        s.UserID,
		URL:           s.URL,
		Comments:      s.Comments,
		Status:        string(s.Status),
		StaffID:       s.StaffID,
		StaffComments: s.StaffComments,
		Data:          snapshotDomainToDao(s.Data),
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
	}
}

func submissionDaoToDomain(s dao.Submission) domain.Submission {
	submission := domain.Submission{
		ID:            s.ID,
		PromptID:      s.PromptID,
		UserID:        s.UserID,
		URL:           s.URL,
		Comments:      s.Comments,
		Status:        domain.SubmissionStatus(s.Status),
		StaffID:       s.StaffID,
		StaffComments: s.StaffComments,
		Data:          snapshotDaoToDomain(s.Data),
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
	}
	if len(s.Characters) > 0 {
		submission.Characters = grantsDaoToDomain(s.Characters)
	}
	return submission
}

func grantsDaoToDomain(characters []dao.SubmissionCharacter) []domain.SubmissionCharacterGrant {
	grants := make([]domain.SubmissionCharacterGrant, len(characters))
	for i, c := range characters {
		grants[i] = domain.SubmissionCharacterGrant{
			ID:           c.ID,
			SubmissionID: c.SubmissionID,
			CharacterID:  c.CharacterID,
			Data:         snapshotDaoToDomain(c.Data),
		}
	}
	return grants
}

func ownedAssetDaoToDomain(o dao.OwnedAsset) domain.OwnedAsset {
	return domain.OwnedAsset{
		Owner:     domain.Owner{Type: domain.OwnerType(o.OwnerType), ID: o.OwnerID},
		Asset:     domain.AssetKey{Kind: domain.AssetKind(o.AssetKind), ID: o.AssetID},
		Quantity:  o.Quantity,
		UpdatedAt: o.UpdatedAt,
	}
}
