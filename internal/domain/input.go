package domain

import "sort"

// RewardInput is one extra reward picked on the submission or review form.
type RewardInput struct {
	Kind        AssetKind `json:"kind"`
	ReferenceID uint      `json:"reference_id"`
	Quantity    int       `json:"quantity"`
}

type CurrencyAllocation struct {
	CurrencyID uint `json:"currency_id"`
	Quantity   int  `json:"quantity"`
}

// CharacterAllocations maps a character id to the currencies allocated to it.
type CharacterAllocations map[uint][]CurrencyAllocation

// CurrencyIDs lists every allocated currency id once, in ascending character order.
func (a CharacterAllocations) CurrencyIDs() []uint {
	seen := make(map[uint]struct{})
	var ids []uint
	for _, characterID := range sortedKeys(a) {
		for _, alloc := range a[characterID] {
			if _, ok := seen[alloc.CurrencyID]; ok {
				continue
			}
			seen[alloc.CurrencyID] = struct{}{}
			ids = append(ids, alloc.CurrencyID)
		}
	}
	return ids
}

func sortedKeys(a CharacterAllocations) []uint {
	keys := make([]uint, 0, len(a))
	for k := range a {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

type SubmissionInput struct {
	PromptID            uint
	URL                 string
	Comments            string
	CharacterSlugs      []string
	Rewards             []RewardInput
	CharacterCurrencies CharacterAllocations
}

// ReviewInput carries the payout as edited by staff at decision time.
type ReviewInput struct {
	SubmissionID        uint
	StaffComments       string
	CharacterSlugs      []string
	Rewards             []RewardInput
	CharacterCurrencies CharacterAllocations
}

type NotificationEvent string

const (
	NotificationSubmissionApproved NotificationEvent = "SUBMISSION_APPROVED"
	NotificationSubmissionRejected NotificationEvent = "SUBMISSION_REJECTED"
)
