package request

import (
	"errors"
	"fmt"

	"github.com/dlclark/regexp2"
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"

	"github.com/vietanh2810/prompt-rewards-api/internal/domain"
)

const (
	// Letters, digits, '_' and '-', never starting or ending with '-'.
	slugRegexPattern = `^(?!-)[A-Za-z0-9_-]{1,64}(?<!-)$`

	maxCharacters = 50
	maxRewards    = 100
	maxQuantity   = 1_000_000_000
)

var (
	slugExp = regexp2.MustCompile(slugRegexPattern, regexp2.None)

	errInvalidSlug = errors.New("must be a valid character slug")
)

type RewardRequest struct {
	Kind        string `json:"kind"`
	ReferenceID uint   `json:"reference_id"`
	Quantity    int    `json:"quantity"`
}

func (req RewardRequest) Validate() error {
	return validation.ValidateStruct(
		&req,
		validation.Field(&req.Kind, validation.Required, validation.In(
			string(domain.AssetCurrency), string(domain.AssetItem), string(domain.AssetLootTable),
		)),
		validation.Field(&req.ReferenceID, validation.Required),
		validation.Field(&req.Quantity, validation.Required, validation.Min(1), validation.Max(maxQuantity)),
	)
}

type CurrencyAllocationRequest struct {
	CurrencyID uint `json:"currency_id"`
	Quantity   int  `json:"quantity"`
}

func (req CurrencyAllocationRequest) Validate() error {
	return validation.ValidateStruct(
		&req,
		validation.Field(&req.CurrencyID, validation.Required),
		validation.Field(&req.Quantity, validation.Min(0), validation.Max(maxQuantity)),
	)
}

// RewardsRequest is the payout part shared by the submission and approval forms.
// CharacterCurrencies is keyed by character id.
type RewardsRequest struct {
	Characters          []string                             `json:"characters"`
	Rewards             []RewardRequest                      `json:"rewards"`
	CharacterCurrencies map[uint][]CurrencyAllocationRequest `json:"character_currencies"`
}

func (req *RewardsRequest) validate() error {
	err := validation.ValidateStruct(
		req,
		validation.Field(&req.Characters, validation.Length(0, maxCharacters), validation.By(validSlugs)),
		validation.Field(&req.Rewards, validation.Length(0, maxRewards)),
	)
	if err != nil {
		return err
	}

	for characterID, allocations := range req.CharacterCurrencies {
		for _, alloc := range allocations {
			if err := alloc.Validate(); err != nil {
				return fmt.Errorf("character_currencies.%d: %w", characterID, err)
			}
		}
	}

	return nil
}

func validSlugs(value interface{}) error {
	slugs, _ := value.([]string)
	for _, slug := range slugs {
		ok, err := slugExp.MatchString(slug)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%q %w", slug, errInvalidSlug)
		}
	}
	return nil
}

func (req *RewardsRequest) rewards() []domain.RewardInput {
	rewards := make([]domain.RewardInput, len(req.Rewards))
	for i, r := range req.Rewards {
		rewards[i] = domain.RewardInput{
			Kind:        domain.AssetKind(r.Kind),
			ReferenceID: r.ReferenceID,
			Quantity:    r.Quantity,
		}
	}
	return rewards
}

func (req *RewardsRequest) allocations() domain.CharacterAllocations {
	allocations := make(domain.CharacterAllocations, len(req.CharacterCurrencies))
	for characterID, list := range req.CharacterCurrencies {
		for _, a := range list {
			allocations[characterID] = append(allocations[characterID], domain.CurrencyAllocation{
				CurrencyID: a.CurrencyID,
				Quantity:   a.Quantity,
			})
		}
	}
	return allocations
}

type CreateSubmissionRequest struct {
	PromptID uint   `json:"prompt_id"`
	URL      string `json:"url"`
	Comments string `json:"comments"`
	RewardsRequest
}

func (req *CreateSubmissionRequest) Validate() error {
	err := validation.ValidateStruct(
		req,
		validation.Field(&req.PromptID, validation.Required),
		validation.Field(&req.URL, validation.Required, is.URL, validation.Length(1, 500)),
		validation.Field(&req.Comments, validation.Length(0, 5000)),
	)
	if err != nil {
		return err
	}

	return req.RewardsRequest.validate()
}

func (req *CreateSubmissionRequest) ToInput() domain.SubmissionInput {
	return domain.SubmissionInput{
		PromptID:            req.PromptID,
		URL:                 req.URL,
		Comments:            req.Comments,
		CharacterSlugs:      req.Characters,
		Rewards:             req.rewards(),
		CharacterCurrencies: req.allocations(),
	}
}

type ApproveSubmissionRequest struct {
	StaffComments string `json:"staff_comments"`
	RewardsRequest
}

func (req *ApproveSubmissionRequest) Validate() error {
	err := validation.ValidateStruct(
		req,
		validation.Field(&req.StaffComments, validation.Length(0, 5000)),
	)
	if err != nil {
		return err
	}

	return req.RewardsRequest.validate()
}

func (req *ApproveSubmissionRequest) ToInput(submissionID uint) domain.ReviewInput {
	return domain.ReviewInput{
		SubmissionID:        submissionID,
		StaffComments:       req.StaffComments,
		CharacterSlugs:      req.Characters,
		Rewards:             req.rewards(),
		CharacterCurrencies: req.allocations(),
	}
}

type RejectSubmissionRequest struct {
	StaffComments string `json:"staff_comments"`
}

func (req *RejectSubmissionRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.StaffComments, validation.Length(0, 5000)),
	)
}

type ListSubmissionsQuery struct {
	Status string `form:"status"`
	Page   int    `form:"page"`
}

func (q *ListSubmissionsQuery) Validate() error {
	return validation.ValidateStruct(
		q,
		validation.Field(&q.Status, validation.In(
			string(domain.SubmissionPending), string(domain.SubmissionApproved), string(domain.SubmissionRejected),
		)),
		validation.Field(&q.Page, validation.Min(0)),
	)
}
