package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmission_Approve(t *testing.T) {
	s := Submission{ID: 1, Status: SubmissionPending}
	granted := Snapshot{{Kind: AssetItem, ReferenceID: 7, Quantity: 1}}

	require.NoError(t, s.Approve(9, "nice", granted))
	assert.Equal(t, SubmissionApproved, s.Status)
	require.NotNil(t, s.StaffID)
	assert.Equal(t, uint(9), *s.StaffID)
	assert.Equal(t, granted, s.Data)

	assert.ErrorIs(t, s.Approve(9, "", nil), ErrNotPending)
	assert.ErrorIs(t, s.Reject(9, ""), ErrNotPending)
	assert.Equal(t, granted, s.Data)
}

func TestSubmission_Reject(t *testing.T) {
	s := Submission{ID: 1, Status: SubmissionPending, Data: Snapshot{{Kind: AssetItem, ReferenceID: 7, Quantity: 1}}}

	require.NoError(t, s.Reject(3, "missing link"))
	assert.Equal(t, SubmissionRejected, s.Status)
	assert.Equal(t, "missing link", s.StaffComments)
	assert.Len(t, s.Data, 1)

	assert.ErrorIs(t, s.Approve(3, "", nil), ErrNotPending)
}

func TestValidationError_MatchesReasonAndCategory(t *testing.T) {
	err := NewValidationError(ErrUnknownCharacter, "resolved %d of %d", 1, 2)

	assert.True(t, errors.Is(err, ErrValidation))
	assert.True(t, errors.Is(err, ErrUnknownCharacter))
	assert.False(t, errors.Is(err, ErrInvalidPrompt))
	assert.Equal(t, "one or more of the selected characters do not exist: resolved 1 of 2", err.Error())
}

func TestDistributionError_MatchesFailure(t *testing.T) {
	cause := errors.New("row vanished")
	err := &DistributionError{Owner: CharacterOwner(4), Asset: AssetKey{Kind: AssetItem, ID: 7}, Err: cause}

	assert.ErrorIs(t, err, ErrDistributionFailure)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "Character #4")
}

func TestCharacterAllocations_CurrencyIDs(t *testing.T) {
	allocs := CharacterAllocations{
		2: {{CurrencyID: 6, Quantity: 1}, {CurrencyID: 5, Quantity: 2}},
		1: {{CurrencyID: 6, Quantity: 4}},
	}

	assert.Equal(t, []uint{6, 5}, allocs.CurrencyIDs())
}
