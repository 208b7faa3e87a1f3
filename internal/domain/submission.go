package domain

import (
	"time"
)

type SubmissionStatus string

const (
	SubmissionPending  SubmissionStatus = "Pending"
	SubmissionApproved SubmissionStatus = "Approved"
	SubmissionRejected SubmissionStatus = "Rejected"
)

type Submission struct {
	ID            uint                       `json:"id"`
	PromptID      uint                       `json:"prompt_id"`
	UserID        uint                       `json:"user_id"`
	URL           string                     `json:"url"`
	Comments      string                     `json:"comments"`
	Status        SubmissionStatus           `json:"status"`
	StaffID       *uint                      `json:"staff_id,omitempty"`
	StaffComments string                     `json:"staff_comments,omitempty"`
	Data          Snapshot                   `json:"data"`
	Characters    []SubmissionCharacterGrant `json:"characters"`
	CreatedAt     time.Time                  `json:"created_at"`
	UpdatedAt     time.Time                  `json:"updated_at"`
}

// SubmissionCharacterGrant records the assets attached to one character of a submission.
type SubmissionCharacterGrant struct {
	ID           uint     `json:"id"`
	SubmissionID uint     `json:"submission_id"`
	CharacterID  uint     `json:"character_id"`
	Data         Snapshot `json:"data"`
}

func (s *Submission) IsPending() bool {
	return s.Status == SubmissionPending
}

func (s *Submission) Approve(staffID uint, staffComments string, granted Snapshot) error {
	if !s.IsPending() {
		return ErrNotPending
	}
	s.Status = SubmissionApproved
	s.StaffID = &staffID
	s.StaffComments = staffComments
	s.Data = granted
	return nil
}

func (s *Submission) Reject(staffID uint, staffComments string) error {
	if !s.IsPending() {
		return ErrNotPending
	}
	s.Status = SubmissionRejected
	s.StaffID = &staffID
	s.StaffComments = staffComments
	return nil
}
