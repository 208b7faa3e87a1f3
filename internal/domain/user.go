package domain

import "time"

type User struct {
	ID              uint      `json:"id"`
	Name            string    `json:"name"`
	Email           string    `json:"email"`
	IsStaff         bool      `json:"is_staff"`
	SubmissionCount int       `json:"submission_count"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// URL is the relative profile link used in notification payloads.
func (u User) URL() string {
	return "/user/" + u.Name
}
