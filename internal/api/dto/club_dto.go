package dto

import "time"

// CreateClubRequest payload.
type CreateClubRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// ClubSummary describes a club.
type ClubSummary struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	OwnerID     int64     `json:"owner_id"`
	CreatedAt   time.Time `json:"created_at"`
}

// ClubMemberSummary describes a membership.
type ClubMemberSummary struct {
	AccountID int64     `json:"account_id"`
	Role      string    `json:"role"`
	JoinedAt  time.Time `json:"joined_at"`
}

// ClubDetail bundles a club with its members.
type ClubDetail struct {
	ClubSummary
	Members []ClubMemberSummary `json:"members"`
}
