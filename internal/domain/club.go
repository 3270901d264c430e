package domain

import "time"

// MemberRole differentiates club owners from regular members.
type MemberRole string

const (
	MemberRoleOwner  MemberRole = "OWNER"
	MemberRoleMember MemberRole = "MEMBER"
)

// Club is a reading club addressable by its URL slug.
type Club struct {
	ID          int64
	Name        string
	Description string
	Slug        string
	OwnerID     int64
	CreatedAt   time.Time
}

// ClubMember links an account to a club.
type ClubMember struct {
	ClubID    int64
	AccountID int64
	Role      MemberRole
	JoinedAt  time.Time
}
