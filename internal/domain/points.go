package domain

import "time"

// PointKind labels entries in the gamification ledger.
type PointKind string

const (
	PointKindBookFinished PointKind = "BOOK_FINISHED"
	PointKindClubJoined   PointKind = "CLUB_JOINED"
)

// PointEvent is an append-only ledger entry. Account totals are
// computed by summing the ledger, never stored.
type PointEvent struct {
	ID        int64
	AccountID int64
	Kind      PointKind
	Points    int
	SourceID  *int64
	CreatedAt time.Time
}
