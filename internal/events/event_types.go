package events

import "time"

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventBookFinished EventType = "book_finished"
	EventClubJoined   EventType = "club_joined"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	AccountID int64       `json:"account_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// BookFinishedPayload payload.
type BookFinishedPayload struct {
	BookID  int64 `json:"book_id"`
	ShelfID int64 `json:"shelf_id"`
}

// ClubJoinedPayload payload.
type ClubJoinedPayload struct {
	ClubID int64 `json:"club_id"`
}
