package dto

import "time"

// CreateShelfRequest payload.
type CreateShelfRequest struct {
	Name string `json:"name"`
}

// AddShelfItemRequest payload.
type AddShelfItemRequest struct {
	BookID int64  `json:"book_id"`
	Status string `json:"status"`
}

// UpdateShelfItemRequest payload.
type UpdateShelfItemRequest struct {
	Status string `json:"status"`
}

// ShelfSummary describes a shelf.
type ShelfSummary struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// ShelfItemSummary describes one shelved book.
type ShelfItemSummary struct {
	BookID     int64      `json:"book_id"`
	Status     string     `json:"status"`
	AddedAt    time.Time  `json:"added_at"`
	FinishedAt *time.Time `json:"finished_at,omitempty"`
}
