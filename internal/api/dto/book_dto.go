package dto

import "time"

// CreateBookRequest payload for catalog additions.
type CreateBookRequest struct {
	Title       string `json:"title"`
	Author      string `json:"author"`
	Description string `json:"description"`
}

// BookSummary is the catalog view of a book.
type BookSummary struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Author    string    `json:"author"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"created_at"`
}

// BookDetail includes the description.
type BookDetail struct {
	BookSummary
	Description string `json:"description"`
}
