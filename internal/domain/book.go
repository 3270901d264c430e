package domain

import "time"

// Book is a catalog entry addressable by its URL slug.
type Book struct {
	ID          int64
	Title       string
	Author      string
	Description string
	Slug        string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
