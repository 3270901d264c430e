package domain

import "time"

// ReadingStatus tracks a book's progress on a shelf.
type ReadingStatus string

const (
	ReadingStatusWant     ReadingStatus = "WANT"
	ReadingStatusReading  ReadingStatus = "READING"
	ReadingStatusFinished ReadingStatus = "FINISHED"
)

// Valid reports whether s is a known status.
func (s ReadingStatus) Valid() bool {
	switch s {
	case ReadingStatusWant, ReadingStatusReading, ReadingStatusFinished:
		return true
	}
	return false
}

// Shelf groups books for one account.
type Shelf struct {
	ID        int64
	AccountID int64
	Name      string
	CreatedAt time.Time
}

// ShelfItem places a book on a shelf with a reading status.
type ShelfItem struct {
	ID         int64
	ShelfID    int64
	BookID     int64
	Status     ReadingStatus
	AddedAt    time.Time
	FinishedAt *time.Time
}
