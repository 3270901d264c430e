package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/reading-service/internal/domain"
)

// ShelfRepository encapsulates shelf and shelf-item persistence.
type ShelfRepository interface {
	Create(ctx context.Context, shelf *domain.Shelf) error
	GetByID(ctx context.Context, id int64) (*domain.Shelf, error)
	ListByAccount(ctx context.Context, accountID int64) ([]domain.Shelf, error)
	AddItem(ctx context.Context, item *domain.ShelfItem) error
	GetItem(ctx context.Context, shelfID, bookID int64) (*domain.ShelfItem, error)
	UpdateItem(ctx context.Context, item *domain.ShelfItem) error
	ListItems(ctx context.Context, shelfID int64) ([]domain.ShelfItem, error)
}

type shelfRepository struct {
	pool *pgxpool.Pool
}

// NewShelfRepository instantiates repository.
func NewShelfRepository(pool *pgxpool.Pool) ShelfRepository {
	return &shelfRepository{pool: pool}
}

func (r *shelfRepository) Create(ctx context.Context, shelf *domain.Shelf) error {
	const query = `
        INSERT INTO shelves (account_id, name)
        VALUES ($1, $2)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query, shelf.AccountID, shelf.Name).
		Scan(&shelf.ID, &shelf.CreatedAt)
}

func (r *shelfRepository) GetByID(ctx context.Context, id int64) (*domain.Shelf, error) {
	const query = `SELECT id, account_id, name, created_at FROM shelves WHERE id=$1`

	var shelf domain.Shelf
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&shelf.ID,
		&shelf.AccountID,
		&shelf.Name,
		&shelf.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &shelf, nil
}

func (r *shelfRepository) ListByAccount(ctx context.Context, accountID int64) ([]domain.Shelf, error) {
	const query = `SELECT id, account_id, name, created_at FROM shelves WHERE account_id=$1 ORDER BY id`

	rows, err := r.pool.Query(ctx, query, accountID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var shelves []domain.Shelf
	for rows.Next() {
		var shelf domain.Shelf
		if err := rows.Scan(&shelf.ID, &shelf.AccountID, &shelf.Name, &shelf.CreatedAt); err != nil {
			return nil, err
		}
		shelves = append(shelves, shelf)
	}
	return shelves, rows.Err()
}

func (r *shelfRepository) AddItem(ctx context.Context, item *domain.ShelfItem) error {
	const query = `
        INSERT INTO shelf_items (shelf_id, book_id, status, finished_at)
        VALUES ($1, $2, $3, $4)
        RETURNING id, added_at`
	return r.pool.QueryRow(ctx, query, item.ShelfID, item.BookID, item.Status, item.FinishedAt).
		Scan(&item.ID, &item.AddedAt)
}

func (r *shelfRepository) GetItem(ctx context.Context, shelfID, bookID int64) (*domain.ShelfItem, error) {
	const query = `
        SELECT id, shelf_id, book_id, status, added_at, finished_at
        FROM shelf_items WHERE shelf_id=$1 AND book_id=$2`

	var item domain.ShelfItem
	if err := r.pool.QueryRow(ctx, query, shelfID, bookID).Scan(
		&item.ID,
		&item.ShelfID,
		&item.BookID,
		&item.Status,
		&item.AddedAt,
		&item.FinishedAt,
	); err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *shelfRepository) UpdateItem(ctx context.Context, item *domain.ShelfItem) error {
	const query = `UPDATE shelf_items SET status=$1, finished_at=$2 WHERE id=$3`
	cmd, err := r.pool.Exec(ctx, query, item.Status, item.FinishedAt, item.ID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *shelfRepository) ListItems(ctx context.Context, shelfID int64) ([]domain.ShelfItem, error) {
	const query = `
        SELECT id, shelf_id, book_id, status, added_at, finished_at
        FROM shelf_items WHERE shelf_id=$1 ORDER BY id`

	rows, err := r.pool.Query(ctx, query, shelfID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.ShelfItem
	for rows.Next() {
		var item domain.ShelfItem
		if err := rows.Scan(
			&item.ID,
			&item.ShelfID,
			&item.BookID,
			&item.Status,
			&item.AddedAt,
			&item.FinishedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}
