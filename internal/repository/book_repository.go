package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/reading-service/internal/domain"
)

// BookRepository encapsulates catalog persistence.
type BookRepository interface {
	Create(ctx context.Context, book *domain.Book) error
	GetByID(ctx context.Context, id int64) (*domain.Book, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Book, error)
	List(ctx context.Context, search string, limit, offset int) ([]domain.Book, error)
	SlugExists(ctx context.Context, slug string, excludeID int64) (bool, error)
	ListUnslugged(ctx context.Context) ([]domain.Book, error)
	UpdateSlug(ctx context.Context, id int64, slug string) error
}

type bookRepository struct {
	pool *pgxpool.Pool
}

// NewBookRepository instantiates repository.
func NewBookRepository(pool *pgxpool.Pool) BookRepository {
	return &bookRepository{pool: pool}
}

func (r *bookRepository) Create(ctx context.Context, book *domain.Book) error {
	const query = `
        INSERT INTO books (title, author, description, slug)
        VALUES ($1, $2, $3, $4)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		book.Title,
		book.Author,
		book.Description,
		book.Slug,
	).Scan(&book.ID, &book.CreatedAt, &book.UpdatedAt)
}

func (r *bookRepository) GetByID(ctx context.Context, id int64) (*domain.Book, error) {
	const query = `
        SELECT id, title, author, description, slug, created_at, updated_at
        FROM books WHERE id=$1`
	return r.fetchSingle(ctx, query, id)
}

func (r *bookRepository) GetBySlug(ctx context.Context, slug string) (*domain.Book, error) {
	const query = `
        SELECT id, title, author, description, slug, created_at, updated_at
        FROM books WHERE slug=$1`
	return r.fetchSingle(ctx, query, slug)
}

func (r *bookRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.Book, error) {
	var book domain.Book
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&book.ID,
		&book.Title,
		&book.Author,
		&book.Description,
		&book.Slug,
		&book.CreatedAt,
		&book.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &book, nil
}

func (r *bookRepository) List(ctx context.Context, search string, limit, offset int) ([]domain.Book, error) {
	const query = `
        SELECT id, title, author, description, slug, created_at, updated_at
        FROM books
        WHERE ($1 = '' OR title ILIKE '%' || $1 || '%' OR author ILIKE '%' || $1 || '%')
        ORDER BY id
        LIMIT $2 OFFSET $3`

	rows, err := r.pool.Query(ctx, query, search, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanBooks(rows)
}

func (r *bookRepository) SlugExists(ctx context.Context, slug string, excludeID int64) (bool, error) {
	const query = `SELECT EXISTS(SELECT 1 FROM books WHERE slug=$1 AND id<>$2)`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, slug, excludeID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *bookRepository) ListUnslugged(ctx context.Context) ([]domain.Book, error) {
	const query = `
        SELECT id, title, author, description, slug, created_at, updated_at
        FROM books WHERE slug='' ORDER BY id`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanBooks(rows)
}

func (r *bookRepository) UpdateSlug(ctx context.Context, id int64, slug string) error {
	const query = `UPDATE books SET slug=$1, updated_at=NOW() WHERE id=$2`
	cmd, err := r.pool.Exec(ctx, query, slug, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func scanBooks(rows pgx.Rows) ([]domain.Book, error) {
	var books []domain.Book
	for rows.Next() {
		var book domain.Book
		if err := rows.Scan(
			&book.ID,
			&book.Title,
			&book.Author,
			&book.Description,
			&book.Slug,
			&book.CreatedAt,
			&book.UpdatedAt,
		); err != nil {
			return nil, err
		}
		books = append(books, book)
	}
	return books, rows.Err()
}
