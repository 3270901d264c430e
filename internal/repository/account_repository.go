package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/reading-service/internal/domain"
)

// AccountRepository defines persistence access for accounts.
// Find methods match case-insensitively and order by ascending id so that
// legacy duplicate rows resolve deterministically, oldest first.
type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) error
	Update(ctx context.Context, account *domain.Account) error
	GetByID(ctx context.Context, id int64) (*domain.Account, error)
	FindByEmail(ctx context.Context, email string) ([]domain.Account, error)
	FindByUsername(ctx context.Context, username string) ([]domain.Account, error)
}

type accountRepository struct {
	pool *pgxpool.Pool
}

// NewAccountRepository returns a Postgres-backed implementation.
func NewAccountRepository(pool *pgxpool.Pool) AccountRepository {
	return &accountRepository{pool: pool}
}

func (r *accountRepository) Create(ctx context.Context, account *domain.Account) error {
	const query = `
        INSERT INTO accounts (email, username, password_hash, is_active, is_premium)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		account.Email,
		account.Username,
		account.PasswordHash,
		account.Active,
		account.Premium,
	).Scan(&account.ID, &account.CreatedAt, &account.UpdatedAt)
}

func (r *accountRepository) Update(ctx context.Context, account *domain.Account) error {
	const query = `
        UPDATE accounts SET email=$1, username=$2, password_hash=$3, is_active=$4, is_premium=$5, updated_at=NOW()
        WHERE id=$6`

	cmd, err := r.pool.Exec(ctx, query,
		account.Email,
		account.Username,
		account.PasswordHash,
		account.Active,
		account.Premium,
		account.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *accountRepository) GetByID(ctx context.Context, id int64) (*domain.Account, error) {
	const query = `
        SELECT id, email, username, password_hash, is_active, is_premium, created_at, updated_at
        FROM accounts WHERE id=$1`

	var account domain.Account
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&account.ID,
		&account.Email,
		&account.Username,
		&account.PasswordHash,
		&account.Active,
		&account.Premium,
		&account.CreatedAt,
		&account.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &account, nil
}

func (r *accountRepository) FindByEmail(ctx context.Context, email string) ([]domain.Account, error) {
	const query = `
        SELECT id, email, username, password_hash, is_active, is_premium, created_at, updated_at
        FROM accounts WHERE LOWER(email)=LOWER($1) ORDER BY id`
	return r.list(ctx, query, email)
}

func (r *accountRepository) FindByUsername(ctx context.Context, username string) ([]domain.Account, error) {
	const query = `
        SELECT id, email, username, password_hash, is_active, is_premium, created_at, updated_at
        FROM accounts WHERE LOWER(username)=LOWER($1) ORDER BY id`
	return r.list(ctx, query, username)
}

func (r *accountRepository) list(ctx context.Context, query string, arg any) ([]domain.Account, error) {
	rows, err := r.pool.Query(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var accounts []domain.Account
	for rows.Next() {
		var account domain.Account
		if err := rows.Scan(
			&account.ID,
			&account.Email,
			&account.Username,
			&account.PasswordHash,
			&account.Active,
			&account.Premium,
			&account.CreatedAt,
			&account.UpdatedAt,
		); err != nil {
			return nil, err
		}
		accounts = append(accounts, account)
	}
	return accounts, rows.Err()
}
