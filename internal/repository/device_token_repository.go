package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// DeviceTokenRepository persists the 1:1 account-to-token mapping. It
// satisfies auth.TokenStore.
type DeviceTokenRepository interface {
	GetOrCreate(ctx context.Context, accountID int64, key string) (string, error)
	FindAccountID(ctx context.Context, key string) (int64, error)
	DeleteByAccount(ctx context.Context, accountID int64) error
}

type deviceTokenRepository struct {
	pool *pgxpool.Pool
}

// NewDeviceTokenRepository returns a Postgres-backed implementation.
func NewDeviceTokenRepository(pool *pgxpool.Pool) DeviceTokenRepository {
	return &deviceTokenRepository{pool: pool}
}

func (r *deviceTokenRepository) GetOrCreate(ctx context.Context, accountID int64, key string) (string, error) {
	// The no-op DO UPDATE makes RETURNING yield the existing key on conflict,
	// so repeated issuance is idempotent in a single statement.
	const query = `
        INSERT INTO device_tokens (account_id, key) VALUES ($1, $2)
        ON CONFLICT (account_id) DO UPDATE SET key = device_tokens.key
        RETURNING key`

	var got string
	if err := r.pool.QueryRow(ctx, query, accountID, key).Scan(&got); err != nil {
		return "", err
	}
	return got, nil
}

func (r *deviceTokenRepository) FindAccountID(ctx context.Context, key string) (int64, error) {
	const query = `SELECT account_id FROM device_tokens WHERE key=$1`

	var accountID int64
	if err := r.pool.QueryRow(ctx, query, key).Scan(&accountID); err != nil {
		return 0, err
	}
	return accountID, nil
}

func (r *deviceTokenRepository) DeleteByAccount(ctx context.Context, accountID int64) error {
	const query = `DELETE FROM device_tokens WHERE account_id=$1`
	_, err := r.pool.Exec(ctx, query, accountID)
	return err
}
