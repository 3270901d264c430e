package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/reading-service/internal/domain"
)

// PointEventRepository is the append-only gamification ledger.
type PointEventRepository interface {
	Append(ctx context.Context, event *domain.PointEvent) error
	ListByAccount(ctx context.Context, accountID int64, limit, offset int) ([]domain.PointEvent, error)
	TotalForAccount(ctx context.Context, accountID int64) (int, error)
}

type pointEventRepository struct {
	pool *pgxpool.Pool
}

// NewPointEventRepository instantiates repository.
func NewPointEventRepository(pool *pgxpool.Pool) PointEventRepository {
	return &pointEventRepository{pool: pool}
}

func (r *pointEventRepository) Append(ctx context.Context, event *domain.PointEvent) error {
	const query = `
        INSERT INTO point_events (account_id, kind, points, source_id)
        VALUES ($1, $2, $3, $4)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		event.AccountID,
		event.Kind,
		event.Points,
		event.SourceID,
	).Scan(&event.ID, &event.CreatedAt)
}

func (r *pointEventRepository) ListByAccount(ctx context.Context, accountID int64, limit, offset int) ([]domain.PointEvent, error) {
	const query = `
        SELECT id, account_id, kind, points, source_id, created_at
        FROM point_events WHERE account_id=$1
        ORDER BY id DESC LIMIT $2 OFFSET $3`

	rows, err := r.pool.Query(ctx, query, accountID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []domain.PointEvent
	for rows.Next() {
		var event domain.PointEvent
		if err := rows.Scan(
			&event.ID,
			&event.AccountID,
			&event.Kind,
			&event.Points,
			&event.SourceID,
			&event.CreatedAt,
		); err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	return events, rows.Err()
}

func (r *pointEventRepository) TotalForAccount(ctx context.Context, accountID int64) (int, error) {
	const query = `SELECT COALESCE(SUM(points), 0) FROM point_events WHERE account_id=$1`

	var total int
	if err := r.pool.QueryRow(ctx, query, accountID).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}
