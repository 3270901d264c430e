package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/reading-service/internal/domain"
)

// ClubRepository encapsulates club and membership persistence.
type ClubRepository interface {
	Create(ctx context.Context, club *domain.Club) error
	GetBySlug(ctx context.Context, slug string) (*domain.Club, error)
	List(ctx context.Context, limit, offset int) ([]domain.Club, error)
	SlugExists(ctx context.Context, slug string, excludeID int64) (bool, error)
	AddMember(ctx context.Context, member *domain.ClubMember) error
	RemoveMember(ctx context.Context, clubID, accountID int64) error
	IsMember(ctx context.Context, clubID, accountID int64) (bool, error)
	ListMembers(ctx context.Context, clubID int64) ([]domain.ClubMember, error)
}

type clubRepository struct {
	pool *pgxpool.Pool
}

// NewClubRepository instantiates repository.
func NewClubRepository(pool *pgxpool.Pool) ClubRepository {
	return &clubRepository{pool: pool}
}

func (r *clubRepository) Create(ctx context.Context, club *domain.Club) error {
	const query = `
        INSERT INTO clubs (name, description, slug, owner_id)
        VALUES ($1, $2, $3, $4)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		club.Name,
		club.Description,
		club.Slug,
		club.OwnerID,
	).Scan(&club.ID, &club.CreatedAt)
}

func (r *clubRepository) GetBySlug(ctx context.Context, slug string) (*domain.Club, error) {
	const query = `
        SELECT id, name, description, slug, owner_id, created_at
        FROM clubs WHERE slug=$1`

	var club domain.Club
	if err := r.pool.QueryRow(ctx, query, slug).Scan(
		&club.ID,
		&club.Name,
		&club.Description,
		&club.Slug,
		&club.OwnerID,
		&club.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &club, nil
}

func (r *clubRepository) List(ctx context.Context, limit, offset int) ([]domain.Club, error) {
	const query = `
        SELECT id, name, description, slug, owner_id, created_at
        FROM clubs ORDER BY id LIMIT $1 OFFSET $2`

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var clubs []domain.Club
	for rows.Next() {
		var club domain.Club
		if err := rows.Scan(
			&club.ID,
			&club.Name,
			&club.Description,
			&club.Slug,
			&club.OwnerID,
			&club.CreatedAt,
		); err != nil {
			return nil, err
		}
		clubs = append(clubs, club)
	}
	return clubs, rows.Err()
}

func (r *clubRepository) SlugExists(ctx context.Context, slug string, excludeID int64) (bool, error) {
	const query = `SELECT EXISTS(SELECT 1 FROM clubs WHERE slug=$1 AND id<>$2)`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, slug, excludeID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *clubRepository) AddMember(ctx context.Context, member *domain.ClubMember) error {
	const query = `
        INSERT INTO club_members (club_id, account_id, role)
        VALUES ($1, $2, $3)
        RETURNING joined_at`
	return r.pool.QueryRow(ctx, query, member.ClubID, member.AccountID, member.Role).
		Scan(&member.JoinedAt)
}

func (r *clubRepository) RemoveMember(ctx context.Context, clubID, accountID int64) error {
	const query = `DELETE FROM club_members WHERE club_id=$1 AND account_id=$2`
	_, err := r.pool.Exec(ctx, query, clubID, accountID)
	return err
}

func (r *clubRepository) IsMember(ctx context.Context, clubID, accountID int64) (bool, error) {
	const query = `SELECT EXISTS(SELECT 1 FROM club_members WHERE club_id=$1 AND account_id=$2)`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, clubID, accountID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *clubRepository) ListMembers(ctx context.Context, clubID int64) ([]domain.ClubMember, error) {
	const query = `
        SELECT club_id, account_id, role, joined_at
        FROM club_members WHERE club_id=$1 ORDER BY joined_at`

	rows, err := r.pool.Query(ctx, query, clubID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []domain.ClubMember
	for rows.Next() {
		var member domain.ClubMember
		if err := rows.Scan(&member.ClubID, &member.AccountID, &member.Role, &member.JoinedAt); err != nil {
			return nil, err
		}
		members = append(members, member)
	}
	return members, rows.Err()
}
