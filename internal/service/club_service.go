package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/reading-service/internal/domain"
	"github.com/spec-kit/reading-service/internal/events"
	"github.com/spec-kit/reading-service/internal/repository"
	"github.com/spec-kit/reading-service/internal/slug"
	apperrors "github.com/spec-kit/reading-service/pkg/util"
)

// ClubService manages reading clubs and their membership.
type ClubService struct {
	clubs           repository.ClubRepository
	dispatcher      events.Dispatcher
	maxSlugAttempts int
	logger          *zap.Logger
}

// NewClubService builds the service.
func NewClubService(clubs repository.ClubRepository, dispatcher events.Dispatcher, maxSlugAttempts int, logger *zap.Logger) *ClubService {
	return &ClubService{clubs: clubs, dispatcher: dispatcher, maxSlugAttempts: maxSlugAttempts, logger: logger}
}

// CreateClub creates a club with a unique slug and makes the creator its
// owner member.
func (s *ClubService) CreateClub(ctx context.Context, ownerID int64, name, description string) (*domain.Club, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.NewValidationError("name required", nil)
	}

	club := &domain.Club{Name: name, Description: description, OwnerID: ownerID}

	for attempt := 0; attempt < 2; attempt++ {
		candidate, err := slug.Generate(ctx, name, s.maxSlugAttempts, s.slugExists)
		if err != nil {
			return nil, err
		}
		club.Slug = candidate

		err = s.clubs.Create(ctx, club)
		if err == nil {
			break
		}
		if !apperrors.IsUniqueViolation(err) {
			return nil, err
		}
		if attempt == 1 {
			return nil, apperrors.NewConflict("could not assign a unique slug", nil)
		}
	}

	owner := &domain.ClubMember{ClubID: club.ID, AccountID: ownerID, Role: domain.MemberRoleOwner}
	if err := s.clubs.AddMember(ctx, owner); err != nil {
		return nil, err
	}

	s.logger.Info("club created",
		zap.Int64("club_id", club.ID), zap.String("slug", club.Slug), zap.Int64("owner_id", ownerID))
	return club, nil
}

// GetClub returns a club and its members.
func (s *ClubService) GetClub(ctx context.Context, slugStr string) (*domain.Club, []domain.ClubMember, error) {
	club, err := s.clubs.GetBySlug(ctx, slugStr)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, apperrors.NewNotFound("club", nil)
		}
		return nil, nil, err
	}
	members, err := s.clubs.ListMembers(ctx, club.ID)
	if err != nil {
		return nil, nil, err
	}
	return club, members, nil
}

// ListClubs pages over all clubs.
func (s *ClubService) ListClubs(ctx context.Context, limit, offset int) ([]domain.Club, error) {
	if limit < 1 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.clubs.List(ctx, limit, offset)
}

// Join adds the account as a member and emits a club_joined event.
func (s *ClubService) Join(ctx context.Context, accountID int64, slugStr string) error {
	club, err := s.clubs.GetBySlug(ctx, slugStr)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("club", nil)
		}
		return err
	}

	member := &domain.ClubMember{ClubID: club.ID, AccountID: accountID, Role: domain.MemberRoleMember}
	if err := s.clubs.AddMember(ctx, member); err != nil {
		if apperrors.IsUniqueViolation(err) {
			return apperrors.NewConflict("already a member", nil)
		}
		return err
	}

	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventClubJoined,
		AccountID: accountID,
		Timestamp: time.Now(),
		Payload:   events.ClubJoinedPayload{ClubID: club.ID},
	})
	return nil
}

// Leave removes the account's membership. Owners cannot leave their own
// club.
func (s *ClubService) Leave(ctx context.Context, accountID int64, slugStr string) error {
	club, err := s.clubs.GetBySlug(ctx, slugStr)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("club", nil)
		}
		return err
	}
	if club.OwnerID == accountID {
		return apperrors.NewForbidden("owner cannot leave the club")
	}

	isMember, err := s.clubs.IsMember(ctx, club.ID, accountID)
	if err != nil {
		return err
	}
	if !isMember {
		return apperrors.NewNotFound("membership", nil)
	}
	return s.clubs.RemoveMember(ctx, club.ID, accountID)
}

func (s *ClubService) slugExists(ctx context.Context, candidate string) (bool, error) {
	return s.clubs.SlugExists(ctx, candidate, 0)
}
