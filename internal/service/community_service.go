package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/homegrid/community-service/internal/domain"
	"github.com/homegrid/community-service/internal/events"
	"github.com/homegrid/community-service/internal/repository"
	apperrors "github.com/homegrid/community-service/pkg/util/errorutil"
)

// AdminCacheInvalidator drops cached admin membership for a community.
type AdminCacheInvalidator interface {
	Invalidate(ctx context.Context, communityID string) error
}

// CommunityService manages communities and their privileged members.
// Ownership checks happen in the request pipeline before these methods run.
type CommunityService struct {
	repo       repository.CommunityRepository
	cache      AdminCacheInvalidator
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewCommunityService builds the service. cache may be nil.
func NewCommunityService(repo repository.CommunityRepository, cache AdminCacheInvalidator, dispatcher events.Dispatcher, logger *zap.Logger) *CommunityService {
	return &CommunityService{repo: repo, cache: cache, dispatcher: dispatcher, logger: logger}
}

// Create registers a community with creatorID as its first admin.
func (s *CommunityService) Create(ctx context.Context, creatorID, name, address string) (*domain.Community, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.NewValidationError("invalid community", map[string]any{"name": "required"})
	}

	community := &domain.Community{Name: name, Address: strings.TrimSpace(address)}
	if err := s.repo.Create(ctx, community, creatorID); err != nil {
		return nil, err
	}
	s.logger.Info("community created",
		zap.String("community_id", community.ID), zap.String("principal_id", creatorID))
	return community, nil
}

// AddAdmin grants userID admin rights on communityID.
func (s *CommunityService) AddAdmin(ctx context.Context, actorID, communityID, userID string) error {
	if _, err := uuid.Parse(userID); err != nil {
		return apperrors.NewValidationError("invalid admin", map[string]any{"user_id": "must be a valid id"})
	}
	if _, err := s.getCommunity(ctx, communityID); err != nil {
		return err
	}

	if err := s.repo.AddAdmin(ctx, communityID, userID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperrors.NewNotFound("user", nil)
		}
		return err
	}
	if s.cache != nil {
		if err := s.cache.Invalidate(ctx, communityID); err != nil {
			s.logger.Warn("admin cache invalidation failed", zap.String("community_id", communityID), zap.Error(err))
		}
	}

	if s.dispatcher != nil {
		err := s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventCommunityAdminAdded,
			SubjectID: userID,
			Timestamp: time.Now().UTC(),
			Payload:   events.CommunityAdminAddedPayload{CommunityID: communityID, UserID: userID, AddedBy: actorID},
		})
		if err != nil {
			s.logger.Warn("event handler failed", zap.Error(err))
		}
	}
	return nil
}

// AddAmenity records a new amenity for communityID.
func (s *CommunityService) AddAmenity(ctx context.Context, communityID, name, description string) (*domain.Amenity, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.NewValidationError("invalid amenity", map[string]any{"name": "required"})
	}
	if _, err := s.getCommunity(ctx, communityID); err != nil {
		return nil, err
	}

	amenity := &domain.Amenity{CommunityID: communityID, Name: name, Description: strings.TrimSpace(description)}
	if err := s.repo.AddAmenity(ctx, amenity); err != nil {
		return nil, err
	}
	return amenity, nil
}

func (s *CommunityService) getCommunity(ctx context.Context, id string) (*domain.Community, error) {
	community, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, apperrors.NewNotFound("community", map[string]any{"id": id})
	}
	return community, err
}
