package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"statuscheck-backend/internal/errs"
	"statuscheck-backend/internal/models"
)

// CircleService maintains the support circle of the current user
type CircleService struct {
	circles  CircleStore
	profiles ProfileStore
	hub      *Hub
}

// NewCircleService creates a new circle service
func NewCircleService(circles CircleStore, profiles ProfileStore, hub *Hub) *CircleService {
	return &CircleService{
		circles:  circles,
		profiles: profiles,
		hub:      hub,
	}
}

// AddMember resolves friend to a profile (by email when the string
// contains an "@", otherwise by username) and adds it to ownerID's
// circle. Adding an existing member is a no-op. A user can never add
// themselves, by id, email or username.
func (s *CircleService) AddMember(ctx context.Context, ownerID, friend string) (*models.Profile, error) {
	friend = strings.TrimSpace(friend)
	if friend == "" {
		return nil, fmt.Errorf("%w: please enter a username or email", errs.ErrValidation)
	}

	owner, err := s.profiles.GetByID(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load own profile: %w", err)
	}
	if friend == ownerID || friend == owner.Email || friend == owner.Username {
		return nil, fmt.Errorf("%w: you cannot add yourself to your circle", errs.ErrValidation)
	}

	var target *models.Profile
	if strings.Contains(friend, "@") {
		target, err = s.profiles.GetByEmail(ctx, friend)
	} else {
		target, err = s.profiles.GetByUsername(ctx, friend)
	}
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return nil, fmt.Errorf("%w: no user matches %q", errs.ErrNotFound, friend)
		}
		return nil, fmt.Errorf("failed to look up friend: %w", err)
	}
	if target.ID == ownerID {
		return nil, fmt.Errorf("%w: you cannot add yourself to your circle", errs.ErrValidation)
	}

	if err := s.circles.AddMember(ctx, ownerID, target.ID); err != nil {
		return nil, err
	}

	s.publishChange(ctx, ownerID, "member_added", target.ID)
	return target, nil
}

// RemoveMember removes memberID from ownerID's circle. Removing an
// absent member is a no-op and reports no error.
func (s *CircleService) RemoveMember(ctx context.Context, ownerID, memberID string) error {
	if strings.TrimSpace(memberID) == "" {
		return fmt.Errorf("%w: member id is required", errs.ErrValidation)
	}

	if err := s.circles.RemoveMember(ctx, ownerID, memberID); err != nil {
		return err
	}

	s.publishChange(ctx, ownerID, "member_removed", memberID)
	return nil
}

// Members returns the full profiles of everyone in ownerID's circle.
// All profiles are resolved before the list is returned; no partial
// list is ever produced.
func (s *CircleService) Members(ctx context.Context, ownerID string) ([]*models.Profile, error) {
	ids, err := s.circles.MemberIDs(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []*models.Profile{}, nil
	}
	return s.profiles.GetByIDs(ctx, ids)
}

// publishChange pushes the new member-id set to the owner's live
// circle subscription. A failed reload is logged by the hub consumer
// side; the write itself has already succeeded.
func (s *CircleService) publishChange(ctx context.Context, ownerID, eventType, memberID string) {
	ids, err := s.circles.MemberIDs(ctx, ownerID)
	if err != nil {
		// The subscriber will still see the change on its next refresh.
		return
	}
	s.hub.Publish(Event{
		Topic: CircleTopic(ownerID),
		Type:  eventType,
		Data: map[string]any{
			"member_id": memberID,
			"members":   ids,
		},
	})
}
