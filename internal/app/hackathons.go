package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/openhack/arena/internal/domain/model"
	"github.com/openhack/arena/pkg/logger"
)

// HackathonUpdate carries a partial hackathon edit; nil fields are untouched.
type HackathonUpdate struct {
	Name                *string
	Description         *string
	MaxParticipantCount *int
	MaxTeamMatesCount   *int
	StartDate           *time.Time
	ScoreStartDate      *time.Time
	EndDate             *time.Time
}

func validateHackathon(h model.Hackathon) error {
	if strings.TrimSpace(h.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrValidation)
	}
	if h.StartDate.IsZero() || h.ScoreStartDate.IsZero() || h.EndDate.IsZero() {
		return fmt.Errorf("%w: start, score start and end dates are required", ErrValidation)
	}
	if !h.DatesOrdered() {
		return fmt.Errorf("%w: dates must satisfy start < score start < end", ErrValidation)
	}
	if h.MaxParticipantCount < 0 || h.MaxTeamMatesCount < 0 {
		return fmt.Errorf("%w: participant limits must not be negative", ErrValidation)
	}
	return nil
}

// CreateHackathon registers a new hackathon after validating its dates.
func (s *Service) CreateHackathon(ctx context.Context, h model.Hackathon) (model.Hackathon, error) {
	if err := validateHackathon(h); err != nil {
		return model.Hackathon{}, err
	}
	created, err := s.store.CreateHackathon(ctx, h)
	if err != nil {
		return model.Hackathon{}, err
	}
	s.logger.Info(ctx, "hackathon created",
		logger.Int64("hackathon_id", created.ID),
		logger.String("name", created.Name),
	)
	return created, nil
}

// GetHackathon returns one hackathon by id.
func (s *Service) GetHackathon(ctx context.Context, id int64) (model.Hackathon, error) {
	return s.store.GetHackathon(ctx, id)
}

// ListHackathons returns all hackathons.
func (s *Service) ListHackathons(ctx context.Context) ([]model.Hackathon, error) {
	return s.store.ListHackathons(ctx)
}

// UpdateHackathon applies a partial edit. Settings are frozen once the
// hackathon has started.
func (s *Service) UpdateHackathon(ctx context.Context, id int64, upd HackathonUpdate) (model.Hackathon, error) {
	h, err := s.store.GetHackathon(ctx, id)
	if err != nil {
		return model.Hackathon{}, err
	}
	if err := s.requireSettingsPhase(ctx, h, "update_hackathon"); err != nil {
		return model.Hackathon{}, err
	}

	if upd.Name != nil {
		h.Name = *upd.Name
	}
	if upd.Description != nil {
		h.Description = *upd.Description
	}
	if upd.MaxParticipantCount != nil {
		h.MaxParticipantCount = *upd.MaxParticipantCount
	}
	if upd.MaxTeamMatesCount != nil {
		h.MaxTeamMatesCount = *upd.MaxTeamMatesCount
	}
	if upd.StartDate != nil {
		h.StartDate = *upd.StartDate
	}
	if upd.ScoreStartDate != nil {
		h.ScoreStartDate = *upd.ScoreStartDate
	}
	if upd.EndDate != nil {
		h.EndDate = *upd.EndDate
	}

	if err := validateHackathon(h); err != nil {
		return model.Hackathon{}, err
	}
	return s.store.UpdateHackathon(ctx, h)
}

// DeleteHackathon removes a hackathon and, via cascade, its criteria,
// judges and scores.
func (s *Service) DeleteHackathon(ctx context.Context, id int64) error {
	if err := s.store.DeleteHackathon(ctx, id); err != nil {
		return err
	}
	s.logger.Info(ctx, "hackathon deleted", logger.Int64("hackathon_id", id))
	return nil
}
