package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/openhack/arena/internal/adapters/identity"
	"github.com/openhack/arena/internal/domain/model"
	"github.com/openhack/arena/pkg/logger"
)

// AddJudge authorizes a user to score within a hackathon. The user must
// exist in the identity service and must not be banned.
func (s *Service) AddJudge(ctx context.Context, hackathonID, userID int64) (model.Judge, error) {
	h, err := s.store.GetHackathon(ctx, hackathonID)
	if err != nil {
		return model.Judge{}, err
	}
	if err := s.requireSettingsPhase(ctx, h, "add_judge"); err != nil {
		return model.Judge{}, err
	}

	u, err := s.identity.User(ctx, userID)
	if errors.Is(err, identity.ErrUserNotFound) {
		return model.Judge{}, fmt.Errorf("%w: user %d does not exist", ErrValidation, userID)
	}
	if err != nil {
		return model.Judge{}, err
	}
	if u.Banned {
		return model.Judge{}, fmt.Errorf("%w: user %d is banned", ErrValidation, userID)
	}

	j, err := s.store.CreateJudge(ctx, hackathonID, userID)
	if err != nil {
		return model.Judge{}, err
	}
	j.UserName = u.Name
	s.logger.Info(ctx, "judge added",
		logger.Int64("hackathon_id", hackathonID),
		logger.Int64("user_id", userID),
	)
	return j, nil
}

// ListJudges returns the hackathon's judge roster with best-effort
// display names from the identity service.
func (s *Service) ListJudges(ctx context.Context, hackathonID int64) ([]model.Judge, error) {
	if _, err := s.store.GetHackathon(ctx, hackathonID); err != nil {
		return nil, err
	}
	judges, err := s.store.ListJudges(ctx, hackathonID)
	if err != nil {
		return nil, err
	}

	ids := make([]int64, 0, len(judges))
	for _, j := range judges {
		ids = append(ids, j.UserID)
	}
	names, err := s.identity.DisplayNames(ctx, ids)
	if err != nil {
		s.logger.Warn(ctx, "judge name enrichment unavailable", logger.Error(err))
		return judges, nil
	}
	for i := range judges {
		judges[i].UserName = names[judges[i].UserID]
	}
	return judges, nil
}

// DeleteJudge revokes a user's judge authorization for one hackathon.
func (s *Service) DeleteJudge(ctx context.Context, hackathonID, userID int64) error {
	h, err := s.store.GetHackathon(ctx, hackathonID)
	if err != nil {
		return err
	}
	if err := s.requireSettingsPhase(ctx, h, "delete_judge"); err != nil {
		return err
	}
	return s.store.DeleteJudge(ctx, hackathonID, userID)
}
