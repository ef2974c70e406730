package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/openhack/arena/internal/domain/model"
	"github.com/openhack/arena/pkg/logger"
	"github.com/openhack/arena/pkg/metrics"
)

func validateCriterion(name string, weight float64) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: criterion name is required", ErrValidation)
	}
	if weight <= 0 || weight > 1 {
		return fmt.Errorf("%w: weight must be in (0, 1], got %g", ErrValidation, weight)
	}
	return nil
}

// checkWeightBudget rejects a write that would push the hackathon's
// weight sum past the bound. delta is the weight being added on top of
// what is already stored, minus any weight the write replaces.
func (s *Service) checkWeightBudget(ctx context.Context, hackathonID int64, delta float64) error {
	sum, err := s.store.SumCriteriaWeights(ctx, hackathonID)
	if err != nil {
		return err
	}
	if sum+delta > maxWeightSum {
		metrics.RecordWeightRejection()
		return fmt.Errorf("%w: stored sum %.4f plus %.4f exceeds the bound", ErrWeightInvariant, sum, delta)
	}
	return nil
}

// AddCriterion registers a scoring criterion. Allowed only before the
// hackathon starts, and only while the weight budget holds.
func (s *Service) AddCriterion(ctx context.Context, hackathonID int64, name string, weight float64) (model.Criterion, error) {
	h, err := s.store.GetHackathon(ctx, hackathonID)
	if err != nil {
		return model.Criterion{}, err
	}
	if err := s.requireSettingsPhase(ctx, h, "add_criterion"); err != nil {
		return model.Criterion{}, err
	}
	if err := validateCriterion(name, weight); err != nil {
		return model.Criterion{}, err
	}
	if err := s.checkWeightBudget(ctx, hackathonID, weight); err != nil {
		return model.Criterion{}, err
	}

	c, err := s.store.CreateCriterion(ctx, model.Criterion{
		HackathonID: hackathonID,
		Name:        name,
		Weight:      weight,
	})
	if err != nil {
		return model.Criterion{}, err
	}
	s.logger.Info(ctx, "criterion added",
		logger.Int64("hackathon_id", hackathonID),
		logger.Int64("criterion_id", c.ID),
		logger.Float64("weight", weight),
	)
	return c, nil
}

// GetCriterion returns one criterion, scoped to its hackathon.
func (s *Service) GetCriterion(ctx context.Context, hackathonID, criterionID int64) (model.Criterion, error) {
	return s.store.GetHackathonCriterion(ctx, hackathonID, criterionID)
}

// ListCriteria returns all criteria of a hackathon.
func (s *Service) ListCriteria(ctx context.Context, hackathonID int64) ([]model.Criterion, error) {
	if _, err := s.store.GetHackathon(ctx, hackathonID); err != nil {
		return nil, err
	}
	return s.store.ListCriteria(ctx, hackathonID)
}

// UpdateCriterion edits name or weight. The weight budget is checked
// against the replacement delta, not the raw new weight.
func (s *Service) UpdateCriterion(ctx context.Context, hackathonID, criterionID int64, name *string, weight *float64) (model.Criterion, error) {
	h, err := s.store.GetHackathon(ctx, hackathonID)
	if err != nil {
		return model.Criterion{}, err
	}
	if err := s.requireSettingsPhase(ctx, h, "update_criterion"); err != nil {
		return model.Criterion{}, err
	}

	c, err := s.store.GetHackathonCriterion(ctx, hackathonID, criterionID)
	if err != nil {
		return model.Criterion{}, err
	}

	next := c
	if name != nil {
		next.Name = *name
	}
	if weight != nil {
		next.Weight = *weight
	}
	if err := validateCriterion(next.Name, next.Weight); err != nil {
		return model.Criterion{}, err
	}
	if next.Weight != c.Weight {
		if err := s.checkWeightBudget(ctx, hackathonID, next.Weight-c.Weight); err != nil {
			return model.Criterion{}, err
		}
	}
	return s.store.UpdateCriterion(ctx, next)
}

// DeleteCriterion removes a criterion before the hackathon starts.
func (s *Service) DeleteCriterion(ctx context.Context, hackathonID, criterionID int64) error {
	h, err := s.store.GetHackathon(ctx, hackathonID)
	if err != nil {
		return err
	}
	if err := s.requireSettingsPhase(ctx, h, "delete_criterion"); err != nil {
		return err
	}
	return s.store.DeleteCriterion(ctx, hackathonID, criterionID)
}
