package app

import (
	"context"
	"time"

	"github.com/openhack/arena/internal/domain/model"
	"github.com/openhack/arena/internal/domain/phase"
	"github.com/openhack/arena/internal/domain/scoring"
	"github.com/openhack/arena/pkg/logger"
	"github.com/openhack/arena/pkg/metrics"
)

// TeamResult is a ranked result row with its roster display name.
type TeamResult struct {
	TeamID   int64
	TeamName string
	Score    float64
}

// ComputeFinalScores rebuilds every final score for a hackathon from
// the raw score and criterion rows and persists the aggregates.
// The aggregate is rebuildable at any time, so callers may re-run it
// after late corrections.
func (s *Service) ComputeFinalScores(ctx context.Context, hackathonID int64) ([]model.FinalScore, error) {
	if _, err := s.store.GetHackathon(ctx, hackathonID); err != nil {
		return nil, err
	}

	start := time.Now()
	rated, err := s.store.ListRatedScores(ctx, hackathonID)
	if err != nil {
		return nil, err
	}
	finals := scoring.Aggregate(rated)
	for _, fs := range finals {
		if err := s.store.UpsertFinalScore(ctx, fs); err != nil {
			return nil, err
		}
	}

	metrics.RecordAggregationRun()
	metrics.RecordAggregationDuration(float64(time.Since(start).Milliseconds()))
	metrics.UpdateAggregationTeams(len(finals))
	s.logger.Info(ctx, "final scores recomputed",
		logger.Int64("hackathon_id", hackathonID),
		logger.Int("teams", len(finals)),
	)
	return finals, nil
}

// Results returns the hackathon's ranked standings, visible only once
// the hackathon has ended. Rankings cover the current roster: teams
// that left the hackathon drop out even if their aggregates remain
// cached.
func (s *Service) Results(ctx context.Context, hackathonID int64) ([]TeamResult, error) {
	h, err := s.store.GetHackathon(ctx, hackathonID)
	if err != nil {
		return nil, err
	}
	if err := s.requirePhase(ctx, phase.At(s.clock.Now(), h).CanViewResults, hackathonID, "view_results"); err != nil {
		return nil, err
	}

	teams, err := s.roster.Teams(ctx, hackathonID)
	if err != nil {
		return nil, err
	}
	names := make(map[int64]string, len(teams))
	ids := make([]int64, 0, len(teams))
	for _, t := range teams {
		names[t.ID] = t.Name
		ids = append(ids, t.ID)
	}

	finals, err := s.store.ListFinalScoresByTeams(ctx, ids)
	if err != nil {
		return nil, err
	}

	results := make([]TeamResult, 0, len(finals))
	for _, fs := range finals {
		results = append(results, TeamResult{
			TeamID:   fs.TeamID,
			TeamName: names[fs.TeamID],
			Score:    fs.Score,
		})
	}
	return results, nil
}
