package app

import (
	"context"
	"fmt"

	"github.com/openhack/arena/internal/domain/model"
	"github.com/openhack/arena/internal/domain/phase"
	"github.com/openhack/arena/pkg/logger"
	"github.com/openhack/arena/pkg/metrics"
)

// RecordScore writes one judge's mark for a team on a criterion. The
// caller passes the authenticated user's id; the judge authorization is
// resolved per hackathon. Whether a repeat write is rejected or replaces
// the previous value depends on the configured rescore policy.
func (s *Service) RecordScore(ctx context.Context, hackathonID, teamID, criterionID, judgeUserID int64, value int) (model.Score, error) {
	h, err := s.store.GetHackathon(ctx, hackathonID)
	if err != nil {
		return model.Score{}, err
	}
	if err := s.requirePhase(ctx, phase.At(s.clock.Now(), h).CanScore, hackathonID, "record_score"); err != nil {
		return model.Score{}, err
	}
	if value < 0 || value > 100 {
		return model.Score{}, fmt.Errorf("%w: score value must be in [0, 100], got %d", ErrValidation, value)
	}

	// The criterion must belong to this hackathon and the caller must be
	// on its judge roster.
	if _, err := s.store.GetHackathonCriterion(ctx, hackathonID, criterionID); err != nil {
		return model.Score{}, err
	}
	judge, err := s.store.GetJudge(ctx, hackathonID, judgeUserID)
	if err != nil {
		return model.Score{}, err
	}

	ok, err := s.roster.TeamExists(ctx, hackathonID, teamID)
	if err != nil {
		return model.Score{}, err
	}
	if !ok {
		return model.Score{}, fmt.Errorf("%w: team %d is not registered for hackathon %d", ErrValidation, teamID, hackathonID)
	}

	sc := model.Score{
		TeamID:      teamID,
		CriterionID: criterionID,
		JudgeID:     judge.ID,
		Value:       value,
	}
	if s.rescorePolicy == RescoreOverwrite {
		sc, err = s.store.UpsertScore(ctx, sc)
	} else {
		sc, err = s.store.InsertScore(ctx, sc)
	}
	if err != nil {
		return model.Score{}, err
	}

	metrics.RecordScore()
	s.logger.Info(ctx, "score recorded",
		logger.Int64("hackathon_id", hackathonID),
		logger.Int64("team_id", teamID),
		logger.Int64("criterion_id", criterionID),
		logger.Int64("judge_id", judge.ID),
		logger.Int("value", value),
	)
	return sc, nil
}

// TeamScores lists all recorded scores for one team with best-effort
// judge name enrichment.
func (s *Service) TeamScores(ctx context.Context, teamID int64) ([]model.TeamScore, error) {
	scores, err := s.store.ListTeamScores(ctx, teamID)
	if err != nil {
		return nil, err
	}
	if len(scores) == 0 {
		return scores, nil
	}

	ids := make([]int64, 0, len(scores))
	seen := make(map[int64]struct{}, len(scores))
	for _, sc := range scores {
		if _, ok := seen[sc.JudgeUserID]; ok {
			continue
		}
		seen[sc.JudgeUserID] = struct{}{}
		ids = append(ids, sc.JudgeUserID)
	}
	names, err := s.identity.DisplayNames(ctx, ids)
	if err != nil {
		s.logger.Warn(ctx, "judge name enrichment unavailable", logger.Error(err))
		return scores, nil
	}
	for i := range scores {
		scores[i].JudgeName = names[scores[i].JudgeUserID]
	}
	return scores, nil
}
