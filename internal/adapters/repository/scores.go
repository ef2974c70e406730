package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/openhack/arena/internal/domain/model"
	"github.com/openhack/arena/internal/domain/scoring"
)

// InsertScore records a write-once score. The unique index on the
// (team, criterion, judge) triple resolves concurrent identical writes:
// exactly one insert wins, the rest get ErrDuplicateScore.
func (s *SQLiteStore) InsertScore(ctx context.Context, sc model.Score) (model.Score, error) {
	res, err := s.exec(ctx,
		"INSERT INTO scores (team_id, criterion_id, judge_id, value) VALUES (?, ?, ?, ?)",
		sc.TeamID, sc.CriterionID, sc.JudgeID, sc.Value,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return model.Score{}, ErrDuplicateScore
		}
		return model.Score{}, fmt.Errorf("insert score: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Score{}, fmt.Errorf("score insert id: %w", err)
	}
	sc.ID = id
	return sc, nil
}

// UpsertScore records a score, overwriting an existing value for the same
// triple. Used when the rescore policy is "overwrite".
func (s *SQLiteStore) UpsertScore(ctx context.Context, sc model.Score) (model.Score, error) {
	_, err := s.exec(ctx, `
INSERT INTO scores (team_id, criterion_id, judge_id, value)
VALUES (?, ?, ?, ?)
ON CONFLICT (team_id, criterion_id, judge_id) DO UPDATE SET value = excluded.value`,
		sc.TeamID, sc.CriterionID, sc.JudgeID, sc.Value,
	)
	if err != nil {
		return model.Score{}, fmt.Errorf("upsert score: %w", err)
	}
	err = s.db.QueryRowContext(ctx,
		"SELECT id FROM scores WHERE team_id = ? AND criterion_id = ? AND judge_id = ?",
		sc.TeamID, sc.CriterionID, sc.JudgeID).Scan(&sc.ID)
	if err != nil {
		return model.Score{}, fmt.Errorf("upsert score: %w", err)
	}
	return sc, nil
}

// ListTeamScores returns all scores ever recorded for a team, joined with
// the judge's external user id, ordered by (judge_id, criterion_id) for
// deterministic client rendering.
func (s *SQLiteStore) ListTeamScores(ctx context.Context, teamID int64) ([]model.TeamScore, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT sc.id, sc.team_id, sc.criterion_id, sc.judge_id, j.user_id, sc.value
FROM scores sc
JOIN judges j ON j.id = sc.judge_id
WHERE sc.team_id = ?
ORDER BY sc.judge_id, sc.criterion_id`, teamID)
	if err != nil {
		return nil, fmt.Errorf("list team scores: %w", err)
	}
	defer rows.Close()

	var out []model.TeamScore
	for rows.Next() {
		var ts model.TeamScore
		if err := rows.Scan(&ts.ID, &ts.TeamID, &ts.CriterionID, &ts.JudgeID, &ts.JudgeUserID, &ts.Value); err != nil {
			return nil, fmt.Errorf("scan team score: %w", err)
		}
		out = append(out, ts)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list team scores: %w", err)
	}
	return out, nil
}

// ListRatedScores returns every score whose criterion and judge both belong
// to the hackathon, joined with the criterion's weight. This is the exact
// input set of the final-score aggregation.
func (s *SQLiteStore) ListRatedScores(ctx context.Context, hackathonID int64) ([]scoring.RatedScore, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT sc.team_id, sc.judge_id, sc.value, c.weight
FROM scores sc
JOIN criteria c ON c.id = sc.criterion_id AND c.hackathon_id = ?
JOIN judges j ON j.id = sc.judge_id AND j.hackathon_id = ?`,
		hackathonID, hackathonID)
	if err != nil {
		return nil, fmt.Errorf("list rated scores: %w", err)
	}
	defer rows.Close()

	var out []scoring.RatedScore
	for rows.Next() {
		var rs scoring.RatedScore
		if err := rows.Scan(&rs.TeamID, &rs.JudgeID, &rs.Value, &rs.Weight); err != nil {
			return nil, fmt.Errorf("scan rated score: %w", err)
		}
		out = append(out, rs)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list rated scores: %w", err)
	}
	return out, nil
}

// UpsertFinalScore replaces the cached final score for one team.
func (s *SQLiteStore) UpsertFinalScore(ctx context.Context, fs model.FinalScore) error {
	_, err := s.exec(ctx, `
INSERT INTO final_scores (team_id, score) VALUES (?, ?)
ON CONFLICT (team_id) DO UPDATE SET score = excluded.score`,
		fs.TeamID, fs.Score,
	)
	if err != nil {
		return fmt.Errorf("upsert final score: %w", err)
	}
	return nil
}

// ListFinalScoresByTeams returns persisted final scores for the given teams,
// ordered by score descending. Tie order between equal scores is whatever
// the storage returns.
func (s *SQLiteStore) ListFinalScoresByTeams(ctx context.Context, teamIDs []int64) ([]model.FinalScore, error) {
	if len(teamIDs) == 0 {
		return nil, nil
	}

	placeholders := strings.Repeat("?,", len(teamIDs))
	placeholders = placeholders[:len(placeholders)-1]
	args := make([]any, len(teamIDs))
	for i, id := range teamIDs {
		args[i] = id
	}

	query := fmt.Sprintf(
		"SELECT team_id, score FROM final_scores WHERE team_id IN (%s) ORDER BY score DESC",
		placeholders)
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list final scores: %w", err)
	}
	defer rows.Close()

	var out []model.FinalScore
	for rows.Next() {
		var fs model.FinalScore
		if err := rows.Scan(&fs.TeamID, &fs.Score); err != nil {
			return nil, fmt.Errorf("scan final score: %w", err)
		}
		out = append(out, fs)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list final scores: %w", err)
	}
	return out, nil
}
