package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/openhack/arena/internal/domain/model"
)

func (s *SQLiteStore) CreateJudge(ctx context.Context, hackathonID, userID int64) (model.Judge, error) {
	res, err := s.exec(ctx,
		"INSERT INTO judges (hackathon_id, user_id) VALUES (?, ?)", hackathonID, userID)
	if err != nil {
		if isUniqueViolation(err) {
			return model.Judge{}, ErrDuplicate
		}
		return model.Judge{}, fmt.Errorf("insert judge: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Judge{}, fmt.Errorf("judge insert id: %w", err)
	}
	return model.Judge{ID: id, HackathonID: hackathonID, UserID: userID}, nil
}

func (s *SQLiteStore) GetJudge(ctx context.Context, hackathonID, userID int64) (model.Judge, error) {
	var j model.Judge
	err := s.db.QueryRowContext(ctx,
		"SELECT id, hackathon_id, user_id FROM judges WHERE hackathon_id = ? AND user_id = ?",
		hackathonID, userID).Scan(&j.ID, &j.HackathonID, &j.UserID)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Judge{}, ErrNotFound
	}
	if err != nil {
		return model.Judge{}, fmt.Errorf("get judge: %w", err)
	}
	return j, nil
}

func (s *SQLiteStore) ListJudges(ctx context.Context, hackathonID int64) ([]model.Judge, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, hackathon_id, user_id FROM judges WHERE hackathon_id = ? ORDER BY id",
		hackathonID)
	if err != nil {
		return nil, fmt.Errorf("list judges: %w", err)
	}
	defer rows.Close()

	var out []model.Judge
	for rows.Next() {
		var j model.Judge
		if err := rows.Scan(&j.ID, &j.HackathonID, &j.UserID); err != nil {
			return nil, fmt.Errorf("scan judge: %w", err)
		}
		out = append(out, j)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list judges: %w", err)
	}
	return out, nil
}

func (s *SQLiteStore) DeleteJudge(ctx context.Context, hackathonID, userID int64) error {
	res, err := s.exec(ctx,
		"DELETE FROM judges WHERE hackathon_id = ? AND user_id = ?", hackathonID, userID)
	if err != nil {
		return fmt.Errorf("delete judge: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete judge: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteJudgesByUser removes the user's judge rows across all hackathons.
// Invoked when the identity service reports the user deleted or banned.
func (s *SQLiteStore) DeleteJudgesByUser(ctx context.Context, userID int64) (int64, error) {
	res, err := s.exec(ctx, "DELETE FROM judges WHERE user_id = ?", userID)
	if err != nil {
		return 0, fmt.Errorf("delete judges by user: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete judges by user: %w", err)
	}
	return affected, nil
}
