package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/openhack/arena/internal/domain/model"
)

func (s *SQLiteStore) CreateHackathon(ctx context.Context, h model.Hackathon) (model.Hackathon, error) {
	res, err := s.exec(ctx, `
INSERT INTO hackathons (name, description, max_participant_count, max_team_mates_count, start_date, score_start_date, end_date)
VALUES (?, ?, ?, ?, ?, ?, ?)`,
		h.Name, h.Description, h.MaxParticipantCount, h.MaxTeamMatesCount,
		h.StartDate.Format(timeFormat), h.ScoreStartDate.Format(timeFormat), h.EndDate.Format(timeFormat),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return model.Hackathon{}, ErrDuplicateName
		}
		return model.Hackathon{}, fmt.Errorf("insert hackathon: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Hackathon{}, fmt.Errorf("hackathon insert id: %w", err)
	}
	h.ID = id
	return h, nil
}

func (s *SQLiteStore) GetHackathon(ctx context.Context, id int64) (model.Hackathon, error) {
	row := s.db.QueryRowContext(ctx, `
SELECT id, name, description, max_participant_count, max_team_mates_count, start_date, score_start_date, end_date
FROM hackathons WHERE id = ?`, id)
	return scanHackathon(row)
}

func (s *SQLiteStore) ListHackathons(ctx context.Context) ([]model.Hackathon, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT id, name, description, max_participant_count, max_team_mates_count, start_date, score_start_date, end_date
FROM hackathons ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list hackathons: %w", err)
	}
	defer rows.Close()

	var out []model.Hackathon
	for rows.Next() {
		h, err := scanHackathon(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list hackathons: %w", err)
	}
	return out, nil
}

func (s *SQLiteStore) UpdateHackathon(ctx context.Context, h model.Hackathon) (model.Hackathon, error) {
	res, err := s.exec(ctx, `
UPDATE hackathons
SET name = ?, description = ?, max_participant_count = ?, max_team_mates_count = ?, start_date = ?, score_start_date = ?, end_date = ?
WHERE id = ?`,
		h.Name, h.Description, h.MaxParticipantCount, h.MaxTeamMatesCount,
		h.StartDate.Format(timeFormat), h.ScoreStartDate.Format(timeFormat), h.EndDate.Format(timeFormat),
		h.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return model.Hackathon{}, ErrDuplicateName
		}
		return model.Hackathon{}, fmt.Errorf("update hackathon: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return model.Hackathon{}, fmt.Errorf("update hackathon: %w", err)
	}
	if affected == 0 {
		return model.Hackathon{}, ErrNotFound
	}
	return h, nil
}

func (s *SQLiteStore) DeleteHackathon(ctx context.Context, id int64) error {
	res, err := s.exec(ctx, "DELETE FROM hackathons WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete hackathon: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete hackathon: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanHackathon(row rowScanner) (model.Hackathon, error) {
	var h model.Hackathon
	var start, scoreStart, end string
	err := row.Scan(&h.ID, &h.Name, &h.Description, &h.MaxParticipantCount, &h.MaxTeamMatesCount, &start, &scoreStart, &end)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Hackathon{}, ErrNotFound
	}
	if err != nil {
		return model.Hackathon{}, fmt.Errorf("scan hackathon: %w", err)
	}
	if h.StartDate, err = parseTime(start); err != nil {
		return model.Hackathon{}, err
	}
	if h.ScoreStartDate, err = parseTime(scoreStart); err != nil {
		return model.Hackathon{}, err
	}
	if h.EndDate, err = parseTime(end); err != nil {
		return model.Hackathon{}, err
	}
	return h, nil
}
