package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/openhack/arena/internal/domain/model"
)

func (s *SQLiteStore) CreateCriterion(ctx context.Context, c model.Criterion) (model.Criterion, error) {
	res, err := s.exec(ctx,
		"INSERT INTO criteria (hackathon_id, name, weight) VALUES (?, ?, ?)",
		c.HackathonID, c.Name, c.Weight,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return model.Criterion{}, ErrDuplicateName
		}
		return model.Criterion{}, fmt.Errorf("insert criterion: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Criterion{}, fmt.Errorf("criterion insert id: %w", err)
	}
	c.ID = id
	return c, nil
}

func (s *SQLiteStore) GetCriterion(ctx context.Context, id int64) (model.Criterion, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT id, hackathon_id, name, weight FROM criteria WHERE id = ?", id)
	return scanCriterion(row)
}

func (s *SQLiteStore) GetHackathonCriterion(ctx context.Context, hackathonID, criterionID int64) (model.Criterion, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT id, hackathon_id, name, weight FROM criteria WHERE id = ? AND hackathon_id = ?",
		criterionID, hackathonID)
	return scanCriterion(row)
}

func (s *SQLiteStore) ListCriteria(ctx context.Context, hackathonID int64) ([]model.Criterion, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, hackathon_id, name, weight FROM criteria WHERE hackathon_id = ? ORDER BY id",
		hackathonID)
	if err != nil {
		return nil, fmt.Errorf("list criteria: %w", err)
	}
	defer rows.Close()

	var out []model.Criterion
	for rows.Next() {
		c, err := scanCriterion(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list criteria: %w", err)
	}
	return out, nil
}

func (s *SQLiteStore) UpdateCriterion(ctx context.Context, c model.Criterion) (model.Criterion, error) {
	res, err := s.exec(ctx,
		"UPDATE criteria SET name = ?, weight = ? WHERE id = ? AND hackathon_id = ?",
		c.Name, c.Weight, c.ID, c.HackathonID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return model.Criterion{}, ErrDuplicateName
		}
		return model.Criterion{}, fmt.Errorf("update criterion: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return model.Criterion{}, fmt.Errorf("update criterion: %w", err)
	}
	if affected == 0 {
		return model.Criterion{}, ErrNotFound
	}
	return c, nil
}

func (s *SQLiteStore) DeleteCriterion(ctx context.Context, hackathonID, criterionID int64) error {
	res, err := s.exec(ctx,
		"DELETE FROM criteria WHERE id = ? AND hackathon_id = ?", criterionID, hackathonID)
	if err != nil {
		return fmt.Errorf("delete criterion: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete criterion: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// SumCriteriaWeights returns the stored weight sum for one hackathon.
// The weight-invariant check is advisory: the SUM read and the subsequent
// insert are not one transaction, which is acceptable in the low-concurrency
// pre-event phase where criteria are managed.
func (s *SQLiteStore) SumCriteriaWeights(ctx context.Context, hackathonID int64) (float64, error) {
	var sum sql.NullFloat64
	err := s.db.QueryRowContext(ctx,
		"SELECT SUM(weight) FROM criteria WHERE hackathon_id = ?", hackathonID).Scan(&sum)
	if err != nil {
		return 0, fmt.Errorf("sum criteria weights: %w", err)
	}
	if !sum.Valid {
		return 0, nil
	}
	return sum.Float64, nil
}

func scanCriterion(row rowScanner) (model.Criterion, error) {
	var c model.Criterion
	err := row.Scan(&c.ID, &c.HackathonID, &c.Name, &c.Weight)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Criterion{}, ErrNotFound
	}
	if err != nil {
		return model.Criterion{}, fmt.Errorf("scan criterion: %w", err)
	}
	return c, nil
}
