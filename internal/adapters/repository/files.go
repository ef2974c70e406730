package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/openhack/arena/internal/domain/model"
)

func (s *SQLiteStore) InsertDocument(ctx context.Context, d model.Document) (model.Document, error) {
	res, err := s.exec(ctx, `
INSERT INTO documents (hackathon_id, name, storage_key, content_type, uploaded_at)
VALUES (?, ?, ?, ?, ?)`,
		d.HackathonID, d.Name, d.StorageKey, d.ContentType, d.UploadedAt.Format(timeFormat),
	)
	if err != nil {
		return model.Document{}, fmt.Errorf("insert document: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Document{}, fmt.Errorf("document insert id: %w", err)
	}
	d.ID = id
	return d, nil
}

func (s *SQLiteStore) ListDocuments(ctx context.Context, hackathonID int64) ([]model.Document, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT id, hackathon_id, name, storage_key, content_type, uploaded_at
FROM documents WHERE hackathon_id = ? ORDER BY id`, hackathonID)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()

	var out []model.Document
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	return out, nil
}

func (s *SQLiteStore) GetDocument(ctx context.Context, id int64) (model.Document, error) {
	row := s.db.QueryRowContext(ctx, `
SELECT id, hackathon_id, name, storage_key, content_type, uploaded_at
FROM documents WHERE id = ?`, id)
	return scanDocument(row)
}

func (s *SQLiteStore) InsertSubmission(ctx context.Context, sub model.Submission) (model.Submission, error) {
	res, err := s.exec(ctx, `
INSERT INTO submissions (hackathon_id, team_id, name, storage_key, content_type, uploaded_at)
VALUES (?, ?, ?, ?, ?, ?)`,
		sub.HackathonID, sub.TeamID, sub.Name, sub.StorageKey, sub.ContentType, sub.UploadedAt.Format(timeFormat),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return model.Submission{}, ErrDuplicate
		}
		return model.Submission{}, fmt.Errorf("insert submission: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Submission{}, fmt.Errorf("submission insert id: %w", err)
	}
	sub.ID = id
	return sub, nil
}

func (s *SQLiteStore) ListSubmissions(ctx context.Context, hackathonID int64) ([]model.Submission, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT id, hackathon_id, team_id, name, storage_key, content_type, uploaded_at
FROM submissions WHERE hackathon_id = ? ORDER BY id`, hackathonID)
	if err != nil {
		return nil, fmt.Errorf("list submissions: %w", err)
	}
	defer rows.Close()

	var out []model.Submission
	for rows.Next() {
		var sub model.Submission
		var uploaded string
		if err := rows.Scan(&sub.ID, &sub.HackathonID, &sub.TeamID, &sub.Name, &sub.StorageKey, &sub.ContentType, &uploaded); err != nil {
			return nil, fmt.Errorf("scan submission: %w", err)
		}
		t, err := parseTime(uploaded)
		if err != nil {
			return nil, err
		}
		sub.UploadedAt = t
		out = append(out, sub)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list submissions: %w", err)
	}
	return out, nil
}

func scanDocument(row rowScanner) (model.Document, error) {
	var d model.Document
	var uploaded string
	err := row.Scan(&d.ID, &d.HackathonID, &d.Name, &d.StorageKey, &d.ContentType, &uploaded)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Document{}, ErrNotFound
	}
	if err != nil {
		return model.Document{}, fmt.Errorf("scan document: %w", err)
	}
	t, err := parseTime(uploaded)
	if err != nil {
		return model.Document{}, err
	}
	d.UploadedAt = t
	return d, nil
}
