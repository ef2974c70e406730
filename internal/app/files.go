package app

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"

	"github.com/openhack/arena/internal/domain/model"
	"github.com/openhack/arena/internal/domain/phase"
	"github.com/openhack/arena/pkg/logger"
)

// allowedContentTypes are the upload formats accepted for documents and
// submissions.
var allowedContentTypes = map[string]struct{}{
	"application/msword": {},
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document":   {},
	"application/vnd.ms-powerpoint":                                             {},
	"application/vnd.openxmlformats-officedocument.presentationml.presentation": {},
	"text/plain": {},
	"image/jpeg": {},
	"image/png":  {},
}

func validateUpload(name, contentType string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: file name is required", ErrValidation)
	}
	if _, ok := allowedContentTypes[contentType]; !ok {
		return fmt.Errorf("%w: content type %q is not allowed", ErrValidation, contentType)
	}
	return nil
}

// storageKey builds the object store key for an upload. The uuid prefix
// keeps same-named files from colliding.
func storageKey(hackathonID int64, name string) string {
	return fmt.Sprintf("uploads/%d/%s_%s", hackathonID, uuid.NewString(), name)
}

// UploadDocument stores organizer collateral for a hackathon.
func (s *Service) UploadDocument(ctx context.Context, hackathonID int64, name, contentType string, r io.Reader) (model.Document, error) {
	if _, err := s.store.GetHackathon(ctx, hackathonID); err != nil {
		return model.Document{}, err
	}
	if err := validateUpload(name, contentType); err != nil {
		return model.Document{}, err
	}

	key := storageKey(hackathonID, name)
	if err := s.objects.Put(ctx, key, r); err != nil {
		return model.Document{}, fmt.Errorf("store document: %w", err)
	}

	d, err := s.store.InsertDocument(ctx, model.Document{
		HackathonID: hackathonID,
		Name:        name,
		StorageKey:  key,
		ContentType: contentType,
		UploadedAt:  s.clock.Now().UTC(),
	})
	if err != nil {
		// Keep storage and metadata consistent if the row write failed.
		_ = s.objects.Delete(ctx, key)
		return model.Document{}, err
	}
	s.logger.Info(ctx, "document uploaded",
		logger.Int64("hackathon_id", hackathonID),
		logger.String("name", name),
	)
	return d, nil
}

// ListDocuments returns a hackathon's document metadata.
func (s *Service) ListDocuments(ctx context.Context, hackathonID int64) ([]model.Document, error) {
	if _, err := s.store.GetHackathon(ctx, hackathonID); err != nil {
		return nil, err
	}
	return s.store.ListDocuments(ctx, hackathonID)
}

// OpenDocument returns a document's metadata and a reader over its bytes.
// The caller owns closing the reader.
func (s *Service) OpenDocument(ctx context.Context, id int64) (model.Document, io.ReadCloser, error) {
	d, err := s.store.GetDocument(ctx, id)
	if err != nil {
		return model.Document{}, nil, err
	}
	rc, err := s.objects.Get(ctx, d.StorageKey)
	if err != nil {
		return model.Document{}, nil, fmt.Errorf("open document blob: %w", err)
	}
	return d, rc, nil
}

// UploadSubmission stores a team's entry. Allowed only during the upload
// window, for roster teams, once per (team, hackathon).
func (s *Service) UploadSubmission(ctx context.Context, hackathonID, teamID int64, name, contentType string, r io.Reader) (model.Submission, error) {
	h, err := s.store.GetHackathon(ctx, hackathonID)
	if err != nil {
		return model.Submission{}, err
	}
	if err := s.requirePhase(ctx, phase.At(s.clock.Now(), h).CanUploadSubmission, hackathonID, "upload_submission"); err != nil {
		return model.Submission{}, err
	}
	if err := validateUpload(name, contentType); err != nil {
		return model.Submission{}, err
	}

	ok, err := s.roster.TeamExists(ctx, hackathonID, teamID)
	if err != nil {
		return model.Submission{}, err
	}
	if !ok {
		return model.Submission{}, fmt.Errorf("%w: team %d is not registered for hackathon %d", ErrValidation, teamID, hackathonID)
	}

	key := storageKey(hackathonID, name)
	if err := s.objects.Put(ctx, key, r); err != nil {
		return model.Submission{}, fmt.Errorf("store submission: %w", err)
	}

	sub, err := s.store.InsertSubmission(ctx, model.Submission{
		HackathonID: hackathonID,
		TeamID:      teamID,
		Name:        name,
		StorageKey:  key,
		ContentType: contentType,
		UploadedAt:  s.clock.Now().UTC(),
	})
	if err != nil {
		_ = s.objects.Delete(ctx, key)
		return model.Submission{}, err
	}
	s.logger.Info(ctx, "submission uploaded",
		logger.Int64("hackathon_id", hackathonID),
		logger.Int64("team_id", teamID),
	)
	return sub, nil
}

// ListSubmissions returns a hackathon's submission metadata.
func (s *Service) ListSubmissions(ctx context.Context, hackathonID int64) ([]model.Submission, error) {
	if _, err := s.store.GetHackathon(ctx, hackathonID); err != nil {
		return nil, err
	}
	return s.store.ListSubmissions(ctx, hackathonID)
}
