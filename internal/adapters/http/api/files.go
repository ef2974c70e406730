package api

import (
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/openhack/arena/internal/domain/model"
)

// maxUploadBytes caps in-memory buffering of multipart uploads.
const maxUploadBytes = 32 << 20

// FilesHandler handles document and submission uploads.
type FilesHandler struct {
	svc Service
}

// NewFilesHandler creates a new files handler.
func NewFilesHandler(svc Service) *FilesHandler {
	return &FilesHandler{svc: svc}
}

type documentResponse struct {
	ID          int64  `json:"id"`
	HackathonID int64  `json:"hackathon_id"`
	Name        string `json:"name"`
	ContentType string `json:"content_type"`
	UploadedAt  string `json:"uploaded_at"`
}

type submissionResponse struct {
	ID          int64  `json:"id"`
	HackathonID int64  `json:"hackathon_id"`
	TeamID      int64  `json:"team_id"`
	Name        string `json:"name"`
	ContentType string `json:"content_type"`
	UploadedAt  string `json:"uploaded_at"`
}

func toDocumentResponse(d model.Document) documentResponse {
	return documentResponse{
		ID:          d.ID,
		HackathonID: d.HackathonID,
		Name:        d.Name,
		ContentType: d.ContentType,
		UploadedAt:  d.UploadedAt.Format(time.RFC3339),
	}
}

func toSubmissionResponse(s model.Submission) submissionResponse {
	return submissionResponse{
		ID:          s.ID,
		HackathonID: s.HackathonID,
		TeamID:      s.TeamID,
		Name:        s.Name,
		ContentType: s.ContentType,
		UploadedAt:  s.UploadedAt.Format(time.RFC3339),
	}
}

// formFile extracts the "file" part of a multipart upload.
func formFile(r *http.Request) (io.ReadCloser, string, string, error) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		return nil, "", "", fmt.Errorf("%w: %w", ErrBadRequest, err)
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		return nil, "", "", fmt.Errorf("%w: missing file part", ErrBadRequest)
	}
	return file, header.Filename, header.Header.Get("Content-Type"), nil
}

// HandleUploadDocument handles POST /hackathons/{id}/documents requests.
func (h *FilesHandler) HandleUploadDocument(w http.ResponseWriter, r *http.Request) {
	hackathonID, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	file, name, contentType, err := formFile(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	defer file.Close()

	d, err := h.svc.UploadDocument(r.Context(), hackathonID, name, contentType, file)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toDocumentResponse(d))
}

// HandleListDocuments handles GET /hackathons/{id}/documents requests.
func (h *FilesHandler) HandleListDocuments(w http.ResponseWriter, r *http.Request) {
	hackathonID, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	docs, err := h.svc.ListDocuments(r.Context(), hackathonID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	resp := make([]documentResponse, 0, len(docs))
	for _, d := range docs {
		resp = append(resp, toDocumentResponse(d))
	}
	writeJSON(w, http.StatusOK, resp)
}

// HandleDownloadDocument handles GET /documents/{id} requests by
// streaming the stored bytes.
func (h *FilesHandler) HandleDownloadDocument(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	d, rc, err := h.svc.OpenDocument(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	defer rc.Close()

	w.Header().Set("Content-Type", d.ContentType)
	w.Header().Set("Content-Disposition", "attachment; filename="+strconv.Quote(d.Name))
	_, _ = io.Copy(w, rc)
}

// HandleUploadSubmission handles POST /hackathons/{id}/submissions
// requests. The team id rides in the multipart form.
func (h *FilesHandler) HandleUploadSubmission(w http.ResponseWriter, r *http.Request) {
	hackathonID, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	file, name, contentType, err := formFile(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	defer file.Close()

	teamID, err := strconv.ParseInt(r.FormValue("team_id"), 10, 64)
	if err != nil || teamID <= 0 {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%w: team_id form value is required", ErrBadRequest))
		return
	}

	sub, err := h.svc.UploadSubmission(r.Context(), hackathonID, teamID, name, contentType, file)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toSubmissionResponse(sub))
}

// HandleListSubmissions handles GET /hackathons/{id}/submissions requests.
func (h *FilesHandler) HandleListSubmissions(w http.ResponseWriter, r *http.Request) {
	hackathonID, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	subs, err := h.svc.ListSubmissions(r.Context(), hackathonID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	resp := make([]submissionResponse, 0, len(subs))
	for _, s := range subs {
		resp = append(resp, toSubmissionResponse(s))
	}
	writeJSON(w, http.StatusOK, resp)
}
