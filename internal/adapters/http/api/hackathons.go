package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/openhack/arena/internal/app"
	"github.com/openhack/arena/internal/domain/model"
	"github.com/openhack/arena/internal/domain/phase"
)

// HackathonsHandler handles hackathon CRUD requests.
type HackathonsHandler struct {
	svc Service
}

// NewHackathonsHandler creates a new hackathons handler.
func NewHackathonsHandler(svc Service) *HackathonsHandler {
	return &HackathonsHandler{svc: svc}
}

type hackathonRequest struct {
	Name                string `json:"name"`
	Description         string `json:"description"`
	MaxParticipantCount int    `json:"max_participant_count"`
	MaxTeamMatesCount   int    `json:"max_team_mates_count"`
	StartDate           string `json:"start_date"`
	ScoreStartDate      string `json:"score_start_date"`
	EndDate             string `json:"end_date"`
}

type hackathonPatchRequest struct {
	Name                *string `json:"name"`
	Description         *string `json:"description"`
	MaxParticipantCount *int    `json:"max_participant_count"`
	MaxTeamMatesCount   *int    `json:"max_team_mates_count"`
	StartDate           *string `json:"start_date"`
	ScoreStartDate      *string `json:"score_start_date"`
	EndDate             *string `json:"end_date"`
}

type hackathonResponse struct {
	ID                  int64  `json:"id"`
	Name                string `json:"name"`
	Description         string `json:"description"`
	MaxParticipantCount int    `json:"max_participant_count"`
	MaxTeamMatesCount   int    `json:"max_team_mates_count"`
	StartDate           string `json:"start_date"`
	ScoreStartDate      string `json:"score_start_date"`
	EndDate             string `json:"end_date"`
}

// hackathonInfoResponse is the single-hackathon view with its criteria
// embedded.
type hackathonInfoResponse struct {
	hackathonResponse
	Criteria []criterionResponse `json:"criteria"`
}

type phasesResponse struct {
	CanEditRegistry     bool `json:"can_edit_registry"`
	CanEditSettings     bool `json:"can_edit_settings"`
	CanUploadSubmission bool `json:"can_upload_submission"`
	CanScore            bool `json:"can_score"`
	CanViewResults      bool `json:"can_view_results"`
}

func toHackathonResponse(h model.Hackathon) hackathonResponse {
	return hackathonResponse{
		ID:                  h.ID,
		Name:                h.Name,
		Description:         h.Description,
		MaxParticipantCount: h.MaxParticipantCount,
		MaxTeamMatesCount:   h.MaxTeamMatesCount,
		StartDate:           h.StartDate.Format(time.RFC3339),
		ScoreStartDate:      h.ScoreStartDate.Format(time.RFC3339),
		EndDate:             h.EndDate.Format(time.RFC3339),
	}
}

func toPhasesResponse(f phase.Flags) phasesResponse {
	return phasesResponse{
		CanEditRegistry:     f.CanEditRegistry,
		CanEditSettings:     f.CanEditSettings,
		CanUploadSubmission: f.CanUploadSubmission,
		CanScore:            f.CanScore,
		CanViewResults:      f.CanViewResults,
	}
}

func parseDate(field, raw string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s must be RFC3339", ErrBadRequest, field)
	}
	return t, nil
}

// HandleCreate handles POST /hackathons requests.
func (h *HackathonsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req hackathonRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%w: %w", ErrBadRequest, err))
		return
	}

	start, err := parseDate("start_date", req.StartDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	scoreStart, err := parseDate("score_start_date", req.ScoreStartDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	end, err := parseDate("end_date", req.EndDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}

	created, err := h.svc.CreateHackathon(r.Context(), model.Hackathon{
		Name:                req.Name,
		Description:         req.Description,
		MaxParticipantCount: req.MaxParticipantCount,
		MaxTeamMatesCount:   req.MaxTeamMatesCount,
		StartDate:           start,
		ScoreStartDate:      scoreStart,
		EndDate:             end,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toHackathonResponse(created))
}

// HandleList handles GET /hackathons requests.
func (h *HackathonsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	hs, err := h.svc.ListHackathons(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	resp := make([]hackathonResponse, 0, len(hs))
	for _, item := range hs {
		resp = append(resp, toHackathonResponse(item))
	}
	writeJSON(w, http.StatusOK, resp)
}

// HandleGet handles GET /hackathons/{id} requests.
func (h *HackathonsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	got, err := h.svc.GetHackathon(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	criteria, err := h.svc.ListCriteria(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	resp := hackathonInfoResponse{
		hackathonResponse: toHackathonResponse(got),
		Criteria:          make([]criterionResponse, 0, len(criteria)),
	}
	for _, c := range criteria {
		resp.Criteria = append(resp.Criteria, toCriterionResponse(c))
	}
	writeJSON(w, http.StatusOK, resp)
}

// HandleUpdate handles PATCH /hackathons/{id} requests.
func (h *HackathonsHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	var req hackathonPatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%w: %w", ErrBadRequest, err))
		return
	}

	upd := app.HackathonUpdate{
		Name:                req.Name,
		Description:         req.Description,
		MaxParticipantCount: req.MaxParticipantCount,
		MaxTeamMatesCount:   req.MaxTeamMatesCount,
	}
	for _, d := range []struct {
		field string
		raw   *string
		dest  **time.Time
	}{
		{"start_date", req.StartDate, &upd.StartDate},
		{"score_start_date", req.ScoreStartDate, &upd.ScoreStartDate},
		{"end_date", req.EndDate, &upd.EndDate},
	} {
		if d.raw == nil {
			continue
		}
		t, err := parseDate(d.field, *d.raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", err)
			return
		}
		*d.dest = &t
	}

	got, err := h.svc.UpdateHackathon(r.Context(), id, upd)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toHackathonResponse(got))
}

// HandleDelete handles DELETE /hackathons/{id} requests.
func (h *HackathonsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	if err := h.svc.DeleteHackathon(r.Context(), id); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandlePhases handles GET /hackathons/{id}/phases requests.
func (h *HackathonsHandler) HandlePhases(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	flags, err := h.svc.Phases(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toPhasesResponse(flags))
}
