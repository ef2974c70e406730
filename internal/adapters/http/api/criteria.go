package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/openhack/arena/internal/domain/model"
)

// CriteriaHandler handles scoring criteria requests.
type CriteriaHandler struct {
	svc Service
}

// NewCriteriaHandler creates a new criteria handler.
func NewCriteriaHandler(svc Service) *CriteriaHandler {
	return &CriteriaHandler{svc: svc}
}

type criterionRequest struct {
	Name   string  `json:"name"`
	Weight float64 `json:"weight"`
}

type criterionPatchRequest struct {
	Name   *string  `json:"name"`
	Weight *float64 `json:"weight"`
}

type criterionResponse struct {
	ID          int64   `json:"id"`
	HackathonID int64   `json:"hackathon_id"`
	Name        string  `json:"name"`
	Weight      float64 `json:"weight"`
}

func toCriterionResponse(c model.Criterion) criterionResponse {
	return criterionResponse{
		ID:          c.ID,
		HackathonID: c.HackathonID,
		Name:        c.Name,
		Weight:      c.Weight,
	}
}

// HandleCreate handles POST /hackathons/{id}/criteria requests.
func (h *CriteriaHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	hackathonID, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	var req criterionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%w: %w", ErrBadRequest, err))
		return
	}
	created, err := h.svc.AddCriterion(r.Context(), hackathonID, req.Name, req.Weight)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toCriterionResponse(created))
}

// HandleList handles GET /hackathons/{id}/criteria requests.
func (h *CriteriaHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	hackathonID, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	cs, err := h.svc.ListCriteria(r.Context(), hackathonID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	resp := make([]criterionResponse, 0, len(cs))
	for _, c := range cs {
		resp = append(resp, toCriterionResponse(c))
	}
	writeJSON(w, http.StatusOK, resp)
}

// HandleGet handles GET /hackathons/{id}/criteria/{criterionID} requests.
func (h *CriteriaHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	hackathonID, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	criterionID, err := pathID(r, "criterionID")
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	c, err := h.svc.GetCriterion(r.Context(), hackathonID, criterionID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toCriterionResponse(c))
}

// HandleUpdate handles PATCH /hackathons/{id}/criteria/{criterionID} requests.
func (h *CriteriaHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	hackathonID, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	criterionID, err := pathID(r, "criterionID")
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	var req criterionPatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%w: %w", ErrBadRequest, err))
		return
	}
	c, err := h.svc.UpdateCriterion(r.Context(), hackathonID, criterionID, req.Name, req.Weight)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toCriterionResponse(c))
}

// HandleDelete handles DELETE /hackathons/{id}/criteria/{criterionID} requests.
func (h *CriteriaHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	hackathonID, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	criterionID, err := pathID(r, "criterionID")
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	if err := h.svc.DeleteCriterion(r.Context(), hackathonID, criterionID); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
