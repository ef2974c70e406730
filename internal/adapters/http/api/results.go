package api

import (
	"net/http"
)

// ResultsHandler handles standings and recomputation requests.
type ResultsHandler struct {
	svc Service
}

// NewResultsHandler creates a new results handler.
func NewResultsHandler(svc Service) *ResultsHandler {
	return &ResultsHandler{svc: svc}
}

type resultResponse struct {
	TeamID   int64   `json:"team_id"`
	TeamName string  `json:"team_name,omitempty"`
	Score    float64 `json:"score"`
}

type finalScoreResponse struct {
	TeamID int64   `json:"team_id"`
	Score  float64 `json:"score"`
}

// HandleResults handles GET /hackathons/{id}/results requests.
func (h *ResultsHandler) HandleResults(w http.ResponseWriter, r *http.Request) {
	hackathonID, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	results, err := h.svc.Results(r.Context(), hackathonID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	resp := make([]resultResponse, 0, len(results))
	for _, res := range results {
		resp = append(resp, resultResponse{
			TeamID:   res.TeamID,
			TeamName: res.TeamName,
			Score:    res.Score,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

// HandleRecompute handles POST /hackathons/{id}/results requests by
// rebuilding and persisting the final scores.
func (h *ResultsHandler) HandleRecompute(w http.ResponseWriter, r *http.Request) {
	hackathonID, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	finals, err := h.svc.ComputeFinalScores(r.Context(), hackathonID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	resp := make([]finalScoreResponse, 0, len(finals))
	for _, fs := range finals {
		resp = append(resp, finalScoreResponse{TeamID: fs.TeamID, Score: fs.Score})
	}
	writeJSON(w, http.StatusOK, resp)
}
