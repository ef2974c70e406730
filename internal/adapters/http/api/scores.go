package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/openhack/arena/internal/domain/model"
)

// ScoresHandler handles score submission and listing requests.
type ScoresHandler struct {
	svc Service
}

// NewScoresHandler creates a new scores handler.
func NewScoresHandler(svc Service) *ScoresHandler {
	return &ScoresHandler{svc: svc}
}

type scoreRequest struct {
	TeamID      int64 `json:"team_id"`
	CriterionID int64 `json:"criterion_id"`
	Value       int   `json:"value"`
}

type scoreResponse struct {
	ID          int64 `json:"id"`
	TeamID      int64 `json:"team_id"`
	CriterionID int64 `json:"criterion_id"`
	JudgeID     int64 `json:"judge_id"`
	Value       int   `json:"value"`
}

type teamScoreResponse struct {
	ID          int64  `json:"id"`
	TeamID      int64  `json:"team_id"`
	CriterionID int64  `json:"criterion_id"`
	JudgeUserID int64  `json:"judge_user_id"`
	JudgeName   string `json:"judge_name,omitempty"`
	Value       int    `json:"value"`
}

// HandleCreate handles POST /hackathons/{id}/scores requests. The judge
// identity comes from the bearer token, never from the body.
func (h *ScoresHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	hackathonID, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	caller, ok := CallerFrom(r.Context())
	if !ok || caller.UserID == 0 {
		writeError(w, http.StatusUnauthorized, "unauthorized", ErrUnauthorized)
		return
	}

	var req scoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%w: %w", ErrBadRequest, err))
		return
	}
	if req.TeamID <= 0 || req.CriterionID <= 0 {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%w: team_id and criterion_id are required", ErrBadRequest))
		return
	}

	sc, err := h.svc.RecordScore(r.Context(), hackathonID, req.TeamID, req.CriterionID, caller.UserID, req.Value)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, scoreResponse{
		ID:          sc.ID,
		TeamID:      sc.TeamID,
		CriterionID: sc.CriterionID,
		JudgeID:     sc.JudgeID,
		Value:       sc.Value,
	})
}

// HandleTeamScores handles GET /teams/{teamID}/scores requests.
func (h *ScoresHandler) HandleTeamScores(w http.ResponseWriter, r *http.Request) {
	teamID, err := pathID(r, "teamID")
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	scores, err := h.svc.TeamScores(r.Context(), teamID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	resp := make([]teamScoreResponse, 0, len(scores))
	for _, sc := range scores {
		resp = append(resp, toTeamScoreResponse(sc))
	}
	writeJSON(w, http.StatusOK, resp)
}

func toTeamScoreResponse(sc model.TeamScore) teamScoreResponse {
	return teamScoreResponse{
		ID:          sc.ID,
		TeamID:      sc.TeamID,
		CriterionID: sc.CriterionID,
		JudgeUserID: sc.JudgeUserID,
		JudgeName:   sc.JudgeName,
		Value:       sc.Value,
	}
}
