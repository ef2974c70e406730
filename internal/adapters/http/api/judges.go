package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/openhack/arena/internal/domain/model"
)

// JudgesHandler handles judge roster requests.
type JudgesHandler struct {
	svc Service
}

// NewJudgesHandler creates a new judges handler.
func NewJudgesHandler(svc Service) *JudgesHandler {
	return &JudgesHandler{svc: svc}
}

type judgeRequest struct {
	UserID int64 `json:"user_id"`
}

type judgeResponse struct {
	ID          int64  `json:"id"`
	HackathonID int64  `json:"hackathon_id"`
	UserID      int64  `json:"user_id"`
	UserName    string `json:"user_name,omitempty"`
}

func toJudgeResponse(j model.Judge) judgeResponse {
	return judgeResponse{
		ID:          j.ID,
		HackathonID: j.HackathonID,
		UserID:      j.UserID,
		UserName:    j.UserName,
	}
}

// HandleCreate handles POST /hackathons/{id}/judges requests.
func (h *JudgesHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	hackathonID, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	var req judgeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%w: %w", ErrBadRequest, err))
		return
	}
	if req.UserID <= 0 {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%w: user_id is required", ErrBadRequest))
		return
	}
	j, err := h.svc.AddJudge(r.Context(), hackathonID, req.UserID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toJudgeResponse(j))
}

// HandleList handles GET /hackathons/{id}/judges requests.
func (h *JudgesHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	hackathonID, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	judges, err := h.svc.ListJudges(r.Context(), hackathonID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	resp := make([]judgeResponse, 0, len(judges))
	for _, j := range judges {
		resp = append(resp, toJudgeResponse(j))
	}
	writeJSON(w, http.StatusOK, resp)
}

// HandleDelete handles DELETE /hackathons/{id}/judges/{userID} requests.
func (h *JudgesHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	hackathonID, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	userID, err := pathID(r, "userID")
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	if err := h.svc.DeleteJudge(r.Context(), hackathonID, userID); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
