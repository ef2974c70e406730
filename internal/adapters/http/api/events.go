package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/openhack/arena/internal/app"
	"github.com/openhack/arena/internal/domain/model"
)

// EventsHandler handles identity event intake.
type EventsHandler struct {
	svc Service
}

// NewEventsHandler creates a new events handler.
func NewEventsHandler(svc Service) *EventsHandler {
	return &EventsHandler{svc: svc}
}

type identityEventRequest struct {
	EventID string `json:"event_id"`
	Kind    string `json:"kind"`
	UserID  int64  `json:"user_id"`
	Banned  bool   `json:"banned"`
}

type ackResponse struct {
	Status    string `json:"status"`
	Duplicate bool   `json:"duplicate"`
}

// HandlePostEvent handles POST /internal/events requests.
func (h *EventsHandler) HandlePostEvent(w http.ResponseWriter, r *http.Request) {
	var req identityEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%w: %w", ErrBadRequest, err))
		return
	}

	status, err := h.svc.HandleIdentityEvent(r.Context(), model.IdentityEvent{
		EventID: req.EventID,
		Kind:    req.Kind,
		UserID:  req.UserID,
		Banned:  req.Banned,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	switch status {
	case app.EventDuplicate:
		writeJSON(w, http.StatusOK, ackResponse{Status: "duplicate", Duplicate: true})
	case app.EventDropped:
		writeError(w, http.StatusTooManyRequests, "backpressure", fmt.Errorf("event queue is full"))
	default:
		writeJSON(w, http.StatusAccepted, ackResponse{Status: "accepted"})
	}
}
