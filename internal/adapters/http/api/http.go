// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/openhack/arena/internal/adapters/identity"
	"github.com/openhack/arena/internal/adapters/repository"
	"github.com/openhack/arena/internal/adapters/roster"
	"github.com/openhack/arena/internal/app"
	"github.com/openhack/arena/internal/domain/acl"
	"github.com/openhack/arena/internal/domain/model"
	"github.com/openhack/arena/internal/domain/phase"
)

// Service bundles everything the HTTP handlers need from the core.
// Using an interface keeps the handler layer loosely coupled to the
// application package.
type Service interface {
	CreateHackathon(ctx context.Context, h model.Hackathon) (model.Hackathon, error)
	GetHackathon(ctx context.Context, id int64) (model.Hackathon, error)
	ListHackathons(ctx context.Context) ([]model.Hackathon, error)
	UpdateHackathon(ctx context.Context, id int64, upd app.HackathonUpdate) (model.Hackathon, error)
	DeleteHackathon(ctx context.Context, id int64) error
	Phases(ctx context.Context, hackathonID int64) (phase.Flags, error)

	AddCriterion(ctx context.Context, hackathonID int64, name string, weight float64) (model.Criterion, error)
	GetCriterion(ctx context.Context, hackathonID, criterionID int64) (model.Criterion, error)
	ListCriteria(ctx context.Context, hackathonID int64) ([]model.Criterion, error)
	UpdateCriterion(ctx context.Context, hackathonID, criterionID int64, name *string, weight *float64) (model.Criterion, error)
	DeleteCriterion(ctx context.Context, hackathonID, criterionID int64) error

	AddJudge(ctx context.Context, hackathonID, userID int64) (model.Judge, error)
	ListJudges(ctx context.Context, hackathonID int64) ([]model.Judge, error)
	DeleteJudge(ctx context.Context, hackathonID, userID int64) error

	RecordScore(ctx context.Context, hackathonID, teamID, criterionID, judgeUserID int64, value int) (model.Score, error)
	TeamScores(ctx context.Context, teamID int64) ([]model.TeamScore, error)

	ComputeFinalScores(ctx context.Context, hackathonID int64) ([]model.FinalScore, error)
	Results(ctx context.Context, hackathonID int64) ([]app.TeamResult, error)

	UploadDocument(ctx context.Context, hackathonID int64, name, contentType string, r io.Reader) (model.Document, error)
	ListDocuments(ctx context.Context, hackathonID int64) ([]model.Document, error)
	OpenDocument(ctx context.Context, id int64) (model.Document, io.ReadCloser, error)
	UploadSubmission(ctx context.Context, hackathonID, teamID int64, name, contentType string, r io.Reader) (model.Submission, error)
	ListSubmissions(ctx context.Context, hackathonID int64) ([]model.Submission, error)

	HandleIdentityEvent(ctx context.Context, e model.IdentityEvent) (app.EventStatus, error)
}

// StatsProvider exposes live service counters for the stats endpoint.
type StatsProvider interface {
	Stats() map[string]interface{}
}

// Server wires HTTP routes for the business API.
type Server struct {
	auth *Authenticator

	hackathonsHandler *HackathonsHandler
	criteriaHandler   *CriteriaHandler
	judgesHandler     *JudgesHandler
	scoresHandler     *ScoresHandler
	resultsHandler    *ResultsHandler
	filesHandler      *FilesHandler
	eventsHandler     *EventsHandler
	healthHandler     *HealthHandler
	statsHandler      *StatsHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(svc Service, statsProvider StatsProvider, auth *Authenticator) *Server {
	return &Server{
		auth:              auth,
		hackathonsHandler: NewHackathonsHandler(svc),
		criteriaHandler:   NewCriteriaHandler(svc),
		judgesHandler:     NewJudgesHandler(svc),
		scoresHandler:     NewScoresHandler(svc),
		resultsHandler:    NewResultsHandler(svc),
		filesHandler:      NewFilesHandler(svc),
		eventsHandler:     NewEventsHandler(svc),
		healthHandler:     NewHealthHandler(),
		statsHandler:      NewStatsHandler(statsProvider),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(mux *http.ServeMux) {
	guard := func(action acl.Action, endpoint string, next http.HandlerFunc) http.HandlerFunc {
		return MetricsMiddleware(s.auth.Require(action, next), endpoint)
	}

	mux.HandleFunc("GET /healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("GET /metrics", s.healthHandler.HandleMetrics)
	mux.HandleFunc("GET /stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))

	mux.HandleFunc("POST /hackathons", guard(acl.CreateHackathon, "hackathons", s.hackathonsHandler.HandleCreate))
	mux.HandleFunc("GET /hackathons", guard(acl.ReadHackathonList, "hackathons", s.hackathonsHandler.HandleList))
	mux.HandleFunc("GET /hackathons/{id}", guard(acl.ReadHackathonInfo, "hackathon", s.hackathonsHandler.HandleGet))
	mux.HandleFunc("PATCH /hackathons/{id}", guard(acl.UpdateHackathon, "hackathon", s.hackathonsHandler.HandleUpdate))
	mux.HandleFunc("DELETE /hackathons/{id}", guard(acl.DeleteHackathon, "hackathon", s.hackathonsHandler.HandleDelete))
	mux.HandleFunc("GET /hackathons/{id}/phases", guard(acl.ReadHackathonInfo, "phases", s.hackathonsHandler.HandlePhases))

	mux.HandleFunc("POST /hackathons/{id}/criteria", guard(acl.CreateCriterion, "criteria", s.criteriaHandler.HandleCreate))
	mux.HandleFunc("GET /hackathons/{id}/criteria", guard(acl.ReadCriteria, "criteria", s.criteriaHandler.HandleList))
	mux.HandleFunc("GET /hackathons/{id}/criteria/{criterionID}", guard(acl.ReadCriteria, "criterion", s.criteriaHandler.HandleGet))
	mux.HandleFunc("PATCH /hackathons/{id}/criteria/{criterionID}", guard(acl.UpdateCriterion, "criterion", s.criteriaHandler.HandleUpdate))
	mux.HandleFunc("DELETE /hackathons/{id}/criteria/{criterionID}", guard(acl.DeleteCriterion, "criterion", s.criteriaHandler.HandleDelete))

	mux.HandleFunc("POST /hackathons/{id}/judges", guard(acl.CreateJudge, "judges", s.judgesHandler.HandleCreate))
	mux.HandleFunc("GET /hackathons/{id}/judges", guard(acl.ReadJudges, "judges", s.judgesHandler.HandleList))
	mux.HandleFunc("DELETE /hackathons/{id}/judges/{userID}", guard(acl.DeleteJudge, "judge", s.judgesHandler.HandleDelete))

	mux.HandleFunc("POST /hackathons/{id}/scores", guard(acl.CreateTeamScore, "scores", s.scoresHandler.HandleCreate))
	mux.HandleFunc("GET /teams/{teamID}/scores", guard(acl.ReadTeamScores, "team_scores", s.scoresHandler.HandleTeamScores))

	mux.HandleFunc("GET /hackathons/{id}/results", guard(acl.ReadResults, "results", s.resultsHandler.HandleResults))
	mux.HandleFunc("POST /hackathons/{id}/results", guard(acl.ScoreHackathon, "recompute", s.resultsHandler.HandleRecompute))

	mux.HandleFunc("POST /hackathons/{id}/documents", guard(acl.UploadDocument, "documents", s.filesHandler.HandleUploadDocument))
	mux.HandleFunc("GET /hackathons/{id}/documents", guard(acl.ReadDocuments, "documents", s.filesHandler.HandleListDocuments))
	mux.HandleFunc("GET /documents/{id}", guard(acl.ReadDocuments, "document", s.filesHandler.HandleDownloadDocument))
	mux.HandleFunc("POST /hackathons/{id}/submissions", guard(acl.UploadSubmission, "submissions", s.filesHandler.HandleUploadSubmission))
	mux.HandleFunc("GET /hackathons/{id}/submissions", guard(acl.ReadSubmissions, "submissions", s.filesHandler.HandleListSubmissions))

	mux.HandleFunc("POST /internal/events", guard(acl.IngestIdentityEvent, "identity_events", s.eventsHandler.HandlePostEvent))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeDomainError translates core error kinds to HTTP statuses.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", err)
	case errors.Is(err, app.ErrValidation):
		writeError(w, http.StatusBadRequest, "bad_request", err)
	case errors.Is(err, app.ErrPhaseViolation):
		writeError(w, http.StatusConflict, "phase_violation", err)
	case errors.Is(err, app.ErrWeightInvariant):
		writeError(w, http.StatusConflict, "weight_invariant", err)
	case errors.Is(err, repository.ErrDuplicateScore):
		writeError(w, http.StatusConflict, "duplicate_score", err)
	case errors.Is(err, repository.ErrDuplicateName),
		errors.Is(err, repository.ErrDuplicate):
		writeError(w, http.StatusConflict, "duplicate", err)
	case errors.Is(err, roster.ErrUnavailable),
		errors.Is(err, identity.ErrUnavailable):
		writeError(w, http.StatusBadGateway, "upstream_unavailable", err)
	default:
		writeError(w, http.StatusInternalServerError, "internal", err)
	}
}

// pathID parses a positive integer path segment.
func pathID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid %s", ErrBadRequest, name)
	}
	return id, nil
}
