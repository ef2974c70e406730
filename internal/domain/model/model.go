// Package model contains domain models passed between layers.
package model

import "time"

// Hackathon is a time-bounded competition. Dates must satisfy
// start < score_start < end; writes violating the ordering are rejected.
type Hackathon struct {
	ID                  int64
	Name                string
	Description         string
	MaxParticipantCount int
	MaxTeamMatesCount   int
	StartDate           time.Time
	ScoreStartDate      time.Time
	EndDate             time.Time
}

// DatesOrdered reports whether the three lifecycle dates are strictly ordered.
func (h Hackathon) DatesOrdered() bool {
	return h.StartDate.Before(h.ScoreStartDate) && h.ScoreStartDate.Before(h.EndDate)
}

// Criterion is a named, weighted scoring dimension belonging to one hackathon.
// Weight is in (0, 1]; the per-hackathon weight sum may not exceed 1.01.
type Criterion struct {
	ID          int64
	HackathonID int64
	Name        string
	Weight      float64
}

// Judge authorizes one external user to score teams within one hackathon.
type Judge struct {
	ID          int64
	HackathonID int64
	UserID      int64
	UserName    string // best-effort enrichment from the identity service
}

// Score is a single judge's mark for one team on one criterion.
// Value is an integer in [0, 100]; the (team, criterion, judge) triple is unique.
type Score struct {
	ID          int64
	TeamID      int64
	CriterionID int64
	JudgeID     int64
	Value       int
}

// TeamScore is a score row joined with its judge's external user id,
// as returned to clients.
type TeamScore struct {
	ID          int64
	TeamID      int64
	CriterionID int64
	JudgeID     int64
	JudgeUserID int64
	Value       int
	JudgeName   string // best-effort enrichment
	TeamName    string // best-effort enrichment
}

// FinalScore is the cached aggregate ranking value for one team.
// Rebuildable at any time from Score and Criterion rows.
type FinalScore struct {
	TeamID int64
	Score  float64
}

// Document is organizer-uploaded collateral; bytes live in the object store.
type Document struct {
	ID          int64
	HackathonID int64
	Name        string
	StorageKey  string
	ContentType string
	UploadedAt  time.Time
}

// Submission is a team's uploaded entry, unique per (team, hackathon).
type Submission struct {
	ID          int64
	HackathonID int64
	TeamID      int64
	Name        string
	StorageKey  string
	ContentType string
	UploadedAt  time.Time
}

// IdentityEvent is delivered by the identity service when a user account
// changes in a way that affects judge rosters.
type IdentityEvent struct {
	EventID string
	Kind    string // "user.deleted" or "user.banned"
	UserID  int64
	Banned  bool
}

// Identity event kinds.
const (
	EventUserDeleted = "user.deleted"
	EventUserBanned  = "user.banned"
)
