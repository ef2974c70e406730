// Package acl maps caller roles to allow/deny decisions for named actions.
//
// This is the coarse, role-based half of authorization; the fine, time-based
// half lives in the phase package. Both must pass for a mutation to proceed.
package acl

// Role identifies a caller's global role as issued by the auth service.
type Role string

// Known roles.
const (
	RoleAdmin       Role = "admin"
	RoleOrganizer   Role = "organizer"
	RoleJudge       Role = "judge"
	RoleParticipant Role = "participant"
)

// Action names a permission-checked operation.
type Action string

// Actions gated by the ACL table.
const (
	ReadHackathonList  Action = "read_hackathon_list"
	ReadHackathonInfo  Action = "read_hackathon_info"
	ReadHackathonTeams Action = "read_hackathon_teams"

	CreateHackathon Action = "create_hackathon"
	UpdateHackathon Action = "update_hackathon"
	DeleteHackathon Action = "delete_hackathon"
	ScoreHackathon  Action = "score_hackathon"

	ReadCriteria    Action = "read_criteria"
	CreateCriterion Action = "create_criterion"
	UpdateCriterion Action = "update_criterion"
	DeleteCriterion Action = "delete_criterion"

	ReadJudges  Action = "read_judges"
	CreateJudge Action = "create_judge"
	DeleteJudge Action = "delete_judge"

	ReadTeamScores  Action = "read_team_scores"
	CreateTeamScore Action = "create_team_score"

	ReadResults Action = "read_results"

	UploadDocument   Action = "upload_document"
	ReadDocuments    Action = "read_documents"
	UploadSubmission Action = "upload_submission"
	ReadSubmissions  Action = "read_submissions"

	IngestIdentityEvent Action = "ingest_identity_event"
)

// Permission is a tagged allow rule: public, a single role, or a role set.
type Permission struct {
	public bool
	role   Role
	group  map[Role]struct{}
}

// Public allows any caller.
func Public() Permission { return Permission{public: true} }

// Only allows exactly one role.
func Only(r Role) Permission { return Permission{role: r} }

// Group allows any of the given roles.
func Group(roles ...Role) Permission {
	g := make(map[Role]struct{}, len(roles))
	for _, r := range roles {
		g[r] = struct{}{}
	}
	return Permission{group: g}
}

// Check reports whether role satisfies the permission.
func Check(p Permission, role Role) bool {
	switch {
	case p.public:
		return true
	case p.group != nil:
		_, ok := p.group[role]
		return ok
	default:
		return role == p.role && role != ""
	}
}

// Table is an immutable action -> permission mapping injected at construction.
type Table map[Action]Permission

// Allows reports whether role may attempt action. Unknown actions are denied.
func (t Table) Allows(action Action, role Role) bool {
	p, ok := t[action]
	if !ok {
		return false
	}
	return Check(p, role)
}

// DefaultTable returns the static role bindings for the service.
func DefaultTable() Table {
	organizers := Group(RoleAdmin, RoleOrganizer)
	privileged := Group(RoleAdmin, RoleOrganizer, RoleJudge)

	return Table{
		ReadHackathonList:  Public(),
		ReadHackathonInfo:  Public(),
		ReadHackathonTeams: Public(),

		CreateHackathon: organizers,
		UpdateHackathon: organizers,
		DeleteHackathon: organizers,
		ScoreHackathon:  organizers,

		ReadCriteria:    privileged,
		CreateCriterion: organizers,
		UpdateCriterion: organizers,
		DeleteCriterion: organizers,

		ReadJudges:  privileged,
		CreateJudge: organizers,
		DeleteJudge: organizers,

		ReadTeamScores:  privileged,
		CreateTeamScore: Only(RoleJudge),

		ReadResults: Public(),

		UploadDocument:   organizers,
		ReadDocuments:    Public(),
		UploadSubmission: Only(RoleParticipant),
		ReadSubmissions:  privileged,

		IngestIdentityEvent: Only(RoleAdmin),
	}
}
