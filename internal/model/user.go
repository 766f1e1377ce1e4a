package model

// Role identifies what a user can see and how their net fees are computed.
type Role string

const (
	RoleAdvisor          Role = "agente_asesor"
	RoleTeamLeaderBroker Role = "team_leader_broker"
)

// User is the viewer context threaded through every calculation call.
// The engine never reads role information from ambient state; callers pass
// the viewer explicitly.
type User struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role Role   `json:"role"`

	// FranchiseOrBrokerPercent is an optional discount deducted from the
	// advisor's fee before it is considered net. nil means no override.
	FranchiseOrBrokerPercent *float64 `json:"franchise_or_broker_percent,omitempty"`

	Currency string `json:"currency"`

	// TeamLeaderID links an advisor to the team leader who aggregates
	// their operations. Empty for team leaders themselves.
	TeamLeaderID *string `json:"team_leader_id,omitempty"`
}

// UserFilter for querying users
type UserFilter struct {
	TeamLeaderID string
	Role         Role
}
