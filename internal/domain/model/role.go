package model

import "math"

// Role is a positional archetype. The declaration order is significant: role
// classification resolves equal logits to the role declared first.
type Role int

// Roles in canonical order.
const (
	RoleScorer Role = iota
	RolePlaymaker
	RoleTwoWayForward
	RoleGrinder
	RoleOffensiveDefenseman
	RoleTwoWayDefenseman
	RoleShutdownDefenseman
	RoleGoalie

	RoleCount = 8
)

var roleNames = [RoleCount]string{
	"scorer",
	"playmaker",
	"two_way_forward",
	"grinder",
	"offensive_defenseman",
	"two_way_defenseman",
	"shutdown_defenseman",
	"goalie",
}

// AllRoles lists every role in canonical order.
func AllRoles() []Role {
	roles := make([]Role, RoleCount)
	for i := range roles {
		roles[i] = Role(i)
	}
	return roles
}

func (r Role) String() string {
	if !r.Valid() {
		return "unknown"
	}
	return roleNames[r]
}

// MarshalText renders the role name.
func (r Role) MarshalText() ([]byte, error) { return []byte(r.String()), nil }

// UnmarshalText parses a role name.
func (r *Role) UnmarshalText(b []byte) error {
	parsed, ok := ParseRole(string(b))
	if !ok {
		return ErrUnknownRole
	}
	*r = parsed
	return nil
}

// ParseRole maps a role name back to a Role.
func ParseRole(s string) (Role, bool) {
	for i, name := range roleNames {
		if name == s {
			return Role(i), true
		}
	}
	return 0, false
}

// Valid reports whether r is one of the eight roles.
func (r Role) Valid() bool { return r >= 0 && r < RoleCount }

// Group returns the position group a role is drawn from.
func (r Role) Group() PositionGroup {
	switch r {
	case RoleScorer, RolePlaymaker, RoleTwoWayForward, RoleGrinder:
		return GroupForward
	case RoleOffensiveDefenseman, RoleTwoWayDefenseman, RoleShutdownDefenseman:
		return GroupDefense
	case RoleGoalie:
		return GroupGoalie
	default:
		return GroupUnknown
	}
}

// Allows reports whether a player listed at pos may be assigned role r.
func (r Role) Allows(pos Position) bool {
	g := pos.Group()
	return g != GroupUnknown && g == r.Group()
}

// Classification is the output of role classification. Logits of roles that do
// not allow the player's position are -Inf.
type Classification struct {
	Role   Role               `json:"role"`
	Logits [RoleCount]float64 `json:"-"`
}

// Logit returns the logit of r, or -Inf for an invalid role.
func (c Classification) Logit(r Role) float64 {
	if !r.Valid() {
		return math.Inf(-1)
	}
	return c.Logits[r]
}
