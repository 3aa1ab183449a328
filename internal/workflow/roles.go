package workflow

import (
	"fmt"

	api "github.com/qualinet/review-planner/api/v1alpha1"
)

// Role is the closed set of actors that may drive the workflow.
type Role string

const (
	RoleAdmin             Role = api.RoleAdmin
	RoleCEO               Role = api.RoleCEO
	RoleTechnicalDirector Role = api.RoleTechnicalDirector
	RoleMemberFirm        Role = api.RoleMemberFirm
	RoleReviewer          Role = api.RoleReviewer
)

// ParseRole validates a role string against the closed set.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin, RoleCEO, RoleTechnicalDirector, RoleMemberFirm, RoleReviewer:
		return Role(s), nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}

// Actor identifies who is requesting a transition.
type Actor struct {
	ID   string
	Role Role
}
