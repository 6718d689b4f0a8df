package authz

import (
	"errors"

	"github.com/sofianedj/boardhub/internal/domain/user"
)

// Action names a capability being requested on a resource.
type Action string

const (
	ActionRead    Action = "read"
	ActionUpdate  Action = "update"
	ActionDelete  Action = "delete"
	ActionRespond Action = "respond"
)

var ErrForbidden = errors.New("forbidden")

// Policy is the single authorization decision point. Every resource
// handler consults it instead of carrying its own ownership check.
type Policy struct {
	// AdminOverride lets admins act on any resource.
	AdminOverride bool
}

func NewPolicy() Policy {
	return Policy{AdminOverride: true}
}

// Authorize grants the action when the identity owns the resource, or
// when the identity is an admin and override is enabled.
func (p Policy) Authorize(id user.Identity, _ Action, ownerID string) error {
	if id.ID == "" || ownerID == "" {
		return ErrForbidden
	}

	if id.ID == ownerID {
		return nil
	}

	if p.AdminOverride && id.Role == user.RoleAdmin {
		return nil
	}

	return ErrForbidden
}
