package domain

import "time"

// Role is the single active role of an identity.
type Role string

const (
	RoleDM     Role = "dm"
	RolePlayer Role = "player"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	switch r {
	case RoleDM, RolePlayer:
		return true
	}
	return false
}

// Identity maps an authenticated external user to a display name and a role.
// The id and display name come from the identity provider; the role is ours.
type Identity struct {
	UserID      string    `json:"user_id"`
	DisplayName string    `json:"display_name"`
	Email       string    `json:"email,omitempty"`
	Role        Role      `json:"role"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// IsDM reports whether the identity currently acts as a DM.
func (i Identity) IsDM() bool {
	return i.Role == RoleDM
}
