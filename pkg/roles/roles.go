// Package roles defines the closed set of user roles and the capability
// checks gating administrative actions. Both the API server and the client
// SDK share this package so role strings are interpreted in exactly one place.
package roles

import "strings"

// Role is a closed enumeration of user roles.
type Role string

const (
	Admin  Role = "ADMIN"
	Editor Role = "EDITOR"
	Viewer Role = "VIEWER"
)

// Parse normalizes a role string from a token or API payload.
// Unknown values map to Viewer, the least privileged role.
func Parse(s string) Role {
	switch Role(strings.ToUpper(strings.TrimSpace(s))) {
	case Admin:
		return Admin
	case Editor:
		return Editor
	default:
		return Viewer
	}
}

// Valid reports whether the role is one of the known values.
func Valid(r Role) bool {
	switch r {
	case Admin, Editor, Viewer:
		return true
	}
	return false
}

// CanManageMasters reports whether the role may create, update, or delete
// master-list entries. Read access is open to every authenticated role.
func CanManageMasters(r Role) bool {
	return r == Admin
}
