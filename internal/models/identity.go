package models

import "strings"

type Role string

const (
	RoleWorker      Role = "worker"
	RoleCoordinator Role = "coordinator"
	RoleLead        Role = "lead"
)

// NormalizeRole maps the free-form role spellings found in roster files
// onto the closed enum. Unknown strings return false.
func NormalizeRole(s string) (Role, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "worker", "bpo", "field":
		return RoleWorker, true
	case "coordinator", "koordinator":
		return RoleCoordinator, true
	case "lead", "logistics", "logistikchef", "logistics_lead":
		return RoleLead, true
	default:
		return "", false
	}
}

// CanEditTasks reports whether the role may toggle tasks or add ad-hoc
// tasks. The Lead approves days but never edits tasks.
func (r Role) CanEditTasks() bool {
	return r == RoleWorker || r == RoleCoordinator
}

// Identity is one member of the static site roster. Credential is either
// a plain PIN or a bcrypt hash of one (recognized by its "$2" prefix).
type Identity struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Role       Role   `json:"role"`
	Credential string `json:"-"`
}
