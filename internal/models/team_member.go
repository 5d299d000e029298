package models

import "time"

type TeamRole string

const (
	RoleChairman       TeamRole = "CHAIRMAN"
	RoleDeputyChairman TeamRole = "DEPUTY_CHAIRMAN"
	RoleSupervisor     TeamRole = "SUPERVISOR"
)

func ValidTeamRole(s string) bool {
	switch TeamRole(s) {
	case RoleChairman, RoleDeputyChairman, RoleSupervisor:
		return true
	}
	return false
}

// SingletonRole reports whether at most one member may hold the role.
func SingletonRole(role TeamRole) bool {
	return role == RoleChairman || role == RoleDeputyChairman
}

type TeamMember struct {
	ID          uint     `gorm:"primaryKey"`
	Role        TeamRole `gorm:"size:20;not null;index"`
	ImageSrc    string   `gorm:"size:255;not null"`
	Name        string   `gorm:"size:255;not null"`
	Description string   `gorm:"not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
