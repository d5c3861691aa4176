package model

import "time"

// Permission is a machine-stable capability code attached to access levels.
type Permission string

const (
	PermissionUsersRead         Permission = "users:read"
	PermissionUsersWrite        Permission = "users:write"
	PermissionAccessLevelsRead  Permission = "access_levels:read"
	PermissionAccessLevelsWrite Permission = "access_levels:write"
	PermissionSubjectsWrite     Permission = "subjects:write"
	PermissionMaterialsWrite    Permission = "materials:write"
	PermissionPrevExamsWrite    Permission = "previous_exams:write"
	PermissionQuestionsWrite    Permission = "questions:write"
	PermissionQuizzesWrite      Permission = "quizzes:write"
	PermissionSessionsReadAll   Permission = "sessions:read_all"
	PermissionEventsWrite       Permission = "events:write"
	PermissionEventsCheckIn     Permission = "events:check_in"
	PermissionNewsWrite         Permission = "news:write"
)

// AllPermissions lists every permission code for access-level management UIs.
var AllPermissions = []Permission{
	PermissionUsersRead,
	PermissionUsersWrite,
	PermissionAccessLevelsRead,
	PermissionAccessLevelsWrite,
	PermissionSubjectsWrite,
	PermissionMaterialsWrite,
	PermissionPrevExamsWrite,
	PermissionQuestionsWrite,
	PermissionQuizzesWrite,
	PermissionSessionsReadAll,
	PermissionEventsWrite,
	PermissionEventsCheckIn,
	PermissionNewsWrite,
}

// AccessLevel groups permission codes under a named role.
type AccessLevel struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Permissions []string  `json:"permissions"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CreateAccessLevelRequest is the payload for creating an access level.
type CreateAccessLevelRequest struct {
	Name        string   `json:"name" binding:"required,min=2,max=100"`
	Permissions []string `json:"permissions" binding:"required"`
}

// UpdateAccessLevelRequest is the payload for updating an access level.
type UpdateAccessLevelRequest struct {
	Name        string   `json:"name" binding:"omitempty,min=2,max=100"`
	Permissions []string `json:"permissions" binding:"omitempty"`
}
