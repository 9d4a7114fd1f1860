package models

import "time"

// UserRole is a row of the user_roles table.
type UserRole struct {
	UserID     string    `db:"user_id"`
	Role       string    `db:"role"`
	AssignedBy string    `db:"assigned_by"`
	AssignedAt time.Time `db:"assigned_at"`
}
