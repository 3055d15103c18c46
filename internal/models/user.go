package models

import "time"

// User mirrors the users table.
type User struct {
	UserID       string `db:"user_id"`
	Name         string `db:"name"`
	PasswordHash string `db:"password_hash"`
	AuditFields
	DeletedAt *time.Time `db:"deleted_at"`
}
