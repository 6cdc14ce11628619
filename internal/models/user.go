package models

import "time"

// User is a row of the users table.
type User struct {
	UserID       string  `db:"user_id"`
	Username     string  `db:"username"`
	PasswordHash string  `db:"password_hash"`
	Name         string  `db:"name"`
	Email        *string `db:"email"`
	Role         string  `db:"role"`
	UnitID       *string `db:"unit_id"`
	IsActive     bool    `db:"is_active"`
	AuditFields
	DeletedAt *time.Time `db:"deleted_at"`
}

// Unit is a row of the units table.
type Unit struct {
	UnitID string `db:"unit_id"`
	Name   string `db:"name"`
	AuditFields
}
