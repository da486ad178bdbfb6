package model

import "time"

// User represents an application user record as stored in the
// `users` table. The password digest is excluded from JSON so a
// full User can be returned from handlers without leaking it.
//
// Fields:
//  ID        – primary key identifier of the user.
//  Username  – display name chosen at registration.
//  Email     – unique email address.
//  Password  – bcrypt digest of the password.
//  FullName  – optional full name, set via admin update only.
//  RoleID    – optional foreign key into a roles table, set via admin update.
//  CreatedAt – timestamp of creation.
type User struct {
	ID        uint64    `json:"id"`         // users.id
	Username  string    `json:"username"`   // users.username
	Email     string    `json:"email"`      // users.email
	Password  string    `json:"-"`          // users.password (bcrypt digest)
	FullName  *string   `json:"full_name"`  // users.full_name (nullable)
	RoleID    *uint64   `json:"role_id"`    // users.role_id (nullable)
	CreatedAt time.Time `json:"created_at"` // users.created_at
}
