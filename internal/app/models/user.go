package models

// User is a faculty member. Every course belongs to exactly one user.
type User struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"-"` // bcrypt hash, never serialized
	Timestamps
}
