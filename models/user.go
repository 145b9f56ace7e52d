package models

import "time"

// User represents an account of the note backend.
type User struct {
	// UserID is the internal identifier. It is carried by the token subject
	// and never exposed through JSON.
	UserID int64 `json:"-"`

	// Login is the unique login used to authenticate.
	Login string `json:"login"`

	// Name is the display name.
	Name string `json:"name,omitempty"`

	// Password is the plaintext password sent by the client. It is only
	// present in register/login requests.
	Password string `json:"password,omitempty"`

	// PasswordHash is the bcrypt hash kept by the server.
	PasswordHash string `json:"-"`

	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the database table associated with User.
func (u User) TableName() string {
	return "users"
}
