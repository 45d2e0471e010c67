package model

import "time"

// User types.
const (
	UserTypeAdmin = "admin"
	UserTypeUser  = "user"
)

// User represents a login account as persisted in the users
// collection. Password holds the bcrypt hash, never the clear text.
type User struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Password  string    `json:"password"`
	Type      string    `json:"type"`
	CreatedAt time.Time `json:"created_at"`
}

// PublicUser is the API-facing view of a User, without the password
// hash.
type PublicUser struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Type      string    `json:"type"`
	CreatedAt time.Time `json:"created_at"`
}

// Public returns the user without credential material.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:        u.ID,
		Username:  u.Username,
		Type:      u.Type,
		CreatedAt: u.CreatedAt,
	}
}

// IsValidUserType reports whether the value is a known user type.
func IsValidUserType(value string) bool {
	return value == UserTypeAdmin || value == UserTypeUser
}

// LoginRequest is the payload for POST /api/login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Validate checks that both credentials are present.
func (r *LoginRequest) Validate() error {
	if !IsValidString(r.Username) {
		return ErrUsername
	}
	if r.Password == "" {
		return ErrPassword
	}
	return nil
}

// UpdateUserRequest is the payload for PUT /api/login/{username}.
// Nil fields keep their stored values.
type UpdateUserRequest struct {
	Password *string `json:"password"`
	Type     *string `json:"type"`
}

// Validate checks that at least one field is provided and that the
// provided values are acceptable.
func (r *UpdateUserRequest) Validate() error {
	if r.Password == nil && r.Type == nil {
		return ErrNoFields
	}
	if r.Password != nil && *r.Password == "" {
		return ErrPassword
	}
	if r.Type != nil && !IsValidUserType(*r.Type) {
		return ErrUserType
	}
	return nil
}
