package domain

import "regexp"

// Username rules: at least 3 characters, alphanumeric plus underscore and
// hyphen. The email pattern requires a local part, an "@", and a dotted
// domain with valid label characters.
var (
	usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_-]{3,}$`)
	emailPattern    = regexp.MustCompile(
		`^[A-Za-z0-9._%+-]+@[A-Za-z0-9-]+(\.[A-Za-z0-9-]+)+$`)
)

// User represents a registered account.
// HashedPassword is opaque to everything except authentication: it is only
// populated by UserStore.LoadForAuth and is never serialized.
type User struct {
	ID             int64  `json:"id"`
	Username       string `json:"username"`
	Email          string `json:"email"`
	HashedPassword string `json:"-"`
	IsAdmin        bool   `json:"is_admin"`
}

// NewUser creates a User after validating the username and email.
// The ID is assigned by the store; callers pass 0 for a user that has not
// been persisted yet. Rules are checked in a fixed order and the first
// failure wins. Returns the constructed user or a validation error.
func NewUser(id int64, username, email, hashedPassword string, isAdmin bool) (*User, error) {
	if !usernamePattern.MatchString(username) {
		return nil, ErrInvalidUsername
	}

	if !emailPattern.MatchString(email) {
		return nil, ErrInvalidEmail
	}

	return &User{
		ID:             id,
		Username:       username,
		Email:          email,
		HashedPassword: hashedPassword,
		IsAdmin:        isAdmin,
	}, nil
}

// Validate re-checks the user's fields against the construction rules.
func (u *User) Validate() error {
	if !usernamePattern.MatchString(u.Username) {
		return ErrInvalidUsername
	}
	if !emailPattern.MatchString(u.Email) {
		return ErrInvalidEmail
	}
	return nil
}
