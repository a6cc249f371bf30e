package user

import "time"

type User struct {
	ID              string
	Email           string
	PasswordHash    *string
	OAuthProvider   *string
	OAuthProviderID *string
	EmailVerified   bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// HasPassword reports whether the account can log in with email/password.
// Google-only accounts have no password hash until one is linked.
func (u *User) HasPassword() bool {
	return u.PasswordHash != nil && *u.PasswordHash != ""
}
