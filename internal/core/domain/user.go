package domain

import (
	"time"
	"unicode/utf8"
)

const (
	DefaultAvatarURL = "https://example.com/avatar.png"

	UsernameMinLen = 3
	UsernameMaxLen = 50
	PasswordMinLen = 6
	PasswordMaxLen = 128
)

// User models a registered account. PasswordHash never leaves the service.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	AvatarURL    string    `json:"avatar_url"`
	CreatedAt    time.Time `json:"created_at"`
}

// ValidateCredentials checks the registration constraints on username and password.
func ValidateCredentials(username, password string) error {
	if n := utf8.RuneCountInString(username); n < UsernameMinLen || n > UsernameMaxLen {
		return Validationf("username must be between %d and %d characters", UsernameMinLen, UsernameMaxLen)
	}
	if n := utf8.RuneCountInString(password); n < PasswordMinLen || n > PasswordMaxLen {
		return Validationf("password must be between %d and %d characters", PasswordMinLen, PasswordMaxLen)
	}
	return nil
}
