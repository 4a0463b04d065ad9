// Package session persists the authenticated session and per-user
// display preferences in durable local storage.
package session

import "github.com/mediminder/mediminder/internal/models"

// Store is the capability interface over local session state.
//
// Contract:
//   - RestoreSession reports ok=false for absent or corrupt data;
//     corrupt data is cleared silently, never surfaced as an error.
//   - ClearSession removes the session only; avatar and dark-mode
//     preferences survive logout/login for the same profile.
//   - DarkMode defaults to false when never set; Avatar to "".
type Store interface {
	SaveSession(user models.User, token string) error
	RestoreSession() (user models.User, token string, ok bool)
	ClearSession() error

	SetAvatar(userID, avatar string) error
	Avatar(userID string) string

	SetDarkMode(on bool) error
	DarkMode() bool
}
