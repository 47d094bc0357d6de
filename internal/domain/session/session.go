// Package session defines the application session entity and the screen
// enumeration the router navigates between.
package session

import (
	"time"

	"github.com/Engnr-Qasim/dreamers-app/internal/domain/user"
)

// Screen identifies a single UI screen. Exactly one screen is active per
// session; login is the only screen reachable without a session.
type Screen string

const (
	ScreenLogin   Screen = "login"
	ScreenHome    Screen = "home"
	ScreenReport  Screen = "report"
	ScreenProfile Screen = "profile"
)

// Screens returns the fixed set of navigable screens.
func Screens() []Screen {
	return []Screen{ScreenLogin, ScreenHome, ScreenReport, ScreenProfile}
}

// ParseScreen validates a screen identifier.
func ParseScreen(id string) (Screen, bool) {
	switch Screen(id) {
	case ScreenLogin, ScreenHome, ScreenReport, ScreenProfile:
		return Screen(id), true
	}
	return "", false
}

// Visual theme identifiers. Theme selection lives in the session only.
const (
	ThemeDark1 = "theme-dark1"
	ThemeDark2 = "theme-dark2"
)

// ValidTheme reports whether the identifier names a known theme.
func ValidTheme(theme string) bool {
	return theme == ThemeDark1 || theme == ThemeDark2
}

// Session is the explicit, explicitly-scoped application session: created at
// login, destroyed at logout, holding the user profile, the active theme and
// the single active screen.
type Session struct {
	ID           string       `json:"id"`
	Profile      user.Profile `json:"profile"`
	Theme        string       `json:"theme"`
	ActiveScreen Screen       `json:"activeScreen"`
	CreatedAt    time.Time    `json:"createdAt"`
	LastActivity time.Time    `json:"lastActivity"`
}
