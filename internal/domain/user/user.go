// Package user defines the session-scoped user profile.
// Users carry no stable identifier: reports and campaign memberships match on
// the name and email strings captured at mutation time. That looseness is part
// of the behavioral contract and is preserved here.
package user

import "strings"

// Profile represents the currently logged-in user. It exists only inside a
// live session and is never persisted across restarts.
type Profile struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Location string `json:"location"`
	Desc     string `json:"desc"`
}

// Trimmed returns a copy of the profile with all fields whitespace-trimmed.
func (p Profile) Trimmed() Profile {
	return Profile{
		Name:     strings.TrimSpace(p.Name),
		Email:    strings.TrimSpace(p.Email),
		Phone:    strings.TrimSpace(p.Phone),
		Location: strings.TrimSpace(p.Location),
		Desc:     strings.TrimSpace(p.Desc),
	}
}
