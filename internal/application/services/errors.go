package services

import "errors"

// Validation and authorization errors surfaced to users. Handlers map these
// to user-visible messages; nothing is mutated when one is returned.
var (
	// ErrNameAndLocationRequired rejects a login missing either required field.
	ErrNameAndLocationRequired = errors.New("please provide both name and location to continue")

	// ErrLoginRequired rejects any session-gated action while logged out.
	ErrLoginRequired = errors.New("please login first to access this section")

	// ErrUnknownScreen rejects navigation to a screen outside the fixed set.
	ErrUnknownScreen = errors.New("unknown screen")

	// ErrUnknownCategory rejects a report with a type outside the fixed set.
	ErrUnknownCategory = errors.New("unknown issue category")

	// ErrCampaignRequired rejects a join with an empty campaign name.
	ErrCampaignRequired = errors.New("campaign name is required")

	// ErrUnknownTheme rejects a theme outside the two known identifiers.
	ErrUnknownTheme = errors.New("unknown theme")
)
