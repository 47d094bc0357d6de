// Package engagement defines the persisted civic-engagement entities: issue
// reports and campaign memberships, plus the repository interfaces that
// abstract the persisted store from the application services.
package engagement

// Category is one of the fixed issue categories a report or campaign can
// belong to. The set is closed; progress is only tracked for these four.
type Category string

const (
	CategoryTreePlantation      Category = "Tree Plantation"
	CategoryCleanlinessDrives   Category = "Cleanliness Drives"
	CategoryDustbinInstallation Category = "Dustbin Installation"
	CategoryAwarenessSessions   Category = "Awareness Sessions"
)

// Categories returns the fixed, ordered category set.
func Categories() []Category {
	return []Category{
		CategoryTreePlantation,
		CategoryCleanlinessDrives,
		CategoryDustbinInstallation,
		CategoryAwarenessSessions,
	}
}

// ParseCategory validates a category name.
func ParseCategory(name string) (Category, bool) {
	switch Category(name) {
	case CategoryTreePlantation, CategoryCleanlinessDrives,
		CategoryDustbinInstallation, CategoryAwarenessSessions:
		return Category(name), true
	}
	return "", false
}

// NoPhoto is the sentinel stored when a report carries no photo. Only the
// filename is ever persisted; the photo bytes travel with the notification.
const NoPhoto = "No Photo"

// Report is a single submitted issue record. Reports are immutable once
// created and live in an append-only ordered sequence.
//
// The record ID is a process-local handle; the persisted JSON layout carries
// exactly the fields the store contract names.
type Report struct {
	ID          string   `json:"-"`
	Name        string   `json:"name"`
	Email       string   `json:"email"`
	Type        Category `json:"type"`
	Location    string   `json:"location"`
	Photo       string   `json:"photo"`
	Description string   `json:"description"`
	Priority    string   `json:"priority"`
}

// Memberships maps a user's email to the insertion-ordered, deduplicated set
// of campaign names that email has joined.
type Memberships map[string][]string

// Add records a campaign for an email. Adding an already-present campaign is
// a no-op; it reports whether the set changed.
func (m Memberships) Add(email, campaign string) bool {
	for _, joined := range m[email] {
		if joined == campaign {
			return false
		}
	}
	m[email] = append(m[email], campaign)
	return true
}

// CountFor returns how many campaigns an email has joined.
func (m Memberships) CountFor(email string) int {
	return len(m[email])
}

// ReportRepository defines the operations for the persisted report sequence.
type ReportRepository interface {
	Append(report Report) error
	All() ([]Report, error)
	ListByName(name string) ([]Report, error)
}

// CampaignRepository defines the operations for persisted campaign memberships.
type CampaignRepository interface {
	// AddMembership joins an email to a campaign. The operation is idempotent;
	// it reports whether the membership set changed.
	AddMembership(email, campaign string) (bool, error)
	All() (Memberships, error)
	ListForEmail(email string) ([]string, error)
}
