package models

// Listener is a support-role profile owned by a user record. The profile
// keeps its own display name; listings use the owning account's name.
type Listener struct {
	ID             int64  `db:"id" json:"id"`
	UserID         int64  `db:"user_id" json:"user_id"`
	Name           string `db:"name" json:"name"`
	Photo          string `db:"photo" json:"photo"`
	Specialization string `db:"specialization" json:"specialization"`
	// IsAvailable is stored but the listing path derives availability from
	// the owning user's Active status instead of reading it.
	IsAvailable bool `db:"is_available" json:"is_available"`
}

// ListenerSummary is the listing projection joined with the owning user.
type ListenerSummary struct {
	ID             int64  `db:"id" json:"id"`
	Photo          string `db:"photo" json:"photo"`
	Specialization string `db:"specialization" json:"specialization"`
	IsAvailable    bool   `db:"is_available" json:"is_available"`
	Name           string `db:"name" json:"name"`
}
