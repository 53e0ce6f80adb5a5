package models

import "time"

// Intervention roll-up states mirrored on the student record.
const (
	InterventionStatusPending    = "Pending"
	InterventionStatusInProgress = "In Progress"
	InterventionStatusCompleted  = "Completed"
)

// HighRiskThreshold marks students considered high dropout risk.
const HighRiskThreshold = 70.0

// UrgentRiskThreshold marks students needing immediate intervention.
const UrgentRiskThreshold = 80.0

// Student represents a tracked learner. The four risk factors are fixed at
// intake; dropout_risk is derived from them once at creation and only the
// intervention roll-up changes afterwards.
type Student struct {
	ID                  int64      `db:"id" json:"id"`
	Name                string     `db:"name" json:"name"`
	Age                 int        `db:"age" json:"age"`
	Gender              string     `db:"gender" json:"gender"`
	School              string     `db:"school" json:"school,omitempty"`
	SchoolID            string     `db:"school_id" json:"school_id,omitempty"`
	SchoolName          string     `db:"school_name" json:"school_name,omitempty"`
	LocationType        string     `db:"location_type" json:"location_type,omitempty"`
	RiskFactors         string     `db:"risk_factors" json:"risk_factors,omitempty"`
	AcademicPerformance float64    `db:"academic_performance" json:"academic_performance"`
	Attendance          float64    `db:"attendance" json:"attendance"`
	SocioEconomicStatus int        `db:"socio_economic_status" json:"socio_economic_status"`
	FamilySupport       int        `db:"family_support" json:"family_support"`
	DropoutRisk         float64    `db:"dropout_risk" json:"dropout_risk"`
	InterventionStatus  string     `db:"intervention_status" json:"intervention_status"`
	DateFlagged         *time.Time `db:"date_flagged" json:"date_flagged,omitempty"`
}

// StudentFilter narrows student listings.
type StudentFilter struct {
	HighRisk bool
}
