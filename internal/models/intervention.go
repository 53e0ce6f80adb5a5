package models

import "time"

// Intervention is a remedial action tracked for one student.
type Intervention struct {
	ID            int64      `db:"id" json:"id"`
	StudentID     int64      `db:"student_id" json:"student_id"`
	Type          string     `db:"type" json:"type"`
	Description   string     `db:"description" json:"description"`
	StartDate     time.Time  `db:"start_date" json:"start_date"`
	EndDate       *time.Time `db:"end_date" json:"end_date,omitempty"`
	Status        string     `db:"status" json:"status"`
	Effectiveness string     `db:"effectiveness" json:"effectiveness"`
}

// InterventionDetail is the high-risk listing row: every student with
// dropout_risk at or above the threshold, left-joined with interventions.
type InterventionDetail struct {
	StudentID          int64      `db:"student_id" json:"student_id"`
	StudentName        string     `db:"student_name" json:"student_name"`
	DropoutRisk        float64    `db:"dropout_risk" json:"dropout_risk"`
	StudentStatus      string     `db:"student_status" json:"intervention_status"`
	InterventionID     *int64     `db:"intervention_id" json:"intervention_id,omitempty"`
	Type               *string    `db:"type" json:"type,omitempty"`
	Description        *string    `db:"description" json:"description,omitempty"`
	StartDate          *time.Time `db:"start_date" json:"start_date,omitempty"`
	EndDate            *time.Time `db:"end_date" json:"end_date,omitempty"`
	InterventionStatus *string    `db:"status" json:"status,omitempty"`
	Effectiveness      *string    `db:"effectiveness" json:"effectiveness,omitempty"`
}
