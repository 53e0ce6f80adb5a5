package models

import "database/sql"

// Statistics is the headline dashboard card set.
type Statistics struct {
	TotalStudents           int     `db:"total_students" json:"total_students"`
	HighRiskStudents        int     `db:"high_risk_students" json:"high_risk_students"`
	AverageRisk             float64 `db:"average_risk" json:"average_risk"`
	CompletedInterventions  int     `db:"completed_interventions" json:"completed_interventions"`
	InProgressInterventions int     `db:"in_progress_interventions" json:"in_progress_interventions"`
}

// RiskBucket counts students per derived risk level: below 30 is Low,
// below 70 Medium, the rest High.
type RiskBucket struct {
	RiskLevel string `db:"risk_level" json:"risk_level"`
	Count     int    `db:"count" json:"count"`
}

// HighRiskStudent is a top-risk dashboard row.
type HighRiskStudent struct {
	ID                 int64   `db:"id" json:"id"`
	Name               string  `db:"name" json:"name"`
	DropoutRisk        float64 `db:"dropout_risk" json:"dropout_risk"`
	InterventionStatus string  `db:"intervention_status" json:"intervention_status"`
}

// InterventionStatusCount aggregates students by intervention roll-up state.
type InterventionStatusCount struct {
	InterventionStatus string `db:"intervention_status" json:"intervention_status"`
	Count              int    `db:"count" json:"count"`
}

// GenderStat reports the high-risk share per gender.
type GenderStat struct {
	Gender        string  `db:"gender" json:"gender"`
	TotalStudents int     `db:"total_students" json:"total_students"`
	DropoutCount  int     `db:"dropout_count" json:"dropout_count"`
	DropoutRate   float64 `db:"dropout_rate" json:"dropout_rate"`
}

// LocationStat reports the high-risk share per school location type.
type LocationStat struct {
	LocationType  string  `db:"location_type" json:"location_type"`
	TotalStudents int     `db:"total_students" json:"total_students"`
	DropoutCount  int     `db:"dropout_count" json:"dropout_count"`
	DropoutRate   float64 `db:"dropout_rate" json:"dropout_rate"`
}

// AnnualPrediction is a per-year projected dropout case count.
type AnnualPrediction struct {
	Year           int     `db:"year" json:"year"`
	PredictedCases int     `db:"predicted_cases" json:"predicted_cases"`
	AverageRisk    float64 `db:"average_risk" json:"average_risk"`
}

// NewCase is a student flagged within the last week.
type NewCase struct {
	ID          int64   `db:"id" json:"id"`
	StudentName string  `db:"student_name" json:"student_name"`
	School      string  `db:"school" json:"school"`
	RiskFactors string  `db:"risk_factors" json:"risk_factors"`
	DateFlagged *string `db:"date_flagged" json:"date_flagged"`
}

// SchoolTrend is a school whose recent average risk climbed above its
// older baseline.
type SchoolTrend struct {
	SchoolID     string  `db:"school_id" json:"school_id"`
	SchoolName   string  `db:"school_name" json:"school_name"`
	CurrentRate  float64 `db:"current_rate" json:"current_rate"`
	PreviousRate float64 `db:"previous_rate" json:"previous_rate"`
	Trend        string  `db:"trend" json:"trend"`
}

// UrgentIntervention is a student above the urgent threshold whose
// interventions are still open. RequiredActions holds the distinct
// intervention types already attached.
type UrgentIntervention struct {
	ID                 int64          `db:"id" json:"id"`
	StudentName        string         `db:"student_name" json:"student_name"`
	School             string         `db:"school" json:"school"`
	RiskLevel          float64        `db:"risk_level" json:"risk_level"`
	DaysSinceFlagged   int            `db:"days_since_flagged" json:"days_since_flagged"`
	RequiredActionsRaw sql.NullString `db:"required_actions" json:"-"`
	RequiredActions    []string       `json:"required_actions"`
}

// DashboardData is the aggregated dashboard payload.
type DashboardData struct {
	Statistics               Statistics                `json:"statistics"`
	RiskDistribution         []RiskBucket              `json:"risk_distribution"`
	RecentHighRisk           []HighRiskStudent         `json:"recent_high_risk"`
	InterventionDistribution []InterventionStatusCount `json:"intervention_distribution"`
	GenderStats              []GenderStat              `json:"gender_stats"`
	LocationStats            []LocationStat            `json:"location_stats"`
	AnnualPredictions        []AnnualPrediction        `json:"annual_predictions"`
	NewCases                 []NewCase                 `json:"new_cases"`
	SchoolTrends             []SchoolTrend             `json:"school_trends"`
	UrgentInterventions      []UrgentIntervention      `json:"urgent_interventions"`
}

// FactorAverages holds the mean of each intake factor and the derived risk.
type FactorAverages struct {
	AvgAcademicPerformance float64 `db:"avg_academic_performance" json:"avg_academic_performance"`
	AvgAttendance          float64 `db:"avg_attendance" json:"avg_attendance"`
	AvgSocioEconomic       float64 `db:"avg_socio_economic" json:"avg_socio_economic"`
	AvgFamilySupport       float64 `db:"avg_family_support" json:"avg_family_support"`
	AvgDropoutRisk         float64 `db:"avg_dropout_risk" json:"avg_dropout_risk"`
}

// SocioEconomicBand groups students by socio-economic step.
type SocioEconomicBand struct {
	SocioEconomicStatus int     `db:"socio_economic_status" json:"socio_economic_status"`
	Count               int     `db:"count" json:"count"`
	AvgRisk             float64 `db:"avg_risk" json:"avg_risk"`
}

// FamilySupportBand groups students by family-support step.
type FamilySupportBand struct {
	FamilySupport int     `db:"family_support" json:"family_support"`
	Count         int     `db:"count" json:"count"`
	AvgRisk       float64 `db:"avg_risk" json:"avg_risk"`
}

// PerformanceImpact groups students by academic-performance band.
type PerformanceImpact struct {
	PerformanceLevel string  `db:"performance_level" json:"performance_level"`
	Count            int     `db:"count" json:"count"`
	AvgRisk          float64 `db:"avg_risk" json:"avg_risk"`
}

// AttendanceImpact groups students by attendance band.
type AttendanceImpact struct {
	AttendanceLevel string  `db:"attendance_level" json:"attendance_level"`
	Count           int     `db:"count" json:"count"`
	AvgRisk         float64 `db:"avg_risk" json:"avg_risk"`
}

// FactorData is the risk-factor analysis payload.
type FactorData struct {
	Averages                  FactorAverages      `json:"averages"`
	SocioEconomicDistribution []SocioEconomicBand `json:"socio_economic_distribution"`
	FamilySupportDistribution []FamilySupportBand `json:"family_support_distribution"`
	AcademicPerformanceImpact []PerformanceImpact `json:"academic_performance_impact"`
	AttendanceImpact          []AttendanceImpact  `json:"attendance_impact"`
}
