package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/dropout-watch-api/internal/models"
	appErrors "github.com/noah-isme/dropout-watch-api/pkg/errors"
)

// DashboardRepository runs the aggregate queries behind the dashboard and
// risk-factor analysis endpoints.
type DashboardRepository struct {
	db *sqlx.DB
}

func NewDashboardRepository(db *sqlx.DB) *DashboardRepository {
	return &DashboardRepository{db: db}
}

func (r *DashboardRepository) GetStatistics(ctx context.Context) (*models.Statistics, error) {
	var stats models.Statistics
	query := `SELECT COUNT(*) AS total_students,
			COALESCE(SUM(CASE WHEN dropout_risk >= ? THEN 1 ELSE 0 END), 0) AS high_risk_students,
			COALESCE(AVG(dropout_risk), 0) AS average_risk,
			COALESCE(SUM(CASE WHEN intervention_status = 'Completed' THEN 1 ELSE 0 END), 0) AS completed_interventions,
			COALESCE(SUM(CASE WHEN intervention_status = 'In Progress' THEN 1 ELSE 0 END), 0) AS in_progress_interventions
		FROM students`
	if err := r.db.GetContext(ctx, &stats, query, models.HighRiskThreshold); err != nil {
		return nil, appErrors.Wrap(err, "failed to load statistics")
	}
	return &stats, nil
}

func (r *DashboardRepository) GetRiskDistribution(ctx context.Context) ([]models.RiskBucket, error) {
	buckets := []models.RiskBucket{}
	query := `SELECT CASE
				WHEN dropout_risk < 30 THEN 'Low'
				WHEN dropout_risk < 70 THEN 'Medium'
				ELSE 'High'
			END AS risk_level,
			COUNT(*) AS count
		FROM students
		GROUP BY risk_level`
	if err := r.db.SelectContext(ctx, &buckets, query); err != nil {
		return nil, appErrors.Wrap(err, "failed to load risk distribution")
	}
	return buckets, nil
}

func (r *DashboardRepository) GetRecentHighRisk(ctx context.Context) ([]models.HighRiskStudent, error) {
	students := []models.HighRiskStudent{}
	query := `SELECT id, name, dropout_risk, intervention_status
		FROM students
		WHERE dropout_risk >= ?
		ORDER BY dropout_risk DESC
		LIMIT 5`
	if err := r.db.SelectContext(ctx, &students, query, models.HighRiskThreshold); err != nil {
		return nil, appErrors.Wrap(err, "failed to load high risk students")
	}
	return students, nil
}

func (r *DashboardRepository) GetInterventionDistribution(ctx context.Context) ([]models.InterventionStatusCount, error) {
	counts := []models.InterventionStatusCount{}
	query := `SELECT intervention_status, COUNT(*) AS count
		FROM students
		GROUP BY intervention_status`
	if err := r.db.SelectContext(ctx, &counts, query); err != nil {
		return nil, appErrors.Wrap(err, "failed to load intervention distribution")
	}
	return counts, nil
}

func (r *DashboardRepository) GetGenderStats(ctx context.Context) ([]models.GenderStat, error) {
	stats := []models.GenderStat{}
	query := `SELECT COALESCE(gender, 'Unknown') AS gender,
			COUNT(*) AS total_students,
			COALESCE(SUM(CASE WHEN dropout_risk >= ? THEN 1 ELSE 0 END), 0) AS dropout_count,
			CASE WHEN COUNT(*) > 0
				THEN (SUM(CASE WHEN dropout_risk >= ? THEN 1 ELSE 0 END) / COUNT(*)) * 100
				ELSE 0
			END AS dropout_rate
		FROM students
		GROUP BY gender`
	if err := r.db.SelectContext(ctx, &stats, query,
		models.HighRiskThreshold, models.HighRiskThreshold); err != nil {
		return nil, appErrors.Wrap(err, "failed to load gender stats")
	}
	return stats, nil
}

func (r *DashboardRepository) GetLocationStats(ctx context.Context) ([]models.LocationStat, error) {
	stats := []models.LocationStat{}
	query := `SELECT COALESCE(location_type, 'Unknown') AS location_type,
			COUNT(*) AS total_students,
			COALESCE(SUM(CASE WHEN dropout_risk >= ? THEN 1 ELSE 0 END), 0) AS dropout_count,
			CASE WHEN COUNT(*) > 0
				THEN (SUM(CASE WHEN dropout_risk >= ? THEN 1 ELSE 0 END) / COUNT(*)) * 100
				ELSE 0
			END AS dropout_rate
		FROM students
		GROUP BY location_type`
	if err := r.db.SelectContext(ctx, &stats, query,
		models.HighRiskThreshold, models.HighRiskThreshold); err != nil {
		return nil, appErrors.Wrap(err, "failed to load location stats")
	}
	return stats, nil
}

func (r *DashboardRepository) GetAnnualPredictions(ctx context.Context) ([]models.AnnualPrediction, error) {
	predictions := []models.AnnualPrediction{}
	query := `SELECT COALESCE(YEAR(date_flagged), YEAR(CURDATE())) AS year,
			COUNT(*) AS predicted_cases,
			COALESCE(AVG(dropout_risk), 0) AS average_risk
		FROM students
		WHERE date_flagged IS NOT NULL
		GROUP BY YEAR(date_flagged)
		ORDER BY year`
	if err := r.db.SelectContext(ctx, &predictions, query); err != nil {
		return nil, appErrors.Wrap(err, "failed to load annual predictions")
	}
	return predictions, nil
}

func (r *DashboardRepository) GetNewCases(ctx context.Context) ([]models.NewCase, error) {
	cases := []models.NewCase{}
	query := `SELECT id, name AS student_name, school, risk_factors,
			DATE_FORMAT(date_flagged, '%Y-%m-%d') AS date_flagged
		FROM students
		WHERE date_flagged >= DATE_SUB(CURDATE(), INTERVAL 7 DAY)
		ORDER BY date_flagged DESC
		LIMIT 10`
	if err := r.db.SelectContext(ctx, &cases, query); err != nil {
		return nil, appErrors.Wrap(err, "failed to load new cases")
	}
	return cases, nil
}

func (r *DashboardRepository) GetSchoolTrends(ctx context.Context) ([]models.SchoolTrend, error) {
	trends := []models.SchoolTrend{}
	query := `SELECT s.school_id, s.school_name, s.current_rate, s.previous_rate,
			CASE
				WHEN s.current_rate > s.previous_rate THEN 'increasing'
				WHEN s.current_rate < s.previous_rate THEN 'decreasing'
				ELSE 'stable'
			END AS trend
		FROM (
			SELECT school_id, school_name,
				COALESCE(AVG(CASE WHEN date_flagged >= DATE_SUB(CURDATE(), INTERVAL 3 MONTH) THEN dropout_risk ELSE 0 END), 0) AS current_rate,
				COALESCE(AVG(CASE WHEN date_flagged < DATE_SUB(CURDATE(), INTERVAL 3 MONTH) THEN dropout_risk ELSE 0 END), 0) AS previous_rate
			FROM students
			GROUP BY school_id, school_name
		) s
		WHERE s.current_rate > s.previous_rate
		ORDER BY (s.current_rate - s.previous_rate) DESC
		LIMIT 5`
	if err := r.db.SelectContext(ctx, &trends, query); err != nil {
		return nil, appErrors.Wrap(err, "failed to load school trends")
	}
	return trends, nil
}

func (r *DashboardRepository) GetUrgentInterventions(ctx context.Context) ([]models.UrgentIntervention, error) {
	urgent := []models.UrgentIntervention{}
	query := `SELECT s.id, s.name AS student_name, s.school,
			s.dropout_risk AS risk_level,
			COALESCE(DATEDIFF(CURDATE(), s.date_flagged), 0) AS days_since_flagged,
			GROUP_CONCAT(i.type) AS required_actions
		FROM students s
		LEFT JOIN interventions i ON i.student_id = s.id
		WHERE s.dropout_risk >= ?
		AND (s.intervention_status = 'Pending' OR s.intervention_status = 'In Progress')
		GROUP BY s.id, s.name, s.school, s.dropout_risk, s.date_flagged
		ORDER BY s.dropout_risk DESC, days_since_flagged DESC
		LIMIT 10`
	if err := r.db.SelectContext(ctx, &urgent, query, models.UrgentRiskThreshold); err != nil {
		return nil, appErrors.Wrap(err, "failed to load urgent interventions")
	}
	return urgent, nil
}

func (r *DashboardRepository) GetFactorAverages(ctx context.Context) (*models.FactorAverages, error) {
	var averages models.FactorAverages
	query := `SELECT COALESCE(AVG(academic_performance), 0) AS avg_academic_performance,
			COALESCE(AVG(attendance), 0) AS avg_attendance,
			COALESCE(AVG(socio_economic_status), 0) AS avg_socio_economic,
			COALESCE(AVG(family_support), 0) AS avg_family_support,
			COALESCE(AVG(dropout_risk), 0) AS avg_dropout_risk
		FROM students`
	if err := r.db.GetContext(ctx, &averages, query); err != nil {
		return nil, appErrors.Wrap(err, "failed to load factor averages")
	}
	return &averages, nil
}

func (r *DashboardRepository) GetSocioEconomicDistribution(ctx context.Context) ([]models.SocioEconomicBand, error) {
	bands := []models.SocioEconomicBand{}
	query := `SELECT socio_economic_status, COUNT(*) AS count,
			COALESCE(AVG(dropout_risk), 0) AS avg_risk
		FROM students
		GROUP BY socio_economic_status
		ORDER BY socio_economic_status`
	if err := r.db.SelectContext(ctx, &bands, query); err != nil {
		return nil, appErrors.Wrap(err, "failed to load socio-economic distribution")
	}
	return bands, nil
}

func (r *DashboardRepository) GetFamilySupportDistribution(ctx context.Context) ([]models.FamilySupportBand, error) {
	bands := []models.FamilySupportBand{}
	query := `SELECT family_support, COUNT(*) AS count,
			COALESCE(AVG(dropout_risk), 0) AS avg_risk
		FROM students
		GROUP BY family_support
		ORDER BY family_support`
	if err := r.db.SelectContext(ctx, &bands, query); err != nil {
		return nil, appErrors.Wrap(err, "failed to load family support distribution")
	}
	return bands, nil
}

func (r *DashboardRepository) GetAcademicPerformanceImpact(ctx context.Context) ([]models.PerformanceImpact, error) {
	impact := []models.PerformanceImpact{}
	query := `SELECT CASE
				WHEN academic_performance >= 80 THEN 'Excellent'
				WHEN academic_performance >= 60 THEN 'Good'
				WHEN academic_performance >= 40 THEN 'Fair'
				ELSE 'Poor'
			END AS performance_level,
			COUNT(*) AS count,
			COALESCE(AVG(dropout_risk), 0) AS avg_risk
		FROM students
		GROUP BY performance_level
		ORDER BY CASE performance_level
			WHEN 'Excellent' THEN 1
			WHEN 'Good' THEN 2
			WHEN 'Fair' THEN 3
			ELSE 4
		END`
	if err := r.db.SelectContext(ctx, &impact, query); err != nil {
		return nil, appErrors.Wrap(err, "failed to load academic performance impact")
	}
	return impact, nil
}

func (r *DashboardRepository) GetAttendanceImpact(ctx context.Context) ([]models.AttendanceImpact, error) {
	impact := []models.AttendanceImpact{}
	query := `SELECT CASE
				WHEN attendance >= 90 THEN 'Excellent'
				WHEN attendance >= 75 THEN 'Good'
				WHEN attendance >= 60 THEN 'Fair'
				ELSE 'Poor'
			END AS attendance_level,
			COUNT(*) AS count,
			COALESCE(AVG(dropout_risk), 0) AS avg_risk
		FROM students
		GROUP BY attendance_level
		ORDER BY CASE attendance_level
			WHEN 'Excellent' THEN 1
			WHEN 'Good' THEN 2
			WHEN 'Fair' THEN 3
			ELSE 4
		END`
	if err := r.db.SelectContext(ctx, &impact, query); err != nil {
		return nil, appErrors.Wrap(err, "failed to load attendance impact")
	}
	return impact, nil
}
