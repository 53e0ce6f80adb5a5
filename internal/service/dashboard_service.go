package service

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/dropout-watch-api/internal/models"
	appErrors "github.com/noah-isme/dropout-watch-api/pkg/errors"
)

// DashboardRepository is the aggregate-query surface behind the dashboard.
type DashboardRepository interface {
	GetStatistics(ctx context.Context) (*models.Statistics, error)
	GetRiskDistribution(ctx context.Context) ([]models.RiskBucket, error)
	GetRecentHighRisk(ctx context.Context) ([]models.HighRiskStudent, error)
	GetInterventionDistribution(ctx context.Context) ([]models.InterventionStatusCount, error)
	GetGenderStats(ctx context.Context) ([]models.GenderStat, error)
	GetLocationStats(ctx context.Context) ([]models.LocationStat, error)
	GetAnnualPredictions(ctx context.Context) ([]models.AnnualPrediction, error)
	GetNewCases(ctx context.Context) ([]models.NewCase, error)
	GetSchoolTrends(ctx context.Context) ([]models.SchoolTrend, error)
	GetUrgentInterventions(ctx context.Context) ([]models.UrgentIntervention, error)
	GetFactorAverages(ctx context.Context) (*models.FactorAverages, error)
	GetSocioEconomicDistribution(ctx context.Context) ([]models.SocioEconomicBand, error)
	GetFamilySupportDistribution(ctx context.Context) ([]models.FamilySupportBand, error)
	GetAcademicPerformanceImpact(ctx context.Context) ([]models.PerformanceImpact, error)
	GetAttendanceImpact(ctx context.Context) ([]models.AttendanceImpact, error)
}

type DashboardService struct {
	repo   DashboardRepository
	cache  *CacheService
	logger *zap.Logger
}

func NewDashboardService(repo DashboardRepository, cache *CacheService, logger *zap.Logger) *DashboardService {
	return &DashboardService{repo: repo, cache: cache, logger: logger}
}

// GetDashboard assembles the full dashboard payload, served from cache when
// a fresh copy exists.
func (s *DashboardService) GetDashboard(ctx context.Context) (*models.DashboardData, error) {
	var cached models.DashboardData
	if err := s.cache.GetJSON(ctx, CacheKeyDashboard, &cached); err == nil {
		return &cached, nil
	} else if !appErrors.Is(err, appErrors.ErrCacheMiss) {
		s.logger.Warn("dashboard cache lookup failed", zap.Error(err))
	}

	stats, err := s.repo.GetStatistics(ctx)
	if err != nil {
		return nil, err
	}
	distribution, err := s.repo.GetRiskDistribution(ctx)
	if err != nil {
		return nil, err
	}
	highRisk, err := s.repo.GetRecentHighRisk(ctx)
	if err != nil {
		return nil, err
	}
	interventions, err := s.repo.GetInterventionDistribution(ctx)
	if err != nil {
		return nil, err
	}
	genderStats, err := s.repo.GetGenderStats(ctx)
	if err != nil {
		return nil, err
	}
	locationStats, err := s.repo.GetLocationStats(ctx)
	if err != nil {
		return nil, err
	}
	predictions, err := s.repo.GetAnnualPredictions(ctx)
	if err != nil {
		return nil, err
	}
	newCases, err := s.repo.GetNewCases(ctx)
	if err != nil {
		return nil, err
	}
	trends, err := s.repo.GetSchoolTrends(ctx)
	if err != nil {
		return nil, err
	}
	urgent, err := s.repo.GetUrgentInterventions(ctx)
	if err != nil {
		return nil, err
	}

	data := &models.DashboardData{
		Statistics:               *stats,
		RiskDistribution:         distribution,
		RecentHighRisk:           highRisk,
		InterventionDistribution: interventions,
		GenderStats:              fillGenderDefaults(genderStats),
		LocationStats:            fillLocationDefaults(locationStats),
		AnnualPredictions:        fillPredictionDefaults(predictions),
		NewCases:                 newCases,
		SchoolTrends:             trends,
		UrgentInterventions:      splitRequiredActions(urgent),
	}

	s.cache.SetJSON(ctx, CacheKeyDashboard, data)
	return data, nil
}

// GetFactors assembles the risk-factor analysis payload.
func (s *DashboardService) GetFactors(ctx context.Context) (*models.FactorData, error) {
	var cached models.FactorData
	if err := s.cache.GetJSON(ctx, CacheKeyFactors, &cached); err == nil {
		return &cached, nil
	}

	averages, err := s.repo.GetFactorAverages(ctx)
	if err != nil {
		return nil, err
	}
	socioEconomic, err := s.repo.GetSocioEconomicDistribution(ctx)
	if err != nil {
		return nil, err
	}
	familySupport, err := s.repo.GetFamilySupportDistribution(ctx)
	if err != nil {
		return nil, err
	}
	academic, err := s.repo.GetAcademicPerformanceImpact(ctx)
	if err != nil {
		return nil, err
	}
	attendance, err := s.repo.GetAttendanceImpact(ctx)
	if err != nil {
		return nil, err
	}

	data := &models.FactorData{
		Averages:                  *averages,
		SocioEconomicDistribution: socioEconomic,
		FamilySupportDistribution: familySupport,
		AcademicPerformanceImpact: academic,
		AttendanceImpact:          attendance,
	}

	s.cache.SetJSON(ctx, CacheKeyFactors, data)
	return data, nil
}

// An empty dataset still renders charts: the known category axes come back
// zero-filled instead of absent.
func fillGenderDefaults(stats []models.GenderStat) []models.GenderStat {
	if len(stats) > 0 {
		return stats
	}
	return []models.GenderStat{
		{Gender: "Male"},
		{Gender: "Female"},
	}
}

func fillLocationDefaults(stats []models.LocationStat) []models.LocationStat {
	if len(stats) > 0 {
		return stats
	}
	return []models.LocationStat{
		{LocationType: "Urban"},
		{LocationType: "Rural"},
	}
}

func fillPredictionDefaults(predictions []models.AnnualPrediction) []models.AnnualPrediction {
	if len(predictions) > 0 {
		return predictions
	}
	year := time.Now().Year()
	return []models.AnnualPrediction{
		{Year: year},
		{Year: year + 1},
	}
}

func splitRequiredActions(urgent []models.UrgentIntervention) []models.UrgentIntervention {
	for i := range urgent {
		if urgent[i].RequiredActionsRaw.Valid && urgent[i].RequiredActionsRaw.String != "" {
			urgent[i].RequiredActions = strings.Split(urgent[i].RequiredActionsRaw.String, ",")
		} else {
			urgent[i].RequiredActions = []string{}
		}
	}
	return urgent
}
