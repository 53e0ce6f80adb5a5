package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/dropout-watch-api/internal/models"
	appErrors "github.com/noah-isme/dropout-watch-api/pkg/errors"
)

type mockStudentRepo struct {
	students      []models.Student
	created       *models.Student
	statusUpdates map[int64]string
	listErr       error
}

func (m *mockStudentRepo) List(_ context.Context, filter models.StudentFilter) ([]models.Student, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	if !filter.HighRisk {
		return m.students, nil
	}
	out := []models.Student{}
	for _, s := range m.students {
		if s.DropoutRisk >= models.HighRiskThreshold {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *mockStudentRepo) GetByID(_ context.Context, id int64) (*models.Student, error) {
	for i := range m.students {
		if m.students[i].ID == id {
			return &m.students[i], nil
		}
	}
	return nil, appErrors.ErrNotFound
}

func (m *mockStudentRepo) Create(_ context.Context, s *models.Student) error {
	s.ID = int64(len(m.students) + 1)
	m.created = s
	m.students = append(m.students, *s)
	return nil
}

func (m *mockStudentRepo) UpdateInterventionStatus(_ context.Context, id int64, status string) error {
	if m.statusUpdates == nil {
		m.statusUpdates = map[int64]string{}
	}
	m.statusUpdates[id] = status
	return nil
}

func newTestCache() *CacheService {
	return NewCacheService(nil, 0, nil, zap.NewNop())
}

func TestStudentServiceCreateDerivesRisk(t *testing.T) {
	repo := &mockStudentRepo{}
	svc := NewStudentService(repo, newTestCache(), zap.NewNop())

	student, err := svc.Create(context.Background(), models.CreateStudentRequest{
		Name:                "Andi",
		Age:                 16,
		Gender:              "Male",
		AcademicPerformance: 40,
		Attendance:          50,
		SocioEconomicStatus: 4,
		FamilySupport:       3,
	})
	require.NoError(t, err)
	assert.InDelta(t, 98.0, student.DropoutRisk, 0.0001)
	assert.Equal(t, models.InterventionStatusPending, student.InterventionStatus)
	require.NotNil(t, repo.created)
	assert.InDelta(t, 98.0, repo.created.DropoutRisk, 0.0001)
}

func TestStudentServiceCreateSaturatesAtWorstFactors(t *testing.T) {
	repo := &mockStudentRepo{}
	svc := NewStudentService(repo, newTestCache(), zap.NewNop())

	student, err := svc.Create(context.Background(), models.CreateStudentRequest{
		Name:                "Budi",
		Age:                 17,
		Gender:              "Male",
		AcademicPerformance: 0,
		Attendance:          0,
		SocioEconomicStatus: 5,
		FamilySupport:       5,
	})
	require.NoError(t, err)
	assert.InDelta(t, 100.0, student.DropoutRisk, 0.0001)
}

func TestStudentServiceCreateRejectsInvalidFactors(t *testing.T) {
	svc := NewStudentService(&mockStudentRepo{}, newTestCache(), zap.NewNop())

	cases := []struct {
		name string
		req  models.CreateStudentRequest
	}{
		{
			name: "academic performance out of range",
			req: models.CreateStudentRequest{
				Name: "Andi", Age: 16, Gender: "Male",
				AcademicPerformance: 120, Attendance: 50,
				SocioEconomicStatus: 2, FamilySupport: 2,
			},
		},
		{
			name: "socio economic status below domain",
			req: models.CreateStudentRequest{
				Name: "Andi", Age: 16, Gender: "Male",
				AcademicPerformance: 50, Attendance: 50,
				SocioEconomicStatus: 0, FamilySupport: 2,
			},
		},
		{
			name: "family support above domain",
			req: models.CreateStudentRequest{
				Name: "Andi", Age: 16, Gender: "Male",
				AcademicPerformance: 50, Attendance: 50,
				SocioEconomicStatus: 2, FamilySupport: 6,
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), tc.req)
			assert.True(t, appErrors.Is(err, appErrors.ErrValidation))
		})
	}
}

func TestStudentServiceListHighRiskFilter(t *testing.T) {
	repo := &mockStudentRepo{students: []models.Student{
		{ID: 1, DropoutRisk: 45},
		{ID: 2, DropoutRisk: 78},
		{ID: 3, DropoutRisk: 91},
	}}
	svc := NewStudentService(repo, newTestCache(), zap.NewNop())

	all, err := svc.List(context.Background(), models.StudentFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	high, err := svc.List(context.Background(), models.StudentFilter{HighRisk: true})
	require.NoError(t, err)
	require.Len(t, high, 2)
	for _, s := range high {
		assert.GreaterOrEqual(t, s.DropoutRisk, models.HighRiskThreshold)
	}
}

func TestStudentServiceUpdateStatus(t *testing.T) {
	repo := &mockStudentRepo{students: []models.Student{{ID: 4}}}
	svc := NewStudentService(repo, newTestCache(), zap.NewNop())

	err := svc.UpdateStatus(context.Background(), models.UpdateStudentStatusRequest{
		ID:                 4,
		InterventionStatus: models.InterventionStatusInProgress,
	})
	require.NoError(t, err)
	assert.Equal(t, models.InterventionStatusInProgress, repo.statusUpdates[4])
}

func TestStudentServiceUpdateStatusRejectsUnknownState(t *testing.T) {
	svc := NewStudentService(&mockStudentRepo{}, newTestCache(), zap.NewNop())

	err := svc.UpdateStatus(context.Background(), models.UpdateStudentStatusRequest{
		ID:                 4,
		InterventionStatus: "Escalated",
	})
	assert.True(t, appErrors.Is(err, appErrors.ErrValidation))
}
