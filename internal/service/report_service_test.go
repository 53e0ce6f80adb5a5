package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/dropout-watch-api/internal/models"
	appErrors "github.com/noah-isme/dropout-watch-api/pkg/errors"
	"github.com/noah-isme/dropout-watch-api/pkg/storage"
)

func reportTestRepo() *mockStudentRepo {
	return &mockStudentRepo{students: []models.Student{
		{ID: 1, Name: "Low Risk", SchoolName: "SMA 1", DropoutRisk: 30, InterventionStatus: models.InterventionStatusPending},
		{ID: 2, Name: "High Risk", SchoolName: "SMA 2", DropoutRisk: 85, InterventionStatus: models.InterventionStatusInProgress},
	}}
}

func TestReportServiceCSVContainsHighRiskOnly(t *testing.T) {
	svc := NewReportService(reportTestRepo(), nil, nil, zap.NewNop())

	report, err := svc.HighRiskReport(context.Background(), ReportFormatCSV)
	require.NoError(t, err)
	assert.Equal(t, "text/csv", report.ContentType)
	assert.Equal(t, "high-risk-students.csv", report.Filename)

	body := string(report.Body)
	assert.Contains(t, body, "ID,Name,School,Dropout Risk,Intervention Status")
	assert.Contains(t, body, "High Risk")
	assert.Contains(t, body, "85.0")
	assert.NotContains(t, body, "Low Risk")
}

func TestReportServicePDF(t *testing.T) {
	svc := NewReportService(reportTestRepo(), nil, nil, zap.NewNop())

	report, err := svc.HighRiskReport(context.Background(), ReportFormatPDF)
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", report.ContentType)
	assert.True(t, strings.HasPrefix(string(report.Body), "%PDF"))
}

func TestReportServiceRejectsUnknownFormat(t *testing.T) {
	svc := NewReportService(reportTestRepo(), nil, nil, zap.NewNop())

	_, err := svc.HighRiskReport(context.Background(), "xlsx")
	assert.True(t, appErrors.Is(err, appErrors.ErrValidation))
}

func TestReportServiceArchivesCopy(t *testing.T) {
	archive, err := storage.NewArchive(t.TempDir())
	require.NoError(t, err)
	svc := NewReportService(reportTestRepo(), archive, nil, zap.NewNop())

	_, err = svc.HighRiskReport(context.Background(), ReportFormatCSV)
	require.NoError(t, err)

	deleted, err := archive.CleanupOlderThan(-time.Minute)
	require.NoError(t, err)
	require.Len(t, deleted, 1)
	assert.True(t, strings.HasPrefix(deleted[0], "high-risk-students-"))
}

func TestReportServiceSignedLinkRoundTrip(t *testing.T) {
	signer := storage.NewTokenSigner("secret", time.Hour)
	svc := NewReportService(reportTestRepo(), nil, signer, zap.NewNop())

	token, expiresAt, err := svc.SignedLink(ReportFormatCSV)
	require.NoError(t, err)
	assert.False(t, expiresAt.IsZero())

	report, err := svc.ReportByToken(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "high-risk-students.csv", report.Filename)

	_, err = svc.ReportByToken(context.Background(), token+"tampered")
	assert.True(t, appErrors.Is(err, appErrors.ErrUnauthorized))
}

func TestReportServiceSignedLinkUnconfigured(t *testing.T) {
	svc := NewReportService(reportTestRepo(), nil, nil, zap.NewNop())

	_, _, err := svc.SignedLink(ReportFormatCSV)
	assert.True(t, appErrors.Is(err, appErrors.ErrConfiguration))
}
