package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/dropout-watch-api/internal/models"
	appErrors "github.com/noah-isme/dropout-watch-api/pkg/errors"
	"github.com/noah-isme/dropout-watch-api/pkg/export"
	"github.com/noah-isme/dropout-watch-api/pkg/storage"
)

// Report output formats.
const (
	ReportFormatCSV = "csv"
	ReportFormatPDF = "pdf"
)

// reportHighRisk names the high-risk roster export in download tokens.
const reportHighRisk = "high-risk"

// Report is a rendered export ready to stream to the client.
type Report struct {
	ContentType string
	Filename    string
	Body        []byte
}

// ReportService renders the high-risk student roster as a downloadable
// file. Archive and signer are optional: without an archive nothing is
// persisted, without a signer shareable links are unavailable.
type ReportService struct {
	students StudentRepository
	archive  *storage.Archive
	signer   *storage.TokenSigner
	csv      *export.CSVExporter
	pdf      *export.PDFExporter
	logger   *zap.Logger
}

func NewReportService(students StudentRepository, archive *storage.Archive, signer *storage.TokenSigner, logger *zap.Logger) *ReportService {
	return &ReportService{
		students: students,
		archive:  archive,
		signer:   signer,
		csv:      export.NewCSVExporter(),
		pdf:      export.NewPDFExporter(),
		logger:   logger,
	}
}

var highRiskReportHeaders = []string{
	"ID", "Name", "School", "Dropout Risk", "Intervention Status",
}

// HighRiskReport exports every student at or above the high-risk
// threshold in the requested format.
func (s *ReportService) HighRiskReport(ctx context.Context, format string) (*Report, error) {
	if format != ReportFormatCSV && format != ReportFormatPDF {
		return nil, appErrors.ErrValidation.Clone("format must be csv or pdf")
	}

	students, err := s.students.List(ctx, models.StudentFilter{HighRisk: true})
	if err != nil {
		return nil, err
	}

	dataset := export.Dataset{
		Title:   "High Risk Students",
		Headers: highRiskReportHeaders,
	}
	for _, st := range students {
		dataset.Rows = append(dataset.Rows, []string{
			strconv.FormatInt(st.ID, 10),
			st.Name,
			st.SchoolName,
			strconv.FormatFloat(st.DropoutRisk, 'f', 1, 64),
			st.InterventionStatus,
		})
	}

	var report Report
	switch format {
	case ReportFormatCSV:
		body, err := s.csv.Render(dataset)
		if err != nil {
			return nil, appErrors.Wrap(err, "failed to render csv report")
		}
		report = Report{
			ContentType: "text/csv",
			Filename:    "high-risk-students.csv",
			Body:        body,
		}
	case ReportFormatPDF:
		body, err := s.pdf.Render(dataset)
		if err != nil {
			return nil, appErrors.Wrap(err, "failed to render pdf report")
		}
		report = Report{
			ContentType: "application/pdf",
			Filename:    "high-risk-students.pdf",
			Body:        body,
		}
	}

	if s.archive != nil {
		name := fmt.Sprintf("high-risk-students-%s.%s", time.Now().Format("20060102-150405"), format)
		if _, err := s.archive.Save(name, report.Body); err != nil {
			// The download still succeeds; only the archived copy is lost.
			s.logger.Warn("failed to archive report", zap.String("file", name), zap.Error(err))
		}
	}

	s.logger.Info("high risk report rendered",
		zap.String("format", format),
		zap.Int("students", len(students)))
	return &report, nil
}

// SignedLink mints a time-limited download token for the high-risk
// roster, so the file can be fetched without a session header.
func (s *ReportService) SignedLink(format string) (string, time.Time, error) {
	if format != ReportFormatCSV && format != ReportFormatPDF {
		return "", time.Time{}, appErrors.ErrValidation.Clone("format must be csv or pdf")
	}
	if s.signer == nil {
		return "", time.Time{}, appErrors.ErrConfiguration.Clone("report links are not configured")
	}
	return s.signer.Generate(reportHighRisk, format)
}

// ReportByToken validates a signed download token and renders the report
// it names.
func (s *ReportService) ReportByToken(ctx context.Context, token string) (*Report, error) {
	if s.signer == nil {
		return nil, appErrors.ErrConfiguration.Clone("report links are not configured")
	}
	report, format, _, err := s.signer.Parse(token)
	if err != nil {
		return nil, appErrors.ErrUnauthorized.Clone("Invalid or expired download token")
	}
	if report != reportHighRisk {
		return nil, appErrors.ErrUnauthorized.Clone("Invalid or expired download token")
	}
	return s.HighRiskReport(ctx, format)
}
