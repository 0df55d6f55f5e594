package service

import (
	"context"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/nasma-hq/nasma-insights-api/internal/models"
	"github.com/nasma-hq/nasma-insights-api/pkg/export"
)

// ExportServiceParams bundles dependencies for NewExportService.
type ExportServiceParams struct {
	Messages *MessageService
	Adoption *AdoptionService
	CSV      *export.CSVExporter
	PDF      *export.PDFExporter
	Logger   *zap.Logger
}

// ExportService renders selected reports as downloadable files.
type ExportService struct {
	messages *MessageService
	adoption *AdoptionService
	csv      *export.CSVExporter
	pdf      *export.PDFExporter
	logger   *zap.Logger
}

// NewExportService constructs the service.
func NewExportService(params ExportServiceParams) *ExportService {
	if params.Logger == nil {
		params.Logger = zap.NewNop()
	}
	if params.CSV == nil {
		params.CSV = export.NewCSVExporter()
	}
	if params.PDF == nil {
		params.PDF = export.NewPDFExporter()
	}
	return &ExportService{
		messages: params.Messages,
		adoption: params.Adoption,
		csv:      params.CSV,
		pdf:      params.PDF,
		logger:   params.Logger,
	}
}

// MessagesCSV renders the per-user monthly message breakdown as CSV.
func (s *ExportService) MessagesCSV(ctx context.Context, window models.TimeRange) ([]byte, error) {
	summary := s.messages.MessagesSummary(ctx, window)

	data := export.Dataset{
		Headers: []string{"month", "user_name", "messages_sent"},
		Rows:    make([][]string, 0, len(summary.UserBreakdown)),
	}
	for _, row := range summary.UserBreakdown {
		data.Rows = append(data.Rows, []string{row.Month, row.UserName, strconv.Itoa(row.MessagesSent)})
	}
	return s.csv.Render(data)
}

// AdoptionPDF renders the department adoption report as PDF.
func (s *ExportService) AdoptionPDF(ctx context.Context, window models.TimeRange) ([]byte, error) {
	rows := s.adoption.AdoptionByDepartment(ctx, window)

	data := export.Dataset{
		Headers: []string{"Department", "Active users", "Total employees", "Adoption %"},
		Rows:    make([][]string, 0, len(rows)),
	}
	for _, row := range rows {
		data.Rows = append(data.Rows, []string{
			row.Department,
			strconv.Itoa(row.ActiveUsers),
			strconv.Itoa(row.TotalEmployees),
			fmt.Sprintf("%.1f", row.AdoptionRatePercent),
		})
	}
	return s.pdf.Render(data, "Nasma Adoption by Department")
}
