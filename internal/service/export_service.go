package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/asistapp/asistencia-api/internal/models"
	appErrors "github.com/asistapp/asistencia-api/pkg/errors"
	"github.com/asistapp/asistencia-api/pkg/export"
)

// Export formats accepted by the roster export endpoint.
const (
	ExportFormatCSV = "csv"
	ExportFormatPDF = "pdf"
)

// ExportResult carries the rendered document with its HTTP metadata.
type ExportResult struct {
	Content     []byte
	ContentType string
	Filename    string
}

type overviewProvider interface {
	SubjectOverview(ctx context.Context, teacherID, subjectID int64) ([]models.SubjectSessionAttendanceRow, error)
}

// ExportService renders a subject's attendance roster as CSV or PDF.
type ExportService struct {
	overview overviewProvider
	csv      *export.CSVExporter
	pdf      *export.PDFExporter
	logger   *zap.Logger
}

// NewExportService constructs the export service.
func NewExportService(overview overviewProvider, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		overview: overview,
		csv:      export.NewCSVExporter(),
		pdf:      export.NewPDFExporter(),
		logger:   logger,
	}
}

var rosterHeaders = []string{"Clase", "Fecha", "Estudiante", "Asistencia", "Fecha registro"}

// RenderRoster builds the roster dataset for (teacher, subject) and renders
// it in the requested format. An unknown format is a 400; a subject with no
// rows is a 404.
func (s *ExportService) RenderRoster(ctx context.Context, teacherID, subjectID int64, format string) (*ExportResult, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if format != ExportFormatCSV && format != ExportFormatPDF {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown export format, expected csv or pdf")
	}

	rows, err := s.overview.SubjectOverview(ctx, teacherID, subjectID)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "no attendance records for subject")
	}

	data := export.Dataset{
		Headers:    rosterHeaders,
		Rows:       make([]map[string]string, 0, len(rows)),
		HeaderFill: rows[0].PrimaryColor,
		HeaderText: models.ContrastTextColor(rows[0].PrimaryColor),
	}
	for _, row := range rows {
		presence := "Ausente"
		if row.Present == models.PresencePresent {
			presence = "Presente"
		}
		data.Rows = append(data.Rows, map[string]string{
			"Clase":          strconv.FormatInt(row.SessionID, 10),
			"Fecha":          row.SessionDate.Format(models.DateLayout),
			"Estudiante":     strconv.FormatInt(row.StudentID, 10),
			"Asistencia":     presence,
			"Fecha registro": row.RecordDate.Format(models.DateLayout),
		})
	}

	title := fmt.Sprintf("%s (%s) - %s", rows[0].SubjectName, rows[0].ShortCode, rows[0].SectionLabel)

	switch format {
	case ExportFormatCSV:
		content, err := s.csv.Render(data)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv export")
		}
		return &ExportResult{
			Content:     content,
			ContentType: "text/csv",
			Filename:    exportFilename(subjectID, ExportFormatCSV),
		}, nil
	default:
		content, err := s.pdf.Render(data, title)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf export")
		}
		return &ExportResult{
			Content:     content,
			ContentType: "application/pdf",
			Filename:    exportFilename(subjectID, ExportFormatPDF),
		}, nil
	}
}

func exportFilename(subjectID int64, format string) string {
	return fmt.Sprintf("asistencia_asignatura_%d.%s", subjectID, format)
}
