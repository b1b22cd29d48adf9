package service

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/chainworks/retail-ops-api/internal/dto"
	"github.com/chainworks/retail-ops-api/internal/models"
	appErrors "github.com/chainworks/retail-ops-api/pkg/errors"
	"github.com/chainworks/retail-ops-api/pkg/export"
	"github.com/chainworks/retail-ops-api/pkg/jobs"
	"github.com/chainworks/retail-ops-api/pkg/storage"
)

const jobTypeInspectionPDF = "inspection_pdf"

type reportInspectionReader interface {
	FindByID(ctx context.Context, id string) (*models.InspectionDetail, error)
}

type reportAssignmentReader interface {
	ListAssignments(ctx context.Context, campaignID string) ([]models.ScheduleAssignmentDetail, error)
}

// ReportService builds downloadable exports: inspection PDFs rendered
// asynchronously through the job queue, and campaign schedule CSVs rendered
// inline.
type ReportService struct {
	inspections reportInspectionReader
	assignments reportAssignmentReader
	storage     *storage.LocalStorage
	signer      *storage.SignedURLSigner
	pdf         *export.PDFExporter
	csv         *export.CSVExporter
	queue       *jobs.Queue
	urlTTL      time.Duration
	logger      *zap.Logger
}

// NewReportService constructs a ReportService and its backing queue. Start
// must be called before reports can be enqueued.
func NewReportService(
	inspections reportInspectionReader,
	assignments reportAssignmentReader,
	store *storage.LocalStorage,
	signer *storage.SignedURLSigner,
	queueCfg jobs.QueueConfig,
	urlTTL time.Duration,
	logger *zap.Logger,
) *ReportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &ReportService{
		inspections: inspections,
		assignments: assignments,
		storage:     store,
		signer:      signer,
		pdf:         export.NewPDFExporter(),
		csv:         export.NewCSVExporter(),
		urlTTL:      urlTTL,
		logger:      logger,
	}
	queueCfg.Logger = logger
	s.queue = jobs.NewQueue("reports", s.handleJob, queueCfg)
	return s
}

// Start launches the report workers.
func (s *ReportService) Start(ctx context.Context) {
	s.queue.Start(ctx)
}

// Stop drains the report workers.
func (s *ReportService) Stop() {
	s.queue.Stop()
}

// EnqueueInspectionReport schedules an async PDF build for an inspection and
// returns the signed download reference immediately.
func (s *ReportService) EnqueueInspectionReport(ctx context.Context, inspectionID string) (*dto.InspectionReportResponse, error) {
	if _, err := s.inspections.FindByID(ctx, inspectionID); err != nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "inspection not found")
	}

	reportID := uuid.NewString()
	relPath := fmt.Sprintf("inspections/%s.pdf", reportID)

	token, _, err := s.signer.Generate(reportID, relPath)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "sign report url")
	}

	job := jobs.Job{
		ID:   reportID,
		Type: jobTypeInspectionPDF,
		Payload: inspectionReportPayload{
			InspectionID: inspectionID,
			RelPath:      relPath,
		},
	}
	if err := s.queue.Enqueue(job); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "enqueue report")
	}

	return &dto.InspectionReportResponse{
		ReportID:    reportID,
		DownloadURL: "/api/v1/reports/download/" + token,
		ExpiresIn:   s.urlTTL.String(),
	}, nil
}

// Download validates a signed token and opens the stored report file. The
// caller owns closing the file.
func (s *ReportService) Download(token string) (*os.File, string, error) {
	_, relPath, _, err := s.signer.Parse(token)
	if err != nil {
		return nil, "", appErrors.Clone(appErrors.ErrUnauthorized, "invalid or expired download token")
	}
	file, err := s.storage.Open(relPath)
	if err != nil {
		return nil, "", appErrors.Clone(appErrors.ErrNotFound, "report not ready or no longer available")
	}
	return file, relPath, nil
}

// ExportScheduleCSV renders a campaign's persisted schedule as CSV bytes.
func (s *ReportService) ExportScheduleCSV(ctx context.Context, campaignID string) ([]byte, error) {
	assignments, err := s.assignments.ListAssignments(ctx, campaignID)
	if err != nil {
		return nil, err
	}

	data := export.Dataset{
		Headers: []string{"Store", "Supervisor", "Activity Date"},
		Rows:    make([]map[string]string, 0, len(assignments)),
	}
	for _, a := range assignments {
		supervisor := ""
		if a.SupervisorID != nil {
			supervisor = *a.SupervisorID
		}
		data.Rows = append(data.Rows, map[string]string{
			"Store":         a.StoreName,
			"Supervisor":    supervisor,
			"Activity Date": a.ActivityDate.Format("2006-01-02"),
		})
	}
	payload, err := s.csv.Render(data)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "render csv")
	}
	return payload, nil
}

// CleanupExpired deletes report files older than the signed-URL TTL.
func (s *ReportService) CleanupExpired() {
	deleted, err := s.storage.CleanupOlderThan(s.urlTTL)
	if err != nil {
		s.logger.Warn("report cleanup failed", zap.Error(err))
		return
	}
	if len(deleted) > 0 {
		s.logger.Info("expired reports removed", zap.Int("count", len(deleted)))
	}
}

type inspectionReportPayload struct {
	InspectionID string
	RelPath      string
}

func (s *ReportService) handleJob(ctx context.Context, job jobs.Job) error {
	payload, ok := job.Payload.(inspectionReportPayload)
	if !ok {
		return fmt.Errorf("unexpected payload for job %s", job.ID)
	}

	detail, err := s.inspections.FindByID(ctx, payload.InspectionID)
	if err != nil {
		return fmt.Errorf("load inspection %s: %w", payload.InspectionID, err)
	}

	data := export.Dataset{
		Headers: []string{"Category", "Criterion", "Score", "Weight"},
		Rows:    make([]map[string]string, 0, len(detail.Items)),
	}
	for _, item := range detail.Items {
		data.Rows = append(data.Rows, map[string]string{
			"Category":  item.Category,
			"Criterion": item.Criterion,
			"Score":     fmt.Sprintf("%.1f", item.Score),
			"Weight":    fmt.Sprintf("%.1f", item.Weight),
		})
	}
	title := fmt.Sprintf("Inspection %s - score %.1f (%s)", detail.VisitDate.Format("2006-01-02"), detail.TotalScore, detail.Grade)

	rendered, err := s.pdf.Render(data, title)
	if err != nil {
		return fmt.Errorf("render inspection pdf: %w", err)
	}
	if _, err := s.storage.Save(payload.RelPath, rendered); err != nil {
		return fmt.Errorf("store inspection pdf: %w", err)
	}

	s.logger.Info("inspection report built",
		zap.String("report_id", job.ID),
		zap.String("inspection_id", payload.InspectionID))
	return nil
}
