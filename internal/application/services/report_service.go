package services

import (
	"strings"
	"time"

	"github.com/Engnr-Qasim/dreamers-app/internal/domain/engagement"
	"github.com/Engnr-Qasim/dreamers-app/internal/domain/session"
	"github.com/Engnr-Qasim/dreamers-app/internal/infrastructure/email"
	"github.com/Engnr-Qasim/dreamers-app/internal/infrastructure/messaging"
	"github.com/Engnr-Qasim/dreamers-app/internal/infrastructure/observability/logging"
	"github.com/Engnr-Qasim/dreamers-app/internal/infrastructure/observability/performance"
	"github.com/Engnr-Qasim/dreamers-app/internal/infrastructure/security"
)

// SubmitReportInput carries the report form fields. The photo bytes, when
// present, are already base64-encoded; only the filename is persisted.
type SubmitReportInput struct {
	Email        string
	Type         string
	Location     string
	Description  string
	Priority     string
	PhotoName    string
	PhotoContent string
}

// ReportService handles issue report submission: validate, append to the
// persisted sequence, notify, broadcast fresh progress.
type ReportService struct {
	reports     engagement.ReportRepository
	progress    *ProgressService
	notifier    *NotificationService
	broadcaster *messaging.ProgressBroadcaster
	logger      *logging.ChanneledLogger
	perfTracker *performance.Tracker
}

// NewReportService creates the report service with injected dependencies.
func NewReportService(reports engagement.ReportRepository, progress *ProgressService, notifier *NotificationService, broadcaster *messaging.ProgressBroadcaster, logger *logging.ChanneledLogger, perfTracker *performance.Tracker) *ReportService {
	return &ReportService{
		reports:     reports,
		progress:    progress,
		notifier:    notifier,
		broadcaster: broadcaster,
		logger:      logger,
		perfTracker: perfTracker,
	}
}

// Submit appends one immutable report to the sequence. The submitter name is
// always copied from the session profile at submission time; the report email
// falls back to the profile email when the form left it empty.
func (s *ReportService) Submit(sess *session.Session, input SubmitReportInput) (engagement.Report, error) {
	start := time.Now()
	marker := s.perfTracker.StartOperation("submit_report")
	defer marker.Complete()

	if sess == nil {
		marker.SetError(ErrLoginRequired)
		return engagement.Report{}, ErrLoginRequired
	}

	category, ok := engagement.ParseCategory(input.Type)
	if !ok {
		marker.SetError(ErrUnknownCategory)
		return engagement.Report{}, ErrUnknownCategory
	}

	reportEmail := strings.TrimSpace(input.Email)
	if reportEmail == "" {
		reportEmail = sess.Profile.Email
	}

	photo := input.PhotoName
	if photo == "" {
		photo = engagement.NoPhoto
	}

	report := engagement.Report{
		ID:          security.GenerateULID(),
		Name:        sess.Profile.Name,
		Email:       reportEmail,
		Type:        category,
		Location:    input.Location,
		Photo:       photo,
		Description: input.Description,
		Priority:    input.Priority,
	}

	if err := s.reports.Append(report); err != nil {
		s.logger.Reports().Error("Failed to persist report", "error", err.Error())
		marker.SetError(err)
		return engagement.Report{}, err
	}

	params := email.ReportParams{
		FromName:    report.Name,
		FromEmail:   report.Email,
		IssueType:   string(report.Type),
		Location:    report.Location,
		Description: report.Description,
		Priority:    report.Priority,
	}
	if input.PhotoName != "" && input.PhotoContent != "" {
		params.Attachment = &email.Attachment{
			Filename: input.PhotoName,
			Content:  input.PhotoContent,
		}
	}
	s.notifier.DispatchReport(params)

	s.broadcastProgress()

	s.logger.Reports().Info("Report submitted", "reportId", report.ID, "type", string(report.Type), "name", report.Name, "duration", time.Since(start))
	marker.SetSuccess(true)
	return report, nil
}

// ListForUser returns the reports submitted under the session's name.
func (s *ReportService) ListForUser(sess *session.Session) ([]engagement.Report, error) {
	if sess == nil {
		return nil, ErrLoginRequired
	}
	return s.reports.ListByName(sess.Profile.Name)
}

func (s *ReportService) broadcastProgress() {
	progress, err := s.progress.CategoryProgress()
	if err != nil {
		s.logger.Progress().Error("Failed to compute progress for broadcast", "error", err.Error())
		return
	}
	s.broadcaster.Broadcast(progress)
}
