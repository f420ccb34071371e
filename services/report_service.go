package services

import (
	"fmt"
	"log"
	"net/http"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ecotrackhq/ecotrack/config"
	"github.com/ecotrackhq/ecotrack/db"
	errs "github.com/ecotrackhq/ecotrack/errors"
	"github.com/ecotrackhq/ecotrack/models"
)

// statusUpdateAttempts bounds the conditional-update retry when a concurrent
// writer moves the status between our read and our write.
const statusUpdateAttempts = 3

type ReportService interface {
	CreateReport(user *models.User, req *models.CreateReportRequest) (*models.Report, error)
	GetReport(reportID uuid.UUID) (*models.Report, error)
	GetAllReports(page int) ([]models.Report, error)
	GetReportsByStatus(status string, page int) ([]models.Report, error)
	GetReportsByReporter(userID uint, page int) ([]models.Report, error)
	UpdateStatus(actor *models.User, reportID uuid.UUID, newStatus string) (*models.Report, error)
	DeleteReport(actor *models.User, reportID uuid.UUID) (*models.Report, error)
}

type reportService struct {
	Config     *config.Config
	reportRepo db.ReportRepository
	fanout     FanoutService
	audit      AuditService
}

// NewReportService instantiates a ReportService
func NewReportService(reportRepo db.ReportRepository, fanout FanoutService, audit AuditService, conf *config.Config) ReportService {
	return &reportService{
		Config:     conf,
		reportRepo: reportRepo,
		fanout:     fanout,
		audit:      audit,
	}
}

// CreateReport validates the input, persists the report in its initial state,
// then fans out notifications and writes the audit trail. The side effects
// run only after the report has committed and cannot fail the request.
func (s *reportService) CreateReport(user *models.User, req *models.CreateReportRequest) (*models.Report, error) {
	severity := models.ReportSeverity(req.Severity)
	if !severity.Valid() {
		return nil, errs.New(fmt.Sprintf("unknown severity %q", req.Severity), http.StatusBadRequest)
	}

	exists, err := s.reportRepo.IssueTypeExists(req.IssueTypeID)
	if err != nil {
		log.Printf("CreateReport: issue type lookup failed: %v", err)
		return nil, errs.ErrInternalServerError
	}
	if !exists {
		return nil, errs.New(fmt.Sprintf("unknown issue type %d", req.IssueTypeID), http.StatusBadRequest)
	}

	report := &models.Report{
		ID:           uuid.New(),
		ReporterID:   user.ID,
		IssueTypeID:  req.IssueTypeID,
		Title:        req.Title,
		Description:  req.Description,
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
		LocationText: req.LocationText,
		Severity:     severity,
		Status:       models.StatusPending,
		Assigned:     false,
	}

	saved, err := s.reportRepo.SaveReport(report, req.ImageURLs)
	if err != nil {
		log.Printf("CreateReport: save failed: %v", err)
		return nil, errs.ErrInternalServerError
	}

	s.fanout.Dispatch(ReportCreated{Report: saved})
	actorID := user.ID
	s.audit.Log(&actorID, fmt.Sprintf("filed report %q", saved.Title), "reports")

	return saved, nil
}

func (s *reportService) GetReport(reportID uuid.UUID) (*models.Report, error) {
	report, err := s.reportRepo.GetReportByID(reportID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errs.ErrNotFound
		}
		return nil, errs.ErrInternalServerError
	}
	return report, nil
}

func (s *reportService) GetAllReports(page int) ([]models.Report, error) {
	return s.reportRepo.GetAllReports(page)
}

func (s *reportService) GetReportsByStatus(status string, page int) ([]models.Report, error) {
	reportStatus := models.ReportStatus(status)
	if !reportStatus.Valid() {
		return nil, errs.New(fmt.Sprintf("unknown status %q", status), http.StatusBadRequest)
	}
	return s.reportRepo.GetReportsByStatus(reportStatus, page)
}

func (s *reportService) GetReportsByReporter(userID uint, page int) ([]models.Report, error) {
	return s.reportRepo.GetReportsByReporter(userID, page)
}

// UpdateStatus moves the report forward through the lifecycle. Backward
// transitions are rejected; re-stating the current status is accepted as a
// no-op without emitting an event. The conditional write in the repo protects
// against a racing status change or delete.
func (s *reportService) UpdateStatus(actor *models.User, reportID uuid.UUID, newStatus string) (*models.Report, error) {
	status := models.ReportStatus(newStatus)
	if !status.Valid() {
		return nil, errs.New(fmt.Sprintf("unknown status %q", newStatus), http.StatusBadRequest)
	}

	for attempt := 0; attempt < statusUpdateAttempts; attempt++ {
		report, err := s.reportRepo.GetReportByID(reportID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return nil, errs.ErrNotFound
			}
			return nil, errs.ErrInternalServerError
		}

		if report.Status == status {
			return report, nil
		}
		if !models.CanTransition(report.Status, status) {
			return nil, errs.ErrInvalidTransition
		}

		applied, err := s.reportRepo.UpdateStatus(reportID, report.Status, status)
		if err != nil {
			log.Printf("UpdateStatus: conditional update failed: %v", err)
			return nil, errs.ErrInternalServerError
		}
		if !applied {
			// a concurrent writer moved the status; re-read and re-evaluate
			continue
		}

		oldStatus := report.Status
		report.Status = status

		s.fanout.Dispatch(StatusChanged{Report: report, OldStatus: oldStatus, ActorID: actor.ID})
		actorID := actor.ID
		s.audit.Log(&actorID, fmt.Sprintf("changed report %q status from %s to %s", report.Title, oldStatus, status), "reports")

		return report, nil
	}

	return nil, errs.New("report status is changing concurrently, retry", http.StatusConflict)
}

// DeleteReport removes the report and everything it owns. The cascade is
// transactional: either the report and all of its votes, comments, images
// and assignments go, or none of them do.
func (s *reportService) DeleteReport(actor *models.User, reportID uuid.UUID) (*models.Report, error) {
	report, err := s.reportRepo.GetReportByID(reportID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errs.ErrNotFound
		}
		return nil, errs.ErrInternalServerError
	}

	if err := s.reportRepo.DeleteReport(reportID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errs.ErrNotFound
		}
		log.Printf("DeleteReport: cascade failed: %v", err)
		return nil, errs.ErrInternalServerError
	}

	actorID := actor.ID
	s.audit.Log(&actorID, fmt.Sprintf("deleted report %q", report.Title), "reports")

	return report, nil
}
