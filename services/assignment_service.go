package services

import (
	"fmt"
	"log"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ecotrackhq/ecotrack/config"
	"github.com/ecotrackhq/ecotrack/db"
	errs "github.com/ecotrackhq/ecotrack/errors"
	"github.com/ecotrackhq/ecotrack/models"
)

type AssignmentService interface {
	AssignToOrganization(actor *models.User, reportID uuid.UUID, organizationID uint) (*models.Assignment, error)
	GetAssignmentsByReport(reportID uuid.UUID) ([]models.Assignment, error)
	GetAllOrganizations() ([]models.Organization, error)
}

type assignmentService struct {
	Config         *config.Config
	assignmentRepo db.AssignmentRepository
	reportRepo     db.ReportRepository
	fanout         FanoutService
	audit          AuditService
}

func NewAssignmentService(assignmentRepo db.AssignmentRepository, reportRepo db.ReportRepository, fanout FanoutService, audit AuditService, conf *config.Config) AssignmentService {
	return &assignmentService{
		Config:         conf,
		assignmentRepo: assignmentRepo,
		reportRepo:     reportRepo,
		fanout:         fanout,
		audit:          audit,
	}
}

// AssignToOrganization links the report to the organization exactly once.
// Repeating the same pair is a conflict the caller sees as AlreadyAssigned;
// the report's assigned flag is untouched by the rejected retry.
func (s *assignmentService) AssignToOrganization(actor *models.User, reportID uuid.UUID, organizationID uint) (*models.Assignment, error) {
	report, err := s.reportRepo.GetReportByID(reportID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errs.ErrNotFound
		}
		return nil, errs.ErrInternalServerError
	}

	org, err := s.assignmentRepo.GetOrganizationByID(organizationID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errs.ErrNotFound
		}
		return nil, errs.ErrInternalServerError
	}

	assignment, err := s.assignmentRepo.CreateAssignment(reportID, organizationID)
	if err != nil {
		switch {
		case err == gorm.ErrDuplicatedKey:
			return nil, errs.ErrAlreadyAssigned
		case err == gorm.ErrRecordNotFound:
			return nil, errs.ErrNotFound
		default:
			log.Printf("AssignToOrganization: create failed: %v", err)
			return nil, errs.ErrInternalServerError
		}
	}

	report.Assigned = true
	s.fanout.Dispatch(ReportAssigned{Report: report, Organization: org})
	actorID := actor.ID
	s.audit.Log(&actorID, fmt.Sprintf("assigned report %q to %s", report.Title, org.Name), "assignments")

	return assignment, nil
}

func (s *assignmentService) GetAssignmentsByReport(reportID uuid.UUID) ([]models.Assignment, error) {
	return s.assignmentRepo.GetAssignmentsByReport(reportID)
}

func (s *assignmentService) GetAllOrganizations() ([]models.Organization, error) {
	return s.assignmentRepo.GetAllOrganizations()
}
