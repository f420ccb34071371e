package db

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/ecotrackhq/ecotrack/models"
)

type AssignmentRepository interface {
	CreateAssignment(reportID uuid.UUID, organizationID uint) (*models.Assignment, error)
	GetAssignmentsByReport(reportID uuid.UUID) ([]models.Assignment, error)
	GetOrganizationByID(organizationID uint) (*models.Organization, error)
	GetAllOrganizations() ([]models.Organization, error)
}

type assignmentRepo struct {
	DB *gorm.DB
}

func NewAssignmentRepo(db *GormDB) AssignmentRepository {
	return &assignmentRepo{db.DB}
}

// CreateAssignment inserts the link and flags the report as assigned in one
// transaction, so a crash can never leave one side without the other. A
// duplicate (report, org) pair surfaces as gorm.ErrDuplicatedKey from the
// unique index, never from a check-then-insert.
func (a *assignmentRepo) CreateAssignment(reportID uuid.UUID, organizationID uint) (*models.Assignment, error) {
	assignment := &models.Assignment{
		ReportID:       reportID,
		OrganizationID: organizationID,
	}

	err := a.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(assignment).Error; err != nil {
			return err
		}

		result := tx.Model(&models.Report{}).Where("id = ?", reportID).Update("assigned", true)
		if result.Error != nil {
			return fmt.Errorf("failed to flag report as assigned: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return assignment, nil
}

func (a *assignmentRepo) GetAssignmentsByReport(reportID uuid.UUID) ([]models.Assignment, error) {
	var assignments []models.Assignment
	err := a.DB.Where("report_id = ?", reportID).Find(&assignments).Error
	if err != nil {
		return nil, errors.Wrap(err, "listing assignments")
	}
	return assignments, nil
}

func (a *assignmentRepo) GetOrganizationByID(organizationID uint) (*models.Organization, error) {
	var org models.Organization
	err := a.DB.Where("id = ?", organizationID).First(&org).Error
	if err != nil {
		return nil, err
	}
	return &org, nil
}

func (a *assignmentRepo) GetAllOrganizations() ([]models.Organization, error) {
	var orgs []models.Organization
	err := a.DB.Order("name ASC").Find(&orgs).Error
	if err != nil {
		return nil, errors.Wrap(err, "listing organizations")
	}
	return orgs, nil
}
