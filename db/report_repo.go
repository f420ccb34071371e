package db

import (
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/ecotrackhq/ecotrack/models"
)

const (
	DefaultPageSize = 20
	DefaultPage     = 1
)

type ReportRepository interface {
	SaveReport(report *models.Report, imageURLs []string) (*models.Report, error)
	GetReportByID(reportID uuid.UUID) (*models.Report, error)
	GetAllReports(page int) ([]models.Report, error)
	GetReportsByStatus(status models.ReportStatus, page int) ([]models.Report, error)
	GetReportsByReporter(userID uint, page int) ([]models.Report, error)
	GetReportImages(reportID uuid.UUID) ([]models.ReportImage, error)
	UpdateStatus(reportID uuid.UUID, from, to models.ReportStatus) (bool, error)
	DeleteReport(reportID uuid.UUID) error
	IssueTypeExists(issueTypeID uint) (bool, error)
}

type reportRepo struct {
	DB *gorm.DB
}

func NewReportRepo(db *GormDB) ReportRepository {
	return &reportRepo{db.DB}
}

func (r *reportRepo) SaveReport(report *models.Report, imageURLs []string) (*models.Report, error) {
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(report).Error; err != nil {
			return fmt.Errorf("failed to save report: %v", err)
		}
		for _, url := range imageURLs {
			image := models.ReportImage{ReportID: report.ID, URL: url}
			if err := tx.Create(&image).Error; err != nil {
				return fmt.Errorf("failed to save report image: %v", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return report, nil
}

func (r *reportRepo) GetReportByID(reportID uuid.UUID) (*models.Report, error) {
	var report models.Report
	err := r.DB.Where("id = ?", reportID).First(&report).Error
	if err != nil {
		return nil, err
	}
	return &report, nil
}

func (r *reportRepo) GetAllReports(page int) ([]models.Report, error) {
	var reports []models.Report
	offset := pageOffset(page)
	err := r.DB.Order("created_at DESC").Offset(offset).Limit(DefaultPageSize).Find(&reports).Error
	if err != nil {
		return nil, errors.Wrap(err, "listing reports")
	}
	return reports, nil
}

func (r *reportRepo) GetReportsByStatus(status models.ReportStatus, page int) ([]models.Report, error) {
	var reports []models.Report
	offset := pageOffset(page)
	err := r.DB.Where("status = ?", status).
		Order("created_at DESC").Offset(offset).Limit(DefaultPageSize).Find(&reports).Error
	if err != nil {
		return nil, errors.Wrap(err, "listing reports by status")
	}
	return reports, nil
}

func (r *reportRepo) GetReportsByReporter(userID uint, page int) ([]models.Report, error) {
	var reports []models.Report
	offset := pageOffset(page)
	err := r.DB.Where("reporter_id = ?", userID).
		Order("created_at DESC").Offset(offset).Limit(DefaultPageSize).Find(&reports).Error
	if err != nil {
		return nil, errors.Wrap(err, "listing reports by reporter")
	}
	return reports, nil
}

func (r *reportRepo) GetReportImages(reportID uuid.UUID) ([]models.ReportImage, error) {
	var images []models.ReportImage
	err := r.DB.Where("report_id = ?", reportID).Find(&images).Error
	if err != nil {
		return nil, err
	}
	return images, nil
}

// UpdateStatus applies the transition only if the report is still in the
// expected current status. The conditional WHERE serializes concurrent status
// writers at the database without SELECT ... FOR UPDATE. The returned bool is
// false when the row was missing or had moved on.
func (r *reportRepo) UpdateStatus(reportID uuid.UUID, from, to models.ReportStatus) (bool, error) {
	result := r.DB.Model(&models.Report{}).
		Where("id = ? AND status = ?", reportID, from).
		Update("status", to)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// DeleteReport removes the report and everything it owns in one transaction:
// images, votes, comments and assignment links, then the report row itself.
func (r *reportRepo) DeleteReport(reportID uuid.UUID) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("report_id = ?", reportID).Delete(&models.ReportImage{}).Error; err != nil {
			return fmt.Errorf("failed to delete report images: %w", err)
		}
		if err := tx.Where("report_id = ?", reportID).Delete(&models.Vote{}).Error; err != nil {
			return fmt.Errorf("failed to delete report votes: %w", err)
		}
		if err := tx.Where("report_id = ?", reportID).Delete(&models.Comment{}).Error; err != nil {
			return fmt.Errorf("failed to delete report comments: %w", err)
		}
		if err := tx.Where("report_id = ?", reportID).Delete(&models.Assignment{}).Error; err != nil {
			return fmt.Errorf("failed to delete report assignments: %w", err)
		}

		result := tx.Where("id = ?", reportID).Delete(&models.Report{})
		if result.Error != nil {
			return fmt.Errorf("failed to delete report: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			log.Printf("DeleteReport: no report found with ID %s", reportID)
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *reportRepo) IssueTypeExists(issueTypeID uint) (bool, error) {
	var count int64
	err := r.DB.Model(&models.IssueType{}).Where("id = ?", issueTypeID).Count(&count).Error
	if err != nil {
		return false, errors.Wrap(err, "checking issue type")
	}
	return count > 0, nil
}

func pageOffset(page int) int {
	if page < DefaultPage {
		page = DefaultPage
	}
	return (page - 1) * DefaultPageSize
}
