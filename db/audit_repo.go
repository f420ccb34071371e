package db

import (
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/ecotrackhq/ecotrack/models"
)

type AuditRepository interface {
	SaveAuditEntry(entry *models.AuditEntry) error
	SaveActivityEntry(entry *models.ActivityEntry) error
	GetAuditEntries(affectedTable string, from, to *time.Time, page int) ([]models.AuditEntry, error)
}

type auditRepo struct {
	DB *gorm.DB
}

func NewAuditRepo(db *GormDB) AuditRepository {
	return &auditRepo{db.DB}
}

func (a *auditRepo) SaveAuditEntry(entry *models.AuditEntry) error {
	if err := a.DB.Create(entry).Error; err != nil {
		return errors.Wrap(err, "saving audit entry")
	}
	return nil
}

func (a *auditRepo) SaveActivityEntry(entry *models.ActivityEntry) error {
	if err := a.DB.Create(entry).Error; err != nil {
		return errors.Wrap(err, "saving activity entry")
	}
	return nil
}

func (a *auditRepo) GetAuditEntries(affectedTable string, from, to *time.Time, page int) ([]models.AuditEntry, error) {
	var entries []models.AuditEntry
	query := a.DB.Model(&models.AuditEntry{})
	if affectedTable != "" {
		query = query.Where("affected_table = ?", affectedTable)
	}
	if from != nil {
		query = query.Where("created_at >= ?", *from)
	}
	if to != nil {
		query = query.Where("created_at <= ?", *to)
	}

	offset := pageOffset(page)
	err := query.Order("created_at DESC").Offset(offset).Limit(DefaultPageSize).Find(&entries).Error
	if err != nil {
		return nil, errors.Wrap(err, "listing audit entries")
	}
	return entries, nil
}
