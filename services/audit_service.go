package services

import (
	"log"
	"time"

	"github.com/ecotrackhq/ecotrack/db"
	"github.com/ecotrackhq/ecotrack/models"
)

// AuditService appends audit and activity entries. Writes are fire-and-forget
// from the orchestrating services' perspective, but a failed write is still
// reported to the operational log so it never vanishes silently.
type AuditService interface {
	Log(actorID *uint, action string, affectedTable string)
	GetAuditEntries(affectedTable string, from, to *time.Time, page int) ([]models.AuditEntry, error)
}

type auditService struct {
	auditRepo db.AuditRepository
}

func NewAuditService(auditRepo db.AuditRepository) AuditService {
	return &auditService{auditRepo: auditRepo}
}

func (a *auditService) Log(actorID *uint, action string, affectedTable string) {
	entry := &models.AuditEntry{
		UserID:        actorID,
		Action:        action,
		AffectedTable: affectedTable,
	}
	if err := a.auditRepo.SaveAuditEntry(entry); err != nil {
		log.Printf("audit: failed to write audit entry %q on %s: %v", action, affectedTable, err)
	}

	activity := &models.ActivityEntry{
		UserID:        actorID,
		Action:        action,
		AffectedTable: affectedTable,
	}
	if err := a.auditRepo.SaveActivityEntry(activity); err != nil {
		log.Printf("audit: failed to write activity entry %q on %s: %v", action, affectedTable, err)
	}
}

func (a *auditService) GetAuditEntries(affectedTable string, from, to *time.Time, page int) ([]models.AuditEntry, error) {
	return a.auditRepo.GetAuditEntries(affectedTable, from, to, page)
}
