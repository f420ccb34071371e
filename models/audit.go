package models

import "time"

// AuditEntry is an append-only record of a state-changing action, kept for
// compliance review. UserID is nil for system actions. Entries are never
// updated.
type AuditEntry struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	UserID        *uint     `json:"user_id,omitempty" gorm:"index"`
	Action        string    `json:"action" gorm:"not null"`
	AffectedTable string    `json:"affected_table" gorm:"not null;index"`
	CreatedAt     time.Time `json:"created_at" gorm:"index"`
}

// ActivityEntry mirrors AuditEntry for the user-facing activity feed. Written
// alongside audit entries, looked up by table and date, never navigated from
// the report.
type ActivityEntry struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	UserID        *uint     `json:"user_id,omitempty" gorm:"index"`
	Action        string    `json:"action" gorm:"not null"`
	AffectedTable string    `json:"affected_table" gorm:"not null;index"`
	CreatedAt     time.Time `json:"created_at" gorm:"index"`
}
