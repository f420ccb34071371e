package models

import (
	"time"

	"github.com/google/uuid"
)

type NotificationType string

const (
	NotificationInfo    NotificationType = "info"
	NotificationWarning NotificationType = "warning"
	NotificationUrgent  NotificationType = "urgent"
)

// Notification is a message delivered to a single user. ReportID is nil for
// report-independent notifications such as password events. Notifications
// reference reports weakly and survive report mutation.
type Notification struct {
	Model
	UserID   uint             `json:"user_id" gorm:"not null;index"`
	ReportID *uuid.UUID       `json:"report_id,omitempty" gorm:"type:uuid"`
	Type     NotificationType `json:"type" gorm:"type:varchar(16);not null;default:info"`
	Message  string           `json:"message" gorm:"not null"`
	IsRead   bool             `json:"is_read" gorm:"not null;default:false"`
	SentAt   time.Time        `json:"sent_at"`
}
