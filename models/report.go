package models

import (
	"time"

	"github.com/google/uuid"
)

// ReportStatus is the lifecycle state of a report. Statuses have a total
// order and a report only ever moves forward through it.
type ReportStatus string

const (
	StatusPending    ReportStatus = "pending"
	StatusInProgress ReportStatus = "in_progress"
	StatusResolved   ReportStatus = "resolved"
	StatusClosed     ReportStatus = "closed"
)

var statusOrder = map[ReportStatus]int{
	StatusPending:    0,
	StatusInProgress: 1,
	StatusResolved:   2,
	StatusClosed:     3,
}

// Index returns the position of the status in the lifecycle order, or -1 for
// an unknown status.
func (s ReportStatus) Index() int {
	idx, ok := statusOrder[s]
	if !ok {
		return -1
	}
	return idx
}

func (s ReportStatus) Valid() bool {
	_, ok := statusOrder[s]
	return ok
}

// CanTransition reports whether moving from the current status to the new one
// is allowed. Backward movement never is; re-stating the current status is
// treated as allowed so repeated submissions stay idempotent.
func CanTransition(from, to ReportStatus) bool {
	fromIdx, toIdx := from.Index(), to.Index()
	if fromIdx < 0 || toIdx < 0 {
		return false
	}
	return toIdx >= fromIdx
}

type ReportSeverity string

const (
	SeverityLow      ReportSeverity = "low"
	SeverityMedium   ReportSeverity = "medium"
	SeverityHigh     ReportSeverity = "high"
	SeverityCritical ReportSeverity = "critical"
)

func (s ReportSeverity) Valid() bool {
	switch s {
	case SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical:
		return true
	}
	return false
}

// Report is an environmental incident filed by a citizen.
type Report struct {
	ID           uuid.UUID      `json:"id" gorm:"type:uuid;primaryKey"`
	ReporterID   uint           `json:"reporter_id" gorm:"not null;index"`
	IssueTypeID  uint           `json:"issue_type_id" gorm:"not null"`
	Title        string         `json:"title" gorm:"type:varchar(255);not null"`
	Description  string         `json:"description" gorm:"type:varchar(2000)"`
	Latitude     float64        `json:"latitude"`
	Longitude    float64        `json:"longitude"`
	LocationText string         `json:"location_text"`
	Severity     ReportSeverity `json:"severity" gorm:"type:varchar(16);not null"`
	Status       ReportStatus   `json:"status" gorm:"type:varchar(16);not null;default:pending;index"`
	Assigned     bool           `json:"assigned" gorm:"not null;default:false"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

// ReportImage holds the URL of an image uploaded for a report. Uploads
// themselves happen outside this service; rows are cascaded when the report
// is deleted.
type ReportImage struct {
	Model
	ReportID uuid.UUID `json:"report_id" gorm:"type:uuid;not null;index"`
	URL      string    `json:"url" gorm:"not null"`
}

// CreateReportRequest is the payload for filing a report.
type CreateReportRequest struct {
	IssueTypeID  uint    `json:"issue_type_id" binding:"required"`
	Title        string  `json:"title" binding:"required,min=3,max=255"`
	Description  string  `json:"description" binding:"max=2000"`
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	LocationText string  `json:"location_text"`
	Severity     string  `json:"severity" binding:"required"`
	ImageURLs    []string `json:"image_urls"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}
