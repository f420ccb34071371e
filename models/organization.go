package models

import "github.com/google/uuid"

// Organization is a body responsible for acting on assigned reports.
type Organization struct {
	Model
	Name  string `json:"name" gorm:"unique;not null"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// Assignment links a report to a responsible organization, at most once per
// pair. Re-assigning the same pair is a conflict, not a silent no-op.
type Assignment struct {
	Model
	ReportID       uuid.UUID `json:"report_id" gorm:"type:uuid;not null;uniqueIndex:idx_assignments_report_org"`
	OrganizationID uint      `json:"organization_id" gorm:"not null;uniqueIndex:idx_assignments_report_org"`
}

// IssueType is an entry in the seeded issue taxonomy. Reports must reference
// an existing entry at creation time.
type IssueType struct {
	Model
	Name     string `json:"name" gorm:"unique;not null"`
	Category string `json:"category"`
}
