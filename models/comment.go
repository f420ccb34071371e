package models

import "github.com/google/uuid"

// Comment represents a user's comment on a report. Only the author may edit
// or delete it.
type Comment struct {
	Model
	ReportID uuid.UUID `json:"report_id" gorm:"type:uuid;not null;index"`
	UserID   uint      `json:"user_id" gorm:"not null;index"`
	Comment  string    `json:"comment" gorm:"type:varchar(1000);not null"`
	IsEdited bool      `json:"is_edited" gorm:"not null;default:false"`
}

type CommentRequest struct {
	Comment string `json:"comment" binding:"required,min=1,max=1000"`
}
