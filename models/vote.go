package models

import "github.com/google/uuid"

const (
	VoteTypeUp   = 1
	VoteTypeDown = -1
)

// Vote records a single user's vote on a report. The composite unique index
// guarantees at most one row per (report, user) pair; re-voting upserts.
type Vote struct {
	Model
	ReportID uuid.UUID `json:"report_id" gorm:"type:uuid;not null;uniqueIndex:idx_votes_report_user"`
	UserID   uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_votes_report_user"`
	VoteType int       `json:"vote_type" gorm:"not null"`
}

// VoteSummary is always derived from the vote rows, never kept as a counter.
type VoteSummary struct {
	ReportID  uuid.UUID `json:"report_id"`
	Upvotes   int64     `json:"upvotes"`
	Downvotes int64     `json:"downvotes"`
	Total     int64     `json:"total"`
}

type CastVoteRequest struct {
	VoteType int `json:"vote_type" binding:"required,oneof=1 -1"`
}
