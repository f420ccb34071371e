package services

import (
	"fmt"
	"log"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/ecotrackhq/ecotrack/db"
	"github.com/ecotrackhq/ecotrack/models"
)

// DomainEvent is the tagged union of everything that fans out into
// notifications. Each variant carries what the recipient computation needs
// and nothing more.
type DomainEvent interface {
	EventName() string
}

type ReportCreated struct {
	Report *models.Report
}

type StatusChanged struct {
	Report    *models.Report
	OldStatus models.ReportStatus
	ActorID   uint
}

type VoteCast struct {
	Report   *models.Report
	VoterID  uint
	VoteType int
}

type CommentPosted struct {
	Report      *models.Report
	CommenterID uint
}

type CommentUpdated struct {
	Report      *models.Report
	CommenterID uint
}

type ReportAssigned struct {
	Report       *models.Report
	Organization *models.Organization
}

type AccountStatusToggled struct {
	UserID    uint
	Suspended bool
}

type PasswordChanged struct {
	UserID uint
}

type PasswordReset struct {
	UserID uint
}

func (ReportCreated) EventName() string        { return "report_created" }
func (StatusChanged) EventName() string        { return "status_changed" }
func (VoteCast) EventName() string             { return "vote_cast" }
func (CommentPosted) EventName() string        { return "comment_posted" }
func (CommentUpdated) EventName() string       { return "comment_updated" }
func (ReportAssigned) EventName() string       { return "report_assigned" }
func (AccountStatusToggled) EventName() string { return "account_status_toggled" }
func (PasswordChanged) EventName() string      { return "password_changed" }
func (PasswordReset) EventName() string        { return "password_reset" }

// Recipient is one planned notification: who gets it, at what level, saying
// what.
type Recipient struct {
	UserID   uint
	ReportID *uuid.UUID
	Type     models.NotificationType
	Message  string
}

// FanoutService turns a domain event into notifications, best-effort. The
// primary mutation has already committed by the time Dispatch runs, so
// nothing here ever propagates an error back to the caller.
type FanoutService interface {
	Recipients(event DomainEvent, adminIDs []uint) []Recipient
	Dispatch(event DomainEvent)
	FailedDispatches() uint64
}

type fanoutService struct {
	authRepo         db.AuthRepository
	notificationRepo db.NotificationRepository
	failed           uint64
}

func NewFanoutService(authRepo db.AuthRepository, notificationRepo db.NotificationRepository) FanoutService {
	return &fanoutService{
		authRepo:         authRepo,
		notificationRepo: notificationRepo,
	}
}

// Recipients is the authoritative event-to-recipients mapping. It is a pure
// function of the event and the admin directory, and the returned set is
// already deduplicated: a user appearing in more than one role for the same
// event gets exactly one notification. The owner-facing entry is computed
// first so it wins over the generic admin entry on dedup.
func (f *fanoutService) Recipients(event DomainEvent, adminIDs []uint) []Recipient {
	var planned []Recipient

	switch e := event.(type) {
	case ReportCreated:
		planned = append(planned, Recipient{
			UserID:   e.Report.ReporterID,
			ReportID: &e.Report.ID,
			Type:     models.NotificationInfo,
			Message:  fmt.Sprintf("Your report %q has been received and is pending review", e.Report.Title),
		})
		for _, adminID := range adminIDs {
			planned = append(planned, Recipient{
				UserID:   adminID,
				ReportID: &e.Report.ID,
				Type:     models.NotificationInfo,
				Message:  fmt.Sprintf("New %s severity report filed: %q", e.Report.Severity, e.Report.Title),
			})
		}

	case StatusChanged:
		planned = append(planned, Recipient{
			UserID:   e.Report.ReporterID,
			ReportID: &e.Report.ID,
			Type:     models.NotificationInfo,
			Message:  fmt.Sprintf("Your report %q moved from %s to %s", e.Report.Title, e.OldStatus, e.Report.Status),
		})
		for _, adminID := range adminIDs {
			planned = append(planned, Recipient{
				UserID:   adminID,
				ReportID: &e.Report.ID,
				Type:     models.NotificationInfo,
				Message:  fmt.Sprintf("Report %q moved from %s to %s", e.Report.Title, e.OldStatus, e.Report.Status),
			})
		}

	case VoteCast:
		// No self-notification when the owner votes on their own report.
		if e.Report.ReporterID != e.VoterID {
			notificationType := models.NotificationInfo
			message := fmt.Sprintf("Your report %q received an upvote", e.Report.Title)
			if e.VoteType == models.VoteTypeDown {
				notificationType = models.NotificationWarning
				message = fmt.Sprintf("Your report %q received a downvote", e.Report.Title)
			}
			planned = append(planned, Recipient{
				UserID:   e.Report.ReporterID,
				ReportID: &e.Report.ID,
				Type:     notificationType,
				Message:  message,
			})
		}

	case CommentPosted:
		if e.Report.ReporterID != e.CommenterID {
			planned = append(planned, Recipient{
				UserID:   e.Report.ReporterID,
				ReportID: &e.Report.ID,
				Type:     models.NotificationInfo,
				Message:  fmt.Sprintf("Your report %q has a new comment", e.Report.Title),
			})
		}

	case CommentUpdated:
		if e.Report.ReporterID != e.CommenterID {
			planned = append(planned, Recipient{
				UserID:   e.Report.ReporterID,
				ReportID: &e.Report.ID,
				Type:     models.NotificationInfo,
				Message:  fmt.Sprintf("A comment on your report %q was edited", e.Report.Title),
			})
		}

	case ReportAssigned:
		planned = append(planned, Recipient{
			UserID:   e.Report.ReporterID,
			ReportID: &e.Report.ID,
			Type:     models.NotificationInfo,
			Message:  fmt.Sprintf("Your report %q was assigned to %s", e.Report.Title, e.Organization.Name),
		})
		for _, adminID := range adminIDs {
			planned = append(planned, Recipient{
				UserID:   adminID,
				ReportID: &e.Report.ID,
				Type:     models.NotificationInfo,
				Message:  fmt.Sprintf("Report %q was assigned to %s", e.Report.Title, e.Organization.Name),
			})
		}

	case AccountStatusToggled:
		notificationType := models.NotificationInfo
		message := "Your account has been reactivated"
		if e.Suspended {
			notificationType = models.NotificationUrgent
			message = "Your account has been suspended"
		}
		planned = append(planned, Recipient{
			UserID:  e.UserID,
			Type:    notificationType,
			Message: message,
		})

	case PasswordChanged:
		planned = append(planned, Recipient{
			UserID:  e.UserID,
			Type:    models.NotificationWarning,
			Message: "Your password was changed. If this wasn't you, contact support immediately",
		})

	case PasswordReset:
		planned = append(planned, Recipient{
			UserID:  e.UserID,
			Type:    models.NotificationWarning,
			Message: "Your password was reset. If this wasn't you, contact support immediately",
		})
	}

	return dedupeRecipients(planned)
}

func dedupeRecipients(planned []Recipient) []Recipient {
	seen := make(map[uint]bool, len(planned))
	out := planned[:0]
	for _, r := range planned {
		if seen[r.UserID] {
			continue
		}
		seen[r.UserID] = true
		out = append(out, r)
	}
	return out
}

// Dispatch computes the recipient set and persists one notification per
// recipient. Every failure is logged and counted; none blocks the others or
// reaches the caller.
func (f *fanoutService) Dispatch(event DomainEvent) {
	adminIDs, err := f.authRepo.ListAdminIDs()
	if err != nil {
		log.Printf("fanout: could not load admin directory for %s: %v", event.EventName(), err)
		atomic.AddUint64(&f.failed, 1)
		adminIDs = nil
	}

	for _, recipient := range f.Recipients(event, adminIDs) {
		notification := &models.Notification{
			UserID:   recipient.UserID,
			ReportID: recipient.ReportID,
			Type:     recipient.Type,
			Message:  recipient.Message,
			SentAt:   time.Now(),
		}
		if err := f.notificationRepo.SaveNotification(notification); err != nil {
			log.Printf("fanout: failed to notify user %d for %s: %v", recipient.UserID, event.EventName(), err)
			atomic.AddUint64(&f.failed, 1)
		}
	}
}

// FailedDispatches reports how many notification writes have been dropped
// since startup, for operational alerting.
func (f *fanoutService) FailedDispatches() uint64 {
	return atomic.LoadUint64(&f.failed)
}
