package services

import (
	"fmt"
	"log"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ecotrackhq/ecotrack/config"
	"github.com/ecotrackhq/ecotrack/db"
	errs "github.com/ecotrackhq/ecotrack/errors"
	"github.com/ecotrackhq/ecotrack/models"
)

type CommentService interface {
	PostComment(user *models.User, reportID uuid.UUID, text string) (*models.Comment, error)
	EditComment(user *models.User, commentID uint, text string) (*models.Comment, error)
	DeleteComment(user *models.User, commentID uint) error
	GetCommentsByReport(reportID uuid.UUID, page int) ([]models.Comment, error)
}

type commentService struct {
	Config      *config.Config
	commentRepo db.CommentRepository
	reportRepo  db.ReportRepository
	fanout      FanoutService
	audit       AuditService
}

func NewCommentService(commentRepo db.CommentRepository, reportRepo db.ReportRepository, fanout FanoutService, audit AuditService, conf *config.Config) CommentService {
	return &commentService{
		Config:      conf,
		commentRepo: commentRepo,
		reportRepo:  reportRepo,
		fanout:      fanout,
		audit:       audit,
	}
}

func (s *commentService) PostComment(user *models.User, reportID uuid.UUID, text string) (*models.Comment, error) {
	report, err := s.reportRepo.GetReportByID(reportID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errs.ErrNotFound
		}
		return nil, errs.ErrInternalServerError
	}

	comment := &models.Comment{
		ReportID: reportID,
		UserID:   user.ID,
		Comment:  text,
	}
	if err := s.commentRepo.SaveComment(comment); err != nil {
		log.Printf("PostComment: save failed: %v", err)
		return nil, errs.ErrInternalServerError
	}

	s.fanout.Dispatch(CommentPosted{Report: report, CommenterID: user.ID})
	actorID := user.ID
	s.audit.Log(&actorID, fmt.Sprintf("commented on report %q", report.Title), "comments")

	return comment, nil
}

// EditComment relies on the repo's ownership predicate: a comment that exists
// but belongs to someone else looks exactly like a missing comment.
func (s *commentService) EditComment(user *models.User, commentID uint, text string) (*models.Comment, error) {
	comment, err := s.commentRepo.UpdateComment(commentID, user.ID, text)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errs.ErrNotFound
		}
		log.Printf("EditComment: update failed: %v", err)
		return nil, errs.ErrInternalServerError
	}

	report, err := s.reportRepo.GetReportByID(comment.ReportID)
	if err == nil {
		s.fanout.Dispatch(CommentUpdated{Report: report, CommenterID: user.ID})
	} else {
		log.Printf("EditComment: report lookup for fanout failed: %v", err)
	}
	actorID := user.ID
	s.audit.Log(&actorID, fmt.Sprintf("edited comment %d", commentID), "comments")

	return comment, nil
}

func (s *commentService) DeleteComment(user *models.User, commentID uint) error {
	if err := s.commentRepo.DeleteComment(commentID, user.ID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return errs.ErrNotFound
		}
		log.Printf("DeleteComment: delete failed: %v", err)
		return errs.ErrInternalServerError
	}

	actorID := user.ID
	s.audit.Log(&actorID, fmt.Sprintf("deleted comment %d", commentID), "comments")
	return nil
}

func (s *commentService) GetCommentsByReport(reportID uuid.UUID, page int) ([]models.Comment, error) {
	return s.commentRepo.GetCommentsByReport(reportID, page)
}
