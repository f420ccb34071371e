package services

import (
	"fmt"
	"log"
	"net/http"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ecotrackhq/ecotrack/config"
	"github.com/ecotrackhq/ecotrack/db"
	errs "github.com/ecotrackhq/ecotrack/errors"
	"github.com/ecotrackhq/ecotrack/models"
)

type VoteService interface {
	CastVote(user *models.User, reportID uuid.UUID, voteType int) (*models.VoteSummary, error)
	RemoveVote(user *models.User, reportID uuid.UUID) (*models.VoteSummary, error)
	GetVoteSummary(reportID uuid.UUID) (*models.VoteSummary, error)
}

type voteService struct {
	Config     *config.Config
	voteRepo   db.VoteRepository
	reportRepo db.ReportRepository
	fanout     FanoutService
	audit      AuditService
}

func NewVoteService(voteRepo db.VoteRepository, reportRepo db.ReportRepository, fanout FanoutService, audit AuditService, conf *config.Config) VoteService {
	return &voteService{
		Config:     conf,
		voteRepo:   voteRepo,
		reportRepo: reportRepo,
		fanout:     fanout,
		audit:      audit,
	}
}

// CastVote upserts the caller's vote and returns the summary recomputed from
// the vote rows, so the caller always sees their own write.
func (s *voteService) CastVote(user *models.User, reportID uuid.UUID, voteType int) (*models.VoteSummary, error) {
	if voteType != models.VoteTypeUp && voteType != models.VoteTypeDown {
		return nil, errs.New(fmt.Sprintf("invalid vote type %d", voteType), http.StatusBadRequest)
	}

	report, err := s.reportRepo.GetReportByID(reportID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errs.ErrNotFound
		}
		return nil, errs.ErrInternalServerError
	}

	vote := &models.Vote{
		ReportID: reportID,
		UserID:   user.ID,
		VoteType: voteType,
	}
	if err := s.voteRepo.UpsertVote(vote); err != nil {
		log.Printf("CastVote: upsert failed: %v", err)
		return nil, errs.ErrInternalServerError
	}

	s.fanout.Dispatch(VoteCast{Report: report, VoterID: user.ID, VoteType: voteType})
	actorID := user.ID
	s.audit.Log(&actorID, fmt.Sprintf("voted %+d on report %q", voteType, report.Title), "votes")

	return s.GetVoteSummary(reportID)
}

// RemoveVote is idempotent; removing a vote that was never cast succeeds.
func (s *voteService) RemoveVote(user *models.User, reportID uuid.UUID) (*models.VoteSummary, error) {
	report, err := s.reportRepo.GetReportByID(reportID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errs.ErrNotFound
		}
		return nil, errs.ErrInternalServerError
	}

	if err := s.voteRepo.RemoveVote(reportID, user.ID); err != nil {
		log.Printf("RemoveVote: delete failed: %v", err)
		return nil, errs.ErrInternalServerError
	}

	actorID := user.ID
	s.audit.Log(&actorID, fmt.Sprintf("removed vote on report %q", report.Title), "votes")

	return s.GetVoteSummary(reportID)
}

func (s *voteService) GetVoteSummary(reportID uuid.UUID) (*models.VoteSummary, error) {
	summary, err := s.voteRepo.GetVoteSummary(reportID)
	if err != nil {
		log.Printf("GetVoteSummary: %v", err)
		return nil, errs.ErrInternalServerError
	}
	return summary, nil
}
