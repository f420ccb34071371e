package db

import (
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ecotrackhq/ecotrack/models"
)

type VoteRepository interface {
	UpsertVote(vote *models.Vote) error
	RemoveVote(reportID uuid.UUID, userID uint) error
	GetVote(reportID uuid.UUID, userID uint) (*models.Vote, error)
	GetVoteSummary(reportID uuid.UUID) (*models.VoteSummary, error)
}

type voteRepo struct {
	DB *gorm.DB
}

func NewVoteRepo(db *GormDB) VoteRepository {
	return &voteRepo{db.DB}
}

// UpsertVote writes the vote atomically: the unique (report_id, user_id)
// index plus ON CONFLICT DO UPDATE guarantees a single row per pair even when
// the same user votes from two sessions at once.
func (v *voteRepo) UpsertVote(vote *models.Vote) error {
	err := v.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "report_id"}, {Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"vote_type", "updated_at"}),
	}).Create(vote).Error
	if err != nil {
		return errors.Wrap(err, "upserting vote")
	}
	return nil
}

// RemoveVote is idempotent: deleting an absent vote is not an error.
func (v *voteRepo) RemoveVote(reportID uuid.UUID, userID uint) error {
	return v.DB.Where("report_id = ? AND user_id = ?", reportID, userID).Delete(&models.Vote{}).Error
}

func (v *voteRepo) GetVote(reportID uuid.UUID, userID uint) (*models.Vote, error) {
	var vote models.Vote
	err := v.DB.Where("report_id = ? AND user_id = ?", reportID, userID).First(&vote).Error
	if err != nil {
		return nil, err
	}
	return &vote, nil
}

// GetVoteSummary recomputes the tally from the vote rows so it can never
// drift from them.
func (v *voteRepo) GetVoteSummary(reportID uuid.UUID) (*models.VoteSummary, error) {
	summary := &models.VoteSummary{ReportID: reportID}

	if err := v.DB.Model(&models.Vote{}).
		Where("report_id = ? AND vote_type = ?", reportID, models.VoteTypeUp).
		Count(&summary.Upvotes).Error; err != nil {
		return nil, errors.Wrap(err, "counting upvotes")
	}
	if err := v.DB.Model(&models.Vote{}).
		Where("report_id = ? AND vote_type = ?", reportID, models.VoteTypeDown).
		Count(&summary.Downvotes).Error; err != nil {
		return nil, errors.Wrap(err, "counting downvotes")
	}

	summary.Total = summary.Upvotes - summary.Downvotes
	return summary, nil
}
