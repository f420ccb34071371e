package db

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/ecotrackhq/ecotrack/models"
)

func TestUpsertVoteKeepsOneRowPerUser(t *testing.T) {
	g := setupTestDB(t)
	user := createTestUser(t, g, "voter@example.com")
	report := createTestReport(t, g, user.ID)
	repo := NewVoteRepo(g)

	require.NoError(t, repo.UpsertVote(&models.Vote{
		ReportID: report.ID,
		UserID:   user.ID,
		VoteType: models.VoteTypeUp,
	}))
	// Re-voting replaces the direction instead of adding a row.
	require.NoError(t, repo.UpsertVote(&models.Vote{
		ReportID: report.ID,
		UserID:   user.ID,
		VoteType: models.VoteTypeDown,
	}))

	var count int64
	require.NoError(t, g.DB.Model(&models.Vote{}).Where("report_id = ?", report.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	vote, err := repo.GetVote(report.ID, user.ID)
	require.NoError(t, err)
	assert.Equal(t, models.VoteTypeDown, vote.VoteType)
}

func TestGetVoteSummary(t *testing.T) {
	g := setupTestDB(t)
	reporter := createTestUser(t, g, "reporter@example.com")
	up1 := createTestUser(t, g, "up1@example.com")
	up2 := createTestUser(t, g, "up2@example.com")
	down := createTestUser(t, g, "down@example.com")
	report := createTestReport(t, g, reporter.ID)
	repo := NewVoteRepo(g)

	for _, voter := range []uint{up1.ID, up2.ID} {
		require.NoError(t, repo.UpsertVote(&models.Vote{
			ReportID: report.ID,
			UserID:   voter,
			VoteType: models.VoteTypeUp,
		}))
	}
	require.NoError(t, repo.UpsertVote(&models.Vote{
		ReportID: report.ID,
		UserID:   down.ID,
		VoteType: models.VoteTypeDown,
	}))

	summary, err := repo.GetVoteSummary(report.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), summary.Upvotes)
	assert.Equal(t, int64(1), summary.Downvotes)
	assert.Equal(t, int64(1), summary.Total)
}

func TestRemoveVoteIdempotent(t *testing.T) {
	g := setupTestDB(t)
	user := createTestUser(t, g, "voter@example.com")
	report := createTestReport(t, g, user.ID)
	repo := NewVoteRepo(g)

	require.NoError(t, repo.UpsertVote(&models.Vote{
		ReportID: report.ID,
		UserID:   user.ID,
		VoteType: models.VoteTypeUp,
	}))

	require.NoError(t, repo.RemoveVote(report.ID, user.ID))
	// Removing again is a no-op, not an error.
	require.NoError(t, repo.RemoveVote(report.ID, user.ID))

	_, err := repo.GetVote(report.ID, user.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestGetVoteSummaryEmptyReport(t *testing.T) {
	g := setupTestDB(t)
	repo := NewVoteRepo(g)

	summary, err := repo.GetVoteSummary(uuid.New())
	require.NoError(t, err)
	assert.Zero(t, summary.Upvotes)
	assert.Zero(t, summary.Downvotes)
	assert.Zero(t, summary.Total)
}
