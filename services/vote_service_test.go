package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errs "github.com/ecotrackhq/ecotrack/errors"
	"github.com/ecotrackhq/ecotrack/models"
)

func TestCastVoteReturnsFreshSummary(t *testing.T) {
	env := newTestEnv(t)
	reporter := env.createUser(t, "reporter@example.com", "")
	voter := env.createUser(t, "voter@example.com", "")
	report := env.createReport(t, reporter)

	summary, err := env.votes.CastVote(voter, report.ID, models.VoteTypeUp)
	require.NoError(t, err)
	assert.Equal(t, int64(1), summary.Upvotes)
	assert.Equal(t, int64(1), summary.Total)
}

func TestCastVoteRevoteReplaces(t *testing.T) {
	env := newTestEnv(t)
	reporter := env.createUser(t, "reporter@example.com", "")
	voter := env.createUser(t, "voter@example.com", "")
	report := env.createReport(t, reporter)

	_, err := env.votes.CastVote(voter, report.ID, models.VoteTypeUp)
	require.NoError(t, err)

	summary, err := env.votes.CastVote(voter, report.ID, models.VoteTypeDown)
	require.NoError(t, err)
	assert.Equal(t, int64(0), summary.Upvotes)
	assert.Equal(t, int64(1), summary.Downvotes)
	assert.Equal(t, int64(-1), summary.Total)
}

func TestCastVoteInvalidType(t *testing.T) {
	env := newTestEnv(t)
	reporter := env.createUser(t, "reporter@example.com", "")
	report := env.createReport(t, reporter)

	_, err := env.votes.CastVote(reporter, report.ID, 2)
	domainErr, ok := err.(*errs.Error)
	require.True(t, ok)
	assert.Equal(t, 400, domainErr.Status)
}

func TestCastVoteUnknownReport(t *testing.T) {
	env := newTestEnv(t)
	voter := env.createUser(t, "voter@example.com", "")

	_, err := env.votes.CastVote(voter, uuid.New(), models.VoteTypeUp)
	assert.Equal(t, errs.ErrNotFound, err)
}

func TestCastVoteNotifiesReporter(t *testing.T) {
	env := newTestEnv(t)
	reporter := env.createUser(t, "reporter@example.com", "")
	voter := env.createUser(t, "voter@example.com", "")
	report := env.createReport(t, reporter)

	before := len(env.notificationMessages(t, reporter.ID))

	_, err := env.votes.CastVote(voter, report.ID, models.VoteTypeDown)
	require.NoError(t, err)

	messages := env.notificationMessages(t, reporter.ID)
	require.Len(t, messages, before+1)
	assert.Contains(t, messages[0], "downvote")

	// The voter does not notify themselves.
	assert.Empty(t, env.notificationMessages(t, voter.ID))
}

func TestRemoveVoteIdempotent(t *testing.T) {
	env := newTestEnv(t)
	reporter := env.createUser(t, "reporter@example.com", "")
	voter := env.createUser(t, "voter@example.com", "")
	report := env.createReport(t, reporter)

	_, err := env.votes.CastVote(voter, report.ID, models.VoteTypeUp)
	require.NoError(t, err)

	summary, err := env.votes.RemoveVote(voter, report.ID)
	require.NoError(t, err)
	assert.Zero(t, summary.Total)

	// Removing a vote that is already gone still succeeds.
	summary, err = env.votes.RemoveVote(voter, report.ID)
	require.NoError(t, err)
	assert.Zero(t, summary.Total)
}
