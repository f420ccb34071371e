package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errs "github.com/ecotrackhq/ecotrack/errors"
)

func TestPostCommentNotifiesReporter(t *testing.T) {
	env := newTestEnv(t)
	reporter := env.createUser(t, "reporter@example.com", "")
	commenter := env.createUser(t, "commenter@example.com", "")
	report := env.createReport(t, reporter)

	before := len(env.notificationMessages(t, reporter.ID))

	comment, err := env.comments.PostComment(commenter, report.ID, "The canal smells terrible")
	require.NoError(t, err)
	assert.Equal(t, commenter.ID, comment.UserID)
	assert.False(t, comment.IsEdited)

	messages := env.notificationMessages(t, reporter.ID)
	require.Len(t, messages, before+1)
	assert.Contains(t, messages[0], "new comment")
}

func TestPostCommentUnknownReport(t *testing.T) {
	env := newTestEnv(t)
	commenter := env.createUser(t, "commenter@example.com", "")

	_, err := env.comments.PostComment(commenter, uuid.New(), "hello")
	assert.Equal(t, errs.ErrNotFound, err)
}

func TestEditCommentByNonAuthorLooksMissing(t *testing.T) {
	env := newTestEnv(t)
	reporter := env.createUser(t, "reporter@example.com", "")
	author := env.createUser(t, "author@example.com", "")
	intruder := env.createUser(t, "intruder@example.com", "")
	report := env.createReport(t, reporter)

	comment, err := env.comments.PostComment(author, report.ID, "original text")
	require.NoError(t, err)

	_, err = env.comments.EditComment(intruder, comment.ID, "tampered")
	assert.Equal(t, errs.ErrNotFound, err)

	edited, err := env.comments.EditComment(author, comment.ID, "clarified text")
	require.NoError(t, err)
	assert.Equal(t, "clarified text", edited.Comment)
	assert.True(t, edited.IsEdited)
}

func TestDeleteCommentByNonAuthorLooksMissing(t *testing.T) {
	env := newTestEnv(t)
	reporter := env.createUser(t, "reporter@example.com", "")
	author := env.createUser(t, "author@example.com", "")
	intruder := env.createUser(t, "intruder@example.com", "")
	report := env.createReport(t, reporter)

	comment, err := env.comments.PostComment(author, report.ID, "some observation")
	require.NoError(t, err)

	err = env.comments.DeleteComment(intruder, comment.ID)
	assert.Equal(t, errs.ErrNotFound, err)

	require.NoError(t, env.comments.DeleteComment(author, comment.ID))

	comments, err := env.comments.GetCommentsByReport(report.ID, 1)
	require.NoError(t, err)
	assert.Empty(t, comments)
}

func TestEditCommentNotifiesReporter(t *testing.T) {
	env := newTestEnv(t)
	reporter := env.createUser(t, "reporter@example.com", "")
	author := env.createUser(t, "author@example.com", "")
	report := env.createReport(t, reporter)

	comment, err := env.comments.PostComment(author, report.ID, "first version")
	require.NoError(t, err)

	before := len(env.notificationMessages(t, reporter.ID))

	_, err = env.comments.EditComment(author, comment.ID, "second version")
	require.NoError(t, err)

	messages := env.notificationMessages(t, reporter.ID)
	require.Len(t, messages, before+1)
	assert.Contains(t, messages[0], "edited")
}
