package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/ecotrackhq/ecotrack/models"
)

func TestUpdateCommentOwnerOnly(t *testing.T) {
	g := setupTestDB(t)
	author := createTestUser(t, g, "author@example.com")
	other := createTestUser(t, g, "other@example.com")
	report := createTestReport(t, g, author.ID)
	repo := NewCommentRepo(g)

	comment := &models.Comment{
		ReportID: report.ID,
		UserID:   author.ID,
		Comment:  "The smell is getting worse",
	}
	require.NoError(t, repo.SaveComment(comment))

	// Another user editing the comment matches no row.
	_, err := repo.UpdateComment(comment.ID, other.ID, "hijacked")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	updated, err := repo.UpdateComment(comment.ID, author.ID, "The smell is much worse today")
	require.NoError(t, err)
	assert.Equal(t, "The smell is much worse today", updated.Comment)
	assert.True(t, updated.IsEdited)
}

func TestDeleteCommentOwnerOnly(t *testing.T) {
	g := setupTestDB(t)
	author := createTestUser(t, g, "author@example.com")
	other := createTestUser(t, g, "other@example.com")
	report := createTestReport(t, g, author.ID)
	repo := NewCommentRepo(g)

	comment := &models.Comment{
		ReportID: report.ID,
		UserID:   author.ID,
		Comment:  "Reported to the council as well",
	}
	require.NoError(t, repo.SaveComment(comment))

	err := repo.DeleteComment(comment.ID, other.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	require.NoError(t, repo.DeleteComment(comment.ID, author.ID))

	_, err = repo.GetCommentByID(comment.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestGetCommentsByReportOrdersOldestFirst(t *testing.T) {
	g := setupTestDB(t)
	author := createTestUser(t, g, "author@example.com")
	report := createTestReport(t, g, author.ID)
	repo := NewCommentRepo(g)

	for _, text := range []string{"first", "second", "third"} {
		require.NoError(t, repo.SaveComment(&models.Comment{
			ReportID: report.ID,
			UserID:   author.ID,
			Comment:  text,
		}))
	}

	comments, err := repo.GetCommentsByReport(report.ID, 1)
	require.NoError(t, err)
	require.Len(t, comments, 3)
	assert.Equal(t, "first", comments[0].Comment)
	assert.Equal(t, "third", comments[2].Comment)
}
