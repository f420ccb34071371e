package db

import (
	"fmt"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/ecotrackhq/ecotrack/models"
)

// setupTestDB opens an in-memory database migrated and seeded the same way
// as production. Each test gets its own named database so state never leaks
// between tests.
func setupTestDB(t *testing.T) *GormDB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	gormDB, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, migrate(gormDB))

	return &GormDB{DB: gormDB}
}

func createTestUser(t *testing.T, g *GormDB, email string) *models.User {
	t.Helper()

	user := &models.User{
		Fullname:       "Test User",
		Username:       strings.Split(email, "@")[0],
		Email:          email,
		HashedPassword: "not-a-real-hash",
	}
	created, err := NewAuthRepo(g).CreateUser(user)
	require.NoError(t, err)
	return created
}

func createTestReport(t *testing.T, g *GormDB, reporterID uint) *models.Report {
	t.Helper()

	report := &models.Report{
		ID:          uuid.New(),
		ReporterID:  reporterID,
		IssueTypeID: 1,
		Title:       "Oil sheen on the river",
		Description: "Visible sheen near the east bank",
		Severity:    models.SeverityHigh,
		Status:      models.StatusPending,
	}
	saved, err := NewReportRepo(g).SaveReport(report, nil)
	require.NoError(t, err)
	return saved
}

func TestSaveReportPersistsImages(t *testing.T) {
	g := setupTestDB(t)
	user := createTestUser(t, g, "reporter@example.com")
	repo := NewReportRepo(g)

	report := &models.Report{
		ID:          uuid.New(),
		ReporterID:  user.ID,
		IssueTypeID: 1,
		Title:       "Dump site behind the market",
		Severity:    models.SeverityMedium,
		Status:      models.StatusPending,
	}
	saved, err := repo.SaveReport(report, []string{"https://cdn.example.com/a.jpg", "https://cdn.example.com/b.jpg"})
	require.NoError(t, err)

	images, err := repo.GetReportImages(saved.ID)
	require.NoError(t, err)
	assert.Len(t, images, 2)
}

func TestUpdateStatusConditional(t *testing.T) {
	g := setupTestDB(t)
	user := createTestUser(t, g, "reporter@example.com")
	report := createTestReport(t, g, user.ID)
	repo := NewReportRepo(g)

	applied, err := repo.UpdateStatus(report.ID, models.StatusPending, models.StatusInProgress)
	require.NoError(t, err)
	assert.True(t, applied)

	// A second writer still holding the old status loses the race.
	applied, err = repo.UpdateStatus(report.ID, models.StatusPending, models.StatusResolved)
	require.NoError(t, err)
	assert.False(t, applied)

	fresh, err := repo.GetReportByID(report.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusInProgress, fresh.Status)
}

func TestUpdateStatusUnknownReport(t *testing.T) {
	g := setupTestDB(t)
	repo := NewReportRepo(g)

	applied, err := repo.UpdateStatus(uuid.New(), models.StatusPending, models.StatusInProgress)
	require.NoError(t, err)
	assert.False(t, applied)
}

func TestDeleteReportCascades(t *testing.T) {
	g := setupTestDB(t)
	user := createTestUser(t, g, "reporter@example.com")
	voter := createTestUser(t, g, "voter@example.com")
	repo := NewReportRepo(g)

	report := &models.Report{
		ID:          uuid.New(),
		ReporterID:  user.ID,
		IssueTypeID: 1,
		Title:       "Smoke from the factory",
		Severity:    models.SeverityCritical,
		Status:      models.StatusPending,
	}
	_, err := repo.SaveReport(report, []string{"https://cdn.example.com/smoke.jpg"})
	require.NoError(t, err)

	require.NoError(t, NewVoteRepo(g).UpsertVote(&models.Vote{
		ReportID: report.ID,
		UserID:   voter.ID,
		VoteType: models.VoteTypeUp,
	}))
	require.NoError(t, NewCommentRepo(g).SaveComment(&models.Comment{
		ReportID: report.ID,
		UserID:   voter.ID,
		Comment:  "I saw this too",
	}))
	_, err = NewAssignmentRepo(g).CreateAssignment(report.ID, 1)
	require.NoError(t, err)

	require.NoError(t, repo.DeleteReport(report.ID))

	_, err = repo.GetReportByID(report.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	images, err := repo.GetReportImages(report.ID)
	require.NoError(t, err)
	assert.Empty(t, images)

	summary, err := NewVoteRepo(g).GetVoteSummary(report.ID)
	require.NoError(t, err)
	assert.Zero(t, summary.Upvotes)

	comments, err := NewCommentRepo(g).GetCommentsByReport(report.ID, 1)
	require.NoError(t, err)
	assert.Empty(t, comments)

	assignments, err := NewAssignmentRepo(g).GetAssignmentsByReport(report.ID)
	require.NoError(t, err)
	assert.Empty(t, assignments)
}

func TestDeleteReportUnknown(t *testing.T) {
	g := setupTestDB(t)

	err := NewReportRepo(g).DeleteReport(uuid.New())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestGetReportsByStatus(t *testing.T) {
	g := setupTestDB(t)
	user := createTestUser(t, g, "reporter@example.com")
	repo := NewReportRepo(g)

	first := createTestReport(t, g, user.ID)
	createTestReport(t, g, user.ID)

	applied, err := repo.UpdateStatus(first.ID, models.StatusPending, models.StatusResolved)
	require.NoError(t, err)
	require.True(t, applied)

	pending, err := repo.GetReportsByStatus(models.StatusPending, 1)
	require.NoError(t, err)
	assert.Len(t, pending, 1)

	resolved, err := repo.GetReportsByStatus(models.StatusResolved, 1)
	require.NoError(t, err)
	assert.Len(t, resolved, 1)
	assert.Equal(t, first.ID, resolved[0].ID)
}

func TestIssueTypeExists(t *testing.T) {
	g := setupTestDB(t)
	repo := NewReportRepo(g)

	exists, err := repo.IssueTypeExists(1)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.IssueTypeExists(9999)
	require.NoError(t, err)
	assert.False(t, exists)
}
