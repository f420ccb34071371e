package db

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestCreateAssignmentFlagsReport(t *testing.T) {
	g := setupTestDB(t)
	user := createTestUser(t, g, "reporter@example.com")
	report := createTestReport(t, g, user.ID)
	repo := NewAssignmentRepo(g)

	assignment, err := repo.CreateAssignment(report.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, report.ID, assignment.ReportID)

	fresh, err := NewReportRepo(g).GetReportByID(report.ID)
	require.NoError(t, err)
	assert.True(t, fresh.Assigned)
}

func TestCreateAssignmentDuplicate(t *testing.T) {
	g := setupTestDB(t)
	user := createTestUser(t, g, "reporter@example.com")
	report := createTestReport(t, g, user.ID)
	repo := NewAssignmentRepo(g)

	_, err := repo.CreateAssignment(report.ID, 1)
	require.NoError(t, err)

	_, err = repo.CreateAssignment(report.ID, 1)
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}

func TestCreateAssignmentUnknownReport(t *testing.T) {
	g := setupTestDB(t)
	repo := NewAssignmentRepo(g)

	_, err := repo.CreateAssignment(uuid.New(), 1)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestGetAllOrganizationsSeeded(t *testing.T) {
	g := setupTestDB(t)
	repo := NewAssignmentRepo(g)

	orgs, err := repo.GetAllOrganizations()
	require.NoError(t, err)
	assert.Len(t, orgs, 3)
}

func TestAssignSecondOrganization(t *testing.T) {
	g := setupTestDB(t)
	user := createTestUser(t, g, "reporter@example.com")
	report := createTestReport(t, g, user.ID)
	repo := NewAssignmentRepo(g)

	_, err := repo.CreateAssignment(report.ID, 1)
	require.NoError(t, err)
	_, err = repo.CreateAssignment(report.ID, 2)
	require.NoError(t, err)

	assignments, err := repo.GetAssignmentsByReport(report.ID)
	require.NoError(t, err)
	assert.Len(t, assignments, 2)
}
