package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errs "github.com/ecotrackhq/ecotrack/errors"
	"github.com/ecotrackhq/ecotrack/models"
)

func TestAssignToOrganization(t *testing.T) {
	env := newTestEnv(t)
	reporter := env.createUser(t, "reporter@example.com", "")
	admin := env.createUser(t, "admin@example.com", models.RoleAdmin)
	report := env.createReport(t, reporter)

	assignment, err := env.assignments.AssignToOrganization(admin, report.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, report.ID, assignment.ReportID)
	assert.Equal(t, uint(1), assignment.OrganizationID)

	fresh, err := env.reports.GetReport(report.ID)
	require.NoError(t, err)
	assert.True(t, fresh.Assigned)
}

func TestAssignToOrganizationTwiceConflicts(t *testing.T) {
	env := newTestEnv(t)
	reporter := env.createUser(t, "reporter@example.com", "")
	admin := env.createUser(t, "admin@example.com", models.RoleAdmin)
	report := env.createReport(t, reporter)

	_, err := env.assignments.AssignToOrganization(admin, report.ID, 1)
	require.NoError(t, err)

	_, err = env.assignments.AssignToOrganization(admin, report.ID, 1)
	assert.Equal(t, errs.ErrAlreadyAssigned, err)

	// A different organization is still fine.
	_, err = env.assignments.AssignToOrganization(admin, report.ID, 2)
	require.NoError(t, err)

	assignments, err := env.assignments.GetAssignmentsByReport(report.ID)
	require.NoError(t, err)
	assert.Len(t, assignments, 2)
}

func TestAssignUnknownReportOrOrganization(t *testing.T) {
	env := newTestEnv(t)
	reporter := env.createUser(t, "reporter@example.com", "")
	admin := env.createUser(t, "admin@example.com", models.RoleAdmin)
	report := env.createReport(t, reporter)

	_, err := env.assignments.AssignToOrganization(admin, uuid.New(), 1)
	assert.Equal(t, errs.ErrNotFound, err)

	_, err = env.assignments.AssignToOrganization(admin, report.ID, 9999)
	assert.Equal(t, errs.ErrNotFound, err)
}

func TestAssignNotifiesReporter(t *testing.T) {
	env := newTestEnv(t)
	reporter := env.createUser(t, "reporter@example.com", "")
	admin := env.createUser(t, "admin@example.com", models.RoleAdmin)
	report := env.createReport(t, reporter)

	before := len(env.notificationMessages(t, reporter.ID))

	_, err := env.assignments.AssignToOrganization(admin, report.ID, 1)
	require.NoError(t, err)

	messages := env.notificationMessages(t, reporter.ID)
	require.Len(t, messages, before+1)
	assert.Contains(t, messages[0], "assigned to")
}
