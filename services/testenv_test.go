package services

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/ecotrackhq/ecotrack/config"
	"github.com/ecotrackhq/ecotrack/db"
	"github.com/ecotrackhq/ecotrack/models"
)

// testEnv wires the full service stack over an in-memory database, the same
// way main does over postgres.
type testEnv struct {
	gdb              *db.GormDB
	conf             *config.Config
	authRepo         db.AuthRepository
	reportRepo       db.ReportRepository
	notificationRepo db.NotificationRepository
	mailer           *fakeMailer
	fanout           FanoutService
	audit            AuditService
	auth             AuthService
	reports          ReportService
	votes            VoteService
	comments         CommentService
	assignments      AssignmentService
	notifications    NotificationService
}

// fakeMailer records the last reset mail instead of talking to Mailgun.
type fakeMailer struct {
	lastEmail string
	lastLink  string
}

func (f *fakeMailer) SendResetPassword(userEmail, link string) (string, error) {
	f.lastEmail = userEmail
	f.lastLink = link
	return "fake-message-id", nil
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	gormDB, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, gormDB.AutoMigrate(
		&models.User{},
		&models.Role{},
		&models.Blacklist{},
		&models.IssueType{},
		&models.Organization{},
		&models.Report{},
		&models.ReportImage{},
		&models.Vote{},
		&models.Comment{},
		&models.Assignment{},
		&models.Notification{},
		&models.AuditEntry{},
		&models.ActivityEntry{},
	))
	require.NoError(t, db.SeedRoles(gormDB))
	require.NoError(t, db.SeedIssueTypes(gormDB))
	require.NoError(t, db.SeedOrganizations(gormDB))

	gdb := &db.GormDB{DB: gormDB}
	conf := &config.Config{JWTSecret: "test-secret", BaseUrl: "http://localhost:3000"}

	authRepo := db.NewAuthRepo(gdb)
	reportRepo := db.NewReportRepo(gdb)
	voteRepo := db.NewVoteRepo(gdb)
	commentRepo := db.NewCommentRepo(gdb)
	assignmentRepo := db.NewAssignmentRepo(gdb)
	notificationRepo := db.NewNotificationRepo(gdb)
	auditRepo := db.NewAuditRepo(gdb)

	audit := NewAuditService(auditRepo)
	fanout := NewFanoutService(authRepo, notificationRepo)
	mailer := &fakeMailer{}

	return &testEnv{
		gdb:              gdb,
		conf:             conf,
		authRepo:         authRepo,
		reportRepo:       reportRepo,
		notificationRepo: notificationRepo,
		mailer:           mailer,
		fanout:           fanout,
		audit:            audit,
		auth:             NewAuthService(authRepo, fanout, audit, mailer, conf),
		reports:          NewReportService(reportRepo, fanout, audit, conf),
		votes:            NewVoteService(voteRepo, reportRepo, fanout, audit, conf),
		comments:         NewCommentService(commentRepo, reportRepo, fanout, audit, conf),
		assignments:      NewAssignmentService(assignmentRepo, reportRepo, fanout, audit, conf),
		notifications:    NewNotificationService(notificationRepo, conf),
	}
}

func (e *testEnv) createUser(t *testing.T, email, roleName string) *models.User {
	t.Helper()

	user := &models.User{
		Fullname:       "Test User",
		Username:       strings.Split(email, "@")[0],
		Email:          email,
		HashedPassword: "not-a-real-hash",
	}
	if roleName != "" {
		role, err := e.authRepo.FindRoleByName(roleName)
		require.NoError(t, err)
		user.RoleID = role.ID
	}
	created, err := e.authRepo.CreateUser(user)
	require.NoError(t, err)

	found, err := e.authRepo.FindUserByID(created.ID)
	require.NoError(t, err)
	return found
}

func (e *testEnv) createReport(t *testing.T, reporter *models.User) *models.Report {
	t.Helper()

	report, err := e.reports.CreateReport(reporter, &models.CreateReportRequest{
		IssueTypeID: 1,
		Title:       "Waste piling up at the canal",
		Description: "Bags of refuse dumped overnight",
		Severity:    string(models.SeverityHigh),
	})
	require.NoError(t, err)
	return report
}

// notificationMessages lists the messages currently stored for a user.
func (e *testEnv) notificationMessages(t *testing.T, userID uint) []string {
	t.Helper()

	notifications, err := e.notificationRepo.GetNotificationsByUser(userID, 1)
	require.NoError(t, err)

	messages := make([]string, 0, len(notifications))
	for _, n := range notifications {
		messages = append(messages, n.Message)
	}
	return messages
}
