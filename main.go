package main

import (
	"log"

	"github.com/ecotrackhq/ecotrack/config"
	"github.com/ecotrackhq/ecotrack/db"
	"github.com/ecotrackhq/ecotrack/mailingservices"
	"github.com/ecotrackhq/ecotrack/server"
	"github.com/ecotrackhq/ecotrack/services"
)

func main() {
	conf, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	mailgunClient := mailingservices.NewMailgunService(conf)

	gormDB := db.GetDB(conf)

	authRepo := db.NewAuthRepo(gormDB)
	reportRepo := db.NewReportRepo(gormDB)
	voteRepo := db.NewVoteRepo(gormDB)
	commentRepo := db.NewCommentRepo(gormDB)
	assignmentRepo := db.NewAssignmentRepo(gormDB)
	notificationRepo := db.NewNotificationRepo(gormDB)
	auditRepo := db.NewAuditRepo(gormDB)

	auditService := services.NewAuditService(auditRepo)
	fanoutService := services.NewFanoutService(authRepo, notificationRepo)
	authService := services.NewAuthService(authRepo, fanoutService, auditService, mailgunClient, conf)
	reportService := services.NewReportService(reportRepo, fanoutService, auditService, conf)
	voteService := services.NewVoteService(voteRepo, reportRepo, fanoutService, auditService, conf)
	commentService := services.NewCommentService(commentRepo, reportRepo, fanoutService, auditService, conf)
	assignmentService := services.NewAssignmentService(assignmentRepo, reportRepo, fanoutService, auditService, conf)
	notificationService := services.NewNotificationService(notificationRepo, conf)

	s := &server.Server{
		Mail:                mailgunClient,
		Config:              conf,
		AuthRepository:      authRepo,
		AuthService:         authService,
		ReportService:       reportService,
		VoteService:         voteService,
		CommentService:      commentService,
		AssignmentService:   assignmentService,
		NotificationService: notificationService,
		AuditService:        auditService,
	}

	s.Start()
}
