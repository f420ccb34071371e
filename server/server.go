package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ecotrackhq/ecotrack/config"
	"github.com/ecotrackhq/ecotrack/db"
	"github.com/ecotrackhq/ecotrack/mailingservices"
	"github.com/ecotrackhq/ecotrack/services"
)

// Server holds the wired dependencies for the HTTP layer.
type Server struct {
	Config              *config.Config
	AuthRepository      db.AuthRepository
	AuthService         services.AuthService
	ReportService       services.ReportService
	VoteService         services.VoteService
	CommentService      services.CommentService
	AssignmentService   services.AssignmentService
	NotificationService services.NotificationService
	AuditService        services.AuditService
	Mail                mailingservices.Mailer
}

// Start runs the HTTP server until an interrupt arrives, then shuts down
// gracefully.
func (s *Server) Start() {
	r := s.setupRouter()

	port := s.Config.Port
	if port == 0 {
		port = 8080
	}

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: r,
	}

	go func() {
		log.Printf("server started on port %d", port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit
	log.Println("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	log.Println("server exiting")
}

// decode binds the JSON request body into v.
func decode(c *gin.Context, v interface{}) error {
	if err := c.ShouldBindJSON(v); err != nil {
		return err
	}
	return nil
}
