package server

import (
	"fmt"
	"os"
	"time"

	ratelimit "github.com/JGLTechnologies/gin-rate-limit"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func (s *Server) setupRouter() *gin.Engine {
	ginMode := os.Getenv("GIN_MODE")
	if ginMode == "test" {
		r := gin.New()
		s.defineRoutes(r)
		return r
	}

	r := gin.New()

	// LoggerWithFormatter middleware will write the logs to gin.DefaultWriter
	// By default gin.DefaultWriter = os.Stdout
	r.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		return fmt.Sprintf("%s - [%s] \"%s %s %s %d %s \"%s\" %s\"\n",
			param.ClientIP,
			param.TimeStamp.Format(time.RFC1123),
			param.Method,
			param.Path,
			param.Request.Proto,
			param.StatusCode,
			param.Latency,
			param.Request.UserAgent(),
			param.ErrorMessage,
		)
	}))
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowAllOrigins:  true,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	s.defineRoutes(r)

	return r
}

func (s *Server) defineRoutes(router *gin.Engine) {
	store := ratelimit.InMemoryStore(&ratelimit.InMemoryOptions{
		Rate:  time.Minute,
		Limit: 3,
	})
	limitRate := limitRateForPasswordReset(store)

	apirouter := router.Group("/api/v1")
	apirouter.POST("/auth/signup", s.handleSignup())
	apirouter.POST("/auth/login", s.handleLogin())
	apirouter.POST("/password/forgot", limitRate, s.HandleForgotPassword())
	apirouter.POST("/password/reset/:token", s.ResetPassword())
	apirouter.GET("/reports", s.handleGetAllReports())
	apirouter.GET("/reports/:reportID", s.handleGetReport())
	apirouter.GET("/report/:reportID/votes", s.handleGetVoteSummary())
	apirouter.GET("/report/:reportID/comments", s.handleGetComments())
	apirouter.GET("/organizations", s.handleGetAllOrganizations())

	authorized := apirouter.Group("/")
	authorized.Use(s.Authorize())
	authorized.GET("/logout", s.handleLogout())
	authorized.GET("/me", s.handleShowProfile())
	authorized.PUT("/me/password", s.handleChangePassword())
	authorized.POST("/user/report", s.handleCreateReport())
	authorized.PUT("/report/:reportID/vote", s.handleCastVote())
	authorized.DELETE("/report/:reportID/vote", s.handleRemoveVote())
	authorized.POST("/report/:reportID/comment", s.handlePostComment())
	authorized.PUT("/comment/:commentID", s.handleEditComment())
	authorized.DELETE("/comment/:commentID", s.handleDeleteComment())
	authorized.GET("/report/:reportID/assignments", s.handleGetAssignments())
	authorized.GET("/notifications", s.handleGetNotifications())
	authorized.PUT("/notifications/:id/read", s.handleMarkNotificationRead())
	authorized.DELETE("/notifications/:id", s.handleDeleteNotification())

	admin := authorized.Group("/")
	admin.Use(s.AdminOnly())
	admin.PUT("/report/:reportID/status", s.handleUpdateReportStatus())
	admin.DELETE("/report/:reportID", s.handleDeleteReport())
	admin.POST("/report/:reportID/assign/:orgID", s.handleAssignReport())
	admin.PUT("/user/:userID/status", s.handleToggleUserStatus())
	admin.GET("/users/all", s.handleGetAllUsers())
	admin.GET("/audit", s.handleGetAuditEntries())
}
