package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	errs "github.com/ecotrackhq/ecotrack/errors"
	"github.com/ecotrackhq/ecotrack/server/response"
)

func (s *Server) handleGetNotifications() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := GetUserFromContext(c)
		if err != nil {
			response.JSON(c, "", http.StatusUnauthorized, nil, err)
			return
		}

		notifications, err := s.NotificationService.ListNotifications(user.ID, pageFromQuery(c))
		if err != nil {
			handleServiceError(c, err)
			return
		}
		response.JSON(c, "notifications retrieved", http.StatusOK, notifications, nil)
	}
}

func (s *Server) handleMarkNotificationRead() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := GetUserFromContext(c)
		if err != nil {
			response.JSON(c, "", http.StatusUnauthorized, nil, err)
			return
		}

		notificationID, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			response.JSON(c, "invalid notification id", http.StatusBadRequest, nil, errs.ErrBadRequest)
			return
		}

		if err := s.NotificationService.MarkRead(user.ID, uint(notificationID)); err != nil {
			handleServiceError(c, err)
			return
		}
		response.JSON(c, "notification marked as read", http.StatusOK, nil, nil)
	}
}

func (s *Server) handleDeleteNotification() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := GetUserFromContext(c)
		if err != nil {
			response.JSON(c, "", http.StatusUnauthorized, nil, err)
			return
		}

		notificationID, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			response.JSON(c, "invalid notification id", http.StatusBadRequest, nil, errs.ErrBadRequest)
			return
		}

		if err := s.NotificationService.DeleteNotification(user.ID, uint(notificationID)); err != nil {
			handleServiceError(c, err)
			return
		}
		response.JSON(c, "notification deleted", http.StatusOK, nil, nil)
	}
}

func (s *Server) handleGetAuditEntries() gin.HandlerFunc {
	return func(c *gin.Context) {
		var from, to *time.Time
		if raw := c.Query("from"); raw != "" {
			parsed, err := time.Parse(time.RFC3339, raw)
			if err != nil {
				response.JSON(c, "invalid from timestamp", http.StatusBadRequest, nil, errs.ErrBadRequest)
				return
			}
			from = &parsed
		}
		if raw := c.Query("to"); raw != "" {
			parsed, err := time.Parse(time.RFC3339, raw)
			if err != nil {
				response.JSON(c, "invalid to timestamp", http.StatusBadRequest, nil, errs.ErrBadRequest)
				return
			}
			to = &parsed
		}

		entries, err := s.AuditService.GetAuditEntries(c.Query("table"), from, to, pageFromQuery(c))
		if err != nil {
			handleServiceError(c, err)
			return
		}
		response.JSON(c, "audit entries retrieved", http.StatusOK, entries, nil)
	}
}
