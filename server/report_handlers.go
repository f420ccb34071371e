package server

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	errs "github.com/ecotrackhq/ecotrack/errors"
	"github.com/ecotrackhq/ecotrack/models"
	"github.com/ecotrackhq/ecotrack/server/response"
)

// reportIDFromParam parses the :reportID path parameter.
func reportIDFromParam(c *gin.Context) (uuid.UUID, bool) {
	reportID, err := uuid.Parse(c.Param("reportID"))
	if err != nil {
		response.JSON(c, "invalid report id", http.StatusBadRequest, nil, errs.ErrBadRequest)
		return uuid.Nil, false
	}
	return reportID, true
}

// pageFromQuery parses the page query parameter, defaulting to the first page.
func pageFromQuery(c *gin.Context) int {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

func (s *Server) handleCreateReport() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := GetUserFromContext(c)
		if err != nil {
			response.JSON(c, "", http.StatusUnauthorized, nil, err)
			return
		}

		var request models.CreateReportRequest
		if err := decode(c, &request); err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, err)
			return
		}

		report, err := s.ReportService.CreateReport(user, &request)
		if err != nil {
			handleServiceError(c, err)
			return
		}
		response.JSON(c, "report created", http.StatusCreated, report, nil)
	}
}

func (s *Server) handleGetReport() gin.HandlerFunc {
	return func(c *gin.Context) {
		reportID, ok := reportIDFromParam(c)
		if !ok {
			return
		}
		report, err := s.ReportService.GetReport(reportID)
		if err != nil {
			handleServiceError(c, err)
			return
		}
		response.JSON(c, "report retrieved", http.StatusOK, report, nil)
	}
}

func (s *Server) handleGetAllReports() gin.HandlerFunc {
	return func(c *gin.Context) {
		page := pageFromQuery(c)

		var reports []models.Report
		var err error
		if status := c.Query("status"); status != "" {
			reports, err = s.ReportService.GetReportsByStatus(status, page)
		} else if reporter := c.Query("reporter"); reporter != "" {
			reporterID, parseErr := strconv.ParseUint(reporter, 10, 64)
			if parseErr != nil {
				response.JSON(c, "invalid reporter id", http.StatusBadRequest, nil, errs.ErrBadRequest)
				return
			}
			reports, err = s.ReportService.GetReportsByReporter(uint(reporterID), page)
		} else {
			reports, err = s.ReportService.GetAllReports(page)
		}
		if err != nil {
			handleServiceError(c, err)
			return
		}
		response.JSON(c, "reports retrieved", http.StatusOK, reports, nil)
	}
}

func (s *Server) handleUpdateReportStatus() gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, err := GetUserFromContext(c)
		if err != nil {
			response.JSON(c, "", http.StatusUnauthorized, nil, err)
			return
		}

		reportID, ok := reportIDFromParam(c)
		if !ok {
			return
		}

		var request models.UpdateStatusRequest
		if err := decode(c, &request); err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, err)
			return
		}

		report, err := s.ReportService.UpdateStatus(actor, reportID, request.Status)
		if err != nil {
			handleServiceError(c, err)
			return
		}
		response.JSON(c, "status updated", http.StatusOK, report, nil)
	}
}

func (s *Server) handleDeleteReport() gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, err := GetUserFromContext(c)
		if err != nil {
			response.JSON(c, "", http.StatusUnauthorized, nil, err)
			return
		}

		reportID, ok := reportIDFromParam(c)
		if !ok {
			return
		}

		if _, err := s.ReportService.DeleteReport(actor, reportID); err != nil {
			handleServiceError(c, err)
			return
		}
		response.JSON(c, "report deleted", http.StatusOK, nil, nil)
	}
}
