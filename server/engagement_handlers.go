package server

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	errs "github.com/ecotrackhq/ecotrack/errors"
	"github.com/ecotrackhq/ecotrack/models"
	"github.com/ecotrackhq/ecotrack/server/response"
)

func (s *Server) handleCastVote() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := GetUserFromContext(c)
		if err != nil {
			response.JSON(c, "", http.StatusUnauthorized, nil, err)
			return
		}

		reportID, ok := reportIDFromParam(c)
		if !ok {
			return
		}

		var request models.CastVoteRequest
		if err := decode(c, &request); err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, err)
			return
		}

		summary, err := s.VoteService.CastVote(user, reportID, request.VoteType)
		if err != nil {
			handleServiceError(c, err)
			return
		}
		response.JSON(c, "vote recorded", http.StatusOK, summary, nil)
	}
}

func (s *Server) handleRemoveVote() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := GetUserFromContext(c)
		if err != nil {
			response.JSON(c, "", http.StatusUnauthorized, nil, err)
			return
		}

		reportID, ok := reportIDFromParam(c)
		if !ok {
			return
		}

		summary, err := s.VoteService.RemoveVote(user, reportID)
		if err != nil {
			handleServiceError(c, err)
			return
		}
		response.JSON(c, "vote removed", http.StatusOK, summary, nil)
	}
}

func (s *Server) handleGetVoteSummary() gin.HandlerFunc {
	return func(c *gin.Context) {
		reportID, ok := reportIDFromParam(c)
		if !ok {
			return
		}

		summary, err := s.VoteService.GetVoteSummary(reportID)
		if err != nil {
			handleServiceError(c, err)
			return
		}
		response.JSON(c, "vote summary retrieved", http.StatusOK, summary, nil)
	}
}

func (s *Server) handlePostComment() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := GetUserFromContext(c)
		if err != nil {
			response.JSON(c, "", http.StatusUnauthorized, nil, err)
			return
		}

		reportID, ok := reportIDFromParam(c)
		if !ok {
			return
		}

		var request models.CommentRequest
		if err := decode(c, &request); err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, err)
			return
		}

		comment, err := s.CommentService.PostComment(user, reportID, request.Comment)
		if err != nil {
			handleServiceError(c, err)
			return
		}
		response.JSON(c, "comment posted", http.StatusCreated, comment, nil)
	}
}

func (s *Server) handleGetComments() gin.HandlerFunc {
	return func(c *gin.Context) {
		reportID, ok := reportIDFromParam(c)
		if !ok {
			return
		}

		comments, err := s.CommentService.GetCommentsByReport(reportID, pageFromQuery(c))
		if err != nil {
			handleServiceError(c, err)
			return
		}
		response.JSON(c, "comments retrieved", http.StatusOK, comments, nil)
	}
}

func (s *Server) handleEditComment() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := GetUserFromContext(c)
		if err != nil {
			response.JSON(c, "", http.StatusUnauthorized, nil, err)
			return
		}

		commentID, err := strconv.ParseUint(c.Param("commentID"), 10, 64)
		if err != nil {
			response.JSON(c, "invalid comment id", http.StatusBadRequest, nil, errs.ErrBadRequest)
			return
		}

		var request models.CommentRequest
		if err := decode(c, &request); err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, err)
			return
		}

		comment, err := s.CommentService.EditComment(user, uint(commentID), request.Comment)
		if err != nil {
			handleServiceError(c, err)
			return
		}
		response.JSON(c, "comment updated", http.StatusOK, comment, nil)
	}
}

func (s *Server) handleDeleteComment() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := GetUserFromContext(c)
		if err != nil {
			response.JSON(c, "", http.StatusUnauthorized, nil, err)
			return
		}

		commentID, err := strconv.ParseUint(c.Param("commentID"), 10, 64)
		if err != nil {
			response.JSON(c, "invalid comment id", http.StatusBadRequest, nil, errs.ErrBadRequest)
			return
		}

		if err := s.CommentService.DeleteComment(user, uint(commentID)); err != nil {
			handleServiceError(c, err)
			return
		}
		response.JSON(c, "comment deleted", http.StatusOK, nil, nil)
	}
}

func (s *Server) handleAssignReport() gin.HandlerFunc {
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

		orgID, err := strconv.ParseUint(c.Param("orgID"), 10, 64)
		if err != nil {
			response.JSON(c, "invalid organization id", http.StatusBadRequest, nil, errs.ErrBadRequest)
			return
		}

		assignment, err := s.AssignmentService.AssignToOrganization(actor, reportID, uint(orgID))
		if err != nil {
			handleServiceError(c, err)
			return
		}
		response.JSON(c, "report assigned", http.StatusCreated, assignment, nil)
	}
}

func (s *Server) handleGetAssignments() gin.HandlerFunc {
	return func(c *gin.Context) {
		reportID, ok := reportIDFromParam(c)
		if !ok {
			return
		}

		assignments, err := s.AssignmentService.GetAssignmentsByReport(reportID)
		if err != nil {
			handleServiceError(c, err)
			return
		}
		response.JSON(c, "assignments retrieved", http.StatusOK, assignments, nil)
	}
}

func (s *Server) handleGetAllOrganizations() gin.HandlerFunc {
	return func(c *gin.Context) {
		organizations, err := s.AssignmentService.GetAllOrganizations()
		if err != nil {
			handleServiceError(c, err)
			return
		}
		response.JSON(c, "organizations retrieved", http.StatusOK, organizations, nil)
	}
}
