package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ecotrackhq/ecotrack/models"
	"github.com/ecotrackhq/ecotrack/server/response"
)

func (s *Server) HandleForgotPassword() gin.HandlerFunc {
	return func(c *gin.Context) {
		var forgot models.ForgotPassword
		if err := decode(c, &forgot); err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, err)
			return
		}

		if apiErr := s.AuthService.SendEmailForPasswordReset(&forgot); apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}

		// Same answer whether or not the account exists.
		response.JSON(c, "if the account exists, a reset link has been sent", http.StatusOK, nil, nil)
	}
}

func (s *Server) ResetPassword() gin.HandlerFunc {
	return func(c *gin.Context) {
		var resetPassword models.ResetPassword
		if err := decode(c, &resetPassword); err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, err)
			return
		}

		token := c.Param("token")
		if apiErr := s.AuthService.ResetPassword(&resetPassword, token); apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}

		response.JSON(c, "password reset successfully", http.StatusOK, nil, nil)
	}
}
