package server

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	errs "github.com/ecotrackhq/ecotrack/errors"
	"github.com/ecotrackhq/ecotrack/models"
	"github.com/ecotrackhq/ecotrack/server/response"
)

// handleServiceError maps a service error onto the response envelope. Domain
// errors carry their own status; anything else is a 500.
func handleServiceError(c *gin.Context, err error) {
	if domainErr, ok := err.(*errs.Error); ok {
		response.JSON(c, "", domainErr.Status, nil, domainErr)
		return
	}
	response.JSON(c, "", http.StatusInternalServerError, nil, errs.ErrInternalServerError)
}

func (s *Server) handleSignup() gin.HandlerFunc {
	return func(c *gin.Context) {
		var user models.User
		if err := decode(c, &user); err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, err)
			return
		}
		if validationErrs := models.ValidateStruct(&user); len(validationErrs) > 0 {
			response.JSON(c, "", http.StatusBadRequest, nil, validationErrs)
			return
		}

		created, err := s.AuthService.SignupUser(&user)
		if err != nil {
			handleServiceError(c, err)
			return
		}

		response.JSON(c, "signup successful", http.StatusCreated, models.UserResponse{
			ID:       created.ID,
			Fullname: created.Fullname,
			Username: created.Username,
			Email:    created.Email,
		}, nil)
	}
}

func (s *Server) handleLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		var loginRequest models.LoginRequest
		if err := decode(c, &loginRequest); err != nil {
			response.JSON(c, "", errs.ErrBadRequest.Status, nil, err)
			return
		}
		userResponse, err := s.AuthService.LoginUser(&loginRequest)
		if err != nil {
			response.JSON(c, "", err.Status, nil, err)
			return
		}
		response.JSON(c, "login successful", http.StatusOK, userResponse, nil)
	}
}

func (s *Server) handleLogout() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := GetUserFromContext(c)
		if err != nil {
			response.JSON(c, "", http.StatusUnauthorized, nil, err)
			return
		}
		accessToken, _ := c.Get("access_token")
		token, _ := accessToken.(string)

		if err := s.AuthService.LogoutUser(token, user.Email); err != nil {
			handleServiceError(c, err)
			return
		}
		response.JSON(c, "logout successful", http.StatusOK, nil, nil)
	}
}

func (s *Server) handleShowProfile() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := GetUserFromContext(c)
		if err != nil {
			response.JSON(c, "", http.StatusUnauthorized, nil, err)
			return
		}

		profile, err := s.AuthService.GetUserProfile(user.ID)
		if err != nil {
			handleServiceError(c, err)
			return
		}

		response.JSON(c, "profile retrieved", http.StatusOK, models.UserResponse{
			ID:       profile.ID,
			Fullname: profile.Fullname,
			Username: profile.Username,
			Email:    profile.Email,
			RoleName: profile.Role.Name,
		}, nil)
	}
}

func (s *Server) handleChangePassword() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := GetUserFromContext(c)
		if err != nil {
			response.JSON(c, "", http.StatusUnauthorized, nil, err)
			return
		}

		var request models.ChangePassword
		if err := decode(c, &request); err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, err)
			return
		}

		if apiErr := s.AuthService.ChangePassword(user.ID, request.CurrentPassword, request.NewPassword); apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}
		response.JSON(c, "password changed", http.StatusOK, nil, nil)
	}
}

func (s *Server) handleToggleUserStatus() gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, err := GetUserFromContext(c)
		if err != nil {
			response.JSON(c, "", http.StatusUnauthorized, nil, err)
			return
		}

		userID, err := strconv.ParseUint(c.Param("userID"), 10, 64)
		if err != nil {
			response.JSON(c, "invalid user id", http.StatusBadRequest, nil, errs.ErrBadRequest)
			return
		}

		var request models.ToggleUserStatusRequest
		if err := decode(c, &request); err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, err)
			return
		}

		if err := s.AuthService.ToggleUserStatus(actor.ID, uint(userID), request.Suspend); err != nil {
			handleServiceError(c, err)
			return
		}

		message := "user reactivated"
		if request.Suspend {
			message = "user suspended"
		}
		response.JSON(c, message, http.StatusOK, nil, nil)
	}
}

func (s *Server) handleGetAllUsers() gin.HandlerFunc {
	return func(c *gin.Context) {
		users, err := s.AuthService.GetAllUsers()
		if err != nil {
			handleServiceError(c, err)
			return
		}
		response.JSON(c, "users retrieved", http.StatusOK, users, nil)
	}
}
