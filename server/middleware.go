package server

import (
	"bytes"
	"io"
	"net/http"

	ratelimit "github.com/JGLTechnologies/gin-rate-limit"
	"github.com/gin-gonic/gin"

	errs "github.com/ecotrackhq/ecotrack/errors"
	"github.com/ecotrackhq/ecotrack/models"
	"github.com/ecotrackhq/ecotrack/server/response"
	"github.com/ecotrackhq/ecotrack/services/jwt"
)

// Authorize validates the bearer token, rejects blacklisted and suspended
// accounts, and puts the authenticated user on the context.
func (s *Server) Authorize() gin.HandlerFunc {
	return func(c *gin.Context) {
		accessToken := getTokenFromHeader(c)
		if accessToken == "" {
			respondAndAbort(c, "", http.StatusUnauthorized, nil, errs.New("unauthorized", http.StatusUnauthorized))
			return
		}

		if s.AuthRepository.IsTokenInBlacklist(accessToken) {
			respondAndAbort(c, "access token is blacklisted", http.StatusUnauthorized, nil, errs.New("unauthorized", http.StatusUnauthorized))
			return
		}

		accessClaims, err := jwt.ValidateAndGetClaims(accessToken, s.Config.JWTSecret)
		if err != nil {
			respondAndAbort(c, "", http.StatusUnauthorized, nil, errs.New("unauthorized", http.StatusUnauthorized))
			return
		}

		var userID uint
		switch v := accessClaims["id"].(type) {
		case float64:
			userID = uint(v)
		default:
			respondAndAbort(c, "", http.StatusBadRequest, nil, errs.New("invalid userID format", http.StatusBadRequest))
			return
		}

		user, err := s.AuthRepository.FindUserByID(userID)
		if err != nil {
			respondAndAbort(c, "user not found", http.StatusUnauthorized, nil, errs.New("unauthorized", http.StatusUnauthorized))
			return
		}
		if user.IsSuspended {
			respondAndAbort(c, "", errs.InActiveUserError.Status, nil, errs.InActiveUserError)
			return
		}

		c.Set("user", user)
		c.Set("userID", userID)
		c.Set("access_token", accessToken)
		c.Next()
	}
}

// AdminOnly gates admin-scoped routes. It runs after Authorize, so the user
// is already on the context.
func (s *Server) AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := GetUserFromContext(c)
		if err != nil {
			respondAndAbort(c, "", http.StatusUnauthorized, nil, errs.New("unauthorized", http.StatusUnauthorized))
			return
		}
		if !user.IsAdmin() {
			respondAndAbort(c, "", http.StatusForbidden, nil, errs.New("admin access required", http.StatusForbidden))
			return
		}
		c.Next()
	}
}

// GetUserFromContext returns the authenticated user placed by Authorize.
func GetUserFromContext(c *gin.Context) (*models.User, error) {
	contextUser, exists := c.Get("user")
	if !exists {
		return nil, errs.ErrUnauthorized
	}
	user, ok := contextUser.(*models.User)
	if !ok {
		return nil, errs.ErrUnauthorized
	}
	return user, nil
}

func limitRateForPasswordReset(store ratelimit.Store) gin.HandlerFunc {
	return ratelimit.RateLimiter(store, &ratelimit.Options{
		ErrorHandler:   errs.ErrorHandler,
		KeyFunc:        keyFunc,
		BeforeResponse: nil,
	})
}

// keyFunc rate-limits password reset requests per target email rather than
// per client IP.
func keyFunc(c *gin.Context) string {
	buf, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return c.ClientIP()
	}
	c.Request.Body = io.NopCloser(bytes.NewBuffer(buf))

	var forgot models.ForgotPassword
	if err := decode(c, &forgot); err != nil {
		c.Request.Body = io.NopCloser(bytes.NewBuffer(buf))
		return c.ClientIP()
	}

	c.Request.Body = io.NopCloser(bytes.NewBuffer(buf))
	return forgot.Email
}

// respondAndAbort calls response.JSON and aborts the Context
func respondAndAbort(c *gin.Context, message string, status int, data interface{}, e *errs.Error) {
	response.JSON(c, message, status, data, e)
	c.Abort()
}

// getTokenFromHeader returns the token string in the authorization header
func getTokenFromHeader(c *gin.Context) string {
	authHeader := c.Request.Header.Get("Authorization")
	if len(authHeader) > 8 {
		return authHeader[7:]
	}
	return ""
}
