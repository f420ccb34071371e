package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	errs "github.com/ecotrackhq/ecotrack/errors"
)

// JSON writes the standard response envelope. errors may be nil, a single
// error, or a slice of errors collected from validation.
func JSON(c *gin.Context, message string, status int, data interface{}, errors interface{}) {
	responsedata := gin.H{
		"message": message,
		"data":    data,
		"errors":  errorsToStrings(errors),
		"status":  http.StatusText(status),
	}

	c.JSON(status, responsedata)
}

func errorsToStrings(errors interface{}) []string {
	switch v := errors.(type) {
	case nil:
		return nil
	case *errs.Error:
		if v == nil {
			return nil
		}
		return []string{v.Message}
	case error:
		return []string{v.Error()}
	case []error:
		out := make([]string, 0, len(v))
		for _, e := range v {
			if e != nil {
				out = append(out, e.Error())
			}
		}
		return out
	case []string:
		return v
	default:
		return nil
	}
}
