package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/Domenick1991/goaholidays/internal/domain"
	"github.com/Domenick1991/goaholidays/internal/storage"
	"github.com/gin-gonic/gin"
)

type errorResponse struct {
	Error      string            `json:"error"`
	Details    string            `json:"details,omitempty"`
	Fields     map[string]string `json:"fields,omitempty"`
	ReadyState *int              `json:"readyState,omitempty"`
}

// writeError maps a use-case error onto a status code. fallback is the message for
// errors that fit no known class.
func writeError(c *gin.Context, entity string, err error, fallback string) {
	if ve := domain.IsValidationError(err); ve != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: ve.Error(), Fields: ve.Fields()})
		return
	}

	switch {
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, errorResponse{Error: entity + " not found"})
	case errors.Is(err, domain.ErrDuplicateKey):
		c.JSON(http.StatusBadRequest, errorResponse{Error: "Duplicate entry detected"})
	case errors.Is(err, domain.ErrStoreUnavailable):
		c.JSON(http.StatusServiceUnavailable, errorResponse{
			Error:   "Database connection timeout. Please check your database connection and settings.",
			Details: err.Error(),
		})
	default:
		log.Printf("%s request failed: %v", entity, err)
		c.JSON(http.StatusInternalServerError, errorResponse{Error: fallback, Details: err.Error()})
	}
}

func writeBindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, errorResponse{Error: "Invalid request body", Details: err.Error()})
}

// RequireStore short-circuits with 503 while the store is not connected.
func RequireStore(store storage.Readiness) gin.HandlerFunc {
	return func(c *gin.Context) {
		if store.Ready() {
			c.Next()
			return
		}

		state := int(store.State())
		c.AbortWithStatusJSON(http.StatusServiceUnavailable, errorResponse{
			Error:      "Database not connected. Please wait and try again.",
			ReadyState: &state,
		})
	}
}
