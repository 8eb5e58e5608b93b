package handlers

import (
	"net/http"

	"advocates/internal/domain"
	"advocates/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

// ErrorResponse standardizes error payloads.
type ErrorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

func respondError(c *gin.Context, status int, code, message string, err error) {
	if code == "" {
		code = http.StatusText(status)
	}
	if err != nil {
		_ = c.Error(err)
	}
	c.AbortWithStatusJSON(status, ErrorResponse{
		Error:     message,
		Code:      code,
		RequestID: middleware.GetRequestID(c),
	})
}

// RespondDomainError maps domain errors to HTTP responses. Storage failures
// never leak their cause to the client.
func RespondDomainError(c *gin.Context, err error) {
	switch {
	case domain.IsValidation(err):
		respondError(c, http.StatusBadRequest, "validation_error", err.Error(), err)
	case domain.IsNotFound(err):
		respondError(c, http.StatusNotFound, "not_found", err.Error(), err)
	case isDomain(err):
		de, _ := domain.AsDomain(err)
		respondError(c, domainStatus(de.Code), de.Code, de.Error(), err)
	default:
		respondError(c, http.StatusInternalServerError, "internal_error", "internal server error", err)
	}
}

func isDomain(err error) bool {
	_, ok := domain.AsDomain(err)
	return ok
}

func domainStatus(code string) int {
	switch code {
	case domain.CodeDatabaseUnavailable, domain.CodeSchemaMissing:
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}
