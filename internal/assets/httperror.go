package assets

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sirdav1d/geosapiens-challenge/pkg/apperrors"
)

const (
	codeValidationError      = "VALIDATION_ERROR"
	codeInvalidParameter     = "INVALID_PARAMETER"
	codeInvalidRequest       = "INVALID_REQUEST"
	codeAssetNotFound        = "ASSET_NOT_FOUND"
	codeSerialNumberConflict = "SERIAL_NUMBER_CONFLICT"
	codeInternalError        = "INTERNAL_ERROR"
)

// apiError is the error body shared by every endpoint.
type apiError struct {
	Timestamp time.Time              `json:"timestamp"`
	Status    int                    `json:"status"`
	Code      string                 `json:"code"`
	Message   string                 `json:"message"`
	Path      string                 `json:"path"`
	Errors    []apperrors.FieldError `json:"errors"`
}

// writeError maps a domain error onto one response status and machine
// readable code. Anything unrecognized is a storage/server fault: logged,
// surfaced as 500, never retried here.
func (h *AssetHandler) writeError(c *gin.Context, err error) {
	var (
		validation   *apperrors.ValidationError
		invalidParam *apperrors.InvalidParameterError
		notFound     *apperrors.NotFoundError
		conflict     *apperrors.SerialConflictError
	)

	status := http.StatusInternalServerError
	code := codeInternalError
	message := "unexpected server error"
	findings := []apperrors.FieldError{}

	switch {
	case errors.As(err, &validation):
		status = http.StatusBadRequest
		code = codeValidationError
		message = "request validation failed"
		findings = validation.Findings
	case errors.As(err, &invalidParam):
		status = http.StatusBadRequest
		code = codeInvalidRequest
		message = invalidParam.Message
		if invalidParam.Param != "" {
			code = codeInvalidParameter
			findings = []apperrors.FieldError{{
				Field:         invalidParam.Param,
				Message:       invalidParam.Message,
				RejectedValue: invalidParam.Rejected,
			}}
		}
	case errors.As(err, &notFound):
		status = http.StatusNotFound
		code = codeAssetNotFound
		message = notFound.Error()
	case errors.As(err, &conflict):
		status = http.StatusConflict
		code = codeSerialNumberConflict
		message = conflict.Error()
	default:
		h.logger.Error("request failed",
			zap.String("path", c.Request.URL.Path),
			zap.String("method", c.Request.Method),
			zap.Error(err),
		)
	}

	writeAPIError(c, status, code, message, findings)
}

// writeInvalidBody answers a request whose body could not be bound at all.
func (h *AssetHandler) writeInvalidBody(c *gin.Context) {
	writeAPIError(c, http.StatusBadRequest, codeValidationError, "invalid request body", []apperrors.FieldError{})
}

func writeAPIError(c *gin.Context, status int, code, message string, findings []apperrors.FieldError) {
	c.AbortWithStatusJSON(status, apiError{
		Timestamp: time.Now(),
		Status:    status,
		Code:      code,
		Message:   message,
		Path:      c.Request.URL.Path,
		Errors:    findings,
	})
}
