package assets

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/sirdav1d/geosapiens-challenge/pkg/apperrors"
	"github.com/sirdav1d/geosapiens-challenge/pkg/metadata"
	"github.com/sirdav1d/geosapiens-challenge/pkg/models"
)

const (
	maxNameLength   = 255
	maxSerialLength = 128
)

// Clock provides "now" so acquisition date bounds are testable.
type Clock func() time.Time

// ValidateAssetRequest checks every business field of an upsert body and
// returns one finding per violation. It runs at the boundary, before any
// storage access.
func ValidateAssetRequest(req models.AssetRequest, now Clock) []apperrors.FieldError {
	var findings []apperrors.FieldError

	if strings.TrimSpace(req.Name) == "" {
		findings = append(findings, apperrors.FieldError{
			Field:         "name",
			Message:       "name must not be blank",
			RejectedValue: req.Name,
		})
	} else if utf8.RuneCountInString(req.Name) > maxNameLength {
		findings = append(findings, apperrors.FieldError{
			Field:         "name",
			Message:       fmt.Sprintf("name must be at most %d characters", maxNameLength),
			RejectedValue: req.Name,
		})
	}

	if strings.TrimSpace(req.SerialNumber) == "" {
		findings = append(findings, apperrors.FieldError{
			Field:         "serialNumber",
			Message:       "serialNumber must not be blank",
			RejectedValue: req.SerialNumber,
		})
	} else if utf8.RuneCountInString(req.SerialNumber) > maxSerialLength {
		findings = append(findings, apperrors.FieldError{
			Field:         "serialNumber",
			Message:       fmt.Sprintf("serialNumber must be at most %d characters", maxSerialLength),
			RejectedValue: req.SerialNumber,
		})
	}

	if _, err := metadata.NewCategory(req.Category); err != nil {
		findings = append(findings, apperrors.FieldError{
			Field:         "category",
			Message:       fmt.Sprintf("category must be one of %v", metadata.Categories()),
			RejectedValue: req.Category,
		})
	}

	if _, err := metadata.NewStatus(req.Status); err != nil {
		findings = append(findings, apperrors.FieldError{
			Field:         "status",
			Message:       fmt.Sprintf("status must be one of %v", metadata.Statuses()),
			RejectedValue: req.Status,
		})
	}

	if req.AcquisitionDate == nil {
		findings = append(findings, apperrors.FieldError{
			Field:   "acquisitionDate",
			Message: "acquisitionDate is required",
		})
	} else if req.AcquisitionDate.After(models.DateOf(now())) {
		findings = append(findings, apperrors.FieldError{
			Field:         "acquisitionDate",
			Message:       "acquisitionDate must not be in the future",
			RejectedValue: req.AcquisitionDate.String(),
		})
	}

	return findings
}
