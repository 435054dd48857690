package assets

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/sirdav1d/geosapiens-challenge/pkg/models"
)

func fixedClock() time.Time {
	return time.Date(2024, time.June, 15, 12, 0, 0, 0, time.UTC)
}

func validRequest() models.AssetRequest {
	date := models.NewDate(2024, time.June, 1)
	return models.AssetRequest{
		Name:            "Notebook Dell",
		SerialNumber:    "SN-0001",
		Category:        "COMPUTER",
		Status:          "IN_USE",
		AcquisitionDate: &date,
	}
}

func TestValidateAssetRequestAcceptsValidBody(t *testing.T) {
	assert.Empty(t, ValidateAssetRequest(validRequest(), fixedClock))
}

func TestValidateAssetRequestRejectsBlankName(t *testing.T) {
	req := validRequest()
	req.Name = "   "

	findings := ValidateAssetRequest(req, fixedClock)

	assert.Len(t, findings, 1)
	assert.Equal(t, "name", findings[0].Field)
}

func TestValidateAssetRequestRejectsOverlongFields(t *testing.T) {
	req := validRequest()
	req.Name = strings.Repeat("a", 256)
	req.SerialNumber = strings.Repeat("s", 129)

	findings := ValidateAssetRequest(req, fixedClock)

	assert.Len(t, findings, 2)
	assert.Equal(t, "name", findings[0].Field)
	assert.Equal(t, "serialNumber", findings[1].Field)
}

func TestValidateAssetRequestAcceptsMaxLengths(t *testing.T) {
	req := validRequest()
	req.Name = strings.Repeat("a", 255)
	req.SerialNumber = strings.Repeat("s", 128)

	assert.Empty(t, ValidateAssetRequest(req, fixedClock))
}

func TestValidateAssetRequestRejectsUnknownEnums(t *testing.T) {
	req := validRequest()
	req.Category = "FURNITURE"
	req.Status = "BROKEN"

	findings := ValidateAssetRequest(req, fixedClock)

	assert.Len(t, findings, 2)
	assert.Equal(t, "category", findings[0].Field)
	assert.Equal(t, "FURNITURE", findings[0].RejectedValue)
	assert.Equal(t, "status", findings[1].Field)
}

func TestValidateAssetRequestRejectsMissingDate(t *testing.T) {
	req := validRequest()
	req.AcquisitionDate = nil

	findings := ValidateAssetRequest(req, fixedClock)

	assert.Len(t, findings, 1)
	assert.Equal(t, "acquisitionDate", findings[0].Field)
}

func TestValidateAssetRequestRejectsFutureDate(t *testing.T) {
	req := validRequest()
	tomorrow := models.DateOf(fixedClock().AddDate(0, 0, 1))
	req.AcquisitionDate = &tomorrow

	findings := ValidateAssetRequest(req, fixedClock)

	assert.Len(t, findings, 1)
	assert.Equal(t, "acquisitionDate", findings[0].Field)
	assert.Equal(t, "acquisitionDate must not be in the future", findings[0].Message)
}

func TestValidateAssetRequestAcceptsToday(t *testing.T) {
	req := validRequest()
	today := models.DateOf(fixedClock())
	req.AcquisitionDate = &today

	assert.Empty(t, ValidateAssetRequest(req, fixedClock))
}
