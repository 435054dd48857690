package models

import (
	"time"

	"github.com/sirdav1d/geosapiens-challenge/pkg/metadata"
)

// Asset is a tracked physical item with a globally unique serial number.
// ID and both timestamps are assigned by storage.
type Asset struct {
	ID              int64             `db:"id" json:"id"`
	Name            string            `db:"name" json:"name"`
	SerialNumber    string            `db:"serial_number" json:"serialNumber"`
	Category        metadata.Category `db:"category" json:"category"`
	Status          metadata.Status   `db:"status" json:"status"`
	AcquisitionDate Date              `db:"acquisition_date" json:"acquisitionDate"`
	CreatedAt       time.Time         `db:"created_at" json:"createdAt"`
	UpdatedAt       time.Time         `db:"updated_at" json:"updatedAt"`
}

// AssetRequest is the request body for create and update. Category and
// status stay raw strings here so validation can report findings instead of
// failing at bind time; AcquisitionDate is a pointer to tell an absent field
// from a present one.
type AssetRequest struct {
	Name            string `json:"name"`
	SerialNumber    string `json:"serialNumber"`
	Category        string `json:"category"`
	Status          string `json:"status"`
	AcquisitionDate *Date  `json:"acquisitionDate"`
}

// AssetsPage is the response body of the paginated list endpoint.
type AssetsPage struct {
	Items         []Asset `json:"items"`
	Page          int     `json:"page"`
	Size          int     `json:"size"`
	TotalElements int64   `json:"totalElements"`
	TotalPages    int     `json:"totalPages"`
}

func NewAssetsPage(items []Asset, page, size int, total int64) AssetsPage {
	if items == nil {
		items = []Asset{}
	}

	totalPages := 0
	if size > 0 {
		totalPages = int((total + int64(size) - 1) / int64(size))
	}

	return AssetsPage{
		Items:         items,
		Page:          page,
		Size:          size,
		TotalElements: total,
		TotalPages:    totalPages,
	}
}
