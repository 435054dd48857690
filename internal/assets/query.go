package assets

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sirdav1d/geosapiens-challenge/pkg/apperrors"
	"github.com/sirdav1d/geosapiens-challenge/pkg/metadata"
)

const (
	defaultPage = 0
	defaultSize = 10
	maxSize     = 100
)

// sortColumns maps public sort field names onto assets table columns. It is
// also the allow-list: anything outside it is rejected.
var sortColumns = map[string]string{
	"id":              "id",
	"name":            "name",
	"serialNumber":    "serial_number",
	"category":        "category",
	"status":          "status",
	"acquisitionDate": "acquisition_date",
	"createdAt":       "created_at",
	"updatedAt":       "updated_at",
}

type SortOrder struct {
	Column     string
	Descending bool
}

// ListParams carries the raw, untrusted query parameters of a list request.
type ListParams struct {
	Category string
	Status   string
	Search   string
	Page     string
	Size     string
	Sort     []string
}

// ListQuery is the canonical, validated form of a list request: resolved
// filters, zero-based page index, capped page size and the sort order.
type ListQuery struct {
	Category *metadata.Category
	Status   *metadata.Status
	Search   string
	Page     int
	Size     int
	Sort     []SortOrder
}

// ParseListQuery validates and canonicalizes raw list parameters. Every
// rejection is an InvalidParameterError; nothing here touches storage.
func ParseListQuery(params ListParams) (*ListQuery, error) {
	page := defaultPage
	if params.Page != "" {
		parsed, err := strconv.Atoi(params.Page)
		if err != nil {
			return nil, apperrors.NewInvalidParameterValue("page", "page must be an integer", params.Page)
		}
		page = parsed
	}
	if page < 0 {
		return nil, apperrors.NewInvalidParameter("page must be >= 0")
	}

	size := defaultSize
	if params.Size != "" {
		parsed, err := strconv.Atoi(params.Size)
		if err != nil {
			return nil, apperrors.NewInvalidParameterValue("size", "size must be an integer", params.Size)
		}
		size = parsed
	}
	if size < 1 {
		return nil, apperrors.NewInvalidParameter("size must be >= 1")
	}
	if size > maxSize {
		size = maxSize
	}

	query := &ListQuery{
		Page:   page,
		Size:   size,
		Search: strings.TrimSpace(params.Search),
	}

	if params.Category != "" {
		category, err := metadata.NewCategory(params.Category)
		if err != nil {
			return nil, apperrors.NewInvalidParameterValue("category", err.Error(), params.Category)
		}
		query.Category = &category
	}

	if params.Status != "" {
		status, err := metadata.NewStatus(params.Status)
		if err != nil {
			return nil, apperrors.NewInvalidParameterValue("status", err.Error(), params.Status)
		}
		query.Status = &status
	}

	sort, err := parseSort(params.Sort)
	if err != nil {
		return nil, err
	}
	query.Sort = sort

	return query, nil
}

func parseSort(tokens []string) ([]SortOrder, error) {
	orders := make([]SortOrder, 0, len(tokens))

	for _, raw := range tokens {
		if strings.TrimSpace(raw) == "" {
			continue
		}

		parts := strings.Split(raw, ",")
		field := strings.TrimSpace(parts[0])
		if field == "" {
			continue
		}

		column, ok := sortColumns[field]
		if !ok {
			return nil, apperrors.NewInvalidParameterValue(
				"sort", fmt.Sprintf("invalid sort field: %s", field), raw)
		}

		descending := false
		if len(parts) >= 2 && strings.TrimSpace(parts[1]) != "" {
			direction := strings.TrimSpace(parts[1])
			switch strings.ToLower(direction) {
			case "asc":
			case "desc":
				descending = true
			default:
				return nil, apperrors.NewInvalidParameterValue(
					"sort", fmt.Sprintf("invalid sort direction: %s", direction), raw)
			}
		}

		orders = append(orders, SortOrder{Column: column, Descending: descending})
	}

	// Absent, empty or all-blank sort falls back to newest-first.
	if len(orders) == 0 {
		orders = append(orders, SortOrder{Column: "id", Descending: true})
	}

	return orders, nil
}

// escapeLike makes user input safe inside a LIKE/ILIKE pattern so that
// backslash, percent and underscore match literally.
func escapeLike(s string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return replacer.Replace(s)
}
