package types

import (
	"strings"

	ierr "github.com/betulabla/foundation/internal/errors"
	"github.com/samber/lo"
)

const (
	FILTER_DEFAULT_LIMIT    = 50
	FILTER_DEFAULT_ORDERING = "-created_at"

	OrderDesc = "desc"
	OrderAsc  = "asc"
)

// BaseFilter defines common filtering capabilities
type BaseFilter interface {
	GetLimit() int
	GetOffset() int
	GetSearch() string
	GetOrdering() string
	Validate() error
	IsUnlimited() bool
}

// QueryFilter represents the list query parameters shared by every resource.
// Ordering follows the `field` / `-field` convention.
type QueryFilter struct {
	Limit    *int    `json:"limit,omitempty" form:"limit" validate:"omitempty,min=1,max=1000"`
	Offset   *int    `json:"offset,omitempty" form:"offset" validate:"omitempty,min=0"`
	Search   *string `json:"search,omitempty" form:"search"`
	Ordering *string `json:"ordering,omitempty" form:"ordering"`
}

// NewDefaultQueryFilter defines default values for query filters
func NewDefaultQueryFilter() *QueryFilter {
	return &QueryFilter{
		Limit:    lo.ToPtr(FILTER_DEFAULT_LIMIT),
		Offset:   lo.ToPtr(0),
		Ordering: lo.ToPtr(FILTER_DEFAULT_ORDERING),
	}
}

// NewNoLimitQueryFilter returns a filter with no pagination limits
func NewNoLimitQueryFilter() *QueryFilter {
	return &QueryFilter{
		Limit:    nil,
		Offset:   lo.ToPtr(0),
		Ordering: lo.ToPtr(FILTER_DEFAULT_ORDERING),
	}
}

// IsUnlimited returns true if this is an unlimited query
func (f QueryFilter) IsUnlimited() bool {
	return f.Limit == nil
}

// GetLimit returns the limit value, 0 for unlimited queries
func (f QueryFilter) GetLimit() int {
	if f.IsUnlimited() {
		return 0
	}
	return *f.Limit
}

// GetOffset returns the offset value or default if not set
func (f QueryFilter) GetOffset() int {
	if f.Offset == nil {
		return 0
	}
	return *f.Offset
}

// GetSearch returns the trimmed search term
func (f QueryFilter) GetSearch() string {
	if f.Search == nil {
		return ""
	}
	return strings.TrimSpace(*f.Search)
}

// GetOrdering returns the raw ordering value or the default
func (f QueryFilter) GetOrdering() string {
	if f.Ordering == nil || strings.TrimSpace(*f.Ordering) == "" {
		return FILTER_DEFAULT_ORDERING
	}
	return strings.TrimSpace(*f.Ordering)
}

// ParseOrdering splits the ordering value into a field and a direction
func (f QueryFilter) ParseOrdering() (string, string) {
	ordering := f.GetOrdering()
	if strings.HasPrefix(ordering, "-") {
		return strings.TrimPrefix(ordering, "-"), OrderDesc
	}
	return ordering, OrderAsc
}

// Validate validates the filter fields
func (f QueryFilter) Validate() error {
	if f.Limit != nil && (*f.Limit < 1 || *f.Limit > 1000) {
		return ierr.NewError("limit must be between 1 and 1000").
			WithHint("Limit must be between 1 and 1000").
			WithReportableDetails(map[string]any{"limit": *f.Limit}).
			Mark(ierr.ErrValidation)
	}
	if f.Offset != nil && *f.Offset < 0 {
		return ierr.NewError("offset must be non-negative").
			WithHint("Offset must be non-negative").
			WithReportableDetails(map[string]any{"offset": *f.Offset}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// ValidateOrdering checks the ordering field against the resource allow-list
func (f QueryFilter) ValidateOrdering(allowed []string) error {
	field, _ := f.ParseOrdering()
	if !lo.Contains(allowed, field) {
		return ierr.NewErrorf("invalid ordering field: %s", field).
			WithHintf("Ordering must be one of: %s", strings.Join(allowed, ", ")).
			WithReportableDetails(map[string]any{
				"ordering": f.GetOrdering(),
				"allowed":  allowed,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// Merge merges another filter into this one, taking values from other if they are set
func (f *QueryFilter) Merge(other QueryFilter) {
	if other.Limit != nil {
		f.Limit = other.Limit
	}
	if other.Offset != nil {
		f.Offset = other.Offset
	}
	if other.Search != nil {
		f.Search = other.Search
	}
	if other.Ordering != nil {
		f.Ordering = other.Ordering
	}
}

// WithDefaults fills unset fields from the default filter.
// List endpoints use it so that a request without `limit` stays paginated.
func WithDefaults(f *QueryFilter) *QueryFilter {
	merged := NewDefaultQueryFilter()
	if f == nil {
		return merged
	}
	merged.Merge(*f)
	return merged
}
