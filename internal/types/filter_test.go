package types

import (
	"testing"

	ierr "github.com/betulabla/foundation/internal/errors"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
)

func TestQueryFilter_ParseOrdering(t *testing.T) {
	tests := []struct {
		name      string
		ordering  *string
		wantField string
		wantOrder string
	}{
		{name: "default", ordering: nil, wantField: "created_at", wantOrder: OrderDesc},
		{name: "ascending", ordering: lo.ToPtr("full_name"), wantField: "full_name", wantOrder: OrderAsc},
		{name: "descending", ordering: lo.ToPtr("-monthly_allowance"), wantField: "monthly_allowance", wantOrder: OrderDesc},
		{name: "blank falls back to default", ordering: lo.ToPtr("  "), wantField: "created_at", wantOrder: OrderDesc},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := QueryFilter{Ordering: tt.ordering}
			field, order := f.ParseOrdering()
			assert.Equal(t, tt.wantField, field)
			assert.Equal(t, tt.wantOrder, order)
		})
	}
}

func TestOrphanFilter_Validate(t *testing.T) {
	tests := []struct {
		name    string
		filter  *OrphanFilter
		wantErr bool
	}{
		{name: "nil query filter gets defaults", filter: &OrphanFilter{}},
		{
			name:   "known ordering",
			filter: &OrphanFilter{QueryFilter: &QueryFilter{Ordering: lo.ToPtr("-date_of_birth")}},
		},
		{
			name:    "unknown ordering",
			filter:  &OrphanFilter{QueryFilter: &QueryFilter{Ordering: lo.ToPtr("guardian_phone")}},
			wantErr: true,
		},
		{
			name:    "invalid status",
			filter:  &OrphanFilter{Status: lo.ToPtr(OrphanStatus("adopted"))},
			wantErr: true,
		},
		{
			name:    "limit out of range",
			filter:  &OrphanFilter{QueryFilter: &QueryFilter{Limit: lo.ToPtr(5000)}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.filter.Validate()
			if tt.wantErr {
				assert.True(t, ierr.IsValidation(err))
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestWithDefaults(t *testing.T) {
	f := WithDefaults(&QueryFilter{Offset: lo.ToPtr(20)})
	assert.Equal(t, FILTER_DEFAULT_LIMIT, f.GetLimit())
	assert.Equal(t, 20, f.GetOffset())
	assert.Equal(t, FILTER_DEFAULT_ORDERING, f.GetOrdering())

	assert.Equal(t, FILTER_DEFAULT_LIMIT, WithDefaults(nil).GetLimit())
	assert.True(t, NewNoLimitQueryFilter().IsUnlimited())
}

func TestEnumValidate(t *testing.T) {
	assert.NoError(t, UserRoleCoordinator.Validate())
	assert.Error(t, UserRole("superuser").Validate())
	assert.NoError(t, ReportStatusApproved.Validate())
	assert.Error(t, ReportStatus("rejected").Validate())
	assert.NoError(t, WaterQualityUntested.Validate())
	assert.Error(t, BoreholeStatus("broken").Validate())
}
