package dto

import (
	"context"
	"time"

	"github.com/betulabla/foundation/internal/domain/borehole"
	ierr "github.com/betulabla/foundation/internal/errors"
	"github.com/betulabla/foundation/internal/types"
	"github.com/betulabla/foundation/internal/validator"
	"github.com/oapi-codegen/nullable"
	"github.com/shopspring/decimal"
)

type CreateBoreholeRequest struct {
	Name               string               `json:"name" validate:"required,max=100"`
	Location           string               `json:"location" validate:"required,max=200"`
	CommunityServed    string               `json:"community_served" validate:"omitempty,max=200"`
	Latitude           decimal.NullDecimal  `json:"latitude" validate:"omitempty,gte=-90,lte=90"`
	Longitude          decimal.NullDecimal  `json:"longitude" validate:"omitempty,gte=-180,lte=180"`
	DepthMeters        *int                 `json:"depth_meters" validate:"omitempty,min=1,max=1000"`
	WaterQuality       types.WaterQuality   `json:"water_quality"`
	InstallationDate   *types.Date          `json:"installation_date"`
	LastMaintenance    *types.Date          `json:"last_maintenance"`
	BeneficiariesCount *int                 `json:"beneficiaries_count" validate:"omitempty,min=0"`
	Status             types.BoreholeStatus `json:"status"`
}

func (r *CreateBoreholeRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}

	if r.WaterQuality != "" {
		if err := r.WaterQuality.Validate(); err != nil {
			return err
		}
	}
	if r.Status != "" {
		if err := r.Status.Validate(); err != nil {
			return err
		}
	}
	return validateCoordinates(r.Latitude, r.Longitude)
}

func (r *CreateBoreholeRequest) ToBorehole(ctx context.Context) *borehole.Borehole {
	b := &borehole.Borehole{
		ID:               types.GenerateUUIDWithPrefix(types.UUID_PREFIX_BOREHOLE),
		Name:             r.Name,
		Location:         r.Location,
		CommunityServed:  r.CommunityServed,
		Latitude:         r.Latitude,
		Longitude:        r.Longitude,
		DepthMeters:      r.DepthMeters,
		WaterQuality:     r.WaterQuality,
		InstallationDate: optionalDate(r.InstallationDate),
		LastMaintenance:  optionalDate(r.LastMaintenance),
		Status:           r.Status,
		BaseModel:        types.GetDefaultBaseModel(ctx),
	}

	if r.BeneficiariesCount != nil {
		b.BeneficiariesCount = *r.BeneficiariesCount
	}
	if b.WaterQuality == "" {
		b.WaterQuality = types.WaterQualityUntested
	}
	if b.Status == "" {
		b.Status = types.BoreholeStatusPlanned
	}
	return b
}

// UpdateBoreholeRequest serves both PUT and PATCH. Nil or absent fields are left
// unchanged; an explicit null clears coordinates, depth and dates.
type UpdateBoreholeRequest struct {
	Name               *string                            `json:"name" validate:"omitempty,max=100"`
	Location           *string                            `json:"location" validate:"omitempty,max=200"`
	CommunityServed    *string                            `json:"community_served" validate:"omitempty,max=200"`
	Latitude           nullable.Nullable[decimal.Decimal] `json:"latitude" validate:"omitempty,gte=-90,lte=90" swaggertype:"number"`
	Longitude          nullable.Nullable[decimal.Decimal] `json:"longitude" validate:"omitempty,gte=-180,lte=180" swaggertype:"number"`
	DepthMeters        nullable.Nullable[int]             `json:"depth_meters" validate:"omitempty,min=1,max=1000" swaggertype:"integer"`
	WaterQuality       *types.WaterQuality                `json:"water_quality"`
	InstallationDate   nullable.Nullable[types.Date]      `json:"installation_date" swaggertype:"string"`
	LastMaintenance    nullable.Nullable[types.Date]      `json:"last_maintenance" swaggertype:"string"`
	BeneficiariesCount *int                               `json:"beneficiaries_count" validate:"omitempty,min=0"`
	Status             *types.BoreholeStatus              `json:"status"`
}

func (r *UpdateBoreholeRequest) Validate(partial bool) error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}

	if !partial {
		if err := requireFields(map[string]bool{
			"name":     r.Name != nil && *r.Name != "",
			"location": r.Location != nil && *r.Location != "",
		}); err != nil {
			return err
		}
	}

	if r.Name != nil && *r.Name == "" {
		return blankFieldError("name")
	}
	if r.Location != nil && *r.Location == "" {
		return blankFieldError("location")
	}
	if r.WaterQuality != nil {
		if err := r.WaterQuality.Validate(); err != nil {
			return err
		}
	}
	if r.Status != nil {
		if err := r.Status.Validate(); err != nil {
			return err
		}
	}
	return validateCoordinates(nullDecimal(r.Latitude), nullDecimal(r.Longitude))
}

func (r *UpdateBoreholeRequest) Apply(b *borehole.Borehole) {
	if r.Name != nil {
		b.Name = *r.Name
	}
	if r.Location != nil {
		b.Location = *r.Location
	}
	if r.CommunityServed != nil {
		b.CommunityServed = *r.CommunityServed
	}
	if r.Latitude.IsSpecified() {
		b.Latitude = nullDecimal(r.Latitude)
	}
	if r.Longitude.IsSpecified() {
		b.Longitude = nullDecimal(r.Longitude)
	}
	applyNullable(r.DepthMeters, &b.DepthMeters)
	if r.WaterQuality != nil {
		b.WaterQuality = *r.WaterQuality
	}
	applyNullableDate(r.InstallationDate, &b.InstallationDate)
	applyNullableDate(r.LastMaintenance, &b.LastMaintenance)
	if r.BeneficiariesCount != nil {
		b.BeneficiariesCount = *r.BeneficiariesCount
	}
	if r.Status != nil {
		b.Status = *r.Status
	}
}

type UpdateBoreholeStatusRequest struct {
	Status types.BoreholeStatus `json:"status"`
}

func (r *UpdateBoreholeStatusRequest) Validate() error {
	if err := r.Status.Validate(); err != nil {
		return ierr.WithError(err).
			WithHint("Invalid status").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// BoreholeResponse is the detail view of a borehole
type BoreholeResponse struct {
	ID                 string                `json:"id"`
	Name               string                `json:"name"`
	Location           string                `json:"location"`
	CommunityServed    string                `json:"community_served"`
	Latitude           *string               `json:"latitude"`
	Longitude          *string               `json:"longitude"`
	Coordinates        *borehole.Coordinates `json:"coordinates"`
	DepthMeters        *int                  `json:"depth_meters"`
	WaterQuality       types.WaterQuality    `json:"water_quality"`
	InstallationDate   *types.Date           `json:"installation_date"`
	LastMaintenance    *types.Date           `json:"last_maintenance"`
	BeneficiariesCount int                   `json:"beneficiaries_count"`
	Status             types.BoreholeStatus  `json:"status"`
	CreatedBy          string                `json:"created_by"`
	CreatedAt          time.Time             `json:"created_at"`
	UpdatedAt          time.Time             `json:"updated_at"`
}

type BoreholeListItemResponse struct {
	ID                 string                `json:"id"`
	Name               string                `json:"name"`
	Location           string                `json:"location"`
	CommunityServed    string                `json:"community_served"`
	Coordinates        *borehole.Coordinates `json:"coordinates"`
	WaterQuality       types.WaterQuality    `json:"water_quality"`
	BeneficiariesCount int                   `json:"beneficiaries_count"`
	Status             types.BoreholeStatus  `json:"status"`
	CreatedAt          time.Time             `json:"created_at"`
}

// ListBoreholesResponse represents the response for listing boreholes
type ListBoreholesResponse = types.ListResponse[*BoreholeListItemResponse]

func NewBoreholeResponse(b *borehole.Borehole) *BoreholeResponse {
	return &BoreholeResponse{
		ID:                 b.ID,
		Name:               b.Name,
		Location:           b.Location,
		CommunityServed:    b.CommunityServed,
		Latitude:           formatNullDecimal(b.Latitude, 6),
		Longitude:          formatNullDecimal(b.Longitude, 6),
		Coordinates:        b.Coordinates(),
		DepthMeters:        b.DepthMeters,
		WaterQuality:       b.WaterQuality,
		InstallationDate:   b.InstallationDate,
		LastMaintenance:    b.LastMaintenance,
		BeneficiariesCount: b.BeneficiariesCount,
		Status:             b.Status,
		CreatedBy:          b.CreatedBy,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}
}

func NewBoreholeListItemResponse(b *borehole.Borehole) *BoreholeListItemResponse {
	return &BoreholeListItemResponse{
		ID:                 b.ID,
		Name:               b.Name,
		Location:           b.Location,
		CommunityServed:    b.CommunityServed,
		Coordinates:        b.Coordinates(),
		WaterQuality:       b.WaterQuality,
		BeneficiariesCount: b.BeneficiariesCount,
		Status:             b.Status,
		CreatedAt:          b.CreatedAt,
	}
}

type BoreholeStatsResponse struct {
	TotalBoreholes              int    `json:"total_boreholes"`
	ActiveBoreholes             int    `json:"active_boreholes"`
	MaintenanceBoreholes        int    `json:"maintenance_boreholes"`
	TotalBeneficiaries          int64  `json:"total_beneficiaries"`
	AvgBeneficiariesPerBorehole string `json:"avg_beneficiaries_per_borehole"`
}

func NewBoreholeStatsResponse(s *borehole.Stats) *BoreholeStatsResponse {
	return &BoreholeStatsResponse{
		TotalBoreholes:              s.TotalBoreholes,
		ActiveBoreholes:             s.ActiveBoreholes,
		MaintenanceBoreholes:        s.MaintenanceBoreholes,
		TotalBeneficiaries:          s.TotalBeneficiaries,
		AvgBeneficiariesPerBorehole: formatDecimal(s.AvgBeneficiariesPerBorehole, 2),
	}
}

func validateCoordinates(lat, lng decimal.NullDecimal) error {
	if lat.Valid {
		if err := validateDecimal("latitude", lat.Decimal, 9, 6); err != nil {
			return err
		}
	}
	if lng.Valid {
		if err := validateDecimal("longitude", lng.Decimal, 9, 6); err != nil {
			return err
		}
	}
	return nil
}
