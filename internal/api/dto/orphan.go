package dto

import (
	"context"
	"time"

	"github.com/betulabla/foundation/internal/domain/orphan"
	ierr "github.com/betulabla/foundation/internal/errors"
	"github.com/betulabla/foundation/internal/types"
	"github.com/betulabla/foundation/internal/validator"
	"github.com/oapi-codegen/nullable"
	"github.com/shopspring/decimal"
)

type CreateOrphanRequest struct {
	FullName         string               `json:"full_name" validate:"required,max=100"`
	DateOfBirth      *types.Date          `json:"date_of_birth" validate:"required"`
	Gender           types.Gender         `json:"gender" validate:"required"`
	Address          string               `json:"address" validate:"required"`
	GuardianName     string               `json:"guardian_name" validate:"omitempty,max=100"`
	GuardianPhone    string               `json:"guardian_phone" validate:"omitempty,max=17,phone"`
	SchoolName       string               `json:"school_name" validate:"omitempty,max=200"`
	EducationLevel   types.EducationLevel `json:"education_level"`
	HealthStatus     types.HealthStatus   `json:"health_status"`
	SpecialNeeds     string               `json:"special_needs"`
	MonthlyAllowance *decimal.Decimal     `json:"monthly_allowance" validate:"omitempty,gte=0"`
	LastPaymentDate  *types.Date          `json:"last_payment_date"`
	Status           types.OrphanStatus   `json:"status"`
}

func (r *CreateOrphanRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}

	if r.DateOfBirth.IsZero() {
		return blankFieldError("date_of_birth")
	}
	if err := r.Gender.Validate(); err != nil {
		return err
	}
	if r.EducationLevel != "" {
		if err := r.EducationLevel.Validate(); err != nil {
			return err
		}
	}
	if r.HealthStatus != "" {
		if err := r.HealthStatus.Validate(); err != nil {
			return err
		}
	}
	if r.Status != "" {
		if err := r.Status.Validate(); err != nil {
			return err
		}
	}
	if r.MonthlyAllowance != nil {
		if err := validateDecimal("monthly_allowance", *r.MonthlyAllowance, 10, 2); err != nil {
			return err
		}
	}
	return nil
}

// ToOrphan builds the record, filling model defaults for omitted fields
func (r *CreateOrphanRequest) ToOrphan(ctx context.Context) *orphan.Orphan {
	o := &orphan.Orphan{
		ID:               types.GenerateUUIDWithPrefix(types.UUID_PREFIX_ORPHAN),
		FullName:         r.FullName,
		DateOfBirth:      *r.DateOfBirth,
		Gender:           r.Gender,
		Address:          r.Address,
		GuardianName:     r.GuardianName,
		GuardianPhone:    r.GuardianPhone,
		SchoolName:       r.SchoolName,
		EducationLevel:   r.EducationLevel,
		HealthStatus:     r.HealthStatus,
		SpecialNeeds:     r.SpecialNeeds,
		MonthlyAllowance: orphan.DefaultMonthlyAllowance,
		LastPaymentDate:  optionalDate(r.LastPaymentDate),
		Status:           r.Status,
		BaseModel:        types.GetDefaultBaseModel(ctx),
	}

	if r.MonthlyAllowance != nil {
		o.MonthlyAllowance = *r.MonthlyAllowance
	}
	if o.EducationLevel == "" {
		o.EducationLevel = types.EducationLevelPrimary
	}
	if o.HealthStatus == "" {
		o.HealthStatus = types.HealthStatusGood
	}
	if o.Status == "" {
		o.Status = types.OrphanStatusPending
	}
	return o
}

// UpdateOrphanRequest serves both PUT and PATCH. Nil fields are left unchanged;
// last_payment_date is cleared by an explicit null.
type UpdateOrphanRequest struct {
	FullName         *string                       `json:"full_name" validate:"omitempty,max=100"`
	DateOfBirth      *types.Date                   `json:"date_of_birth"`
	Gender           *types.Gender                 `json:"gender"`
	Address          *string                       `json:"address"`
	GuardianName     *string                       `json:"guardian_name" validate:"omitempty,max=100"`
	GuardianPhone    *string                       `json:"guardian_phone" validate:"omitempty,max=17,phone"`
	SchoolName       *string                       `json:"school_name" validate:"omitempty,max=200"`
	EducationLevel   *types.EducationLevel         `json:"education_level"`
	HealthStatus     *types.HealthStatus           `json:"health_status"`
	SpecialNeeds     *string                       `json:"special_needs"`
	MonthlyAllowance *decimal.Decimal              `json:"monthly_allowance" validate:"omitempty,gte=0"`
	LastPaymentDate  nullable.Nullable[types.Date] `json:"last_payment_date" swaggertype:"string"`
	Status           *types.OrphanStatus           `json:"status"`
}

// Validate checks the supplied fields. A full update also needs every required field.
func (r *UpdateOrphanRequest) Validate(partial bool) error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}

	if !partial {
		if err := requireFields(map[string]bool{
			"full_name":     r.FullName != nil && *r.FullName != "",
			"date_of_birth": r.DateOfBirth != nil && !r.DateOfBirth.IsZero(),
			"gender":        r.Gender != nil,
			"address":       r.Address != nil && *r.Address != "",
		}); err != nil {
			return err
		}
	}

	if r.FullName != nil && *r.FullName == "" {
		return blankFieldError("full_name")
	}
	if r.DateOfBirth != nil && r.DateOfBirth.IsZero() {
		return blankFieldError("date_of_birth")
	}
	if r.Address != nil && *r.Address == "" {
		return blankFieldError("address")
	}
	if r.Gender != nil {
		if err := r.Gender.Validate(); err != nil {
			return err
		}
	}
	if r.EducationLevel != nil {
		if err := r.EducationLevel.Validate(); err != nil {
			return err
		}
	}
	if r.HealthStatus != nil {
		if err := r.HealthStatus.Validate(); err != nil {
			return err
		}
	}
	if r.Status != nil {
		if err := r.Status.Validate(); err != nil {
			return err
		}
	}
	if r.MonthlyAllowance != nil {
		if err := validateDecimal("monthly_allowance", *r.MonthlyAllowance, 10, 2); err != nil {
			return err
		}
	}
	return nil
}

func (r *UpdateOrphanRequest) Apply(o *orphan.Orphan) {
	if r.FullName != nil {
		o.FullName = *r.FullName
	}
	if r.DateOfBirth != nil {
		o.DateOfBirth = *r.DateOfBirth
	}
	if r.Gender != nil {
		o.Gender = *r.Gender
	}
	if r.Address != nil {
		o.Address = *r.Address
	}
	if r.GuardianName != nil {
		o.GuardianName = *r.GuardianName
	}
	if r.GuardianPhone != nil {
		o.GuardianPhone = *r.GuardianPhone
	}
	if r.SchoolName != nil {
		o.SchoolName = *r.SchoolName
	}
	if r.EducationLevel != nil {
		o.EducationLevel = *r.EducationLevel
	}
	if r.HealthStatus != nil {
		o.HealthStatus = *r.HealthStatus
	}
	if r.SpecialNeeds != nil {
		o.SpecialNeeds = *r.SpecialNeeds
	}
	if r.MonthlyAllowance != nil {
		o.MonthlyAllowance = *r.MonthlyAllowance
	}
	applyNullableDate(r.LastPaymentDate, &o.LastPaymentDate)
	if r.Status != nil {
		o.Status = *r.Status
	}
}

type UpdateOrphanStatusRequest struct {
	Status types.OrphanStatus `json:"status"`
}

func (r *UpdateOrphanStatusRequest) Validate() error {
	if err := r.Status.Validate(); err != nil {
		return ierr.WithError(err).
			WithHint("Invalid status").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// OrphanResponse is the detail view of an orphan
type OrphanResponse struct {
	ID               string               `json:"id"`
	FullName         string               `json:"full_name"`
	DateOfBirth      types.Date           `json:"date_of_birth"`
	Age              int                  `json:"age"`
	Gender           types.Gender         `json:"gender"`
	Address          string               `json:"address"`
	GuardianName     string               `json:"guardian_name"`
	GuardianPhone    string               `json:"guardian_phone"`
	SchoolName       string               `json:"school_name"`
	EducationLevel   types.EducationLevel `json:"education_level"`
	HealthStatus     types.HealthStatus   `json:"health_status"`
	SpecialNeeds     string               `json:"special_needs"`
	MonthlyAllowance string               `json:"monthly_allowance"`
	LastPaymentDate  *types.Date          `json:"last_payment_date"`
	PhotoURL         *string              `json:"photo_url"`
	Status           types.OrphanStatus   `json:"status"`
	CreatedBy        string               `json:"created_by"`
	CreatedAt        time.Time            `json:"created_at"`
	UpdatedAt        time.Time            `json:"updated_at"`
}

// OrphanListItemResponse is the reduced view used in listings
type OrphanListItemResponse struct {
	ID               string             `json:"id"`
	FullName         string             `json:"full_name"`
	Age              int                `json:"age"`
	Gender           types.Gender       `json:"gender"`
	Address          string             `json:"address"`
	GuardianName     string             `json:"guardian_name"`
	MonthlyAllowance string             `json:"monthly_allowance"`
	Status           types.OrphanStatus `json:"status"`
	PhotoURL         *string            `json:"photo_url"`
	CreatedAt        time.Time          `json:"created_at"`
}

// ListOrphansResponse represents the response for listing orphans
type ListOrphansResponse = types.ListResponse[*OrphanListItemResponse]

func NewOrphanResponse(o *orphan.Orphan, photoURL *string, now time.Time) *OrphanResponse {
	return &OrphanResponse{
		ID:               o.ID,
		FullName:         o.FullName,
		DateOfBirth:      o.DateOfBirth,
		Age:              o.Age(now),
		Gender:           o.Gender,
		Address:          o.Address,
		GuardianName:     o.GuardianName,
		GuardianPhone:    o.GuardianPhone,
		SchoolName:       o.SchoolName,
		EducationLevel:   o.EducationLevel,
		HealthStatus:     o.HealthStatus,
		SpecialNeeds:     o.SpecialNeeds,
		MonthlyAllowance: formatDecimal(o.MonthlyAllowance, 2),
		LastPaymentDate:  o.LastPaymentDate,
		PhotoURL:         photoURL,
		Status:           o.Status,
		CreatedBy:        o.CreatedBy,
		CreatedAt:        o.CreatedAt,
		UpdatedAt:        o.UpdatedAt,
	}
}

func NewOrphanListItemResponse(o *orphan.Orphan, photoURL *string, now time.Time) *OrphanListItemResponse {
	return &OrphanListItemResponse{
		ID:               o.ID,
		FullName:         o.FullName,
		Age:              o.Age(now),
		Gender:           o.Gender,
		Address:          o.Address,
		GuardianName:     o.GuardianName,
		MonthlyAllowance: formatDecimal(o.MonthlyAllowance, 2),
		Status:           o.Status,
		PhotoURL:         photoURL,
		CreatedAt:        o.CreatedAt,
	}
}

type OrphanStatsResponse struct {
	TotalOrphans        int    `json:"total_orphans"`
	ActiveOrphans       int    `json:"active_orphans"`
	PendingOrphans      int    `json:"pending_orphans"`
	InactiveOrphans     int    `json:"inactive_orphans"`
	TotalMonthlyBudget  string `json:"total_monthly_budget"`
	AvgMonthlyAllowance string `json:"avg_monthly_allowance"`
}

func NewOrphanStatsResponse(s *orphan.Stats) *OrphanStatsResponse {
	return &OrphanStatsResponse{
		TotalOrphans:        s.TotalOrphans,
		ActiveOrphans:       s.ActiveOrphans,
		PendingOrphans:      s.PendingOrphans,
		InactiveOrphans:     s.InactiveOrphans,
		TotalMonthlyBudget:  formatDecimal(s.TotalMonthlyBudget, 2),
		AvgMonthlyAllowance: formatDecimal(s.AvgMonthlyAllowance, 2),
	}
}

func blankFieldError(field string) error {
	return ierr.NewErrorf("%s may not be blank", field).
		WithHint("Request validation failed").
		WithReportableDetails(map[string]any{field: "This field may not be blank."}).
		Mark(ierr.ErrValidation)
}
