package types

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

var Genders = []Gender{GenderMale, GenderFemale, GenderOther}

func (g Gender) Validate() error {
	return validateChoice(g, Genders, "gender")
}

type EducationLevel string

const (
	EducationLevelNursery     EducationLevel = "nursery"
	EducationLevelPrimary     EducationLevel = "primary"
	EducationLevelSecondary   EducationLevel = "secondary"
	EducationLevelTertiary    EducationLevel = "tertiary"
	EducationLevelVocational  EducationLevel = "vocational"
	EducationLevelNotEnrolled EducationLevel = "not_enrolled"
)

var EducationLevels = []EducationLevel{
	EducationLevelNursery,
	EducationLevelPrimary,
	EducationLevelSecondary,
	EducationLevelTertiary,
	EducationLevelVocational,
	EducationLevelNotEnrolled,
}

func (e EducationLevel) Validate() error {
	return validateChoice(e, EducationLevels, "education_level")
}

type HealthStatus string

const (
	HealthStatusExcellent HealthStatus = "excellent"
	HealthStatusGood      HealthStatus = "good"
	HealthStatusFair      HealthStatus = "fair"
	HealthStatusPoor      HealthStatus = "poor"
	HealthStatusCritical  HealthStatus = "critical"
)

var HealthStatuses = []HealthStatus{
	HealthStatusExcellent,
	HealthStatusGood,
	HealthStatusFair,
	HealthStatusPoor,
	HealthStatusCritical,
}

func (h HealthStatus) Validate() error {
	return validateChoice(h, HealthStatuses, "health_status")
}

// OrphanStatus is the lifecycle state of an orphan record
type OrphanStatus string

const (
	OrphanStatusActive    OrphanStatus = "active"
	OrphanStatusPending   OrphanStatus = "pending"
	OrphanStatusInactive  OrphanStatus = "inactive"
	OrphanStatusGraduated OrphanStatus = "graduated"
)

var OrphanStatuses = []OrphanStatus{
	OrphanStatusActive,
	OrphanStatusPending,
	OrphanStatusInactive,
	OrphanStatusGraduated,
}

func (s OrphanStatus) Validate() error {
	return validateChoice(s, OrphanStatuses, "status")
}

var (
	OrphanOrderingFields = []string{"full_name", "date_of_birth", "created_at", "monthly_allowance"}
	OrphanSearchFields   = []string{"full_name", "guardian_name", "address", "school_name"}
)

// OrphanFilter represents filters for orphan listing
type OrphanFilter struct {
	*QueryFilter
	Status         *OrphanStatus   `json:"status,omitempty" form:"status"`
	Gender         *Gender         `json:"gender,omitempty" form:"gender"`
	EducationLevel *EducationLevel `json:"education_level,omitempty" form:"education_level"`
	HealthStatus   *HealthStatus   `json:"health_status,omitempty" form:"health_status"`
}

func NewDefaultOrphanFilter() *OrphanFilter {
	return &OrphanFilter{QueryFilter: NewDefaultQueryFilter()}
}

func NewNoLimitOrphanFilter() *OrphanFilter {
	return &OrphanFilter{QueryFilter: NewNoLimitQueryFilter()}
}

func (f *OrphanFilter) Validate() error {
	if f == nil {
		return nil
	}

	if f.QueryFilter == nil {
		f.QueryFilter = NewDefaultQueryFilter()
	}

	if err := f.QueryFilter.Validate(); err != nil {
		return err
	}

	if err := f.QueryFilter.ValidateOrdering(OrphanOrderingFields); err != nil {
		return err
	}

	if f.Status != nil {
		if err := f.Status.Validate(); err != nil {
			return err
		}
	}
	if f.Gender != nil {
		if err := f.Gender.Validate(); err != nil {
			return err
		}
	}
	if f.EducationLevel != nil {
		if err := f.EducationLevel.Validate(); err != nil {
			return err
		}
	}
	if f.HealthStatus != nil {
		if err := f.HealthStatus.Validate(); err != nil {
			return err
		}
	}
	return nil
}
