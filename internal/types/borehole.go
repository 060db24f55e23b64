package types

type WaterQuality string

const (
	WaterQualityExcellent WaterQuality = "excellent"
	WaterQualityGood      WaterQuality = "good"
	WaterQualityFair      WaterQuality = "fair"
	WaterQualityPoor      WaterQuality = "poor"
	WaterQualityUntested  WaterQuality = "untested"
)

var WaterQualities = []WaterQuality{
	WaterQualityExcellent,
	WaterQualityGood,
	WaterQualityFair,
	WaterQualityPoor,
	WaterQualityUntested,
}

func (w WaterQuality) Validate() error {
	return validateChoice(w, WaterQualities, "water_quality")
}

// BoreholeStatus is the operational state of a borehole
type BoreholeStatus string

const (
	BoreholeStatusActive      BoreholeStatus = "active"
	BoreholeStatusMaintenance BoreholeStatus = "maintenance"
	BoreholeStatusInactive    BoreholeStatus = "inactive"
	BoreholeStatusPlanned     BoreholeStatus = "planned"
)

var BoreholeStatuses = []BoreholeStatus{
	BoreholeStatusActive,
	BoreholeStatusMaintenance,
	BoreholeStatusInactive,
	BoreholeStatusPlanned,
}

func (s BoreholeStatus) Validate() error {
	return validateChoice(s, BoreholeStatuses, "status")
}

var (
	BoreholeOrderingFields = []string{"name", "location", "installation_date", "beneficiaries_count", "created_at"}
	BoreholeSearchFields   = []string{"name", "location", "community_served"}
)

// BoreholeFilter represents filters for borehole listing
type BoreholeFilter struct {
	*QueryFilter
	Status       *BoreholeStatus `json:"status,omitempty" form:"status"`
	WaterQuality *WaterQuality   `json:"water_quality,omitempty" form:"water_quality"`
}

func NewDefaultBoreholeFilter() *BoreholeFilter {
	return &BoreholeFilter{QueryFilter: NewDefaultQueryFilter()}
}

func NewNoLimitBoreholeFilter() *BoreholeFilter {
	return &BoreholeFilter{QueryFilter: NewNoLimitQueryFilter()}
}

func (f *BoreholeFilter) Validate() error {
	if f == nil {
		return nil
	}

	if f.QueryFilter == nil {
		f.QueryFilter = NewDefaultQueryFilter()
	}

	if err := f.QueryFilter.Validate(); err != nil {
		return err
	}

	if err := f.QueryFilter.ValidateOrdering(BoreholeOrderingFields); err != nil {
		return err
	}

	if f.Status != nil {
		if err := f.Status.Validate(); err != nil {
			return err
		}
	}
	if f.WaterQuality != nil {
		if err := f.WaterQuality.Validate(); err != nil {
			return err
		}
	}
	return nil
}
