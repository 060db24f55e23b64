package borehole

import (
	"github.com/betulabla/foundation/internal/types"
	"github.com/shopspring/decimal"
)

// Borehole is a water point installed for a community
type Borehole struct {
	ID                 string               `db:"id" json:"id"`
	Name               string               `db:"name" json:"name"`
	Location           string               `db:"location" json:"location"`
	CommunityServed    string               `db:"community_served" json:"community_served"`
	Latitude           decimal.NullDecimal  `db:"latitude" json:"latitude"`
	Longitude          decimal.NullDecimal  `db:"longitude" json:"longitude"`
	DepthMeters        *int                 `db:"depth_meters" json:"depth_meters"`
	WaterQuality       types.WaterQuality   `db:"water_quality" json:"water_quality"`
	InstallationDate   *types.Date          `db:"installation_date" json:"installation_date"`
	LastMaintenance    *types.Date          `db:"last_maintenance" json:"last_maintenance"`
	BeneficiariesCount int                  `db:"beneficiaries_count" json:"beneficiaries_count"`
	Status             types.BoreholeStatus `db:"status" json:"status"`
	types.BaseModel
}

// Coordinates is a point on the map
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Coordinates returns nil unless both latitude and longitude are recorded
func (b *Borehole) Coordinates() *Coordinates {
	if !b.Latitude.Valid || !b.Longitude.Valid {
		return nil
	}
	return &Coordinates{
		Latitude:  b.Latitude.Decimal.InexactFloat64(),
		Longitude: b.Longitude.Decimal.InexactFloat64(),
	}
}

type Stats struct {
	TotalBoreholes              int             `db:"total_boreholes"`
	ActiveBoreholes             int             `db:"active_boreholes"`
	MaintenanceBoreholes        int             `db:"maintenance_boreholes"`
	TotalBeneficiaries          int64           `db:"total_beneficiaries"`
	AvgBeneficiariesPerBorehole decimal.Decimal `db:"avg_beneficiaries_per_borehole"`
}
