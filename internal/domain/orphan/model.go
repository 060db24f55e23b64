package orphan

import (
	"time"

	"github.com/betulabla/foundation/internal/types"
	"github.com/shopspring/decimal"
)

// DefaultMonthlyAllowance is applied when a record is created without an allowance
var DefaultMonthlyAllowance = decimal.NewFromInt(100)

// Orphan is a child under the foundation's care
type Orphan struct {
	ID               string               `db:"id" json:"id"`
	FullName         string               `db:"full_name" json:"full_name"`
	DateOfBirth      types.Date           `db:"date_of_birth" json:"date_of_birth"`
	Gender           types.Gender         `db:"gender" json:"gender"`
	Address          string               `db:"address" json:"address"`
	GuardianName     string               `db:"guardian_name" json:"guardian_name"`
	GuardianPhone    string               `db:"guardian_phone" json:"guardian_phone"`
	SchoolName       string               `db:"school_name" json:"school_name"`
	EducationLevel   types.EducationLevel `db:"education_level" json:"education_level"`
	HealthStatus     types.HealthStatus   `db:"health_status" json:"health_status"`
	SpecialNeeds     string               `db:"special_needs" json:"special_needs"`
	MonthlyAllowance decimal.Decimal      `db:"monthly_allowance" json:"monthly_allowance"`
	LastPaymentDate  *types.Date          `db:"last_payment_date" json:"last_payment_date"`
	PhotoKey         *string              `db:"photo_key" json:"photo_key"`
	Status           types.OrphanStatus   `db:"status" json:"status"`
	types.BaseModel
}

// Age is the number of whole years since the date of birth
func (o *Orphan) Age(now time.Time) int {
	return o.DateOfBirth.YearsElapsed(now)
}

// Stats aggregates the whole orphan table. Sums and means cover active records only.
type Stats struct {
	TotalOrphans        int             `db:"total_orphans"`
	ActiveOrphans       int             `db:"active_orphans"`
	PendingOrphans      int             `db:"pending_orphans"`
	InactiveOrphans     int             `db:"inactive_orphans"`
	TotalMonthlyBudget  decimal.Decimal `db:"total_monthly_budget"`
	AvgMonthlyAllowance decimal.Decimal `db:"avg_monthly_allowance"`
}
