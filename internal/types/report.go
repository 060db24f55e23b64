package types

type ReportType string

const (
	ReportTypeMonthly     ReportType = "monthly"
	ReportTypeQuarterly   ReportType = "quarterly"
	ReportTypeAnnual      ReportType = "annual"
	ReportTypeIncident    ReportType = "incident"
	ReportTypeMaintenance ReportType = "maintenance"
	ReportTypeFinancial   ReportType = "financial"
	ReportTypeAssessment  ReportType = "assessment"
)

var ReportTypes = []ReportType{
	ReportTypeMonthly,
	ReportTypeQuarterly,
	ReportTypeAnnual,
	ReportTypeIncident,
	ReportTypeMaintenance,
	ReportTypeFinancial,
	ReportTypeAssessment,
}

func (t ReportType) Validate() error {
	return validateChoice(t, ReportTypes, "report_type")
}

// ReportStatus is the review workflow state of a report.
// draft -> review -> approved -> published is the intended path, archived is terminal.
type ReportStatus string

const (
	ReportStatusDraft     ReportStatus = "draft"
	ReportStatusReview    ReportStatus = "review"
	ReportStatusApproved  ReportStatus = "approved"
	ReportStatusPublished ReportStatus = "published"
	ReportStatusArchived  ReportStatus = "archived"
)

var ReportStatuses = []ReportStatus{
	ReportStatusDraft,
	ReportStatusReview,
	ReportStatusApproved,
	ReportStatusPublished,
	ReportStatusArchived,
}

func (s ReportStatus) Validate() error {
	return validateChoice(s, ReportStatuses, "status")
}

var (
	ReportOrderingFields = []string{"title", "created_at", "published_at"}
	ReportSearchFields   = []string{"title", "content"}
)

// ReportFilter represents filters for report listing
type ReportFilter struct {
	*QueryFilter
	Status     *ReportStatus `json:"status,omitempty" form:"status"`
	ReportType *ReportType   `json:"report_type,omitempty" form:"report_type"`
	OrphanID   *string       `json:"orphan,omitempty" form:"orphan"`
	BoreholeID *string       `json:"borehole,omitempty" form:"borehole"`
}

func NewDefaultReportFilter() *ReportFilter {
	return &ReportFilter{QueryFilter: NewDefaultQueryFilter()}
}

func NewNoLimitReportFilter() *ReportFilter {
	return &ReportFilter{QueryFilter: NewNoLimitQueryFilter()}
}

func (f *ReportFilter) Validate() error {
	if f == nil {
		return nil
	}

	if f.QueryFilter == nil {
		f.QueryFilter = NewDefaultQueryFilter()
	}

	if err := f.QueryFilter.Validate(); err != nil {
		return err
	}

	if err := f.QueryFilter.ValidateOrdering(ReportOrderingFields); err != nil {
		return err
	}

	if f.Status != nil {
		if err := f.Status.Validate(); err != nil {
			return err
		}
	}
	if f.ReportType != nil {
		if err := f.ReportType.Validate(); err != nil {
			return err
		}
	}
	return nil
}
