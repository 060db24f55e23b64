package report

import (
	"time"

	"github.com/betulabla/foundation/internal/types"
)

// Report is a narrative document, optionally about one orphan and/or one borehole
type Report struct {
	ID          string             `db:"id" json:"id"`
	Title       string             `db:"title" json:"title"`
	ReportType  types.ReportType   `db:"report_type" json:"report_type"`
	Content     string             `db:"content" json:"content"`
	OrphanID    *string            `db:"orphan_id" json:"orphan_id"`
	BoreholeID  *string            `db:"borehole_id" json:"borehole_id"`
	FileKey     *string            `db:"file_key" json:"file_key"`
	Status      types.ReportStatus `db:"status" json:"status"`
	ReviewedBy  *string            `db:"reviewed_by" json:"reviewed_by"`
	PublishedAt *time.Time         `db:"published_at" json:"published_at"`
	types.BaseModel

	// read only, joined from users
	CreatedByName  string  `db:"created_by_name" json:"created_by_name"`
	ReviewedByName *string `db:"reviewed_by_name" json:"reviewed_by_name"`
}

// MarkPublished moves the report to published. The first publication time is kept.
func (r *Report) MarkPublished(now time.Time) {
	r.Status = types.ReportStatusPublished
	if r.PublishedAt == nil {
		r.PublishedAt = &now
	}
}

type Stats struct {
	TotalReports     int `db:"total_reports"`
	DraftReports     int `db:"draft_reports"`
	PublishedReports int `db:"published_reports"`
	ReportsThisMonth int `db:"reports_this_month"`
}
