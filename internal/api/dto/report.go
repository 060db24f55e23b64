package dto

import (
	"context"
	"time"

	"github.com/betulabla/foundation/internal/domain/report"
	"github.com/betulabla/foundation/internal/types"
	"github.com/betulabla/foundation/internal/validator"
	"github.com/oapi-codegen/nullable"
	"github.com/samber/lo"
)

type CreateReportRequest struct {
	Title      string             `json:"title" validate:"required,max=200"`
	ReportType types.ReportType   `json:"report_type" validate:"required"`
	Content    string             `json:"content" validate:"required"`
	OrphanID   *string            `json:"orphan"`
	BoreholeID *string            `json:"borehole"`
	Status     types.ReportStatus `json:"status"`
}

func (r *CreateReportRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}

	if err := r.ReportType.Validate(); err != nil {
		return err
	}
	if r.Status != "" {
		if err := r.Status.Validate(); err != nil {
			return err
		}
	}
	return nil
}

func (r *CreateReportRequest) ToReport(ctx context.Context) *report.Report {
	rep := &report.Report{
		ID:         types.GenerateUUIDWithPrefix(types.UUID_PREFIX_REPORT),
		Title:      r.Title,
		ReportType: r.ReportType,
		Content:    r.Content,
		OrphanID:   lo.EmptyableToPtr(lo.FromPtr(r.OrphanID)),
		BoreholeID: lo.EmptyableToPtr(lo.FromPtr(r.BoreholeID)),
		Status:     r.Status,
		BaseModel:  types.GetDefaultBaseModel(ctx),
	}
	if rep.Status == "" {
		rep.Status = types.ReportStatusDraft
	}
	return rep
}

// UpdateReportRequest serves both PUT and PATCH. Nil or absent fields are left
// unchanged; a null or empty orphan or borehole id detaches the reference.
type UpdateReportRequest struct {
	Title      *string                   `json:"title" validate:"omitempty,max=200"`
	ReportType *types.ReportType         `json:"report_type"`
	Content    *string                   `json:"content"`
	OrphanID   nullable.Nullable[string] `json:"orphan" swaggertype:"string"`
	BoreholeID nullable.Nullable[string] `json:"borehole" swaggertype:"string"`
	Status     *types.ReportStatus       `json:"status"`
}

func (r *UpdateReportRequest) Validate(partial bool) error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}

	if !partial {
		if err := requireFields(map[string]bool{
			"title":       r.Title != nil && *r.Title != "",
			"report_type": r.ReportType != nil,
			"content":     r.Content != nil && *r.Content != "",
		}); err != nil {
			return err
		}
	}

	if r.Title != nil && *r.Title == "" {
		return blankFieldError("title")
	}
	if r.Content != nil && *r.Content == "" {
		return blankFieldError("content")
	}
	if r.ReportType != nil {
		if err := r.ReportType.Validate(); err != nil {
			return err
		}
	}
	if r.Status != nil {
		if err := r.Status.Validate(); err != nil {
			return err
		}
	}
	return nil
}

func (r *UpdateReportRequest) Apply(rep *report.Report) {
	if r.Title != nil {
		rep.Title = *r.Title
	}
	if r.ReportType != nil {
		rep.ReportType = *r.ReportType
	}
	if r.Content != nil {
		rep.Content = *r.Content
	}
	if r.OrphanID.IsSpecified() {
		applyNullable(r.OrphanID, &rep.OrphanID)
		rep.OrphanID = lo.EmptyableToPtr(lo.FromPtr(rep.OrphanID))
	}
	if r.BoreholeID.IsSpecified() {
		applyNullable(r.BoreholeID, &rep.BoreholeID)
		rep.BoreholeID = lo.EmptyableToPtr(lo.FromPtr(rep.BoreholeID))
	}
	if r.Status != nil {
		rep.Status = *r.Status
	}
}

// ReportResponse is the detail view of a report
type ReportResponse struct {
	ID             string             `json:"id"`
	Title          string             `json:"title"`
	ReportType     types.ReportType   `json:"report_type"`
	Content        string             `json:"content"`
	OrphanID       *string            `json:"orphan"`
	BoreholeID     *string            `json:"borehole"`
	FileURL        *string            `json:"file_url"`
	Status         types.ReportStatus `json:"status"`
	CreatedBy      string             `json:"created_by"`
	CreatedByName  string             `json:"created_by_name"`
	ReviewedByName *string            `json:"reviewed_by_name"`
	CreatedAt      time.Time          `json:"created_at"`
	UpdatedAt      time.Time          `json:"updated_at"`
	PublishedAt    *time.Time         `json:"published_at"`
}

type ReportListItemResponse struct {
	ID            string             `json:"id"`
	Title         string             `json:"title"`
	ReportType    types.ReportType   `json:"report_type"`
	Status        types.ReportStatus `json:"status"`
	CreatedByName string             `json:"created_by_name"`
	CreatedAt     time.Time          `json:"created_at"`
	PublishedAt   *time.Time         `json:"published_at"`
}

// ListReportsResponse represents the response for listing reports
type ListReportsResponse = types.ListResponse[*ReportListItemResponse]

func NewReportResponse(r *report.Report, fileURL *string) *ReportResponse {
	return &ReportResponse{
		ID:             r.ID,
		Title:          r.Title,
		ReportType:     r.ReportType,
		Content:        r.Content,
		OrphanID:       r.OrphanID,
		BoreholeID:     r.BoreholeID,
		FileURL:        fileURL,
		Status:         r.Status,
		CreatedBy:      r.CreatedBy,
		CreatedByName:  r.CreatedByName,
		ReviewedByName: r.ReviewedByName,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
		PublishedAt:    r.PublishedAt,
	}
}

func NewReportListItemResponse(r *report.Report) *ReportListItemResponse {
	return &ReportListItemResponse{
		ID:            r.ID,
		Title:         r.Title,
		ReportType:    r.ReportType,
		Status:        r.Status,
		CreatedByName: r.CreatedByName,
		CreatedAt:     r.CreatedAt,
		PublishedAt:   r.PublishedAt,
	}
}

type ReportStatsResponse struct {
	TotalReports     int `json:"total_reports"`
	DraftReports     int `json:"draft_reports"`
	PublishedReports int `json:"published_reports"`
	ReportsThisMonth int `json:"reports_this_month"`
}

func NewReportStatsResponse(s *report.Stats) *ReportStatsResponse {
	return &ReportStatsResponse{
		TotalReports:     s.TotalReports,
		DraftReports:     s.DraftReports,
		PublishedReports: s.PublishedReports,
		ReportsThisMonth: s.ReportsThisMonth,
	}
}
