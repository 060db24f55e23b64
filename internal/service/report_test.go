package service

import (
	"testing"
	"time"

	"github.com/betulabla/foundation/internal/api/dto"
	"github.com/betulabla/foundation/internal/domain/orphan"
	"github.com/betulabla/foundation/internal/domain/report"
	"github.com/betulabla/foundation/internal/domain/user"
	ierr "github.com/betulabla/foundation/internal/errors"
	"github.com/betulabla/foundation/internal/testutil"
	"github.com/betulabla/foundation/internal/types"
	"github.com/oapi-codegen/nullable"
	"github.com/samber/lo"
	"github.com/stretchr/testify/suite"
)

type ReportServiceSuite struct {
	testutil.BaseServiceTestSuite
	service *reportService
	author  *user.User
	orphan  *orphan.Orphan
}

func TestReportService(t *testing.T) {
	suite.Run(t, new(ReportServiceSuite))
}

func (s *ReportServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	params := newTestParams(&s.BaseServiceTestSuite)
	s.service = NewReportService(params, NewMediaService(params, s.GetSentry())).(*reportService)

	s.author = s.CreateUser("coord1", "s3cretpass", types.UserRoleCoordinator)
	s.SetContext(testutil.AsUser(s.GetContext(), s.author.ID, s.author.Role))

	s.orphan = &orphan.Orphan{
		ID:          types.GenerateUUIDWithPrefix(types.UUID_PREFIX_ORPHAN),
		FullName:    "Achieng Otieno",
		DateOfBirth: types.NewDate(2014, time.March, 3),
		Status:      types.OrphanStatusActive,
		BaseModel:   types.GetDefaultBaseModel(s.GetContext()),
	}
	s.Require().NoError(s.GetStores().OrphanRepo.Create(s.GetContext(), s.orphan))
}

func (s *ReportServiceSuite) create(title string, status types.ReportStatus) *dto.ReportResponse {
	resp, err := s.service.CreateReport(s.GetContext(), dto.CreateReportRequest{
		Title:      title,
		ReportType: types.ReportTypeMonthly,
		Content:    "Everything is on track",
		Status:     status,
	})
	s.Require().NoError(err)
	return resp
}

func (s *ReportServiceSuite) TestCreateReport() {
	resp, err := s.service.CreateReport(s.GetContext(), dto.CreateReportRequest{
		Title:      "March visit",
		ReportType: types.ReportTypeAssessment,
		Content:    "Visited the family",
		OrphanID:   lo.ToPtr(s.orphan.ID),
		BoreholeID: lo.ToPtr(""),
	})
	s.Require().NoError(err)
	s.Equal(types.ReportStatusDraft, resp.Status)
	s.Equal(s.author.ID, resp.CreatedBy)
	s.Equal(s.author.FullName, resp.CreatedByName)
	s.Equal(lo.ToPtr(s.orphan.ID), resp.OrphanID)
	s.Nil(resp.BoreholeID)
	s.Nil(resp.PublishedAt)
	s.Nil(resp.ReviewedByName)
}

func (s *ReportServiceSuite) TestCreateReportPublishedStampsTime() {
	resp := s.create("Annual summary", types.ReportStatusPublished)
	s.Require().NotNil(resp.PublishedAt)
	s.Equal(resp.CreatedAt, *resp.PublishedAt)
}

func (s *ReportServiceSuite) TestCreateReportValidation() {
	testCases := []struct {
		name string
		req  dto.CreateReportRequest
	}{
		{"missing_title", dto.CreateReportRequest{ReportType: types.ReportTypeMonthly, Content: "x"}},
		{"missing_content", dto.CreateReportRequest{Title: "x", ReportType: types.ReportTypeMonthly}},
		{"bad_type", dto.CreateReportRequest{Title: "x", ReportType: "weekly", Content: "x"}},
		{"bad_status", dto.CreateReportRequest{Title: "x", ReportType: types.ReportTypeMonthly, Content: "x", Status: "lost"}},
		{"unknown_orphan", dto.CreateReportRequest{
			Title:      "x",
			ReportType: types.ReportTypeMonthly,
			Content:    "x",
			OrphanID:   lo.ToPtr("orphan_missing"),
		}},
		{"unknown_borehole", dto.CreateReportRequest{
			Title:      "x",
			ReportType: types.ReportTypeMonthly,
			Content:    "x",
			BoreholeID: lo.ToPtr("borehole_missing"),
		}},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			_, err := s.service.CreateReport(s.GetContext(), tc.req)
			s.Require().Error(err)
			s.True(ierr.IsValidation(err))
		})
	}
}

func (s *ReportServiceSuite) TestListReports() {
	s.create("Bravo report", types.ReportStatusDraft)
	s.create("Alpha report", types.ReportStatusPublished)
	_, err := s.service.CreateReport(s.GetContext(), dto.CreateReportRequest{
		Title:      "Charlie incident",
		ReportType: types.ReportTypeIncident,
		Content:    "A flooded classroom",
		OrphanID:   lo.ToPtr(s.orphan.ID),
	})
	s.Require().NoError(err)

	filter := types.NewDefaultReportFilter()
	filter.Ordering = lo.ToPtr("title")
	resp, err := s.service.ListReports(s.GetContext(), filter)
	s.Require().NoError(err)
	s.Require().Len(resp.Items, 3)
	s.Equal("Alpha report", resp.Items[0].Title)
	s.Equal(s.author.FullName, resp.Items[0].CreatedByName)

	filter = types.NewDefaultReportFilter()
	filter.OrphanID = lo.ToPtr(s.orphan.ID)
	resp, err = s.service.ListReports(s.GetContext(), filter)
	s.Require().NoError(err)
	s.Require().Len(resp.Items, 1)
	s.Equal(types.ReportTypeIncident, resp.Items[0].ReportType)

	filter = types.NewDefaultReportFilter()
	filter.Search = lo.ToPtr("flooded")
	resp, err = s.service.ListReports(s.GetContext(), filter)
	s.Require().NoError(err)
	s.Len(resp.Items, 1)

	filter = types.NewDefaultReportFilter()
	filter.Status = lo.ToPtr(types.ReportStatus("gone"))
	_, err = s.service.ListReports(s.GetContext(), filter)
	s.True(ierr.IsValidation(err))
}

func (s *ReportServiceSuite) TestUpdateReport() {
	created, err := s.service.CreateReport(s.GetContext(), dto.CreateReportRequest{
		Title:      "March visit",
		ReportType: types.ReportTypeMonthly,
		Content:    "Visited",
		OrphanID:   lo.ToPtr(s.orphan.ID),
	})
	s.Require().NoError(err)

	// an empty id detaches the orphan
	resp, err := s.service.UpdateReport(s.GetContext(), created.ID, dto.UpdateReportRequest{
		OrphanID: nullable.NewNullableWithValue(""),
		Title:    lo.ToPtr("March home visit"),
	}, true)
	s.Require().NoError(err)
	s.Nil(resp.OrphanID)
	s.Equal("March home visit", resp.Title)

	_, err = s.service.UpdateReport(s.GetContext(), created.ID, dto.UpdateReportRequest{
		BoreholeID: nullable.NewNullableWithValue("borehole_missing"),
	}, true)
	s.True(ierr.IsValidation(err))

	// an explicit null detaches as well
	resp, err = s.service.UpdateReport(s.GetContext(), created.ID, dto.UpdateReportRequest{
		OrphanID: nullable.NewNullableWithValue(s.orphan.ID),
	}, true)
	s.Require().NoError(err)
	s.Equal(lo.ToPtr(s.orphan.ID), resp.OrphanID)

	resp, err = s.service.UpdateReport(s.GetContext(), created.ID, dto.UpdateReportRequest{
		OrphanID: nullable.NewNullNullable[string](),
	}, true)
	s.Require().NoError(err)
	s.Nil(resp.OrphanID)

	_, err = s.service.UpdateReport(s.GetContext(), created.ID, dto.UpdateReportRequest{
		Title: lo.ToPtr("Only a title"),
	}, false)
	s.True(ierr.IsValidation(err))

	// publishing through a plain update still records the publication time
	resp, err = s.service.UpdateReport(s.GetContext(), created.ID, dto.UpdateReportRequest{
		Status: lo.ToPtr(types.ReportStatusPublished),
	}, true)
	s.Require().NoError(err)
	s.Equal(types.ReportStatusPublished, resp.Status)
	s.NotNil(resp.PublishedAt)
}

func (s *ReportServiceSuite) TestApproveAndPublish() {
	created := s.create("Quarterly summary", types.ReportStatusDraft)

	_, err := s.service.PublishReport(s.GetContext(), created.ID)
	s.Require().Error(err)
	s.True(ierr.IsValidation(err))

	reviewer := s.CreateUser("admin1", "s3cretpass", types.UserRoleAdmin)
	reviewerCtx := testutil.AsUser(s.GetContext(), reviewer.ID, reviewer.Role)

	approved, err := s.service.ApproveReport(reviewerCtx, created.ID)
	s.Require().NoError(err)
	s.Equal(types.ReportStatusApproved, approved.Status)
	s.Require().NotNil(approved.ReviewedByName)
	s.Equal(reviewer.FullName, *approved.ReviewedByName)
	s.Nil(approved.PublishedAt)

	fixed := time.Date(2026, time.May, 5, 9, 0, 0, 0, time.UTC)
	s.service.now = func() time.Time { return fixed }

	published, err := s.service.PublishReport(s.GetContext(), created.ID)
	s.Require().NoError(err)
	s.Equal(types.ReportStatusPublished, published.Status)
	s.Require().NotNil(published.PublishedAt)
	s.Equal(fixed, *published.PublishedAt)

	// publishing twice is rejected, the report is no longer approved
	_, err = s.service.PublishReport(s.GetContext(), created.ID)
	s.True(ierr.IsValidation(err))

	// approving again resets the status, a second publish keeps the first timestamp
	_, err = s.service.ApproveReport(reviewerCtx, created.ID)
	s.Require().NoError(err)
	s.service.now = func() time.Time { return fixed.Add(time.Hour) }
	published, err = s.service.PublishReport(s.GetContext(), created.ID)
	s.Require().NoError(err)
	s.Equal(fixed, *published.PublishedAt)

	_, err = s.service.ApproveReport(reviewerCtx, "report_missing")
	s.True(ierr.IsNotFound(err))
}

func (s *ReportServiceSuite) TestGetReportStats() {
	now := time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)
	s.service.now = func() time.Time { return now }

	seed := func(status types.ReportStatus, createdAt time.Time) {
		r := &report.Report{
			ID:         types.GenerateUUIDWithPrefix(types.UUID_PREFIX_REPORT),
			Title:      "Seeded",
			ReportType: types.ReportTypeMonthly,
			Content:    "Seeded",
			Status:     status,
			BaseModel: types.BaseModel{
				CreatedBy: s.author.ID,
				CreatedAt: createdAt,
				UpdatedAt: createdAt,
			},
		}
		s.Require().NoError(s.GetStores().ReportRepo.Create(s.GetContext(), r))
	}

	seed(types.ReportStatusDraft, time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC))
	seed(types.ReportStatusDraft, time.Date(2026, time.February, 28, 23, 59, 59, 0, time.UTC))
	seed(types.ReportStatusPublished, time.Date(2026, time.March, 10, 8, 0, 0, 0, time.UTC))
	seed(types.ReportStatusApproved, time.Date(2025, time.March, 10, 8, 0, 0, 0, time.UTC))

	stats, err := s.service.GetReportStats(s.GetContext())
	s.Require().NoError(err)
	s.Equal(4, stats.TotalReports)
	s.Equal(2, stats.DraftReports)
	s.Equal(1, stats.PublishedReports)
	s.Equal(2, stats.ReportsThisMonth)
}

func (s *ReportServiceSuite) TestAttachment() {
	created := s.create("Borehole inspection", types.ReportStatusDraft)

	resp, err := s.service.UploadReportAttachment(s.GetContext(), created.ID, []byte("%PDF-1.7\n%binary"))
	s.Require().NoError(err)
	s.Require().NotNil(resp.FileURL)
	s.Contains(*resp.FileURL, "report_attachment/"+created.ID)

	_, err = s.service.UploadReportAttachment(s.GetContext(), created.ID, []byte("plain text is not allowed"))
	s.True(ierr.IsValidation(err))

	s.Require().NoError(s.service.DeleteReport(s.GetContext(), created.ID))
	s.Zero(s.GetS3().Len())
}
