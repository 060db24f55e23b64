package service

import (
	"bytes"
	"testing"
	"time"

	"github.com/betulabla/foundation/internal/api/dto"
	"github.com/betulabla/foundation/internal/export"
	"github.com/betulabla/foundation/internal/testutil"
	"github.com/betulabla/foundation/internal/types"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/xuri/excelize/v2"
)

type ExportServiceSuite struct {
	testutil.BaseServiceTestSuite
	service   *exportService
	orphans   OrphanService
	boreholes BoreholeService
	reports   ReportService
}

func TestExportService(t *testing.T) {
	suite.Run(t, new(ExportServiceSuite))
}

func (s *ExportServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	params := newTestParams(&s.BaseServiceTestSuite)
	media := NewMediaService(params, s.GetSentry())
	s.service = NewExportService(params).(*exportService)
	s.service.now = func() time.Time { return time.Date(2026, time.October, 1, 0, 0, 0, 0, time.UTC) }
	s.orphans = NewOrphanService(params, media)
	s.boreholes = NewBoreholeService(params)
	s.reports = NewReportService(params, media)
}

func (s *ExportServiceSuite) rows(file *dto.ExportFile, sheet string) [][]string {
	f, err := excelize.OpenReader(bytes.NewReader(file.Data))
	s.Require().NoError(err)
	defer f.Close()

	rows, err := f.GetRows(sheet)
	s.Require().NoError(err)
	return rows
}

func (s *ExportServiceSuite) TestExportOrphans() {
	for i, name := range []string{"Zawadi Mwangi", "Baraka Kiptoo", "Imani Njeri"} {
		_, err := s.orphans.CreateOrphan(s.GetContext(), dto.CreateOrphanRequest{
			FullName:         name,
			DateOfBirth:      lo.ToPtr(types.NewDate(2012+i, time.January, 10)),
			Gender:           types.GenderFemale,
			Address:          "Nairobi",
			MonthlyAllowance: lo.ToPtr(decimal.NewFromInt(int64(100 + i))),
			Status:           types.OrphanStatusActive,
		})
		s.Require().NoError(err)
	}

	// pagination is ignored, ordering and filters are kept
	filter := types.NewDefaultOrphanFilter()
	filter.Limit = lo.ToPtr(1)
	filter.Ordering = lo.ToPtr("full_name")
	file, err := s.service.ExportOrphans(s.GetContext(), filter)
	s.Require().NoError(err)
	s.Equal("orphans-20261001.xlsx", file.Filename)
	s.Equal(export.ContentType, file.ContentType)

	rows := s.rows(file, "Orphans")
	s.Require().Len(rows, 4)
	s.Equal("Full Name", rows[0][1])
	s.Equal("Baraka Kiptoo", rows[1][1])
	s.Equal("Imani Njeri", rows[2][1])
	s.Equal("Zawadi Mwangi", rows[3][1])

	filter = types.NewDefaultOrphanFilter()
	filter.Search = lo.ToPtr("imani")
	file, err = s.service.ExportOrphans(s.GetContext(), filter)
	s.Require().NoError(err)
	s.Len(s.rows(file, "Orphans"), 2)
}

func (s *ExportServiceSuite) TestExportBoreholes() {
	_, err := s.boreholes.CreateBorehole(s.GetContext(), dto.CreateBoreholeRequest{
		Name:               "Dadaab well",
		Location:           "Garissa",
		Latitude:           decimal.NewNullDecimal(decimal.RequireFromString("-0.05")),
		Longitude:          decimal.NewNullDecimal(decimal.RequireFromString("40.31")),
		BeneficiariesCount: lo.ToPtr(1200),
	})
	s.Require().NoError(err)

	file, err := s.service.ExportBoreholes(s.GetContext(), nil)
	s.Require().NoError(err)

	rows := s.rows(file, "Boreholes")
	s.Require().Len(rows, 2)
	s.Equal("Dadaab well", rows[1][1])
	s.Equal("-0.05", rows[1][4])
	s.Equal("1200", rows[1][10])
}

func (s *ExportServiceSuite) TestExportReports() {
	_, err := s.reports.CreateReport(s.GetContext(), dto.CreateReportRequest{
		Title:      "Annual summary",
		ReportType: types.ReportTypeAnnual,
		Content:    "A good year",
	})
	s.Require().NoError(err)

	filter := types.NewDefaultReportFilter()
	filter.Status = lo.ToPtr(types.ReportStatusPublished)
	file, err := s.service.ExportReports(s.GetContext(), filter)
	s.Require().NoError(err)
	s.Len(s.rows(file, "Reports"), 1)

	file, err = s.service.ExportReports(s.GetContext(), types.NewDefaultReportFilter())
	s.Require().NoError(err)
	rows := s.rows(file, "Reports")
	s.Require().Len(rows, 2)
	s.Equal("Annual summary", rows[1][1])
	s.Equal("annual", rows[1][2])
}
