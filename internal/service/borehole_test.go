package service

import (
	"encoding/json"
	"testing"

	"github.com/betulabla/foundation/internal/api/dto"
	ierr "github.com/betulabla/foundation/internal/errors"
	"github.com/betulabla/foundation/internal/testutil"
	"github.com/betulabla/foundation/internal/types"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type BoreholeServiceSuite struct {
	testutil.BaseServiceTestSuite
	service BoreholeService
}

func TestBoreholeService(t *testing.T) {
	suite.Run(t, new(BoreholeServiceSuite))
}

func (s *BoreholeServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.service = NewBoreholeService(newTestParams(&s.BaseServiceTestSuite))
}

func (s *BoreholeServiceSuite) create(name string, status types.BoreholeStatus, beneficiaries int) *dto.BoreholeResponse {
	resp, err := s.service.CreateBorehole(s.GetContext(), dto.CreateBoreholeRequest{
		Name:               name,
		Location:           "Garissa County",
		CommunityServed:    name + " village",
		BeneficiariesCount: lo.ToPtr(beneficiaries),
		Status:             status,
	})
	s.Require().NoError(err)
	return resp
}

func (s *BoreholeServiceSuite) TestCreateBorehole() {
	resp, err := s.service.CreateBorehole(s.GetContext(), dto.CreateBoreholeRequest{
		Name:      "Dadaab well",
		Location:  "Garissa County",
		Latitude:  decimal.NewNullDecimal(decimal.RequireFromString("-0.0523")),
		Longitude: decimal.NewNullDecimal(decimal.RequireFromString("40.3155")),
	})
	s.Require().NoError(err)
	s.Equal(types.WaterQualityUntested, resp.WaterQuality)
	s.Equal(types.BoreholeStatusPlanned, resp.Status)
	s.Zero(resp.BeneficiariesCount)
	s.Require().NotNil(resp.Latitude)
	s.Equal("-0.052300", *resp.Latitude)
	s.Require().NotNil(resp.Coordinates)
	s.InDelta(40.3155, resp.Coordinates.Longitude, 1e-9)

	noCoords := s.create("Wajir well", "", 10)
	s.Nil(noCoords.Coordinates)
	s.Nil(noCoords.Latitude)
}

func (s *BoreholeServiceSuite) TestCreateBoreholeValidation() {
	testCases := []struct {
		name string
		req  dto.CreateBoreholeRequest
	}{
		{"missing_location", dto.CreateBoreholeRequest{Name: "Well"}},
		{"latitude_out_of_range", dto.CreateBoreholeRequest{
			Name:     "Well",
			Location: "Here",
			Latitude: decimal.NewNullDecimal(decimal.NewFromInt(95)),
		}},
		{"too_many_decimal_places", dto.CreateBoreholeRequest{
			Name:      "Well",
			Location:  "Here",
			Longitude: decimal.NewNullDecimal(decimal.RequireFromString("36.12345678")),
		}},
		{"bad_water_quality", dto.CreateBoreholeRequest{Name: "Well", Location: "Here", WaterQuality: "salty"}},
		{"negative_beneficiaries", dto.CreateBoreholeRequest{Name: "Well", Location: "Here", BeneficiariesCount: lo.ToPtr(-1)}},
		{"zero_depth", dto.CreateBoreholeRequest{Name: "Well", Location: "Here", DepthMeters: lo.ToPtr(0)}},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			_, err := s.service.CreateBorehole(s.GetContext(), tc.req)
			s.Require().Error(err)
			s.True(ierr.IsValidation(err))
		})
	}
}

func (s *BoreholeServiceSuite) TestListBoreholes() {
	s.create("Alpha", types.BoreholeStatusActive, 300)
	s.create("Bravo", types.BoreholeStatusMaintenance, 100)
	s.create("Charlie", types.BoreholeStatusActive, 200)

	filter := types.NewDefaultBoreholeFilter()
	filter.Ordering = lo.ToPtr("-beneficiaries_count")
	resp, err := s.service.ListBoreholes(s.GetContext(), filter)
	s.Require().NoError(err)
	s.Require().Len(resp.Items, 3)
	s.Equal([]string{"Alpha", "Charlie", "Bravo"}, lo.Map(resp.Items, func(b *dto.BoreholeListItemResponse, _ int) string {
		return b.Name
	}))

	filter = types.NewDefaultBoreholeFilter()
	filter.Status = lo.ToPtr(types.BoreholeStatusMaintenance)
	resp, err = s.service.ListBoreholes(s.GetContext(), filter)
	s.Require().NoError(err)
	s.Require().Len(resp.Items, 1)
	s.Equal("Bravo", resp.Items[0].Name)

	filter = types.NewDefaultBoreholeFilter()
	filter.Search = lo.ToPtr("CHARLIE VIL")
	resp, err = s.service.ListBoreholes(s.GetContext(), filter)
	s.Require().NoError(err)
	s.Require().Len(resp.Items, 1)

	filter = types.NewDefaultBoreholeFilter()
	filter.Offset = lo.ToPtr(10)
	resp, err = s.service.ListBoreholes(s.GetContext(), filter)
	s.Require().NoError(err)
	s.Empty(resp.Items)
	s.Equal(3, resp.Pagination.Total)
}

func (s *BoreholeServiceSuite) TestUpdateBorehole() {
	created := s.create("Alpha", types.BoreholeStatusActive, 300)

	resp, err := s.service.UpdateBorehole(s.GetContext(), created.ID, dto.UpdateBoreholeRequest{
		Name:         lo.ToPtr("Alpha North"),
		Location:     lo.ToPtr("Mandera"),
		WaterQuality: lo.ToPtr(types.WaterQualityGood),
	}, false)
	s.Require().NoError(err)
	s.Equal("Alpha North", resp.Name)
	s.Equal("Mandera", resp.Location)
	s.Equal(types.WaterQualityGood, resp.WaterQuality)
	s.Equal(300, resp.BeneficiariesCount)

	_, err = s.service.UpdateBorehole(s.GetContext(), created.ID, dto.UpdateBoreholeRequest{
		Name: lo.ToPtr(""),
	}, true)
	s.True(ierr.IsValidation(err))

	_, err = s.service.UpdateBorehole(s.GetContext(), created.ID, dto.UpdateBoreholeRequest{
		Name: lo.ToPtr("Only name"),
	}, false)
	s.True(ierr.IsValidation(err))
}

func (s *BoreholeServiceSuite) TestUpdateBoreholeClearsNullFields() {
	created, err := s.service.CreateBorehole(s.GetContext(), dto.CreateBoreholeRequest{
		Name:        "Alpha",
		Location:    "Wajir",
		Latitude:    decimal.NewNullDecimal(decimal.RequireFromString("1.5")),
		Longitude:   decimal.NewNullDecimal(decimal.RequireFromString("2.5")),
		DepthMeters: lo.ToPtr(60),
	})
	s.Require().NoError(err)
	s.Require().NotNil(created.Coordinates)

	var put dto.UpdateBoreholeRequest
	s.Require().NoError(json.Unmarshal([]byte(`{"name":"Alpha","location":"Wajir","latitude":null,"longitude":null,"depth_meters":null}`), &put))
	resp, err := s.service.UpdateBorehole(s.GetContext(), created.ID, put, false)
	s.Require().NoError(err)
	s.Nil(resp.Coordinates)
	s.Nil(resp.Latitude)
	s.Nil(resp.Longitude)
	s.Nil(resp.DepthMeters)

	got, err := s.service.GetBorehole(s.GetContext(), created.ID)
	s.Require().NoError(err)
	s.Nil(got.Coordinates)

	// clearing one coordinate drops the pair from the derived view
	var patch dto.UpdateBoreholeRequest
	s.Require().NoError(json.Unmarshal([]byte(`{"latitude":"-1.2921","longitude":"36.8219"}`), &patch))
	resp, err = s.service.UpdateBorehole(s.GetContext(), created.ID, patch, true)
	s.Require().NoError(err)
	s.Require().NotNil(resp.Coordinates)

	patch = dto.UpdateBoreholeRequest{}
	s.Require().NoError(json.Unmarshal([]byte(`{"longitude":null}`), &patch))
	resp, err = s.service.UpdateBorehole(s.GetContext(), created.ID, patch, true)
	s.Require().NoError(err)
	s.Nil(resp.Coordinates)
	s.Require().NotNil(resp.Latitude)
	s.Equal("-1.292100", *resp.Latitude)
}

func (s *BoreholeServiceSuite) TestUpdateBoreholeStatus() {
	created := s.create("Alpha", types.BoreholeStatusPlanned, 0)

	resp, err := s.service.UpdateBoreholeStatus(s.GetContext(), created.ID, dto.UpdateBoreholeStatusRequest{Status: types.BoreholeStatusMaintenance})
	s.Require().NoError(err)
	s.Equal(types.BoreholeStatusMaintenance, resp.Status)

	_, err = s.service.UpdateBoreholeStatus(s.GetContext(), created.ID, dto.UpdateBoreholeStatusRequest{Status: "dry"})
	s.True(ierr.IsValidation(err))

	_, err = s.service.UpdateBoreholeStatus(s.GetContext(), "borehole_missing", dto.UpdateBoreholeStatusRequest{Status: types.BoreholeStatusActive})
	s.True(ierr.IsNotFound(err))
}

func (s *BoreholeServiceSuite) TestDeleteBorehole() {
	created := s.create("Alpha", types.BoreholeStatusActive, 10)

	s.Require().NoError(s.service.DeleteBorehole(s.GetContext(), created.ID))
	_, err := s.service.GetBorehole(s.GetContext(), created.ID)
	s.True(ierr.IsNotFound(err))
}

func (s *BoreholeServiceSuite) TestGetBoreholeStats() {
	stats, err := s.service.GetBoreholeStats(s.GetContext())
	s.Require().NoError(err)
	s.Zero(stats.TotalBoreholes)
	s.Equal("0.00", stats.AvgBeneficiariesPerBorehole)

	s.create("Alpha", types.BoreholeStatusActive, 300)
	s.create("Bravo", types.BoreholeStatusActive, 201)
	s.create("Charlie", types.BoreholeStatusActive, 100)
	s.create("Delta", types.BoreholeStatusMaintenance, 1000)
	s.create("Echo", types.BoreholeStatusPlanned, 50)

	stats, err = s.service.GetBoreholeStats(s.GetContext())
	s.Require().NoError(err)
	s.Equal(5, stats.TotalBoreholes)
	s.Equal(3, stats.ActiveBoreholes)
	s.Equal(1, stats.MaintenanceBoreholes)
	s.Equal(int64(601), stats.TotalBeneficiaries)
	s.Equal("200.33", stats.AvgBeneficiariesPerBorehole)
}
