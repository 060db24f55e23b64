package internal

import (
	"context"
	"fmt"
	"os"

	"github.com/betulabla/foundation/internal/api/dto"
	"github.com/betulabla/foundation/internal/service"
	"github.com/betulabla/foundation/internal/types"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

var sampleBoreholes = []dto.CreateBoreholeRequest{
	{
		Name:               "Kibera Community Well",
		Location:           "Kibera, Nairobi",
		CommunityServed:    "Kibera residents",
		Latitude:           decimal.NewNullDecimal(decimal.RequireFromString("-1.313100")),
		Longitude:          decimal.NewNullDecimal(decimal.RequireFromString("36.788400")),
		DepthMeters:        lo.ToPtr(80),
		WaterQuality:       types.WaterQualityGood,
		BeneficiariesCount: lo.ToPtr(1200),
		Status:             types.BoreholeStatusActive,
	},
	{
		Name:               "Garissa School Borehole",
		Location:           "Garissa",
		CommunityServed:    "Primary school and surrounding village",
		DepthMeters:        lo.ToPtr(140),
		WaterQuality:       types.WaterQualityFair,
		BeneficiariesCount: lo.ToPtr(450),
		Status:             types.BoreholeStatusPlanned,
	},
}

// SeedBoreholes inserts sample boreholes as the user named by USERNAME
func SeedBoreholes() error {
	username := os.Getenv("USERNAME")
	if username == "" {
		return fmt.Errorf("usage: go run scripts/main.go -cmd=seed-boreholes -username=<owner>")
	}

	s, err := newScript()
	if err != nil {
		return err
	}
	defer s.Close()

	ctx := context.Background()
	owner, err := s.params.UserRepo.GetByUsername(ctx, username)
	if err != nil {
		return fmt.Errorf("failed to find user %s: %w", username, err)
	}
	ctx = types.SetUserID(ctx, owner.ID)
	ctx = types.SetUserRole(ctx, owner.Role)

	svc := service.NewBoreholeService(s.params)
	for _, req := range sampleBoreholes {
		b, err := svc.CreateBorehole(ctx, req)
		if err != nil {
			return fmt.Errorf("failed to create borehole %s: %w", req.Name, err)
		}
		fmt.Printf("Created borehole %s (%s)\n", b.Name, b.ID)
	}
	return nil
}
