package service

import (
	"context"
	"time"

	"github.com/betulabla/foundation/internal/api/dto"
	"github.com/betulabla/foundation/internal/domain/borehole"
	"github.com/betulabla/foundation/internal/types"
	"github.com/samber/lo"
)

type BoreholeService interface {
	CreateBorehole(ctx context.Context, req dto.CreateBoreholeRequest) (*dto.BoreholeResponse, error)
	GetBorehole(ctx context.Context, id string) (*dto.BoreholeResponse, error)
	ListBoreholes(ctx context.Context, filter *types.BoreholeFilter) (*dto.ListBoreholesResponse, error)
	UpdateBorehole(ctx context.Context, id string, req dto.UpdateBoreholeRequest, partial bool) (*dto.BoreholeResponse, error)
	DeleteBorehole(ctx context.Context, id string) error
	UpdateBoreholeStatus(ctx context.Context, id string, req dto.UpdateBoreholeStatusRequest) (*dto.BoreholeResponse, error)
	GetBoreholeStats(ctx context.Context) (*dto.BoreholeStatsResponse, error)
}

type boreholeService struct {
	ServiceParams
}

func NewBoreholeService(params ServiceParams) BoreholeService {
	return &boreholeService{
		ServiceParams: params,
	}
}

func (s *boreholeService) CreateBorehole(ctx context.Context, req dto.CreateBoreholeRequest) (*dto.BoreholeResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	b := req.ToBorehole(ctx)
	if err := s.BoreholeRepo.Create(ctx, b); err != nil {
		return nil, err
	}

	s.Logger.Infow("borehole created", "borehole_id", b.ID, "created_by", b.CreatedBy)
	return dto.NewBoreholeResponse(b), nil
}

func (s *boreholeService) GetBorehole(ctx context.Context, id string) (*dto.BoreholeResponse, error) {
	b, err := s.BoreholeRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.NewBoreholeResponse(b), nil
}

func (s *boreholeService) ListBoreholes(ctx context.Context, filter *types.BoreholeFilter) (*dto.ListBoreholesResponse, error) {
	if filter == nil {
		filter = types.NewDefaultBoreholeFilter()
	}
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	boreholes, err := s.BoreholeRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	total, err := s.BoreholeRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := lo.Map(boreholes, func(b *borehole.Borehole, _ int) *dto.BoreholeListItemResponse {
		return dto.NewBoreholeListItemResponse(b)
	})
	resp := types.NewListResponse(items, total, filter.GetLimit(), filter.GetOffset())
	return &resp, nil
}

func (s *boreholeService) UpdateBorehole(ctx context.Context, id string, req dto.UpdateBoreholeRequest, partial bool) (*dto.BoreholeResponse, error) {
	if err := req.Validate(partial); err != nil {
		return nil, err
	}

	return s.update(ctx, id, req.Apply)
}

func (s *boreholeService) DeleteBorehole(ctx context.Context, id string) error {
	if err := s.BoreholeRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.Logger.Infow("borehole deleted", "borehole_id", id, "deleted_by", types.GetUserID(ctx))
	return nil
}

// UpdateBoreholeStatus overwrites the status with any valid value
func (s *boreholeService) UpdateBoreholeStatus(ctx context.Context, id string, req dto.UpdateBoreholeStatusRequest) (*dto.BoreholeResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	return s.update(ctx, id, func(b *borehole.Borehole) {
		b.Status = req.Status
	})
}

func (s *boreholeService) GetBoreholeStats(ctx context.Context) (*dto.BoreholeStatsResponse, error) {
	stats, err := s.BoreholeRepo.Stats(ctx)
	if err != nil {
		return nil, err
	}
	return dto.NewBoreholeStatsResponse(stats), nil
}

func (s *boreholeService) update(ctx context.Context, id string, mutate func(b *borehole.Borehole)) (*dto.BoreholeResponse, error) {
	var updated *borehole.Borehole
	err := s.DB.WithTx(ctx, func(ctx context.Context) error {
		b, err := s.BoreholeRepo.Get(ctx, id)
		if err != nil {
			return err
		}

		mutate(b)
		b.UpdatedAt = time.Now().UTC()
		if err := s.BoreholeRepo.Update(ctx, b); err != nil {
			return err
		}

		updated = b
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto.NewBoreholeResponse(updated), nil
}
