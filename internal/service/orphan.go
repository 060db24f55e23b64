package service

import (
	"context"
	"time"

	"github.com/betulabla/foundation/internal/api/dto"
	"github.com/betulabla/foundation/internal/domain/orphan"
	"github.com/betulabla/foundation/internal/s3"
	"github.com/betulabla/foundation/internal/types"
	"github.com/samber/lo"
)

type OrphanService interface {
	CreateOrphan(ctx context.Context, req dto.CreateOrphanRequest) (*dto.OrphanResponse, error)
	GetOrphan(ctx context.Context, id string) (*dto.OrphanResponse, error)
	ListOrphans(ctx context.Context, filter *types.OrphanFilter) (*dto.ListOrphansResponse, error)
	UpdateOrphan(ctx context.Context, id string, req dto.UpdateOrphanRequest, partial bool) (*dto.OrphanResponse, error)
	DeleteOrphan(ctx context.Context, id string) error
	UpdateOrphanStatus(ctx context.Context, id string, req dto.UpdateOrphanStatusRequest) (*dto.OrphanResponse, error)
	GetOrphanStats(ctx context.Context) (*dto.OrphanStatsResponse, error)
	UploadOrphanPhoto(ctx context.Context, id string, data []byte) (*dto.OrphanResponse, error)
}

type orphanService struct {
	ServiceParams
	media MediaService
}

func NewOrphanService(params ServiceParams, media MediaService) OrphanService {
	return &orphanService{
		ServiceParams: params,
		media:         media,
	}
}

func (s *orphanService) CreateOrphan(ctx context.Context, req dto.CreateOrphanRequest) (*dto.OrphanResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	o := req.ToOrphan(ctx)
	if err := s.OrphanRepo.Create(ctx, o); err != nil {
		return nil, err
	}

	s.Logger.Infow("orphan created", "orphan_id", o.ID, "created_by", o.CreatedBy)
	return s.toResponse(ctx, o), nil
}

func (s *orphanService) GetOrphan(ctx context.Context, id string) (*dto.OrphanResponse, error) {
	o, err := s.OrphanRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.toResponse(ctx, o), nil
}

func (s *orphanService) ListOrphans(ctx context.Context, filter *types.OrphanFilter) (*dto.ListOrphansResponse, error) {
	if filter == nil {
		filter = types.NewDefaultOrphanFilter()
	}
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	orphans, err := s.OrphanRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	total, err := s.OrphanRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	items := lo.Map(orphans, func(o *orphan.Orphan, _ int) *dto.OrphanListItemResponse {
		return dto.NewOrphanListItemResponse(o, s.media.URL(ctx, o.PhotoKey), now)
	})
	resp := types.NewListResponse(items, total, filter.GetLimit(), filter.GetOffset())
	return &resp, nil
}

func (s *orphanService) UpdateOrphan(ctx context.Context, id string, req dto.UpdateOrphanRequest, partial bool) (*dto.OrphanResponse, error) {
	if err := req.Validate(partial); err != nil {
		return nil, err
	}

	return s.update(ctx, id, req.Apply)
}

func (s *orphanService) DeleteOrphan(ctx context.Context, id string) error {
	o, err := s.OrphanRepo.Get(ctx, id)
	if err != nil {
		return err
	}

	// reports about the orphan are removed by the foreign key cascade
	if err := s.OrphanRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.media.Delete(ctx, o.PhotoKey)
	s.Logger.Infow("orphan deleted", "orphan_id", id, "deleted_by", types.GetUserID(ctx))
	return nil
}

// UpdateOrphanStatus overwrites the status with any valid value
func (s *orphanService) UpdateOrphanStatus(ctx context.Context, id string, req dto.UpdateOrphanStatusRequest) (*dto.OrphanResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	return s.update(ctx, id, func(o *orphan.Orphan) {
		o.Status = req.Status
	})
}

func (s *orphanService) GetOrphanStats(ctx context.Context) (*dto.OrphanStatsResponse, error) {
	stats, err := s.OrphanRepo.Stats(ctx)
	if err != nil {
		return nil, err
	}
	return dto.NewOrphanStatsResponse(stats), nil
}

func (s *orphanService) UploadOrphanPhoto(ctx context.Context, id string, data []byte) (*dto.OrphanResponse, error) {
	if _, err := s.OrphanRepo.Get(ctx, id); err != nil {
		return nil, err
	}

	key, err := s.media.Upload(ctx, s3.DocumentTypeOrphanPhoto, id, data)
	if err != nil {
		return nil, err
	}

	var previous *string
	resp, err := s.update(ctx, id, func(o *orphan.Orphan) {
		previous = o.PhotoKey
		o.PhotoKey = &key
	})
	if err != nil {
		s.media.Delete(ctx, &key)
		return nil, err
	}

	s.media.Delete(ctx, previous)
	return resp, nil
}

// update runs a read-modify-write of one orphan inside a transaction
func (s *orphanService) update(ctx context.Context, id string, mutate func(o *orphan.Orphan)) (*dto.OrphanResponse, error) {
	var updated *orphan.Orphan
	err := s.DB.WithTx(ctx, func(ctx context.Context) error {
		o, err := s.OrphanRepo.Get(ctx, id)
		if err != nil {
			return err
		}

		mutate(o)
		o.UpdatedAt = time.Now().UTC()
		if err := s.OrphanRepo.Update(ctx, o); err != nil {
			return err
		}

		updated = o
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.toResponse(ctx, updated), nil
}

func (s *orphanService) toResponse(ctx context.Context, o *orphan.Orphan) *dto.OrphanResponse {
	return dto.NewOrphanResponse(o, s.media.URL(ctx, o.PhotoKey), time.Now().UTC())
}
