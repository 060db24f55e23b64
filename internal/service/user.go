package service

import (
	"context"
	"time"

	"github.com/betulabla/foundation/internal/api/dto"
	"github.com/betulabla/foundation/internal/domain/user"
	ierr "github.com/betulabla/foundation/internal/errors"
	"github.com/betulabla/foundation/internal/types"
	"github.com/samber/lo"
)

type UserService interface {
	GetUserInfo(ctx context.Context) (*dto.UserResponse, error)
	UpdateProfile(ctx context.Context, req *dto.UpdateProfileRequest) (*dto.UserResponse, error)
	ListUsers(ctx context.Context, filter *types.UserFilter) (*dto.ListUsersResponse, error)
	DeleteUser(ctx context.Context, id string) error
	GetDashboard(ctx context.Context) (*dto.DashboardResponse, error)
}

type userService struct {
	ServiceParams
}

func NewUserService(params ServiceParams) UserService {
	return &userService{
		ServiceParams: params,
	}
}

func (s *userService) GetUserInfo(ctx context.Context) (*dto.UserResponse, error) {
	u, err := s.UserRepo.GetByID(ctx, types.GetUserID(ctx))
	if err != nil {
		return nil, err
	}
	return dto.NewUserResponse(u), nil
}

func (s *userService) UpdateProfile(ctx context.Context, req *dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var resp *dto.UserResponse
	err := s.DB.WithTx(ctx, func(ctx context.Context) error {
		u, err := s.UserRepo.GetByID(ctx, types.GetUserID(ctx))
		if err != nil {
			return err
		}

		req.Apply(u)
		u.UpdatedAt = time.Now().UTC()
		if err := s.UserRepo.Update(ctx, u); err != nil {
			return err
		}

		resp = dto.NewUserResponse(u)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func (s *userService) ListUsers(ctx context.Context, filter *types.UserFilter) (*dto.ListUsersResponse, error) {
	if filter == nil {
		filter = types.NewDefaultUserFilter()
	}
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	users, err := s.UserRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	total, err := s.UserRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := lo.Map(users, func(u *user.User, _ int) *dto.UserResponse {
		return dto.NewUserResponse(u)
	})
	resp := types.NewListResponse(items, total, filter.GetLimit(), filter.GetOffset())
	return &resp, nil
}

// DeleteUser removes an account. Accounts that still own records cannot be removed.
func (s *userService) DeleteUser(ctx context.Context, id string) error {
	if id == types.GetUserID(ctx) {
		return ierr.NewError("cannot delete own account").
			WithHint("You cannot delete your own account").
			Mark(ierr.ErrInvalidOperation)
	}

	err := s.DB.WithTx(ctx, func(ctx context.Context) error {
		if _, err := s.UserRepo.GetByID(ctx, id); err != nil {
			return err
		}
		return s.UserRepo.Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	s.Logger.Infow("user deleted", "user_id", id, "deleted_by", types.GetUserID(ctx))
	return nil
}

func (s *userService) GetDashboard(ctx context.Context) (*dto.DashboardResponse, error) {
	u, err := s.UserRepo.GetByID(ctx, types.GetUserID(ctx))
	if err != nil {
		return nil, err
	}

	return &dto.DashboardResponse{
		Message: "Dashboard statistics endpoint",
		User:    u.Username,
		Role:    u.Role,
	}, nil
}
