package service

import (
	"context"
	"storefront-demo/internal/model"
	"storefront-demo/internal/repository"
)

type UserService interface {
	ListUsers(ctx context.Context) ([]*repository.UserSummary, error)
	DeleteUser(ctx context.Context, userID string) (*model.User, error)
}

type userServiceImpl struct {
	userRepo repository.UserRepository
}

func NewUserService(
	userRepo repository.UserRepository,
) UserService {
	return &userServiceImpl{
		userRepo: userRepo,
	}
}

func (s *userServiceImpl) ListUsers(ctx context.Context) ([]*repository.UserSummary, error) {
	return s.userRepo.List(ctx)
}

func (s *userServiceImpl) DeleteUser(ctx context.Context, userID string) (*model.User, error) {
	user, err := s.userRepo.Delete(ctx, userID)
	if err != nil {
		return nil, translateNotFound(err)
	}
	return user, nil
}
