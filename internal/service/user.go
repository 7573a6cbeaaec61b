package service

import (
	"context"

	"proptrack-backend/internal/access"
	"proptrack-backend/internal/domain"
	"proptrack-backend/internal/logger"
	"proptrack-backend/internal/repository"
)

type userService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

// GetProfile returns the authenticated caller's own record. The id comes
// from the validated credential, so no further authorization applies.
func (s *userService) GetProfile(ctx context.Context, actor access.Actor) (*domain.User, error) {
	logger.EnterMethod("userService.GetProfile", "actorID", actor.ID)

	user, err := s.userRepo.GetByID(ctx, actor.ID)
	if err != nil {
		logger.ExitMethodWithError("userService.GetProfile", err, "actorID", actor.ID)
		return nil, err
	}

	logger.ExitMethod("userService.GetProfile", "actorID", actor.ID)
	return user, nil
}
