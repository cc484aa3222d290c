package service

import (
	"api"
	"api/internal/api/models"
	"api/internal/api/repo"
	"errors"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

type UserService struct {
	userRepo *repo.UserRepository
	logger   zerolog.Logger
}

func NewUserService() *UserService {
	return &UserService{
		userRepo: repo.NewUserRepository(),
		logger:   api.Logger,
	}
}

// GetOrCreateByClerkID resolves the local user for an external subject id,
// creating the row on first sight. Two concurrent first-time requests may race
// on the unique index; the losing insert falls back to re-reading the winner.
func (slf *UserService) GetOrCreateByClerkID(clerkUserID string) (models.User, error) {
	user, err := slf.userRepo.FindByClerkID(clerkUserID)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		slf.logger.Error().Err(err).Str("clerkUserId", clerkUserID).Msg("Error looking up user")
		return models.User{}, err
	}

	user = models.User{ClerkUserID: clerkUserID}
	if createErr := slf.userRepo.Create(&user); createErr != nil {
		if existing, retryErr := slf.userRepo.FindByClerkID(clerkUserID); retryErr == nil {
			return existing, nil
		}
		slf.logger.Error().Err(createErr).Str("clerkUserId", clerkUserID).Msg("Error creating user")
		return models.User{}, createErr
	}
	return user, nil
}
