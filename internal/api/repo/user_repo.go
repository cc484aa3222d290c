package repo

import (
	"api"
	"api/internal/api/models"

	"gorm.io/gorm"
)

type UserRepository struct {
	Db *gorm.DB
}

func NewUserRepository() *UserRepository {
	return &UserRepository{Db: api.DB}
}

func (slf *UserRepository) FindByClerkID(clerkUserID string) (models.User, error) {
	var user models.User
	err := slf.Db.Where("clerk_user_id = ?", clerkUserID).First(&user).Error
	return user, err
}

func (slf *UserRepository) Create(user *models.User) error {
	return slf.Db.Create(user).Error
}
