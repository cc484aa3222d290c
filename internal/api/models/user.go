package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	ClerkUserID string    `gorm:"uniqueIndex;not null;column:clerk_user_id"`
	CreatedAt   time.Time `gorm:"autoCreateTime;column:created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime;column:updated_at"`
}

func (User) TableName() string {
	return "users"
}

func (slf *User) BeforeCreate(tx *gorm.DB) error {
	if slf.ID == uuid.Nil {
		slf.ID = uuid.New()
	}
	return nil
}
