package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ScrapedData maps a source URL to the storage key of its scraped payload.
// Written by the scraping system; this backend only reads it.
type ScrapedData struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	SourceURL  string    `gorm:"uniqueIndex;not null;column:source_url"`
	StorageKey string    `gorm:"not null;column:storage_key"`
	CreatedAt  time.Time `gorm:"autoCreateTime;column:created_at"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime;column:updated_at"`
}

func (slf *ScrapedData) BeforeCreate(tx *gorm.DB) error {
	if slf.ID == uuid.Nil {
		slf.ID = uuid.New()
	}
	return nil
}
