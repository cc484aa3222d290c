package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ConfirmationStatus string

const (
	ConfirmationStatusPending   ConfirmationStatus = "pending"
	ConfirmationStatusConfirmed ConfirmationStatus = "confirmed"
)

// GFWLTeamSubmission carries the team metadata of a gfwl job. Storage only;
// no lifecycle logic reads it yet.
type GFWLTeamSubmission struct {
	ID                 uuid.UUID          `gorm:"type:uuid;primaryKey"`
	JobID              uuid.UUID          `gorm:"type:uuid;not null;index;column:job_id"`
	TeamName           string             `gorm:"not null;column:team_name"`
	DiscoveredPlayers  StringList         `gorm:"type:text;column:discovered_players"`
	ConfirmedPlayers   StringList         `gorm:"type:text;column:confirmed_players"`
	ConfirmationStatus ConfirmationStatus `gorm:"not null;column:confirmation_status"`
	CreatedAt          time.Time          `gorm:"autoCreateTime;column:created_at"`
	UpdatedAt          time.Time          `gorm:"autoUpdateTime;column:updated_at"`
}

func (slf *GFWLTeamSubmission) BeforeCreate(tx *gorm.DB) error {
	if slf.ID == uuid.Nil {
		slf.ID = uuid.New()
	}
	if slf.ConfirmationStatus == "" {
		slf.ConfirmationStatus = ConfirmationStatusPending
	}
	return nil
}
