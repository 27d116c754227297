package models

import (
	"time"
)

type CoachStatus string

const (
	StatusActive   CoachStatus = "active"
	StatusInactive CoachStatus = "inactive"
)

// Coach is the single persisted entity of the service. IDs and creation
// timestamps are assigned by the store and never change afterwards.
type Coach struct {
	ID        string      `json:"id" gorm:"primaryKey;size:36"`
	Name      string      `json:"name" gorm:"not null;size:200"`
	Email     string      `json:"email" gorm:"uniqueIndex;not null;size:255"`
	Category  string      `json:"category" gorm:"not null;size:100"`
	Rating    float64     `json:"rating" gorm:"not null"`
	Status    CoachStatus `json:"status" gorm:"not null;size:20"`
	CreatedAt time.Time   `json:"createdAt"`
}

func (Coach) TableName() string {
	return "coaches"
}

// ToggledStatus returns the opposite status value.
func ToggledStatus(s CoachStatus) CoachStatus {
	if s == StatusActive {
		return StatusInactive
	}
	return StatusActive
}
