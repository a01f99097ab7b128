package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	InvitationPending  = "pending"
	InvitationAccepted = "accepted"
	InvitationDeclined = "declined"
)

type Invitation struct {
	gorm.Model

	ProjectID   uint   `gorm:"not null;index"`
	Email       string `gorm:"not null;index"`
	InvitedByID uint   `gorm:"not null"`
	Role        string `gorm:"not null"`
	Token       string `gorm:"uniqueIndex;not null"`
	Status      string `gorm:"not null;default:pending"`
	ExpiresAt   time.Time

	// Relationships
	Project   Project `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	InvitedBy User    `gorm:"foreignKey:InvitedByID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
