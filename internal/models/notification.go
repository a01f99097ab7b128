package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	NotificationCardAssigned       = "card_assigned"
	NotificationCommentMention     = "comment_mention"
	NotificationInvitationAccepted = "invitation_accepted"
	NotificationInvitationDeclined = "invitation_declined"
)

type Notification struct {
	gorm.Model

	UserID  uint   `gorm:"not null;index"`
	Type    string `gorm:"not null"`
	Title   string `gorm:"not null"`
	Message string
	Data    datatypes.JSON `gorm:"type:jsonb"`
	ReadAt  *time.Time

	// Relationships
	User User `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
