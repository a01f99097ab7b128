package models

import "gorm.io/gorm"

type CardAssignee struct {
	gorm.Model

	CardID uint `gorm:"not null;uniqueIndex:idx_card_user"`
	UserID uint `gorm:"not null;uniqueIndex:idx_card_user"`

	// Relationships
	Card Card `gorm:"foreignKey:CardID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	User User `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
