package models

import "gorm.io/gorm"

type Label struct {
	gorm.Model

	Name      string `gorm:"not null"`
	Color     string `gorm:"not null"` // HEX, e.g. "#61bd4f"
	ProjectID uint   `gorm:"not null;index"`

	// Relationships
	Project    Project     `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	CardLabels []CardLabel `gorm:"foreignKey:LabelID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}

type CardLabel struct {
	gorm.Model

	CardID  uint `gorm:"not null;uniqueIndex:idx_card_label"`
	LabelID uint `gorm:"not null;uniqueIndex:idx_card_label"`

	// Relationships
	Card  Card  `gorm:"foreignKey:CardID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Label Label `gorm:"foreignKey:LabelID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
