package models

import "gorm.io/gorm"

type Board struct {
	gorm.Model

	Name        string `gorm:"not null"`
	Description string
	ProjectID   uint `gorm:"not null;index"`

	// Relationships
	Project Project     `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Lists   []BoardList `gorm:"foreignKey:BoardID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
