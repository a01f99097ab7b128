package models

import "gorm.io/gorm"

// Checklist positions are dense per card, item positions dense per checklist.
type Checklist struct {
	gorm.Model

	Title    string `gorm:"not null"`
	CardID   uint   `gorm:"not null;index"`
	Position int    `gorm:"not null;default:0"`

	// Relationships
	Card  Card            `gorm:"foreignKey:CardID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Items []ChecklistItem `gorm:"foreignKey:ChecklistID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}

type ChecklistItem struct {
	gorm.Model

	Text        string `gorm:"not null"`
	Completed   bool   `gorm:"not null;default:false"`
	Position    int    `gorm:"not null;default:0"`
	ChecklistID uint   `gorm:"not null;index"`

	// Relationships
	Checklist Checklist `gorm:"foreignKey:ChecklistID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
