package models

import (
	"time"

	"gorm.io/gorm"
)

type Card struct {
	gorm.Model

	Title       string `gorm:"not null"`
	Description string
	Position    int  `gorm:"not null;default:0"`
	ListID      uint `gorm:"not null;index"`
	CreatedByID uint `gorm:"not null"`
	DueDate     *time.Time
	IsArchived  bool `gorm:"not null;default:false"`

	// Relationships
	List       BoardList      `gorm:"foreignKey:ListID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	CreatedBy  User           `gorm:"foreignKey:CreatedByID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Assignees  []CardAssignee `gorm:"foreignKey:CardID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Labels     []CardLabel    `gorm:"foreignKey:CardID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Checklists []Checklist    `gorm:"foreignKey:CardID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Comments   []Comment      `gorm:"foreignKey:CardID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
