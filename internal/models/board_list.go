package models

import "gorm.io/gorm"

// BoardList is a named column of a board. Non-archived lists of one board
// hold the dense positions 0..n-1; archived lists give up their slot.
type BoardList struct {
	gorm.Model

	Name       string `gorm:"not null"`
	Position   int    `gorm:"not null;default:0"`
	BoardID    uint   `gorm:"not null;index"`
	IsArchived bool   `gorm:"not null;default:false"`

	// Relationships
	Board Board  `gorm:"foreignKey:BoardID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Cards []Card `gorm:"foreignKey:ListID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
