package models

import "gorm.io/gorm"

type Comment struct {
	gorm.Model

	Text     string `gorm:"not null"`
	CardID   uint   `gorm:"not null;index"`
	AuthorID uint   `gorm:"not null"`

	// Relationships
	Card     Card      `gorm:"foreignKey:CardID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Author   User      `gorm:"foreignKey:AuthorID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Mentions []Mention `gorm:"foreignKey:CommentID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}

// Mention records an @username reference inside a comment.
type Mention struct {
	gorm.Model

	CommentID       uint `gorm:"not null;index"`
	MentionedUserID uint `gorm:"not null;index"`

	// Relationships
	Comment       Comment `gorm:"foreignKey:CommentID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	MentionedUser User    `gorm:"foreignKey:MentionedUserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
