package db

import "gorm.io/gorm"

// Page represents one ordered content section of the site.
// Slug doubles as the in-page anchor and is never edited after creation.
type Page struct {
	gorm.Model
	Slug      string `gorm:"uniqueIndex;not null" json:"slug"`
	Title     string `gorm:"not null" json:"title"`
	Subtitle  string `json:"subtitle"`
	Content   string `gorm:"type:text" json:"content"`
	Rank      int    `gorm:"not null;default:0" json:"rank"`
	Published bool   `gorm:"not null;default:false" json:"published"`
}
