package models

import "time"

// DictionaryItem is a single entry of a dictionary category. Items are
// owned by their category and are removed together with it.
type DictionaryItem struct {
	ID          uint   `gorm:"primaryKey"`
	CategoryID  uint   `gorm:"not null;index"`
	Title       string `gorm:"size:255;not null"`
	Description string `gorm:"not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
