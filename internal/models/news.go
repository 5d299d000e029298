package models

import "time"

type News struct {
	ID          uint   `gorm:"primaryKey"`
	Title       string `gorm:"size:255;not null"`
	Description string `gorm:"not null"`
	Date        string `gorm:"size:30;not null"` // display date supplied by the editor
	ImageSrc    string `gorm:"size:255;not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
