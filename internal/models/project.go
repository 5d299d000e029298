package models

import "time"

type Project struct {
	ID          uint   `gorm:"primaryKey"`
	Title       string `gorm:"size:255;not null"`
	Description string `gorm:"not null"`
	ImageSrc    string `gorm:"size:255;not null"`
	Target      Target `gorm:"size:20;not null;index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
