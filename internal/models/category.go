package models

import "time"

type Category struct {
	ID        uint   `gorm:"primaryKey"`
	Title     string `gorm:"size:255;not null"`
	Target    Target `gorm:"size:20;not null;index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
