package models

import "time"

type Document struct {
	ID           uint   `gorm:"primaryKey"`
	Title        string `gorm:"size:255;not null"`
	Target       Target `gorm:"size:20;not null;index"`
	FileName     string `gorm:"size:255;not null"` // normalized display name
	FileMimeType string `gorm:"size:100;not null"`
	FileURL      string `gorm:"size:255;not null"` // public path under /documents
	FileSize     int64  `gorm:"not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
