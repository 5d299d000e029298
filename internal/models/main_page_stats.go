package models

// MainPageStats is a singleton row (ID is always 1) holding the counters
// shown on the public homepage.
type MainPageStats struct {
	ID            uint `gorm:"primaryKey"`
	ProjectsCount int  `gorm:"not null;default:0"`
	PaymentsCount int  `gorm:"not null;default:0"`
	ChoiceCount   int  `gorm:"not null;default:0"`
}

func (MainPageStats) TableName() string {
	return "main_page_stats"
}
