package stats

import (
	"errors"

	"union-backend/internal/models"

	"gorm.io/gorm"
)

// Repository owns the main_page_stats singleton row (id = 1). The row is
// seeded with zeros at startup and recreated on first access if it went
// missing; it is never deleted.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

type UpdateFields struct {
	ProjectsCount *int
	PaymentsCount *int
	ChoiceCount   *int
}

func (r *Repository) Get() (*models.MainPageStats, error) {
	var row models.MainPageStats
	if err := r.db.First(&row, 1).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			row = models.MainPageStats{ID: 1}
			if err := r.db.Create(&row).Error; err != nil {
				return nil, err
			}
			return &row, nil
		}
		return nil, err
	}
	return &row, nil
}

// Update changes only the supplied counters; the rest keep their prior
// values.
func (r *Repository) Update(fields UpdateFields) (*models.MainPageStats, error) {
	var row models.MainPageStats

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where(models.MainPageStats{ID: 1}).FirstOrCreate(&row).Error; err != nil {
			return err
		}

		if fields.ProjectsCount != nil {
			row.ProjectsCount = *fields.ProjectsCount
		}
		if fields.PaymentsCount != nil {
			row.PaymentsCount = *fields.PaymentsCount
		}
		if fields.ChoiceCount != nil {
			row.ChoiceCount = *fields.ChoiceCount
		}

		return tx.Save(&row).Error
	})
	if err != nil {
		return nil, err
	}
	return &row, nil
}
