package news

import (
	"errors"

	"union-backend/internal/apperr"
	"union-backend/internal/models"

	"gorm.io/gorm"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

type UpdateFields struct {
	Title       *string
	Description *string
	Date        *string
	ImageSrc    *string
}

func (r *Repository) Create(title, description, date, imageSrc string) (*models.News, error) {
	item := models.News{Title: title, Description: description, Date: date, ImageSrc: imageSrc}
	if err := r.db.Create(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// FindByID returns (nil, nil) when no such news item exists.
func (r *Repository) FindByID(id uint) (*models.News, error) {
	var item models.News
	if err := r.db.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

// GetAll lists news by display date, newest first; creation time breaks
// ties between items published on the same day.
func (r *Repository) GetAll() ([]models.News, error) {
	var items []models.News
	err := r.db.Order("date DESC, created_at DESC").Find(&items).Error
	return items, err
}

func (r *Repository) Update(id uint, fields UpdateFields) (*models.News, string, error) {
	var item models.News
	var priorImage string

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&item, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("News item not found")
			}
			return err
		}

		if fields.Title != nil {
			item.Title = *fields.Title
		}
		if fields.Description != nil {
			item.Description = *fields.Description
		}
		if fields.Date != nil {
			item.Date = *fields.Date
		}
		if fields.ImageSrc != nil {
			priorImage = item.ImageSrc
			item.ImageSrc = *fields.ImageSrc
		}

		return tx.Save(&item).Error
	})
	if err != nil {
		return nil, "", err
	}
	return &item, priorImage, nil
}

// Delete removes the row and returns the image path it referenced.
func (r *Repository) Delete(id uint) (string, error) {
	var item models.News
	if err := r.db.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", apperr.NotFound("News item not found")
		}
		return "", err
	}

	if err := r.db.Delete(&models.News{}, id).Error; err != nil {
		return "", err
	}
	return item.ImageSrc, nil
}
