package project

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
	Target      *models.Target
	ImageSrc    *string
}

func (r *Repository) Create(title, description string, target models.Target, imageSrc string) (*models.Project, error) {
	proj := models.Project{Title: title, Description: description, Target: target, ImageSrc: imageSrc}
	if err := r.db.Create(&proj).Error; err != nil {
		return nil, err
	}
	return &proj, nil
}

// FindByID returns (nil, nil) when no such project exists.
func (r *Repository) FindByID(id uint) (*models.Project, error) {
	var proj models.Project
	if err := r.db.First(&proj, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &proj, nil
}

// GetAll lists projects newest first, optionally filtered by target.
func (r *Repository) GetAll(target *models.Target) ([]models.Project, error) {
	q := r.db.Order("created_at DESC")
	if target != nil {
		q = q.Where("target = ?", *target)
	}

	var projects []models.Project
	err := q.Find(&projects).Error
	return projects, err
}

func (r *Repository) Update(id uint, fields UpdateFields) (*models.Project, string, error) {
	var proj models.Project
	var priorImage string

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&proj, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("Project not found")
			}
			return err
		}

		if fields.Title != nil {
			proj.Title = *fields.Title
		}
		if fields.Description != nil {
			proj.Description = *fields.Description
		}
		if fields.Target != nil {
			proj.Target = *fields.Target
		}
		if fields.ImageSrc != nil {
			priorImage = proj.ImageSrc
			proj.ImageSrc = *fields.ImageSrc
		}

		return tx.Save(&proj).Error
	})
	if err != nil {
		return nil, "", err
	}
	return &proj, priorImage, nil
}

// Delete removes the row and returns the image path it referenced.
func (r *Repository) Delete(id uint) (string, error) {
	var proj models.Project
	if err := r.db.First(&proj, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", apperr.NotFound("Project not found")
		}
		return "", err
	}

	if err := r.db.Delete(&models.Project{}, id).Error; err != nil {
		return "", err
	}
	return proj.ImageSrc, nil
}
