package document

import (
	"errors"

	"union-backend/internal/apperr"
	"union-backend/internal/models"
	"union-backend/internal/upload"

	"gorm.io/gorm"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

type UpdateFields struct {
	Title  *string
	Target *models.Target
	File   *upload.SavedFile
}

func (r *Repository) Create(title string, target models.Target, file *upload.SavedFile) (*models.Document, error) {
	doc := models.Document{
		Title:        title,
		Target:       target,
		FileName:     file.Name,
		FileMimeType: file.MimeType,
		FileURL:      file.URL,
		FileSize:     file.Size,
	}
	if err := r.db.Create(&doc).Error; err != nil {
		return nil, err
	}
	return &doc, nil
}

// FindByID returns (nil, nil) when no such document exists.
func (r *Repository) FindByID(id uint) (*models.Document, error) {
	var doc models.Document
	if err := r.db.First(&doc, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &doc, nil
}

// GetAll lists documents newest first, optionally filtered by target.
func (r *Repository) GetAll(target *models.Target) ([]models.Document, error) {
	q := r.db.Order("created_at DESC")
	if target != nil {
		q = q.Where("target = ?", *target)
	}

	var docs []models.Document
	err := q.Find(&docs).Error
	return docs, err
}

// Update changes only the supplied fields and returns the updated row
// plus the file path it replaced, if a new file was stored.
func (r *Repository) Update(id uint, fields UpdateFields) (*models.Document, string, error) {
	var doc models.Document
	var priorURL string

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&doc, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("Document not found")
			}
			return err
		}

		if fields.Title != nil {
			doc.Title = *fields.Title
		}
		if fields.Target != nil {
			doc.Target = *fields.Target
		}
		if fields.File != nil {
			priorURL = doc.FileURL
			doc.FileName = fields.File.Name
			doc.FileMimeType = fields.File.MimeType
			doc.FileURL = fields.File.URL
			doc.FileSize = fields.File.Size
		}

		return tx.Save(&doc).Error
	})
	if err != nil {
		return nil, "", err
	}
	return &doc, priorURL, nil
}

// Delete removes the row and returns the file path it referenced so the
// caller can reclaim the physical file.
func (r *Repository) Delete(id uint) (string, error) {
	var doc models.Document
	if err := r.db.First(&doc, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", apperr.NotFound("Document not found")
		}
		return "", err
	}

	if err := r.db.Delete(&models.Document{}, id).Error; err != nil {
		return "", err
	}
	return doc.FileURL, nil
}
