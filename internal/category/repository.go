package category

import (
	"errors"

	"union-backend/internal/apperr"
	"union-backend/internal/models"

	"gorm.io/gorm"
)

// Repository owns the categories and dictionary_items tables. A category
// exclusively owns its items: deleting the category removes its items in
// the same transaction.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

type UpdateFields struct {
	Title  *string
	Target *models.Target
}

type ItemUpdateFields struct {
	Title       *string
	Description *string
}

func (r *Repository) Create(title string, target models.Target) (*models.Category, error) {
	category := models.Category{Title: title, Target: target}
	if err := r.db.Create(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

// FindByID returns (nil, nil) when no such category exists.
func (r *Repository) FindByID(id uint) (*models.Category, error) {
	var category models.Category
	if err := r.db.First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &category, nil
}

// GetAll lists categories newest first, optionally filtered by target.
func (r *Repository) GetAll(target *models.Target) ([]models.Category, error) {
	q := r.db.Order("created_at DESC")
	if target != nil {
		q = q.Where("target = ?", *target)
	}

	var categories []models.Category
	err := q.Find(&categories).Error
	return categories, err
}

// Entries lists a category's items in insertion order.
func (r *Repository) Entries(categoryID uint) ([]models.DictionaryItem, error) {
	var items []models.DictionaryItem
	err := r.db.Where("category_id = ?", categoryID).Order("id ASC").Find(&items).Error
	return items, err
}

func (r *Repository) Update(id uint, fields UpdateFields) (*models.Category, error) {
	var category models.Category

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&category, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("Category not found")
			}
			return err
		}

		if fields.Title != nil {
			category.Title = *fields.Title
		}
		if fields.Target != nil {
			category.Target = *fields.Target
		}

		return tx.Save(&category).Error
	})
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// Delete removes a category and all of its items atomically, so a crash
// mid-delete can never leave an item pointing at a missing category.
func (r *Repository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var category models.Category
		if err := tx.First(&category, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("Category not found")
			}
			return err
		}

		if err := tx.Where("category_id = ?", id).Delete(&models.DictionaryItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Category{}, id).Error
	})
}

func (r *Repository) AddItem(categoryID uint, title, description string) (*models.DictionaryItem, error) {
	item := models.DictionaryItem{CategoryID: categoryID, Title: title, Description: description}

	err := r.db.Transaction(func(tx *gorm.DB) error {
		var category models.Category
		if err := tx.First(&category, categoryID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("Category not found")
			}
			return err
		}
		return tx.Create(&item).Error
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// FindItemByID returns (nil, nil) when no such item exists.
func (r *Repository) FindItemByID(id uint) (*models.DictionaryItem, error) {
	var item models.DictionaryItem
	if err := r.db.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

// UpdateItem changes an item that belongs to the given category.
func (r *Repository) UpdateItem(categoryID, itemID uint, fields ItemUpdateFields) (*models.DictionaryItem, error) {
	var item models.DictionaryItem

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ? AND category_id = ?", itemID, categoryID).First(&item).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("Dictionary item not found")
			}
			return err
		}

		if fields.Title != nil {
			item.Title = *fields.Title
		}
		if fields.Description != nil {
			item.Description = *fields.Description
		}

		return tx.Save(&item).Error
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *Repository) DeleteItem(categoryID, itemID uint) error {
	res := r.db.Where("id = ? AND category_id = ?", itemID, categoryID).Delete(&models.DictionaryItem{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("Dictionary item not found")
	}
	return nil
}
