package team

import (
	"errors"
	"fmt"

	"union-backend/internal/apperr"
	"union-backend/internal/models"

	"gorm.io/gorm"
)

// Repository owns the team_members table and enforces the singleton-role
// invariant: at most one CHAIRMAN and at most one DEPUTY_CHAIRMAN exist
// at any time. The check is a read inside the same transaction as the
// write, so concurrent writers serialize on the database's single-writer
// lock instead of racing past each other.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// UpdateFields carries a partial update; nil fields keep their prior
// values.
type UpdateFields struct {
	Role        *models.TeamRole
	Name        *string
	Description *string
	ImageSrc    *string
}

func (r *Repository) Create(role models.TeamRole, name, description, imageSrc string) (*models.TeamMember, error) {
	member := models.TeamMember{
		Role:        role,
		Name:        name,
		Description: description,
		ImageSrc:    imageSrc,
	}

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := ensureRoleAvailable(tx, role, 0); err != nil {
			return err
		}
		return tx.Create(&member).Error
	})
	if err != nil {
		return nil, err
	}
	return &member, nil
}

// Update changes only the supplied fields. When the role moves to a
// singleton value, the uniqueness check excludes the row being updated,
// so re-saving a chairman as chairman never conflicts with itself.
func (r *Repository) Update(id uint, fields UpdateFields) (*models.TeamMember, error) {
	var member models.TeamMember

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&member, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("Team member not found")
			}
			return err
		}

		if fields.Role != nil {
			if err := ensureRoleAvailable(tx, *fields.Role, id); err != nil {
				return err
			}
			member.Role = *fields.Role
		}
		if fields.Name != nil {
			member.Name = *fields.Name
		}
		if fields.Description != nil {
			member.Description = *fields.Description
		}
		if fields.ImageSrc != nil {
			member.ImageSrc = *fields.ImageSrc
		}

		// Save refreshes updated_at even when nothing else changed.
		return tx.Save(&member).Error
	})
	if err != nil {
		return nil, err
	}
	return &member, nil
}

// Delete removes the row and returns the image path it referenced so the
// caller can reclaim the physical file.
func (r *Repository) Delete(id uint) (string, error) {
	var member models.TeamMember
	if err := r.db.First(&member, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", apperr.NotFound("Team member not found")
		}
		return "", err
	}

	if err := r.db.Delete(&models.TeamMember{}, id).Error; err != nil {
		return "", err
	}
	return member.ImageSrc, nil
}

// FindByID returns (nil, nil) when no such member exists.
func (r *Repository) FindByID(id uint) (*models.TeamMember, error) {
	var member models.TeamMember
	if err := r.db.First(&member, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &member, nil
}

// GetAll lists every member grouped by role, oldest first within a role.
func (r *Repository) GetAll() ([]models.TeamMember, error) {
	var members []models.TeamMember
	err := r.db.Order("role, created_at ASC").Find(&members).Error
	return members, err
}

// GetChairman returns (nil, nil) when the role is unassigned.
func (r *Repository) GetChairman() (*models.TeamMember, error) {
	return r.firstByRole(models.RoleChairman)
}

// GetDeputyChairman returns (nil, nil) when the role is unassigned.
func (r *Repository) GetDeputyChairman() (*models.TeamMember, error) {
	return r.firstByRole(models.RoleDeputyChairman)
}

func (r *Repository) GetSupervisors() ([]models.TeamMember, error) {
	var members []models.TeamMember
	err := r.db.Where("role = ?", models.RoleSupervisor).Order("created_at ASC").Find(&members).Error
	return members, err
}

func (r *Repository) firstByRole(role models.TeamRole) (*models.TeamMember, error) {
	var member models.TeamMember
	if err := r.db.Where("role = ?", role).First(&member).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &member, nil
}

// ensureRoleAvailable fails with a role conflict when another row
// already holds a singleton role. excludeID skips the row being updated.
func ensureRoleAvailable(tx *gorm.DB, role models.TeamRole, excludeID uint) error {
	if !models.SingletonRole(role) {
		return nil
	}

	var count int64
	q := tx.Model(&models.TeamMember{}).Where("role = ?", role)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return apperr.RoleConflict(fmt.Sprintf("A team member with role %s already exists", role))
	}
	return nil
}
