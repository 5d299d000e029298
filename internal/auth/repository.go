package auth

import (
	"errors"

	"union-backend/internal/apperr"
	"union-backend/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Repository owns the users table. Usernames are matched exactly and
// case-sensitively; plaintext passwords never leave this package.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(username, password string) (*models.User, error) {
	existing, err := r.FindByUsername(username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperr.Conflict("A user with this name is already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperr.Internal("Failed to hash the password")
	}

	user := models.User{Username: username, PasswordHash: string(hash)}
	if err := r.db.Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// Authenticate checks the credentials and returns the stored user. Both
// an unknown name and a wrong password map to the same error category.
func (r *Repository) Authenticate(username, password string) (*models.User, error) {
	user, err := r.FindByUsername(username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperr.Unauthorized("Invalid username or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, apperr.Unauthorized("Invalid username or password")
	}
	return user, nil
}

// FindByID returns (nil, nil) when no such user exists.
func (r *Repository) FindByID(id uint) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// FindByUsername returns (nil, nil) when no such user exists.
func (r *Repository) FindByUsername(username string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}
