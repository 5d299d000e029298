package news

import (
	"strconv"
	"strings"

	"union-backend/internal/apperr"
	"union-backend/internal/models"
	"union-backend/internal/upload"

	"github.com/gofiber/fiber/v2"
)

type NewsResponse struct {
	ID          uint   `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Date        string `json:"date"`
	ImageSrc    string `json:"image_src"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

func newNewsResponse(n *models.News) NewsResponse {
	return NewsResponse{
		ID:          n.ID,
		Title:       n.Title,
		Description: n.Description,
		Date:        n.Date,
		ImageSrc:    n.ImageSrc,
		CreatedAt:   n.CreatedAt.Format("2006-01-02 15:04:05"),
		UpdatedAt:   n.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
}

func CreateNewsHandler(repo *Repository, store *upload.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		title := strings.TrimSpace(c.FormValue("title"))
		description := strings.TrimSpace(c.FormValue("description"))
		date := strings.TrimSpace(c.FormValue("date"))

		if title == "" || description == "" || date == "" {
			return apperr.Validation("title, description, date and an image are required")
		}

		fh, err := c.FormFile("image")
		if err != nil {
			return apperr.Validation("An image must be uploaded")
		}

		saved, err := store.SaveImage(fh)
		if err != nil {
			return err
		}

		item, err := repo.Create(title, description, date, saved.URL)
		if err != nil {
			store.Reclaim(saved.URL)
			return err
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"success": true,
			"message": "News item created",
			"news":    newNewsResponse(item),
		})
	}
}

func GetAllNewsHandler(repo *Repository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		items, err := repo.GetAll()
		if err != nil {
			return err
		}

		res := make([]NewsResponse, 0, len(items))
		for i := range items {
			res = append(res, newNewsResponse(&items[i]))
		}

		return c.JSON(fiber.Map{
			"success": true,
			"news":    res,
		})
	}
}

func GetNewsHandler(repo *Repository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c)
		if err != nil {
			return err
		}

		item, err := repo.FindByID(id)
		if err != nil {
			return err
		}
		if item == nil {
			return apperr.NotFound("News item not found")
		}

		return c.JSON(fiber.Map{
			"success": true,
			"news":    newNewsResponse(item),
		})
	}
}

func UpdateNewsHandler(repo *Repository, store *upload.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c)
		if err != nil {
			return err
		}

		var fields UpdateFields

		if title := strings.TrimSpace(c.FormValue("title")); title != "" {
			fields.Title = &title
		}
		if description := strings.TrimSpace(c.FormValue("description")); description != "" {
			fields.Description = &description
		}
		if date := strings.TrimSpace(c.FormValue("date")); date != "" {
			fields.Date = &date
		}
		if fh, err := c.FormFile("image"); err == nil {
			saved, err := store.SaveImage(fh)
			if err != nil {
				return err
			}
			fields.ImageSrc = &saved.URL
		}

		if fields.Title == nil && fields.Description == nil && fields.Date == nil && fields.ImageSrc == nil {
			return apperr.Validation("Nothing to update")
		}

		item, priorImage, err := repo.Update(id, fields)
		if err != nil {
			if fields.ImageSrc != nil {
				store.Reclaim(*fields.ImageSrc)
			}
			return err
		}

		if priorImage != "" && priorImage != item.ImageSrc {
			store.Reclaim(priorImage)
		}

		return c.JSON(fiber.Map{
			"success": true,
			"message": "News item updated",
			"news":    newNewsResponse(item),
		})
	}
}

func DeleteNewsHandler(repo *Repository, store *upload.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c)
		if err != nil {
			return err
		}

		imageSrc, err := repo.Delete(id)
		if err != nil {
			return err
		}

		store.Reclaim(imageSrc)

		return c.JSON(fiber.Map{
			"success": true,
			"message": "News item deleted",
		})
	}
}

func parseID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil || id <= 0 {
		return 0, apperr.Validation("ID must be a number")
	}
	return uint(id), nil
}
