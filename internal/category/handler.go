package category

import (
	"strconv"
	"strings"

	"union-backend/internal/apperr"
	"union-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type EntryResponse struct {
	ID          uint   `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

type CategoryResponse struct {
	ID        uint            `json:"id"`
	Title     string          `json:"title"`
	Target    string          `json:"target"`
	Entries   []EntryResponse `json:"entries"`
	CreatedAt string          `json:"created_at"`
	UpdatedAt string          `json:"updated_at"`
}

type ItemResponse struct {
	ID          uint   `json:"id"`
	CategoryID  uint   `json:"category_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

type CreateCategoryRequest struct {
	Title  string `json:"title"`
	Target string `json:"target"`
}

type UpdateCategoryRequest struct {
	Title  *string `json:"title"`
	Target *string `json:"target"`
}

type ItemRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
}

func newCategoryResponse(cat *models.Category, items []models.DictionaryItem) CategoryResponse {
	entries := make([]EntryResponse, 0, len(items))
	for _, item := range items {
		entries = append(entries, EntryResponse{ID: item.ID, Title: item.Title, Description: item.Description})
	}
	return CategoryResponse{
		ID:        cat.ID,
		Title:     cat.Title,
		Target:    string(cat.Target),
		Entries:   entries,
		CreatedAt: cat.CreatedAt.Format("2006-01-02 15:04:05"),
		UpdatedAt: cat.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
}

func newItemResponse(item *models.DictionaryItem) ItemResponse {
	return ItemResponse{
		ID:          item.ID,
		CategoryID:  item.CategoryID,
		Title:       item.Title,
		Description: item.Description,
		CreatedAt:   item.CreatedAt.Format("2006-01-02 15:04:05"),
		UpdatedAt:   item.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
}

func CreateCategoryHandler(repo *Repository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateCategoryRequest
		if err := c.BodyParser(&body); err != nil {
			return apperr.Validation("Request body could not be parsed")
		}

		body.Title = strings.TrimSpace(body.Title)
		if body.Title == "" || body.Target == "" {
			return apperr.Validation("Both title and target are required")
		}
		if !models.ValidTarget(body.Target) {
			return apperr.Validation("target must be EMPLOYEE or STUDENT")
		}

		category, err := repo.Create(body.Title, models.Target(body.Target))
		if err != nil {
			return err
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"success":  true,
			"message":  "Category created",
			"category": newCategoryResponse(category, nil),
		})
	}
}

func GetAllCategoriesHandler(repo *Repository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var target *models.Target
		if raw := c.Query("target"); raw != "" {
			if !models.ValidTarget(raw) {
				return apperr.Validation("target must be EMPLOYEE or STUDENT")
			}
			t := models.Target(raw)
			target = &t
		}

		categories, err := repo.GetAll(target)
		if err != nil {
			return err
		}

		res := make([]CategoryResponse, 0, len(categories))
		for i := range categories {
			items, err := repo.Entries(categories[i].ID)
			if err != nil {
				return err
			}
			res = append(res, newCategoryResponse(&categories[i], items))
		}

		return c.JSON(fiber.Map{
			"success":    true,
			"categories": res,
		})
	}
}

func GetCategoryHandler(repo *Repository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c, "id")
		if err != nil {
			return err
		}

		category, err := repo.FindByID(id)
		if err != nil {
			return err
		}
		if category == nil {
			return apperr.NotFound("Category not found")
		}

		items, err := repo.Entries(category.ID)
		if err != nil {
			return err
		}

		return c.JSON(fiber.Map{
			"success":  true,
			"category": newCategoryResponse(category, items),
		})
	}
}

func UpdateCategoryHandler(repo *Repository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c, "id")
		if err != nil {
			return err
		}

		var body UpdateCategoryRequest
		if err := c.BodyParser(&body); err != nil {
			return apperr.Validation("Request body could not be parsed")
		}

		var fields UpdateFields
		if body.Title != nil {
			title := strings.TrimSpace(*body.Title)
			if title == "" {
				return apperr.Validation("title must not be empty")
			}
			fields.Title = &title
		}
		if body.Target != nil {
			if !models.ValidTarget(*body.Target) {
				return apperr.Validation("target must be EMPLOYEE or STUDENT")
			}
			t := models.Target(*body.Target)
			fields.Target = &t
		}
		if fields.Title == nil && fields.Target == nil {
			return apperr.Validation("Nothing to update")
		}

		category, err := repo.Update(id, fields)
		if err != nil {
			return err
		}

		items, err := repo.Entries(category.ID)
		if err != nil {
			return err
		}

		return c.JSON(fiber.Map{
			"success":  true,
			"message":  "Category updated",
			"category": newCategoryResponse(category, items),
		})
	}
}

func DeleteCategoryHandler(repo *Repository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c, "id")
		if err != nil {
			return err
		}

		if err := repo.Delete(id); err != nil {
			return err
		}

		return c.JSON(fiber.Map{
			"success": true,
			"message": "Category deleted",
		})
	}
}

func AddItemHandler(repo *Repository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		categoryID, err := parseID(c, "categoryId")
		if err != nil {
			return err
		}

		var body ItemRequest
		if err := c.BodyParser(&body); err != nil {
			return apperr.Validation("Request body could not be parsed")
		}

		if body.Title == nil || strings.TrimSpace(*body.Title) == "" ||
			body.Description == nil || strings.TrimSpace(*body.Description) == "" {
			return apperr.Validation("Both title and description are required")
		}

		item, err := repo.AddItem(categoryID, strings.TrimSpace(*body.Title), *body.Description)
		if err != nil {
			return err
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"success": true,
			"message": "Dictionary item added",
			"item":    newItemResponse(item),
		})
	}
}

func UpdateItemHandler(repo *Repository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		categoryID, err := parseID(c, "categoryId")
		if err != nil {
			return err
		}
		itemID, err := parseID(c, "itemId")
		if err != nil {
			return err
		}

		var body ItemRequest
		if err := c.BodyParser(&body); err != nil {
			return apperr.Validation("Request body could not be parsed")
		}

		var fields ItemUpdateFields
		if body.Title != nil {
			title := strings.TrimSpace(*body.Title)
			if title == "" {
				return apperr.Validation("title must not be empty")
			}
			fields.Title = &title
		}
		if body.Description != nil {
			fields.Description = body.Description
		}
		if fields.Title == nil && fields.Description == nil {
			return apperr.Validation("Nothing to update")
		}

		item, err := repo.UpdateItem(categoryID, itemID, fields)
		if err != nil {
			return err
		}

		return c.JSON(fiber.Map{
			"success": true,
			"message": "Dictionary item updated",
			"item":    newItemResponse(item),
		})
	}
}

func DeleteItemHandler(repo *Repository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		categoryID, err := parseID(c, "categoryId")
		if err != nil {
			return err
		}
		itemID, err := parseID(c, "itemId")
		if err != nil {
			return err
		}

		if err := repo.DeleteItem(categoryID, itemID); err != nil {
			return err
		}

		return c.JSON(fiber.Map{
			"success": true,
			"message": "Dictionary item deleted",
		})
	}
}

func parseID(c *fiber.Ctx, name string) (uint, error) {
	id, err := strconv.Atoi(c.Params(name))
	if err != nil || id <= 0 {
		return 0, apperr.Validation("ID must be a number")
	}
	return uint(id), nil
}
