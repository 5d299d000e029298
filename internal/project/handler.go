package project

import (
	"strconv"
	"strings"

	"union-backend/internal/apperr"
	"union-backend/internal/models"
	"union-backend/internal/upload"

	"github.com/gofiber/fiber/v2"
)

type ProjectResponse struct {
	ID          uint   `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	ImageSrc    string `json:"image_src"`
	Target      string `json:"target"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

func newProjectResponse(p *models.Project) ProjectResponse {
	return ProjectResponse{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		ImageSrc:    p.ImageSrc,
		Target:      string(p.Target),
		CreatedAt:   p.CreatedAt.Format("2006-01-02 15:04:05"),
		UpdatedAt:   p.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
}

func CreateProjectHandler(repo *Repository, store *upload.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		title := strings.TrimSpace(c.FormValue("title"))
		description := strings.TrimSpace(c.FormValue("description"))
		target := c.FormValue("target")

		if title == "" || description == "" || target == "" {
			return apperr.Validation("title, description, target and an image are required")
		}
		if !models.ValidTarget(target) {
			return apperr.Validation("target must be EMPLOYEE or STUDENT")
		}

		fh, err := c.FormFile("image")
		if err != nil {
			return apperr.Validation("An image must be uploaded")
		}

		saved, err := store.SaveImage(fh)
		if err != nil {
			return err
		}

		proj, err := repo.Create(title, description, models.Target(target), saved.URL)
		if err != nil {
			store.Reclaim(saved.URL)
			return err
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"success": true,
			"message": "Project created",
			"project": newProjectResponse(proj),
		})
	}
}

func GetAllProjectsHandler(repo *Repository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var target *models.Target
		if raw := c.Query("target"); raw != "" {
			if !models.ValidTarget(raw) {
				return apperr.Validation("target must be EMPLOYEE or STUDENT")
			}
			t := models.Target(raw)
			target = &t
		}

		projects, err := repo.GetAll(target)
		if err != nil {
			return err
		}

		res := make([]ProjectResponse, 0, len(projects))
		for i := range projects {
			res = append(res, newProjectResponse(&projects[i]))
		}

		return c.JSON(fiber.Map{
			"success":  true,
			"projects": res,
		})
	}
}

func GetProjectHandler(repo *Repository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c)
		if err != nil {
			return err
		}

		proj, err := repo.FindByID(id)
		if err != nil {
			return err
		}
		if proj == nil {
			return apperr.NotFound("Project not found")
		}

		return c.JSON(fiber.Map{
			"success": true,
			"project": newProjectResponse(proj),
		})
	}
}

func UpdateProjectHandler(repo *Repository, store *upload.Store) fiber.Handler {
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
		if target := c.FormValue("target"); target != "" {
			if !models.ValidTarget(target) {
				return apperr.Validation("target must be EMPLOYEE or STUDENT")
			}
			t := models.Target(target)
			fields.Target = &t
		}
		if fh, err := c.FormFile("image"); err == nil {
			saved, err := store.SaveImage(fh)
			if err != nil {
				return err
			}
			fields.ImageSrc = &saved.URL
		}

		if fields.Title == nil && fields.Description == nil && fields.Target == nil && fields.ImageSrc == nil {
			return apperr.Validation("Nothing to update")
		}

		proj, priorImage, err := repo.Update(id, fields)
		if err != nil {
			if fields.ImageSrc != nil {
				store.Reclaim(*fields.ImageSrc)
			}
			return err
		}

		if priorImage != "" && priorImage != proj.ImageSrc {
			store.Reclaim(priorImage)
		}

		return c.JSON(fiber.Map{
			"success": true,
			"message": "Project updated",
			"project": newProjectResponse(proj),
		})
	}
}

func DeleteProjectHandler(repo *Repository, store *upload.Store) fiber.Handler {
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
			"message": "Project deleted",
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
