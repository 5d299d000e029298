package team

import (
	"strconv"
	"strings"

	"union-backend/internal/apperr"
	"union-backend/internal/models"
	"union-backend/internal/upload"

	"github.com/gofiber/fiber/v2"
)

type MemberResponse struct {
	ID          uint   `json:"id"`
	Role        string `json:"role"`
	ImageSrc    string `json:"image_src"`
	Name        string `json:"name"`
	Description string `json:"description"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

func newMemberResponse(m *models.TeamMember) MemberResponse {
	return MemberResponse{
		ID:          m.ID,
		Role:        string(m.Role),
		ImageSrc:    m.ImageSrc,
		Name:        m.Name,
		Description: m.Description,
		CreatedAt:   m.CreatedAt.Format("2006-01-02 15:04:05"),
		UpdatedAt:   m.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
}

func CreateMemberHandler(repo *Repository, store *upload.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role := c.FormValue("role")
		name := strings.TrimSpace(c.FormValue("name"))
		description := strings.TrimSpace(c.FormValue("description"))

		if role == "" || name == "" || description == "" {
			return apperr.Validation("role, name, description and an image are required")
		}
		if !models.ValidTeamRole(role) {
			return apperr.Validation("role must be CHAIRMAN, DEPUTY_CHAIRMAN or SUPERVISOR")
		}

		fh, err := c.FormFile("image")
		if err != nil {
			return apperr.Validation("An image must be uploaded")
		}

		saved, err := store.SaveImage(fh)
		if err != nil {
			return err
		}

		member, err := repo.Create(models.TeamRole(role), name, description, saved.URL)
		if err != nil {
			// The row was never written, the file should not survive.
			store.Reclaim(saved.URL)
			return err
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"success": true,
			"message": "Team member created",
			"member":  newMemberResponse(member),
		})
	}
}

func GetAllMembersHandler(repo *Repository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		members, err := repo.GetAll()
		if err != nil {
			return err
		}

		res := make([]MemberResponse, 0, len(members))
		for i := range members {
			res = append(res, newMemberResponse(&members[i]))
		}

		return c.JSON(fiber.Map{
			"success": true,
			"members": res,
		})
	}
}

func GetChairmanHandler(repo *Repository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		member, err := repo.GetChairman()
		if err != nil {
			return err
		}
		if member == nil {
			return apperr.NotFound("No chairman has been assigned")
		}

		return c.JSON(fiber.Map{
			"success": true,
			"member":  newMemberResponse(member),
		})
	}
}

func GetDeputyChairmanHandler(repo *Repository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		member, err := repo.GetDeputyChairman()
		if err != nil {
			return err
		}
		if member == nil {
			return apperr.NotFound("No deputy chairman has been assigned")
		}

		return c.JSON(fiber.Map{
			"success": true,
			"member":  newMemberResponse(member),
		})
	}
}

func GetSupervisorsHandler(repo *Repository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		members, err := repo.GetSupervisors()
		if err != nil {
			return err
		}

		res := make([]MemberResponse, 0, len(members))
		for i := range members {
			res = append(res, newMemberResponse(&members[i]))
		}

		return c.JSON(fiber.Map{
			"success": true,
			"members": res,
		})
	}
}

func GetMemberHandler(repo *Repository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c)
		if err != nil {
			return err
		}

		member, err := repo.FindByID(id)
		if err != nil {
			return err
		}
		if member == nil {
			return apperr.NotFound("Team member not found")
		}

		return c.JSON(fiber.Map{
			"success": true,
			"member":  newMemberResponse(member),
		})
	}
}

func UpdateMemberHandler(repo *Repository, store *upload.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c)
		if err != nil {
			return err
		}

		existing, err := repo.FindByID(id)
		if err != nil {
			return err
		}
		if existing == nil {
			return apperr.NotFound("Team member not found")
		}

		var fields UpdateFields

		if role := c.FormValue("role"); role != "" {
			if !models.ValidTeamRole(role) {
				return apperr.Validation("role must be CHAIRMAN, DEPUTY_CHAIRMAN or SUPERVISOR")
			}
			r := models.TeamRole(role)
			fields.Role = &r
		}
		if name := strings.TrimSpace(c.FormValue("name")); name != "" {
			fields.Name = &name
		}
		if description := strings.TrimSpace(c.FormValue("description")); description != "" {
			fields.Description = &description
		}

		var saved *upload.SavedFile
		if fh, err := c.FormFile("image"); err == nil {
			saved, err = store.SaveImage(fh)
			if err != nil {
				return err
			}
			fields.ImageSrc = &saved.URL
		}

		if fields.Role == nil && fields.Name == nil && fields.Description == nil && fields.ImageSrc == nil {
			return apperr.Validation("Nothing to update")
		}

		member, err := repo.Update(id, fields)
		if err != nil {
			if saved != nil {
				store.Reclaim(saved.URL)
			}
			return err
		}

		// The old file is reclaimed only after the new state is committed.
		if saved != nil && existing.ImageSrc != saved.URL {
			store.Reclaim(existing.ImageSrc)
		}

		return c.JSON(fiber.Map{
			"success": true,
			"message": "Team member updated",
			"member":  newMemberResponse(member),
		})
	}
}

func DeleteMemberHandler(repo *Repository, store *upload.Store) fiber.Handler {
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
			"message": "Team member deleted",
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
