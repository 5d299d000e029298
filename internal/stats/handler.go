package stats

import (
	"union-backend/internal/apperr"
	"union-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type StatsResponse struct {
	ProjectsCount int `json:"projectsCount"`
	PaymentsCount int `json:"paymentsCount"`
	ChoiceCount   int `json:"choiceCount"`
}

type UpdateStatsRequest struct {
	ProjectsCount *int `json:"projectsCount"`
	PaymentsCount *int `json:"paymentsCount"`
	ChoiceCount   *int `json:"choiceCount"`
}

func newStatsResponse(s *models.MainPageStats) StatsResponse {
	return StatsResponse{
		ProjectsCount: s.ProjectsCount,
		PaymentsCount: s.PaymentsCount,
		ChoiceCount:   s.ChoiceCount,
	}
}

func GetStatsHandler(repo *Repository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		row, err := repo.Get()
		if err != nil {
			return err
		}

		return c.JSON(fiber.Map{
			"success": true,
			"stats":   newStatsResponse(row),
		})
	}
}

func UpdateStatsHandler(repo *Repository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body UpdateStatsRequest
		if err := c.BodyParser(&body); err != nil {
			return apperr.Validation("Request body could not be parsed")
		}

		if body.ProjectsCount == nil && body.PaymentsCount == nil && body.ChoiceCount == nil {
			return apperr.Validation("At least one counter must be provided")
		}

		row, err := repo.Update(UpdateFields{
			ProjectsCount: body.ProjectsCount,
			PaymentsCount: body.PaymentsCount,
			ChoiceCount:   body.ChoiceCount,
		})
		if err != nil {
			return err
		}

		return c.JSON(fiber.Map{
			"success": true,
			"stats":   newStatsResponse(row),
		})
	}
}
