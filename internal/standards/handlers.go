package standards

import (
	"encoding/json"
	"errors"

	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes exposes read-only views over the standards tables plus
// an authenticated reload endpoint.
func RegisterRoutes(r fiber.Router, c *Catalog, authMiddleware fiber.Handler) {
	r.Get("/:event", func(ctx *fiber.Ctx) error {
		gender := ctx.Query("gender")
		age := ctx.QueryInt("age", -1)
		course := ctx.Query("course", "SCY")
		if gender == "" || age < 0 {
			return fiber.NewError(fiber.StatusBadRequest, "gender and age required")
		}

		ageGroup := AgeGroup(age)
		row, err := c.StandardsRow(gender, ageGroup, course, ctx.Params("event"))
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "no standards for event")
			}
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return ctx.JSON(fiber.Map{
			"event":     ctx.Params("event"),
			"gender":    gender,
			"age_group": ageGroup,
			"course":    course,
			"levels":    row,
		})
	})

	r.Get("/:event/champs", func(ctx *fiber.Ctx) error {
		gender := ctx.Query("gender")
		age := ctx.QueryInt("age", -1)
		timeMs := ctx.QueryInt("time_ms", 0)
		if gender == "" || age < 0 || timeMs <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "gender, age and time_ms required")
		}

		result, err := c.CheckChamps(int64(timeMs), gender, age, ctx.Params("event"))
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "no qualifying times for event")
			}
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return ctx.JSON(result)
	})

	r.Post("/reload", authMiddleware, func(ctx *fiber.Ctx) error {
		var body struct {
			Motivational json.RawMessage `json:"motivational"`
			Champs       json.RawMessage `json:"champs"`
		}
		if err := ctx.BodyParser(&body); err != nil || len(body.Motivational) == 0 || len(body.Champs) == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "motivational and champs documents required")
		}
		if err := c.Reload(body.Motivational, body.Champs); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		return ctx.JSON(fiber.Map{"status": "reloaded"})
	})
}
