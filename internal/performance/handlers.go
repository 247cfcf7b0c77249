package performance

import (
	"errors"

	"backend-swimtrack/internal/points"
	"backend-swimtrack/internal/swimtime"

	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(r fiber.Router, svc *Service, authMiddleware fiber.Handler) {
	r.Post("/", authMiddleware, func(c *fiber.Ctx) error {
		var req SubmitRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		athleteID, _ := c.Locals("athlete_id").(string)
		result, err := svc.Submit(c.Context(), athleteID, req)
		if err != nil {
			var verr *ValidationError
			if errors.As(err, &verr) {
				return fiber.NewError(fiber.StatusBadRequest, verr.Error())
			}
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.Status(fiber.StatusCreated).JSON(result)
	})

	r.Get("/", authMiddleware, func(c *fiber.Ctx) error {
		athleteID, _ := c.Locals("athlete_id").(string)
		performances, err := svc.Performances(c.Context(), athleteID, c.Query("event"), c.QueryInt("limit"))
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(performances)
	})

	r.Get("/bests", authMiddleware, func(c *fiber.Ctx) error {
		athleteID, _ := c.Locals("athlete_id").(string)
		bests, err := svc.PersonalBests(c.Context(), athleteID)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(bests)
	})

	r.Get("/progress/:event", authMiddleware, func(c *fiber.Ctx) error {
		athleteID, _ := c.Locals("athlete_id").(string)
		history, err := svc.Progress(c.Context(), athleteID, c.Params("event"))
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(history)
	})
}

// RegisterEventRoutes exposes the scoring tools that need no stored
// state: point-based time standards and race strategy for a target time.
func RegisterEventRoutes(r fiber.Router) {
	r.Get("/:event/standards", func(c *fiber.Ctx) error {
		event := c.Params("event")
		table, err := points.TimeStandards(event)
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, err.Error())
		}
		formatted := make(map[string]string, len(table))
		for name, ms := range table {
			formatted[name] = swimtime.Format(ms)
		}
		return c.JSON(fiber.Map{"event": event, "standards_ms": table, "standards": formatted})
	})

	r.Get("/:event/strategy", func(c *fiber.Ctx) error {
		event := c.Params("event")
		target, err := swimtime.Parse(c.Query("target"))
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		strategy, err := points.RaceStrategy(event, target)
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, err.Error())
		}
		per100, cumulative := points.Pace(target, EventDistance(event))
		return c.JSON(fiber.Map{
			"event":      event,
			"strategy":   strategy,
			"pace_100":   swimtime.Format(per100),
			"cumulative": cumulative,
		})
	})
}
