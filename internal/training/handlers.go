package training

import (
	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(r fiber.Router, svc *Service, authMiddleware fiber.Handler) {
	r.Post("/", authMiddleware, func(c *fiber.Ctx) error {
		var req Session
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		req.AthleteID, _ = c.Locals("athlete_id").(string)
		if req.DurationMin <= 0 && req.DistanceM <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "duration_min or distance_m required")
		}
		sess, err := svc.LogSession(c.Context(), req)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.Status(fiber.StatusCreated).JSON(sess)
	})

	r.Get("/", authMiddleware, func(c *fiber.Ctx) error {
		athleteID, _ := c.Locals("athlete_id").(string)
		sessions, err := svc.Sessions(c.Context(), athleteID, c.QueryInt("limit"))
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(sessions)
	})
}
