package medal

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(r fiber.Router, svc *Service, authMiddleware fiber.Handler) {
	r.Get("/", authMiddleware, func(c *fiber.Ctx) error {
		athleteID, _ := c.Locals("athlete_id").(string)
		medals, err := svc.Medals(c.Context(), athleteID)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(medals)
	})

	r.Get("/stats", authMiddleware, func(c *fiber.Ctx) error {
		athleteID, _ := c.Locals("athlete_id").(string)
		stats, err := svc.Stats(c.Context(), athleteID)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(stats)
	})
}
