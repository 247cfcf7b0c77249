package athlete

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(r fiber.Router, svc *Service, authMiddleware fiber.Handler) {
	r.Get("/me", authMiddleware, func(c *fiber.Ctx) error {
		athleteID, _ := c.Locals("athlete_id").(string)
		profile, err := svc.GetProfile(c.Context(), athleteID)
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, "profile not found")
		}
		return c.JSON(profile)
	})

	r.Put("/me", authMiddleware, func(c *fiber.Ctx) error {
		var req Profile
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		athleteID, _ := c.Locals("athlete_id").(string)
		profile, err := svc.UpdateProfile(c.Context(), athleteID, req)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(profile)
	})

	r.Get("/:id", func(c *fiber.Ctx) error {
		profile, err := svc.GetProfile(c.Context(), c.Params("id"))
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, "profile not found")
		}
		return c.JSON(profile)
	})
}
