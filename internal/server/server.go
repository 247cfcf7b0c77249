package server

import (
	"log"

	"backend-swimtrack/internal/athlete"
	"backend-swimtrack/internal/auth"
	"backend-swimtrack/internal/config"
	"backend-swimtrack/internal/medal"
	"backend-swimtrack/internal/notify"
	"backend-swimtrack/internal/performance"
	"backend-swimtrack/internal/standards"
	"backend-swimtrack/internal/training"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

type Server struct {
	App     *fiber.App
	Cfg     config.Config
	DB      *pgxpool.Pool
	Redis   *redis.Client
	Notify  *notify.Hub
	Catalog *standards.Catalog
}

func NewServer(cfg config.Config, db *pgxpool.Pool, redisClient *redis.Client) *Server {
	app := fiber.New()
	app.Use(recover.New())
	app.Use(logger.New())

	catalog, err := standards.Load(cfg.StandardsPath, cfg.ChampsPath)
	if err != nil {
		log.Printf("standards load failed, using embedded tables: %v", err)
		catalog, _ = standards.Load("", "")
	}

	s := &Server{
		App:     app,
		Cfg:     cfg,
		DB:      db,
		Redis:   redisClient,
		Notify:  notify.NewHub(redisClient),
		Catalog: catalog,
	}

	registerRoutes(s)
	return s
}

func registerRoutes(s *Server) {
	s.App.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	jwtMiddleware := auth.JWTMiddleware(s.Cfg.JWTSecret)

	athletes := athlete.NewService(s.DB)
	sessions := training.NewService(s.DB)
	ledger := medal.NewService(s.DB, s.Notify, s.Cfg.PersistRetries, s.Cfg.PersistBackoffMs)
	detector := medal.NewDetector(s.Catalog)
	performances := performance.NewService(
		s.DB, s.Catalog, athletes, sessions, detector, ledger,
		s.Cfg.PersistRetries, s.Cfg.PersistBackoffMs,
	)

	auth.RegisterRoutes(s.App.Group("/auth"), auth.NewService(s.Cfg.JWTSecret, s.DB))
	athlete.RegisterRoutes(s.App.Group("/athletes"), athletes, jwtMiddleware)
	training.RegisterRoutes(s.App.Group("/training"), sessions, jwtMiddleware)
	performance.RegisterRoutes(s.App.Group("/performances"), performances, jwtMiddleware)
	performance.RegisterEventRoutes(s.App.Group("/events"))
	medal.RegisterRoutes(s.App.Group("/medals"), ledger, jwtMiddleware)
	notify.RegisterRoutes(s.App.Group("/notify"), s.Notify)
	standards.RegisterRoutes(s.App.Group("/standards"), s.Catalog, jwtMiddleware)

	s.App.Get("/dashboard", jwtMiddleware, func(c *fiber.Ctx) error {
		athleteID, _ := c.Locals("athlete_id").(string)

		stats, err := ledger.Stats(c.Context(), athleteID)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		bests, err := performances.PersonalBests(c.Context(), athleteID)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		recent, err := performances.Performances(c.Context(), athleteID, "", 10)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		recentTraining, err := sessions.Sessions(c.Context(), athleteID, 10)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(fiber.Map{
			"medal_stats":         stats,
			"personal_bests":      bests,
			"recent_performances": recent,
			"recent_training":     recentTraining,
		})
	})
}
