package server

import (
	"log"
	"time"

	"digraph-be/internal/bootstrap"
	"digraph-be/internal/config"
	"digraph-be/internal/pkg/serverutils"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/healthcheck"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

const shutdownTimeout = 10 * time.Second

type Server struct {
	app  *fiber.App
	port string
}

func New(cfg *config.Config, container *bootstrap.Container) *Server {
	app := fiber.New(fiber.Config{
		AppName:   "digraph",
		BodyLimit: 1 << 20,
	})

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.App.CorsAllowedOrigins,
		AllowCredentials: true,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET, POST, PUT, PATCH, DELETE, OPTIONS",
	}))
	// probes answer before tracing starts
	app.Use(healthcheck.New(healthcheck.Config{
		LivenessEndpoint:  "/livez",
		ReadinessEndpoint: "/readyz",
		ReadinessProbe:    func(*fiber.Ctx) bool { return container.Ready() },
	}))
	app.Use(otelfiber.Middleware())
	app.Use(serverutils.ErrorHandlerMiddleware())

	api := app.Group("/api")
	for _, register := range []func(fiber.Router){
		container.AuthController.RegisterRoutes,
		container.UserController.RegisterRoutes,
		container.TopicController.RegisterRoutes,
		container.LinkController.RegisterRoutes,
		container.SearchController.RegisterRoutes,
		container.FlashHandler.RegisterRoutes,
	} {
		register(api)
	}

	return &Server{app: app, port: cfg.App.Port}
}

func (s *Server) App() *fiber.App {
	return s.app
}

func (s *Server) Run() error {
	log.Printf("Listening on :%s", s.port)
	return s.app.Listen(":" + s.port)
}

// Shutdown stops accepting connections and waits for in-flight requests,
// open websockets are cut after shutdownTimeout
func (s *Server) Shutdown() error {
	return s.app.ShutdownWithTimeout(shutdownTimeout)
}
