package http

import (
	"time"

	"github.com/feedback-tracker/backend/docs"
	"github.com/feedback-tracker/backend/internal/config"
	"github.com/feedback-tracker/backend/internal/http/handlers"
	"github.com/feedback-tracker/backend/internal/metrics"
	"github.com/feedback-tracker/backend/internal/middleware"
	"github.com/feedback-tracker/backend/internal/validation"
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"
)

// SetupRouter wires middleware and routes. rdb and wsHub may be nil when redis is not configured.
func SetupRouter(
	app *fiber.App,
	cfg *config.Config,
	log *zap.Logger,
	rdb *redis.Client,
	m *metrics.Metrics,
	traces middleware.TraceSink,
	validator *validation.Validator,
	feedbackHandler *handlers.FeedbackHandler,
	logHandler *handlers.LogHandler,
	metaHandler *handlers.MetaHandler,
	wsHub *handlers.WSHub,
) {
	// Global middleware
	app.Use(middleware.RequestIDMiddleware())
	app.Use(cors.New(cors.Config{
		AllowOrigins:  cfg.CORSAllowOrigins,
		AllowHeaders:  "Origin, Content-Type, Accept, X-Request-ID",
		ExposeHeaders: "X-Request-ID",
	}))
	app.Use(middleware.LoggerMiddleware(log))

	// Everything below is written to api_requests
	app.Use(middleware.TraceMiddleware(traces, m))
	app.Use(recover.New())

	// Operator endpoints, not rate limited
	app.Get("/metrics", adaptor.HTTPHandler(m.Handler()))
	docs.SwaggerInfo.BasePath = docsBasePath(cfg.APIPrefix)
	app.Get("/api-docs", func(c *fiber.Ctx) error {
		return c.Redirect("/api-docs/index.html", fiber.StatusMovedPermanently)
	})
	app.Get("/api-docs/*", adaptor.HTTPHandlerFunc(httpSwagger.Handler(httpSwagger.URL("/api-docs/doc.json"))))

	if wsHub != nil {
		app.Use("/ws", handlers.WSUpgradeMiddleware())
		app.Get("/ws/activities", websocket.New(wsHub.HandleWS))
	}

	app.Use(middleware.RateLimitMiddleware(rdb, cfg.RateLimitPerMinute, time.Minute, m, log))

	api := app.Group(cfg.APIPrefix)

	api.Get("/health", metaHandler.Health)

	// Meta
	api.Get("/meta/platforms", metaHandler.GetPlatforms)
	api.Get("/meta/modules", metaHandler.GetModules)

	// Feedbacks
	validateFeedback := middleware.FeedbackValidation(validator)
	api.Get("/feedbacks", feedbackHandler.ListFeedbacks)
	api.Get("/feedbacks/:id", feedbackHandler.GetFeedback)
	api.Post("/feedbacks", validateFeedback, feedbackHandler.CreateFeedback)
	api.Put("/feedbacks/:id", validateFeedback, feedbackHandler.UpdateFeedback)
	api.Delete("/feedbacks/:id", feedbackHandler.DeleteFeedback)

	// Logs
	api.Get("/logs/activities", logHandler.GetActivities)
	api.Get("/logs/api-requests", logHandler.GetAPIRequests)

	app.Use(handlers.RouteNotFound)
}

// docsBasePath maps the api prefix onto the OpenAPI basePath; paths in the document are relative to it.
func docsBasePath(prefix string) string {
	if prefix == "" {
		return "/"
	}
	return prefix
}
