package routes

import (
	"fmt"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/born-otomasyon/born_api/internal/account"
	"github.com/born-otomasyon/born_api/internal/auth"
	"github.com/born-otomasyon/born_api/internal/config"
	"github.com/born-otomasyon/born_api/internal/forms"
	"github.com/born-otomasyon/born_api/internal/middleware"
	"github.com/born-otomasyon/born_api/internal/notify"
)

// Deps aggregates shared dependencies required to wire routes.
type Deps struct {
	Cfg    config.Config
	DB     *pgxpool.Pool
	Cache  *redis.Client
	Logger *slog.Logger
}

// Setup configures middlewares and all application routes.
func Setup(app *fiber.App, d Deps) error {
	// Memory fallbacks are for dev only; production must run on Postgres.
	if !d.Cfg.IsDev() && d.DB == nil {
		return fmt.Errorf("database is required when APP_ENV=%s", d.Cfg.AppEnv)
	}

	// Middlewares
	app.Use(recover.New())
	app.Use(middleware.RequestID())
	app.Use(cors.New(cors.Config{
		AllowOrigins: d.Cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} -  ${latency} ${method} ${path}\n",
		TimeFormat: "15:04:05",
		TimeZone:   "Local",
	}))

	// Health
	RegisterHealthRoutes(app, d)

	// Repositories
	var accountRepo account.Repository
	var formRepo forms.Repository
	if d.DB != nil {
		accountRepo = account.NewPostgresRepository(d.DB)
		formRepo = forms.NewPostgresRepository(d.DB)
	} else {
		accountRepo = account.NewMemoryRepository()
		formRepo = forms.NewMemoryRepository()
	}

	// Collaborators
	var notifier notify.Notifier
	if d.Cfg.SMTPConfigured() {
		notifier = notify.NewMailer(d.Cfg.SMTPHost, d.Cfg.SMTPPort, d.Cfg.SMTPUser, d.Cfg.SMTPPass, d.Cfg.SMTPFrom)
	} else {
		notifier = notify.NewLogNotifier(d.Logger)
	}
	codes := auth.NewCodeGenerator(nil)
	tokens := auth.NewTokenIssuer(d.Cfg.JWTSecret, d.Cfg.TokenTTL)

	// Services and handlers
	authSvc := auth.NewService(accountRepo, codes, tokens, notifier, d.Logger, d.Cfg.CodeTTL)
	authHandler := auth.NewHandler(authSvc, d.Logger)
	formSvc := forms.NewService(formRepo)
	formHandler := forms.NewHandler(formSvc, d.Logger)

	// API routes
	api := app.Group("/api")

	cooldown := middleware.CodeResendCooldown(d.Cache, d.Cfg.ResendCooldown)
	RegisterAuthRoutes(api, authHandler, cooldown)

	// Protected routes
	jwtmw := middleware.JWTAuth(tokens)
	RegisterFormRoutes(api.Group("", jwtmw), formHandler)

	return nil
}
