package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/taskhive/taskhive/internal/api/handler"
	"github.com/taskhive/taskhive/internal/api/middleware"
	"github.com/taskhive/taskhive/internal/core/service"
	"github.com/taskhive/taskhive/internal/infrastructure/config"
	mongodb "github.com/taskhive/taskhive/internal/infrastructure/db/mongo"
	redisdb "github.com/taskhive/taskhive/internal/infrastructure/db/redis"
	"github.com/taskhive/taskhive/internal/web"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// Page routes carry trailing slashes.
func NewRouter(cfg *config.Config, db *mongo.Database, rdb *redis.Client, log zerolog.Logger) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true

	renderer, err := web.NewRenderer()
	if err != nil {
		return nil, err
	}
	e.Renderer = renderer
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("taskhive"))
	e.Use(echomiddleware.CSRFWithConfig(echomiddleware.CSRFConfig{
		TokenLookup: "form:csrf",
	}))
	e.Use(middleware.LoadSession(cfg.SessionSecret))

	// --- Dependencies ---
	accountRepo := mongodb.NewAccountRepository(db)
	taskRepo := mongodb.NewTaskRepository(db)
	throttle := redisdb.NewLoginThrottle(rdb)

	accountService := service.NewAccountService(accountRepo, throttle, cfg.SessionSecret, cfg.SessionTTL, log)
	taskService := service.NewTaskService(taskRepo, log)

	secureCookies := cfg.Env == "production"
	authHandler := handler.NewAuthHandler(accountService, cfg.SessionTTL, secureCookies)
	taskHandler := handler.NewTaskHandler(taskService)

	// --- Auth routes ---
	e.GET("/signup/", authHandler.SignupForm)
	e.POST("/signup/", authHandler.Signup)
	e.GET("/login/", authHandler.LoginForm)
	e.POST("/login/", authHandler.Login)
	e.GET("/logout/", authHandler.Logout)
	e.POST("/logout/", authHandler.Logout)

	// --- Task routes ---
	// The list page is public: anonymous callers see empty lists.
	e.GET("/", taskHandler.Home)

	tasks := e.Group("", middleware.RequireLogin())
	tasks.GET("/add/", taskHandler.AddForm)
	tasks.POST("/add/", taskHandler.Add)
	tasks.POST("/clear-completed/", taskHandler.ClearCompleted)
	tasks.POST("/toggle/:task_id/", taskHandler.Toggle)
	tasks.GET("/edit/:task_id/", taskHandler.EditForm)
	tasks.POST("/edit/:task_id/", taskHandler.Edit)
	tasks.GET("/delete/:task_id/", taskHandler.DeleteForm)
	tasks.POST("/delete/:task_id/", taskHandler.Delete)

	// --- Static assets ---
	e.StaticFS("/static", web.StaticFS())

	// --- Operational endpoints ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/healthz", healthHandler.Liveness)
	e.GET("/healthz/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e, nil
}
