package app

import (
	httpserver "github.com/yungbote/coursehub-backend/internal/http"
	httpH "github.com/yungbote/coursehub-backend/internal/http/handlers"
	httpMW "github.com/yungbote/coursehub-backend/internal/http/middleware"
	"github.com/yungbote/coursehub-backend/internal/observability"
	"github.com/yungbote/coursehub-backend/internal/platform/logger"
)

type Middleware struct {
	Auth *httpMW.AuthMiddleware
}

type Handlers struct {
	Health      *httpH.HealthHandler
	Auth        *httpH.AuthHandler
	User        *httpH.UserHandler
	Category    *httpH.CategoryHandler
	Course      *httpH.CourseHandler
	Lesson      *httpH.LessonHandler
	Certificate *httpH.CertificateHandler
	Order       *httpH.OrderHandler
	Progress    *httpH.ProgressHandler
}

func wireMiddleware(log *logger.Logger, services Services) Middleware {
	log.Info("Wiring middleware...")
	return Middleware{
		Auth: httpMW.NewAuthMiddleware(log, services.Auth),
	}
}

func wireHandlers(log *logger.Logger, cfg Config, services Services) Handlers {
	log.Info("Wiring handlers...")
	cookie := httpH.CookieConfig{Secure: cfg.CookieSecure, TTL: services.Auth.TokenTTL()}
	return Handlers{
		Health:      httpH.NewHealthHandler(),
		Auth:        httpH.NewAuthHandler(log, services.Auth, services.PasswordReset, cookie),
		User:        httpH.NewUserHandler(log, services.User),
		Category:    httpH.NewCategoryHandler(log, services.Category),
		Course:      httpH.NewCourseHandler(log, services.Course, services.Enrollment),
		Lesson:      httpH.NewLessonHandler(log, services.Lesson),
		Certificate: httpH.NewCertificateHandler(log, services.Certificate),
		Order:       httpH.NewOrderHandler(log, services.Order),
		Progress:    httpH.NewProgressHandler(log, services.Progress),
	}
}

func wireServer(log *logger.Logger, cfg Config, handlers Handlers, middleware Middleware) *httpserver.Server {
	log.Info("Wiring router...")
	assets := ""
	if cfg.StorageMode == "" || cfg.StorageMode == StorageLocal {
		assets = cfg.AssetsDir
	}
	rc := httpserver.RouterConfig{
		Log:                log,
		AllowedOrigins:     cfg.AllowedOrigins,
		AssetsDir:          assets,
		AuthMiddleware:     middleware.Auth,
		AuthHandler:        handlers.Auth,
		UserHandler:        handlers.User,
		CategoryHandler:    handlers.Category,
		CourseHandler:      handlers.Course,
		LessonHandler:      handlers.Lesson,
		CertificateHandler: handlers.Certificate,
		OrderHandler:       handlers.Order,
		ProgressHandler:    handlers.Progress,
		HealthHandler:      handlers.Health,
	}
	if cfg.Otel.Enabled {
		rc.Tracing = observability.GinMiddleware(cfg.Otel)
	}
	return httpserver.NewServer(rc)
}
