package http

import (
	"github.com/gin-gonic/gin"

	httpH "github.com/yungbote/coursehub-backend/internal/http/handlers"
	httpMW "github.com/yungbote/coursehub-backend/internal/http/middleware"
	"github.com/yungbote/coursehub-backend/internal/http/response"
	"github.com/yungbote/coursehub-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log            *logger.Logger
	AllowedOrigins []string
	// AssetsDir is served under /assets when files are stored locally.
	AssetsDir string

	AuthMiddleware *httpMW.AuthMiddleware
	// Tracing, when set, opens a span per request ahead of AttachTraceContext.
	Tracing gin.HandlerFunc

	AuthHandler        *httpH.AuthHandler
	UserHandler        *httpH.UserHandler
	CategoryHandler    *httpH.CategoryHandler
	CourseHandler      *httpH.CourseHandler
	LessonHandler      *httpH.LessonHandler
	CertificateHandler *httpH.CertificateHandler
	OrderHandler       *httpH.OrderHandler
	ProgressHandler    *httpH.ProgressHandler
	HealthHandler      *httpH.HealthHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.MaxMultipartMemory = httpH.MaxImageBytes
	r.Use(gin.CustomRecovery(response.Recovered))
	if cfg.Tracing != nil {
		r.Use(cfg.Tracing)
	}
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.CORS(cfg.AllowedOrigins))

	am := cfg.AuthMiddleware
	if am != nil {
		r.Use(am.Session())
	}
	auth := func() gin.HandlerFunc { return am.RequireAuth() }
	admin := func() gin.HandlerFunc { return am.RequireAdmin() }

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/", cfg.HealthHandler.Root)
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}
	if cfg.AssetsDir != "" {
		r.Static("/assets", cfg.AssetsDir)
	}

	api := r.Group("/api")

	// Auth
	if cfg.AuthHandler != nil {
		a := api.Group("/auth")
		a.GET("/status", cfg.AuthHandler.Status)
		a.POST("/login", cfg.AuthHandler.Login)
		a.POST("/signup", cfg.AuthHandler.Signup)
		a.POST("/logout", cfg.AuthHandler.Logout)
		a.POST("/forgot-password", cfg.AuthHandler.ForgotPassword)
		a.POST("/verify-otp", cfg.AuthHandler.VerifyOTP)
		a.POST("/reset-password", cfg.AuthHandler.ResetPassword)

		ad := api.Group("/admin")
		ad.POST("/login", cfg.AuthHandler.AdminLogin)
		ad.GET("/profile", cfg.AuthHandler.AdminProfile)
	}
	if cfg.OrderHandler != nil {
		api.POST("/auth/purchase-course", auth(), cfg.OrderHandler.Purchase)
	}

	// Users
	if cfg.UserHandler != nil {
		u := api.Group("/auth/users")
		u.GET("", admin(), cfg.UserHandler.List)
		u.GET("/:id", auth(), cfg.UserHandler.Get)
		u.PUT("/:id", auth(), cfg.UserHandler.Update)
		u.DELETE("/:id", admin(), cfg.UserHandler.Delete)
		u.GET("/:id/enrollments", auth(), cfg.UserHandler.Enrollments)
	}

	// Categories
	if cfg.CategoryHandler != nil {
		cat := api.Group("/categories")
		cat.GET("", cfg.CategoryHandler.List)
		cat.POST("", admin(), cfg.CategoryHandler.Create)
		cat.PUT("/:slug", admin(), cfg.CategoryHandler.Update)
		cat.DELETE("/:slug", admin(), cfg.CategoryHandler.Delete)
	}

	// Courses
	if cfg.CourseHandler != nil {
		co := api.Group("/courses")
		co.GET("", cfg.CourseHandler.List)
		co.GET("/search", cfg.CourseHandler.Search)
		co.GET("/enrolled", cfg.CourseHandler.Enrolled)
		co.GET("/enrollments", admin(), cfg.CourseHandler.ListEnrollments)
		co.POST("/enrollments", admin(), cfg.CourseHandler.Enroll)
		co.DELETE("/enrollments/:userId/:courseId", admin(), cfg.CourseHandler.Unenroll)
		co.GET("/:id", cfg.CourseHandler.Get)
		co.POST("", admin(), cfg.CourseHandler.Create)
		co.PUT("/:id", admin(), cfg.CourseHandler.Update)
		co.DELETE("/:id", admin(), cfg.CourseHandler.Delete)

		api.GET("/search", cfg.CourseHandler.Search)
	}

	// Lessons
	if cfg.LessonHandler != nil {
		l := api.Group("/lessons")
		l.GET("", cfg.LessonHandler.List)
		l.GET("/:id", cfg.LessonHandler.Get)
		l.POST("", admin(), cfg.LessonHandler.Create)
		l.PUT("/:id", admin(), cfg.LessonHandler.Update)
		l.DELETE("/:id", admin(), cfg.LessonHandler.Delete)
	}

	// Certificates
	if cfg.CertificateHandler != nil {
		ce := api.Group("/certificates")
		ce.GET("", cfg.CertificateHandler.List)
		ce.GET("/user", cfg.CertificateHandler.Mine)
		ce.GET("/:id", cfg.CertificateHandler.Get)
		ce.POST("", admin(), cfg.CertificateHandler.Create)
		ce.PUT("/:id", admin(), cfg.CertificateHandler.Update)
		ce.DELETE("/:id", admin(), cfg.CertificateHandler.Delete)
	}

	// Orders
	if cfg.OrderHandler != nil {
		o := api.Group("/orders")
		o.GET("", admin(), cfg.OrderHandler.List)
		o.GET("/mine", auth(), cfg.OrderHandler.Mine)
		o.POST("", auth(), cfg.OrderHandler.Create)
		o.POST("/confirm", auth(), cfg.OrderHandler.Confirm)
		o.DELETE("/:id", admin(), cfg.OrderHandler.Delete)
	}

	// Progress
	if cfg.ProgressHandler != nil {
		p := api.Group("/progress")
		p.POST("/complete", auth(), cfg.ProgressHandler.Complete)
		p.GET("/:courseId", cfg.ProgressHandler.CourseProgress)
	}

	r.NoRoute(response.NotFound)
	return r
}
