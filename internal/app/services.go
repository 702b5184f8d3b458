package app

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/yungbote/coursehub-backend/internal/platform/logger"
	"github.com/yungbote/coursehub-backend/internal/services"
)

type Services struct {
	Auth          services.AuthService
	PasswordReset services.PasswordResetService
	User          services.UserService
	Category      services.CategoryService
	Course        services.CourseService
	Lesson        services.LessonService
	Certificate   services.CertificateService
	Enrollment    services.EnrollmentService
	Progress      services.ProgressService
	Order         services.OrderService
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, repos Repos, clients Clients) (Services, error) {
	log.Info("Wiring services...")

	hasher := services.NewBcryptHasher(bcrypt.DefaultCost)

	auth, err := services.NewAuthService(db, log, repos.User, hasher, services.AuthConfig{
		JWTSecret:        cfg.JWTSecret,
		TokenTTL:         cfg.TokenTTL,
		AllowAdminSignup: cfg.AllowAdminSignup,
	})
	if err != nil {
		return Services{}, fmt.Errorf("init auth service: %w", err)
	}

	enrollment := services.NewEnrollmentService(db, log, repos.User, repos.Course, repos.Lesson, repos.Enrollment, repos.Progress)

	return Services{
		Auth: auth,
		PasswordReset: services.NewPasswordResetService(db, log, repos.User, hasher, clients.Mailer, clients.Attempts,
			services.PasswordResetConfig{OTPTTL: cfg.OTPTTL, MaxAttempts: cfg.OTPMaxAttempts}),
		User: services.NewUserService(db, log, repos.User, repos.Course, repos.Enrollment, repos.Progress,
			repos.Certificate, repos.Order, hasher, clients.Files),
		Category: services.NewCategoryService(db, log, repos.Category, repos.Course),
		Course: services.NewCourseService(db, log, repos.Course, repos.Category, repos.Lesson, repos.Enrollment,
			repos.Progress, repos.Order, clients.Files),
		Lesson:      services.NewLessonService(db, log, repos.Lesson, repos.Course, repos.Progress, clients.Files),
		Certificate: services.NewCertificateService(db, log, repos.Certificate, repos.User, clients.Files),
		Enrollment:  enrollment,
		Progress:    services.NewProgressService(db, log, repos.Lesson, repos.Enrollment, repos.Progress),
		Order:       services.NewOrderService(db, log, repos.Order, repos.Course, enrollment, clients.Gateway, clients.Mailer),
	}, nil
}
