package repos

import (
	"gorm.io/gorm"

	"github.com/yungbote/coursehub-backend/internal/data/repos/billing"
	"github.com/yungbote/coursehub-backend/internal/data/repos/catalog"
	"github.com/yungbote/coursehub-backend/internal/data/repos/certificate"
	"github.com/yungbote/coursehub-backend/internal/data/repos/enrollment"
	"github.com/yungbote/coursehub-backend/internal/data/repos/user"
	"github.com/yungbote/coursehub-backend/internal/platform/logger"
)

type UserRepo = user.UserRepo

type CategoryRepo = catalog.CategoryRepo
type CourseRepo = catalog.CourseRepo
type LessonRepo = catalog.LessonRepo

type EnrollmentRepo = enrollment.EnrollmentRepo
type LessonProgressRepo = enrollment.LessonProgressRepo

type CertificateRepo = certificate.CertificateRepo

type OrderRepo = billing.OrderRepo

func NewUserRepo(db *gorm.DB, baseLog *logger.Logger) UserRepo {
	return user.NewUserRepo(db, baseLog)
}

func NewCategoryRepo(db *gorm.DB, baseLog *logger.Logger) CategoryRepo {
	return catalog.NewCategoryRepo(db, baseLog)
}

func NewCourseRepo(db *gorm.DB, baseLog *logger.Logger) CourseRepo {
	return catalog.NewCourseRepo(db, baseLog)
}

func NewLessonRepo(db *gorm.DB, baseLog *logger.Logger) LessonRepo {
	return catalog.NewLessonRepo(db, baseLog)
}

func NewEnrollmentRepo(db *gorm.DB, baseLog *logger.Logger) EnrollmentRepo {
	return enrollment.NewEnrollmentRepo(db, baseLog)
}

func NewLessonProgressRepo(db *gorm.DB, baseLog *logger.Logger) LessonProgressRepo {
	return enrollment.NewLessonProgressRepo(db, baseLog)
}

func NewCertificateRepo(db *gorm.DB, baseLog *logger.Logger) CertificateRepo {
	return certificate.NewCertificateRepo(db, baseLog)
}

func NewOrderRepo(db *gorm.DB, baseLog *logger.Logger) OrderRepo {
	return billing.NewOrderRepo(db, baseLog)
}
