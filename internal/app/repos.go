package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/coursehub-backend/internal/data/repos"
	"github.com/yungbote/coursehub-backend/internal/platform/logger"
)

type Repos struct {
	User        repos.UserRepo
	Category    repos.CategoryRepo
	Course      repos.CourseRepo
	Lesson      repos.LessonRepo
	Enrollment  repos.EnrollmentRepo
	Progress    repos.LessonProgressRepo
	Certificate repos.CertificateRepo
	Order       repos.OrderRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		User:        repos.NewUserRepo(db, log),
		Category:    repos.NewCategoryRepo(db, log),
		Course:      repos.NewCourseRepo(db, log),
		Lesson:      repos.NewLessonRepo(db, log),
		Enrollment:  repos.NewEnrollmentRepo(db, log),
		Progress:    repos.NewLessonProgressRepo(db, log),
		Certificate: repos.NewCertificateRepo(db, log),
		Order:       repos.NewOrderRepo(db, log),
	}
}
