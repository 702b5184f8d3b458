package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/coursehub-backend/internal/data/repos"
	types "github.com/yungbote/coursehub-backend/internal/domain"
	"github.com/yungbote/coursehub-backend/internal/platform/apierr"
	"github.com/yungbote/coursehub-backend/internal/platform/logger"
	"github.com/yungbote/coursehub-backend/internal/platform/storage"
)

type CertificateInput struct {
	StudentID   string
	CourseTitle string
	DateIssued  string
}

type CertificateService interface {
	List(ctx context.Context) ([]*types.Certificate, error)
	ListByStudent(ctx context.Context, studentID uuid.UUID) ([]*types.Certificate, error)
	Get(ctx context.Context, certID uuid.UUID) (*types.Certificate, error)
	Create(ctx context.Context, in CertificateInput, image *Upload) (*types.Certificate, error)
	Update(ctx context.Context, certID uuid.UUID, in CertificateInput, image *Upload) error
	Delete(ctx context.Context, certID uuid.UUID) error
}

type certificateService struct {
	db       *gorm.DB
	log      *logger.Logger
	certRepo repos.CertificateRepo
	userRepo repos.UserRepo
	files    storage.FileStore
}

func NewCertificateService(
	db *gorm.DB,
	log *logger.Logger,
	certRepo repos.CertificateRepo,
	userRepo repos.UserRepo,
	files storage.FileStore,
) CertificateService {
	return &certificateService{
		db:       db,
		log:      log.With("service", "CertificateService"),
		certRepo: certRepo,
		userRepo: userRepo,
		files:    files,
	}
}

// ParseIssueDate accepts a calendar date or an RFC 3339 timestamp.
func ParseIssueDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t.UTC(), nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.UTC(), nil
	}
	return time.Time{}, apierr.Validation("invalid_date", "Invalid dateIssued")
}

type parsedCertificate struct {
	studentID  uuid.UUID
	title      string
	dateIssued time.Time
}

func (s *certificateService) parse(ctx context.Context, in CertificateInput, missingMsg string) (*parsedCertificate, error) {
	if strings.TrimSpace(in.StudentID) == "" || strings.TrimSpace(in.CourseTitle) == "" || strings.TrimSpace(in.DateIssued) == "" {
		return nil, apierr.Validation("missing_fields", missingMsg)
	}
	studentID, err := uuid.Parse(strings.TrimSpace(in.StudentID))
	if err != nil {
		return nil, apierr.Validation("invalid_student", "Invalid studentId")
	}
	issued, err := ParseIssueDate(in.DateIssued)
	if err != nil {
		return nil, err
	}
	users, err := s.userRepo.GetByIDs(ctx, nil, []uuid.UUID{studentID})
	if err != nil {
		return nil, repoError("db_error", "Failed to load student", err)
	}
	if len(users) == 0 {
		return nil, apierr.NotFound("user_not_found", "Student not found")
	}
	return &parsedCertificate{studentID: studentID, title: strings.TrimSpace(in.CourseTitle), dateIssued: issued}, nil
}

func (s *certificateService) List(ctx context.Context) ([]*types.Certificate, error) {
	rows, err := s.certRepo.ListWithStudentName(ctx, nil)
	if err != nil {
		return nil, repoError("db_error", "Failed to fetch certificates", err)
	}
	return rows, nil
}

func (s *certificateService) ListByStudent(ctx context.Context, studentID uuid.UUID) ([]*types.Certificate, error) {
	rows, err := s.certRepo.GetByStudentIDs(ctx, nil, []uuid.UUID{studentID})
	if err != nil {
		return nil, repoError("db_error", "Failed to fetch certificates", err)
	}
	return rows, nil
}

func (s *certificateService) Get(ctx context.Context, certID uuid.UUID) (*types.Certificate, error) {
	c, err := s.certRepo.GetWithStudentName(ctx, nil, certID)
	if err != nil {
		return nil, repoError("db_error", "Failed to fetch certificate", err)
	}
	if c == nil {
		return nil, apierr.NotFound("certificate_not_found", "Certificate not found")
	}
	return c, nil
}

func (s *certificateService) Create(ctx context.Context, in CertificateInput, image *Upload) (*types.Certificate, error) {
	const missing = "All fields are required including image and student"
	if image == nil {
		return nil, apierr.Validation("missing_fields", missing)
	}
	p, err := s.parse(ctx, in, missing)
	if err != nil {
		return nil, err
	}
	ref, err := saveUpload(ctx, s.files, storage.DirCertificates, image)
	if err != nil {
		return nil, err
	}
	c := &types.Certificate{
		ID:                uuid.New(),
		StudentID:         p.studentID,
		CourseTitle:       p.title,
		CourseCertificate: ref,
		DateIssued:        p.dateIssued,
	}
	if _, err := s.certRepo.Create(ctx, nil, []*types.Certificate{c}); err != nil {
		removeFiles(ctx, s.log, s.files, ref)
		return nil, repoError("db_error", "Failed to create certificate", err)
	}
	return c, nil
}

func (s *certificateService) Update(ctx context.Context, certID uuid.UUID, in CertificateInput, image *Upload) error {
	p, err := s.parse(ctx, in, "All fields are required")
	if err != nil {
		return err
	}
	existing, err := s.certRepo.GetByIDs(ctx, nil, []uuid.UUID{certID})
	if err != nil {
		return repoError("db_error", "Failed to update certificate", err)
	}
	if len(existing) == 0 {
		return apierr.NotFound("certificate_not_found", "Certificate not found")
	}
	old := existing[0]
	newRef, err := saveUpload(ctx, s.files, storage.DirCertificates, image)
	if err != nil {
		return err
	}
	ref := old.CourseCertificate
	if newRef != "" {
		ref = newRef
	}
	updates := map[string]any{
		"student_id":         p.studentID,
		"course_title":       p.title,
		"course_certificate": ref,
		"date_issued":        p.dateIssued,
	}
	if _, err := s.certRepo.UpdateFields(ctx, nil, certID, updates); err != nil {
		removeFiles(ctx, s.log, s.files, newRef)
		return repoError("db_error", "Failed to update certificate", err)
	}
	if newRef != "" && old.CourseCertificate != newRef {
		removeFiles(ctx, s.log, s.files, old.CourseCertificate)
	}
	return nil
}

func (s *certificateService) Delete(ctx context.Context, certID uuid.UUID) error {
	rows, err := s.certRepo.GetByIDs(ctx, nil, []uuid.UUID{certID})
	if err != nil {
		return repoError("db_error", "Failed to delete certificate", err)
	}
	if len(rows) == 0 {
		return apierr.NotFound("certificate_not_found", "Certificate not found")
	}
	if err := s.certRepo.DeleteByIDs(ctx, nil, []uuid.UUID{certID}); err != nil {
		return repoError("db_error", "Failed to delete certificate", err)
	}
	removeFiles(ctx, s.log, s.files, rows[0].CourseCertificate)
	return nil
}
