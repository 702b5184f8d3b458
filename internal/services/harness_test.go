package services

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/yungbote/coursehub-backend/internal/data/repos"
	"github.com/yungbote/coursehub-backend/internal/data/repos/testutil"
	types "github.com/yungbote/coursehub-backend/internal/domain"
	"github.com/yungbote/coursehub-backend/internal/platform/ratelimit"
	"github.com/yungbote/coursehub-backend/internal/platform/razorpay"
	"github.com/yungbote/coursehub-backend/internal/platform/storage"
)

const testGatewaySecret = "rzp_test_secret"

type sentMail struct {
	Kind   string
	To     string
	OTP    string
	Amount float64
	Reason PaymentFailure
	Course string
}

type fakeMailer struct {
	mu   sync.Mutex
	sent []sentMail
	err  error
}

func (m *fakeMailer) record(s sentMail) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, s)
	return m.err
}

func (m *fakeMailer) SendOTP(ctx context.Context, to, otp string) error {
	return m.record(sentMail{Kind: "otp", To: to, OTP: otp})
}

func (m *fakeMailer) SendPaymentFailed(ctx context.Context, to, name string, amount float64, reason PaymentFailure) error {
	return m.record(sentMail{Kind: "failed", To: to, Amount: amount, Reason: reason})
}

func (m *fakeMailer) SendPaymentSuccess(ctx context.Context, to, name string, amount float64, courseTitle string) error {
	return m.record(sentMail{Kind: "success", To: to, Amount: amount, Course: courseTitle})
}

func (m *fakeMailer) kinds() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, 0, len(m.sent))
	for _, s := range m.sent {
		out = append(out, s.Kind)
	}
	return out
}

func (m *fakeMailer) last() sentMail {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.sent) == 0 {
		return sentMail{}
	}
	return m.sent[len(m.sent)-1]
}

type stubGateway struct {
	mu     sync.Mutex
	orders []*GatewayOrder
}

func (g *stubGateway) CreateOrder(ctx context.Context, amount int64, currency, receipt string, notes map[string]string) (*GatewayOrder, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	o := &GatewayOrder{
		ID:       "order_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:14],
		Amount:   amount,
		Currency: currency,
		Receipt:  receipt,
		Status:   "created",
	}
	g.orders = append(g.orders, o)
	return o, nil
}

func (g *stubGateway) VerifySignature(orderID, paymentID, signature string) bool {
	return razorpay.VerifySignature(testGatewaySecret, orderID, paymentID, signature)
}

func (g *stubGateway) KeyID() string { return "rzp_test_key" }

type harness struct {
	db     *gorm.DB
	root   string
	files  *storage.LocalStore
	mailer *fakeMailer

	users       repos.UserRepo
	categories  repos.CategoryRepo
	courses     repos.CourseRepo
	lessons     repos.LessonRepo
	enrollments repos.EnrollmentRepo
	progress    repos.LessonProgressRepo
	certs       repos.CertificateRepo
	orders      repos.OrderRepo

	auth        AuthService
	reset       PasswordResetService
	enrollSvc   EnrollmentService
	progressSvc ProgressService
	orderSvc    OrderService
	categorySvc CategoryService
	courseSvc   CourseService
	lessonSvc   LessonService
	certSvc     CertificateService
	userSvc     UserService
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	db := testutil.SQLite(t)
	log := testutil.Logger(t)
	root := t.TempDir()
	files, err := storage.NewLocalStore(log, root, "/assets")
	require.NoError(t, err)

	h := &harness{
		db:          db,
		root:        root,
		files:       files,
		mailer:      &fakeMailer{},
		users:       repos.NewUserRepo(db, log),
		categories:  repos.NewCategoryRepo(db, log),
		courses:     repos.NewCourseRepo(db, log),
		lessons:     repos.NewLessonRepo(db, log),
		enrollments: repos.NewEnrollmentRepo(db, log),
		progress:    repos.NewLessonProgressRepo(db, log),
		certs:       repos.NewCertificateRepo(db, log),
		orders:      repos.NewOrderRepo(db, log),
	}
	hasher := NewBcryptHasher(bcrypt.MinCost)

	h.auth, err = NewAuthService(db, log, h.users, hasher, AuthConfig{JWTSecret: "test-secret"})
	require.NoError(t, err)
	h.reset = NewPasswordResetService(db, log, h.users, hasher, h.mailer, ratelimit.NewMemoryCounter(), PasswordResetConfig{})
	h.enrollSvc = NewEnrollmentService(db, log, h.users, h.courses, h.lessons, h.enrollments, h.progress)
	h.progressSvc = NewProgressService(db, log, h.lessons, h.enrollments, h.progress)
	h.orderSvc = NewOrderService(db, log, h.orders, h.courses, h.enrollSvc, &stubGateway{}, h.mailer)
	h.categorySvc = NewCategoryService(db, log, h.categories, h.courses)
	h.courseSvc = NewCourseService(db, log, h.courses, h.categories, h.lessons, h.enrollments, h.progress, h.orders, files)
	h.lessonSvc = NewLessonService(db, log, h.lessons, h.courses, h.progress, files)
	h.certSvc = NewCertificateService(db, log, h.certs, h.users, files)
	h.userSvc = NewUserService(db, log, h.users, h.courses, h.enrollments, h.progress, h.certs, h.orders, hasher, files)
	return h
}

// localPath resolves a stored reference to its file under the harness root.
func (h *harness) localPath(ref string) string {
	return filepath.Join(h.root, filepath.FromSlash(strings.TrimPrefix(ref, "/assets/")))
}

func (h *harness) fileExists(ref string) bool {
	_, err := os.Stat(h.localPath(ref))
	return err == nil
}

func (h *harness) progressRows(t *testing.T, enrollmentID uuid.UUID) []*types.LessonProgress {
	t.Helper()
	var rows []*types.LessonProgress
	require.NoError(t, h.db.Where("enrollment_id = ?", enrollmentID).Find(&rows).Error)
	return rows
}

func upload(name, body string) *Upload {
	return &Upload{Name: name, Body: strings.NewReader(body)}
}
