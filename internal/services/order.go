package services

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/coursehub-backend/internal/data/repos"
	types "github.com/yungbote/coursehub-backend/internal/domain"
	"github.com/yungbote/coursehub-backend/internal/platform/apierr"
	"github.com/yungbote/coursehub-backend/internal/platform/ctxutil"
	"github.com/yungbote/coursehub-backend/internal/platform/logger"
)

const MsgPaymentSuccess = "Payment successful & enrolled successfully"

var errInvalidSignature = apierr.Validation("invalid_signature", "Invalid payment signature")

type CreateOrderInput struct {
	// Amount is in major currency units, as shown to the buyer.
	Amount   float64
	CourseID uuid.UUID
}

type CreateOrderResult struct {
	Order   *types.Order
	Gateway *GatewayOrder
	KeyID   string
}

type ConfirmOrderInput struct {
	RazorpayOrderID   string `json:"razorpay_order_id"`
	RazorpayPaymentID string `json:"razorpay_payment_id"`
	RazorpaySignature string `json:"razorpay_signature"`
}

type ConfirmOrderResult struct {
	Order      *types.Order
	Enrollment *EnrollResult
	// Replayed is set when the order was already paid before this call.
	Replayed bool
}

type OrderService interface {
	CreateOrder(ctx context.Context, payer *ctxutil.Session, in CreateOrderInput) (*CreateOrderResult, error)
	ConfirmOrder(ctx context.Context, payer *ctxutil.Session, in ConfirmOrderInput) (*ConfirmOrderResult, error)
	List(ctx context.Context) ([]*types.Order, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*types.Order, error)
	Delete(ctx context.Context, orderID uuid.UUID) error
}

type orderService struct {
	db          *gorm.DB
	log         *logger.Logger
	orderRepo   repos.OrderRepo
	courseRepo  repos.CourseRepo
	enrollments EnrollmentService
	gateway     PaymentGateway
	mailer      Mailer
	now         func() time.Time
}

func NewOrderService(
	db *gorm.DB,
	log *logger.Logger,
	orderRepo repos.OrderRepo,
	courseRepo repos.CourseRepo,
	enrollments EnrollmentService,
	gateway PaymentGateway,
	mailer Mailer,
) OrderService {
	return &orderService{
		db:          db,
		log:         log.With("service", "OrderService"),
		orderRepo:   orderRepo,
		courseRepo:  courseRepo,
		enrollments: enrollments,
		gateway:     gateway,
		mailer:      mailer,
		now:         time.Now,
	}
}

// toMinorUnits converts a rupee amount to paise.
func toMinorUnits(amount float64) (int64, bool) {
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount <= 0 {
		return 0, false
	}
	minor := math.Round(amount * 100)
	if minor < 1 || minor > math.MaxInt64/2 {
		return 0, false
	}
	return int64(minor), true
}

func (s *orderService) CreateOrder(ctx context.Context, payer *ctxutil.Session, in CreateOrderInput) (*CreateOrderResult, error) {
	if payer == nil {
		return nil, apierr.Unauthorized("unauthorized", "Unauthorized. Please log in.")
	}
	if in.CourseID == uuid.Nil {
		return nil, apierr.Validation("missing_fields", "Course is required")
	}
	amount, ok := toMinorUnits(in.Amount)
	if !ok {
		return nil, apierr.Validation("invalid_amount", "Amount must be a positive number")
	}

	courses, err := s.courseRepo.GetByIDs(ctx, nil, []uuid.UUID{in.CourseID})
	if err != nil {
		return nil, repoError("db_error", "Failed to save order", err)
	}
	if len(courses) == 0 {
		return nil, apierr.NotFound("course_not_found", "Course not found")
	}

	receipt := fmt.Sprintf("receipt_%d", s.now().UnixMilli())
	remote, err := s.gateway.CreateOrder(ctx, amount, types.CurrencyINR, receipt, map[string]string{
		"user_id":   payer.UserID.String(),
		"course_id": in.CourseID.String(),
	})
	if err != nil {
		s.log.Error("Gateway order creation failed", "user_id", payer.UserID, "course_id", in.CourseID, "error", err)
		return nil, apierr.Dependency("gateway_error", "Failed to create payment order", err)
	}
	if remote.Receipt == "" {
		remote.Receipt = receipt
	}

	order := &types.Order{
		UserID:          payer.UserID,
		CourseID:        in.CourseID,
		RazorpayOrderID: remote.ID,
		Amount:          amount,
		Currency:        types.CurrencyINR,
		Receipt:         remote.Receipt,
		Status:          types.OrderPending,
	}
	if _, err := s.orderRepo.Create(ctx, nil, []*types.Order{order}); err != nil {
		s.log.Error("Error saving order", "razorpay_order_id", remote.ID, "error", err)
		return nil, apierr.Dependency("db_error", "Failed to save order", err)
	}

	s.log.Info("Order created", "order_id", order.ID, "razorpay_order_id", remote.ID, "amount", amount)
	return &CreateOrderResult{Order: order, Gateway: remote, KeyID: s.gateway.KeyID()}, nil
}

func (s *orderService) ConfirmOrder(ctx context.Context, payer *ctxutil.Session, in ConfirmOrderInput) (*ConfirmOrderResult, error) {
	if payer == nil {
		return nil, apierr.Unauthorized("unauthorized", "Unauthorized. Please log in.")
	}
	in.RazorpayOrderID = strings.TrimSpace(in.RazorpayOrderID)
	in.RazorpayPaymentID = strings.TrimSpace(in.RazorpayPaymentID)
	if in.RazorpayOrderID == "" || in.RazorpayPaymentID == "" || in.RazorpaySignature == "" {
		return nil, apierr.Validation("missing_fields", "Payment confirmation fields are required")
	}

	if !s.gateway.VerifySignature(in.RazorpayOrderID, in.RazorpayPaymentID, in.RazorpaySignature) {
		s.log.Warn("Payment signature mismatch", "user_id", payer.UserID, "razorpay_order_id", in.RazorpayOrderID)
		s.notifyFailure(ctx, payer, s.attemptedAmount(ctx, payer, in.RazorpayOrderID), PaymentRejected)
		return nil, errInvalidSignature
	}

	out := &ConfirmOrderResult{}
	var course *types.Course
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		order, err := s.orderRepo.GetByRazorpayOrderID(ctx, tx, in.RazorpayOrderID)
		if err != nil {
			return err
		}
		if order == nil || order.UserID != payer.UserID {
			return apierr.NotFound("order_not_found", "Order not found")
		}

		switch order.Status {
		case types.OrderPaid:
			out.Replayed = true
		case types.OrderPending:
			ok, err := s.orderRepo.MarkPaid(ctx, tx, order.ID, in.RazorpayPaymentID, in.RazorpaySignature)
			if err != nil {
				return err
			}
			if ok {
				order.Status = types.OrderPaid
				order.PaymentID = in.RazorpayPaymentID
				break
			}
			// A concurrent confirmation won the update; re-read to see where it left the order.
			current, err := s.orderRepo.GetByIDs(ctx, tx, []uuid.UUID{order.ID})
			if err != nil {
				return err
			}
			if len(current) == 0 {
				return apierr.NotFound("order_not_found", "Order not found")
			}
			if current[0].Status != types.OrderPaid {
				return apierr.Conflict("order_not_payable", "Order cannot be paid")
			}
			order = current[0]
			out.Replayed = true
		default:
			return apierr.Conflict("order_not_payable", "Order cannot be paid")
		}
		out.Order = order

		courses, err := s.courseRepo.GetByIDs(ctx, tx, []uuid.UUID{order.CourseID})
		if err != nil {
			return err
		}
		if len(courses) > 0 {
			course = courses[0]
		}

		res, err := s.enrollments.Enroll(ctx, tx, order.UserID, order.CourseID)
		if err != nil {
			return err
		}
		out.Enrollment = res
		return nil
	})
	if err != nil {
		if apierr.StatusOf(err) < http.StatusInternalServerError {
			return nil, err
		}
		s.log.Error("Payment processing failed", "user_id", payer.UserID, "razorpay_order_id", in.RazorpayOrderID, "error", err)
		s.notifyFailure(ctx, payer, s.attemptedAmount(ctx, payer, in.RazorpayOrderID), PaymentServerError)
		return nil, apierr.Dependency("payment_error", "Server error", err)
	}

	if !out.Replayed {
		title := ""
		if course != nil {
			title = course.Title
		}
		if err := s.mailer.SendPaymentSuccess(ctx, payer.Email, payer.Name, float64(out.Order.Amount)/100, title); err != nil {
			s.log.Warn("Failed to send payment success email", "user_id", payer.UserID, "error", err)
		}
	}
	s.log.Info("Order confirmed", "order_id", out.Order.ID, "replayed", out.Replayed)
	return out, nil
}

// attemptedAmount reads the amount of the caller's order for the failure email,
// 0 when it cannot be determined.
func (s *orderService) attemptedAmount(ctx context.Context, payer *ctxutil.Session, razorpayOrderID string) float64 {
	order, err := s.orderRepo.GetByRazorpayOrderID(ctx, nil, razorpayOrderID)
	if err != nil || order == nil || order.UserID != payer.UserID {
		return 0
	}
	return float64(order.Amount) / 100
}

func (s *orderService) notifyFailure(ctx context.Context, payer *ctxutil.Session, amount float64, reason PaymentFailure) {
	if payer.Email == "" {
		return
	}
	if err := s.mailer.SendPaymentFailed(ctx, payer.Email, payer.Name, amount, reason); err != nil {
		s.log.Warn("Failed to send payment failure email", "user_id", payer.UserID, "error", err)
	}
}

func (s *orderService) List(ctx context.Context) ([]*types.Order, error) {
	rows, err := s.orderRepo.List(ctx, nil)
	if err != nil {
		return nil, repoError("db_error", "Database error", err)
	}
	return rows, nil
}

func (s *orderService) ListByUser(ctx context.Context, userID uuid.UUID) ([]*types.Order, error) {
	rows, err := s.orderRepo.GetByUserIDs(ctx, nil, []uuid.UUID{userID})
	if err != nil {
		return nil, repoError("db_error", "Database error", err)
	}
	return rows, nil
}

func (s *orderService) Delete(ctx context.Context, orderID uuid.UUID) error {
	rows, err := s.orderRepo.GetByIDs(ctx, nil, []uuid.UUID{orderID})
	if err != nil {
		return repoError("db_error", "Delete failed", err)
	}
	if len(rows) == 0 {
		return apierr.NotFound("order_not_found", "Order not found")
	}
	if err := s.orderRepo.DeleteByIDs(ctx, nil, []uuid.UUID{orderID}); err != nil {
		return repoError("db_error", "Delete failed", err)
	}
	return nil
}
