package services

import (
	"context"
	"fmt"
	"html"
	"strings"

	"github.com/yungbote/coursehub-backend/internal/platform/logger"
	"github.com/yungbote/coursehub-backend/internal/platform/sendgrid"
)

const (
	SubjectOTP            = "Your OTP for Password Reset"
	SubjectPaymentFailed  = "Payment Failed"
	SubjectPaymentSuccess = "Payment Successful & Enrollment Confirmed"
)

// PaymentFailure says why a payment notification is a failure.
type PaymentFailure int

const (
	PaymentRejected PaymentFailure = iota
	PaymentServerError
)

type Mailer interface {
	SendOTP(ctx context.Context, to, otp string) error
	SendPaymentFailed(ctx context.Context, to, name string, amount float64, reason PaymentFailure) error
	SendPaymentSuccess(ctx context.Context, to, name string, amount float64, courseTitle string) error
}

type sendgridMailer struct {
	log    *logger.Logger
	client sendgrid.Client
}

func NewSendGridMailer(log *logger.Logger, client sendgrid.Client) Mailer {
	return &sendgridMailer{log: log.With("service", "Mailer"), client: client}
}

func (m *sendgridMailer) send(ctx context.Context, to, subject, body string, category string) error {
	res, err := m.client.Send(ctx, sendgrid.SendEmailRequest{
		To:         []sendgrid.EmailAddress{{Email: to}},
		Subject:    subject,
		HTML:       body,
		Categories: []string{category},
	})
	if err != nil {
		return err
	}
	m.log.Debug("Email sent", "subject", subject, "status", res.StatusCode, "message_id", res.MessageID)
	return nil
}

func (m *sendgridMailer) SendOTP(ctx context.Context, to, otp string) error {
	return m.send(ctx, to, SubjectOTP, otpHTML(otp), "password_reset")
}

func (m *sendgridMailer) SendPaymentFailed(ctx context.Context, to, name string, amount float64, reason PaymentFailure) error {
	return m.send(ctx, to, SubjectPaymentFailed, paymentFailedHTML(name, amount, reason), "payment")
}

func (m *sendgridMailer) SendPaymentSuccess(ctx context.Context, to, name string, amount float64, courseTitle string) error {
	return m.send(ctx, to, SubjectPaymentSuccess, paymentSuccessHTML(name, amount, courseTitle), "payment")
}

// loggingMailer stands in when no mail provider is configured.
type loggingMailer struct {
	log *logger.Logger
}

func NewLoggingMailer(log *logger.Logger) Mailer {
	return &loggingMailer{log: log.With("service", "LoggingMailer")}
}

func (m *loggingMailer) SendOTP(ctx context.Context, to, otp string) error {
	m.log.Info("Email not sent (mailer disabled)", "subject", SubjectOTP, "email", to, "otp", otp)
	return nil
}

func (m *loggingMailer) SendPaymentFailed(ctx context.Context, to, name string, amount float64, reason PaymentFailure) error {
	m.log.Info("Email not sent (mailer disabled)", "subject", SubjectPaymentFailed, "email", to, "amount", amount)
	return nil
}

func (m *loggingMailer) SendPaymentSuccess(ctx context.Context, to, name string, amount float64, courseTitle string) error {
	m.log.Info("Email not sent (mailer disabled)", "subject", SubjectPaymentSuccess, "email", to, "course", courseTitle)
	return nil
}

func otpHTML(otp string) string {
	return fmt.Sprintf("<p>Your OTP is <strong>%s</strong>. It is valid for 10 minutes.</p>", html.EscapeString(otp))
}

func formatRupees(amount float64) string {
	s := fmt.Sprintf("%.2f", amount)
	return "₹" + strings.TrimSuffix(s, ".00")
}

func paymentFailedHTML(name string, amount float64, reason PaymentFailure) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<p>Hello %s,</p>", html.EscapeString(name))
	if reason == PaymentServerError {
		fmt.Fprintf(&b, "<p>Your payment of %s could not be completed due to a server error.</p>", formatRupees(amount))
		b.WriteString("<p>Please try again later.</p>")
	} else {
		fmt.Fprintf(&b, "<p>Your payment of %s for the course could not be processed successfully.</p>", formatRupees(amount))
		b.WriteString("<p>Please try again.</p>")
	}
	return b.String()
}

func paymentSuccessHTML(name string, amount float64, courseTitle string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<p>Hello %s,</p>", html.EscapeString(name))
	fmt.Fprintf(&b, "<p>Your payment of %s was successful.</p>", formatRupees(amount))
	fmt.Fprintf(&b, "<p>You have been successfully enrolled in the course (%s).</p>", html.EscapeString(courseTitle))
	b.WriteString("<p>Happy Learning!</p>")
	return b.String()
}
