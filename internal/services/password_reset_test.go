package services

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/coursehub-backend/internal/platform/apierr"
)

func TestPasswordResetFlow(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	_, _, err := h.auth.Signup(ctx, SignupInput{Name: "R", Email: "r@x.com", Password: "old"})
	require.NoError(t, err)

	svc := h.reset.(*passwordResetService)
	svc.newOTP = func() (string, error) { return "123456", nil }

	assert.True(t, apierr.IsStatus(h.reset.RequestReset(ctx, "nobody@x.com"), http.StatusNotFound))
	require.NoError(t, h.reset.RequestReset(ctx, "R@x.com"))

	mail := h.mailer.last()
	assert.Equal(t, "otp", mail.Kind)
	assert.Equal(t, "r@x.com", mail.To)
	assert.Equal(t, "123456", mail.OTP)

	assert.True(t, apierr.IsStatus(h.reset.VerifyOTP(ctx, "r@x.com", "000000"), http.StatusBadRequest))
	require.NoError(t, h.reset.VerifyOTP(ctx, "r@x.com", "123456"))
	require.NoError(t, h.reset.ResetPassword(ctx, "r@x.com", "123456", "new"))

	_, _, err = h.auth.Login(ctx, "r@x.com", "old")
	assert.Error(t, err)
	_, _, err = h.auth.Login(ctx, "r@x.com", "new")
	require.NoError(t, err)

	// the code is single use
	assert.True(t, apierr.IsStatus(h.reset.VerifyOTP(ctx, "r@x.com", "123456"), http.StatusBadRequest))
}

func TestPasswordResetExpiredOTP(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	_, _, err := h.auth.Signup(ctx, SignupInput{Name: "E", Email: "e@x.com", Password: "p"})
	require.NoError(t, err)

	svc := h.reset.(*passwordResetService)
	now := time.Now()
	svc.now = func() time.Time { return now }
	svc.newOTP = func() (string, error) { return "654321", nil }
	require.NoError(t, h.reset.RequestReset(ctx, "e@x.com"))

	svc.now = func() time.Time { return now.Add(DefaultOTPTTL + time.Second) }
	assert.True(t, apierr.IsStatus(h.reset.VerifyOTP(ctx, "e@x.com", "654321"), http.StatusBadRequest))
}

func TestPasswordResetAttemptLimit(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	_, _, err := h.auth.Signup(ctx, SignupInput{Name: "L", Email: "l@x.com", Password: "p"})
	require.NoError(t, err)

	svc := h.reset.(*passwordResetService)
	svc.newOTP = func() (string, error) { return "111111", nil }
	require.NoError(t, h.reset.RequestReset(ctx, "l@x.com"))

	for i := 0; i < DefaultOTPMaxAttempts; i++ {
		err := h.reset.VerifyOTP(ctx, "l@x.com", "999999")
		require.True(t, apierr.IsStatus(err, http.StatusBadRequest), "attempt %d: %v", i+1, err)
	}
	err = h.reset.VerifyOTP(ctx, "l@x.com", "111111")
	assert.True(t, apierr.IsStatus(err, http.StatusTooManyRequests), "got %v", err)

	// a new code restores the budget
	require.NoError(t, h.reset.RequestReset(ctx, "l@x.com"))
	require.NoError(t, h.reset.VerifyOTP(ctx, "l@x.com", "111111"))
}

func TestRequestResetReportsMailFailure(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	_, _, err := h.auth.Signup(ctx, SignupInput{Name: "M", Email: "m@x.com", Password: "p"})
	require.NoError(t, err)

	h.mailer.err = assert.AnError
	err = h.reset.RequestReset(ctx, "m@x.com")
	require.Error(t, err)
	assert.Equal(t, http.StatusInternalServerError, apierr.StatusOf(err))
	assert.Equal(t, "Error sending email.", err.Error())
}
