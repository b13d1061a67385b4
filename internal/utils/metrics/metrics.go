package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// LoginAttemptsTotal counts login attempts by outcome.
	LoginAttemptsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "backoffice_login_attempts_total",
		Help: "The total number of login attempts",
	}, []string{"status"})

	// OTPIssuedTotal counts issued one-time passcodes by role.
	OTPIssuedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "backoffice_otp_issued_total",
		Help: "The total number of one-time passcodes issued",
	}, []string{"role"})

	// OTPVerificationsTotal counts OTP verification attempts by outcome.
	OTPVerificationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "backoffice_otp_verifications_total",
		Help: "The total number of OTP verification attempts",
	}, []string{"status"})

	// RegistrationAttemptsTotal counts registrations by role and outcome.
	RegistrationAttemptsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "backoffice_registration_attempts_total",
		Help: "The total number of registration attempts",
	}, []string{"role", "status"})

	// InviteRegistrationsTotal counts invite rows accepted or rejected.
	InviteRegistrationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "backoffice_invite_registrations_total",
		Help: "The total number of invite rows processed",
	}, []string{"status"})

	// PasswordResetRequestsTotal counts reset issuance and completion.
	PasswordResetRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "backoffice_password_reset_requests_total",
		Help: "The total number of password reset operations",
	}, []string{"stage", "status"})

	// PricingRequestDuration observes proxy round trips to the pricing
	// service.
	PricingRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "backoffice_pricing_request_duration_seconds",
		Help:    "Duration of requests forwarded to the pricing service",
		Buckets: prometheus.DefBuckets,
	}, []string{"path", "status"})
)
