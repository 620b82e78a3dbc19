package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis errors by operation type.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "likewire_redis_errors_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// EmailVerifications counts external email verification calls by outcome.
	// Outcomes: valid, invalid, timeout, error.
	EmailVerifications = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "likewire_email_verifications_total",
		Help: "Total number of email verification calls by outcome",
	}, []string{"outcome"})

	// LikeToggles counts like toggle operations by direction.
	LikeToggles = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "likewire_like_toggles_total",
		Help: "Total number of like toggles by action (like or unlike)",
	}, []string{"action"})

	// Registrations counts registration attempts by result.
	Registrations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "likewire_registrations_total",
		Help: "Total number of registration attempts by result",
	}, []string{"result"})
)
