// Package metrics defines the auth server's Prometheus collectors.
package metrics

import (
	"net/http"

	"github.com/dmitrijs2005/foodorder/internal/common"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome labels shared by the auth counters.
const (
	ResultSuccess   = "success"
	ResultFailure   = "failure"
	ResultThrottled = "throttled"
	ResultError     = "error"
)

// RoleOther labels logins whose requested role is not a known role.
const RoleOther = "other"

// RoleLabel maps a client-supplied role to a bounded label value.
func RoleLabel(role string) string {
	switch role {
	case common.RoleAdmin, common.RoleKitchen, common.RoleRider:
		return role
	}
	return RoleOther
}

var (
	LoginsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "foodorder_auth_logins_total",
			Help: "Login attempts by role and result",
		},
		[]string{"role", "result"},
	)

	VerificationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "foodorder_auth_verifications_total",
			Help: "Token verifications by result",
		},
		[]string{"result"},
	)

	SessionsRevokedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "foodorder_auth_sessions_revoked_total",
			Help: "Session rows deleted by reason",
		},
		[]string{"reason"},
	)

	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "foodorder_http_requests_total",
			Help: "HTTP requests by method, route and status",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "foodorder_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
)

func init() {
	prometheus.MustRegister(LoginsTotal)
	prometheus.MustRegister(VerificationsTotal)
	prometheus.MustRegister(SessionsRevokedTotal)
	prometheus.MustRegister(HTTPRequestsTotal)
	prometheus.MustRegister(HTTPRequestDuration)
}

// Handler returns the Prometheus HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}
