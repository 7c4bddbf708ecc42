package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis errors by command name.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "chronicle_redis_errors_total",
		Help: "Total number of Redis errors by command",
	}, []string{"command"})

	// IdentityVerifications counts identity provider verifications by outcome
	// (hit, verified, rejected, upstream_error).
	IdentityVerifications = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "chronicle_identity_verifications_total",
		Help: "Total identity verifications by outcome",
	}, []string{"outcome"})

	// ImageUploads counts blob host uploads by outcome.
	ImageUploads = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "chronicle_image_uploads_total",
		Help: "Total image uploads by outcome",
	}, []string{"outcome"})

	// EngagementToggles counts like toggles by resource and direction.
	EngagementToggles = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "chronicle_engagement_toggles_total",
		Help: "Total engagement toggles by resource and direction",
	}, []string{"resource", "direction"})

	// WebSocketConnectionsTotal is the gauge of active WebSocket connections.
	WebSocketConnectionsTotal = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "chronicle_websocket_connections_total",
		Help: "Total number of active WebSocket connections",
	})

	// WebSocketBackpressureDrops counts messages dropped due to backpressure by hub and reason.
	WebSocketBackpressureDrops = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "chronicle_websocket_backpressure_drops_total",
		Help: "Total number of WebSocket messages dropped due to backpressure",
	}, []string{"hub", "reason"})
)
