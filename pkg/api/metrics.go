package api

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name: "org_directory_http_request_duration_seconds",
		Help: "Duration of HTTP requests served by the directory.",
	}, []string{"path", "method", "status"})

	snapshotRefreshes = promauto.NewCounter(prometheus.CounterOpts{
		Name: "org_directory_snapshot_refreshes_total",
		Help: "Number of membership snapshot aggregations triggered by cache misses.",
	})
)
