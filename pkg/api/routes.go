// Package api wires the directory's HTTP surface: the member listing, a
// health probe at the root, and prometheus metrics.
package api

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

// NewRouter assembles the HTTP routes around the members handler.
func NewRouter(handler *MembersHandler, logger *logrus.Logger) http.Handler {
	mux := http.NewServeMux()

	// handle the root to allow for a simple uptime probe
	mux.Handle("/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/members", handler)
	// unknown sub-paths under the members resource are a terminal error
	mux.Handle("/members/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, logrus.NewEntry(logger), http.StatusNotFound, "not found")
	}))

	return instrument(logger, mux)
}
