package api

import (
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, logger *logrus.Entry, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.WithError(err).Error("failed to write response body")
	}
}

func writeError(w http.ResponseWriter, logger *logrus.Entry, status int, message string) {
	writeJSON(w, logger, status, errorResponse{Error: message})
}
