package handlers

import (
	"net/http"
)

// HealthStatus is the liveness payload.
type HealthStatus struct {
	Status string `json:"status"`
}

// Healthy is the only status the process reports while it is serving.
var Healthy = HealthStatus{Status: "healthy"}

// healthBody is Healthy in its wire form. It is written verbatim so the body is stable byte for byte.
var healthBody = []byte(`{"status": "healthy"}`)

// Health responds with the constant liveness payload. It never consults the route table.
func Health(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(healthBody)
}
