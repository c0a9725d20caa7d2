package httpx

import (
	"context"
	"encoding/json"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"evalpoint.ai/web/internal/requestctx"
)

// Error is the JSON error envelope returned for non-HTML failures.
type Error struct {
	Code      string
	Message   string
	Status    int
	RequestID string
	TraceID   string
}

// NewError constructs a new Error with the provided parameters.
func NewError(code, message string, status int) Error {
	if status == 0 {
		status = http.StatusInternalServerError
	}
	return Error{
		Code:    sanitize(code, 80),
		Message: sanitize(message, 512),
		Status:  status,
	}
}

// WithRequestID sets the request identifier on the error payload.
func (e Error) WithRequestID(id string) Error {
	e.RequestID = sanitize(id, 80)
	return e
}

// Error implements the error interface so envelopes can travel through error returns.
func (e Error) Error() string {
	return e.Code + ": " + e.Message
}

// WriteError writes the structured error as JSON to the provided response writer.
func WriteError(ctx context.Context, w http.ResponseWriter, err Error) {
	status := err.Status
	if status == 0 {
		status = http.StatusInternalServerError
	}

	requestID := err.RequestID
	if requestID == "" {
		requestID = sanitize(middleware.GetReqID(ctx), 80)
	}

	traceID := err.TraceID
	if traceID == "" {
		traceID = sanitize(requestctx.TraceID(ctx), 64)
	}

	payload := map[string]any{
		"error":   err.Code,
		"message": err.Message,
		"status":  status,
	}
	if requestID != "" {
		payload["request_id"] = requestID
	}
	if traceID != "" {
		payload["trace_id"] = traceID
	}

	requestctx.Logger(ctx).Debug("error response", zap.Error(err), zap.Int("status", status))

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// PrefersJSON reports whether the request's Accept header ranks JSON above HTML.
// Media ranges are ordered by q-value, then by position; a range with q=0 is refused.
func PrefersJSON(r *http.Request) bool {
	accept := r.Header.Get("Accept")
	if strings.TrimSpace(accept) == "" {
		return false
	}
	type mediaPref struct {
		media string
		q     float64
		pos   int
	}
	prefs := make([]mediaPref, 0, 4)
	for i, raw := range strings.Split(accept, ",") {
		params := strings.Split(raw, ";")
		media := strings.ToLower(strings.TrimSpace(params[0]))
		if media == "" {
			continue
		}
		q := 1.0
		for _, param := range params[1:] {
			param = strings.TrimSpace(param)
			if !strings.HasPrefix(param, "q=") {
				continue
			}
			if v, err := parseQValue(strings.TrimPrefix(param, "q=")); err == nil {
				q = v
			}
		}
		prefs = append(prefs, mediaPref{media: media, q: q, pos: i})
	}
	sort.SliceStable(prefs, func(i, j int) bool {
		if prefs[i].q == prefs[j].q {
			return prefs[i].pos < prefs[j].pos
		}
		return prefs[i].q > prefs[j].q
	})
	for _, p := range prefs {
		if p.q <= 0 {
			break
		}
		switch p.media {
		case "application/json":
			return true
		case "text/html":
			return false
		}
	}
	return false
}

// parseQValue parses a qvalue clamped to [0, 1].
func parseQValue(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, err
	}
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	return v, nil
}

func sanitize(value string, limit int) string {
	if limit <= 0 {
		limit = 256
	}
	value = strings.ReplaceAll(value, "\n", " ")
	value = strings.ReplaceAll(value, "\r", " ")
	value = strings.TrimSpace(value)
	if len(value) > limit {
		value = value[:limit]
	}
	return value
}
