package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// respondCacheable writes data as JSON with a strong ETag computed from the
// encoded body. A matching If-None-Match yields 304 without a body.
func (h *APIHandler) respondCacheable(w http.ResponseWriter, r *http.Request, data any) {
	body, err := json.Marshal(data)
	if err != nil {
		h.respondServiceError(w, r, fmt.Errorf("encode response: %w", err))
		return
	}
	body = append(body, '\n')
	etag := fmt.Sprintf(`"%016x"`, xxhash.Sum64(body))

	w.Header().Set("ETag", etag)
	w.Header().Set("Cache-Control", "no-cache")
	if etagMatches(r.Header.Get("If-None-Match"), etag) {
		if h.metrics != nil {
			h.metrics.NotModified.Inc()
		}
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		LoggerFromContext(r.Context()).Debug("write response", "error", err)
	}
}

// etagMatches reports whether an If-None-Match header value names etag.
// Weak validators compare equal to their strong form.
func etagMatches(header, etag string) bool {
	if header == "" {
		return false
	}
	for _, candidate := range strings.Split(header, ",") {
		candidate = strings.TrimSpace(candidate)
		if candidate == "*" || strings.TrimPrefix(candidate, "W/") == etag {
			return true
		}
	}
	return false
}
