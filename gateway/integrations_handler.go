package gateway

import (
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

const integrationsErrorBody = `{"error":"Failed to fetch available integrations"}`

// IntegrationsAvailableHandler relays the backend's "available integrations"
// listing so the browser never needs direct backend addressing. Any backend
// failure collapses to a fixed 500 payload; the underlying error is logged
// server-side only.
func (s *Server) IntegrationsAvailableHandler() http.HandlerFunc {
	client := &http.Client{Timeout: 10 * time.Second}
	backendURL := strings.TrimRight(s.config.GetBackendBaseURL(), "/") + backendIntegrationsPath

	return func(w http.ResponseWriter, r *http.Request) {
		req, err := http.NewRequestWithContext(r.Context(), http.MethodGet, backendURL, nil)
		if err != nil {
			log.Err(err).Msg("Integrations proxy: failed to build backend request")
			writeIntegrationsError(w)
			return
		}

		resp, err := client.Do(req)
		if err != nil {
			log.Err(err).Str("backend_url", backendURL).Msg("Integrations proxy: backend unreachable")
			writeIntegrationsError(w)
			return
		}
		defer resp.Body.Close()

		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			log.Error().Int("status", resp.StatusCode).Str("backend_url", backendURL).Msg("Integrations proxy: backend returned non-success status")
			writeIntegrationsError(w)
			return
		}

		w.Header().Set("Content-Type", contentTypeJSON)
		w.WriteHeader(http.StatusOK)
		if _, err := io.Copy(w, resp.Body); err != nil {
			log.Err(err).Msg("Integrations proxy: failed to relay backend body")
		}
	}
}

func writeIntegrationsError(w http.ResponseWriter) {
	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(http.StatusInternalServerError)
	w.Write([]byte(integrationsErrorBody))
}
