package handlers

import (
	"net/http"

	"photofeed/internal/logging"
)

func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	status, err := h.HealthService.Check(r.Context())
	if err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("health check failed")
		writeSuccess(w, map[string]string{"status": "unavailable"}, http.StatusServiceUnavailable)
		return
	}

	writeSuccess(w, status, http.StatusOK)
}
