package handler

import "net/http"

// Version is reported by the healthcheck and published to expvar.
const Version = "1.0.0"

// Healthcheck godoc
// @Summary Report service status
// @Tags health
// @Produce json
// @Success 200
// @Router /api/healthcheck [get]
func (h *Handler) healthcheckHandler(w http.ResponseWriter, r *http.Request) {
	health := envelope{
		"status": "available",
		"system_info": map[string]interface{}{
			"environment":      h.config.Server.Env,
			"version":          Version,
			"product_provider": h.config.ProviderEnabled(),
			"cover_storage":    h.config.CoverStorageEnabled(),
		},
	}
	err := h.encodeJSON(w, http.StatusOK, health, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}
