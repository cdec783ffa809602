package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/solidarias/internal/common"
)

func (h *Handlers) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (h *Handlers) jsonError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, common.ErrorNotFound):
		h.json(w, http.StatusNotFound, map[string]string{"error": "not found"})
	case errors.Is(err, common.ErrorValidation):
		h.json(w, http.StatusBadRequest, map[string]string{"error": userMessage(err)})
	default:
		h.logger.Error(r.Context(), "api request failed",
			"error", err.Error(),
			"path", r.URL.Path,
			"request_id", RequestIDFromContext(r.Context()))
		h.json(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
}
