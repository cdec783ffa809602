package httpapi

import (
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/solidarias/internal/export"
	"github.com/go-chi/chi/v5"
)

// SaveProducts writes the inventory export for the {format} in the path and
// serves the same bytes. When the upload to object storage fails the local
// file still exists, so the data is served and the failure only logged.
func (h *Handlers) SaveProducts(w http.ResponseWriter, r *http.Request) {
	f, err := export.ParseFormat(chi.URLParam(r, "format"))
	if err != nil {
		h.notFound(w, r, "Unknown export format.")
		return
	}

	res, err := h.exports.Export(r.Context(), f)
	if err != nil {
		if res == nil {
			h.serverError(w, r, err)
			return
		}
		h.logger.Warn(r.Context(), "export upload failed",
			"format", string(f),
			"error", err.Error(),
			"request_id", RequestIDFromContext(r.Context()))
	}

	h.logger.Info(r.Context(), "products exported", "format", string(f), "path", res.Path, "key", res.Key)

	w.Header().Set("Content-Type", f.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", f.FileName()))
	if res.Key != "" {
		w.Header().Set("X-Export-Key", res.Key)
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.Data)
}
