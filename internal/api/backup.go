package api

import (
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/marciomedrado/casa/internal/store"
)

// BackupHandler handles property export and restore endpoints.
type BackupHandler struct {
	DB *sql.DB
}

// Export handles GET /api/properties/{id}/backup. The whole catalog of
// the property is streamed as a CSV download.
func (h *BackupHandler) Export(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	property, err := store.GetProperty(r.Context(), h.DB, id)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to get property")
		return
	}
	if property == nil {
		jsonError(w, http.StatusNotFound, "property not found")
		return
	}

	filename := fmt.Sprintf("casa-backup-%s.csv", time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)

	if err := store.ExportProperty(r.Context(), h.DB, id, w); err != nil {
		// Headers are already sent; all we can do is log.
		slog.Error("exporting property", "property", id, "error", err)
	}
}

// Import handles POST /api/properties/{id}/restore. The uploaded CSV
// replaces the property's current locations and items.
func (h *BackupHandler) Import(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	property, err := store.GetProperty(r.Context(), h.DB, id)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to get property")
		return
	}
	if property == nil {
		jsonError(w, http.StatusNotFound, "property not found")
		return
	}

	// Limit to 20 MB.
	r.Body = http.MaxBytesReader(w, r.Body, 20<<20)
	defer r.Body.Close()

	if err := store.ImportProperty(r.Context(), h.DB, id, r.Body); err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}

	slog.Info("property restored from backup", "property", id)
	jsonResponse(w, http.StatusOK, map[string]string{"message": "backup restored"})
}
