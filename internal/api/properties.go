package api

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/marciomedrado/casa/internal/model"
	"github.com/marciomedrado/casa/internal/store"
)

// PropertiesHandler handles property CRUD endpoints.
type PropertiesHandler struct {
	DB *sql.DB
}

type propertyRequest struct {
	Name    string `json:"name"`
	Address string `json:"address"`
}

// List handles GET /api/properties.
func (h *PropertiesHandler) List(w http.ResponseWriter, r *http.Request) {
	properties, err := store.ListProperties(r.Context(), h.DB)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to list properties")
		return
	}
	if properties == nil {
		properties = []model.Property{}
	}
	jsonResponse(w, http.StatusOK, properties)
}

// Create handles POST /api/properties.
func (h *PropertiesHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req propertyRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name == "" {
		jsonError(w, http.StatusBadRequest, "name required")
		return
	}

	property, err := store.CreateProperty(r.Context(), h.DB, req.Name, req.Address, "", "")
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to create property")
		return
	}
	jsonResponse(w, http.StatusCreated, property)
}

// Get handles GET /api/properties/{id}.
func (h *PropertiesHandler) Get(w http.ResponseWriter, r *http.Request) {
	property, err := store.GetProperty(r.Context(), h.DB, chi.URLParam(r, "id"))
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to get property")
		return
	}
	if property == nil {
		jsonError(w, http.StatusNotFound, "property not found")
		return
	}
	jsonResponse(w, http.StatusOK, property)
}

// Update handles PUT /api/properties/{id}.
func (h *PropertiesHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req propertyRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name == "" {
		jsonError(w, http.StatusBadRequest, "name required")
		return
	}

	if err := store.UpdateProperty(r.Context(), h.DB, id, req.Name, req.Address); err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to update property")
		return
	}

	property, _ := store.GetProperty(r.Context(), h.DB, id)
	jsonResponse(w, http.StatusOK, property)
}

// Delete handles DELETE /api/properties/{id}.
func (h *PropertiesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := store.DeleteProperty(r.Context(), h.DB, id); err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to delete property")
		return
	}

	slog.Info("property deleted", "id", id)
	jsonResponse(w, http.StatusOK, map[string]string{"message": "property deleted"})
}
