package api

import (
	"database/sql"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/marciomedrado/casa/internal/catalog"
	"github.com/marciomedrado/casa/internal/model"
	"github.com/marciomedrado/casa/internal/store"
)

// LocationsHandler handles location endpoints.
type LocationsHandler struct {
	DB *sql.DB
}

type locationRequest struct {
	Name     string  `json:"name"`
	ParentID *string `json:"parentId"`
	Type     string  `json:"type"`
	Icon     string  `json:"icon"`
}

type locationTreeResponse struct {
	Tree     []*catalog.LocationNode `json:"tree"`
	Warnings []string                `json:"warnings,omitempty"`
}

// List handles GET /api/properties/{id}/locations. With ?tree=1 the
// flat list becomes a nested tree, plus any referential warnings the
// tree build surfaced.
func (h *LocationsHandler) List(w http.ResponseWriter, r *http.Request) {
	propertyID := chi.URLParam(r, "id")

	locations, err := store.ListLocations(r.Context(), h.DB, propertyID)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to list locations")
		return
	}

	if r.URL.Query().Get("tree") == "" {
		if locations == nil {
			locations = []model.Location{}
		}
		jsonResponse(w, http.StatusOK, locations)
		return
	}

	items, err := store.ListItems(r.Context(), h.DB, propertyID)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to list items")
		return
	}

	ix := catalog.NewIndex(locations, items)
	tree := ix.LocationTree(nil)
	if tree == nil {
		tree = []*catalog.LocationNode{}
	}

	var warnings []string
	for _, warning := range ix.Warnings() {
		warnings = append(warnings, warning.String())
	}
	jsonResponse(w, http.StatusOK, locationTreeResponse{Tree: tree, Warnings: warnings})
}

// Create handles POST /api/properties/{id}/locations.
func (h *LocationsHandler) Create(w http.ResponseWriter, r *http.Request) {
	propertyID := chi.URLParam(r, "id")

	property, err := store.GetProperty(r.Context(), h.DB, propertyID)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to get property")
		return
	}
	if property == nil {
		jsonError(w, http.StatusNotFound, "property not found")
		return
	}

	var req locationRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	location, err := store.CreateLocation(r.Context(), h.DB, model.Location{
		PropertyID: propertyID,
		Name:       req.Name,
		ParentID:   req.ParentID,
		Type:       req.Type,
		Icon:       req.Icon,
	})
	if err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}
	jsonResponse(w, http.StatusCreated, location)
}

// Update handles PUT /api/locations/{id}.
func (h *LocationsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req locationRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	location, err := store.UpdateLocation(r.Context(), h.DB, model.Location{
		ID:       id,
		Name:     req.Name,
		ParentID: req.ParentID,
		Type:     req.Type,
		Icon:     req.Icon,
	})
	if err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}
	jsonResponse(w, http.StatusOK, location)
}

// Delete handles DELETE /api/locations/{id}. Deletion is refused
// while the location still has child locations or items.
func (h *LocationsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := store.DeleteLocation(r.Context(), h.DB, id); err != nil {
		catalogError(w, err)
		return
	}
	jsonResponse(w, http.StatusOK, map[string]string{"message": "location deleted"})
}
