package api

import (
	"database/sql"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/marciomedrado/casa/internal/catalog"
	"github.com/marciomedrado/casa/internal/imaging"
	"github.com/marciomedrado/casa/internal/model"
	"github.com/marciomedrado/casa/internal/store"
)

// ItemsHandler handles item CRUD and placement endpoints.
type ItemsHandler struct {
	DB *sql.DB
}

type itemRequest struct {
	Name         string              `json:"name"`
	Description  string              `json:"description"`
	Quantity     int                 `json:"quantity"`
	Tags         []string            `json:"tags"`
	LocationID   string              `json:"locationId"`
	ParentID     *string             `json:"parentId"`
	SubContainer *model.SubContainer `json:"subContainer"`
	IsContainer  bool                `json:"isContainer"`
	DoorCount    int                 `json:"doorCount"`
	DrawerCount  int                 `json:"drawerCount"`
	ImageHint    string              `json:"imageHint"`
}

func (req itemRequest) toItem() model.Item {
	return model.Item{
		Name:         req.Name,
		Description:  req.Description,
		Quantity:     req.Quantity,
		Tags:         req.Tags,
		LocationID:   req.LocationID,
		ParentID:     req.ParentID,
		SubContainer: req.SubContainer,
		IsContainer:  req.IsContainer,
		DoorCount:    req.DoorCount,
		DrawerCount:  req.DrawerCount,
		ImageHint:    req.ImageHint,
	}
}

// List handles GET /api/properties/{id}/items. The optional location
// parameter narrows results to a location's subtree and q applies a
// text search over names, descriptions and tags. Both compose. With
// ?tree=1 the full catalog is returned as a containment tree instead.
func (h *ItemsHandler) List(w http.ResponseWriter, r *http.Request) {
	propertyID := chi.URLParam(r, "id")

	items, err := store.ListItems(r.Context(), h.DB, propertyID)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to list items")
		return
	}

	if r.URL.Query().Get("tree") != "" {
		locations, err := store.ListLocations(r.Context(), h.DB, propertyID)
		if err != nil {
			jsonError(w, http.StatusInternalServerError, "failed to list locations")
			return
		}
		tree := catalog.NewIndex(locations, items).ItemTree()
		if tree == nil {
			tree = []*catalog.ItemNode{}
		}
		jsonResponse(w, http.StatusOK, tree)
		return
	}

	locationID := r.URL.Query().Get("location")
	query := r.URL.Query().Get("q")

	var scope map[string]bool
	if locationID != "" {
		locations, err := store.ListLocations(r.Context(), h.DB, propertyID)
		if err != nil {
			jsonError(w, http.StatusInternalServerError, "failed to list locations")
			return
		}
		scope = catalog.NewIndex(locations, nil).Scope(locationID)
	}

	filtered := catalog.FilterItems(items, scope, query)
	if filtered == nil {
		filtered = []model.Item{}
	}
	jsonResponse(w, http.StatusOK, filtered)
}

// Create handles POST /api/properties/{id}/items.
func (h *ItemsHandler) Create(w http.ResponseWriter, r *http.Request) {
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

	var req itemRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	item := req.toItem()
	item.PropertyID = propertyID

	created, err := store.CreateItem(r.Context(), h.DB, item)
	if err != nil {
		catalogError(w, err)
		return
	}
	jsonResponse(w, http.StatusCreated, created)
}

// Get handles GET /api/items/{id}.
func (h *ItemsHandler) Get(w http.ResponseWriter, r *http.Request) {
	item, err := store.GetItem(r.Context(), h.DB, chi.URLParam(r, "id"))
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to get item")
		return
	}
	if item == nil {
		jsonError(w, http.StatusNotFound, "item not found")
		return
	}
	jsonResponse(w, http.StatusOK, item)
}

// Update handles PUT /api/items/{id}.
func (h *ItemsHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req itemRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	item := req.toItem()
	item.ID = chi.URLParam(r, "id")

	updated, err := store.UpdateItem(r.Context(), h.DB, item)
	if err != nil {
		catalogError(w, err)
		return
	}
	jsonResponse(w, http.StatusOK, updated)
}

// Delete handles DELETE /api/items/{id}. Deleting a container deletes
// everything stored inside it, transitively.
func (h *ItemsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	deleted, err := store.DeleteItem(r.Context(), h.DB, chi.URLParam(r, "id"))
	if err != nil {
		catalogError(w, err)
		return
	}
	jsonResponse(w, http.StatusOK, map[string]int{"deleted": deleted})
}

// Contents handles GET /api/items/{id}/contents. Children are grouped
// by the door or drawer they were assigned to.
func (h *ItemsHandler) Contents(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	item, err := store.GetItem(r.Context(), h.DB, id)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to get item")
		return
	}
	if item == nil {
		jsonError(w, http.StatusNotFound, "item not found")
		return
	}

	items, err := store.ListItems(r.Context(), h.DB, item.PropertyID)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to list items")
		return
	}

	contents := catalog.NewIndex(nil, items).ContainerContents(id)
	jsonResponse(w, http.StatusOK, contents)
}

// UploadImage handles PUT /api/items/{id}/image. The photo is sniffed,
// downscaled and re-encoded before storage.
func (h *ItemsHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	// Limit to 5 MB.
	r.Body = http.MaxBytesReader(w, r.Body, 5<<20)

	if err := r.ParseMultipartForm(5 << 20); err != nil {
		jsonError(w, http.StatusBadRequest, "file too large or invalid multipart form")
		return
	}

	file, _, err := r.FormFile("image")
	if err != nil {
		jsonError(w, http.StatusBadRequest, "image file required")
		return
	}
	defer file.Close()

	result, err := imaging.Process(file)
	if err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := store.SetItemImage(r.Context(), h.DB, id, result.Data, result.MIME); err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to save image")
		return
	}

	jsonResponse(w, http.StatusOK, map[string]string{"message": "image uploaded"})
}

// GetImage handles GET /api/items/{id}/image.
func (h *ItemsHandler) GetImage(w http.ResponseWriter, r *http.Request) {
	data, mime, err := store.GetItemImage(r.Context(), h.DB, chi.URLParam(r, "id"))
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to get image")
		return
	}
	if data == nil {
		jsonError(w, http.StatusNotFound, "no image")
		return
	}

	w.Header().Set("Content-Type", mime)
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.Write(data)
}
