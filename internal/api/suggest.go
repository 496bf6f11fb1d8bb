package api

import (
	"net/http"

	"github.com/marciomedrado/casa/internal/suggest"
)

// SuggestHandler handles tag suggestion endpoints.
type SuggestHandler struct {
	Suggester suggest.Suggester
}

type suggestTagsRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type suggestTagsResponse struct {
	Tags []string `json:"tags"`
}

// Tags handles POST /api/suggest/tags.
func (h *SuggestHandler) Tags(w http.ResponseWriter, r *http.Request) {
	var req suggestTagsRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name == "" {
		jsonError(w, http.StatusBadRequest, "name required")
		return
	}

	tags, err := h.Suggester.SuggestTags(r.Context(), req.Name, req.Description)
	if err != nil {
		jsonError(w, http.StatusBadGateway, "suggestion service unavailable")
		return
	}
	if tags == nil {
		tags = []string{}
	}
	jsonResponse(w, http.StatusOK, suggestTagsResponse{Tags: tags})
}
