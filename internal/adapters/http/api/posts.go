package api

import (
	"errors"
	"io"
	"net/http"

	service "github.com/okian/collections/internal/app"
)

// PostsHandler serves /api/posts.
type PostsHandler struct {
	deps PostsDependencies
}

// NewPostsHandler creates a new posts handler.
func NewPostsHandler(deps PostsDependencies) *PostsHandler {
	return &PostsHandler{deps: deps}
}

// HandleList handles GET /api/posts.
func (h *PostsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.deps.List(r.Context()))
}

// HandleCreate handles POST /api/posts. An empty body creates a post without a title.
func (h *PostsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var in service.PostInput
	if err := decodeJSON(w, r, &in); err != nil && !errors.Is(err, io.EOF) {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, msgBodyTooLarge)
			return
		}
		writeError(w, http.StatusBadRequest, msgBadRequest)
		return
	}
	writeJSON(w, http.StatusCreated, h.deps.Create(r.Context(), in))
}
