package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"unicode"

	service "github.com/okian/collections/internal/app"
)

// ProductsHandler serves /products.
type ProductsHandler struct {
	deps ProductsDependencies
}

// NewProductsHandler creates a new products handler.
func NewProductsHandler(deps ProductsDependencies) *ProductsHandler {
	return &ProductsHandler{deps: deps}
}

// HandleList handles GET /products.
func (h *ProductsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.deps.List(r.Context()))
}

// HandleCreate handles POST /products.
// Any body that does not decode into {name, price} is treated as missing fields.
func (h *ProductsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var in service.ProductInput
	if err := decodeJSON(w, r, &in); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, msgBodyTooLarge)
			return
		}
		writeError(w, http.StatusBadRequest, msgProductRequired)
		return
	}
	p, err := h.deps.Create(r.Context(), in)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			writeError(w, http.StatusBadRequest, msgProductRequired)
			return
		}
		writeError(w, http.StatusInternalServerError, msgInternal)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

// HandleDelete handles DELETE /products/{id}. An id without leading digits matches nothing.
func (h *ProductsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseLeadingInt(r.PathValue("id"))
	if !ok {
		writeError(w, http.StatusNotFound, msgProductNotFound)
		return
	}
	if err := h.deps.Delete(r.Context(), id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			writeError(w, http.StatusNotFound, msgProductNotFound)
			return
		}
		writeError(w, http.StatusInternalServerError, msgInternal)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// parseLeadingInt reads the integer at the start of s: leading whitespace, an optional
// sign, then digits. Anything after the digits is ignored, so "2abc" and "2.5" give 2.
func parseLeadingInt(s string) (int, bool) {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, false
	}
	id, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return id, true
}
