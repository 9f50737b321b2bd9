package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/marketflow/storefront-service-go/internal/catalog"
)

type CatalogHandler struct {
	catalog catalog.Service
}

func NewCatalogHandler(catalogSvc catalog.Service) *CatalogHandler {
	return &CatalogHandler{catalog: catalogSvc}
}

// ListProducts supports ?category= and ?q= filters; without either it
// returns the full catalog.
func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	var (
		products []catalog.Product
		err      error
	)
	switch {
	case r.URL.Query().Get("category") != "":
		products, err = h.catalog.GetByCategory(ctx, r.URL.Query().Get("category"))
	case r.URL.Query().Get("q") != "":
		products, err = h.catalog.Search(ctx, r.URL.Query().Get("q"))
	default:
		products, err = h.catalog.GetAll(ctx)
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load products")
		return
	}

	writeJSON(w, http.StatusOK, products)
}

func (h *CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("productId"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid productId")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	p, err := h.catalog.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, catalog.ErrProductNotFound) {
			writeError(w, http.StatusNotFound, "product not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to load product")
		return
	}

	writeJSON(w, http.StatusOK, p)
}

func (h *CatalogHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	categories, err := h.catalog.Categories(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load categories")
		return
	}

	writeJSON(w, http.StatusOK, categories)
}
