package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/georgemunganga/tg-shop/internal/modules/auth"
	"github.com/go-chi/chi/v5"
)

// Handler exposes catalog HTTP endpoints.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/api/v1/catalog", func(r chi.Router) {
		r.Get("/products", h.listProducts)     // GET /api/v1/catalog/products?category=...
		r.Get("/products/{id}", h.getProduct)  // GET /api/v1/catalog/products/{id}
		r.Get("/categories", h.listCategories) // GET /api/v1/catalog/categories

		r.Group(func(r chi.Router) {
			r.Use(auth.RequireAdmin)
			r.Get("/admin/products", h.listRawProducts)
			r.Post("/products", h.createProduct)
			r.Put("/products/{id}", h.updateProduct)
			r.Delete("/products/{id}", h.deleteProduct)
		})
	})
}

func (h *Handler) listProducts(w http.ResponseWriter, r *http.Request) {
	lang := auth.FromContext(r.Context()).Lang
	products, err := h.service.ListProducts(r.Context(), r.URL.Query().Get("category"))
	if err != nil {
		respondErr(w, err)
		return
	}
	views := make([]ProductView, 0, len(products))
	for _, p := range products {
		views = append(views, p.View(lang))
	}
	respond(w, http.StatusOK, views)
}

func (h *Handler) listRawProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.ListProducts(r.Context(), r.URL.Query().Get("category"))
	if err != nil {
		respondErr(w, err)
		return
	}
	if products == nil {
		products = []*Product{}
	}
	respond(w, http.StatusOK, products)
}

func (h *Handler) listCategories(w http.ResponseWriter, r *http.Request) {
	cats, err := h.service.Categories(r.Context(), auth.FromContext(r.Context()).Lang)
	if err != nil {
		respondErr(w, err)
		return
	}
	if cats == nil {
		cats = []Category{}
	}
	respond(w, http.StatusOK, cats)
}

func (h *Handler) getProduct(w http.ResponseWriter, r *http.Request) {
	sess := auth.FromContext(r.Context())
	p, err := h.service.GetProduct(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondErr(w, err)
		return
	}
	if sess.Admin {
		respond(w, http.StatusOK, p)
		return
	}
	respond(w, http.StatusOK, p.View(sess.Lang))
}

func (h *Handler) createProduct(w http.ResponseWriter, r *http.Request) {
	var req ProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	p, err := h.service.CreateProduct(r.Context(), req)
	if err != nil {
		respondErr(w, err)
		return
	}
	respond(w, http.StatusCreated, p)
}

func (h *Handler) updateProduct(w http.ResponseWriter, r *http.Request) {
	var req ProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	p, err := h.service.UpdateProduct(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		respondErr(w, err)
		return
	}
	respond(w, http.StatusOK, p)
}

func (h *Handler) deleteProduct(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteProduct(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondErr(w, err)
		return
	}
	respond(w, http.StatusOK, map[string]string{"status": "product deleted"})
}

func respondErr(w http.ResponseWriter, err error) {
	code := http.StatusInternalServerError
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		code = http.StatusGatewayTimeout
	case errors.Is(err, ErrInvalidProduct):
		code = http.StatusBadRequest
	case errors.Is(err, ErrProductNotFound):
		code = http.StatusNotFound
	}
	respond(w, code, map[string]string{"error": err.Error()})
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
