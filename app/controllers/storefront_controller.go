package controllers

import (
	"net/http"

	"github.com/shashiranjanraj/dukaan/app/catalog"
	"github.com/shashiranjanraj/dukaan/app/views"
	"github.com/shashiranjanraj/dukaan/pkg/logger"
	"github.com/shashiranjanraj/dukaan/pkg/response"
)

// StorefrontController serves the shop page and the catalog API behind it.
type StorefrontController struct {
	catalog *catalog.Store
	fetcher *catalog.Fetcher
}

func NewStorefrontController(store *catalog.Store, fetcher *catalog.Fetcher) *StorefrontController {
	return &StorefrontController{catalog: store, fetcher: fetcher}
}

// Page renders the storefront shell. Product data arrives over the API,
// so a stale or empty catalog still yields a working page.
func (c *StorefrontController) Page(w http.ResponseWriter, r *http.Request) {
	err := views.Render(w, "storefront", views.PageData{
		Title:      "Dukaan",
		Categories: c.catalog.Categories(),
	})
	if err != nil {
		logger.Error("storefront render failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

// Products answers the catalog query API. Both filters are optional and
// combine: ?search= narrows by text, ?category= by exact label.
func (c *StorefrontController) Products(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	response.Success(w, c.catalog.View(q.Get("search"), q.Get("category")))
}

// Categories returns the category labels from the last feed load,
// first-seen order preserved.
func (c *StorefrontController) Categories(w http.ResponseWriter, r *http.Request) {
	response.Success(w, c.catalog.Categories())
}

// Reload forces a feed refetch. Failures keep the previous catalog in
// place, so the client can ignore the error and keep rendering.
func (c *StorefrontController) Reload(w http.ResponseWriter, r *http.Request) {
	categories, err := c.fetcher.Refresh(r.Context())
	if err != nil {
		logger.Warn("feed reload failed", "error", err)
		response.BadGateway(w, "feed unavailable")
		return
	}
	response.Success(w, map[string]interface{}{
		"products":   len(c.catalog.Products()),
		"categories": categories,
	})
}
