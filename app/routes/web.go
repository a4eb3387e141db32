// Package routes maps URLs to controllers. All registration happens here
// so the route table reads in one place.
package routes

import (
	"net/http"

	"github.com/shashiranjanraj/dukaan/app/cart"
	"github.com/shashiranjanraj/dukaan/app/catalog"
	"github.com/shashiranjanraj/dukaan/app/checkout"
	"github.com/shashiranjanraj/dukaan/app/controllers"
	"github.com/shashiranjanraj/dukaan/pkg/router"
	"github.com/shashiranjanraj/dukaan/pkg/ws"
)

// Deps carries the stores and services the controllers run on.
type Deps struct {
	Catalog   *catalog.Store
	Fetcher   *catalog.Fetcher
	Cart      *cart.Store
	Submitter *checkout.Submitter
	Hub       *ws.Hub
}

// RegisterWeb wires the storefront page, the JSON API and the websocket
// endpoint.
func RegisterWeb(r *router.Router, d Deps) {
	storefront := controllers.NewStorefrontController(d.Catalog, d.Fetcher)
	cartCtrl := controllers.NewCartController(d.Cart, d.Catalog)
	checkoutCtrl := controllers.NewCheckoutController(d.Cart, d.Submitter)

	r.Get("/", "storefront.page", storefront.Page)

	api := r.Group("/api")
	api.Get("/products", "products.index", storefront.Products)
	api.Get("/categories", "categories.index", storefront.Categories)
	api.Post("/catalog/reload", "catalog.reload", storefront.Reload)

	api.Get("/cart", "cart.show", cartCtrl.Show)
	api.Post("/cart/items", "cart.add", cartCtrl.Add)
	api.Put("/cart/items/{id}", "cart.update", cartCtrl.Update)
	api.Delete("/cart/items/{id}", "cart.remove", cartCtrl.Remove)
	api.Delete("/cart", "cart.clear", cartCtrl.Clear)

	api.Post("/checkout", "checkout.submit", checkoutCtrl.Submit)

	if d.Hub != nil {
		r.Get("/ws", "ws.connect", func(w http.ResponseWriter, req *http.Request) {
			ws.Upgrade(w, req, d.Hub)
		})
	}
}
