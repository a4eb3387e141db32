package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/shashiranjanraj/dukaan/app/cart"
	"github.com/shashiranjanraj/dukaan/app/catalog"
	"github.com/shashiranjanraj/dukaan/app/models"
	"github.com/shashiranjanraj/dukaan/pkg/response"
)

// CartController exposes the cart over the API. Product ids are resolved
// against the live catalog on add; everything after that works off the
// cart's own snapshots.
type CartController struct {
	cart    *cart.Store
	catalog *catalog.Store
}

func NewCartController(cartStore *cart.Store, catalogStore *catalog.Store) *CartController {
	return &CartController{cart: cartStore, catalog: catalogStore}
}

// cartView is the wire shape for every cart reply.
type cartView struct {
	Items    []models.Line `json:"items"`
	Subtotal float64       `json:"subtotal"`
	Count    int           `json:"count"`
}

func (c *CartController) view() cartView {
	items := c.cart.Snapshot()
	if items == nil {
		items = []models.Line{}
	}
	return cartView{Items: items, Subtotal: c.cart.Subtotal(), Count: c.cart.Count()}
}

// Show returns the current cart.
func (c *CartController) Show(w http.ResponseWriter, r *http.Request) {
	response.Success(w, c.view())
}

// Add puts qty of a catalog product into the cart, merging into an
// existing line for the same product.
func (c *CartController) Add(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ID  string `json:"id"`
		Qty int    `json:"qty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.ID == "" {
		response.BadRequest(w, "id is required")
		return
	}

	product, ok := c.catalog.Find(body.ID)
	if !ok {
		response.NotFound(w)
		return
	}

	c.cart.AddOrIncrement(product, body.Qty)
	response.Success(w, c.view())
}

// Update sets the quantity of an existing line.
func (c *CartController) Update(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Qty int `json:"qty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		response.BadRequest(w, "qty is required")
		return
	}

	if !c.cart.SetQuantity(chi.URLParam(r, "id"), body.Qty) {
		response.NotFound(w)
		return
	}
	response.Success(w, c.view())
}

// Remove drops one line from the cart.
func (c *CartController) Remove(w http.ResponseWriter, r *http.Request) {
	if !c.cart.Remove(chi.URLParam(r, "id")) {
		response.NotFound(w)
		return
	}
	response.Success(w, c.view())
}

// Clear empties the cart.
func (c *CartController) Clear(w http.ResponseWriter, r *http.Request) {
	c.cart.Clear()
	response.Success(w, c.view())
}
