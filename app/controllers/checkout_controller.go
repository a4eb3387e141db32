package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/shashiranjanraj/dukaan/app/cart"
	"github.com/shashiranjanraj/dukaan/app/checkout"
	"github.com/shashiranjanraj/dukaan/app/models"
	"github.com/shashiranjanraj/dukaan/pkg/response"
)

// CheckoutController turns the current cart into an order. The cart is
// cleared only after the endpoint confirms; any failure leaves it intact
// for a retry.
type CheckoutController struct {
	cart      *cart.Store
	submitter *checkout.Submitter
}

func NewCheckoutController(cartStore *cart.Store, submitter *checkout.Submitter) *CheckoutController {
	return &CheckoutController{cart: cartStore, submitter: submitter}
}

// Submit posts the cart as an order on behalf of the named customer.
func (c *CheckoutController) Submit(w http.ResponseWriter, r *http.Request) {
	var customer models.Customer
	if err := json.NewDecoder(r.Body).Decode(&customer); err != nil {
		response.BadRequest(w, "name and contact expected")
		return
	}

	order, err := c.submitter.Submit(r.Context(), customer, c.cart.Snapshot())
	if err != nil {
		var verr *checkout.ValidationError
		if errors.As(err, &verr) {
			response.ValidationError(w, map[string]string{verr.Field: verr.Reason})
			return
		}
		response.BadGateway(w, "order could not be submitted, your cart is unchanged")
		return
	}

	c.cart.Clear()
	response.Created(w, order)
}
