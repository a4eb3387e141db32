// Package cmd/dukaan provides the dukaan storefront CLI.
//
//	dukaan serve           # start the storefront server
//	dukaan fetch           # one-shot feed fetch, prints the catalog
//	dukaan route:list      # list API routes
//	dukaan cart:list       # show the persisted cart
//	dukaan cart:add ID [N] # add a product to the cart
//	dukaan cart:set ID N   # change a line's quantity
//	dukaan cart:remove ID  # drop a line
//	dukaan cart:clear      # empty the cart
//	dukaan checkout        # submit the cart as an order
//
// Configuration comes from config/app.json and .env (see config package).
package main
