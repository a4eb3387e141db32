package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "dukaan",
	Short: "Dukaan — spreadsheet-backed storefront",
	Long:  "Dukaan serves a product catalog from a published spreadsheet feed, with a local cart and order submission.",
}

func init() {
	// Server
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(routeListCmd)

	// Catalog
	rootCmd.AddCommand(fetchCmd)

	// Cart
	rootCmd.AddCommand(cartListCmd)
	rootCmd.AddCommand(cartAddCmd)
	rootCmd.AddCommand(cartSetCmd)
	rootCmd.AddCommand(cartRemoveCmd)
	rootCmd.AddCommand(cartClearCmd)

	// Orders
	rootCmd.AddCommand(checkoutCmd)
}
