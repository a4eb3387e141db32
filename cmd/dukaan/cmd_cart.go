package main

import (
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/dukaan/app/cart"
	"github.com/shashiranjanraj/dukaan/config"
	"github.com/shashiranjanraj/dukaan/pkg/slot"
)

// bootCart loads config and restores the persisted cart. The CLI always
// uses the file slot; the redis driver only makes sense under the server.
func bootCart() (*cart.Store, error) {
	if err := config.Load(); err != nil {
		return nil, err
	}
	c := cart.NewStore(slot.NewFile(config.CartSlotPath()), nil)
	c.Restore()
	return c, nil
}

func printCart(c *cart.Store) error {
	lines := c.Snapshot()
	if len(lines) == 0 {
		fmt.Println("Cart is empty.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tPRICE\tQTY\tTOTAL")
	fmt.Fprintln(w, "--\t----\t-----\t---\t-----")
	for _, l := range lines {
		fmt.Fprintf(w, "%s\t%s\t%.2f\t%d\t%.2f\n", l.ProductID, l.Name, l.Price, l.Quantity, l.Total())
	}
	fmt.Fprintf(w, "\t\t\t\t%.2f\n", c.Subtotal())
	return w.Flush()
}

// dukaan cart:list
var cartListCmd = &cobra.Command{
	Use:   "cart:list",
	Short: "Show the persisted cart",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := bootCart()
		if err != nil {
			return err
		}
		return printCart(c)
	},
}

// dukaan cart:add ID [QTY]
var cartAddCmd = &cobra.Command{
	Use:   "cart:add ID [QTY]",
	Short: "Add a catalog product to the cart",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := bootCatalog()
		if err != nil {
			return err
		}
		product, ok := store.Find(args[0])
		if !ok {
			return fmt.Errorf("no product %q in the feed", args[0])
		}

		qty := 1
		if len(args) == 2 {
			qty, _ = strconv.Atoi(args[1])
		}

		c, err := bootCart()
		if err != nil {
			return err
		}
		line := c.AddOrIncrement(product, qty)
		fmt.Printf("Added %s ×%d\n", line.Name, line.Quantity)
		return printCart(c)
	},
}

// dukaan cart:set ID QTY
var cartSetCmd = &cobra.Command{
	Use:   "cart:set ID QTY",
	Short: "Change a cart line's quantity",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		qty, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("quantity must be a number: %q", args[1])
		}

		c, err := bootCart()
		if err != nil {
			return err
		}
		if !c.SetQuantity(args[0], qty) {
			return fmt.Errorf("no cart line for %q", args[0])
		}
		return printCart(c)
	},
}

// dukaan cart:remove ID
var cartRemoveCmd = &cobra.Command{
	Use:   "cart:remove ID",
	Short: "Drop a line from the cart",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := bootCart()
		if err != nil {
			return err
		}
		if !c.Remove(args[0]) {
			return fmt.Errorf("no cart line for %q", args[0])
		}
		return printCart(c)
	},
}

// dukaan cart:clear
var cartClearCmd = &cobra.Command{
	Use:   "cart:clear",
	Short: "Empty the cart",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := bootCart()
		if err != nil {
			return err
		}
		c.Clear()
		fmt.Println("Cart cleared.")
		return nil
	},
}
