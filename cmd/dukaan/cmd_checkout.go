package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/dukaan/app/checkout"
	"github.com/shashiranjanraj/dukaan/app/models"
	"github.com/shashiranjanraj/dukaan/config"
)

var (
	checkoutName    string
	checkoutContact string
)

// dukaan checkout — submit the persisted cart as an order.
var checkoutCmd = &cobra.Command{
	Use:   "checkout",
	Short: "Submit the cart to the order endpoint",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := bootCart()
		if err != nil {
			return err
		}

		submitter := checkout.NewSubmitter(config.OrderURL(), config.OrderSuccessMode())
		customer := models.Customer{Name: checkoutName, Contact: checkoutContact}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		order, err := submitter.Submit(ctx, customer, c.Snapshot())
		if err != nil {
			return err
		}

		c.Clear()
		fmt.Printf("Order confirmed: %d item(s), subtotal %.2f\n", len(order.Items), order.Subtotal)
		return nil
	},
}

func init() {
	checkoutCmd.Flags().StringVarP(&checkoutName, "name", "n", "", "customer name (required)")
	checkoutCmd.Flags().StringVarP(&checkoutContact, "contact", "c", "", "phone or email")
	_ = checkoutCmd.MarkFlagRequired("name")
}
