package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/creamcroissant/shopfront/internal/api"
	"github.com/creamcroissant/shopfront/internal/payment"
	"github.com/creamcroissant/shopfront/internal/support/logging"
)

func init() {
	var (
		itemIDs      []string
		line1        string
		line2        string
		city         string
		postalCode   string
		country      string
		deliveryDate string
		deliverySlot string
		wait         bool
	)

	var checkoutCmd = &cobra.Command{
		Use:   "checkout",
		Short: "Place an order from the cart",
		Long: `Validate the shipping address, place an order for the selected cart items
and print the payment link. With --wait, a local listener waits for the
payment gateway to redirect back and reports the result.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if line1 == "" || city == "" {
				return fmt.Errorf("--line1 and --city are required")
			}
			ctx := cmd.Context()
			client, st, cfg, err := newClient(ctx)
			if err != nil {
				return err
			}
			defer st.Close()

			// Default to the whole cart when no items are picked.
			if len(itemIDs) == 0 {
				cart, err := client.GetCart(ctx)
				if err != nil {
					return err
				}
				for _, item := range cart.Items {
					itemIDs = append(itemIDs, item.ID)
				}
			}

			input := api.CheckoutInput{
				ItemIDs: itemIDs,
				Address: api.Address{
					Line1:      line1,
					Line2:      line2,
					City:       city,
					PostalCode: postalCode,
					Country:    country,
				},
				DeliveryDate: deliveryDate,
				DeliverySlot: deliverySlot,
			}

			var listener *payment.Listener
			if wait {
				log := logging.New(logging.Options{Level: cfg.Log.Level, Format: cfg.Log.Format})
				listener, err = payment.Listen(cfg.Payment.ReturnAddr, log)
				if err != nil {
					return fmt.Errorf("start payment listener: %w", err)
				}
				defer listener.Close()
				input.ReturnURL = listener.URL()
			}

			result, err := client.Checkout(ctx, input)
			if err != nil {
				return err
			}

			fmt.Printf("Order %s placed.\n", result.Order.ID)
			if result.PaymentURL == "" {
				fmt.Println("No payment required.")
				return nil
			}
			fmt.Printf("Pay at: %s\n", result.PaymentURL)

			if !wait {
				fmt.Println("Track it with: shopfront orders track " + result.Order.ID)
				return nil
			}

			fmt.Println("Waiting for the payment gateway to redirect back...")
			waitCtx, cancel := context.WithTimeout(ctx, cfg.Payment.WaitTimeout)
			defer cancel()
			res, err := listener.Wait(waitCtx)
			if err != nil {
				return fmt.Errorf("payment not confirmed: %w", err)
			}
			if res.Succeeded() {
				fmt.Println("Payment confirmed.")
			} else {
				fmt.Printf("Payment %s.\n", res.Status)
			}
			return nil
		},
	}
	checkoutCmd.Flags().StringSliceVar(&itemIDs, "item", nil, "Cart item ID to order (repeatable, default: whole cart)")
	checkoutCmd.Flags().StringVar(&line1, "line1", "", "Address line 1")
	checkoutCmd.Flags().StringVar(&line2, "line2", "", "Address line 2")
	checkoutCmd.Flags().StringVar(&city, "city", "", "City")
	checkoutCmd.Flags().StringVar(&postalCode, "postal-code", "", "Postal code")
	checkoutCmd.Flags().StringVar(&country, "country", "", "Country code")
	checkoutCmd.Flags().StringVar(&deliveryDate, "date", "", "Delivery date (YYYY-MM-DD)")
	checkoutCmd.Flags().StringVar(&deliverySlot, "slot", "", "Delivery slot")
	checkoutCmd.Flags().BoolVar(&wait, "wait", false, "Wait for the payment return redirect")
	rootCmd.AddCommand(checkoutCmd)
}
