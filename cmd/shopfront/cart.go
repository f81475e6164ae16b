package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/creamcroissant/shopfront/internal/api"
	"github.com/creamcroissant/shopfront/internal/support/format"
)

func printCart(cart api.Cart) {
	if len(cart.Items) == 0 {
		fmt.Println("Your cart is empty.")
		return
	}
	w := newTabWriter()
	fmt.Fprintln(w, "Item ID\tName\tUnit\tQty\tTotal")
	for _, item := range cart.Items {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n",
			item.ID, item.Name,
			format.Money(item.UnitPrice, cart.Currency),
			item.Quantity,
			format.Money(item.UnitPrice*int64(item.Quantity), cart.Currency))
	}
	w.Flush()
	fmt.Printf("\nSubtotal: %s\n", format.Money(cart.Subtotal, cart.Currency))
}

func init() {
	var cartCmd = &cobra.Command{
		Use:   "cart",
		Short: "Manage your cart",
	}

	cartCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the cart",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			client, st, _, err := newClient(ctx)
			if err != nil {
				return err
			}
			defer st.Close()

			cart, err := client.GetCart(ctx)
			if err != nil {
				return err
			}
			printCart(cart)
			return nil
		},
	})

	var addQuantity int
	var addCmd = &cobra.Command{
		Use:   "add <product-id>",
		Short: "Add a product to the cart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			client, st, _, err := newClient(ctx)
			if err != nil {
				return err
			}
			defer st.Close()

			cart, err := client.AddToCart(ctx, args[0], addQuantity)
			if err != nil {
				return err
			}
			printCart(cart)
			return nil
		},
	}
	addCmd.Flags().IntVar(&addQuantity, "quantity", 1, "How many to add")
	cartCmd.AddCommand(addCmd)

	cartCmd.AddCommand(&cobra.Command{
		Use:   "update <item-id> <quantity>",
		Short: "Change an item's quantity",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			quantity, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("quantity must be a number: %w", err)
			}
			ctx := cmd.Context()
			client, st, _, err := newClient(ctx)
			if err != nil {
				return err
			}
			defer st.Close()

			cart, err := client.UpdateCartItem(ctx, args[0], quantity)
			if err != nil {
				return err
			}
			printCart(cart)
			return nil
		},
	})

	cartCmd.AddCommand(&cobra.Command{
		Use:   "remove <item-id>",
		Short: "Remove an item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			client, st, _, err := newClient(ctx)
			if err != nil {
				return err
			}
			defer st.Close()

			cart, err := client.RemoveCartItem(ctx, args[0])
			if err != nil {
				return err
			}
			printCart(cart)
			return nil
		},
	})

	cartCmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Empty the cart",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			client, st, _, err := newClient(ctx)
			if err != nil {
				return err
			}
			defer st.Close()

			if err := client.ClearCart(ctx); err != nil {
				return err
			}
			fmt.Println("Cart cleared.")
			return nil
		},
	})

	rootCmd.AddCommand(cartCmd)
}
