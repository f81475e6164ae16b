package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/spf13/cobra"

	"github.com/creamcroissant/shopfront/internal/order"
)

func init() {
	var ordersCmd = &cobra.Command{
		Use:   "orders",
		Short: "Track your orders",
	}

	var listPage int
	var listCmd = &cobra.Command{
		Use:   "list",
		Short: "List your orders",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			client, st, _, err := newClient(ctx)
			if err != nil {
				return err
			}
			defer st.Close()

			page, err := client.ListMyOrders(ctx, listPage)
			if err != nil {
				return err
			}
			if len(page.Items) == 0 {
				fmt.Println("No orders yet.")
				return nil
			}
			w := newTabWriter()
			fmt.Fprintln(w, "ID\tPlaced\tTotal\tStatus")
			for _, o := range page.Items {
				printOrderRow(w, o)
			}
			w.Flush()
			return nil
		},
	}
	listCmd.Flags().IntVar(&listPage, "page", 1, "Page number")
	ordersCmd.AddCommand(listCmd)

	ordersCmd.AddCommand(&cobra.Command{
		Use:   "show <id>",
		Short: "Show one order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			client, st, _, err := newClient(ctx)
			if err != nil {
				return err
			}
			defer st.Close()

			o, err := client.GetOrder(ctx, args[0])
			if err != nil {
				return err
			}
			printOrderDetail(o)
			return nil
		},
	})

	ordersCmd.AddCommand(&cobra.Command{
		Use:   "cancel <id>",
		Short: "Cancel an order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			client, st, _, err := newClient(ctx)
			if err != nil {
				return err
			}
			defer st.Close()

			o, err := client.CancelOrder(ctx, args[0])
			if err != nil {
				return err
			}
			fmt.Printf("Order %s is now %s.\n", o.ID, o.Status.Label())
			return nil
		},
	})

	ordersCmd.AddCommand(&cobra.Command{
		Use:   "confirm <id>",
		Short: "Confirm a delivered order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			client, st, _, err := newClient(ctx)
			if err != nil {
				return err
			}
			defer st.Close()

			o, err := client.ConfirmDelivery(ctx, args[0])
			if err != nil {
				return err
			}
			fmt.Printf("Order %s is now %s.\n", o.ID, o.Status.Label())
			return nil
		},
	})

	var follow bool
	var trackCmd = &cobra.Command{
		Use:   "track <id>",
		Short: "Show an order's progress",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			client, st, _, err := newClient(ctx)
			if err != nil {
				return err
			}
			defer st.Close()

			o, err := client.GetOrder(ctx, args[0])
			if err != nil {
				return err
			}
			printProgress(o.Status)

			if !follow || o.Status.Terminal() {
				return nil
			}

			// Poll with growing intervals, up to half a minute apart.
			pol := backoff.NewExponentialBackOff()
			pol.InitialInterval = 2 * time.Second
			pol.MaxInterval = 30 * time.Second
			pol.MaxElapsedTime = 0
			last := o.Status
			for {
				select {
				case <-ctx.Done():
					return ctx.Err()
				case <-time.After(pol.NextBackOff()):
				}
				o, err = client.GetOrder(ctx, args[0])
				if err != nil {
					return err
				}
				if o.Status != last {
					last = o.Status
					pol.Reset()
					printProgress(o.Status)
				}
				if o.Status.Terminal() {
					return nil
				}
			}
		},
	}
	trackCmd.Flags().BoolVar(&follow, "follow", false, "Keep polling until the order reaches a final status")
	ordersCmd.AddCommand(trackCmd)

	rootCmd.AddCommand(ordersCmd)
}

func printProgress(s order.Status) {
	if s == order.StatusCancelled {
		fmt.Println("[cancelled]")
		return
	}
	steps := order.ProgressSteps()
	idx, ok := order.ProgressIndex(s)
	if !ok {
		idx = -1
	}
	parts := make([]string, 0, len(steps))
	for i, step := range steps {
		mark := " "
		if i <= idx {
			mark = "x"
		}
		parts = append(parts, fmt.Sprintf("[%s] %s", mark, step.Label()))
	}
	fmt.Println(strings.Join(parts, "  ->  "))
}
