package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"text/tabwriter"

	"github.com/creamcroissant/shopfront/internal/api"
	"github.com/creamcroissant/shopfront/internal/config"
	"github.com/creamcroissant/shopfront/internal/store"
	"github.com/creamcroissant/shopfront/internal/support/format"
	"github.com/creamcroissant/shopfront/internal/support/logging"
)

// newClient wires config, local state and the API client together. The
// returned store must be closed by the caller when the command is done.
func newClient(ctx context.Context) (*api.Client, *store.Store, *config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("load config: %w", err)
	}

	st, err := store.Open(cfg.State.Path)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("open state: %w", err)
	}

	log := logging.New(logging.Options{
		Level:     cfg.Log.Level,
		Format:    cfg.Log.Format,
		AddSource: cfg.Log.AddSource,
	})

	client, err := api.New(ctx, api.Options{
		BaseURL:    cfg.API.BaseURL,
		Store:      st,
		Logger:     log,
		HTTPClient: &http.Client{Timeout: cfg.API.Timeout},
		CacheTTL:   cfg.Cache.TTL,
	})
	if err != nil {
		st.Close()
		return nil, nil, nil, err
	}
	return client, st, cfg, nil
}

func newTabWriter() *tabwriter.Writer {
	return tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
}

func printOrderRow(w *tabwriter.Writer, o api.Order) {
	fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
		o.ID, o.CreatedAt.Format("2006-01-02 15:04"),
		format.Money(o.GrandTotal, o.Currency), o.Status.Label())
}

func printOrderDetail(o api.Order) {
	fmt.Printf("Order %s\n", o.ID)
	fmt.Printf("Status: %s\n", o.Status.Label())
	fmt.Printf("Placed: %s\n", o.CreatedAt.Format("2006-01-02 15:04"))
	if o.DeliveryDate != "" {
		slot := o.DeliverySlot
		if slot == "" {
			slot = "any time"
		}
		fmt.Printf("Delivery: %s (%s)\n", o.DeliveryDate, slot)
	}
	fmt.Printf("Ship to: %s, %s %s, %s\n", o.Address.Line1, o.Address.PostalCode, o.Address.City, o.Address.Country)
	fmt.Println()
	w := newTabWriter()
	fmt.Fprintln(w, "Qty\tItem\tUnit\tTotal")
	for _, item := range o.Items {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n",
			item.Quantity, item.Name,
			format.Money(item.UnitPrice, o.Currency),
			format.Money(item.UnitPrice*int64(item.Quantity), o.Currency))
	}
	w.Flush()
	fmt.Println()
	fmt.Printf("Subtotal:    %s\n", format.Money(o.Subtotal, o.Currency))
	fmt.Printf("Shipping:    %s\n", format.Money(o.ShippingCost, o.Currency))
	fmt.Printf("Service fee: %s\n", format.Money(o.ServiceFee, o.Currency))
	fmt.Printf("Total:       %s\n", format.Money(o.GrandTotal, o.Currency))
}
