package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/creamcroissant/shopfront/internal/api"
	"github.com/creamcroissant/shopfront/internal/support/format"
)

func init() {
	var productsCmd = &cobra.Command{
		Use:   "products",
		Short: "Browse the catalog",
	}

	var listCategory, listSearch string
	var listPage, listPerPage int
	var listCmd = &cobra.Command{
		Use:   "list",
		Short: "List products",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			client, st, _, err := newClient(ctx)
			if err != nil {
				return err
			}
			defer st.Close()

			page, err := client.ListProducts(ctx, api.ProductFilter{
				Category: listCategory,
				Search:   listSearch,
				Page:     listPage,
				PerPage:  listPerPage,
			})
			if err != nil {
				return err
			}

			w := newTabWriter()
			fmt.Fprintln(w, "ID\tName\tPrice\tStock")
			for _, p := range page.Items {
				fmt.Fprintf(w, "%s\t%s\t%s\t%d\n", p.ID, p.Name, format.Money(p.Price, p.Currency), p.Stock)
			}
			w.Flush()
			if page.Total > 0 {
				fmt.Printf("\nPage %d, %s products total.\n", page.Page, format.Count(page.Total))
			}
			return nil
		},
	}
	listCmd.Flags().StringVar(&listCategory, "category", "", "Filter by category slug")
	listCmd.Flags().StringVar(&listSearch, "search", "", "Search in name and description")
	listCmd.Flags().IntVar(&listPage, "page", 1, "Page number")
	listCmd.Flags().IntVar(&listPerPage, "per-page", 20, "Results per page")
	productsCmd.AddCommand(listCmd)

	productsCmd.AddCommand(&cobra.Command{
		Use:   "show <id>",
		Short: "Show one product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			client, st, _, err := newClient(ctx)
			if err != nil {
				return err
			}
			defer st.Close()

			p, err := client.GetProduct(ctx, args[0])
			if err != nil {
				return err
			}
			fmt.Printf("%s\n", p.Name)
			fmt.Printf("Price: %s\n", format.Money(p.Price, p.Currency))
			fmt.Printf("Stock: %d\n", p.Stock)
			if p.Description != "" {
				fmt.Printf("\n%s\n", p.Description)
			}
			return nil
		},
	})
	rootCmd.AddCommand(productsCmd)

	rootCmd.AddCommand(&cobra.Command{
		Use:   "categories",
		Short: "List catalog categories",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			client, st, _, err := newClient(ctx)
			if err != nil {
				return err
			}
			defer st.Close()

			cats, err := client.ListCategories(ctx)
			if err != nil {
				return err
			}
			w := newTabWriter()
			fmt.Fprintln(w, "ID\tName\tSlug")
			for _, c := range cats {
				fmt.Fprintf(w, "%s\t%s\t%s\n", c.ID, c.Name, c.Slug)
			}
			w.Flush()
			return nil
		},
	})
}
