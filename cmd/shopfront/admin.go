package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/creamcroissant/shopfront/internal/api"
	"github.com/creamcroissant/shopfront/internal/order"
	"github.com/creamcroissant/shopfront/internal/support/format"
)

func init() {
	var adminCmd = &cobra.Command{
		Use:   "admin",
		Short: "Back-office management",
	}

	// Orders
	var adminOrdersCmd = &cobra.Command{
		Use:   "orders",
		Short: "Manage all orders",
	}

	var ordersStatus string
	var ordersPage int
	var adminOrdersList = &cobra.Command{
		Use:   "list",
		Short: "List orders across all users",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			client, st, _, err := newClient(ctx)
			if err != nil {
				return err
			}
			defer st.Close()

			page, err := client.AdminListOrders(ctx, api.AdminOrderFilter{
				Status: order.Status(strings.ToUpper(ordersStatus)),
				Page:   ordersPage,
			})
			if err != nil {
				return err
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
	adminOrdersList.Flags().StringVar(&ordersStatus, "status", "", "Filter by status")
	adminOrdersList.Flags().IntVar(&ordersPage, "page", 1, "Page number")
	adminOrdersCmd.AddCommand(adminOrdersList)

	adminOrdersCmd.AddCommand(&cobra.Command{
		Use:   "show <id>",
		Short: "Show an order with its allowed next steps",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			client, st, _, err := newClient(ctx)
			if err != nil {
				return err
			}
			defer st.Close()

			o, err := client.AdminGetOrder(ctx, args[0])
			if err != nil {
				return err
			}
			printOrderDetail(o)
			next := order.NextStatuses(o.Status)
			if len(next) == 0 {
				fmt.Println("\nFinal status, no further transitions.")
				return nil
			}
			labels := make([]string, 0, len(next))
			for _, s := range next {
				labels = append(labels, string(s))
			}
			fmt.Printf("\nAllowed next: %s\n", strings.Join(labels, ", "))
			return nil
		},
	})

	adminOrdersCmd.AddCommand(&cobra.Command{
		Use:   "set-status <id> <status>",
		Short: "Move an order to a new status",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			client, st, _, err := newClient(ctx)
			if err != nil {
				return err
			}
			defer st.Close()

			o, err := client.AdminGetOrder(ctx, args[0])
			if err != nil {
				return err
			}
			target := order.Status(strings.ToUpper(args[1]))
			updated, err := client.AdminUpdateOrderStatus(ctx, o.ID, o.Status, target)
			if err != nil {
				return err
			}
			fmt.Printf("Order %s is now %s.\n", updated.ID, updated.Status.Label())
			return nil
		},
	})
	adminCmd.AddCommand(adminOrdersCmd)

	// Products
	var adminProductsCmd = &cobra.Command{
		Use:   "products",
		Short: "Manage the catalog",
	}

	var input api.ProductInput
	bindProductFlags := func(cmd *cobra.Command) {
		cmd.Flags().StringVar(&input.Name, "name", "", "Product name")
		cmd.Flags().StringVar(&input.Description, "description", "", "Product description")
		cmd.Flags().Int64Var(&input.Price, "price", 0, "Price in minor units (cents)")
		cmd.Flags().StringVar(&input.Currency, "currency", "USD", "Currency code")
		cmd.Flags().StringVar(&input.CategoryID, "category", "", "Category ID")
		cmd.Flags().IntVar(&input.Stock, "stock", 0, "Stock level")
		cmd.Flags().StringVar(&input.ImageURL, "image", "", "Image URL")
	}

	var createProductCmd = &cobra.Command{
		Use:   "create",
		Short: "Add a product",
		RunE: func(cmd *cobra.Command, args []string) error {
			if input.Name == "" {
				return fmt.Errorf("--name is required")
			}
			ctx := cmd.Context()
			client, st, _, err := newClient(ctx)
			if err != nil {
				return err
			}
			defer st.Close()

			p, err := client.AdminCreateProduct(ctx, input)
			if err != nil {
				return err
			}
			fmt.Printf("Product %s created (%s).\n", p.Name, p.ID)
			return nil
		},
	}
	bindProductFlags(createProductCmd)
	adminProductsCmd.AddCommand(createProductCmd)

	var updateProductCmd = &cobra.Command{
		Use:   "update <id>",
		Short: "Update a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			client, st, _, err := newClient(ctx)
			if err != nil {
				return err
			}
			defer st.Close()

			p, err := client.AdminUpdateProduct(ctx, args[0], input)
			if err != nil {
				return err
			}
			fmt.Printf("Product %s updated (%s).\n", p.Name, p.ID)
			return nil
		},
	}
	bindProductFlags(updateProductCmd)
	adminProductsCmd.AddCommand(updateProductCmd)

	adminProductsCmd.AddCommand(&cobra.Command{
		Use:   "delete <id>",
		Short: "Remove a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			client, st, _, err := newClient(ctx)
			if err != nil {
				return err
			}
			defer st.Close()

			if err := client.AdminDeleteProduct(ctx, args[0]); err != nil {
				return err
			}
			fmt.Println("Product deleted.")
			return nil
		},
	})
	adminCmd.AddCommand(adminProductsCmd)

	// Categories
	var adminCategoriesCmd = &cobra.Command{
		Use:   "categories",
		Short: "Manage categories",
	}

	var categoryName, categorySlug string
	var createCategoryCmd = &cobra.Command{
		Use:   "create",
		Short: "Add a category",
		RunE: func(cmd *cobra.Command, args []string) error {
			if categoryName == "" {
				return fmt.Errorf("--name is required")
			}
			ctx := cmd.Context()
			client, st, _, err := newClient(ctx)
			if err != nil {
				return err
			}
			defer st.Close()

			c, err := client.AdminCreateCategory(ctx, categoryName, categorySlug)
			if err != nil {
				return err
			}
			fmt.Printf("Category %s created (%s).\n", c.Name, c.ID)
			return nil
		},
	}
	createCategoryCmd.Flags().StringVar(&categoryName, "name", "", "Category name")
	createCategoryCmd.Flags().StringVar(&categorySlug, "slug", "", "URL slug")
	adminCategoriesCmd.AddCommand(createCategoryCmd)

	var updateCategoryName, updateCategorySlug string
	var updateCategoryCmd = &cobra.Command{
		Use:   "update <id>",
		Short: "Rename a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			client, st, _, err := newClient(ctx)
			if err != nil {
				return err
			}
			defer st.Close()

			c, err := client.AdminUpdateCategory(ctx, args[0], updateCategoryName, updateCategorySlug)
			if err != nil {
				return err
			}
			fmt.Printf("Category %s updated (%s).\n", c.Name, c.ID)
			return nil
		},
	}
	updateCategoryCmd.Flags().StringVar(&updateCategoryName, "name", "", "Category name")
	updateCategoryCmd.Flags().StringVar(&updateCategorySlug, "slug", "", "URL slug")
	adminCategoriesCmd.AddCommand(updateCategoryCmd)

	adminCategoriesCmd.AddCommand(&cobra.Command{
		Use:   "delete <id>",
		Short: "Remove a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			client, st, _, err := newClient(ctx)
			if err != nil {
				return err
			}
			defer st.Close()

			if err := client.AdminDeleteCategory(ctx, args[0]); err != nil {
				return err
			}
			fmt.Println("Category deleted.")
			return nil
		},
	})
	adminCmd.AddCommand(adminCategoriesCmd)

	// Users
	var adminUsersCmd = &cobra.Command{
		Use:   "users",
		Short: "Manage customers",
	}

	var usersPage int
	var adminUsersList = &cobra.Command{
		Use:   "list",
		Short: "List customers",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			client, st, _, err := newClient(ctx)
			if err != nil {
				return err
			}
			defer st.Close()

			users, err := client.AdminListUsers(ctx, usersPage)
			if err != nil {
				return err
			}
			w := newTabWriter()
			fmt.Fprintln(w, "ID\tEmail\tName\tRole\tBlocked\tJoined")
			for _, u := range users {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%v\t%s\n",
					u.ID, u.Email, u.Name, u.Role, u.Blocked, u.CreatedAt.Format("2006-01-02"))
			}
			w.Flush()
			fmt.Printf("\n%s users shown.\n", format.Count(len(users)))
			return nil
		},
	}
	adminUsersList.Flags().IntVar(&usersPage, "page", 1, "Page number")
	adminUsersCmd.AddCommand(adminUsersList)

	adminUsersCmd.AddCommand(&cobra.Command{
		Use:   "block <id>",
		Short: "Block a customer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			client, st, _, err := newClient(ctx)
			if err != nil {
				return err
			}
			defer st.Close()

			u, err := client.AdminSetUserBlocked(ctx, args[0], true)
			if err != nil {
				return err
			}
			fmt.Printf("User %s blocked.\n", u.Email)
			return nil
		},
	})

	adminUsersCmd.AddCommand(&cobra.Command{
		Use:   "unblock <id>",
		Short: "Unblock a customer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			client, st, _, err := newClient(ctx)
			if err != nil {
				return err
			}
			defer st.Close()

			u, err := client.AdminSetUserBlocked(ctx, args[0], false)
			if err != nil {
				return err
			}
			fmt.Printf("User %s unblocked.\n", u.Email)
			return nil
		},
	})
	adminCmd.AddCommand(adminUsersCmd)

	rootCmd.AddCommand(adminCmd)
}
