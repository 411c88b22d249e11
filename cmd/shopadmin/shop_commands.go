package main

import (
	"fmt"
	"strconv"

	"github.com/jrsteele09/go-shop-admin/shop"
	"github.com/spf13/cobra"
)

func intArg(args []string, i int, name string) (int, error) {
	v, err := strconv.Atoi(args[i])
	if err != nil {
		return 0, fmt.Errorf("%s must be a number: %q", name, args[i])
	}
	return v, nil
}

func newProductsCommand(app appGetter) *cobra.Command {
	productsCmd := &cobra.Command{
		Use:   "products",
		Short: "Browse and manage products",
	}

	var categoryID int
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List products, optionally within one category",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := app().shop
			var (
				products []shop.Product
				err      error
			)
			if categoryID > 0 {
				products, err = svc.ListProductsByCategory(cmd.Context(), categoryID)
			} else {
				products, err = svc.ListProducts(cmd.Context())
			}
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), products)
		},
	}
	listCmd.Flags().IntVar(&categoryID, "category", 0, "Only products in this category")

	getCmd := &cobra.Command{
		Use:   "get <id>",
		Short: "Show one product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := intArg(args, 0, "id")
			if err != nil {
				return err
			}
			product, err := app().shop.GetProduct(cmd.Context(), id)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), product)
		},
	}

	deleteCmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := intArg(args, 0, "id")
			if err != nil {
				return err
			}
			return app().shop.DeleteProduct(cmd.Context(), id)
		},
	}

	productsCmd.AddCommand(listCmd, getCmd, deleteCmd)
	return productsCmd
}

func newCategoriesCommand(app appGetter) *cobra.Command {
	categoriesCmd := &cobra.Command{
		Use:   "categories",
		Short: "Browse and manage categories",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List categories",
		RunE: func(cmd *cobra.Command, args []string) error {
			categories, err := app().shop.ListCategories(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), categories)
		},
	}

	var in shop.CategoryInput
	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create a category",
		RunE: func(cmd *cobra.Command, args []string) error {
			category, err := app().shop.CreateCategory(cmd.Context(), in)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), category)
		},
	}
	createCmd.Flags().StringVar(&in.Name, "name", "", "Category name")
	createCmd.Flags().StringVar(&in.Description, "description", "", "Category description")
	_ = createCmd.MarkFlagRequired("name")

	categoriesCmd.AddCommand(listCmd, createCmd)
	return categoriesCmd
}

func newOrdersCommand(app appGetter) *cobra.Command {
	ordersCmd := &cobra.Command{
		Use:   "orders",
		Short: "Browse orders and move them through their lifecycle",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List orders",
		RunE: func(cmd *cobra.Command, args []string) error {
			orders, err := app().shop.ListOrders(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), orders)
		},
	}

	statusCmd := &cobra.Command{
		Use:   "status <id> <status>",
		Short: "Set an order's status (pendiente, en proceso, entregado, cancelado)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := intArg(args, 0, "id")
			if err != nil {
				return err
			}
			return app().shop.UpdateOrderStatus(cmd.Context(), id, args[1])
		},
	}

	ordersCmd.AddCommand(listCmd, statusCmd)
	return ordersCmd
}

func newStockCommand(app appGetter) *cobra.Command {
	stockCmd := &cobra.Command{
		Use:   "stock",
		Short: "Inspect and adjust stock levels",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List stock records",
		RunE: func(cmd *cobra.Command, args []string) error {
			records, err := app().shop.ListStock(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), records)
		},
	}

	adjustCmd := &cobra.Command{
		Use:   "adjust <product-id> <add|remove> <quantity>",
		Short: "Raise or lower a product's stock level",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			productID, err := intArg(args, 0, "product-id")
			if err != nil {
				return err
			}
			op, err := shop.ParseStockOperation(args[1])
			if err != nil {
				return err
			}
			quantity, err := intArg(args, 2, "quantity")
			if err != nil {
				return err
			}
			product, err := app().shop.AdjustStock(cmd.Context(), productID, quantity, op)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), product)
		},
	}

	stockCmd.AddCommand(listCmd, adjustCmd)
	return stockCmd
}
