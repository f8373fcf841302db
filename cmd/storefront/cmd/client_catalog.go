package cmd

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Sentinel-Gate/storefront/internal/client/api"
	"github.com/Sentinel-Gate/storefront/internal/domain/product"
)

var (
	productsKeyword  string
	productsPage     int
	productsPageSize int

	reviewRating  int
	reviewComment string
)

var productsCmd = &cobra.Command{
	Use:   "products",
	Short: "Search the catalogue",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		page, err := session.coord.ProductList(clientContext(cmd), api.ProductQuery{
			Keyword:  productsKeyword,
			Page:     productsPage,
			PageSize: productsPageSize,
		})
		if err != nil {
			return err
		}
		w := cmd.OutOrStdout()
		printProducts(w, page.Products)
		fmt.Fprintf(w, "Page %d of %d\n", page.Page, page.Pages)
		return nil
	},
}

var topCmd = &cobra.Command{
	Use:   "top",
	Short: "Show the best-rated products",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		products, err := session.coord.ProductTopList(clientContext(cmd))
		if err != nil {
			return err
		}
		printProducts(cmd.OutOrStdout(), products)
		return nil
	},
}

var productCmd = &cobra.Command{
	Use:   "product <id>",
	Short: "Show a product with its reviews",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := session.coord.ProductDetails(clientContext(cmd), args[0])
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), p)
	},
}

var reviewCmd = &cobra.Command{
	Use:   "review <product-id>",
	Short: "Review a product",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		msg, err := session.coord.ProductCreateReview(clientContext(cmd), args[0], api.Review{
			Rating:  reviewRating,
			Comment: reviewComment,
		})
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), msg)
		return nil
	},
}

func printProducts(w io.Writer, products []product.Product) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tPRICE\tRATING\tSTOCK")
	for _, p := range products {
		fmt.Fprintf(tw, "%s\t%s\t%.2f\t%.1f (%d)\t%d\n", p.ID, p.Name, p.Price, p.Rating, p.NumReviews, p.CountInStock)
	}
	_ = tw.Flush()
}

func init() {
	productsCmd.Flags().StringVar(&productsKeyword, "keyword", "", "name filter")
	productsCmd.Flags().IntVar(&productsPage, "page", 0, "page number (1-based)")
	productsCmd.Flags().IntVar(&productsPageSize, "page-size", 0, "products per page")

	reviewCmd.Flags().IntVar(&reviewRating, "rating", 0, "rating from 1 to 5")
	reviewCmd.Flags().StringVar(&reviewComment, "comment", "", "review text")

	clientCmd.AddCommand(productsCmd, topCmd, productCmd, reviewCmd)
}
