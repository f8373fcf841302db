package cmd

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Sentinel-Gate/storefront/internal/domain/order"
)

var ordersAll bool

var ordersCmd = &cobra.Command{
	Use:   "orders",
	Short: "List your orders (or every order with --all)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := clientContext(cmd)
		var (
			orders []order.Order
			err    error
		)
		if ordersAll {
			orders, err = session.coord.OrderList(ctx)
		} else {
			orders, err = session.coord.OrderListMine(ctx)
		}
		if err != nil {
			return err
		}
		printOrders(cmd.OutOrStdout(), orders)
		return nil
	},
}

var orderCmd = &cobra.Command{
	Use:   "order <id>",
	Short: "Show an order",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		o, err := session.coord.OrderDetails(clientContext(cmd), args[0])
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), o)
	},
}

func printOrders(w io.Writer, orders []order.Order) {
	if len(orders) == 0 {
		fmt.Fprintln(w, "No orders")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tDATE\tTOTAL\tPAID\tDELIVERED")
	for _, o := range orders {
		fmt.Fprintf(tw, "%s\t%s\t%.2f\t%t\t%t\n", o.ID, o.CreatedAt.Format("2006-01-02"), o.TotalPrice, o.IsPaid, o.IsDelivered)
	}
	_ = tw.Flush()
}

func init() {
	ordersCmd.Flags().BoolVar(&ordersAll, "all", false, "list every order (admin)")
	clientCmd.AddCommand(ordersCmd, orderCmd)
}
