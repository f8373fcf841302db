package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Sentinel-Gate/storefront/internal/client/actions"
	"github.com/Sentinel-Gate/storefront/internal/domain/order"
)

var (
	cartQty int

	shippingAddress order.ShippingAddress
)

var cartCmd = &cobra.Command{
	Use:   "cart",
	Short: "Manage the cart",
}

var cartAddCmd = &cobra.Command{
	Use:   "add <product-id>",
	Short: "Put a product in the cart",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		item, err := session.coord.AddToCart(clientContext(cmd), args[0], cartQty)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Added %d x %s\n", item.Qty, item.Name)
		return nil
	},
}

var cartRemoveCmd = &cobra.Command{
	Use:   "remove <product-id>",
	Short: "Take a product out of the cart",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		session.coord.RemoveFromCart(clientContext(cmd), args[0])
		fmt.Fprintln(cmd.OutOrStdout(), "Removed")
		return nil
	},
}

var cartShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the cart",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cart := session.store.GetState().Cart
		w := cmd.OutOrStdout()
		if len(cart.Items) == 0 {
			fmt.Fprintln(w, "Your cart is empty")
		} else {
			tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "PRODUCT\tNAME\tQTY\tPRICE")
			for _, it := range cart.Items {
				fmt.Fprintf(tw, "%s\t%s\t%d\t%.2f\n", it.ProductID, it.Name, it.Qty, it.Price)
			}
			_ = tw.Flush()
			fmt.Fprintf(w, "Subtotal (%d items): %.2f\n", cart.Count(), cart.Subtotal())
		}
		if cart.ShippingAddress != (order.ShippingAddress{}) {
			a := cart.ShippingAddress
			fmt.Fprintf(w, "Ship to: %s, %s %s, %s\n", a.Address, a.City, a.PostalCode, a.Country)
		}
		if cart.PaymentMethod != "" {
			fmt.Fprintf(w, "Payment: %s\n", cart.PaymentMethod)
		}
		return nil
	},
}

var cartShippingCmd = &cobra.Command{
	Use:   "shipping",
	Short: "Set the shipping address",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		session.coord.SaveShippingAddress(clientContext(cmd), shippingAddress)
		fmt.Fprintln(cmd.OutOrStdout(), "Shipping address saved")
		return nil
	},
}

var cartPaymentCmd = &cobra.Command{
	Use:   "payment <method>",
	Short: "Set the payment method",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		session.coord.SavePaymentMethod(clientContext(cmd), args[0])
		fmt.Fprintln(cmd.OutOrStdout(), "Payment method saved")
		return nil
	},
}

var checkoutCmd = &cobra.Command{
	Use:   "checkout",
	Short: "Place an order for the cart contents",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		in := actions.OrderFromCart(session.store.GetState().Cart)
		o, err := session.coord.OrderCreate(clientContext(cmd), in)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Order %s placed, total %.2f\n", o.ID, o.TotalPrice)
		return nil
	},
}

func init() {
	cartAddCmd.Flags().IntVar(&cartQty, "qty", 1, "quantity")

	cartShippingCmd.Flags().StringVar(&shippingAddress.Address, "address", "", "street address")
	cartShippingCmd.Flags().StringVar(&shippingAddress.City, "city", "", "city")
	cartShippingCmd.Flags().StringVar(&shippingAddress.PostalCode, "postal-code", "", "postal code")
	cartShippingCmd.Flags().StringVar(&shippingAddress.Country, "country", "", "country")

	cartCmd.AddCommand(cartAddCmd, cartRemoveCmd, cartShowCmd, cartShippingCmd, cartPaymentCmd)
	clientCmd.AddCommand(cartCmd, checkoutCmd)
}
