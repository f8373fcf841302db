package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Sentinel-Gate/storefront/internal/client/api"
)

var (
	adminUserName  string
	adminUserEmail string
	adminUserAdmin bool

	adminProduct api.ProductUpdate
)

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Administrator operations",
}

var adminUsersCmd = &cobra.Command{
	Use:   "users",
	Short: "List every account",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		users, err := session.coord.UserList(clientContext(cmd))
		if err != nil {
			return err
		}
		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tNAME\tEMAIL\tADMIN")
		for _, u := range users {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%t\n", u.ID, u.Name, u.Email, u.IsAdmin)
		}
		return tw.Flush()
	},
}

var adminUserCmd = &cobra.Command{
	Use:   "user <id>",
	Short: "Show an account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := session.coord.UserDetails(clientContext(cmd), args[0])
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), p)
	},
}

var adminUserUpdateCmd = &cobra.Command{
	Use:   "user-update <id>",
	Short: "Change an account's name, email or admin flag",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		upd := api.UserUpdate{Name: adminUserName, Email: adminUserEmail}
		if cmd.Flags().Changed("admin") {
			upd.IsAdmin = &adminUserAdmin
		}
		p, err := session.coord.UserUpdate(clientContext(cmd), args[0], upd)
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), p)
	},
}

var adminUserDeleteCmd = &cobra.Command{
	Use:   "user-delete <id>",
	Short: "Delete an account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		msg, err := session.coord.UserRemove(clientContext(cmd), args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), msg)
		return nil
	},
}

var adminProductCreateCmd = &cobra.Command{
	Use:   "product-create",
	Short: "Create a sample product to edit",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := session.coord.ProductCreate(clientContext(cmd))
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Created product %s\n", p.ID)
		return nil
	},
}

var adminProductUpdateCmd = &cobra.Command{
	Use:   "product-update <id>",
	Short: "Replace a product's fields",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := session.coord.ProductUpdate(clientContext(cmd), args[0], adminProduct)
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), p)
	},
}

var adminProductDeleteCmd = &cobra.Command{
	Use:   "product-delete <id>",
	Short: "Delete a product",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		msg, err := session.coord.ProductDelete(clientContext(cmd), args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), msg)
		return nil
	},
}

var adminDeliverCmd = &cobra.Command{
	Use:   "deliver <order-id>",
	Short: "Mark an order delivered",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		o, err := session.coord.OrderDeliver(clientContext(cmd), args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Order %s delivered\n", o.ID)
		return nil
	},
}

func init() {
	adminUserUpdateCmd.Flags().StringVar(&adminUserName, "name", "", "new display name")
	adminUserUpdateCmd.Flags().StringVar(&adminUserEmail, "email", "", "new email")
	adminUserUpdateCmd.Flags().BoolVar(&adminUserAdmin, "admin", false, "grant or revoke admin")

	f := adminProductUpdateCmd.Flags()
	f.StringVar(&adminProduct.Name, "name", "", "product name")
	f.StringVar(&adminProduct.Image, "image", "", "image path")
	f.StringVar(&adminProduct.Brand, "brand", "", "brand")
	f.StringVar(&adminProduct.Category, "category", "", "category")
	f.StringVar(&adminProduct.Description, "description", "", "description")
	f.Float64Var(&adminProduct.Price, "price", 0, "price")
	f.IntVar(&adminProduct.CountInStock, "stock", 0, "count in stock")

	adminCmd.AddCommand(
		adminUsersCmd,
		adminUserCmd,
		adminUserUpdateCmd,
		adminUserDeleteCmd,
		adminProductCreateCmd,
		adminProductUpdateCmd,
		adminProductDeleteCmd,
		adminDeliverCmd,
	)
	clientCmd.AddCommand(adminCmd)
}
