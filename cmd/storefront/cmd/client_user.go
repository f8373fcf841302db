package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/Sentinel-Gate/storefront/internal/client/api"
	"github.com/Sentinel-Gate/storefront/internal/domain/user"
)

var (
	loginEmail    string
	loginPassword string

	registerName     string
	registerEmail    string
	registerPassword string

	profileName     string
	profileEmail    string
	profilePassword string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in and keep the session",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := session.coord.Login(clientContext(cmd), loginEmail, loginPassword)
		if err != nil {
			return err
		}
		printSession(cmd.OutOrStdout(), "Signed in as", sess)
		return nil
	},
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an account and sign in",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := session.coord.Register(clientContext(cmd), registerName, registerEmail, registerPassword)
		if err != nil {
			return err
		}
		printSession(cmd.OutOrStdout(), "Registered and signed in as", sess)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out and clear all local state",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		session.coord.Logout(clientContext(cmd))
		fmt.Fprintln(cmd.OutOrStdout(), "Signed out")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in account",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		sess := session.store.GetState().UserLogin.Data
		if sess == nil {
			return errors.New("not signed in")
		}
		printSession(cmd.OutOrStdout(), "Signed in as", sess)
		return nil
	},
}

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show or update your profile",
	Long: `Without flags, fetch and print your profile.
With --name, --email or --password, update it; the new session replaces the
stored one.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := clientContext(cmd)
		if profileName == "" && profileEmail == "" && profilePassword == "" {
			p, err := session.coord.UserDetails(ctx, "profile")
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), p)
		}
		sess, err := session.coord.UpdateProfile(ctx, api.ProfileUpdate{
			Name:     profileName,
			Email:    profileEmail,
			Password: profilePassword,
		})
		if err != nil {
			return err
		}
		printSession(cmd.OutOrStdout(), "Profile updated for", sess)
		return nil
	},
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Clear all local client state without contacting the server",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		session.store.Teardown()
		fmt.Fprintln(cmd.OutOrStdout(), "Local state cleared")
		return nil
	},
}

func printSession(w io.Writer, prefix string, sess *user.Session) {
	role := ""
	if sess.IsAdmin {
		role = " (admin)"
	}
	fmt.Fprintf(w, "%s %s <%s>%s\n", prefix, sess.Name, sess.Email, role)
}

func init() {
	loginCmd.Flags().StringVar(&loginEmail, "email", "", "account email")
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "account password")

	registerCmd.Flags().StringVar(&registerName, "name", "", "display name")
	registerCmd.Flags().StringVar(&registerEmail, "email", "", "account email")
	registerCmd.Flags().StringVar(&registerPassword, "password", "", "account password (at least 6 characters)")

	profileCmd.Flags().StringVar(&profileName, "name", "", "new display name")
	profileCmd.Flags().StringVar(&profileEmail, "email", "", "new email")
	profileCmd.Flags().StringVar(&profilePassword, "password", "", "new password")

	clientCmd.AddCommand(loginCmd, registerCmd, logoutCmd, whoamiCmd, profileCmd, resetCmd)
}
