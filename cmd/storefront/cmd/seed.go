package cmd

import (
	"context"
	_ "embed"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/Sentinel-Gate/storefront/internal/service"
)

//go:embed catalog.yaml
var defaultCatalog []byte

var (
	seedFile  string
	seedForce bool
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load the sample catalogue and admin account",
	Long: `Create the admin account and the sample products.

The admin account is created only if its email is not registered yet.
Products are only inserted into an empty catalogue unless --force is given.

Examples:
  # Built-in catalogue
  storefront --dev seed

  # Custom catalogue file
  storefront seed --file ./catalog.yaml`,
	RunE: runSeed,
}

func init() {
	seedCmd.Flags().StringVar(&seedFile, "file", "", "YAML catalogue to load instead of the built-in one")
	seedCmd.Flags().BoolVar(&seedForce, "force", false, "Insert products even if the catalogue is not empty")
	rootCmd.AddCommand(seedCmd)
}

// catalog is the seed file format.
type catalog struct {
	Admin    service.RegisterInput  `yaml:"admin"`
	Products []service.ProductInput `yaml:"products"`
}

func parseCatalog(data []byte) (*catalog, error) {
	var c catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse catalogue: %w", err)
	}
	if c.Admin.Email == "" {
		return nil, fmt.Errorf("catalogue has no admin account")
	}
	return &c, nil
}

func runSeed(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(scopeServer)
	if err != nil {
		return err
	}
	logger := newLogger(cfg)

	data := defaultCatalog
	if seedFile != "" {
		data, err = os.ReadFile(seedFile)
		if err != nil {
			return fmt.Errorf("failed to read catalogue: %w", err)
		}
	}
	c, err := parseCatalog(data)
	if err != nil {
		return err
	}

	a, err := buildApp(cfg, logger)
	if err != nil {
		return err
	}
	defer a.Close()

	return seed(cmd.Context(), a, c, seedForce, cmd.OutOrStdout(), logger)
}

func seed(ctx context.Context, a *app, c *catalog, force bool, out io.Writer, logger *slog.Logger) error {
	if ctx == nil {
		ctx = context.Background()
	}

	admin, created, err := a.users.EnsureAdmin(ctx, c.Admin)
	if err != nil {
		return fmt.Errorf("admin account: %w", err)
	}
	if created {
		fmt.Fprintf(out, "Created admin %s\n", admin.Email)
	} else {
		fmt.Fprintf(out, "Admin %s already exists\n", admin.Email)
	}

	existing, err := a.products.List(ctx, "", 1, 1)
	if err != nil {
		return fmt.Errorf("check catalogue: %w", err)
	}
	if len(existing.Products) > 0 && !force {
		fmt.Fprintln(out, "Catalogue is not empty, skipping products (use --force to insert anyway)")
		return nil
	}

	for _, in := range c.Products {
		p, err := a.products.Create(ctx, admin.ID, in)
		if err != nil {
			return fmt.Errorf("product %q: %w", in.Name, err)
		}
		logger.Debug("seeded product", "id", p.ID, "name", p.Name)
	}
	fmt.Fprintf(out, "Inserted %d products\n", len(c.Products))
	return nil
}
