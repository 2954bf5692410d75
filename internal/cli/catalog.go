package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// CatalogOptions holds flags for the catalog command.
type CatalogOptions struct {
	*RootOptions
	Config string
}

// CatalogAnimal is one animal entry in the catalog payload.
type CatalogAnimal struct {
	Name         string   `json:"name"`
	Species      string   `json:"species"`
	FavoriteToys []string `json:"favorite_toys"`
	QuotaLimited bool     `json:"quota_limited"`
	Companion    bool     `json:"needs_companion"`
}

// CatalogData is the payload for the catalog command.
type CatalogData struct {
	Animals []CatalogAnimal `json:"animals"`
	Toys    []string        `json:"toys"`
}

// NewCatalogCommand creates the catalog command.
func NewCatalogCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CatalogOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Show the active catalog and toy set",
		Long: `Show the animals available for adoption and the valid toy tokens.

With --config, loads and validates a CUE catalog file instead of the
built-in catalog, so the command doubles as a config checker.

Examples:
  abrigo catalog
  abrigo catalog --config ./shelter.cue
  abrigo catalog --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCatalog(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Config, "config", "", "CUE catalog config file (default: built-in catalog)")

	return cmd
}

func runCatalog(opts *CatalogOptions, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	cat, err := loadCatalog(opts.Config)
	if err != nil {
		if outErr := formatter.Error(ErrCodeConfig, err.Error(), nil); outErr != nil {
			return WrapExitError(ExitCommandError, "failed to write output", outErr)
		}
		return WrapExitError(ExitCommandError, "invalid catalog config", err)
	}

	data := CatalogData{Toys: cat.Toys()}
	for _, a := range cat.Animals() {
		data.Animals = append(data.Animals, CatalogAnimal{
			Name:         a.Name,
			Species:      string(a.Species),
			FavoriteToys: a.FavoriteToys,
			QuotaLimited: cat.QuotaLimited(a.Species),
			Companion:    cat.NeedsCompanion(a.Species),
		})
	}

	if formatter.Format == "json" {
		return formatter.Success(data)
	}

	fmt.Fprintf(formatter.Writer, "Toys: %s\n\n", strings.Join(data.Toys, ", "))
	for _, a := range data.Animals {
		notes := ""
		if a.QuotaLimited {
			notes = " [max 1 per adopter]"
		}
		if a.Companion {
			notes = " [needs companion]"
		}
		fmt.Fprintf(formatter.Writer, "%-6s %-8s %s%s\n",
			a.Name, a.Species, strings.Join(a.FavoriteToys, ", "), notes)
	}
	return nil
}
