package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/roach88/rigcheck/internal/catalog"
	"github.com/roach88/rigcheck/internal/part"
)

// CatalogOptions holds flags for the catalog command.
type CatalogOptions struct {
	*RootOptions
	File     string // catalog file; empty means the built-in catalog
	Category string // restrict listing to one category
	Query    string // name filter
}

// CategoryListing is one category of the catalog output.
type CategoryListing struct {
	Category part.Category    `json:"category"`
	Parts    []part.Component `json:"parts"`
}

// NewCatalogCommand creates the catalog command.
func NewCatalogCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CatalogOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "List catalog parts",
		Long: `List the parts available for selection, grouped by category.

Uses the built-in reference catalog unless --file is given.

Examples:
  rigcheck catalog
  rigcheck catalog --category gpu
  rigcheck catalog --category cpu --query ryzen
  rigcheck catalog --file parts.yaml --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCatalog(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.File, "file", "", "catalog file (.cue, .yaml, .yml, .json)")
	cmd.Flags().StringVar(&opts.Category, "category", "", "only list this category")
	cmd.Flags().StringVar(&opts.Query, "query", "", "case-insensitive name filter")

	return cmd
}

func runCatalog(opts *CatalogOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	cat, err := loadCatalog(formatter, opts.File)
	if err != nil {
		return err
	}

	categories := cat.Categories()
	if opts.Category != "" {
		c, err := part.ParseCategory(opts.Category)
		if err != nil {
			return formatter.Fail(ErrCodeInvalidInput, err, nil)
		}
		categories = []part.Category{c}
	}

	listings := make([]CategoryListing, 0, len(categories))
	for _, c := range categories {
		parts := cat.Search(c, opts.Query)
		if opts.Query != "" && len(parts) == 0 {
			continue
		}
		listings = append(listings, CategoryListing{Category: c, Parts: parts})
	}

	if opts.Format == "json" {
		return formatter.Success(listings)
	}

	w := tabwriter.NewWriter(formatter.Writer, 0, 0, 2, ' ', 0)
	for _, l := range listings {
		fmt.Fprintf(w, "%s\n", l.Category)
		for _, p := range l.Parts {
			fmt.Fprintf(w, "  %s\t%s\t%s\t%s\n", p.ID, p.Name, humanize.Comma(p.Price), powerLabel(p))
		}
	}
	return w.Flush()
}

// powerLabel renders the power field that applies to the component.
func powerLabel(c part.Component) string {
	switch {
	case c.PowerSupplyWattage > 0:
		return fmt.Sprintf("%dW supply", c.PowerSupplyWattage)
	case c.PowerDrawWatts > 0:
		return fmt.Sprintf("%dW", c.PowerDrawWatts)
	default:
		return "-"
	}
}

// loadCatalog returns the catalog at path, or the built-in catalog when path
// is empty. Failures are reported through formatter.
func loadCatalog(formatter *OutputFormatter, path string) (*catalog.Catalog, error) {
	if path == "" {
		return catalog.Default(), nil
	}

	formatter.VerboseLog("Loading catalog %s", path)
	cat, err := catalog.LoadFile(path)
	if err != nil {
		code := ErrCodeLoadFailed
		if errors.Is(err, fs.ErrNotExist) {
			code = ErrCodeNotFound
		}
		var invalid *catalog.InvalidError
		if errors.As(err, &invalid) {
			msgs := make([]string, len(invalid.Errors))
			for i, e := range invalid.Errors {
				msgs[i] = e.Error()
			}
			_ = formatter.Error(ErrCodeCatalogErrors, "catalog is invalid", strings.Join(msgs, "; "))
			return nil, WrapExitError(ExitCommandError, "failed to load catalog", err)
		}
		return nil, formatter.Fail(code, err, nil)
	}
	return cat, nil
}
