package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/roach88/rigcheck/internal/build"
	"github.com/roach88/rigcheck/internal/compat"
	"github.com/roach88/rigcheck/internal/part"
	"github.com/roach88/rigcheck/internal/store"
)

// BuildsOptions holds flags shared by the builds subcommands.
type BuildsOptions struct {
	*RootOptions
	DB   string
	File string // catalog used to resolve saved parts
}

// BuildDetail is a saved build resolved against the catalog.
type BuildDetail struct {
	store.SavedBuild
	Resolved build.Snapshot `json:"resolved"`
	Missing  []string       `json:"missing,omitempty"`
	Report   compat.Report  `json:"report"`
}

// NewBuildsCommand creates the builds command group.
func NewBuildsCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &BuildsOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "builds",
		Short: "Browse the saved builds gallery",
		Long: `Browse and curate the saved builds gallery.

The gallery is a SQLite database, the same one "rigcheck serve" uses
when RIGCHECK_DB is set.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&opts.DB, "db", os.Getenv("RIGCHECK_DB"), "gallery database (default $RIGCHECK_DB)")
	cmd.PersistentFlags().StringVar(&opts.File, "file", "", "catalog file (default: built-in catalog)")

	cmd.AddCommand(newBuildsListCommand(opts))
	cmd.AddCommand(newBuildsShowCommand(opts))
	cmd.AddCommand(newBuildsSaveCommand(opts))
	cmd.AddCommand(newBuildsLikeCommand(opts))
	cmd.AddCommand(newBuildsDeleteCommand(opts))

	return cmd
}

func newBuildsListCommand(opts *BuildsOptions) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:           "list",
		Short:         "List saved builds, most liked first",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(opts, cmd, func(ctx context.Context, f *OutputFormatter, st *store.Store) error {
				builds, err := st.ListBuilds(ctx, limit)
				if err != nil {
					return storeError(f, err)
				}
				if opts.Format == "json" {
					return f.Success(builds)
				}
				if len(builds) == 0 {
					fmt.Fprintln(f.Writer, "No saved builds.")
					return nil
				}
				w := tabwriter.NewWriter(f.Writer, 0, 0, 2, ' ', 0)
				fmt.Fprintln(w, "ID\tNAME\tAUTHOR\tLIKES\tPRICE\tSAVED")
				for _, b := range builds {
					fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\t%s\n",
						b.ID, b.Name, b.Author, b.Likes, humanize.Comma(b.TotalPrice), b.CreatedAt.Format(time.DateTime))
				}
				return w.Flush()
			})
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum builds to list (0 for all)")
	return cmd
}

func newBuildsShowCommand(opts *BuildsOptions) *cobra.Command {
	var lang string
	cmd := &cobra.Command{
		Use:           "show <id>",
		Short:         "Show a saved build and check it against the current catalog",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(opts, cmd, func(ctx context.Context, f *OutputFormatter, st *store.Store) error {
				saved, err := st.GetBuild(ctx, args[0])
				if err != nil {
					return storeError(f, err)
				}
				cat, err := loadCatalog(f, opts.File)
				if err != nil {
					return err
				}

				detail := BuildDetail{SavedBuild: saved}
				snap, err := store.Resolve(cat, saved)
				var missing *store.MissingPartsError
				if errors.As(err, &missing) {
					detail.Missing = missing.Missing
				} else if err != nil {
					return WrapExitError(ExitCommandError, "failed to resolve build", err)
				}
				detail.Resolved = snap
				detail.Report = compat.New(compat.WithLanguage(compat.ParseLanguage(lang))).Check(snap)

				if opts.Format == "json" {
					return f.Success(detail)
				}
				outputBuildDetail(f, detail)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&lang, "lang", "en", "message language (en|ru)")
	return cmd
}

func newBuildsSaveCommand(opts *BuildsOptions) *cobra.Command {
	var name, author, buildFile string
	var parts []string
	cmd := &cobra.Command{
		Use:   "save",
		Short: "Save a build to the gallery",
		Long: `Save a build to the gallery.

Parts are given the same way as for "rigcheck check".

Example:
  rigcheck builds save --name "Quiet AM5" --part cpu=2 --part mb=6 --part psu=9`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(opts, cmd, func(ctx context.Context, f *OutputFormatter, st *store.Store) error {
				selection, err := collectSelection(buildFile, parts)
				if err != nil {
					_ = f.Error(ErrCodeInvalidInput, err.Error(), nil)
					return WrapExitError(ExitCommandError, "invalid build", err)
				}
				if name == "" && buildFile != "" {
					if bf, err := loadBuildFile(buildFile); err == nil {
						name = bf.Name
					}
				}
				cat, err := loadCatalog(f, opts.File)
				if err != nil {
					return err
				}
				snap, err := assemble(f, cat, selection)
				if err != nil {
					return err
				}

				saved, err := st.SaveBuild(ctx, name, author, snap)
				if err != nil {
					return storeError(f, err)
				}
				if opts.Format == "json" {
					return f.Success(saved)
				}
				fmt.Fprintf(f.Writer, "✓ Saved %q as %s\n", saved.Name, saved.ID)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "build name (defaults to the build file's name)")
	cmd.Flags().StringVar(&author, "author", "", "author shown in the gallery")
	cmd.Flags().StringVar(&buildFile, "build", "", "YAML build file")
	cmd.Flags().StringArrayVar(&parts, "part", nil, "select a part as category=id (repeatable)")
	return cmd
}

func newBuildsLikeCommand(opts *BuildsOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "like <id>",
		Short:         "Like a saved build",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(opts, cmd, func(ctx context.Context, f *OutputFormatter, st *store.Store) error {
				likes, err := st.Like(ctx, args[0])
				if err != nil {
					return storeError(f, err)
				}
				if opts.Format == "json" {
					return f.Success(map[string]any{"id": args[0], "likes": likes})
				}
				fmt.Fprintf(f.Writer, "♥ %s now has %d like(s)\n", args[0], likes)
				return nil
			})
		},
	}
}

func newBuildsDeleteCommand(opts *BuildsOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "delete <id>",
		Short:         "Remove a saved build",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(opts, cmd, func(ctx context.Context, f *OutputFormatter, st *store.Store) error {
				if err := st.DeleteBuild(ctx, args[0]); err != nil {
					return storeError(f, err)
				}
				if opts.Format == "json" {
					return f.Success(map[string]string{"id": args[0]})
				}
				fmt.Fprintf(f.Writer, "✓ Deleted %s\n", args[0])
				return nil
			})
		},
	}
}

// withStore opens the gallery, runs fn and closes the gallery again.
func withStore(opts *BuildsOptions, cmd *cobra.Command, fn func(context.Context, *OutputFormatter, *store.Store) error) error {
	f := newFormatter(opts.RootOptions, cmd)
	if opts.DB == "" {
		_ = f.Error(ErrCodeInvalidInput, "no gallery database: pass --db or set RIGCHECK_DB", nil)
		return NewExitError(ExitCommandError, "no gallery database")
	}

	f.VerboseLog("Opening gallery %s", opts.DB)
	st, err := store.Open(opts.DB)
	if err != nil {
		_ = f.Error(ErrCodeStoreFailed, err.Error(), nil)
		return WrapExitError(ExitCommandError, "failed to open gallery database", err)
	}
	defer st.Close()

	return fn(cmd.Context(), f, st)
}

// storeError reports a gallery failure with the matching error code.
func storeError(f *OutputFormatter, err error) error {
	code := ErrCodeStoreFailed
	switch {
	case errors.Is(err, store.ErrNotFound):
		code = ErrCodeNotFound
	case errors.Is(err, store.ErrEmptyBuild), errors.Is(err, store.ErrNameRequired):
		code = ErrCodeInvalidInput
	}
	return f.Fail(code, err, nil)
}

func outputBuildDetail(f *OutputFormatter, d BuildDetail) {
	w := f.Writer
	fmt.Fprintf(w, "%s (%s)\n", d.Name, d.ID)
	if d.Author != "" {
		fmt.Fprintf(w, "by %s\n", d.Author)
	}
	fmt.Fprintf(w, "%d like(s), saved %s\n\n", d.Likes, d.CreatedAt.Format(time.DateTime))

	for _, c := range part.Categories {
		id, ok := d.Parts[c]
		if !ok {
			continue
		}
		if comp, ok := d.Resolved.Get(c); ok {
			fmt.Fprintf(w, "%-14s %s (%s)\n", c, comp.Name, humanize.Comma(comp.Price))
		} else {
			fmt.Fprintf(w, "%-14s %s (no longer in catalog)\n", c, id)
		}
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Total price: %s (saved at %s)\n", humanize.Comma(d.Report.Totals.Price), humanize.Comma(d.TotalPrice))
	fmt.Fprintf(w, "Power draw:  %dW\n\n", d.Report.Totals.PowerDraw)

	if d.Report.Valid {
		fmt.Fprintln(w, "✓ No compatibility issues")
		return
	}
	for _, issue := range d.Report.Issues {
		fmt.Fprintf(w, "✗ [%s] %s\n", issue.Rule, issue.Message)
	}
}
