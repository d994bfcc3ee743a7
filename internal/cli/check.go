package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/roach88/rigcheck/internal/build"
	"github.com/roach88/rigcheck/internal/catalog"
	"github.com/roach88/rigcheck/internal/compat"
	"github.com/roach88/rigcheck/internal/part"
)

// CheckOptions holds flags for the check command.
type CheckOptions struct {
	*RootOptions
	Parts      []string // category=id pairs
	BuildFile  string
	File       string // catalog file
	Lang       string
	Strict     bool // enable the form-factor rule
	Dimensions bool // compare GPU length against enclosure clearance
}

// BuildFile is the YAML form of a build given to --build.
type BuildFile struct {
	Name  string            `yaml:"name"`
	Parts map[string]string `yaml:"parts"`
}

// CheckResult is the check command's output.
type CheckResult struct {
	Parts build.Snapshot `json:"parts"`
	compat.Report
}

// NewCheckCommand creates the check command.
func NewCheckCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CheckOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check a build for compatibility issues",
		Long: `Assemble a build from catalog parts and evaluate it.

Prints the selected parts, the total price and power draw, and every
compatibility issue found. Parts come from --build and --part; a --part
for a category already in the build file replaces it.

Exit codes:
  0 - No issues
  1 - The build has compatibility issues
  2 - Command error (unknown part, unreadable file, etc.)

Examples:
  rigcheck check --part cpu=1 --part mb=6
  rigcheck check --build mybuild.yaml --lang ru
  rigcheck check --build mybuild.yaml --part psu=10 --strict --dimensions`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(opts, cmd)
		},
	}

	cmd.Flags().StringArrayVar(&opts.Parts, "part", nil, "select a part as category=id (repeatable)")
	cmd.Flags().StringVar(&opts.BuildFile, "build", "", "YAML build file")
	cmd.Flags().StringVar(&opts.File, "file", "", "catalog file (default: built-in catalog)")
	cmd.Flags().StringVar(&opts.Lang, "lang", "en", "message language (en|ru)")
	cmd.Flags().BoolVar(&opts.Strict, "strict", false, "also check motherboard form factor against the enclosure")
	cmd.Flags().BoolVar(&opts.Dimensions, "dimensions", false, "compare graphics card length with enclosure clearance")

	return cmd
}

func runCheck(opts *CheckOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	selection, err := collectSelection(opts.BuildFile, opts.Parts)
	if err != nil {
		_ = formatter.Error(ErrCodeInvalidInput, err.Error(), nil)
		return WrapExitError(ExitCommandError, "invalid build", err)
	}
	if len(selection) == 0 {
		_ = formatter.Error(ErrCodeInvalidInput, "no parts selected (use --part or --build)", nil)
		return NewExitError(ExitCommandError, "no parts selected")
	}

	cat, err := loadCatalog(formatter, opts.File)
	if err != nil {
		return err
	}

	snap, err := assemble(formatter, cat, selection)
	if err != nil {
		return err
	}

	rules := compat.RuleOptions{CompareDimensions: opts.Dimensions, FormFactor: opts.Strict}
	engine := compat.New(compat.WithRules(rules.Rules()...), compat.WithLanguage(compat.ParseLanguage(opts.Lang)))
	formatter.VerboseLog("Rules: %s", strings.Join(engine.Rules(), ", "))

	result := CheckResult{Parts: snap, Report: engine.Check(snap)}

	if opts.Format == "json" {
		if err := outputCheckJSON(formatter, result); err != nil {
			return err
		}
	} else {
		outputCheckText(formatter, result)
	}

	if !result.Valid {
		return NewExitError(ExitFailure, fmt.Sprintf("build has %d issue(s)", len(result.Issues)))
	}
	return nil
}

// collectSelection merges the build file with --part flags.
func collectSelection(buildFile string, parts []string) (map[part.Category]string, error) {
	selection := make(map[part.Category]string)

	if buildFile != "" {
		bf, err := loadBuildFile(buildFile)
		if err != nil {
			return nil, err
		}
		for name, id := range bf.Parts {
			c, err := part.ParseCategory(name)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", buildFile, err)
			}
			selection[c] = id
		}
	}

	for _, p := range parts {
		name, id, ok := strings.Cut(p, "=")
		if !ok || strings.TrimSpace(id) == "" {
			return nil, fmt.Errorf("invalid --part %q: want category=id", p)
		}
		c, err := part.ParseCategory(name)
		if err != nil {
			return nil, fmt.Errorf("invalid --part %q: %w", p, err)
		}
		selection[c] = strings.TrimSpace(id)
	}

	return selection, nil
}

// assemble looks up every selected part in cat, in canonical category
// order, and returns the resulting build.
func assemble(formatter *OutputFormatter, cat *catalog.Catalog, selection map[part.Category]string) (build.Snapshot, error) {
	state := build.NewState()
	for _, c := range part.Categories {
		id, ok := selection[c]
		if !ok {
			continue
		}
		comp, err := cat.Lookup(c, id)
		if err != nil {
			_ = formatter.Error(ErrCodeNotFound, err.Error(), map[string]string{"category": string(c), "id": id})
			return build.Snapshot{}, WrapExitError(ExitCommandError, "unknown part", err)
		}
		if err := state.Select(comp); err != nil {
			return build.Snapshot{}, WrapExitError(ExitCommandError, "select failed", err)
		}
		formatter.VerboseLog("Selected %s: %s", c, comp.Name)
	}
	return state.Snapshot(), nil
}

// loadBuildFile reads a YAML build file, rejecting unknown fields.
func loadBuildFile(path string) (*BuildFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read build file: %w", err)
	}

	var bf BuildFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&bf); err != nil {
		return nil, fmt.Errorf("parse build file %s: %w", path, err)
	}
	return &bf, nil
}

// outputCheckJSON writes the result; a build with issues reports status "error".
func outputCheckJSON(formatter *OutputFormatter, result CheckResult) error {
	if result.Valid {
		return formatter.Success(result)
	}

	response := CLIResponse{
		Status: "error",
		Data:   result,
		Error: &CLIError{
			Code:    ErrCodeBuildIssues,
			Message: fmt.Sprintf("build has %d issue(s)", len(result.Issues)),
		},
	}
	encoder := json.NewEncoder(formatter.Writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(response)
}

func outputCheckText(formatter *OutputFormatter, result CheckResult) {
	w := formatter.Writer

	for _, c := range result.Parts.Components() {
		fmt.Fprintf(w, "%-14s %s (%s)\n", c.Category, c.Name, humanize.Comma(c.Price))
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Total price: %s\n", humanize.Comma(result.Totals.Price))
	fmt.Fprintf(w, "Power draw:  %dW\n", result.Totals.PowerDraw)
	fmt.Fprintln(w)

	if result.Valid {
		fmt.Fprintln(w, "✓ No compatibility issues")
		return
	}
	for _, issue := range result.Issues {
		fmt.Fprintf(w, "✗ [%s] %s\n", issue.Rule, issue.Message)
	}
}
