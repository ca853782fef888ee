package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/bnema/paperswipe/internal/adapters/export"
	libraryrender "github.com/bnema/paperswipe/internal/adapters/render/library"
	"github.com/bnema/paperswipe/internal/application"
	"github.com/bnema/paperswipe/internal/domain"
	"github.com/spf13/cobra"
)

var (
	errClearNotConfirmed = errors.New("refusing to clear the library without --yes")
	errRemoveTarget      = errors.New("give either a title or --glob")
)

func newLibraryCmd(app *app) *cobra.Command {
	listOpts := &libraryListOptions{}

	cmd := &cobra.Command{
		Use:     "library",
		Aliases: []string{"lib"},
		Short:   "Browse and manage saved papers",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runLibraryList(cmd, app, *listOpts)
		},
	}
	bindLibraryListFlags(cmd, listOpts)

	cmd.AddCommand(
		newLibraryListCmd(app),
		newLibraryRemoveCmd(app),
		newLibraryClearCmd(app),
		newLibraryExportCmd(app),
		newLibraryStatsCmd(app),
	)

	return cmd
}

type libraryListOptions struct {
	search string
	sort   string
	asJSON bool
}

func bindLibraryListFlags(cmd *cobra.Command, opts *libraryListOptions) {
	cmd.Flags().StringVar(&opts.search, "search", "", "Filter by text in title, authors, abstract or tags")
	cmd.Flags().StringVar(&opts.sort, "sort", string(domain.SortNewest), "Sort order: newest, oldest, title, year")
	cmd.Flags().BoolVar(&opts.asJSON, "json", false, "Render JSON output")
}

func newLibraryListCmd(app *app) *cobra.Command {
	opts := &libraryListOptions{}

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List saved papers",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runLibraryList(cmd, app, *opts)
		},
	}
	bindLibraryListFlags(cmd, opts)

	return cmd
}

func runLibraryList(cmd *cobra.Command, app *app, opts libraryListOptions) error {
	order, err := domain.ParseLibrarySort(opts.sort)
	if err != nil {
		return err
	}
	query := domain.LibraryQuery{Search: opts.search, Sort: order}

	view, err := app.libraryService.List(cmd.Context(), query)
	if err != nil {
		return err
	}

	if opts.asJSON {
		return writeLibraryJSON(cmd.OutOrStdout(), view)
	}

	rendered, err := app.libraryRenderer(view, libraryrender.RenderOptions{Now: app.now(), Query: query})
	if err != nil {
		return fmt.Errorf("render library: %w", err)
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
	return err
}

type libraryJSON struct {
	Total  int            `json:"total"`
	Today  int            `json:"today"`
	Papers []domain.Paper `json:"papers"`
}

func writeLibraryJSON(w io.Writer, view application.LibraryView) error {
	papers := view.Papers
	if papers == nil {
		papers = []domain.Paper{}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(libraryJSON{Total: view.Stats.Total, Today: view.Stats.Today, Papers: papers})
}

func newLibraryRemoveCmd(app *app) *cobra.Command {
	var pattern string

	cmd := &cobra.Command{
		Use:     "remove [title]",
		Aliases: []string{"rm"},
		Short:   "Remove a saved paper by its exact title, or every title matching --glob",
		Args:    cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if pattern != "" {
				if len(args) > 0 {
					return errRemoveTarget
				}
				removed, err := app.libraryService.RemoveMatching(cmd.Context(), application.RemoveMatchingCommand{Pattern: pattern})
				if err != nil {
					return err
				}
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "removed %d papers matching %q\n", removed, pattern)
				return err
			}

			if len(args) == 0 {
				return errRemoveTarget
			}
			title := strings.Join(args, " ")
			if err := app.libraryService.Remove(cmd.Context(), application.RemovePaperCommand{Title: title}); err != nil {
				return err
			}
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "removed %q\n", title)
			return err
		},
	}

	cmd.Flags().StringVar(&pattern, "glob", "", "Remove every paper whose title matches this glob pattern")

	return cmd
}

func newLibraryClearCmd(app *app) *cobra.Command {
	var confirmed bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every saved paper",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !confirmed {
				return errClearNotConfirmed
			}
			if err := app.libraryService.Clear(cmd.Context()); err != nil {
				return err
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), "library cleared")
			return err
		},
	}

	cmd.Flags().BoolVarP(&confirmed, "yes", "y", false, "Confirm deleting every saved paper")

	return cmd
}

func newLibraryExportCmd(app *app) *cobra.Command {
	var format string
	var output string
	var search string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export saved papers as YAML or JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			selector := format
			if selector == "" && output != "" {
				selector = output
			}
			if selector == "" {
				selector = string(export.FormatYAML)
			}
			exportFormat, err := export.ParseFormat(selector)
			if err != nil {
				return err
			}

			view, err := app.libraryService.List(cmd.Context(), domain.LibraryQuery{Search: search, Sort: domain.SortOldest})
			if err != nil {
				return err
			}
			doc := export.NewDocument(view.Papers, app.now())

			if output == "" || output == "-" {
				return export.Write(cmd.OutOrStdout(), exportFormat, doc)
			}
			return writeExportFile(output, exportFormat, doc)
		},
	}

	cmd.Flags().StringVar(&format, "format", "", "Export format: yaml or json (default: from --output extension, else yaml)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default: stdout)")
	cmd.Flags().StringVar(&search, "search", "", "Only export papers matching this text")

	return cmd
}

func writeExportFile(path string, format export.Format, doc export.Document) (err error) {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("create export file: %w", err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close export file: %w", closeErr)
		}
	}()

	return export.Write(file, format, doc)
}

func newLibraryStatsCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show how many papers are saved",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			view, err := app.libraryService.List(cmd.Context(), domain.LibraryQuery{})
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "total: %d\ntoday: %d\nlibrary: %s\n",
				view.Stats.Total, view.Stats.Today, app.cfg.Library.Path)
			return err
		},
	}
}
