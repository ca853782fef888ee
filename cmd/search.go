package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/bnema/paperswipe/internal/adapters/tui/swipe"
	"github.com/bnema/paperswipe/internal/application"
	"github.com/bnema/paperswipe/internal/domain"
	"github.com/bnema/paperswipe/internal/parser"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

const fallbackWarning = "warning: the recommendation service returned no usable papers; showing placeholders"

type searchOutput struct {
	SearchID string         `json:"search_id"`
	Topic    string         `json:"topic"`
	Shape    string         `json:"shape"`
	Path     string         `json:"path"`
	Dropped  int            `json:"dropped"`
	Fallback bool           `json:"fallback"`
	Papers   []domain.Paper `json:"papers"`
}

func newSearchCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "search <topic>",
		Short: "Fetch paper recommendations for a topic and swipe through them",
		Long:  "search sends the topic to the recommendation workflow, then shows the papers as a card stack: drag right or press s to save, drag left or press d to discard.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(cmd, app, strings.Join(args, " "), asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print parsed papers as JSON instead of opening the card stack")

	return cmd
}

func runSearch(cmd *cobra.Command, app *app, topic string, asJSON bool) error {
	if strings.TrimSpace(topic) == "" {
		return domain.ErrEmptyTopic
	}
	if err := app.cfg.API.RequireCredentials(); err != nil {
		return fmt.Errorf("%w (set PAPERSWIPE_API_KEY, PAPERSWIPE_API_SECRET and PAPERSWIPE_API_FLOW_ID or edit ~/.paperswipe/config.toml)", err)
	}

	command := application.SearchCommand{Topic: topic}
	interactive := !asJSON && isTerminal(cmd.InOrStdin()) && isTerminal(cmd.OutOrStdout())

	var search *application.Search
	var err error
	if interactive {
		search, err = runSearchProgress(cmd.Context(), cmd.ErrOrStderr(), app.searchService, command)
	} else {
		search, err = app.searchService.Start(cmd.Context(), command)
	}
	if err != nil {
		return err
	}

	// the progress line already reports placeholders
	if search.Result.Fallback && !interactive {
		if _, err := fmt.Fprintln(cmd.ErrOrStderr(), fallbackWarning); err != nil {
			return err
		}
	}

	switch {
	case asJSON:
		return writeSearchJSON(cmd.OutOrStdout(), search)
	case interactive:
		return runSwipe(cmd, app, search)
	default:
		return writeSearchText(cmd.OutOrStdout(), search)
	}
}

func runSwipe(cmd *cobra.Command, app *app, search *application.Search) error {
	ctx := cmd.Context()
	model := swipe.New(search.Session, swipe.Options{
		Topic:    search.Topic,
		Fallback: search.Result.Fallback,
		OnOutcome: func(outcome domain.Outcome) error {
			return app.libraryService.Record(ctx, outcome)
		},
	})

	summary, err := swipe.Run(ctx, model, cmd.InOrStdin(), cmd.OutOrStdout())
	if err != nil {
		return fmt.Errorf("swipe papers: %w", err)
	}

	_, err = fmt.Fprintf(cmd.OutOrStdout(), "saved %d, skipped %d, %d left unreviewed (library: %s)\n",
		summary.Saved, summary.Skipped, summary.Remaining, app.cfg.Library.Path)
	return err
}

func writeSearchJSON(w io.Writer, search *application.Search) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(searchOutput{
		SearchID: search.ID,
		Topic:    search.Topic,
		Shape:    search.Result.Shape.String(),
		Path:     string(search.Result.Path),
		Dropped:  search.Result.Dropped,
		Fallback: search.Result.Fallback,
		Papers:   search.Result.Papers,
	})
}

func writeSearchText(w io.Writer, search *application.Search) error {
	if _, err := fmt.Fprintf(w, "%d papers for %q\n", len(search.Result.Papers), search.Topic); err != nil {
		return err
	}
	return writePaperList(w, search.Result.Papers)
}

func writePaperList(w io.Writer, papers []domain.Paper) error {
	for i, paper := range papers {
		meta := paper.Authors
		if year, ok := paper.YearValue(); ok {
			meta = fmt.Sprintf("%s (%d)", meta, year)
		}
		if _, err := fmt.Fprintf(w, "%d. %s\n   %s\n", i+1, paper.Title, meta); err != nil {
			return err
		}
	}
	return nil
}

func writeParseReport(w io.Writer, result parser.Result) error {
	_, err := fmt.Fprintf(w, "shape: %s\npath: %s\npapers: %d\ndropped: %d\nfallback: %t\n",
		result.Shape, result.Path, len(result.Papers), result.Dropped, result.Fallback)
	if err != nil {
		return err
	}
	return writePaperList(w, result.Papers)
}

func isTerminal(stream any) bool {
	f, ok := stream.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
