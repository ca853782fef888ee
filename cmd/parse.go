package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

func newParseCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "parse [file]",
		Short: "Parse a saved recommendation response and report what was found",
		Long:  "parse runs the response parser over a raw API response body read from file, or from stdin when no file is given, and prints the detected shape, extraction path and papers.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := readParseInput(cmd.InOrStdin(), args)
			if err != nil {
				return err
			}

			result := app.searchService.ParseResponse(body)
			if result.Fallback {
				if _, err := fmt.Fprintln(cmd.ErrOrStderr(), fallbackWarning); err != nil {
					return err
				}
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(searchOutput{
					Shape:    result.Shape.String(),
					Path:     string(result.Path),
					Dropped:  result.Dropped,
					Fallback: result.Fallback,
					Papers:   result.Papers,
				})
			}

			return writeParseReport(cmd.OutOrStdout(), result)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")

	return cmd
}

func readParseInput(stdin io.Reader, args []string) ([]byte, error) {
	if len(args) == 0 || args[0] == "-" {
		body, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return body, nil
	}

	body, err := os.ReadFile(args[0])
	if err != nil {
		return nil, fmt.Errorf("read response file: %w", err)
	}
	return body, nil
}
