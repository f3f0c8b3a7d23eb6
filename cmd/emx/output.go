package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"emx/internal/convert"
	"emx/internal/driver"
)

var (
	convertedColor = color.New(color.FgGreen)
	fellBackColor  = color.New(color.FgYellow)
)

// emitPretty печатает результаты по файлам в терминальном виде.
func emitPretty(cmd *cobra.Command, results []*driver.FileResult) {
	out := cmd.OutOrStdout()
	colored := useColor(cmd, os.Stdout)

	for _, res := range results {
		fmt.Fprintf(out, "%s", res.Path)
		if res.FromCache {
			fmt.Fprintf(out, " (cached)")
		}
		fmt.Fprintln(out)

		for _, row := range res.Rows {
			outcome := row.Outcome.String()
			if colored {
				if row.Outcome == convert.Converted {
					outcome = convertedColor.Sprint(outcome)
				} else {
					outcome = fellBackColor.Sprint(outcome)
				}
			}
			fmt.Fprintf(out, "  %-12s %-20s %s", row.Kind, row.Name, row.Output)
			if row.Outcome != convert.Converted {
				fmt.Fprintf(out, "  [%s]", outcome)
			}
			if row.Label != "" {
				fmt.Fprintf(out, "  # %s", row.Label)
			}
			fmt.Fprintln(out)
		}
	}
}

// emitTSV печатает результаты в том же табличном формате, что и
// входные логические файлы, плюс колонки converted и outcome.
func emitTSV(cmd *cobra.Command, results []*driver.FileResult) {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "path\tkind\tname\texpression\tconverted\toutcome\tlabel")
	for _, res := range results {
		for _, row := range res.Rows {
			fmt.Fprintf(out, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
				res.Path,
				row.Kind,
				row.Name,
				escapeTSV(row.Input),
				escapeTSV(row.Output),
				row.Outcome,
				escapeTSV(row.Label))
		}
	}
}

func escapeTSV(value string) string {
	value = strings.ReplaceAll(value, "\t", " ")
	return strings.ReplaceAll(value, "\n", " ")
}

type fileResultPayload struct {
	Path      string             `json:"path"`
	FromCache bool               `json:"from_cache,omitempty"`
	Rows      []rowResultPayload `json:"rows"`
}

type rowResultPayload struct {
	Kind    string `json:"kind"`
	Name    string `json:"name"`
	Input   string `json:"input"`
	Output  string `json:"output"`
	Outcome string `json:"outcome"`
	Label   string `json:"label,omitempty"`
}

func emitJSON(cmd *cobra.Command, results []*driver.FileResult) error {
	payload := make([]fileResultPayload, 0, len(results))
	for _, res := range results {
		entry := fileResultPayload{
			Path:      res.Path,
			FromCache: res.FromCache,
			Rows:      make([]rowResultPayload, 0, len(res.Rows)),
		}
		for _, row := range res.Rows {
			entry.Rows = append(entry.Rows, rowResultPayload{
				Kind:    row.Kind.String(),
				Name:    row.Name,
				Input:   row.Input,
				Output:  row.Output,
				Outcome: row.Outcome.String(),
				Label:   row.Label,
			})
		}
		payload = append(payload, entry)
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(payload)
}
