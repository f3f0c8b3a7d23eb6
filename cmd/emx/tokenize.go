package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"emx/internal/diagfmt"
	"emx/internal/driver"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] <expression>",
	Short: "Tokenize a survey expression",
	Long:  `Tokenize prints the token stream of an expression after preprocessor normalization`,
	Args:  cobra.ExactArgs(1),
	RunE:  runTokenize,
}

func init() {
	tokenizeCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

func runTokenize(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}

	result := driver.TokenizeExpression(args[0], maxDiagnostics(cmd))

	// Диагностика в stderr, токены в stdout
	if result.Bag.HasErrors() || result.Bag.HasWarnings() {
		diagfmt.Pretty(os.Stderr, result.Bag, result.FileSet, diagfmt.PrettyOpts{
			Color: useColor(cmd, os.Stderr),
		})
	}

	switch format {
	case "pretty":
		return diagfmt.FormatTokensPretty(cmd.OutOrStdout(), result.Tokens, result.FileSet)
	case "json":
		return diagfmt.FormatTokensJSON(cmd.OutOrStdout(), result.Tokens)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}
