package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"emx/internal/ast"
	"emx/internal/diagfmt"
	"emx/internal/driver"
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] <expression>",
	Short: "Parse a survey expression and dump its AST",
	Long:  `Parse prints the expression tree after preprocessor normalization`,
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

func runParse(cmd *cobra.Command, args []string) error {
	result := driver.ParseExpression(args[0], maxDiagnostics(cmd))

	if result.Bag.Len() > 0 {
		result.Bag.Sort()
		diagfmt.Pretty(os.Stderr, result.Bag, result.FileSet, diagfmt.PrettyOpts{
			Color: useColor(cmd, os.Stderr),
		})
	}
	if result.Expr == nil {
		return fmt.Errorf("parse failed")
	}

	fmt.Fprintln(cmd.OutOrStdout(), ast.Dump(result.Expr))
	return nil
}
