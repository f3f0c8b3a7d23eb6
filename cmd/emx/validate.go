package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"emx/internal/validate"
)

var validateCmd = &cobra.Command{
	Use:   "validate [flags] <expression>",
	Short: "Statically check an Expression Manager script",
	Long: `Validate checks a generated Expression Manager script without
executing it: balanced delimiters, quote state, known function names.
Extra project-specific functions come from [validate].extra_functions
in emx.toml.`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	expr := args[0]

	var extra []string
	manifest, found, err := loadProjectManifest("")
	if err != nil {
		return err
	}
	if found {
		extra = manifest.Config.Validate.ExtraFunctions
	}

	findings := validate.CheckWith(expr, extra)
	if len(findings) == 0 {
		quiet, _ := cmd.Root().PersistentFlags().GetBool("quiet")
		if !quiet {
			fmt.Fprintln(cmd.OutOrStdout(), "ok")
		}
		return nil
	}

	for _, finding := range findings {
		fmt.Fprintln(cmd.OutOrStdout(), finding)
	}
	return fmt.Errorf("%d finding(s)", len(findings))
}
