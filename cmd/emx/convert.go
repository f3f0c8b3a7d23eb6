package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"emx/internal/convert"
	"emx/internal/diag"
	"emx/internal/diagfmt"
	"emx/internal/driver"
	"emx/internal/source"
	"emx/internal/transpile"
)

var convertCmd = &cobra.Command{
	Use:   "convert [flags] <expression | file.emx | directory>",
	Short: "Convert survey expressions to Expression Manager syntax",
	Long: `Convert translates XLSForm-style XPath expressions into Expression
Manager scripts. The argument is a single expression (with --kind), one
logic file, or a directory of *.emx logic files.`,
	Args: cobra.ExactArgs(1),
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().String("kind", "relevance", "expression kind (relevance|constraint|calculation)")
	convertCmd.Flags().String("ui", "auto", "interactive progress for directories (auto|on|off)")
	convertCmd.Flags().Bool("no-cache", false, "bypass the disk cache")
	convertCmd.Flags().Int("jobs", 0, "parallel workers for directories (0 = CPUs)")
	convertCmd.Flags().String("lang", "", "label language for logic file rows")
	convertCmd.Flags().String("format", "pretty", "output format for logic files (pretty|tsv|json)")
}

func runConvert(cmd *cobra.Command, args []string) error {
	target := args[0]

	opts, err := driverOptions(cmd)
	if err != nil {
		return err
	}

	if info, statErr := os.Stat(target); statErr == nil {
		if info.IsDir() {
			return convertDirectory(cmd, target, opts)
		}
		if strings.HasSuffix(target, ".emx") {
			return convertLogicFile(cmd, target, opts)
		}
	}
	return convertSingle(cmd, target)
}

// driverOptions собирает настройки из манифеста и флагов; флаги
// приоритетнее.
func driverOptions(cmd *cobra.Command) (driver.Options, error) {
	opts := driver.Options{
		MaxDiagnostics: maxDiagnostics(cmd),
	}

	cacheEnabled := true
	manifest, found, err := loadProjectManifest("")
	if err != nil {
		return opts, err
	}
	if found {
		opts.Jobs = manifest.Config.Convert.Jobs
		opts.Language = manifest.Config.Convert.Language
		if manifest.Config.Convert.Cache != nil {
			cacheEnabled = *manifest.Config.Convert.Cache
		}
	}

	if jobs, _ := cmd.Flags().GetInt("jobs"); jobs > 0 {
		opts.Jobs = jobs
	}
	if lang, _ := cmd.Flags().GetString("lang"); lang != "" {
		opts.Language = lang
	}
	if noCache, _ := cmd.Flags().GetBool("no-cache"); noCache {
		cacheEnabled = false
	}
	if timings, _ := cmd.Root().PersistentFlags().GetBool("timings"); timings {
		opts.Timings = true
	}

	if cacheEnabled {
		cache, err := driver.OpenDiskCache("emx")
		if err == nil {
			opts.Cache = cache
		}
		// Недоступный кэш не повод отказывать в конверсии.
	}
	return opts, nil
}

func convertSingle(cmd *cobra.Command, expr string) error {
	kindFlag, err := cmd.Flags().GetString("kind")
	if err != nil {
		return err
	}
	kind, ok := transpile.ParseKind(strings.ToLower(strings.TrimSpace(kindFlag)))
	if !ok {
		return fmt.Errorf("unknown kind %q (expected relevance|constraint|calculation)", kindFlag)
	}

	bag := diag.NewBag(maxDiagnostics(cmd))
	conv := convert.New(source.NewFileSet(), &diag.BagReporter{Bag: bag})
	res := conv.Kind(kind, expr)

	printDiagnostics(cmd, bag, conv.Files())
	fmt.Fprintln(cmd.OutOrStdout(), res.Text)
	return nil
}

func convertLogicFile(cmd *cobra.Command, path string, opts driver.Options) error {
	res, err := driver.ConvertFile(path, opts)
	if err != nil {
		return fmt.Errorf("conversion failed: %w", err)
	}
	return emitFileResults(cmd, []*driver.FileResult{res})
}

func convertDirectory(cmd *cobra.Command, dir string, opts driver.Options) error {
	uiFlag, _ := cmd.Flags().GetString("ui")
	mode, err := readUIMode(uiFlag)
	if err != nil {
		return err
	}

	var results []*driver.FileResult
	if shouldUseTUI(mode) {
		files, listErr := driver.ListLogicFiles(dir)
		if listErr != nil {
			return listErr
		}
		results, err = runConvertDirWithUI(cmd.Context(), "converting "+dir, dir, files, opts)
	} else {
		results, err = driver.ConvertDir(cmd.Context(), dir, opts)
	}
	if err != nil {
		return fmt.Errorf("conversion failed: %w", err)
	}
	return emitFileResults(cmd, results)
}

func emitFileResults(cmd *cobra.Command, results []*driver.FileResult) error {
	format, _ := cmd.Flags().GetString("format")
	quiet, _ := cmd.Root().PersistentFlags().GetBool("quiet")

	hadErrors := false
	for _, res := range results {
		if res.Bag != nil && res.Bag.Len() > 0 && !quiet {
			res.Bag.Sort()
			printDiagnostics(cmd, res.Bag, nil)
		}
		if res.Bag != nil && res.Bag.HasErrors() {
			hadErrors = true
		}
	}

	switch format {
	case "pretty":
		emitPretty(cmd, results)
	case "tsv":
		emitTSV(cmd, results)
	case "json":
		if err := emitJSON(cmd, results); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown format: %s", format)
	}

	if hadErrors {
		return fmt.Errorf("conversion finished with errors")
	}
	return nil
}

func printDiagnostics(cmd *cobra.Command, bag *diag.Bag, fs *source.FileSet) {
	if bag.Len() == 0 {
		return
	}
	quiet, _ := cmd.Root().PersistentFlags().GetBool("quiet")
	if quiet && !bag.HasErrors() {
		return
	}
	diagfmt.Pretty(cmd.ErrOrStderr(), bag, fs, diagfmt.PrettyOpts{
		Color:     useColor(cmd, os.Stderr),
		ShowNotes: true,
	})
}
