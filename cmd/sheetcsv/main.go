// Package main provides the CLI entry point for sheetcsv-go.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/ukaji3/sheetcsv-go/pkg/sheetcsv"
	"github.com/ukaji3/sheetcsv-go/pkg/sheetcsv/config"
	"github.com/ukaji3/sheetcsv-go/pkg/sheetcsv/output"
)

type cliFlags struct {
	configPath string
	root       string
	sheet      string
	outputPath string
	delimiter  string
	crlf       bool
	verbose    bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	flags := &cliFlags{}

	rootCmd := &cobra.Command{
		Use:   "sheetcsv [input.xlsx]",
		Short: "Convert one worksheet of an Excel file to CSV",
		Long: `sheetcsv-go reads the cell text of one worksheet of an xlsx file
(shared and inline strings) and writes it as comma-separated lines.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args, flags)
		},
	}

	rootCmd.SilenceUsage = true

	rootCmd.PersistentFlags().StringVar(&flags.configPath, "config", "", "TOML config file")
	rootCmd.PersistentFlags().StringVar(&flags.root, "root", ".", "Project root that relative paths are resolved against")
	rootCmd.Flags().StringVar(&flags.sheet, "sheet", "", "Worksheet part name (sheet1) or sheet title (default: sheet1)")
	rootCmd.Flags().StringVarP(&flags.outputPath, "output", "o", "", "Output CSV path")
	rootCmd.Flags().StringVar(&flags.delimiter, "delimiter", "", `Field delimiter, a single character or "tab" (default ",")`)
	rootCmd.Flags().BoolVar(&flags.crlf, "crlf", false, "Terminate lines with CRLF")
	rootCmd.Flags().BoolVarP(&flags.verbose, "verbose", "v", false, "Report extraction details")

	rootCmd.AddCommand(newSheetsCmd(flags))
	return rootCmd
}

func newSheetsCmd(flags *cliFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "sheets [input.xlsx]",
		Short: "List the sheets of an Excel file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, args, flags)
			if err != nil {
				return err
			}
			sheets, err := sheetcsv.ListSheets(cfg.Input.Path)
			if err != nil {
				return fmt.Errorf("listing sheets failed: %w", err)
			}
			for _, s := range sheets {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", s.Name, s.Part)
			}
			return nil
		},
	}
}

func run(cmd *cobra.Command, args []string, flags *cliFlags) error {
	cfg, err := loadConfig(cmd, args, flags)
	if err != nil {
		return err
	}

	data, err := sheetcsv.Extract(cfg.Input.Path, sheetcsv.Options{Sheet: cfg.Input.Sheet})
	if err != nil {
		return fmt.Errorf("extraction failed: %w", err)
	}
	if flags.verbose {
		fmt.Fprintf(cmd.ErrOrStderr(), "input: %s\nsheet: %s\nrows: %d\n", cfg.Input.Path, data.Part, len(data.Rows))
	}

	comma, err := cfg.Output.Comma()
	if err != nil {
		return err
	}
	opts := output.CSVOptions{Comma: comma, UseCRLF: cfg.Output.CRLF}
	if err := output.WriteCSVFile(cfg.Output.Path, data.Rows, opts); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", cfg.Output.Path)
	return nil
}

// loadConfig merges defaults, the optional config file and explicitly set
// flags, then resolves paths against the project root.
func loadConfig(cmd *cobra.Command, args []string, flags *cliFlags) (*config.Config, error) {
	cfg := config.Default()
	if flags.configPath != "" {
		loaded, err := config.Load(flags.configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if len(args) > 0 {
		cfg.Input.Path = args[0]
	}
	if f := cmd.Flags().Lookup("sheet"); f != nil && f.Changed {
		cfg.Input.Sheet = flags.sheet
	}
	if f := cmd.Flags().Lookup("delimiter"); f != nil && f.Changed {
		cfg.Output.Delimiter = flags.delimiter
	}
	if f := cmd.Flags().Lookup("crlf"); f != nil && f.Changed {
		cfg.Output.CRLF = flags.crlf
	}
	cfg.DropDefaultOutput()
	if f := cmd.Flags().Lookup("output"); f != nil && f.Changed {
		cfg.Output.Path = flags.outputPath
	}

	resolved, err := cfg.Resolve(flags.root)
	if err != nil {
		return nil, err
	}

	// Validate input file exists
	if _, err := os.Stat(resolved.Input.Path); os.IsNotExist(err) {
		return nil, fmt.Errorf("file not found: %s", resolved.Input.Path)
	}
	return resolved, nil
}
