package commands

import (
	"errors"
	"fmt"
	"io"
	"runtime"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/adeccscholar/adecc-DataDictionary-sub000/internal/cli/ui"
)

var (
	// Version information - set at build time
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
	GoVersion = "unknown"
)

// NewRootCommand creates the root command
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "datadict",
		Short: "Relational data dictionary compiler",
		Long: color.CyanString(`datadict - relational data dictionary compiler

datadict holds a relational schema as metadata (datatypes, tables,
attributes, references, indices) and derives everything else from it.

Features:
  • Dependency order of tables with cycle detection
  • CREATE / DROP scripts with keys, indices and checks
  • Parameterized CRUD statements per table
  • YAML seed files or the built-in sample dictionary`),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "config file (default: ./datadict.yaml)")
	flags.String("seed", "", "YAML seed file (default: built-in sample)")
	flags.BoolP("verbose", "v", false, "enable development logging")
	flags.Bool("no-color", false, "disable colored output")

	rootCmd.AddCommand(NewVersionCommand())
	rootCmd.AddCommand(NewOrderCommand())
	rootCmd.AddCommand(NewGenerateCommand())
	rootCmd.AddCommand(NewInspectCommand())

	return rootCmd
}

// NewVersionCommand creates the version command
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  "Display the datadict version, Git commit, build date, and Go version",
		Run: func(cmd *cobra.Command, args []string) {
			goVer := GoVersion
			if goVer == "unknown" {
				goVer = runtime.Version()
			}

			noColor, _ := cmd.Flags().GetBool("no-color")
			kv := ui.NewKeyValueTable(cmd.OutOrStdout(), noColor)
			kv.AddRow("datadict version", Version)
			kv.AddRow("Git commit", GitCommit)
			kv.AddRow("Build date", BuildDate)
			kv.AddRow("Go version", goVer)
			kv.Render()
		},
	}
}

// Execute runs the root command
func Execute() error {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		reportError(rootCmd, err)
		return err
	}
	return nil
}

// reportError renders err on the command's error stream
func reportError(cmd *cobra.Command, err error) {
	noColor, _ := cmd.PersistentFlags().GetBool("no-color")
	renderError(cmd.ErrOrStderr(), err, noColor)
}

func renderError(w io.Writer, err error, noColor bool) {
	var de *dictionaryError
	var ce *configError
	switch {
	case errors.As(err, &de):
		fmt.Fprint(w, ui.DictionaryError(de.err, de.tableNames, noColor))
	case errors.As(err, &ce):
		fmt.Fprint(w, ui.ConfigError(ce.err, noColor))
	default:
		errorColor := color.New(color.FgRed, color.Bold)
		if noColor {
			errorColor.DisableColor()
		}
		errorColor.Fprintf(w, "Error: %v\n", err)
	}
}
