package commands

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/AlecAivazis/survey/v2"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/adeccscholar/adecc-DataDictionary-sub000/internal/orm/codegen"
	"github.com/adeccscholar/adecc-DataDictionary-sub000/internal/watch"
)

// scriptKinds lists the scripts generate can write, in writing order
var scriptKinds = []string{"create", "drop", "statements"}

// generateOptions holds the flags of the generate command
type generateOptions struct {
	output      string
	only        string
	toStdout    bool
	force       bool
	interactive bool
	watch       bool
}

// NewGenerateCommand creates the generate command
func NewGenerateCommand() *cobra.Command {
	opts := &generateOptions{}

	cmd := &cobra.Command{
		Use:     "generate",
		Aliases: []string{"g"},
		Short:   "Generate SQL scripts from the dictionary",
		Long: `Generate the SQL scripts of the dictionary into the output directory.

Scripts:
  create      - tables, keys, indices, checks, foreign keys, seed values, views
  drop        - foreign keys, cleanup statements and DROP in reverse order
  statements  - parameterized SELECT/INSERT/UPDATE/DELETE statements per table

With --watch the seed file is reloaded and the scripts are regenerated
whenever it changes, until interrupted.

Examples:
  datadict generate
  datadict generate --only create --stdout
  datadict generate --output build/sql --force
  datadict generate --seed schema/hr.yaml --watch
  datadict g --interactive`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			kinds := scriptKinds
			if opts.only != "" {
				if !contains(scriptKinds, opts.only) {
					return fmt.Errorf("unknown script %q, expected one of %v", opts.only, scriptKinds)
				}
				kinds = []string{opts.only}
			}

			s, err := newSession(cmd)
			if err != nil {
				return err
			}
			defer s.close()

			if opts.watch && s.seed == "" {
				return fmt.Errorf("--watch needs a seed file (--seed or the seed config key)")
			}
			if opts.output != "" {
				s.cfg.Output.Dir = opts.output
			}

			out := cmd.OutOrStdout()
			if err := generateScripts(out, s, kinds, opts); err != nil {
				return err
			}
			if !opts.watch {
				return nil
			}

			return watchSeed(cmd, s, kinds, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output directory (overrides output.dir)")
	cmd.Flags().StringVar(&opts.only, "only", "", "generate a single script: create, drop or statements")
	cmd.Flags().BoolVar(&opts.toStdout, "stdout", false, "write the scripts to standard output")
	cmd.Flags().BoolVarP(&opts.force, "force", "f", false, "overwrite existing files")
	cmd.Flags().BoolVarP(&opts.interactive, "interactive", "i", false, "ask before overwriting existing files")
	cmd.Flags().BoolVarP(&opts.watch, "watch", "w", false, "regenerate when the seed file changes")

	return cmd
}

// generateScripts renders the requested scripts of the session's
// dictionary to out or to the configured files
func generateScripts(out io.Writer, s *session, kinds []string, opts *generateOptions) error {
	gen := codegen.NewScriptGenerator(s.dict, s.logger)

	paths := map[string]string{
		"create":     s.cfg.CreateScriptPath(),
		"drop":       s.cfg.DropScriptPath(),
		"statements": s.cfg.StatementsScriptPath(),
	}

	successColor := color.New(color.FgGreen, color.Bold)
	infoColor := color.New(color.FgCyan)
	if s.noColor {
		successColor.DisableColor()
		infoColor.DisableColor()
	}

	for _, kind := range kinds {
		var buf bytes.Buffer
		if err := writeScript(gen, kind, &buf); err != nil {
			return s.fail(err)
		}

		if opts.toStdout {
			infoColor.Fprintf(out, "-- %s script of %s\n", kind, s.dict.Name())
			if _, err := buf.WriteTo(out); err != nil {
				return err
			}
			continue
		}

		path := paths[kind]
		write, err := confirmOverwrite(path, opts.force, opts.interactive)
		if err != nil {
			return err
		}
		if !write {
			infoColor.Fprintf(out, "Skipped %s\n", path)
			continue
		}

		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
		if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
		s.logger.Info("script written", zap.String("script", kind), zap.String("path", path))
		successColor.Fprintf(out, "✓ Created %s\n", path)
	}

	return nil
}

// watchSeed regenerates the scripts on every change of the seed file until
// the command is interrupted. Errors are reported and watching goes on.
func watchSeed(cmd *cobra.Command, s *session, kinds []string, opts *generateOptions) error {
	out := cmd.OutOrStdout()
	errOut := cmd.ErrOrStderr()

	// Files written by the previous run are ours to replace
	regenerate := *opts
	regenerate.force = true
	regenerate.interactive = false

	w, err := watch.NewFileWatcher([]string{s.seed}, s.logger, func([]string) error {
		if err := s.reload(); err != nil {
			renderError(errOut, err, s.noColor)
			return nil
		}
		if err := generateScripts(out, s, kinds, &regenerate); err != nil {
			renderError(errOut, err, s.noColor)
		}
		return nil
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Fprintf(out, "Watching %s (Ctrl+C to stop)\n", s.seed)
	return w.Run(ctx)
}

func writeScript(gen *codegen.ScriptGenerator, kind string, w io.Writer) error {
	switch kind {
	case "create":
		return gen.CreateScript(w)
	case "drop":
		return gen.DropScript(w)
	default:
		return gen.StatementsScript(w)
	}
}

// confirmOverwrite reports whether path may be written. Existing files are
// overwritten with --force, after confirmation with --interactive and
// otherwise refused.
func confirmOverwrite(path string, force, interactive bool) (bool, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) || force {
		return true, nil
	}

	if !interactive {
		return false, fmt.Errorf("file %s already exists (use --force to overwrite)", path)
	}

	overwrite := false
	prompt := &survey.Confirm{
		Message: fmt.Sprintf("%s exists. Overwrite?", path),
		Default: false,
	}
	if err := survey.AskOne(prompt, &overwrite); err != nil {
		return false, err
	}
	return overwrite, nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
