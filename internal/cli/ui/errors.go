package ui

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/adeccscholar/adecc-DataDictionary-sub000/internal/orm/schema"
)

// ErrorLevel represents the severity of a message
type ErrorLevel int

const (
	ErrorLevelError ErrorLevel = iota
	ErrorLevelWarning
	ErrorLevelInfo
)

// ErrorOptions configures the message formatting
type ErrorOptions struct {
	Level        ErrorLevel
	Context      string
	Problem      string
	Details      []string
	Suggestions  []string
	HelpCommands []string
	NoColor      bool
}

// FormatError renders a message with optional details, suggestions and
// help commands
//
//	✗ TABLE NOT FOUND: not found: table "Adress" in dictionary Sample
//
//	   Did you mean: Address?
//
//	   → List tables: datadict inspect
func FormatError(opts ErrorOptions) string {
	var b strings.Builder

	var attrs []color.Attribute
	var symbol string
	switch opts.Level {
	case ErrorLevelWarning:
		attrs, symbol = []color.Attribute{color.FgYellow}, "!"
	case ErrorLevelInfo:
		attrs, symbol = []color.Attribute{color.FgCyan}, "i"
	default:
		attrs, symbol = []color.Attribute{color.FgRed}, "✗"
	}
	head := paint(opts.NoColor, append(attrs, color.Bold)...)
	body := paint(opts.NoColor, attrs...)

	if opts.Context != "" {
		head.Fprintf(&b, "%s %s: %s\n", symbol, strings.ToUpper(opts.Context), opts.Problem)
	} else {
		head.Fprintf(&b, "%s %s\n", symbol, opts.Problem)
	}

	if len(opts.Details) > 0 {
		b.WriteString("\n")
		for _, detail := range opts.Details {
			body.Fprintf(&b, "   - %s\n", detail)
		}
	}

	if len(opts.Suggestions) > 0 {
		b.WriteString("\n")
		paint(opts.NoColor, color.FgYellow).Fprintf(&b, "   Did you mean: %s?\n", strings.Join(opts.Suggestions, ", "))
	}

	if len(opts.HelpCommands) > 0 {
		b.WriteString("\n")
		cyan := paint(opts.NoColor, color.FgCyan)
		for _, cmd := range opts.HelpCommands {
			cyan.Fprintf(&b, "   → %s\n", cmd)
		}
	}

	return b.String()
}

// WriteError writes a formatted message to the writer
func WriteError(w io.Writer, opts ErrorOptions) {
	fmt.Fprint(w, FormatError(opts))
}

// FormatSuccess creates a success message
func FormatSuccess(message string, noColor bool) string {
	return paint(noColor, color.FgGreen, color.Bold).Sprintf("✓ %s", message)
}

// WriteSuccess writes a success message to the writer
func WriteSuccess(w io.Writer, message string, noColor bool) {
	fmt.Fprintln(w, FormatSuccess(message, noColor))
}

// Info creates an info message
func Info(message string, noColor bool) string {
	return FormatError(ErrorOptions{Level: ErrorLevelInfo, Problem: message, NoColor: noColor})
}

// Warning creates a warning message
func Warning(message string, noColor bool) string {
	return FormatError(ErrorOptions{Level: ErrorLevelWarning, Problem: message, NoColor: noColor})
}

// DictionaryError describes a dictionary failure. Errors joined by the
// builder are listed one per line. For unknown tables, close names out of
// tableNames are suggested.
func DictionaryError(err error, tableNames []string, noColor bool) string {
	opts := ErrorOptions{
		Level:   ErrorLevelError,
		Context: contextOf(err),
		Problem: err.Error(),
		NoColor: noColor,
	}

	var buildErr *schema.BuildError
	if errors.As(err, &buildErr) {
		opts.Problem = fmt.Sprintf("dictionary %s has %d errors", buildErr.Dictionary, len(buildErr.Errors))
		for _, e := range buildErr.Errors {
			opts.Details = append(opts.Details, e.Error())
		}
	}

	var dictErr *schema.Error
	if errors.As(err, &dictErr) && errors.Is(dictErr, schema.ErrNotFound) && dictErr.Object == "table" {
		opts.Suggestions = Suggest(dictErr.Name, tableNames, 3)
	}

	switch {
	case errors.Is(err, schema.ErrCycleDetected):
		opts.HelpCommands = []string{"Show dependencies: datadict order --report"}
	case errors.Is(err, schema.ErrNotFound):
		opts.HelpCommands = []string{"List tables: datadict inspect"}
	default:
		opts.HelpCommands = []string{"Get help: datadict --help"}
	}

	return FormatError(opts)
}

// ConfigError creates a configuration error
func ConfigError(err error, noColor bool) string {
	return FormatError(ErrorOptions{
		Level:   ErrorLevelError,
		Context: "configuration error",
		Problem: err.Error(),
		HelpCommands: []string{
			"View config: cat datadict.yaml",
			"Get help: datadict --help",
		},
		NoColor: noColor,
	})
}

func contextOf(err error) string {
	var dictErr *schema.Error
	switch {
	case errors.Is(err, schema.ErrCycleDetected):
		return "cycle detected"
	case errors.As(err, &dictErr) && errors.Is(dictErr, schema.ErrNotFound):
		return dictErr.Object + " not found"
	case errors.Is(err, schema.ErrDuplicateKey):
		return "duplicate name"
	case errors.Is(err, schema.ErrEmptyResult):
		return "empty result"
	case errors.Is(err, schema.ErrNotImplemented):
		return "not implemented"
	default:
		return "dictionary error"
	}
}
