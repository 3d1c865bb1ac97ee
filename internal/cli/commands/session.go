package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/adeccscholar/adecc-DataDictionary-sub000/internal/cli/config"
	"github.com/adeccscholar/adecc-DataDictionary-sub000/internal/loader"
	"github.com/adeccscholar/adecc-DataDictionary-sub000/internal/orm/schema"
	"github.com/adeccscholar/adecc-DataDictionary-sub000/internal/seed"
)

// session bundles what every dictionary command needs: the configuration,
// the logger and the frozen dictionary
type session struct {
	cfg     *config.Config
	logger  *zap.Logger
	dict    *schema.Dictionary
	seed    string
	noColor bool
}

// dictionaryError marks errors raised by the dictionary so Execute can
// render them with suggestions
type dictionaryError struct {
	err        error
	tableNames []string
}

func (e *dictionaryError) Error() string { return e.err.Error() }
func (e *dictionaryError) Unwrap() error { return e.err }

// configError marks errors raised while loading the configuration
type configError struct {
	err error
}

func (e *configError) Error() string { return e.err.Error() }
func (e *configError) Unwrap() error { return e.err }

// newSession loads the configuration and the dictionary named by the
// --seed flag, the seed config key or, when both are empty, the built-in
// sample
func newSession(cmd *cobra.Command) (*session, error) {
	flags := cmd.Flags()
	configFile, _ := flags.GetString("config")
	seedFile, _ := flags.GetString("seed")
	verbose, _ := flags.GetBool("verbose")
	noColor, _ := flags.GetBool("no-color")

	var cfg *config.Config
	var err error
	if configFile != "" {
		cfg, err = config.LoadFile(configFile)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, &configError{err: err}
	}

	logger := zap.NewNop()
	if verbose || cfg.Log.Verbose {
		if logger, err = zap.NewDevelopment(); err != nil {
			return nil, fmt.Errorf("failed to create logger: %w", err)
		}
	}

	if seedFile == "" {
		seedFile = cfg.Seed
	}

	s := &session{cfg: cfg, logger: logger, seed: seedFile, noColor: noColor}
	if err := s.reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// reload rebuilds the dictionary from the seed file or the built-in sample.
// On failure the previous dictionary stays in place.
func (s *session) reload() error {
	var dict *schema.Dictionary
	var err error
	if s.seed == "" {
		s.logger.Debug("loading built-in sample dictionary")
		dict, err = seed.Sample()
	} else {
		s.logger.Debug("loading seed file", zap.String("path", s.seed))
		dict, err = loader.LoadFile(s.seed)
	}
	if err != nil {
		return &dictionaryError{err: err}
	}

	s.logger.Info("dictionary loaded",
		zap.String("dictionary", dict.Name()),
		zap.Int("tables", dict.Count()),
	)
	s.dict = dict
	return nil
}

// fail wraps a dictionary error with the table names used for suggestions
func (s *session) fail(err error) error {
	var de *dictionaryError
	if errors.As(err, &de) {
		return err
	}
	return &dictionaryError{err: err, tableNames: s.dict.TableNames()}
}

// table looks up a table by name
func (s *session) table(name string) (*schema.Table, error) {
	table, err := s.dict.FindTable(name)
	if err != nil {
		return nil, s.fail(err)
	}
	return table, nil
}

// close flushes the logger
func (s *session) close() {
	_ = s.logger.Sync()
}
