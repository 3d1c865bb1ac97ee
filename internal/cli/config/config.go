package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes the environment variables overriding config keys,
// e.g. DATADICT_OUTPUT_DIR for output.dir
const EnvPrefix = "DATADICT"

// Config represents the datadict configuration
type Config struct {
	ProjectName string       `mapstructure:"project_name"`
	Seed        string       `mapstructure:"seed"`
	Output      OutputConfig `mapstructure:"output"`
	Log         LogConfig    `mapstructure:"log"`
}

// OutputConfig names the generated script files
type OutputConfig struct {
	Dir              string `mapstructure:"dir"`
	CreateScript     string `mapstructure:"create_script"`
	DropScript       string `mapstructure:"drop_script"`
	StatementsScript string `mapstructure:"statements_script"`
}

// LogConfig represents logging configuration
type LogConfig struct {
	Verbose bool `mapstructure:"verbose"`
}

// Load loads the configuration from datadict.yml or datadict.yaml in the
// current directory
func Load() (*Config, error) {
	return load("")
}

// LoadFile loads the configuration from an explicit file
func LoadFile(path string) (*Config, error) {
	return load(path)
}

func load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("project_name", "")
	v.SetDefault("seed", "")
	v.SetDefault("output.dir", "build/sql")
	v.SetDefault("output.create_script", "create.sql")
	v.SetDefault("output.drop_script", "drop.sql")
	v.SetDefault("output.statements_script", "statements.sql")
	v.SetDefault("log.verbose", false)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("datadict")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || path != "" {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// CreateScriptPath returns the path of the create script
func (c *Config) CreateScriptPath() string {
	return filepath.Join(c.Output.Dir, c.Output.CreateScript)
}

// DropScriptPath returns the path of the drop script
func (c *Config) DropScriptPath() string {
	return filepath.Join(c.Output.Dir, c.Output.DropScript)
}

// StatementsScriptPath returns the path of the statements script
func (c *Config) StatementsScriptPath() string {
	return filepath.Join(c.Output.Dir, c.Output.StatementsScript)
}

// GetProjectRoot walks up from the working directory to the first
// directory holding datadict.yml or datadict.yaml
func GetProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		for _, name := range []string{"datadict.yml", "datadict.yaml"} {
			if _, err := os.Stat(filepath.Join(dir, name)); err == nil {
				return dir, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("not in a datadict project (no datadict.yaml found)")
		}
		dir = parent
	}
}

// validateConfig validates the configuration
func validateConfig(cfg *Config) error {
	if strings.TrimSpace(cfg.Output.Dir) == "" {
		return fmt.Errorf("output.dir must not be empty")
	}

	scripts := map[string]string{
		"output.create_script":     cfg.Output.CreateScript,
		"output.drop_script":       cfg.Output.DropScript,
		"output.statements_script": cfg.Output.StatementsScript,
	}
	seen := make(map[string]string, len(scripts))
	for _, key := range []string{"output.create_script", "output.drop_script", "output.statements_script"} {
		name := scripts[key]
		if name == "" {
			return fmt.Errorf("%s must not be empty", key)
		}
		if strings.ContainsAny(name, `/\`) {
			return fmt.Errorf("%s must be a file name, got: %s", key, name)
		}
		if other, ok := seen[name]; ok {
			return fmt.Errorf("%s and %s both write %s", other, key, name)
		}
		seen[name] = key
	}
	return nil
}
