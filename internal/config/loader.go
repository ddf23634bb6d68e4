package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// FileName is the configuration file name searched for in the working
// directory and $HOME.
const FileName = ".casegrid.yaml"

// configName is the config file name without extension.
const configName = ".casegrid"

// configType is the config file format.
const configType = "yaml"

// envPrefix is the environment variable prefix for casegrid settings.
const envPrefix = "CASEGRID"

// Load loads configuration from defaults, the config file and
// CASEGRID_* environment variables, in increasing precedence.
// If configPath is non-empty, it is used as the explicit config file
// path. Otherwise the file is searched in the working directory and
// $HOME. A missing config file is not an error.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	applyDefaults(v, DefaultConfig())

	v.SetConfigType(configType)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		if _, err := os.Stat(configPath); err != nil {
			return nil, fmt.Errorf("config file: %w", err)
		}
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName(configName)
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return &cfg, nil
}

// applyDefaults registers every key so AutomaticEnv can override
// keys that appear in no config file.
func applyDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("project.name", d.Project.Name)
	v.SetDefault("project.version", d.Project.Version)
	v.SetDefault("project.branch", d.Project.Branch)
	v.SetDefault("project.build", d.Project.Build)

	v.SetDefault("inputs.results_dir", d.Inputs.ResultsDir)
	v.SetDefault("inputs.docs_dir", d.Inputs.DocsDir)
	v.SetDefault("inputs.coverage_dir", d.Inputs.CoverageDir)
	v.SetDefault("inputs.namespace_prefix", d.Inputs.NamespacePrefix)
	v.SetDefault("inputs.include", d.Inputs.Include)
	v.SetDefault("inputs.exclude", d.Inputs.Exclude)
	v.SetDefault("inputs.scan_timeout", d.Inputs.ScanTimeout)

	v.SetDefault("matching.markers", d.Matching.Markers)
	v.SetDefault("matching.min_substring_length", d.Matching.MinSubstringLength)

	v.SetDefault("matrix.selected_token", d.Matrix.SelectedToken)
	v.SetDefault("matrix.sheet_name_base", d.Matrix.SheetNameBase)
	v.SetDefault("matrix.sheet_name_max", d.Matrix.SheetNameMax)

	v.SetDefault("output.path", d.Output.Path)
	v.SetDefault("output.format", d.Output.Format)
}
