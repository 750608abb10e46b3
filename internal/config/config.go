package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// FileName is the configuration file looked up in the working directory
const FileName = ".readmegen.yaml"

// EnvPrefix prefixes environment overrides, e.g. READMEGEN_README_OUTPUT
const EnvPrefix = "READMEGEN"

// SchemaVersion is the only supported config schema
const SchemaVersion = 1

// Config represents the complete readmegen configuration
type Config struct {
	Version int `yaml:"version" mapstructure:"version"`

	Project ProjectConfig `yaml:"project" mapstructure:"project"`

	// Roots are the files and directories scanned for source lines, in order
	Roots []string `yaml:"roots" mapstructure:"roots"`

	// MissingRoot is warn or fail
	MissingRoot string `yaml:"missingRoot" mapstructure:"missingRoot"`

	// Classifier is heuristic or syntax
	Classifier string `yaml:"classifier" mapstructure:"classifier"`

	// LanguagesFile declares extra extensions (optional)
	LanguagesFile string `yaml:"languagesFile" mapstructure:"languagesFile"`

	// VersionFile holds the persisted semantic version (.yaml or .toml)
	VersionFile string `yaml:"versionFile" mapstructure:"versionFile"`

	Readme  ReadmeConfig  `yaml:"readme" mapstructure:"readme"`
	Watch   WatchConfig   `yaml:"watch" mapstructure:"watch"`
	Logging LoggingConfig `yaml:"logging" mapstructure:"logging"`
}

// ProjectConfig names the project in the README header
type ProjectConfig struct {
	Name        string `yaml:"name" mapstructure:"name"`
	Description string `yaml:"description" mapstructure:"description"`
}

// ReadmeConfig controls README assembly
type ReadmeConfig struct {
	Output               string   `yaml:"output" mapstructure:"output"`
	Fragment             string   `yaml:"fragment" mapstructure:"fragment"`
	AllowMissingFragment bool     `yaml:"allowMissingFragment" mapstructure:"allowMissingFragment"`
	Summary              []string `yaml:"summary" mapstructure:"summary"`
	WrapWidth            int      `yaml:"wrapWidth" mapstructure:"wrapWidth"`
}

// WatchConfig controls the watch command
type WatchConfig struct {
	DebounceMs int      `yaml:"debounceMs" mapstructure:"debounceMs"`
	Ignore     []string `yaml:"ignore" mapstructure:"ignore"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level string `yaml:"level" mapstructure:"level"`
	File  string `yaml:"file" mapstructure:"file"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version: SchemaVersion,
		Project: ProjectConfig{
			Name:        "speroc",
			Description: "The reference compiler for the spero language",
		},
		Roots:         []string{"incl", "src", "main.cpp", "test.rb"},
		MissingRoot:   "warn",
		Classifier:    "heuristic",
		LanguagesFile: "languages.toml",
		VersionFile:   ".readmegen/version.yaml",
		Readme: ReadmeConfig{
			Output:   "README.md",
			Fragment: "_readme.md",
			Summary:  []string{".h", ".cpp", ".rb"},
		},
		Watch: WatchConfig{
			DebounceMs: 500,
			Ignore:     []string{"*.swp", "*.tmp", "*~", ".git/**", ".readmegen/**"},
		},
		Logging: LoggingConfig{
			Level: "warn",
		},
	}
}

// setDefaults registers every default so env overrides and partial files work.
func setDefaults(v *viper.Viper) {
	d := DefaultConfig()
	v.SetDefault("version", d.Version)
	v.SetDefault("project.name", d.Project.Name)
	v.SetDefault("project.description", d.Project.Description)
	v.SetDefault("roots", d.Roots)
	v.SetDefault("missingRoot", d.MissingRoot)
	v.SetDefault("classifier", d.Classifier)
	v.SetDefault("languagesFile", d.LanguagesFile)
	v.SetDefault("versionFile", d.VersionFile)
	v.SetDefault("readme.output", d.Readme.Output)
	v.SetDefault("readme.fragment", d.Readme.Fragment)
	v.SetDefault("readme.allowMissingFragment", d.Readme.AllowMissingFragment)
	v.SetDefault("readme.summary", d.Readme.Summary)
	v.SetDefault("readme.wrapWidth", d.Readme.WrapWidth)
	v.SetDefault("watch.debounceMs", d.Watch.DebounceMs)
	v.SetDefault("watch.ignore", d.Watch.Ignore)
	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.file", d.Logging.File)
}

// LoadConfig loads configuration from configFile, or from .readmegen.yaml in
// dir when configFile is empty. A .env file in dir is loaded into the
// environment first; READMEGEN_* variables override file values.
func LoadConfig(dir string, configFile string) (*Config, error) {
	if err := godotenv.Load(filepath.Join(dir, ".env")); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(strings.TrimSuffix(FileName, filepath.Ext(FileName)))
		v.SetConfigType("yaml")
		v.AddConfigPath(dir)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Save writes the configuration as YAML to path
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Version != SchemaVersion {
		return &ConfigError{Field: "version", Message: "unsupported config version"}
	}
	if len(c.Roots) == 0 {
		return &ConfigError{Field: "roots", Message: "at least one root is required"}
	}
	switch c.MissingRoot {
	case "warn", "fail":
	default:
		return &ConfigError{Field: "missingRoot", Message: "must be warn or fail, got '" + c.MissingRoot + "'"}
	}
	switch c.Classifier {
	case "heuristic", "syntax":
	default:
		return &ConfigError{Field: "classifier", Message: "must be heuristic or syntax, got '" + c.Classifier + "'"}
	}
	if c.Readme.Output == "" {
		return &ConfigError{Field: "readme.output", Message: "must not be empty"}
	}
	if c.Readme.WrapWidth < 0 {
		return &ConfigError{Field: "readme.wrapWidth", Message: "must not be negative"}
	}
	if c.Watch.DebounceMs < 0 {
		return &ConfigError{Field: "watch.debounceMs", Message: "must not be negative"}
	}
	for _, ext := range c.Readme.Summary {
		if !strings.HasPrefix(ext, ".") {
			return &ConfigError{Field: "readme.summary", Message: "extension '" + ext + "' must start with a dot"}
		}
	}
	return nil
}

// ConfigError represents a configuration error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return "config error in field '" + e.Field + "': " + e.Message
}
