package config

import (
	"os"
	"path/filepath"

	"github.com/mgijax/agrexport/internal/collab"
	"github.com/mgijax/agrexport/internal/downloads"
	"github.com/spf13/viper"
)

// Config represents the complete agrexport configuration
type Config struct {
	Alliance   AllianceConfig   `mapstructure:"alliance" yaml:"alliance"`
	Output     OutputConfig     `mapstructure:"output" yaml:"output"`
	Generator  GeneratorConfig  `mapstructure:"generator" yaml:"generator"`
	Validator  ValidatorConfig  `mapstructure:"validator" yaml:"validator"`
	Distribute DistributeConfig `mapstructure:"distribute" yaml:"distribute"`
	Downloads  DownloadsConfig  `mapstructure:"downloads" yaml:"downloads"`
	Logging    LoggingConfig    `mapstructure:"logging" yaml:"logging"`
	Catalog    CatalogConfig    `mapstructure:"catalog" yaml:"catalog"`
}

// AllianceConfig identifies the submission and where it goes
type AllianceConfig struct {
	// SchemaVersion is the Alliance schema release the files conform to, e.g. "1.0.1.4".
	// Required for every run; usually given with --schema.
	SchemaVersion string `mapstructure:"schema_version" yaml:"schema_version"`
	// ReleaseVersion is the Alliance release being submitted to, e.g. "3.1.0".
	// Required for every run; usually given with --release.
	ReleaseVersion string `mapstructure:"release_version" yaml:"release_version"`
	// Organism is the provider identifier used in upload field names (default: "MGI")
	Organism string `mapstructure:"organism" yaml:"organism"`
	// FilePrefix starts every artifact name (default: "MGI")
	FilePrefix string `mapstructure:"file_prefix" yaml:"file_prefix"`
	// SubmitURL is the file management submission endpoint
	SubmitURL string `mapstructure:"submit_url" yaml:"submit_url"`
	// TokenFile holds the bearer token used for uploads
	TokenFile string `mapstructure:"token_file" yaml:"token_file"`
}

// OutputConfig controls where artifacts are written
type OutputConfig struct {
	// Dir is the parent of the versioned output directory (default: ".")
	Dir string `mapstructure:"dir" yaml:"dir"`
}

// GeneratorConfig locates the per-part generator programs
type GeneratorConfig struct {
	// BinDir is where relative generator programs are found
	BinDir string `mapstructure:"bin_dir" yaml:"bin_dir"`
	// Interpreter runs each generator program, e.g. "python3". Empty runs programs directly.
	Interpreter string `mapstructure:"interpreter" yaml:"interpreter"`
}

// ValidatorConfig locates the schema validator
type ValidatorConfig struct {
	// Command is the validator program with any leading arguments
	Command string `mapstructure:"command" yaml:"command"`
	// SchemaDir is the root of the Alliance schema checkout
	SchemaDir string `mapstructure:"schema_dir" yaml:"schema_dir"`
}

// DistributeConfig controls the local publication area
type DistributeConfig struct {
	Dir string `mapstructure:"dir" yaml:"dir"`
}

// DownloadsConfig locates the Alliance downloads bucket listed by "agrexport ls"
type DownloadsConfig struct {
	Endpoint string `mapstructure:"endpoint" yaml:"endpoint"`
	Bucket   string `mapstructure:"bucket" yaml:"bucket"`
	Region   string `mapstructure:"region" yaml:"region"`
	UseSSL   bool   `mapstructure:"use_ssl" yaml:"use_ssl"`
}

// LoggingConfig controls the run log
type LoggingConfig struct {
	// File receives the run log, appended to. Empty logs to stderr.
	File string `mapstructure:"file" yaml:"file"`
	// Level is the minimum log level: "debug", "info", "warn", "error" (default: "info")
	Level string `mapstructure:"level" yaml:"level"`
	// Format is "text" or "json" (default: "text")
	Format string `mapstructure:"format" yaml:"format"`
}

// CatalogConfig optionally replaces the built-in part catalog
type CatalogConfig struct {
	// File is an HCL catalog file. Empty uses the catalog compiled into the binary.
	File string `mapstructure:"file" yaml:"file"`
}

// Downloads returns the bucket settings in the form the downloads package takes.
func (c *DownloadsConfig) Downloads() downloads.Config {
	return downloads.Config{
		Endpoint: c.Endpoint,
		Bucket:   c.Bucket,
		Region:   c.Region,
		UseSSL:   c.UseSSL,
	}
}

// Default returns a Config with sensible default values
func Default() *Config {
	return &Config{
		Alliance: AllianceConfig{
			Organism:   "MGI",
			FilePrefix: "MGI",
			SubmitURL:  collab.DefaultSubmitURL,
		},
		Output: OutputConfig{
			Dir: ".",
		},
		Generator: GeneratorConfig{
			Interpreter: "python3",
		},
		Validator: ValidatorConfig{
			Command: "agr_validate.py",
		},
		Downloads: DownloadsConfig{
			Endpoint: downloads.DefaultEndpoint,
			Bucket:   downloads.DefaultBucket,
			Region:   downloads.DefaultRegion,
			UseSSL:   true,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// SetDefaults registers default values with viper
func SetDefaults() {
	defaults := Default()

	// Alliance defaults
	viper.SetDefault("alliance.schema_version", defaults.Alliance.SchemaVersion)
	viper.SetDefault("alliance.release_version", defaults.Alliance.ReleaseVersion)
	viper.SetDefault("alliance.organism", defaults.Alliance.Organism)
	viper.SetDefault("alliance.file_prefix", defaults.Alliance.FilePrefix)
	viper.SetDefault("alliance.submit_url", defaults.Alliance.SubmitURL)
	viper.SetDefault("alliance.token_file", defaults.Alliance.TokenFile)

	viper.SetDefault("output.dir", defaults.Output.Dir)

	viper.SetDefault("generator.bin_dir", defaults.Generator.BinDir)
	viper.SetDefault("generator.interpreter", defaults.Generator.Interpreter)

	viper.SetDefault("validator.command", defaults.Validator.Command)
	viper.SetDefault("validator.schema_dir", defaults.Validator.SchemaDir)

	viper.SetDefault("distribute.dir", defaults.Distribute.Dir)

	// Downloads bucket defaults
	viper.SetDefault("downloads.endpoint", defaults.Downloads.Endpoint)
	viper.SetDefault("downloads.bucket", defaults.Downloads.Bucket)
	viper.SetDefault("downloads.region", defaults.Downloads.Region)
	viper.SetDefault("downloads.use_ssl", defaults.Downloads.UseSSL)

	// Logging defaults
	viper.SetDefault("logging.file", defaults.Logging.File)
	viper.SetDefault("logging.level", defaults.Logging.Level)
	viper.SetDefault("logging.format", defaults.Logging.Format)

	viper.SetDefault("catalog.file", defaults.Catalog.File)
}

// Load reads the configuration from viper into a Config struct and validates it
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}

	return &cfg, nil
}

// ConfigDir returns the path to the user's config directory
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "agrexport")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".agrexport"
	}
	return filepath.Join(home, ".config", "agrexport")
}

// ConfigFile returns the path to the config file
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}
