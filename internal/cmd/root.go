// Package cmd implements the agrexport command line.
package cmd

import (
	"strings"

	"github.com/mgijax/agrexport/internal/config"
	"github.com/mgijax/agrexport/internal/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Execute runs the root command. Errors are returned unprinted; see
// Diagnostic.
func Execute() error {
	return newRootCmd().Execute()
}

// newRootCmd builds the full command tree. A fresh tree is built per
// execution so flag state never leaks between runs.
func newRootCmd() *cobra.Command {
	opts := &runOptions{}

	root := &cobra.Command{
		Use:   "agrexport",
		Short: "Export MGI data files to the Alliance of Genome Resources",
		Long: `agrexport produces, validates, reports on, submits, and publishes the
MGI data files sent to the Alliance of Genome Resources each release.

Each part of the export catalog is processed in catalog order through the
enabled stages: generate, validate, report, upload, distribute. With no stage
flags the run only creates the output directory and logs what it would skip.

Examples:
  # Generate and validate everything for schema 1.0.1.4
  agrexport --schema 1.0.1.4 --release 3.1.0 -g -v

  # Regenerate and report on BGI and phenotype only
  agrexport --schema 1.0.1.4 --release 3.1.0 -g -r -p g,p

  # Show what a full run would do without running anything
  agrexport --schema 1.0.1.4 --release 3.1.0 -gvruf -N`,
		Args:              cobra.NoArgs,
		SilenceErrors:     true,
		PersistentPreRunE: initConfig,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd, opts)
		},
	}

	pf := root.PersistentFlags()
	pf.String("config", "", "config file (default is $HOME/.config/agrexport/config.yaml)")
	pf.String("log-level", "", "minimum log level: debug, info, warn, error")
	pf.String("log-format", "", "log format: text or json")
	bindFlag(pf, "config", "config")
	bindFlag(pf, "logging.level", "log-level")
	bindFlag(pf, "logging.format", "log-format")

	f := root.Flags()
	f.BoolVarP(&opts.generate, "generate", "g", false, "run the generate stage")
	f.BoolVarP(&opts.validate, "validate", "v", false, "run the validate stage")
	f.BoolVarP(&opts.report, "report", "r", false, "run the report stage")
	f.BoolVarP(&opts.upload, "upload", "u", false, "run the upload stage")
	f.BoolVarP(&opts.distribute, "distribute", "f", false, "run the distribute stage")
	f.StringSliceVarP(&opts.parts, "parts", "p", nil, "comma separated part codes or patterns (default all)")
	f.StringVarP(&opts.count, "count", "c", "", "release count appended to the output directory")
	f.BoolVarP(&opts.dryRun, "dry-run", "N", false, "log intended actions without running them")
	f.BoolVarP(&opts.keepGoing, "keep-going", "k", false, "log generate failures as warnings and continue")
	f.StringP("output-dir", "d", "", "parent of the versioned output directory (default .)")
	f.StringP("log", "l", "", "append the run log to this file (default stderr)")
	f.String("schema", "", "Alliance schema version")
	f.String("release", "", "Alliance release version")
	bindFlag(f, "output.dir", "output-dir")
	bindFlag(f, "logging.file", "log")
	bindFlag(f, "alliance.schema_version", "schema")
	bindFlag(f, "alliance.release_version", "release")

	root.SetFlagErrorFunc(flagError)

	root.AddCommand(newPartsCmd())
	root.AddCommand(newLsCmd())
	root.AddCommand(newConfigCmd())
	return root
}

func bindFlag(fs *pflag.FlagSet, key, name string) {
	_ = viper.BindPFlag(key, fs.Lookup(name))
}

// flagError turns a parse failure into a ConfigurationError. Cobra prints
// usage for it since SilenceUsage is still false at parse time.
func flagError(cmd *cobra.Command, err error) error {
	cause := errors.ErrInvalidInput
	msg := err.Error()
	if strings.HasPrefix(msg, "unknown flag") || strings.HasPrefix(msg, "unknown shorthand flag") {
		cause = errors.ErrUnknownFlag
	}
	return errors.NewConfigurationError(err.Error()).WithCause(cause)
}

func initConfig(cmd *cobra.Command, args []string) error {
	// Set defaults first so they're available even without a config file
	config.SetDefaults()

	cfgFile := viper.GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(config.ConfigDir())
		viper.AddConfigPath("$HOME/.config/agrexport")
		viper.AddConfigPath(".")
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix("AGREXPORT")
	// e.g., AGREXPORT_ALLIANCE_SCHEMA_VERSION for alliance.schema_version
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return errors.NewConfigurationError("cannot read config file").
				WithField("config").
				WithCause(err)
		}
	}
	return nil
}

// loadConfig returns the validated configuration file and environment
// settings, with bound flags applied.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, errors.NewConfigurationError("invalid configuration").WithCause(err)
	}
	return cfg, nil
}
