package cmd

import (
	"github.com/mgijax/agrexport/internal/downloads"
	"github.com/mgijax/agrexport/internal/errors"
	"github.com/spf13/cobra"
)

type lsOptions struct {
	providers []string
	dataTypes []string
	schemas   []string
	etags     []string
	modified  string
	format    string
}

func newLsCmd() *cobra.Command {
	o := &lsOptions{}
	cmd := &cobra.Command{
		Use:   "ls",
		Short: "List files already submitted to the Alliance",
		Long: `List the files in the Alliance downloads bucket, with optional filtering.

Keys have the form {schema}/{datatype}/{provider}/{file}. Repeat a filter
flag to accept several values.

Examples:
  # Everything MGI submitted under schema 1.0.0.8
  agrexport ls -x 10090 -x MGI -s 1.0.0.8

  # Only the BGI and allele files
  agrexport ls -d BGI -d ALLELE

  # Tab separated listing of files modified since the start of 2019
  agrexport ls -m 2019-01-01.. -f tab`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLs(cmd, o)
		},
	}

	f := cmd.Flags()
	f.StringArrayVarP(&o.providers, "taxonid", "x", nil, "taxon id (e.g. 10090) or provider (e.g. MGI); older schemas use one, newer the other")
	f.StringArrayVarP(&o.dataTypes, "datatype", "d", nil, "data type, e.g. BGI")
	f.StringArrayVarP(&o.schemas, "schema", "s", nil, "schema version")
	f.StringArrayVarP(&o.etags, "etag", "e", nil, "ETag (unique identifier)")
	f.StringVarP(&o.modified, "modified", "m", "", "modification date yyyy-mm-dd, or range min..max, min.. or ..max")
	f.StringVarP(&o.format, "format", "f", downloads.FormatJSON, "output format: json or tab")
	return cmd
}

func (o *lsOptions) filter() (downloads.Filter, error) {
	f := downloads.Filter{
		Providers: o.providers,
		DataTypes: o.dataTypes,
		Schemas:   o.schemas,
		ETags:     o.etags,
	}
	if o.modified != "" {
		from, to, err := downloads.ParseDateRange(o.modified)
		if err != nil {
			return f, errors.NewConfigurationError(err.Error()).WithField("modified").WithCause(errors.ErrInvalidInput)
		}
		f.ModifiedFrom, f.ModifiedTo = from, to
	}
	return f, nil
}

func runLs(cmd *cobra.Command, o *lsOptions) error {
	if o.format != downloads.FormatJSON && o.format != downloads.FormatTab {
		return errors.NewConfigurationError("format must be json or tab").WithField("format").WithCause(errors.ErrInvalidInput)
	}
	filter, err := o.filter()
	if err != nil {
		return err
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	cmd.SilenceUsage = true

	dcfg := cfg.Downloads.Downloads()
	client, err := downloads.NewClient(dcfg)
	if err != nil {
		return err
	}

	objs, err := downloads.List(cmd.Context(), client, dcfg.Bucket, filter)
	if err != nil {
		return errors.NewExternalCommandError("list downloads", errors.Join(errors.ErrFetchFailed, err))
	}
	return downloads.Write(cmd.OutOrStdout(), o.format, objs)
}
