// Package artifact derives the deterministic on-disk location of each
// part's export file.
//
// Every stage operating on a part calls [Path] with the same arguments, so
// generate, validate, report, upload, and distribute all agree on one file.
package artifact

import (
	"path/filepath"

	"github.com/mgijax/agrexport/internal/part"
	"github.com/mgijax/agrexport/internal/run"
)

// versionStem is "{prefix}_{schemaVersion}".
func versionStem(cfg run.Config) string {
	return cfg.Prefix + "_" + cfg.SchemaVersion
}

// Dir returns the versioned output directory:
// "{outputDir}/{prefix}_{schemaVersion}[_{releaseCount}]".
func Dir(cfg run.Config) string {
	name := versionStem(cfg)
	if cfg.ReleaseCount != "" {
		name += "_" + cfg.ReleaseCount
	}
	return filepath.Join(cfg.OutputDir, name)
}

// Root returns the path prefix every artifact name is built on:
// "{Dir}/{prefix}_{schemaVersion}".
func Root(cfg run.Config) string {
	return filepath.Join(Dir(cfg), versionStem(cfg))
}

// Extension returns the file extension for a part's kind.
func Extension(d part.Descriptor) string {
	return d.Behavior().Extension
}

// Path returns "{Root}_{fileType}.{ext}" for the part.
func Path(d part.Descriptor, cfg run.Config) string {
	return Root(cfg) + "_" + d.FileType + "." + Extension(d)
}

// BaseName returns the file name of Path without its directory, which is
// the name an artifact gets in the distribution area.
func BaseName(d part.Descriptor, cfg run.Config) string {
	return filepath.Base(Path(d, cfg))
}
