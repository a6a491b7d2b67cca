package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	tests := []struct {
		name string
		got  any
		want any
	}{
		{"alliance.organism", cfg.Alliance.Organism, "MGI"},
		{"alliance.file_prefix", cfg.Alliance.FilePrefix, "MGI"},
		{"alliance.submit_url", cfg.Alliance.SubmitURL, "https://fms.alliancegenome.org/api/data/submit"},
		{"alliance.schema_version", cfg.Alliance.SchemaVersion, ""},
		{"output.dir", cfg.Output.Dir, "."},
		{"generator.interpreter", cfg.Generator.Interpreter, "python3"},
		{"downloads.bucket", cfg.Downloads.Bucket, "download.alliancegenome.org"},
		{"downloads.use_ssl", cfg.Downloads.UseSSL, true},
		{"logging.level", cfg.Logging.Level, "info"},
		{"logging.format", cfg.Logging.Format, "text"},
		{"catalog.file", cfg.Catalog.File, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.want)
			}
		})
	}
}

func TestDownloadsConfig_Downloads(t *testing.T) {
	d := Default().Downloads
	got := d.Downloads()
	if got.Endpoint != d.Endpoint || got.Bucket != d.Bucket || got.Region != d.Region || got.UseSSL != d.UseSSL {
		t.Errorf("Downloads() = %+v, want fields of %+v", got, d)
	}
}

func TestConfigDir(t *testing.T) {
	t.Run("with XDG_CONFIG_HOME", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", "/custom/config")
		if got := ConfigDir(); got != "/custom/config/agrexport" {
			t.Errorf("ConfigDir() = %q, want %q", got, "/custom/config/agrexport")
		}
	})

	t.Run("without XDG_CONFIG_HOME", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", "")
		home, _ := os.UserHomeDir()
		expected := filepath.Join(home, ".config", "agrexport")
		if got := ConfigDir(); got != expected {
			t.Errorf("ConfigDir() = %q, want %q", got, expected)
		}
	})
}

func TestConfigFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/custom/config")
	if got := ConfigFile(); got != "/custom/config/agrexport/config.yaml" {
		t.Errorf("ConfigFile() = %q", got)
	}
}

func TestLoad(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `alliance:
  schema_version: "1.0.1.4"
  release_version: "3.1.0"
  token_file: /etc/agr/token
validator:
  schema_dir: /data/agr_schemas
distribute:
  dir: /data/downloads/agr
logging:
  level: debug
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	SetDefaults()
	viper.SetConfigFile(path)
	if err := viper.ReadInConfig(); err != nil {
		t.Fatalf("ReadInConfig: %v", err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Alliance.SchemaVersion != "1.0.1.4" || cfg.Alliance.ReleaseVersion != "3.1.0" {
		t.Errorf("versions = %q, %q", cfg.Alliance.SchemaVersion, cfg.Alliance.ReleaseVersion)
	}
	if cfg.Alliance.TokenFile != "/etc/agr/token" {
		t.Errorf("token_file = %q", cfg.Alliance.TokenFile)
	}
	if cfg.Distribute.Dir != "/data/downloads/agr" || cfg.Validator.SchemaDir != "/data/agr_schemas" {
		t.Errorf("dirs = %+v %+v", cfg.Distribute, cfg.Validator)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("logging.level = %q", cfg.Logging.Level)
	}
	// Unset keys fall back to defaults.
	if cfg.Alliance.Organism != "MGI" || cfg.Output.Dir != "." {
		t.Errorf("defaults not applied: organism %q, output.dir %q", cfg.Alliance.Organism, cfg.Output.Dir)
	}
}

func TestLoad_Invalid(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	SetDefaults()
	viper.Set("logging.level", "loud")
	viper.Set("alliance.organism", "")

	_, err := Load()
	if err == nil {
		t.Fatal("Load() error = nil, want validation errors")
	}
	verrs, ok := err.(ValidationErrors)
	if !ok {
		t.Fatalf("error type = %T, want ValidationErrors", err)
	}
	if len(verrs) != 2 {
		t.Errorf("got %d errors, want 2: %v", len(verrs), verrs)
	}
}
