package part

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

//go:embed catalog.hcl
var builtinCatalog []byte

// catalogFile is the top-level shape of a catalog HCL file.
type catalogFile struct {
	Parts []*partBlock `hcl:"part,block"`
}

type partBlock struct {
	Code             string   `hcl:"code,label"`
	FileType         string   `hcl:"file_type"`
	AllianceFileType string   `hcl:"alliance_file_type"`
	Kind             string   `hcl:"kind,optional"`
	Command          []string `hcl:"command,optional"`
	URL              string   `hcl:"url,optional"`
	Schema           string   `hcl:"schema,optional"`
	ReportPattern    string   `hcl:"report_pattern,optional"`
}

// Default returns the registry built from the embedded catalog.
// The embedded catalog is part of the binary, so a decode failure is a
// programming error and panics.
func Default() *Registry {
	r, err := ParseCatalog(builtinCatalog, "catalog.hcl")
	if err != nil {
		panic(fmt.Errorf("built-in part catalog: %w", err))
	}
	return r
}

// LoadCatalog reads a catalog HCL file from disk.
func LoadCatalog(path string) (*Registry, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog %s: %w", path, err)
	}
	return ParseCatalog(src, path)
}

// ParseCatalog decodes catalog HCL source into a registry, preserving the
// order in which part blocks appear.
func ParseCatalog(src []byte, filename string) (*Registry, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse catalog %s: %w", filename, diags)
	}

	var root catalogFile
	if diags := gohcl.DecodeBody(file.Body, nil, &root); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode catalog %s: %w", filename, diags)
	}

	parts := make([]Descriptor, 0, len(root.Parts))
	for _, b := range root.Parts {
		kind, err := ParseKind(b.Kind)
		if err != nil {
			return nil, fmt.Errorf("part %q: %w", b.Code, err)
		}
		parts = append(parts, Descriptor{
			Code:             b.Code,
			FileType:         b.FileType,
			AllianceFileType: b.AllianceFileType,
			Kind:             kind,
			Generator: Generator{
				Command: b.Command,
				URL:     b.URL,
			},
			SchemaPath:    b.Schema,
			ReportPattern: b.ReportPattern,
		})
	}
	return NewRegistry(parts)
}
