package part

import "fmt"

// Kind selects the special-case behavior a part gets in each stage.
type Kind int

const (
	// KindStandard parts are produced by an external generator program and
	// validated against a JSON schema.
	KindStandard Kind = iota
	// KindGFF parts are fetched from a URL serving a gzip stream.
	KindGFF
	// KindAssembly parts are placeholders with no generation mechanism.
	KindAssembly
)

// String returns the catalog spelling of the kind.
func (k Kind) String() string {
	switch k {
	case KindStandard:
		return "standard"
	case KindGFF:
		return "gff"
	case KindAssembly:
		return "assembly"
	default:
		return "unknown"
	}
}

// ParseKind converts a catalog kind name. An empty name is KindStandard.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "", "standard":
		return KindStandard, nil
	case "gff":
		return KindGFF, nil
	case "assembly":
		return KindAssembly, nil
	default:
		return KindStandard, fmt.Errorf("unknown part kind %q", s)
	}
}

// GenerateMode is how the generate stage produces a part's file.
type GenerateMode int

const (
	// GenerateNone produces nothing.
	GenerateNone GenerateMode = iota
	// GenerateCommand captures an external program's stdout.
	GenerateCommand
	// GenerateFetch downloads and decompresses a remote resource.
	GenerateFetch
)

// Behavior is the per-kind table consulted once per stage.
type Behavior struct {
	Extension string
	Generate  GenerateMode
	Validate  bool
	// Inert kinds are skipped by every stage.
	Inert bool
}

var behaviors = map[Kind]Behavior{
	KindStandard: {Extension: "json", Generate: GenerateCommand, Validate: true},
	KindGFF:      {Extension: "gff3", Generate: GenerateFetch, Validate: false},
	KindAssembly: {Extension: "fa.gz", Generate: GenerateNone, Validate: false, Inert: true},
}

// Behavior returns the stage behavior for k.
func (k Kind) Behavior() Behavior {
	if b, ok := behaviors[k]; ok {
		return b
	}
	return behaviors[KindStandard]
}

// Generator describes how a part's data is produced: either an external
// program with arguments or, for GFF parts, a URL.
type Generator struct {
	Command []string
	URL     string
}

// Descriptor is one entry of the export catalog.
type Descriptor struct {
	// Code is the selector token used with -p. Unique within a registry.
	Code string
	// FileType is used in artifact names and log messages.
	FileType string
	// AllianceFileType names the uploaded artifact at the submission endpoint.
	AllianceFileType string
	Kind             Kind
	Generator        Generator
	// SchemaPath is relative to the validator's schema directory. May be empty.
	SchemaPath string
	// ReportPattern is a regular expression; matching lines are counted by
	// the report stage. May be empty.
	ReportPattern string
}

// Behavior is shorthand for d.Kind.Behavior().
func (d Descriptor) Behavior() Behavior {
	return d.Kind.Behavior()
}
