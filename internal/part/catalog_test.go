package part

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDefault(t *testing.T) {
	r := Default()

	want := []string{"g", "a", "c", "v", "A", "d", "p", "e", "h", "s", "r", "x", "G", "F"}
	if diff := cmp.Diff(want, codes(r.All())); diff != "" {
		t.Errorf("catalog order mismatch (-want +got):\n%s", diff)
	}

	g, _ := r.Lookup("g")
	if g.FileType != "BGI" || g.Kind != KindStandard || g.SchemaPath == "" || g.ReportPattern == "" {
		t.Errorf("unexpected gene part: %+v", g)
	}

	p, _ := r.Lookup("p")
	if p.FileType != "phenotype" || p.AllianceFileType != "PHENOTYPE" {
		t.Errorf("unexpected phenotype part: %+v", p)
	}
	if diff := cmp.Diff([]string{"diseasePheno.py", "-p"}, p.Generator.Command); diff != "" {
		t.Errorf("phenotype command mismatch:\n%s", diff)
	}

	gff, _ := r.Lookup("G")
	if gff.Kind != KindGFF || !strings.HasSuffix(gff.Generator.URL, ".gz") {
		t.Errorf("unexpected GFF part: %+v", gff)
	}

	asm, _ := r.Lookup("F")
	if asm.Kind != KindAssembly {
		t.Errorf("unexpected assembly part: %+v", asm)
	}
}

func TestParseCatalog(t *testing.T) {
	src := `
part "z" {
  file_type          = "zeta"
  alliance_file_type = "ZETA"
  command            = ["zeta.py", "--all"]
}
part "y" {
  file_type          = "gff"
  alliance_file_type = "GFF"
  kind               = "gff"
  url                = "http://example.org/y.gz"
}
`
	r, err := ParseCatalog([]byte(src), "test.hcl")
	if err != nil {
		t.Fatalf("ParseCatalog failed: %v", err)
	}
	if diff := cmp.Diff([]string{"z", "y"}, codes(r.All())); diff != "" {
		t.Errorf("order mismatch:\n%s", diff)
	}
	y, _ := r.Lookup("y")
	if y.Kind != KindGFF {
		t.Errorf("y.Kind = %v, want gff", y.Kind)
	}
}

func TestParseCatalog_Errors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"syntax", `part "z" {`},
		{"missing required attribute", `part "z" { file_type = "z" }`},
		{"unknown kind", `part "z" {
  file_type = "z"
  alliance_file_type = "Z"
  kind = "fasta"
}`},
		{"duplicate codes", `part "z" {
  file_type = "z"
  alliance_file_type = "Z"
  command = ["z"]
}
part "z" {
  file_type = "z2"
  alliance_file_type = "Z"
  command = ["z"]
}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseCatalog([]byte(tt.src), "bad.hcl"); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestLoadCatalog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "parts.hcl")
	src := `part "q" {
  file_type = "q"
  alliance_file_type = "Q"
  kind = "assembly"
}
`
	if err := os.WriteFile(path, []byte(src), 0644); err != nil {
		t.Fatal(err)
	}

	r, err := LoadCatalog(path)
	if err != nil {
		t.Fatalf("LoadCatalog failed: %v", err)
	}
	if r.Len() != 1 {
		t.Errorf("Len() = %d, want 1", r.Len())
	}

	if _, err := LoadCatalog(filepath.Join(t.TempDir(), "missing.hcl")); err == nil {
		t.Error("expected error for missing file")
	}
}
