package collab_test

import (
	"testing"

	"github.com/mgijax/agrexport/internal/collab"
	"github.com/mgijax/agrexport/internal/testutil"
	"github.com/spf13/afero"
)

func TestDistributor_Distribute(t *testing.T) {
	fs := afero.NewMemMapFs()
	src := "/out/MGI_1.0.1.4/MGI_1.0.1.4_BGI.json"
	testutil.WriteFile(t, fs, src, `{"data": [1]}`)
	if err := fs.MkdirAll("/pub/agr", 0755); err != nil {
		t.Fatal(err)
	}

	d := &collab.Distributor{Fs: fs, Dir: "/pub/agr"}
	got, err := d.Distribute(src, "MGI_1.0.1.4_BGI.json")
	if err != nil {
		t.Fatalf("Distribute() error = %v", err)
	}

	if got != "/pub/agr/MGI_1.0.1.4_BGI.json.gz" {
		t.Errorf("Distribute() = %q", got)
	}
	testutil.AssertFileNotExists(t, fs, "/pub/agr/MGI_1.0.1.4_BGI.json")
	testutil.AssertFileExists(t, fs, src)

	if content := testutil.ReadGzipFile(t, fs, got); content != `{"data": [1]}` {
		t.Errorf("decompressed = %q", content)
	}

	info, err := fs.Stat(got)
	if err != nil {
		t.Fatal(err)
	}
	if perm := info.Mode().Perm(); perm != collab.PublishedMode {
		t.Errorf("mode = %v, want %v", perm, collab.PublishedMode)
	}
}

func TestDistributor_Overwrites(t *testing.T) {
	fs := afero.NewMemMapFs()
	testutil.WriteFile(t, fs, "/out/a.json", "new")
	if err := afero.WriteFile(fs, "/pub/a.json.gz", []byte("stale"), 0644); err != nil {
		t.Fatal(err)
	}

	d := &collab.Distributor{Fs: fs, Dir: "/pub"}
	got, err := d.Distribute("/out/a.json", "a.json")
	if err != nil {
		t.Fatalf("Distribute() error = %v", err)
	}
	if content := testutil.ReadGzipFile(t, fs, got); content != "new" {
		t.Errorf("decompressed = %q, want %q", content, "new")
	}
}

func TestDistributor_Errors(t *testing.T) {
	fs := afero.NewMemMapFs()

	if _, err := (&collab.Distributor{Fs: fs}).Distribute("/out/a.json", "a.json"); err == nil {
		t.Error("Distribute() without a directory should fail")
	}
	if _, err := (&collab.Distributor{Fs: fs, Dir: "/pub"}).Distribute("/out/missing.json", "missing.json"); err == nil {
		t.Error("Distribute() of a missing source should fail")
	}
}
