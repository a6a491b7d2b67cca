package collab_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mgijax/agrexport/internal/collab"
	"github.com/mgijax/agrexport/internal/errors"
	"github.com/mgijax/agrexport/internal/testutil"
	"github.com/spf13/afero"
)

func TestFieldName(t *testing.T) {
	if got := collab.FieldName("3.1.0", "DAF", "MGI"); got != "3.1.0_DAF_MGI" {
		t.Errorf("FieldName() = %q, want %q", got, "3.1.0_DAF_MGI")
	}
}

func TestReadToken(t *testing.T) {
	fs := afero.NewMemMapFs()
	testutil.WriteFile(t, fs, "/etc/agr/token", "  secret-token\n")
	testutil.WriteFile(t, fs, "/etc/agr/empty", "\n")

	got, err := collab.ReadToken(fs, "/etc/agr/token")
	if err != nil {
		t.Fatalf("ReadToken() error = %v", err)
	}
	if got != "secret-token" {
		t.Errorf("ReadToken() = %q, want %q", got, "secret-token")
	}

	for _, path := range []string{"", "/etc/agr/empty", "/etc/agr/missing"} {
		if _, err := collab.ReadToken(fs, path); !errors.Is(err, errors.ErrTokenMissing) {
			t.Errorf("ReadToken(%q) error = %v, want ErrTokenMissing", path, err)
		}
	}
}

func TestSubmitter_Submit(t *testing.T) {
	var gotAuth, gotField, gotFile, gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		mr, err := r.MultipartReader()
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		p, err := mr.NextPart()
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		gotField = p.FormName()
		gotFile = p.FileName()
		b, _ := io.ReadAll(p)
		gotBody = string(b)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	fs := afero.NewMemMapFs()
	path := "/out/MGI_1.0.1.4/MGI_1.0.1.4_disease.json"
	testutil.WriteFile(t, fs, path, `{"data": []}`)

	s := &collab.Submitter{Client: srv.Client(), URL: srv.URL, Fs: fs}
	if err := s.Submit(context.Background(), "tok", "3.1.0_DAF_MGI", path); err != nil {
		t.Fatalf("Submit() error = %v", err)
	}

	if gotAuth != "Bearer tok" {
		t.Errorf("Authorization = %q", gotAuth)
	}
	if gotField != "3.1.0_DAF_MGI" {
		t.Errorf("field = %q", gotField)
	}
	if gotFile != "MGI_1.0.1.4_disease.json" {
		t.Errorf("filename = %q", gotFile)
	}
	if gotBody != `{"data": []}` {
		t.Errorf("body = %q", gotBody)
	}
}

func TestSubmitter_Rejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.Copy(io.Discard, r.Body)
		http.Error(w, "bad token", http.StatusUnauthorized)
	}))
	defer srv.Close()

	fs := afero.NewMemMapFs()
	testutil.WriteFile(t, fs, "/out/a.json", "{}")

	s := &collab.Submitter{Client: srv.Client(), URL: srv.URL, Fs: fs}
	err := s.Submit(context.Background(), "tok", "f", "/out/a.json")
	if !errors.Is(err, errors.ErrUploadRejected) {
		t.Fatalf("Submit() error = %v, want ErrUploadRejected", err)
	}

	var cmdErr *errors.ExternalCommandError
	if !errors.As(err, &cmdErr) {
		t.Fatalf("error type = %T", err)
	}
	if cmdErr.ExitStatus != http.StatusUnauthorized {
		t.Errorf("ExitStatus = %d, want 401", cmdErr.ExitStatus)
	}
	if cmdErr.Output != "bad token" {
		t.Errorf("Output = %q, want %q", cmdErr.Output, "bad token")
	}
}

func TestSubmitter_MissingArtifact(t *testing.T) {
	s := &collab.Submitter{URL: "http://127.0.0.1:1", Fs: afero.NewMemMapFs()}
	err := s.Submit(context.Background(), "tok", "f", "/out/missing.json")
	if !errors.Is(err, errors.ErrArtifactMissing) {
		t.Errorf("Submit() error = %v, want ErrArtifactMissing", err)
	}
}
