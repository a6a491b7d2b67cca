package collab

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/mgijax/agrexport/internal/errors"
	"github.com/spf13/afero"
)

// DefaultSubmitURL is the Alliance file management submission endpoint.
const DefaultSubmitURL = "https://fms.alliancegenome.org/api/data/submit"

// maxErrorBody bounds how much of a rejection body is kept in the error.
const maxErrorBody = 4096

// Submitter uploads artifacts to the submission endpoint.
type Submitter struct {
	Client *http.Client
	URL    string
	Fs     afero.Fs
}

// FieldName returns "{releaseVersion}_{allianceFileType}_{organism}", the
// multipart field an artifact is submitted under.
func FieldName(releaseVersion, allianceFileType, organism string) string {
	return releaseVersion + "_" + allianceFileType + "_" + organism
}

// ReadToken returns the trimmed bearer token stored in path.
func ReadToken(fs afero.Fs, path string) (string, error) {
	if path == "" {
		return "", errors.NewResourceError("read token", errors.ErrTokenMissing)
	}
	b, err := afero.ReadFile(fs, path)
	if err != nil {
		return "", errors.NewResourceError("read token", fmt.Errorf("%w: %v", errors.ErrTokenMissing, err)).WithPath(path)
	}
	token := strings.TrimSpace(string(b))
	if token == "" {
		return "", errors.NewResourceError("read token", errors.ErrTokenMissing).WithPath(path)
	}
	return token, nil
}

// Submit POSTs the file at path as a multipart body with a single field.
// The body is streamed, so large artifacts are never held in memory.
func (s *Submitter) Submit(ctx context.Context, token, field, path string) error {
	in, err := s.Fs.Open(path)
	if err != nil {
		return errors.NewResourceError("open artifact", fmt.Errorf("%w: %v", errors.ErrArtifactMissing, err)).WithPath(path)
	}
	defer in.Close()

	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)
	go func() {
		fw, err := mw.CreateFormFile(field, filepath.Base(path))
		if err == nil {
			_, err = io.Copy(fw, in)
		}
		if err == nil {
			err = mw.Close()
		}
		pw.CloseWithError(err)
	}()

	url := s.URL
	if url == "" {
		url = DefaultSubmitURL
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, pr)
	if err != nil {
		pr.CloseWithError(err)
		return errors.NewExternalCommandError("upload", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)

	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return errors.NewExternalCommandError("upload", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return errors.NewExternalCommandError("upload", fmt.Errorf("%w: %s", errors.ErrUploadRejected, resp.Status)).
			WithExitStatus(resp.StatusCode).
			WithOutput(strings.TrimSpace(string(body)))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}
