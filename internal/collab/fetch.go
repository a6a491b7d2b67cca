package collab

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/klauspost/compress/gzip"
	"github.com/mgijax/agrexport/internal/errors"
	"github.com/spf13/afero"
)

// Fetcher downloads a gzip-compressed resource and stores it decompressed.
type Fetcher struct {
	Client *http.Client
	Fs     afero.Fs
}

// Fetch GETs url and writes the decompressed stream to dest.
func (f *Fetcher) Fetch(ctx context.Context, url, dest string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return errors.NewExternalCommandError("fetch", err)
	}

	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return errors.NewExternalCommandError("fetch", fmt.Errorf("%w: %v", errors.ErrFetchFailed, err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return errors.NewExternalCommandError("fetch", fmt.Errorf("%w: %s returned %s", errors.ErrFetchFailed, url, resp.Status))
	}

	zr, err := gzip.NewReader(resp.Body)
	if err != nil {
		return errors.NewExternalCommandError("fetch", fmt.Errorf("%w: not a gzip stream: %v", errors.ErrFetchFailed, err))
	}
	defer zr.Close()

	out, err := f.Fs.Create(dest)
	if err != nil {
		return errors.NewResourceError("create artifact", err).WithPath(dest)
	}
	defer out.Close()

	if _, err := io.Copy(out, zr); err != nil {
		return errors.NewExternalCommandError("fetch", fmt.Errorf("%w: %v", errors.ErrFetchFailed, err))
	}
	if err := out.Close(); err != nil {
		return errors.NewResourceError("close artifact", err).WithPath(dest)
	}
	return nil
}
