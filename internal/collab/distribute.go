package collab

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/gzip"
	"github.com/mgijax/agrexport/internal/errors"
	"github.com/spf13/afero"
)

// PublishedMode is the permission set given to distributed files.
const PublishedMode os.FileMode = 0666

// Distributor publishes artifacts into the distribution directory.
type Distributor struct {
	Fs  afero.Fs
	Dir string
}

// Distribute copies src into Dir under baseName, makes it world
// read/writable, and gzips it in place. It returns the path of the
// compressed file. An existing file of the same name is replaced.
func (d *Distributor) Distribute(src, baseName string) (string, error) {
	if d.Dir == "" {
		return "", errors.NewExternalCommandError("distribute", errors.New("no distribution directory configured"))
	}

	dest := filepath.Join(d.Dir, baseName)
	if err := d.copy(src, dest); err != nil {
		return "", errors.NewExternalCommandError("distribute", err)
	}
	if err := d.Fs.Chmod(dest, PublishedMode); err != nil {
		return "", errors.NewExternalCommandError("distribute", fmt.Errorf("chmod %s: %w", dest, err))
	}

	gz, err := d.compress(dest)
	if err != nil {
		return "", errors.NewExternalCommandError("distribute", err)
	}
	return gz, nil
}

func (d *Distributor) copy(src, dest string) error {
	in, err := d.Fs.Open(src)
	if err != nil {
		return fmt.Errorf("open %s: %w", src, err)
	}
	defer in.Close()

	out, err := d.Fs.OpenFile(dest, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, PublishedMode)
	if err != nil {
		return fmt.Errorf("create %s: %w", dest, err)
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return fmt.Errorf("copy %s: %w", src, err)
	}
	return out.Close()
}

// compress replaces path with path.gz, keeping its permissions.
func (d *Distributor) compress(path string) (string, error) {
	gzPath := path + ".gz"

	in, err := d.Fs.Open(path)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", path, err)
	}
	defer in.Close()

	out, err := d.Fs.OpenFile(gzPath, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, PublishedMode)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", gzPath, err)
	}
	defer out.Close()

	zw, err := gzip.NewWriterLevel(out, gzip.BestCompression)
	if err != nil {
		return "", err
	}
	zw.Name = filepath.Base(path)
	if _, err := io.Copy(zw, in); err != nil {
		return "", fmt.Errorf("compress %s: %w", path, err)
	}
	if err := zw.Close(); err != nil {
		return "", fmt.Errorf("compress %s: %w", path, err)
	}
	if err := out.Close(); err != nil {
		return "", err
	}
	if err := d.Fs.Chmod(gzPath, PublishedMode); err != nil {
		return "", fmt.Errorf("chmod %s: %w", gzPath, err)
	}
	in.Close()
	if err := d.Fs.Remove(path); err != nil {
		return "", fmt.Errorf("remove %s: %w", path, err)
	}
	return gzPath, nil
}
