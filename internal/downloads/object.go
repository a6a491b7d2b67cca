package downloads

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
)

// TimeLayout is how modification times are printed.
const TimeLayout = "2006-01-02T15:04:05.000Z"

// Object is one submitted file in the downloads bucket.
type Object struct {
	Key          string    `json:"Key"`
	Schema       string    `json:"-"`
	DataType     string    `json:"-"`
	Provider     string    `json:"-"`
	File         string    `json:"-"`
	ETag         string    `json:"ETag"`
	Size         int64     `json:"Size"`
	LastModified time.Time `json:"-"`
	StorageClass string    `json:"StorageClass,omitempty"`
}

// FromInfo converts a listing entry. It reports false for keys that are not
// four path segments deep.
func FromInfo(info minio.ObjectInfo) (Object, bool) {
	segs := strings.Split(info.Key, "/")
	if len(segs) != 4 {
		return Object{}, false
	}
	return Object{
		Key:          info.Key,
		Schema:       segs[0],
		DataType:     segs[1],
		Provider:     segs[2],
		File:         segs[3],
		ETag:         strings.ReplaceAll(info.ETag, `"`, ""),
		Size:         info.Size,
		LastModified: info.LastModified.UTC(),
		StorageClass: info.StorageClass,
	}, true
}

// Modified returns the modification time in TimeLayout.
func (o Object) Modified() string {
	return o.LastModified.Format(TimeLayout)
}

// MarshalJSON adds the formatted modification time.
func (o Object) MarshalJSON() ([]byte, error) {
	type plain Object
	return json.Marshal(struct {
		plain
		LastModified string `json:"LastModified"`
	}{plain(o), o.Modified()})
}

// Output formats.
const (
	FormatJSON = "json"
	FormatTab  = "tab"
)

// Write prints objs in format. JSON output is one indented object per
// entry; tab output is "modified, key, etag, size" per line.
func Write(w io.Writer, format string, objs []Object) error {
	switch format {
	case "", FormatJSON:
		for _, o := range objs {
			b, err := json.MarshalIndent(o, "", "  ")
			if err != nil {
				return err
			}
			if _, err := fmt.Fprintln(w, string(b)); err != nil {
				return err
			}
		}
	case FormatTab:
		for _, o := range objs {
			if _, err := fmt.Fprintf(w, "%s\t%s\t%s\t%d\n", o.Modified(), o.Key, o.ETag, o.Size); err != nil {
				return err
			}
		}
	default:
		return fmt.Errorf("unknown format %q (want %s or %s)", format, FormatJSON, FormatTab)
	}
	return nil
}
