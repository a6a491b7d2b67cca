package downloads

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// Filter selects submissions. Empty lists accept everything; a non-empty
// list accepts only its members.
type Filter struct {
	// Providers holds taxon ids or provider names; older schema versions
	// used one, newer ones the other.
	Providers []string
	DataTypes []string
	Schemas   []string
	ETags     []string
	// ModifiedFrom and ModifiedTo are inclusive yyyy-mm-dd bounds. Either
	// may be empty.
	ModifiedFrom string
	ModifiedTo   string
}

// ParseDateRange parses "d", "min..max", "min.." or "..max".
func ParseDateRange(s string) (from, to string, err error) {
	if !strings.Contains(s, "..") {
		from, to = s, s
	} else {
		parts := strings.Split(s, "..")
		if len(parts) != 2 {
			return "", "", fmt.Errorf("bad date range: %s", s)
		}
		from, to = parts[0], parts[1]
	}
	for _, d := range []string{from, to} {
		if d == "" {
			continue
		}
		if _, err := time.Parse(dateLayout, d); err != nil {
			return "", "", fmt.Errorf("bad date range: %s", s)
		}
	}
	return from, to, nil
}

// Match reports whether o passes every filter.
func (f Filter) Match(o Object) bool {
	if !accepts(f.ETags, o.ETag) ||
		!accepts(f.Providers, o.Provider) ||
		!accepts(f.Schemas, o.Schema) ||
		!accepts(f.DataTypes, o.DataType) {
		return false
	}

	day := o.LastModified.Format(dateLayout)
	if f.ModifiedFrom != "" && day < f.ModifiedFrom {
		return false
	}
	if f.ModifiedTo != "" && day > f.ModifiedTo {
		return false
	}
	return true
}

func accepts(allowed []string, v string) bool {
	return len(allowed) == 0 || slices.Contains(allowed, v)
}
