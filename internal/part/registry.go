package part

import (
	"fmt"
	"regexp"
)

// Registry is the fixed, ordered catalog of parts.
// It is immutable after construction.
type Registry struct {
	parts  []Descriptor
	byCode map[string]int
}

// NewRegistry builds a registry from parts in the given order. Codes must be
// non-empty and unique, since selection is a membership test on codes.
func NewRegistry(parts []Descriptor) (*Registry, error) {
	r := &Registry{
		parts:  make([]Descriptor, 0, len(parts)),
		byCode: make(map[string]int, len(parts)),
	}
	for _, d := range parts {
		if err := validateDescriptor(d); err != nil {
			return nil, err
		}
		if _, dup := r.byCode[d.Code]; dup {
			return nil, fmt.Errorf("duplicate part code %q", d.Code)
		}
		r.byCode[d.Code] = len(r.parts)
		r.parts = append(r.parts, d)
	}
	return r, nil
}

func validateDescriptor(d Descriptor) error {
	if d.Code == "" {
		return fmt.Errorf("part with file type %q has no code", d.FileType)
	}
	if d.FileType == "" {
		return fmt.Errorf("part %q has no file type", d.Code)
	}
	switch d.Behavior().Generate {
	case GenerateCommand:
		if len(d.Generator.Command) == 0 {
			return fmt.Errorf("part %q needs a generator command", d.Code)
		}
	case GenerateFetch:
		if d.Generator.URL == "" {
			return fmt.Errorf("part %q needs a generator url", d.Code)
		}
	}
	if d.ReportPattern != "" {
		if _, err := regexp.Compile(d.ReportPattern); err != nil {
			return fmt.Errorf("part %q has an invalid report pattern: %w", d.Code, err)
		}
	}
	return nil
}

// All returns every part in registration order.
func (r *Registry) All() []Descriptor {
	out := make([]Descriptor, len(r.parts))
	copy(out, r.parts)
	return out
}

// Select returns the parts matched by sel in registration order, regardless
// of the order the caller listed codes in. Unknown codes are ignored.
func (r *Registry) Select(sel Selection) []Descriptor {
	if sel.IsAll() {
		return r.All()
	}
	var out []Descriptor
	for _, d := range r.parts {
		if sel.Matches(d.Code) {
			out = append(out, d)
		}
	}
	return out
}

// Lookup returns the part with the given code.
func (r *Registry) Lookup(code string) (Descriptor, bool) {
	i, ok := r.byCode[code]
	if !ok {
		return Descriptor{}, false
	}
	return r.parts[i], true
}

// Len returns the number of registered parts.
func (r *Registry) Len() int {
	return len(r.parts)
}
