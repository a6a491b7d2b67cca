package part

import (
	"fmt"
	"strings"

	"github.com/gobwas/glob"
)

// AllToken is the -p value that selects every part.
const AllToken = "all"

// Selection is the set of part codes a run operates on. The zero value
// selects every part.
type Selection struct {
	codes  map[string]bool
	globs  []glob.Glob
	tokens []string
}

// AllParts returns the "all" sentinel selection.
func AllParts() Selection {
	return Selection{}
}

// NewSelection builds a selection from -p tokens. No tokens, or the token
// "all", selects everything. Tokens containing glob metacharacters are
// matched against every code; other tokens are exact codes.
func NewSelection(tokens []string) (Selection, error) {
	sel := Selection{codes: make(map[string]bool)}
	for _, tok := range tokens {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		if tok == AllToken {
			return AllParts(), nil
		}
		sel.tokens = append(sel.tokens, tok)
		if strings.ContainsAny(tok, "*?[{") {
			g, err := glob.Compile(tok)
			if err != nil {
				return Selection{}, fmt.Errorf("invalid part pattern %q: %w", tok, err)
			}
			sel.globs = append(sel.globs, g)
			continue
		}
		sel.codes[tok] = true
	}
	if len(sel.tokens) == 0 {
		return AllParts(), nil
	}
	return sel, nil
}

// IsAll reports whether the selection is the "all" sentinel.
func (s Selection) IsAll() bool {
	return len(s.tokens) == 0
}

// Matches reports whether code is selected.
func (s Selection) Matches(code string) bool {
	if s.IsAll() {
		return true
	}
	if s.codes[code] {
		return true
	}
	for _, g := range s.globs {
		if g.Match(code) {
			return true
		}
	}
	return false
}

// String renders the selection the way it was given.
func (s Selection) String() string {
	if s.IsAll() {
		return AllToken
	}
	return strings.Join(s.tokens, ",")
}
