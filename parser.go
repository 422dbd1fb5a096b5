package sqlid

import (
	lru "github.com/hashicorp/golang-lru/v2"
)

const cacheSize = 1024 // Max parsed templates kept in the process-wide cache

// parsed is an immutable parse result; cached entries share their slices
// with every Stmt built from the same template text.
type parsed struct {
	pieces []string
	params []string
}

var templateCache = newTemplateCache(cacheSize)

func newTemplateCache(size int) *lru.Cache[string, parsed] {
	c, _ := lru.New[string, parsed](size)
	return c
}

// parseTemplate splits a template into literal SQL pieces and the
// parameter names between them. A parameter is a ':' followed by the
// maximal run of ASCII letters/digits; the first other character ends the
// name and opens the next literal piece. Parsing never fails: a ':' with
// no alphanumeric after it is plain text.
//
// Shape invariant: len(pieces) == len(params)+1, except when the template
// ends on a parameter (then len(pieces) == len(params)) and pieces may
// contain empty strings for back-to-back parameters. A template with no
// parameters is a single piece; an empty template is zero pieces.
//
// The lexer is not SQL-aware: quoted strings and comments are not
// tracked, so a ':' inside them is matched like any other.
func parseTemplate(tpl string) ([]string, []string) {
	if p, ok := templateCache.Get(tpl); ok {
		return p.pieces, p.params
	}

	var pieces, params []string
	start := 0
	for i := 0; i < len(tpl); {
		if tpl[i] == ':' && i+1 < len(tpl) && isAlphaNum(tpl[i+1]) {
			k := i + 2
			for k < len(tpl) && isAlphaNum(tpl[k]) {
				k++
			}
			pieces = append(pieces, tpl[start:i])
			params = append(params, tpl[i+1:k])
			start = k
			i = k
			continue
		}
		i++
	}
	if start < len(tpl) {
		pieces = append(pieces, tpl[start:])
	}

	templateCache.Add(tpl, parsed{pieces: pieces, params: params})
	return pieces, params
}

func isAlphaNum(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9'
}
