package sqlid

import (
	"fmt"
	"strings"
)

// Quoting is the quoting metadata for a dialect: how an identifier is
// delimited and which characters it may contain. An embedded Close
// character is escaped by doubling, the one escape rule every supported
// dialect documents.
//
// Extra lists the characters an identifier may contain beyond ASCII
// letters, digits and underscore. The default policies keep the quote
// characters out of Extra, so a value carrying one is rejected outright
// rather than escaped; a custom provider that allows them still gets the
// doubling applied.
type Quoting struct {
	Open  byte
	Close byte
	Extra string
}

// QuotingMetadata returns the built-in quoting metadata for the dialect,
// making Dialect a MetadataProvider. Unknown dialect values fail with
// ErrMetadataUnavailable.
func (d Dialect) QuotingMetadata() (Quoting, error) {
	switch d {
	case Postgres, SQLite:
		return Quoting{Open: '"', Close: '"', Extra: "$"}, nil
	case MySQL:
		return Quoting{Open: '`', Close: '`', Extra: "$"}, nil
	case SQLServer:
		return Quoting{Open: '[', Close: ']', Extra: "$#@"}, nil
	default:
		return Quoting{}, fmt.Errorf("%w: unknown dialect %d", ErrMetadataUnavailable, int(d))
	}
}

// validate reports whether value is safe to treat as a single identifier
// under this quoting policy: non-empty, and every byte an ASCII letter,
// digit, underscore, or listed in Extra. Everything else (quote
// characters, control characters, statement terminators, non-ASCII) is
// rejected. The check is byte-wise; any multi-byte rune fails it.
func (q Quoting) validate(value string) error {
	if value == "" {
		return fmt.Errorf("%w: empty", ErrInvalidIdentifier)
	}
	for i := 0; i < len(value); i++ {
		if !q.allowed(value[i]) {
			return fmt.Errorf("%w: %q at byte %d of %q", ErrInvalidIdentifier, value[i], i, value)
		}
	}
	return nil
}

// escape wraps a validated identifier in the dialect's quote characters,
// doubling any embedded Close character.
func (q Quoting) escape(value string) string {
	if strings.IndexByte(value, q.Close) >= 0 {
		value = strings.ReplaceAll(value, string(q.Close), string([]byte{q.Close, q.Close}))
	}
	var b strings.Builder
	b.Grow(len(value) + 2)
	b.WriteByte(q.Open)
	b.WriteString(value)
	b.WriteByte(q.Close)
	return b.String()
}

func (q Quoting) allowed(c byte) bool {
	if c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == '_' {
		return true
	}
	return strings.IndexByte(q.Extra, c) >= 0
}
