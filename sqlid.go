package sqlid

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

// Dialect identifies the SQL dialect whose identifier-quoting rules apply.
type Dialect int

const (
	Postgres Dialect = iota
	MySQL
	SQLite
	SQLServer
)

var (
	ErrInvalidIdentifier   = errors.New("sqlid: invalid identifier")
	ErrEmptyIdentifierList = errors.New("sqlid: empty identifier list")
	ErrUnboundParameter    = errors.New("sqlid: unbound parameter")
	ErrMetadataUnavailable = errors.New("sqlid: quoting metadata unavailable")
)

// MetadataProvider supplies the quoting metadata for the target dialect.
// Dialect implements it for the built-in dialects; a custom provider can
// supply its own Quoting (e.g. fetched from a live connection) to adjust
// the quote characters or the identifier charset.
type MetadataProvider interface {
	QuotingMetadata() (Quoting, error)
}

// Preparer abstracts *sql.DB / *sql.Tx / *sql.Conn PrepareContext for the
// final hand-off and for easy testing.
type Preparer interface {
	PrepareContext(ctx context.Context, query string) (*sql.Stmt, error)
}

// Stmt is a single SQL statement under construction: a parsed template plus
// the identifier bindings accumulated so far. It is NOT safe for concurrent
// use. A Stmt holds no driver resources and does not need to be closed.
type Stmt struct {
	pieces  []string
	params  []string
	quoting Quoting
	values  map[string]string
	err     error
}

// String returns the string representation of the dialect.
func (d Dialect) String() string {
	switch d {
	case Postgres:
		return "postgres"
	case MySQL:
		return "mysql"
	case SQLite:
		return "sqlite"
	case SQLServer:
		return "sqlserver"
	default:
		return "unknown"
	}
}

// New parses template and returns a Stmt ready for identifier binding.
//
// The template is an ordinary driver query string (with ?, $1, @p1, ...
// value placeholders passed through verbatim) plus named identifier
// parameters: a colon followed by one or more ASCII letters or digits,
// e.g. ":fooBar1234". Any other character (punctuation, hyphen,
// underscore, whitespace) ends the parameter name and belongs to the
// surrounding SQL text, so "SELECT :foo-10" reads as the parameter "foo"
// followed by the literal "-10". A name may appear at several positions;
// all of them share one binding.
//
// Parameters stand in for entire identifiers. ":prefix_myTable" is the
// parameter "prefix" followed by the literal "_myTable", which cannot
// assemble into a single identifier; bind the whole name to one parameter
// instead.
//
// Quoting metadata is fetched from p once and cached for the lifetime of
// the Stmt. If it cannot be obtained, New fails; there is no fallback
// quoting style.
func New(p MetadataProvider, template string) (*Stmt, error) {
	q, err := p.QuotingMetadata()
	if err != nil {
		return nil, err
	}
	pieces, params := parseTemplate(template)
	return &Stmt{
		pieces:  pieces,
		params:  params,
		quoting: q,
		values:  make(map[string]string, len(params)),
	}, nil
}

// BindIdentifier validates value as a bare identifier, escapes it with the
// dialect's quoting rules and stores it under name, overwriting any prior
// binding for that name. Binding a name the template does not mention is
// accepted and simply never read.
//
// Returns the same Stmt for chaining. A validation failure is latched: it
// is reported by Err and by SQL, and subsequent bind calls become no-ops.
func (st *Stmt) BindIdentifier(name, value string) *Stmt {
	if st.err != nil {
		return st
	}
	if err := st.quoting.validate(value); err != nil {
		st.err = fmt.Errorf("%w (parameter %q)", err, name)
		return st
	}
	st.values[name] = st.quoting.escape(value)
	return st
}

// BindIdentifierList validates and escapes each element of values and
// stores them under name as a comma-separated identifier list, suitable
// for template positions expecting e.g. a column list. An empty slice is
// an error: an empty identifier list is never valid SQL.
func (st *Stmt) BindIdentifierList(name string, values []string) *Stmt {
	if st.err != nil {
		return st
	}
	if len(values) == 0 {
		st.err = fmt.Errorf("%w (parameter %q)", ErrEmptyIdentifierList, name)
		return st
	}
	escaped := make([]string, len(values))
	for i, v := range values {
		if err := st.quoting.validate(v); err != nil {
			st.err = fmt.Errorf("%w (parameter %q, element %d)", err, name, i)
			return st
		}
		escaped[i] = st.quoting.escape(v)
	}
	st.values[name] = strings.Join(escaped, ", ")
	return st
}

// Err returns the first error latched by a bind call, or nil. Checking it
// right after a bind reports a misuse at the call site that caused it.
func (st *Stmt) Err() error {
	return st.err
}

// SQL assembles the final statement text: template literals interleaved,
// in order, with the escaped identifier bindings. It fails if any bind
// call failed, or with ErrUnboundParameter naming the first parameter (in
// template order) that has no binding. The result contains only the
// template's untouched driver placeholders and pre-escaped identifier
// text, ready for the driver to compile.
func (st *Stmt) SQL() (string, error) {
	if st.err != nil {
		return "", st.err
	}

	var buf strings.Builder
	n := 0
	for _, p := range st.pieces {
		n += len(p)
	}
	buf.Grow(n + len(st.params)*16)

	for i, name := range st.params {
		v, ok := st.values[name]
		if !ok {
			return "", fmt.Errorf("%w: %s", ErrUnboundParameter, name)
		}
		buf.WriteString(st.pieces[i])
		buf.WriteString(v)
	}
	for i := len(st.params); i < len(st.pieces); i++ {
		buf.WriteString(st.pieces[i])
	}
	return buf.String(), nil
}

// Prepare is a convenience that assembles and compiles the statement with
// context.Background().
func (st *Stmt) Prepare(db Preparer) (*sql.Stmt, error) {
	return st.PrepareContext(context.Background(), db)
}

// PrepareContext assembles the statement and hands the text to the driver
// for compilation. Nothing reaches the driver if assembly fails. A
// compilation error from the driver is returned unchanged.
func (st *Stmt) PrepareContext(ctx context.Context, db Preparer) (*sql.Stmt, error) {
	q, err := st.SQL()
	if err != nil {
		return nil, err
	}
	return db.PrepareContext(ctx, q)
}
