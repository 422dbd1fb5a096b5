// Package sqlid builds SQL statements from templates in which identifiers
// (table, column, schema names) are parameterized the same way values are.
// Ordinary driver placeholders cannot carry identifiers, so dynamic names
// usually end up string-concatenated into the query, which is the classic
// injection hole. sqlid closes it: named :identifier parameters are
// validated against the dialect's identifier charset, quoted with the
// dialect's quote characters, and only then spliced into the statement
// text. Driver value placeholders (?, $1, @p1, ...) pass through untouched.

package sqlid
