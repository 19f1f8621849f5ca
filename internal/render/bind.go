package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/John-Tuesday/unverdad"
	"github.com/jmoiron/sqlx"
)

// Bound is a query rewritten for a driver together with its arguments.
type Bound struct {
	Query string
	Args  []any
}

var bindTypes = map[PlaceholderStyle]int{
	PlaceholderQuestion: sqlx.QUESTION,
	PlaceholderDollar:   sqlx.DOLLAR,
	PlaceholderAt:       sqlx.AT,
}

// Bind rewrites every :name placeholder in query into style and collects the
// matching arguments from params, one per occurrence. Quoted strings, quoted
// identifiers, comments and "::" casts are left alone. Parameters in params
// that the query does not reference are not passed.
func Bind(dialect string, style PlaceholderStyle, query string, params unverdad.NamedParams) (Bound, error) {
	bindType, ok := bindTypes[style]
	if !ok {
		return Bound{}, NewUnsupportedFeatureError(dialect, "placeholder style "+style.String())
	}

	masked, restore := mask(query, style)
	q, args, err := sqlx.Named(masked, params.Map())
	if err != nil {
		if name, ok := missingName(err); ok {
			return Bound{}, MissingParamError{Name: name, Dialect: dialect}
		}
		return Bound{}, fmt.Errorf("%s: binding query: %w", dialect, err)
	}
	q = sqlx.Rebind(bindType, q)
	return Bound{Query: restore.Replace(q), Args: args}, nil
}

// mask swaps every run of query that may hold a literal ':' or '?' for a
// NUL-delimited token, and returns the replacer that restores them.
// MySQL strings also end only at an unescaped quote.
func mask(query string, style PlaceholderStyle) (string, *strings.Replacer) {
	var (
		out   strings.Builder
		pairs []string
	)
	out.Grow(len(query))

	for i := 0; i < len(query); {
		ch := query[i]
		end := i
		switch {
		case ch == '\'' || ch == '"':
			end = skipQuoted(query, i, ch, style == PlaceholderQuestion)
		case ch == '`':
			end = skipQuoted(query, i, ch, false)
		case ch == '[' && style == PlaceholderAt:
			end = skipQuoted(query, i, ']', false)
		case strings.HasPrefix(query[i:], "--"):
			end = len(query)
			if nl := strings.IndexByte(query[i:], '\n'); nl != -1 {
				end = i + nl
			}
		case strings.HasPrefix(query[i:], "::"):
			end = i + 2
		}
		if end == i {
			out.WriteByte(ch)
			i++
			continue
		}

		token := "\x00" + strconv.Itoa(len(pairs)/2) + "\x00"
		pairs = append(pairs, token, query[i:end])
		out.WriteString(token)
		i = end
	}
	return out.String(), strings.NewReplacer(pairs...)
}

// skipQuoted returns the index just past the quoted run starting at start.
// A doubled closing character is an escape, as is any character after a
// backslash when backslash is set. An unterminated run ends the query.
func skipQuoted(query string, start int, closing byte, backslash bool) int {
	for i := start + 1; i < len(query); i++ {
		switch {
		case backslash && query[i] == '\\':
			i++
		case query[i] != closing:
		case i+1 < len(query) && query[i+1] == closing:
			i++
		default:
			return i + 1
		}
	}
	return len(query)
}

// missingName extracts the parameter name from sqlx's unbound-name error.
func missingName(err error) (string, bool) {
	rest, ok := strings.CutPrefix(err.Error(), "could not find name ")
	if !ok {
		return "", false
	}
	name, _, ok := strings.Cut(rest, " in ")
	return name, ok
}
