// Package filters parses list query strings into typed filters and applies
// them to orm queries. Parsing never drops a malformed value silently: it is
// reported as a field error so the handler can answer 422.
package filters

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/shashiranjanraj/automart/pkg/orm"
	"github.com/shopspring/decimal"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Page is the requested slice of a list.
type Page struct {
	Number int
	Size   int
}

// Errors collects field → message pairs while parsing.
type Errors map[string]string

func (e Errors) add(field, msg string) {
	if _, ok := e[field]; !ok {
		e[field] = msg
	}
}

// ParsePage reads page and page_size. Sizes above MaxPageSize are clamped.
func ParsePage(q url.Values, errs Errors) Page {
	p := Page{Number: 1, Size: DefaultPageSize}
	if n, ok := positiveInt(q, "page", errs); ok {
		p.Number = n
	}
	if n, ok := positiveInt(q, "page_size", errs); ok {
		p.Size = min(n, MaxPageSize)
	}
	return p
}

// Terms splits search= into lower-cased whitespace separated terms.
func Terms(q url.Values) []string {
	return strings.Fields(strings.ToLower(q.Get("search")))
}

// likeEscape is portable across the supported drivers; a backslash would
// need doubling inside a MySQL string literal.
const likeEscape = "!"

var likeReplacer = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_", "[", "![")

// containsPattern matches term literally anywhere in a value. "[" is escaped
// for SQL Server, which treats it as a character class.
func containsPattern(term string) string {
	return "%" + likeReplacer.Replace(term) + "%"
}

// likeClause is "LOWER(column) LIKE ? ESCAPE '!'".
func likeClause(column string) string {
	return "LOWER(" + column + ") LIKE ? ESCAPE '" + likeEscape + "'"
}

// NameSearch requires every term to appear in column, case-insensitively.
func NameSearch(query *orm.Query, column string, terms []string) *orm.Query {
	for _, t := range terms {
		query = query.Where(likeClause(column), containsPattern(t))
	}
	return query
}

func positiveInt(q url.Values, key string, errs Errors) (int, bool) {
	raw := strings.TrimSpace(q.Get(key))
	if raw == "" {
		return 0, false
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		errs.add(key, fmt.Sprintf("The %s must be a positive integer.", key))
		return 0, false
	}
	return n, true
}

func parseID(q url.Values, key string, errs Errors) *uint {
	raw := strings.TrimSpace(q.Get(key))
	if raw == "" {
		return nil
	}
	n, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || n == 0 {
		errs.add(key, fmt.Sprintf("The %s must be a valid id.", key))
		return nil
	}
	id := uint(n)
	return &id
}

func parseInt(q url.Values, key string, errs Errors) *int {
	raw := strings.TrimSpace(q.Get(key))
	if raw == "" {
		return nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		errs.add(key, fmt.Sprintf("The %s must be an integer.", key))
		return nil
	}
	return &n
}

func parseDecimal(q url.Values, key string, errs Errors) *decimal.Decimal {
	raw := strings.TrimSpace(q.Get(key))
	if raw == "" {
		return nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		errs.add(key, fmt.Sprintf("The %s must be a number.", key))
		return nil
	}
	return &d
}
