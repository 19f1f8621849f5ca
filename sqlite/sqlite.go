// Package sqlite provides the SQLite dialect for unverdad conditions.
package sqlite

import (
	"database/sql"
	"database/sql/driver"
	"fmt"
	"strings"
	"sync"

	"github.com/John-Tuesday/unverdad"
	"github.com/John-Tuesday/unverdad/internal/render"
	msqlite "modernc.org/sqlite"
)

// DriverName is the database/sql driver registered by modernc.org/sqlite.
const DriverName = "sqlite"

// MatchNameFunc is the SQL function registered by RegisterFunctions.
const MatchNameFunc = "match_name"

var (
	registerOnce sync.Once
	errRegister  error
)

// RegisterFunctions registers match_name(name, value) with the driver.
// It must run before the first connection is opened and is safe to call
// more than once.
func RegisterFunctions() error {
	registerOnce.Do(func() {
		errRegister = msqlite.RegisterDeterministicScalarFunction(MatchNameFunc, 2, matchName)
	})
	return errRegister
}

func matchName(_ *msqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
	name, ok := args[0].(string)
	if !ok {
		return nil, nil
	}
	value, ok := args[1].(string)
	if !ok {
		return nil, nil
	}
	if NameMatches(name, value) {
		return int64(1), nil
	}
	return int64(0), nil
}

// NameMatches reports whether name occurs in value, ignoring case and
// treating '_' and ' ' as the same character.
func NameMatches(name, value string) bool {
	return strings.Contains(normalizeName(value), normalizeName(name))
}

func normalizeName(s string) string {
	return strings.ToLower(strings.ReplaceAll(s, "_", " "))
}

// Renderer implements the SQLite dialect.
type Renderer struct{}

// New creates a new SQLite renderer.
func New() *Renderer {
	return &Renderer{}
}

var _ render.Dialect = (*Renderer)(nil)

// Name returns the configuration name of the dialect.
func (r *Renderer) Name() string {
	return "sqlite"
}

// DriverName returns the database/sql driver name.
func (r *Renderer) DriverName() string {
	return DriverName
}

// Open registers the SQLite functions and opens dsn with foreign keys enforced.
// In-memory databases are limited to one connection so every query sees
// the same database.
func (r *Renderer) Open(dsn string) (*sql.DB, error) {
	if err := RegisterFunctions(); err != nil {
		return nil, fmt.Errorf("registering sqlite functions: %w", err)
	}
	db, err := sql.Open(DriverName, withForeignKeys(dsn))
	if err != nil {
		return nil, fmt.Errorf("opening sqlite database: %w", err)
	}
	if isMemory(dsn) {
		db.SetMaxOpenConns(1)
	}
	return db, nil
}

func withForeignKeys(dsn string) string {
	if strings.Contains(dsn, "foreign_keys") {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "_pragma=foreign_keys(1)"
}

func isMemory(dsn string) bool {
	return dsn == "" || strings.HasPrefix(dsn, ":memory:") || strings.Contains(dsn, "mode=memory")
}

// QuoteIdentifier quotes a SQLite identifier with double quotes.
func (r *Renderer) QuoteIdentifier(name string) string {
	escaped := strings.ReplaceAll(name, `"`, `""`)
	return `"` + escaped + `"`
}

// Bind rewrites :name to ? placeholders.
func (r *Renderer) Bind(query string, params unverdad.NamedParams) (render.Bound, error) {
	return render.Bind(r.Name(), render.PlaceholderQuestion, query, params)
}

// MatchName uses the registered match_name function.
func (r *Renderer) MatchName() string {
	return MatchNameFunc + "({column}, {param})"
}

// CreateTable returns a CREATE TABLE IF NOT EXISTS statement.
func (r *Renderer) CreateTable(name string, defs []string) string {
	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s)", r.QuoteIdentifier(name), strings.Join(defs, ", "))
}

// CreateView returns a CREATE VIEW IF NOT EXISTS statement.
func (r *Renderer) CreateView(name, query string) string {
	return fmt.Sprintf("CREATE VIEW IF NOT EXISTS %s AS %s", r.QuoteIdentifier(name), query)
}

// Capabilities returns the SQL features supported by SQLite.
func (r *Renderer) Capabilities() render.Capabilities {
	return render.Capabilities{
		Placeholder:       render.PlaceholderQuestion,
		NameMatchFunction: true,
		CreateIfNotExists: true,
		BoolType:          "BOOLEAN",
		TextType:          "TEXT",
	}
}
