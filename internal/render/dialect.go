package render

import (
	"database/sql"

	"github.com/John-Tuesday/unverdad"
)

// Dialect adapts rendered conditions and schema statements to one database.
type Dialect interface {
	// Name is the configuration name, e.g. "sqlite".
	Name() string
	// DriverName is the database/sql driver the dialect expects.
	DriverName() string
	Capabilities() Capabilities
	// Open connects with the dialect's driver.
	Open(dsn string) (*sql.DB, error)
	QuoteIdentifier(name string) string
	// Bind rewrites :name placeholders for the driver.
	Bind(query string, params unverdad.NamedParams) (Bound, error)
	// MatchName returns an expression template for Leaf.AddExpr that
	// matches names case-insensitively, treating '_' and ' ' as equal.
	MatchName() string
	// CreateTable returns a statement creating name unless it exists.
	CreateTable(name string, defs []string) string
	// CreateView returns a statement creating or replacing view name.
	CreateView(name, query string) string
}
