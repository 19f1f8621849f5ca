// Package postgres provides the PostgreSQL dialect for unverdad conditions.
package postgres

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/John-Tuesday/unverdad"
	"github.com/John-Tuesday/unverdad/internal/render"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
)

// DriverName is the database/sql driver registered by pgx.
const DriverName = "pgx"

// Renderer implements the PostgreSQL dialect.
type Renderer struct{}

// New creates a new PostgreSQL renderer.
func New() *Renderer {
	return &Renderer{}
}

var _ render.Dialect = (*Renderer)(nil)

// Name returns the configuration name of the dialect.
func (r *Renderer) Name() string {
	return "postgres"
}

// DriverName returns the database/sql driver name.
func (r *Renderer) DriverName() string {
	return DriverName
}

// Open parses dsn with pgx and opens it through the pgx stdlib adapter.
func (r *Renderer) Open(dsn string) (*sql.DB, error) {
	cfg, err := pgx.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parsing postgres dsn: %w", err)
	}
	return stdlib.OpenDB(*cfg), nil
}

// QuoteIdentifier quotes a PostgreSQL identifier with double quotes.
func (r *Renderer) QuoteIdentifier(name string) string {
	escaped := strings.ReplaceAll(name, `"`, `""`)
	return `"` + escaped + `"`
}

// Bind numbers placeholders $1, $2, ... reusing the number of a repeated name.
func (r *Renderer) Bind(query string, params unverdad.NamedParams) (render.Bound, error) {
	return render.Bind(r.Name(), render.PlaceholderDollar, query, params)
}

// MatchName builds the name match from TRANSLATE and a LIKE pattern.
func (r *Renderer) MatchName() string {
	return "LOWER(TRANSLATE({param}, '_', ' ')) LIKE '%' || LOWER(TRANSLATE({column}, '_', ' ')) || '%'"
}

// CreateTable returns a CREATE TABLE IF NOT EXISTS statement.
func (r *Renderer) CreateTable(name string, defs []string) string {
	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s)", r.QuoteIdentifier(name), strings.Join(defs, ", "))
}

// CreateView returns a CREATE OR REPLACE VIEW statement.
func (r *Renderer) CreateView(name, query string) string {
	return fmt.Sprintf("CREATE OR REPLACE VIEW %s AS %s", r.QuoteIdentifier(name), query)
}

// Capabilities returns the SQL features supported by PostgreSQL.
func (r *Renderer) Capabilities() render.Capabilities {
	return render.Capabilities{
		Placeholder:       render.PlaceholderDollar,
		NameMatchFunction: false,
		CreateIfNotExists: true,
		BoolType:          "BOOLEAN",
		TextType:          "TEXT",
	}
}
