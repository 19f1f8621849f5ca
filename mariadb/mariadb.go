// Package mariadb provides the MariaDB and MySQL dialect for unverdad conditions.
package mariadb

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/John-Tuesday/unverdad"
	"github.com/John-Tuesday/unverdad/internal/render"
	"github.com/go-sql-driver/mysql"
)

// DriverName is the database/sql driver registered by go-sql-driver/mysql.
const DriverName = "mysql"

// Renderer implements the MariaDB dialect.
type Renderer struct{}

// New creates a new MariaDB renderer.
func New() *Renderer {
	return &Renderer{}
}

var _ render.Dialect = (*Renderer)(nil)

// Name returns the configuration name of the dialect.
func (r *Renderer) Name() string {
	return "mariadb"
}

// DriverName returns the database/sql driver name.
func (r *Renderer) DriverName() string {
	return DriverName
}

// Open normalizes dsn with the driver's config and opens it.
func (r *Renderer) Open(dsn string) (*sql.DB, error) {
	normalized, err := NormalizeDSN(dsn)
	if err != nil {
		return nil, err
	}
	db, err := sql.Open(DriverName, normalized)
	if err != nil {
		return nil, fmt.Errorf("opening mariadb database: %w", err)
	}
	return db, nil
}

// NormalizeDSN parses dsn and enables time parsing so DATETIME columns
// scan into time.Time.
func NormalizeDSN(dsn string) (string, error) {
	cfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		return "", fmt.Errorf("parsing mariadb dsn: %w", err)
	}
	cfg.ParseTime = true
	return cfg.FormatDSN(), nil
}

// QuoteIdentifier quotes a MariaDB identifier with backticks.
func (r *Renderer) QuoteIdentifier(name string) string {
	escaped := strings.ReplaceAll(name, "`", "``")
	return "`" + escaped + "`"
}

// Bind writes one ? per placeholder occurrence.
func (r *Renderer) Bind(query string, params unverdad.NamedParams) (render.Bound, error) {
	return render.Bind(r.Name(), render.PlaceholderQuestion, query, params)
}

// MatchName builds the name match from REPLACE and a LIKE pattern.
func (r *Renderer) MatchName() string {
	return "LOWER(REPLACE({param}, '_', ' ')) LIKE CONCAT('%', LOWER(REPLACE({column}, '_', ' ')), '%')"
}

// CreateTable returns a CREATE TABLE IF NOT EXISTS statement.
func (r *Renderer) CreateTable(name string, defs []string) string {
	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s)", r.QuoteIdentifier(name), strings.Join(defs, ", "))
}

// CreateView returns a CREATE OR REPLACE VIEW statement.
func (r *Renderer) CreateView(name, query string) string {
	return fmt.Sprintf("CREATE OR REPLACE VIEW %s AS %s", r.QuoteIdentifier(name), query)
}

// Capabilities returns the SQL features supported by MariaDB.
func (r *Renderer) Capabilities() render.Capabilities {
	return render.Capabilities{
		Placeholder:       render.PlaceholderQuestion,
		NameMatchFunction: false,
		CreateIfNotExists: true,
		BoolType:          "BOOLEAN",
		TextType:          "VARCHAR(255)",
	}
}
