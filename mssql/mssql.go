// Package mssql provides the SQL Server dialect for unverdad conditions.
package mssql

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/John-Tuesday/unverdad"
	"github.com/John-Tuesday/unverdad/internal/render"
	_ "github.com/microsoft/go-mssqldb" // registers the sqlserver driver
)

// DriverName is the database/sql driver registered by go-mssqldb.
const DriverName = "sqlserver"

// Renderer implements the SQL Server dialect.
type Renderer struct{}

// New creates a new SQL Server renderer.
func New() *Renderer {
	return &Renderer{}
}

var _ render.Dialect = (*Renderer)(nil)

// Name returns the configuration name of the dialect.
func (r *Renderer) Name() string {
	return "mssql"
}

// DriverName returns the database/sql driver name.
func (r *Renderer) DriverName() string {
	return DriverName
}

// Open opens dsn with the sqlserver driver.
func (r *Renderer) Open(dsn string) (*sql.DB, error) {
	db, err := sql.Open(DriverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("opening mssql database: %w", err)
	}
	return db, nil
}

// QuoteIdentifier quotes a SQL Server identifier with square brackets.
func (r *Renderer) QuoteIdentifier(name string) string {
	escaped := strings.ReplaceAll(name, "]", "]]")
	return "[" + escaped + "]"
}

// Bind rewrites :name to @p1, @p2 placeholders.
func (r *Renderer) Bind(query string, params unverdad.NamedParams) (render.Bound, error) {
	return render.Bind(r.Name(), render.PlaceholderAt, query, params)
}

// MatchName builds the name match from REPLACE and a LIKE pattern.
func (r *Renderer) MatchName() string {
	return "LOWER(REPLACE({param}, '_', ' ')) LIKE '%' + LOWER(REPLACE({column}, '_', ' ')) + '%'"
}

// CreateTable guards CREATE TABLE with OBJECT_ID since SQL Server has no
// IF NOT EXISTS form.
func (r *Renderer) CreateTable(name string, defs []string) string {
	quoted := strings.ReplaceAll(name, "'", "''")
	return fmt.Sprintf("IF OBJECT_ID(N'%s', N'U') IS NULL CREATE TABLE %s (%s)",
		quoted, r.QuoteIdentifier(name), strings.Join(defs, ", "))
}

// CreateView returns a CREATE OR ALTER VIEW statement.
func (r *Renderer) CreateView(name, query string) string {
	return fmt.Sprintf("CREATE OR ALTER VIEW %s AS %s", r.QuoteIdentifier(name), query)
}

// Capabilities returns the SQL features supported by SQL Server.
func (r *Renderer) Capabilities() render.Capabilities {
	return render.Capabilities{
		Placeholder:       render.PlaceholderAt,
		NameMatchFunction: false,
		CreateIfNotExists: false,
		BoolType:          "BIT",
		TextType:          "NVARCHAR(255)",
	}
}
