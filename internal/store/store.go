// Package store persists games, mods and their files in a relational
// database and runs queries filtered by unverdad conditions.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/John-Tuesday/unverdad"
	"github.com/John-Tuesday/unverdad/internal/render"
	"github.com/John-Tuesday/unverdad/mariadb"
	"github.com/John-Tuesday/unverdad/mssql"
	"github.com/John-Tuesday/unverdad/postgres"
	"github.com/John-Tuesday/unverdad/sqlite"
)

// Dialect returns the dialect registered under name.
func Dialect(name string) (render.Dialect, error) {
	switch strings.ToLower(name) {
	case "", "sqlite", "sqlite3":
		return sqlite.New(), nil
	case "postgres", "postgresql", "pgx":
		return postgres.New(), nil
	case "mariadb", "mysql":
		return mariadb.New(), nil
	case "mssql", "sqlserver":
		return mssql.New(), nil
	default:
		return nil, fmt.Errorf("unknown database driver %q", name)
	}
}

// Store wraps a database connection for one dialect.
type Store struct {
	db      *sql.DB
	dialect render.Dialect
	schema  *unverdad.Schema
	stmts   *StatementCache
	logger  *slog.Logger

	cacheSize int

	Games      *Games
	Mods       *Mods
	Paks       *Paks
	Categories *Categories
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for query tracing.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithCacheSize sets how many prepared statements are kept.
func WithCacheSize(n int) Option {
	return func(s *Store) {
		s.cacheSize = n
	}
}

// Open connects to dsn with the named dialect and checks the connection.
func Open(ctx context.Context, driver, dsn string, opts ...Option) (*Store, error) {
	d, err := Dialect(driver)
	if err != nil {
		return nil, err
	}
	db, err := d.Open(dsn)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("connecting to %s database: %w", d.Name(), err)
	}
	s, err := New(db, d, opts...)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// New wraps an open database.
func New(db *sql.DB, d render.Dialect, opts ...Option) (*Store, error) {
	if db == nil {
		return nil, errors.New("store: db cannot be nil")
	}
	if d == nil {
		return nil, errors.New("store: dialect cannot be nil")
	}

	s := &Store{
		db:      db,
		dialect: d,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}

	schema, err := unverdad.NewSchema(Project())
	if err != nil {
		return nil, fmt.Errorf("building schema: %w", err)
	}
	s.schema = schema

	stmts, err := NewStatementCache(s.cacheSize)
	if err != nil {
		return nil, err
	}
	s.stmts = stmts

	s.Games = &Games{s: s}
	s.Mods = &Mods{s: s}
	s.Paks = &Paks{s: s}
	s.Categories = &Categories{s: s}
	return s, nil
}

// DB returns the underlying connection pool.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Dialect returns the store's dialect.
func (s *Store) Dialect() render.Dialect {
	return s.dialect
}

// Schema returns the column types of every table and view.
func (s *Store) Schema() *unverdad.Schema {
	return s.schema
}

// Close releases cached statements and closes the database.
func (s *Store) Close() error {
	if err := s.stmts.Close(); err != nil {
		return err
	}
	return s.db.Close()
}

// Init creates missing tables and the v_mod view, then seeds the game table
// with def when it is empty.
func (s *Store) Init(ctx context.Context, def DefaultGame) error {
	for _, t := range tables {
		if _, err := s.db.ExecContext(ctx, createTableSQL(s.dialect, t)); err != nil {
			return fmt.Errorf("creating table %s: %w", t.name, err)
		}
	}
	if _, err := s.db.ExecContext(ctx, createViewSQL(s.dialect)); err != nil {
		return fmt.Errorf("creating view %s: %w", ViewMod, err)
	}

	n, err := s.Games.Count(ctx)
	if err != nil {
		return err
	}
	if n > 0 || def.Name == "" {
		return nil
	}

	g := Game{
		ID:                   NewID(),
		Name:                 def.Name,
		PathOffset:           def.PathOffset,
		ModsHomeRelativePath: def.ModsHomeRelativePath,
	}
	if def.Path != "" {
		g.Path = sql.NullString{String: def.Path, Valid: true}
	}
	if err := s.Games.Create(ctx, g); err != nil {
		return fmt.Errorf("inserting default game: %w", err)
	}
	s.logger.Info("inserted default game", "name", g.Name)
	return nil
}

// Filter returns an empty AND branch whose placeholders are unique within
// any statement built from it.
func (s *Store) Filter() *unverdad.Branch {
	return unverdad.MustBranch(unverdad.AND)
}

// TableLeaf adds a leaf to b that validates values against table's columns.
func (s *Store) TableLeaf(b *unverdad.Branch, table string, logic unverdad.LogicOperator) (*unverdad.TableLeaf, error) {
	return s.schema.Leaf(b, table, "", logic)
}

// MatchName returns the dialect's name matching template for Leaf.AddExpr.
func (s *Store) MatchName() string {
	return s.dialect.MatchName()
}

// SQL quotes the {table} references in query for the store's dialect.
func (s *Store) SQL(query string) string {
	return SQL(s.dialect, query)
}

// Exec binds params into query and executes it through the statement cache.
func (s *Store) Exec(ctx context.Context, query string, params unverdad.NamedParams) (sql.Result, error) {
	stmt, args, err := s.prepare(ctx, query, params)
	if err != nil {
		return nil, err
	}
	return stmt.ExecContext(ctx, args...)
}

// Query binds params into query and runs it through the statement cache.
func (s *Store) Query(ctx context.Context, query string, params unverdad.NamedParams) (*sql.Rows, error) {
	stmt, args, err := s.prepare(ctx, query, params)
	if err != nil {
		return nil, err
	}
	return stmt.QueryContext(ctx, args...)
}

// QueryRow is Query for a single row.
func (s *Store) QueryRow(ctx context.Context, query string, params unverdad.NamedParams) (*sql.Row, error) {
	stmt, args, err := s.prepare(ctx, query, params)
	if err != nil {
		return nil, err
	}
	return stmt.QueryRowContext(ctx, args...), nil
}

func (s *Store) prepare(ctx context.Context, query string, params unverdad.NamedParams) (*sql.Stmt, []any, error) {
	bound, err := s.dialect.Bind(query, params)
	if err != nil {
		return nil, nil, fmt.Errorf("binding query: %w", err)
	}
	s.logger.Debug("query", "sql", bound.Query, "params", params.Keys())

	stmt, err := s.stmts.GetOrPrepare(ctx, s.db, bound.Query)
	if err != nil {
		return nil, nil, fmt.Errorf("preparing query: %w", err)
	}
	return stmt, bound.Args, nil
}

// InTx runs fn inside a transaction, committing when fn returns nil.
func (s *Store) InTx(ctx context.Context, fn func(tx *Tx) error) (err error) {
	sqlTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() {
		if err != nil {
			if rbErr := sqlTx.Rollback(); rbErr != nil {
				s.logger.Warn("rollback failed", "error", rbErr)
			}
		}
	}()

	if err = fn(&Tx{tx: sqlTx, s: s}); err != nil {
		return err
	}
	if err = sqlTx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// Tx runs bound queries inside a transaction. Statements are not cached:
// preparing on the pool could wait on the connection the transaction holds.
type Tx struct {
	tx *sql.Tx
	s  *Store
}

// Exec binds params into query and executes it within the transaction.
func (t *Tx) Exec(ctx context.Context, query string, params unverdad.NamedParams) (sql.Result, error) {
	bound, err := t.s.dialect.Bind(query, params)
	if err != nil {
		return nil, fmt.Errorf("binding query: %w", err)
	}
	t.s.logger.Debug("tx exec", "sql", bound.Query, "params", params.Keys())
	return t.tx.ExecContext(ctx, bound.Query, bound.Args...)
}
