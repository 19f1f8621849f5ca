package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/John-Tuesday/unverdad"
)

// SchemaStatus is the result of comparing a table with its expected definition.
type SchemaStatus int

const (
	SchemaEqual SchemaStatus = iota
	SchemaDiff
	SchemaNonexistent
)

func (s SchemaStatus) String() string {
	switch s {
	case SchemaEqual:
		return "EQUAL"
	case SchemaDiff:
		return "DIFF"
	case SchemaNonexistent:
		return "NONEXISTENT"
	default:
		return "UNKNOWN"
	}
}

// VerifySchema reports the status of every table. SQLite compares the
// stored CREATE statement; other databases only report whether the table
// exists.
func (s *Store) VerifySchema(ctx context.Context) (map[string]SchemaStatus, error) {
	out := make(map[string]SchemaStatus, len(tables))
	for _, t := range tables {
		status, err := s.verifyTable(ctx, t)
		if err != nil {
			return nil, fmt.Errorf("verifying table %s: %w", t.name, err)
		}
		out[t.name] = status
	}
	return out, nil
}

func (s *Store) verifyTable(ctx context.Context, t tableDef) (SchemaStatus, error) {
	filter := s.Filter()
	leaf, err := filter.AddLeaf("", unverdad.AND)
	if err != nil {
		return 0, err
	}

	var query string
	switch s.dialect.Name() {
	case "sqlite":
		leaf.MustAdd("type", "table", unverdad.EQ)
		leaf.MustAdd("name", t.name, unverdad.EQ)
		query = "SELECT sql FROM sqlite_master " + unverdad.Where(filter)
	case "postgres":
		leaf.MustAdd("table_name", t.name, unverdad.EQ)
		query = "SELECT table_name FROM information_schema.tables " + unverdad.Where(filter) + " AND table_schema = current_schema()"
	case "mariadb":
		leaf.MustAdd("table_name", t.name, unverdad.EQ)
		query = "SELECT table_name FROM information_schema.tables " + unverdad.Where(filter) + " AND table_schema = DATABASE()"
	default:
		leaf.MustAdd("TABLE_NAME", t.name, unverdad.EQ)
		query = "SELECT TABLE_NAME FROM INFORMATION_SCHEMA.TABLES " + unverdad.Where(filter) + " AND TABLE_SCHEMA = SCHEMA_NAME()"
	}

	row, err := s.QueryRow(ctx, query, filter.Params())
	if err != nil {
		return 0, err
	}
	var got string
	if err := row.Scan(&got); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return SchemaNonexistent, nil
		}
		return 0, err
	}

	if s.dialect.Name() != "sqlite" {
		return SchemaEqual, nil
	}
	want := strings.Replace(createTableSQL(s.dialect, t), "CREATE TABLE IF NOT EXISTS", "CREATE TABLE", 1)
	if normalizeSQL(got) != normalizeSQL(want) {
		return SchemaDiff, nil
	}
	return SchemaEqual, nil
}

func normalizeSQL(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// SyncGamePaths sets game_path on each game whose name matches a key of
// paths, e.g. "guilty_gear_strive" for "Guilty Gear Strive". Keys are
// applied in sorted order.
func (s *Store) SyncGamePaths(ctx context.Context, paths map[string]string) (int64, error) {
	names := make([]string, 0, len(paths))
	for name := range paths {
		names = append(names, name)
	}
	sort.Strings(names)

	var total int64
	for _, name := range names {
		filter := s.Filter()
		if err := s.Games.NameLeaf(filter, "name", name); err != nil {
			return total, err
		}
		path := sql.NullString{String: paths[name], Valid: paths[name] != ""}
		n, err := s.Games.SetPath(ctx, filter, path)
		if err != nil {
			return total, fmt.Errorf("syncing path for %s: %w", name, err)
		}
		if n == 0 {
			s.logger.Warn("no game matches configured name", "name", name)
		}
		total += n
	}
	return total, nil
}
