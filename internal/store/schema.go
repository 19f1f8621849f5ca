package store

import (
	"fmt"
	"strings"

	"github.com/John-Tuesday/unverdad/internal/render"
	"github.com/zoobzio/dbml"
)

// Table and view names.
const (
	TableGame        = "game"
	TableMod         = "mod"
	TablePak         = "pak"
	TableCategory    = "category"
	TableModCategory = "mod_category"
	ViewMod          = "v_mod"
)

type columnDef struct {
	name        string
	dbmlType    string
	constraints string
}

type tableDef struct {
	name    string
	columns []columnDef
	// table constraints; {table} references are quoted by SQL
	extra []string
}

// tables lists the tables in creation order.
var tables = []tableDef{
	{
		name: TableGame,
		columns: []columnDef{
			{"game_id", "uuid", "PRIMARY KEY"},
			{"gb_game_id", "integer", ""},
			{"name", "varchar", "NOT NULL UNIQUE"},
			{"game_path", "path", "UNIQUE"},
			{"game_path_offset", "path", "NOT NULL"},
			{"mods_home_relative_path", "path", "NOT NULL"},
		},
	},
	{
		name: TableMod,
		columns: []columnDef{
			{"mod_id", "uuid", "PRIMARY KEY"},
			{"gb_mod_id", "integer", ""},
			{"game_id", "uuid", "NOT NULL"},
			{"name", "varchar", "NOT NULL UNIQUE"},
			{"enabled", "boolean", "NOT NULL"},
		},
		extra: []string{
			"FOREIGN KEY (game_id) REFERENCES {game} (game_id) ON DELETE CASCADE",
		},
	},
	{
		name: TablePak,
		columns: []columnDef{
			{"pak_id", "uuid", "PRIMARY KEY"},
			{"mod_id", "uuid", "NOT NULL"},
			{"pak_path", "path", "NOT NULL"},
			{"sig_path", "path", "NOT NULL"},
		},
		extra: []string{
			"FOREIGN KEY (mod_id) REFERENCES {mod} (mod_id) ON DELETE CASCADE",
		},
	},
	{
		name: TableCategory,
		columns: []columnDef{
			{"category_id", "uuid", "PRIMARY KEY"},
			{"parent_id", "uuid", ""},
			{"name", "varchar", "NOT NULL"},
		},
		extra: []string{
			"FOREIGN KEY (parent_id) REFERENCES {category} (category_id)",
		},
	},
	{
		name: TableModCategory,
		columns: []columnDef{
			{"mod_id", "uuid", "NOT NULL"},
			{"category_id", "uuid", "NOT NULL"},
		},
		extra: []string{
			"PRIMARY KEY (mod_id, category_id)",
			"FOREIGN KEY (mod_id) REFERENCES {mod} (mod_id) ON DELETE CASCADE",
			"FOREIGN KEY (category_id) REFERENCES {category} (category_id) ON DELETE CASCADE",
		},
	},
}

// viewColumns lists the columns of v_mod with the table they come from.
var viewColumns = []struct {
	name, source, dbmlType string
}{
	{"mod_id", "m.mod_id", "uuid"},
	{"mod_name", "m.name", "varchar"},
	{"enabled", "m.enabled", "boolean"},
	{"game_id", "g.game_id", "uuid"},
	{"game_name", "g.name", "varchar"},
	{"game_path", "g.game_path", "path"},
	{"game_path_offset", "g.game_path_offset", "path"},
	{"mods_home_relative_path", "g.mods_home_relative_path", "path"},
}

// Project returns the tables and the v_mod view as a DBML project, used to
// validate filter values against column types.
func Project() *dbml.Project {
	project := dbml.NewProject("unverdad")
	for _, def := range tables {
		table := dbml.NewTable(def.name)
		for _, col := range def.columns {
			table.AddColumn(dbml.NewColumn(col.name, col.dbmlType))
		}
		project.AddTable(table)
	}

	view := dbml.NewTable(ViewMod)
	for _, col := range viewColumns {
		view.AddColumn(dbml.NewColumn(col.name, col.dbmlType))
	}
	project.AddTable(view)
	return project
}

// sqlType maps a DBML column type to the dialect's column type.
func sqlType(d render.Dialect, dbmlType string) string {
	caps := d.Capabilities()
	switch dbmlType {
	case "uuid":
		if d.Name() == "sqlite" {
			return "TEXT"
		}
		return "CHAR(36)"
	case "integer":
		return "BIGINT"
	case "boolean":
		return caps.BoolType
	default:
		return caps.TextType
	}
}

// createTableSQL renders the CREATE TABLE statement for def.
func createTableSQL(d render.Dialect, def tableDef) string {
	defs := make([]string, 0, len(def.columns)+len(def.extra))
	for _, col := range def.columns {
		line := d.QuoteIdentifier(col.name) + " " + sqlType(d, col.dbmlType)
		if col.constraints != "" {
			line += " " + col.constraints
		}
		defs = append(defs, line)
	}
	for _, extra := range def.extra {
		defs = append(defs, SQL(d, extra))
	}
	return d.CreateTable(def.name, defs)
}

// createViewSQL renders the statement creating v_mod.
func createViewSQL(d render.Dialect) string {
	cols := make([]string, len(viewColumns))
	for i, col := range viewColumns {
		cols[i] = fmt.Sprintf("%s AS %s", col.source, d.QuoteIdentifier(col.name))
	}
	query := fmt.Sprintf("SELECT %s FROM %s m JOIN %s g ON m.game_id = g.game_id WHERE g.game_path IS NOT NULL",
		strings.Join(cols, ", "), d.QuoteIdentifier(TableMod), d.QuoteIdentifier(TableGame))
	return d.CreateView(ViewMod, query)
}

// SQL returns s with {table} references quoted for the dialect.
func SQL(d render.Dialect, s string) string {
	pairs := make([]string, 0, 2*len(tables)+2)
	for _, def := range tables {
		pairs = append(pairs, "{"+def.name+"}", d.QuoteIdentifier(def.name))
	}
	pairs = append(pairs, "{"+ViewMod+"}", d.QuoteIdentifier(ViewMod))
	return strings.NewReplacer(pairs...).Replace(s)
}
