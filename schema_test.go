package unverdad

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/zoobzio/dbml"
)

func testSchema(t *testing.T) *Schema {
	t.Helper()

	project := dbml.NewProject("unverdad")

	mod := dbml.NewTable("mod")
	mod.AddColumn(dbml.NewColumn("mod_id", "uuid"))
	mod.AddColumn(dbml.NewColumn("name", "varchar(255)"))
	mod.AddColumn(dbml.NewColumn("enabled", "boolean"))
	project.AddTable(mod)

	game := dbml.NewTable("game")
	game.AddColumn(dbml.NewColumn("game_id", "uuid"))
	game.AddColumn(dbml.NewColumn("game_path", "path"))
	project.AddTable(game)

	s, err := NewSchema(project)
	if err != nil {
		t.Fatalf("NewSchema() error = %v", err)
	}
	return s
}

func TestTypeOf(t *testing.T) {
	tests := []struct {
		dbml string
		want ValueType
	}{
		{"uuid", TypeUUID},
		{"varchar(255)", TypeString},
		{"TEXT", TypeString},
		{"bigint", TypeInteger},
		{"numeric(10, 2)", TypeReal},
		{"boolean", TypeBool},
		{"path", TypePath},
		{"bytea", TypeBytes},
		{"timestamp", TypeAny},
	}

	for _, tt := range tests {
		if got := TypeOf(tt.dbml); got != tt.want {
			t.Errorf("TypeOf(%q) = %q, want %q", tt.dbml, got, tt.want)
		}
	}
}

func TestSchemaColumn(t *testing.T) {
	s := testSchema(t)

	col, err := s.Column("mod", "mod_id")
	if err != nil {
		t.Fatalf("Column() error = %v", err)
	}
	if col.Type != TypeUUID || col.Table != "mod" {
		t.Errorf("Column() = %+v", col)
	}

	if _, err := s.Column("mod", "missing"); err == nil {
		t.Error("Column() should fail for an unknown column")
	}
	if _, err := s.Column("missing", "mod_id"); err == nil {
		t.Error("Column() should fail for an unknown table")
	}
	if !s.HasTable("game") || s.HasTable("pak") {
		t.Error("HasTable() mismatch")
	}
}

func TestSchemaLeaf(t *testing.T) {
	s := testSchema(t)
	b := MustBranch(AND)

	mods, err := s.Leaf(b, "mod", "", OR)
	if err != nil {
		t.Fatalf("Leaf() error = %v", err)
	}

	err = mods.Add("mod_id", "not-a-uuid", EQ)
	var valErr ValidationError
	if !errors.As(err, &valErr) {
		t.Fatalf("Add() error = %v, want ValidationError", err)
	}

	id := uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")
	mods.MustAdd("mod_id", id, EQ)
	mods.MustAdd("name", "Sol Badguy", EQ)

	if err := mods.Add("unknown", 1, EQ); err == nil {
		t.Error("Add() should reject an unknown column")
	}
	if err := mods.Add("mod_id", nil, EQ); !errors.As(err, &valErr) {
		t.Errorf("Add(nil) error = %v, want ValidationError", err)
	}

	want := "(mod_id = :mod_id__0 OR name = :name__0)"
	if got := b.Render(); got != want {
		t.Errorf("Render() = %q, want %q", got, want)
	}
	if mods.Table() != "mod" {
		t.Errorf("Table() = %q", mods.Table())
	}

	if _, err := s.Leaf(b, "pak", "", AND); err == nil {
		t.Error("Leaf() should reject an unknown table")
	}
}

func TestNewSchemaNil(t *testing.T) {
	_, err := NewSchema(nil)
	var usage UsageError
	if !errors.As(err, &usage) {
		t.Errorf("NewSchema(nil) error = %v, want UsageError", err)
	}
}
