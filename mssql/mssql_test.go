package mssql

import (
	"testing"

	"github.com/John-Tuesday/unverdad"
	"github.com/John-Tuesday/unverdad/internal/render"
)

func TestNew(t *testing.T) {
	r := New()
	if r == nil {
		t.Fatal("New() returned nil")
	}
	if r.DriverName() != "sqlserver" {
		t.Errorf("DriverName() = %q, want %q", r.DriverName(), "sqlserver")
	}
}

func TestQuoteIdentifier(t *testing.T) {
	r := New()
	if got := r.QuoteIdentifier("mod"); got != "[mod]" {
		t.Errorf("QuoteIdentifier() = %q", got)
	}
	if got := r.QuoteIdentifier("a]b"); got != "[a]]b]" {
		t.Errorf("QuoteIdentifier() = %q", got)
	}
}

func TestBind(t *testing.T) {
	r := New()
	leaf := unverdad.MustLeaf("m", unverdad.OR)
	leaf.MustAdd("mod_id", "a", unverdad.EQ)
	leaf.MustAdd("enabled", true, unverdad.NE)

	b, err := r.Bind("SELECT * FROM [mod] m "+unverdad.Where(leaf), leaf.Params())
	if err != nil {
		t.Fatalf("Bind() error = %v", err)
	}
	want := "SELECT * FROM [mod] m WHERE (m.mod_id = @p1 OR m.enabled != @p2)"
	if b.Query != want {
		t.Errorf("Query = %q, want %q", b.Query, want)
	}
	if len(b.Args) != 2 || b.Args[0] != "a" || b.Args[1] != true {
		t.Errorf("Args = %v", b.Args)
	}
}

func TestBindBracketIdentifier(t *testing.T) {
	params := unverdad.NewNamedParams(map[string]any{"x": 1})
	b, err := New().Bind("SELECT [a:b] FROM t WHERE c = :x", params)
	if err != nil {
		t.Fatalf("Bind() error = %v", err)
	}
	if b.Query != "SELECT [a:b] FROM t WHERE c = @p1" {
		t.Errorf("Query = %q", b.Query)
	}
}

func TestCreateTable(t *testing.T) {
	got := New().CreateTable("game", []string{"game_id NVARCHAR(36) PRIMARY KEY"})
	want := "IF OBJECT_ID(N'game', N'U') IS NULL CREATE TABLE [game] (game_id NVARCHAR(36) PRIMARY KEY)"
	if got != want {
		t.Errorf("CreateTable() = %q, want %q", got, want)
	}
}

func TestCapabilities(t *testing.T) {
	caps := New().Capabilities()
	if caps.Placeholder != render.PlaceholderAt || caps.CreateIfNotExists {
		t.Errorf("Capabilities() = %+v", caps)
	}
	if caps.BoolType != "BIT" {
		t.Errorf("BoolType = %q", caps.BoolType)
	}
}
