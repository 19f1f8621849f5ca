package postgres

import (
	"errors"
	"strings"
	"testing"

	"github.com/John-Tuesday/unverdad"
	"github.com/John-Tuesday/unverdad/internal/render"
)

func TestNew(t *testing.T) {
	r := New()
	if r == nil {
		t.Fatal("New() returned nil")
	}
	if r.DriverName() != "pgx" {
		t.Errorf("DriverName() = %q, want %q", r.DriverName(), "pgx")
	}
}

func TestBind(t *testing.T) {
	r := New()
	root := unverdad.MustBranch(unverdad.AND)
	root.MustAddLeaf("", unverdad.OR).MustAdd("mod_id", "a", unverdad.EQ).MustAdd("name", "n", unverdad.EQ)
	root.MustAddLeaf("", unverdad.AND).MustAdd("game_id", "g", unverdad.EQ)

	query := `UPDATE "mod" SET enabled = :enabled ` + unverdad.Where(root)
	b, err := r.Bind(query, root.Params().With("enabled", true))
	if err != nil {
		t.Fatalf("Bind() error = %v", err)
	}

	want := `UPDATE "mod" SET enabled = $1 WHERE ((mod_id = $2 OR name = $3) AND (game_id = $4))`
	if b.Query != want {
		t.Errorf("Query = %q, want %q", b.Query, want)
	}
	wantArgs := []any{true, "a", "n", "g"}
	for i, arg := range wantArgs {
		if b.Args[i] != arg {
			t.Errorf("Args[%d] = %v, want %v", i, b.Args[i], arg)
		}
	}
}

func TestBindMissing(t *testing.T) {
	_, err := New().Bind("x = :missing", unverdad.NamedParams{})
	var missing render.MissingParamError
	if !errors.As(err, &missing) {
		t.Fatalf("Bind() error = %v, want MissingParamError", err)
	}
	if missing.Dialect != "postgres" {
		t.Errorf("Dialect = %q", missing.Dialect)
	}
}

func TestMatchName(t *testing.T) {
	r := New()
	l := unverdad.MustLeaf("g", unverdad.AND)
	if err := l.AddExpr("name", r.MatchName(), "Guilty Gear Strive"); err != nil {
		t.Fatalf("AddExpr() error = %v", err)
	}
	b, err := r.Bind(l.Render(), l.Params())
	if err != nil {
		t.Fatalf("Bind() error = %v", err)
	}
	want := "(LOWER(TRANSLATE($1, '_', ' ')) LIKE '%' || LOWER(TRANSLATE(g.name, '_', ' ')) || '%')"
	if b.Query != want {
		t.Errorf("Query = %q, want %q", b.Query, want)
	}
}

func TestDDL(t *testing.T) {
	r := New()
	got := r.CreateTable("game", []string{"game_id TEXT PRIMARY KEY"})
	if got != `CREATE TABLE IF NOT EXISTS "game" (game_id TEXT PRIMARY KEY)` {
		t.Errorf("CreateTable() = %q", got)
	}
	if got := r.CreateView("v_mod", "SELECT 1"); !strings.HasPrefix(got, "CREATE OR REPLACE VIEW") {
		t.Errorf("CreateView() = %q", got)
	}
}

func TestOpenInvalidDSN(t *testing.T) {
	if _, err := New().Open("postgres://user@host:notaport/db"); err == nil {
		t.Error("Open() should reject an invalid dsn")
	}
}

func TestCapabilities(t *testing.T) {
	caps := New().Capabilities()
	if caps.Placeholder != render.PlaceholderDollar || caps.NameMatchFunction {
		t.Errorf("Capabilities() = %+v", caps)
	}
}
