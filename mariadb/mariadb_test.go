package mariadb

import (
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
	if r.DriverName() != "mysql" {
		t.Errorf("DriverName() = %q, want %q", r.DriverName(), "mysql")
	}
}

func TestQuoteIdentifier(t *testing.T) {
	r := New()
	if got := r.QuoteIdentifier("mod"); got != "`mod`" {
		t.Errorf("QuoteIdentifier() = %q", got)
	}
	if got := r.QuoteIdentifier("a`b"); got != "`a``b`" {
		t.Errorf("QuoteIdentifier() = %q", got)
	}
}

func TestBindRepeatsArgs(t *testing.T) {
	r := New()
	params := unverdad.NewNamedParams(map[string]any{"name__0": "ky"})

	b, err := r.Bind("name = :name__0 OR alt = :name__0", params)
	if err != nil {
		t.Fatalf("Bind() error = %v", err)
	}
	if b.Query != "name = ? OR alt = ?" {
		t.Errorf("Query = %q", b.Query)
	}
	if len(b.Args) != 2 || b.Args[0] != "ky" || b.Args[1] != "ky" {
		t.Errorf("Args = %v", b.Args)
	}
}

func TestBindBacktickIdentifier(t *testing.T) {
	r := New()
	params := unverdad.NewNamedParams(map[string]any{"enabled": true})
	b, err := r.Bind("UPDATE `mod:x` SET enabled = :enabled", params)
	if err != nil {
		t.Fatalf("Bind() error = %v", err)
	}
	if b.Query != "UPDATE `mod:x` SET enabled = ?" {
		t.Errorf("Query = %q", b.Query)
	}
}

func TestBindBackslashEscape(t *testing.T) {
	params := unverdad.NewNamedParams(map[string]any{"id__0": 7})
	b, err := New().Bind(`SELECT 'it\'s :x' FROM t WHERE id = :id__0`, params)
	if err != nil {
		t.Fatalf("Bind() error = %v", err)
	}
	if b.Query != `SELECT 'it\'s :x' FROM t WHERE id = ?` {
		t.Errorf("Query = %q", b.Query)
	}
	if len(b.Args) != 1 || b.Args[0] != 7 {
		t.Errorf("Args = %v", b.Args)
	}
}

func TestNormalizeDSN(t *testing.T) {
	got, err := NormalizeDSN("user:pass@tcp(localhost:3306)/unverdad")
	if err != nil {
		t.Fatalf("NormalizeDSN() error = %v", err)
	}
	if !strings.Contains(got, "parseTime=true") {
		t.Errorf("NormalizeDSN() = %q, want parseTime=true", got)
	}

	if _, err := NormalizeDSN("not a dsn"); err == nil {
		t.Error("NormalizeDSN() should reject an invalid dsn")
	}
}

func TestMatchNameTemplate(t *testing.T) {
	l := unverdad.MustLeaf("", unverdad.AND)
	if err := l.AddExpr("name", New().MatchName(), "x"); err != nil {
		t.Fatalf("AddExpr() error = %v", err)
	}
	want := "(LOWER(REPLACE(:name__0, '_', ' ')) LIKE CONCAT('%', LOWER(REPLACE(name, '_', ' ')), '%'))"
	if got := l.Render(); got != want {
		t.Errorf("Render() = %q, want %q", got, want)
	}
}

func TestCapabilities(t *testing.T) {
	caps := New().Capabilities()
	if caps.Placeholder != render.PlaceholderQuestion {
		t.Errorf("Placeholder = %v", caps.Placeholder)
	}
	if caps.TextType != "VARCHAR(255)" {
		t.Errorf("TextType = %q", caps.TextType)
	}
}
