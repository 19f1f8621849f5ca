package render

import (
	"errors"
	"testing"

	"github.com/John-Tuesday/unverdad"
)

func testParams() unverdad.NamedParams {
	return unverdad.NewNamedParams(map[string]any{
		"mod_id__0": "a",
		"enabled":   true,
		"unused":    1,
	})
}

func TestBindStyles(t *testing.T) {
	query := "UPDATE mod SET enabled = :enabled WHERE (mod_id = :mod_id__0 OR parent = :mod_id__0)"

	tests := []struct {
		name  string
		style PlaceholderStyle
		want  string
	}{
		{"question", PlaceholderQuestion, "UPDATE mod SET enabled = ? WHERE (mod_id = ? OR parent = ?)"},
		{"dollar", PlaceholderDollar, "UPDATE mod SET enabled = $1 WHERE (mod_id = $2 OR parent = $3)"},
		{"at", PlaceholderAt, "UPDATE mod SET enabled = @p1 WHERE (mod_id = @p2 OR parent = @p3)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := Bind("test", tt.style, query, testParams())
			if err != nil {
				t.Fatalf("Bind() error = %v", err)
			}
			if b.Query != tt.want {
				t.Errorf("Query = %q, want %q", b.Query, tt.want)
			}
			want := []any{true, "a", "a"}
			if len(b.Args) != len(want) {
				t.Fatalf("Args = %v, want %v", b.Args, want)
			}
			for i := range want {
				if b.Args[i] != want[i] {
					t.Errorf("Args[%d] = %v, want %v", i, b.Args[i], want[i])
				}
			}
		})
	}
}

func TestBindSkips(t *testing.T) {
	tests := []struct {
		name  string
		style PlaceholderStyle
		query string
		want  string
	}{
		{"string literal", PlaceholderDollar, "name = ':enabled' AND x = :enabled", "name = ':enabled' AND x = $1"},
		{"escaped quote", PlaceholderDollar, "name = 'it''s :enabled' AND x = :enabled", "name = 'it''s :enabled' AND x = $1"},
		{"question mark in literal", PlaceholderDollar, "name = 'why?' AND x = :enabled", "name = 'why?' AND x = $1"},
		{"quoted identifier", PlaceholderDollar, `"a:enabled" = :enabled`, `"a:enabled" = $1`},
		{"cast", PlaceholderDollar, "x::text = :enabled", "x::text = $1"},
		{"cast after placeholder", PlaceholderDollar, "x = :enabled::boolean", "x = $1::boolean"},
		{"comment", PlaceholderDollar, "x = :enabled -- :missing\n", "x = $1 -- :missing\n"},
		{"digit after colon", PlaceholderDollar, "'12:30' < t AND x = :enabled", "'12:30' < t AND x = $1"},
		{"backslash escape", PlaceholderQuestion, `SELECT 'it\'s :x' FROM t WHERE id = :mod_id__0`, `SELECT 'it\'s :x' FROM t WHERE id = ?`},
		{"backtick identifier", PlaceholderQuestion, "UPDATE `mod:x` SET enabled = :enabled", "UPDATE `mod:x` SET enabled = ?"},
		{"bracket identifier", PlaceholderAt, "SELECT [a:b] FROM t WHERE c = :enabled", "SELECT [a:b] FROM t WHERE c = @p1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := Bind("test", tt.style, tt.query, testParams())
			if err != nil {
				t.Fatalf("Bind() error = %v", err)
			}
			if b.Query != tt.want {
				t.Errorf("Query = %q, want %q", b.Query, tt.want)
			}
			if len(b.Args) != 1 {
				t.Errorf("Args = %v, want one argument", b.Args)
			}
		})
	}
}

func TestBindBackslashOnlyForQuestion(t *testing.T) {
	// Outside MySQL a backslash is an ordinary character, so the string
	// ends at the first quote after it.
	b, err := Bind("postgres", PlaceholderDollar, `x = 'a\' AND y = :enabled`, testParams())
	if err != nil {
		t.Fatalf("Bind() error = %v", err)
	}
	if b.Query != `x = 'a\' AND y = $1` {
		t.Errorf("Query = %q", b.Query)
	}
}

func TestBindMissingParam(t *testing.T) {
	_, err := Bind("mariadb", PlaceholderQuestion, "x = :nope", testParams())
	var missing MissingParamError
	if !errors.As(err, &missing) {
		t.Fatalf("Bind() error = %v, want MissingParamError", err)
	}
	if missing.Name != "nope" || missing.Dialect != "mariadb" {
		t.Errorf("MissingParamError = %+v", missing)
	}
	if got := missing.Error(); got != "mariadb: no value bound for parameter :nope" {
		t.Errorf("Error() = %q", got)
	}
}

func TestBindNoParams(t *testing.T) {
	b, err := Bind("sqlite", PlaceholderQuestion, "SELECT 1", unverdad.NamedParams{})
	if err != nil {
		t.Fatalf("Bind() error = %v", err)
	}
	if b.Query != "SELECT 1" || len(b.Args) != 0 {
		t.Errorf("Bind() = %+v", b)
	}
}

func TestBindCondition(t *testing.T) {
	root := unverdad.MustBranch(unverdad.AND)
	root.MustAddLeaf("", unverdad.OR).MustAdd("mod_id", "a", unverdad.EQ).MustAdd("mod_id", "b", unverdad.EQ)

	b, err := Bind("postgres", PlaceholderDollar, "SELECT * FROM mod "+unverdad.Where(root), root.Params())
	if err != nil {
		t.Fatalf("Bind() error = %v", err)
	}
	want := "SELECT * FROM mod WHERE (mod_id = $1 OR mod_id = $2)"
	if b.Query != want {
		t.Errorf("Query = %q, want %q", b.Query, want)
	}
	if b.Args[0] != "a" || b.Args[1] != "b" {
		t.Errorf("Args = %v", b.Args)
	}
}
