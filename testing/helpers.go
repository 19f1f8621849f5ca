// Package testing provides test utilities for unverdad conditions.
package testing

import (
	"errors"
	"sort"
	"strings"
	"testing"

	"github.com/John-Tuesday/unverdad"
	"github.com/zoobzio/dbml"
)

// TestSchema creates a schema with users, posts and orders tables covering
// every column type conditions validate.
func TestSchema(t *testing.T) *unverdad.Schema {
	t.Helper()

	project := dbml.NewProject("test")

	users := dbml.NewTable("users")
	users.AddColumn(dbml.NewColumn("id", "uuid"))
	users.AddColumn(dbml.NewColumn("username", "varchar"))
	users.AddColumn(dbml.NewColumn("email", "varchar(255)"))
	users.AddColumn(dbml.NewColumn("age", "int"))
	users.AddColumn(dbml.NewColumn("active", "boolean"))
	users.AddColumn(dbml.NewColumn("home", "path"))
	project.AddTable(users)

	posts := dbml.NewTable("posts")
	posts.AddColumn(dbml.NewColumn("id", "bigint"))
	posts.AddColumn(dbml.NewColumn("user_id", "uuid"))
	posts.AddColumn(dbml.NewColumn("title", "text"))
	posts.AddColumn(dbml.NewColumn("score", "real"))
	posts.AddColumn(dbml.NewColumn("body", "blob"))
	project.AddTable(posts)

	orders := dbml.NewTable("orders")
	orders.AddColumn(dbml.NewColumn("id", "bigint"))
	orders.AddColumn(dbml.NewColumn("user_id", "uuid"))
	orders.AddColumn(dbml.NewColumn("total", "numeric"))
	orders.AddColumn(dbml.NewColumn("status", "varchar"))
	project.AddTable(orders)

	schema, err := unverdad.NewSchema(project)
	if err != nil {
		t.Fatalf("Failed to create test schema: %v", err)
	}
	return schema
}

// AssertSQL compares expected and actual SQL, reporting detailed differences.
func AssertSQL(t *testing.T, expected, actual string) {
	t.Helper()
	if expected != actual {
		t.Errorf("SQL mismatch:\nExpected: %s\nActual:   %s", expected, actual)
	}
}

// AssertParams checks that actual binds exactly the expected names and values.
func AssertParams(t *testing.T, expected map[string]any, actual unverdad.NamedParams) {
	t.Helper()
	if len(expected) != actual.Len() {
		t.Errorf("Param count mismatch: expected %d, got %d\nExpected: %v\nActual: %v",
			len(expected), actual.Len(), expected, actual.Map())
		return
	}
	for name, want := range expected {
		got, ok := actual.Get(name)
		if !ok {
			t.Errorf("Missing param %q\nActual: %v", name, actual.Keys())
			continue
		}
		if got != want {
			t.Errorf("Param %q: expected %v, got %v", name, want, got)
		}
	}
}

// AssertParamNames checks that actual binds exactly the expected names.
func AssertParamNames(t *testing.T, expected []string, actual unverdad.NamedParams) {
	t.Helper()
	want := append([]string(nil), expected...)
	sort.Strings(want)
	got := actual.Keys()
	if strings.Join(want, ",") != strings.Join(got, ",") {
		t.Errorf("Param names mismatch:\nExpected: %v\nActual:   %v", want, got)
	}
}

// AssertPlaceholdersBound checks that every :name placeholder in sql has a
// value in params.
func AssertPlaceholdersBound(t *testing.T, sql string, params unverdad.NamedParams) {
	t.Helper()
	for _, name := range Placeholders(sql) {
		if !params.Has(name) {
			t.Errorf("Placeholder :%s has no value\nSQL: %s\nParams: %v", name, sql, params.Keys())
		}
	}
}

// Placeholders returns the :name placeholders of sql in order of appearance.
func Placeholders(sql string) []string {
	var names []string
	for i := 0; i < len(sql); i++ {
		if sql[i] != ':' || (i > 0 && sql[i-1] == ':') || i+1 >= len(sql) || sql[i+1] == ':' {
			continue
		}
		j := i + 1
		for j < len(sql) && isIdentByte(sql[j]) {
			j++
		}
		if j > i+1 {
			names = append(names, sql[i+1:j])
		}
		i = j - 1
	}
	return names
}

func isIdentByte(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

// AssertNoError fails the test if err is not nil.
func AssertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
}

// AssertErrorAs fails the test unless err wraps an error of type E.
func AssertErrorAs[E error](t *testing.T, err error) E {
	t.Helper()
	var target E
	if !errors.As(err, &target) {
		t.Fatalf("Expected %T, got: %v", target, err)
	}
	return target
}

// AssertErrorContains checks that error message contains substr.
func AssertErrorContains(t *testing.T, err error, substr string) {
	t.Helper()
	if err == nil {
		t.Fatalf("Expected error containing %q but got nil", substr)
	}
	if !strings.Contains(err.Error(), substr) {
		t.Errorf("Expected error containing %q, got: %v", substr, err)
	}
}

// AssertPanicsWithMessage verifies that a function panics with a message
// containing substr.
func AssertPanicsWithMessage(t *testing.T, fn func(), substr string) {
	t.Helper()
	defer func() {
		r := recover()
		if r == nil {
			t.Errorf("Expected panic containing %q but function completed normally", substr)
			return
		}
		var msg string
		switch v := r.(type) {
		case error:
			msg = v.Error()
		case string:
			msg = v
		default:
			t.Errorf("Panic value is not string or error: %T", r)
			return
		}
		if !strings.Contains(msg, substr) {
			t.Errorf("Expected panic containing %q, got: %s", substr, msg)
		}
	}()
	fn()
}
