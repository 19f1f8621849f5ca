package unverdad

import "fmt"

// counters holds the next suffix per column and every name handed out.
// One store belongs to one root namespace and every namespace spawned from it.
type counters struct {
	next map[string]int
	used map[string]struct{}
}

func newCounters() *counters {
	return &counters{
		next: make(map[string]int),
		used: make(map[string]struct{}),
	}
}

// Namespace generates placeholder names that are unique across every
// namespace descending from the same root.
//
// A Namespace is not safe for concurrent use.
type Namespace struct {
	prefix string
	store  *counters
}

// NewNamespace creates a root namespace with its own counter store.
// An empty prefix is allowed.
func NewNamespace(prefix string) (*Namespace, error) {
	if prefix != "" && !isValidIdentifier(prefix) {
		return nil, usageError("NewNamespace", "invalid prefix %q", prefix)
	}
	return &Namespace{prefix: joinPrefix("", prefix), store: newCounters()}, nil
}

// MustNamespace creates a root namespace and panics if the prefix is invalid.
func MustNamespace(prefix string) *Namespace {
	ns, err := NewNamespace(prefix)
	if err != nil {
		panic(err)
	}
	return ns
}

// Prefix returns the prefix prepended to generated names.
func (ns *Namespace) Prefix() string {
	return ns.prefix
}

// Generate returns "{prefix}{column}__{n}" and advances the column's counter.
// Prefixes ending in underscores can spell the same name for two columns
// ("a_" + "b_c" and "a_b_" + "c"); such a name is skipped.
func (ns *Namespace) Generate(column string) string {
	n := ns.store.next[column]
	name := ns.format(column, n)
	for {
		if _, taken := ns.store.used[name]; !taken {
			break
		}
		n++
		name = ns.format(column, n)
	}
	ns.store.next[column] = n + 1
	ns.store.used[name] = struct{}{}
	return name
}

// Spawn returns a namespace sharing this namespace's counters.
// An empty prefix keeps the current one.
func (ns *Namespace) Spawn(prefix string) (*Namespace, error) {
	if prefix != "" && !isValidIdentifier(prefix) {
		return nil, usageError("Spawn", "invalid prefix %q", prefix)
	}
	return &Namespace{prefix: joinPrefix(ns.prefix, prefix), store: ns.store}, nil
}

// MustSpawn is Spawn that panics on an invalid prefix.
func (ns *Namespace) MustSpawn(prefix string) *Namespace {
	child, err := ns.Spawn(prefix)
	if err != nil {
		panic(err)
	}
	return child
}

// Shares reports whether ns and other draw from the same counter store.
func (ns *Namespace) Shares(other *Namespace) bool {
	return other != nil && ns.store == other.store
}

func (ns *Namespace) format(column string, n int) string {
	return fmt.Sprintf("%s%s__%d", ns.prefix, column, n)
}

func joinPrefix(inherited, prefix string) string {
	if prefix == "" {
		return inherited
	}
	return prefix + "_"
}

// isValidIdentifier reports whether s can be written into query text as a
// bare column name, alias or placeholder prefix.
func isValidIdentifier(s string) bool {
	if s == "" {
		return false
	}

	// Must start with letter or underscore
	first := s[0]
	if !((first >= 'a' && first <= 'z') ||
		(first >= 'A' && first <= 'Z') ||
		first == '_') {
		return false
	}

	// Rest must be alphanumeric or underscore
	for i := 1; i < len(s); i++ {
		ch := s[i]
		if !((ch >= 'a' && ch <= 'z') ||
			(ch >= 'A' && ch <= 'Z') ||
			(ch >= '0' && ch <= '9') ||
			ch == '_') {
			return false
		}
	}

	return true
}
