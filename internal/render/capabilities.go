package render

// PlaceholderStyle is how a dialect writes bound parameters in query text.
type PlaceholderStyle int

// Every style is positional: each occurrence of a name gets its own
// placeholder and argument.
const (
	PlaceholderQuestion PlaceholderStyle = iota // ?
	PlaceholderDollar                           // $1, $2
	PlaceholderAt                               // @p1, @p2
)

func (s PlaceholderStyle) String() string {
	switch s {
	case PlaceholderQuestion:
		return "?"
	case PlaceholderDollar:
		return "$n"
	case PlaceholderAt:
		return "@pn"
	default:
		return "unknown"
	}
}

// Capabilities describes the SQL features a dialect supports.
type Capabilities struct {
	Placeholder       PlaceholderStyle
	NameMatchFunction bool // match_name(name, value) registered on the connection
	CreateIfNotExists bool // CREATE TABLE IF NOT EXISTS
	BoolType          string
	TextType          string
}
