package unverdad

// placeholders returns every ":name" in query, in order of appearance.
func placeholders(query string) []string {
	var names []string
	for i := 0; i < len(query); i++ {
		if query[i] != ':' {
			continue
		}
		j := i + 1
		for j < len(query) && isIdentByte(query[j]) {
			j++
		}
		if j > i+1 {
			names = append(names, query[i+1:j])
		}
		i = j - 1
	}
	return names
}

func containsPlaceholder(query, name string) bool {
	for _, p := range placeholders(query) {
		if p == name {
			return true
		}
	}
	return false
}

func isIdentByte(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') ||
		(ch >= 'A' && ch <= 'Z') ||
		(ch >= '0' && ch <= '9') ||
		ch == '_'
}
