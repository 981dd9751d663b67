package parse

// Source identifies a piece of code being parsed: its name (used in error
// messages) and its text.
type Source struct {
	Name string
	Code string
}

// SourceForTest builds a Source suitable for use in tests, with a fixed name.
func SourceForTest(code string) Source {
	return Source{Name: "[test]", Code: code}
}
