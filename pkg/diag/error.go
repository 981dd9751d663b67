package diag

// Error is a general-purpose positioned error: a grammar parse error, a
// condition-validation error, or any other failure a caller wants to report
// with a caret-pointing excerpt. It is distinct from any
// package-specific error type (e.g. parse.Error) so that callers who only
// care about "what failed and where" don't need to depend on the package
// that produced it.
type Error struct {
	// Type is a short, stable label for the kind of error, e.g.
	// "grammar parse error" or "invalid condition".
	Type    string
	Message string
	Context Context
}

func (e *Error) Error() string {
	if e.Type == "" {
		return e.Message
	}
	return e.Type + ": " + e.Message
}

// Show renders the error the way Context.Show does, prefixed by the
// message.
func (e *Error) Show(indent string) string {
	return e.Error() + "\n" + indent + e.Context.Show(indent)
}
