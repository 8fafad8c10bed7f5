package prompt

import "strings"

const (
	preamble = "You are given this CSV data:"
	suffix   = "Answer the following question clearly and directly:"
)

// Build wraps the serialized data block and the user's question into the
// fixed instruction template. Pure function: both inputs appear verbatim,
// nothing is escaped or truncated.
func Build(serialized, question string) string {
	var b strings.Builder
	b.Grow(len(preamble) + len(serialized) + len(suffix) + len(question) + 8)
	b.WriteString(preamble)
	b.WriteString("\n\n")
	b.WriteString(serialized)
	b.WriteString("\n\n")
	b.WriteString(suffix)
	b.WriteString("\n\n")
	b.WriteString(question)
	b.WriteString("\n")
	return b.String()
}
