package processor

import "strings"

// ffmpeg tokenizes a -filter_complex string twice: once at graph level (terminators
// "[],;") to cut out each filter's argument string, then at option level (terminator
// ":") to split key=value pairs. Both levels honour '...' quoting and backslash escapes.

// quoteOptionValue makes s a single option-level token. Inside quotes everything is
// literal except the quote itself, which is closed, escaped and reopened.
func quoteOptionValue(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

var graphEscaper = strings.NewReplacer(
	`\`, `\\`,
	`'`, `\'`,
	`[`, `\[`,
	`]`, `\]`,
	`,`, `\,`,
	`;`, `\;`,
)

// EscapeFilterValue returns s encoded so that, after both tokenizer passes, the filter
// receives exactly s.
func EscapeFilterValue(s string) string {
	return graphEscaper.Replace(quoteOptionValue(s))
}
