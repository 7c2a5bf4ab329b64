package plaintext

import (
	"regexp"
	"strings"
)

var (
	trailingBackslash = regexp.MustCompile(`(?m)\\$`)
	backslashRun      = regexp.MustCompile(`\\{2,}`)
	blankLineRun      = regexp.MustCompile(`\n{3,}`)
)

// removeEscapes restores shielded characters to their bare form. Literal
// backslashes left at a line end are hard breaks and are dropped; runs of
// backslashes collapse to one.
func removeEscapes(text string) string {
	if strings.Contains(text, `\`) {
		text = trailingBackslash.ReplaceAllString(text, "")
	}
	text = unshield(text)
	if strings.Contains(text, `\\`) {
		text = backslashRun.ReplaceAllString(text, `\`)
	}
	return text
}

// normalizeWhitespace settles line endings, trailing blanks, interior space
// runs and blank-line runs. Leading indentation is kept because it carries
// list nesting.
func normalizeWhitespace(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		line = strings.TrimRight(line, " \t")
		indent := leadingSpace(line)
		lines[i] = indent + spaceRun.ReplaceAllString(line[len(indent):], " ")
	}
	return blankLineRun.ReplaceAllString(strings.Join(lines, "\n"), "\n\n")
}
