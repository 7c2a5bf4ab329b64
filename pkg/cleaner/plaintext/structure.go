package plaintext

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var (
	htmlComment = regexp.MustCompile(`(?s)<!--.*?-->`)
	htmlTag     = regexp.MustCompile(`</?[A-Za-z][A-Za-z0-9:-]*(?:\s+[A-Za-z_:@][\w:.@-]*(?:\s*=\s*(?:"[^"]*"|'[^']*'|[^\s"'=<>` + "`" + `]+))?)*\s*/?>`)

	taskItem    = regexp.MustCompile(`^([ \t]*)[-*+•][ \t]*\[[ xX]\][ \t]*`)
	bulletItem  = regexp.MustCompile(`^([ \t]*)[-*+•][ \t]+`)
	orderedItem = regexp.MustCompile(`^([ \t]*)(\d+)\.[ \t]+`)
)

// removeHTML strips comments and tags, keeps the text between them and
// decodes character references. Only known HTML elements and custom elements
// count as tags, so a comparison such as x<y and y>z stays prose.
func removeHTML(text string) string {
	if strings.Contains(text, "<") {
		text = htmlComment.ReplaceAllString(text, "")
		text = htmlTag.ReplaceAllStringFunc(text, func(tag string) string {
			if isElementName(tagName(tag)) {
				return ""
			}
			return tag
		})
	}
	if strings.Contains(text, "&") {
		text = html.UnescapeString(text)
		text = strings.ReplaceAll(text, "\u00a0", " ")
	}
	return text
}

func tagName(tag string) string {
	name := strings.TrimPrefix(strings.TrimPrefix(tag, "<"), "/")
	if i := strings.IndexAny(name, " \t\n/>"); i >= 0 {
		name = name[:i]
	}
	return strings.ToLower(name)
}

func isElementName(name string) bool {
	return atom.Lookup([]byte(name)) != 0 || strings.Contains(name, "-")
}

// normalizeTaskItem turns a checkbox item into a plain bullet. The checkbox
// state is discarded.
func normalizeTaskItem(line string) string {
	return taskItem.ReplaceAllString(line, "$1- ")
}

func normalizeListMarker(line string) string {
	if m := bulletItem.FindStringSubmatchIndex(line); m != nil {
		return line[:m[3]] + "- " + line[m[1]:]
	}
	return orderedItem.ReplaceAllString(line, "$1$2. ")
}
