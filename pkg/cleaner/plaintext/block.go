package plaintext

import (
	"regexp"
	"strings"
)

var (
	backtickFence = regexp.MustCompile("(?s)```[\\w-]*\\n?.*?```")
	tildeFence4   = regexp.MustCompile(`(?s)~~~~[\w-]*\n?.*?~~~~`)
	tildeFence3   = regexp.MustCompile(`(?s)~~~[\w-]*\n?.*?~~~`)

	listItem = regexp.MustCompile(`^[ \t]*(?:[-*+•]|\d+[.)])[ \t]+`)

	footnoteDefinition  = regexp.MustCompile(`^[ \t]{0,3}\[\^[^\]]+\]:`)
	referenceDefinition = regexp.MustCompile(`^[ \t]*\[[^\]]+\]:[ \t]*<?[^>\s]+>?(?:[ \t]+["'(].*?["')])?[ \t]*$`)

	blockquoteMarker = regexp.MustCompile(`^([ \t]*)(?:>[ \t]*)+`)

	setextHeader = regexp.MustCompile(`(?m)^(.*\S.*)\n[ \t]*(?:={2,}|-{2,})[ \t]*$`)
	atxHeader    = regexp.MustCompile(`^[ \t]*#{1,6}(?:[ \t]+(.*?))?(?:[ \t]+#+)?[ \t]*$`)

	horizontalRule = regexp.MustCompile(`^[ \t]*(?:(?:-[ \t]*){3,}|(?:\*[ \t]*){3,}|(?:_[ \t]*){3,})$`)
)

// removeCodeBlocks deletes fenced and indented code blocks with their content.
func removeCodeBlocks(text string) string {
	if strings.Contains(text, "```") {
		text = backtickFence.ReplaceAllString(text, "")
		text = strings.ReplaceAll(text, "```", "")
	}
	if strings.Contains(text, "~~~") {
		text = tildeFence4.ReplaceAllString(text, "")
		text = tildeFence3.ReplaceAllString(text, "")
	}
	return removeIndentedCode(text)
}

// removeIndentedCode drops runs of lines indented by four spaces or a tab
// that open after a blank line. Indentation inside a list is nesting, not code.
func removeIndentedCode(text string) string {
	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))
	prevBlank, inCode, inList := true, false, false

	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			out = append(out, line)
			prevBlank = true
			continue
		}
		indented := isIndented(line)
		if indented && (inCode || (prevBlank && !inList)) {
			inCode = true
			prevBlank = false
			continue
		}
		inCode = false
		if !indented {
			inList = listItem.MatchString(line)
		}
		prevBlank = false
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}

func isIndented(line string) bool {
	return strings.HasPrefix(line, "    ") || strings.HasPrefix(line, "\t")
}

func removeFootnoteDefinition(line string) string {
	if footnoteDefinition.MatchString(line) {
		return ""
	}
	return line
}

func removeReferenceDefinition(line string) string {
	if referenceDefinition.MatchString(line) {
		return ""
	}
	return line
}

// removeBlockquote strips every leading '>' marker and keeps the indentation
// in front of the first one.
func removeBlockquote(line string) string {
	return blockquoteMarker.ReplaceAllString(line, "$1")
}

// removeHeaders handles setext headers first because they span two lines.
func removeHeaders(text string) string {
	text = setextHeader.ReplaceAllString(text, "$1")
	if !strings.Contains(text, "#") {
		return text
	}
	return mapLines(text, func(line string) string {
		return atxHeader.ReplaceAllString(line, "$1")
	})
}

func removeHorizontalRule(line string) string {
	if horizontalRule.MatchString(line) {
		return ""
	}
	return line
}
