package plaintext

import (
	"cmp"
	"regexp"
	"slices"
	"strings"
)

var (
	boldItalicStar = regexp.MustCompile(`\*\*\*([^*\s](?:[^*]*?[^*\s])?)\*\*\*`)
	boldStar       = regexp.MustCompile(`\*\*([^*\s](?:[^*]*?[^*\s])?)\*\*`)
	italicStar     = regexp.MustCompile(`\*([^*\s](?:[^*]*?[^*\s])?)\*`)

	// Underscore emphasis never opens or closes inside a word.
	boldItalicUnderscore = regexp.MustCompile(`(^|[^\p{L}\p{N}_])___([^_\s](?:[^_]*?[^_\s])?)___($|[^\p{L}\p{N}_])`)
	boldUnderscore       = regexp.MustCompile(`(^|[^\p{L}\p{N}_])__([^_\s](?:[^_]*?[^_\s])?)__($|[^\p{L}\p{N}_])`)
	italicUnderscore     = regexp.MustCompile(`(^|[^\p{L}\p{N}_])_([^_\s](?:[^_]*?[^_\s])?)_($|[^\p{L}\p{N}_])`)

	strikethrough = regexp.MustCompile(`~~([^~\s](?:[^~]*?[^~\s])?)~~`)
	strayMarkers  = regexp.MustCompile(`\*{2,}|~{2,}`)

	inlineCode = regexp.MustCompile("`+([^`\n]*)`+")

	// Destinations may hold one level of balanced parentheses.
	inlineImage    = regexp.MustCompile(`!\[([^\]]*)\]\((?:[^()]|\([^()]*\))*\)`)
	referenceImage = regexp.MustCompile(`!\[([^\]]*)\]\[[^\]]*\]`)
	inlineLink     = regexp.MustCompile(`\[((?:[^\]^][^\]]*)?)\]\(((?:[^()]|\([^()]*\))*)\)`)
	referenceLink  = regexp.MustCompile(`\[([^\]^][^\]]*)\]\[[^\]]*\]`)
	autolink       = regexp.MustCompile(`<((?:https?|ftp)://[^>\s]+)>`)
	bareURL        = regexp.MustCompile("https?://[^\\s<>\"{}|\\\\^~\\[\\]`]*[^\\s<>\"{}|\\\\^~\\[\\]`().,;:!?']")

	footnoteReference = regexp.MustCompile(`\[\^[^\]\s]+\]`)
)

// removeEmphasis strips emphasis delimiters from a line. A leading list
// marker is left for its own stage. Code spans, link destinations and URLs
// are swapped for placeholders while the delimiters are stripped, so their
// contents come back untouched.
func removeEmphasis(line string) string {
	if !strings.ContainsAny(line, "*_~") {
		return line
	}
	prefix := listItem.FindString(line)
	body := line[len(prefix):]

	spans := protectedSpans(body)
	if len(spans) == 0 {
		return prefix + stripEmphasis(body)
	}
	spans = spans[:min(len(spans), maxPlaceholders)]

	kept := make([]string, len(spans))
	var sb strings.Builder
	last := 0
	for i, span := range spans {
		sb.WriteString(body[last:span[0]])
		sb.WriteRune(placeholder(i))
		kept[i] = body[span[0]:span[1]]
		last = span[1]
	}
	sb.WriteString(body[last:])
	stripped := stripEmphasis(sb.String())

	sb.Reset()
	sb.WriteString(prefix)
	for _, r := range stripped {
		if isPlaceholder(r) {
			if i := int(r - placeholderBase); i < len(kept) {
				sb.WriteString(kept[i])
			}
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// protectedSpans returns the sorted, non-overlapping byte ranges of s that
// emphasis stripping must not touch.
func protectedSpans(s string) [][2]int {
	var spans [][2]int
	add := func(start, end int) {
		if start < end {
			spans = append(spans, [2]int{start, end})
		}
	}

	for _, m := range inlineCode.FindAllStringIndex(s, -1) {
		add(m[0], m[1])
	}
	if strings.Contains(s, "](") {
		for _, m := range inlineLink.FindAllStringSubmatchIndex(s, -1) {
			add(m[4], m[5])
		}
	}
	if strings.Contains(s, "://") {
		for _, m := range autolink.FindAllStringIndex(s, -1) {
			add(m[0], m[1])
		}
		// A URL may end right before a closing delimiter, as in **https://x**.
		for _, m := range bareURL.FindAllStringIndex(s, -1) {
			end := m[1]
			for end > m[0] && strings.IndexByte("*_~", s[end-1]) >= 0 {
				end--
			}
			add(m[0], end)
		}
	}
	if len(spans) < 2 {
		return spans
	}

	slices.SortFunc(spans, func(a, b [2]int) int { return cmp.Compare(a[0], b[0]) })
	merged := make([][2]int, 0, len(spans))
	for _, span := range spans {
		if n := len(merged); n > 0 && span[0] < merged[n-1][1] {
			merged[n-1][1] = max(merged[n-1][1], span[1])
			continue
		}
		merged = append(merged, span)
	}
	return merged
}

// stripEmphasis removes delimiter pairs, widest first, until nothing changes.
// Repeating handles nesting such as **bold *italic* bold**.
func stripEmphasis(s string) string {
	for range maxPasses {
		prev := s
		s = boldItalicStar.ReplaceAllString(s, "$1")
		s = replaceUntilStable(boldItalicUnderscore, s, "${1}${2}${3}")
		s = boldStar.ReplaceAllString(s, "$1")
		s = replaceUntilStable(boldUnderscore, s, "${1}${2}${3}")
		s = italicStar.ReplaceAllString(s, "$1")
		s = replaceUntilStable(italicUnderscore, s, "${1}${2}${3}")
		s = strikethrough.ReplaceAllString(s, "$1")
		if s == prev {
			break
		}
	}
	return strayMarkers.ReplaceAllString(s, "")
}

func removeInlineCode(line string) string {
	if !strings.Contains(line, "`") {
		return line
	}
	return inlineCode.ReplaceAllString(line, "$1")
}

// linkRewriter reduces links and images according to a LinkPolicy.
type linkRewriter struct {
	policy LinkPolicy
}

func newLinkRewriter(policy LinkPolicy) linkRewriter {
	return linkRewriter{policy: policy}
}

// rewrite handles images before links so that an image nested in a link
// leaves its alt text as the link text.
func (r linkRewriter) rewrite(text string) string {
	if strings.Contains(text, "](") || strings.Contains(text, "][") {
		text = inlineImage.ReplaceAllString(text, "$1")
		text = referenceImage.ReplaceAllString(text, "$1")
		if r.policy == LinkAppend {
			text = inlineLink.ReplaceAllStringFunc(text, appendTarget)
		} else {
			text = inlineLink.ReplaceAllString(text, "$1")
		}
		text = referenceLink.ReplaceAllString(text, "$1")
	}

	if !strings.Contains(text, "://") {
		return text
	}
	if r.policy == LinkAppend {
		return autolink.ReplaceAllString(text, "$1")
	}
	text = autolink.ReplaceAllString(text, "")
	return bareURL.ReplaceAllString(text, "")
}

// appendTarget turns [text](url "title") into "text (url)". A link without
// text becomes its bare target.
func appendTarget(m string) string {
	sub := inlineLink.FindStringSubmatch(m)
	label := sub[1]
	fields := strings.Fields(sub[2])
	if len(fields) == 0 {
		return label
	}
	target := strings.TrimSuffix(strings.TrimPrefix(fields[0], "<"), ">")
	switch {
	case target == "" || target == label:
		return label
	case label == "":
		return target
	}
	return label + " (" + target + ")"
}

func removeFootnoteReferences(line string) string {
	if !strings.Contains(line, "[^") {
		return line
	}
	return footnoteReference.ReplaceAllString(line, "")
}
