package plaintext

import (
	"regexp"
	"strings"
)

// Backslash escapes are encoded as code points of Supplementary Private Use
// Area-A before the first stage runs. A shielded character is invisible to
// every pattern stage and is restored by the escapes stage.
const shieldBase = 0xF0000

// Spans a stage must not rewrite are swapped for placeholders from the same
// plane, above the shield range, while the stage runs.
const (
	placeholderBase = 0xF1000
	maxPlaceholders = 0x1000
)

func placeholder(i int) rune {
	return placeholderBase + rune(i)
}

func isPlaceholder(r rune) bool {
	return r >= placeholderBase && r < placeholderBase+maxPlaceholders
}

var escapedPunct = regexp.MustCompile("\\\\([*_`#\\[\\](){}<>~\\\\|.!+\\-:])")

// shieldEscapes replaces `\` + punctuation with its shield rune.
func shieldEscapes(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	return escapedPunct.ReplaceAllStringFunc(s, func(m string) string {
		return string(shield(rune(m[1])))
	})
}

func shield(r rune) rune {
	return shieldBase + r
}

func isShield(r rune) bool {
	return r >= shieldBase && r < shieldBase+0x80
}

// unshield restores every shielded character to its bare form.
func unshield(s string) string {
	return strings.Map(func(r rune) rune {
		if isShield(r) {
			return r - shieldBase
		}
		return r
	}, s)
}
