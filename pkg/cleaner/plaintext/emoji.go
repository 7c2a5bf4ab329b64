package plaintext

import (
	"cmp"
	"regexp"
	"slices"
	"strings"
	"unicode"
)

// emojiBlock is an inclusive range of code points treated as emoji.
type emojiBlock struct {
	name   string
	lo, hi rune
}

// Blocks may overlap; they are merged into emojiTable at init.
var emojiBlocks = []emojiBlock{
	{"emoticons", 0x1F600, 0x1F64F},
	{"misc symbols and pictographs", 0x1F300, 0x1F5FF},
	{"transport and map", 0x1F680, 0x1F6FF},
	{"regional indicators", 0x1F1E0, 0x1F1FF},
	{"misc symbols", 0x2600, 0x26FF},
	{"dingbats", 0x2700, 0x27BF},
	{"supplemental symbols and pictographs", 0x1F900, 0x1F9FF},
	{"symbols and pictographs extended-a", 0x1FA70, 0x1FAFF},
	{"enclosed and game symbols", 0x1F018, 0x1F270},
	{"misc technical", 0x238C, 0x2454},
	{"combining marks for symbols", 0x20D0, 0x20FF},
	{"white medium star", 0x2B50, 0x2B50},
	{"heavy large circle", 0x2B55, 0x2B55},
	{"skin tone modifiers", 0x1F3FB, 0x1F3FF},
	{"zero width joiner", 0x200D, 0x200D},
	{"variation selectors", 0xFE0E, 0xFE0F},
	{"tag characters", 0xE0020, 0xE007F},
}

var emojiTable = buildRangeTable(emojiBlocks)

// buildRangeTable sorts and merges blocks into a table usable with unicode.Is.
func buildRangeTable(blocks []emojiBlock) *unicode.RangeTable {
	sorted := slices.Clone(blocks)
	slices.SortFunc(sorted, func(a, b emojiBlock) int { return cmp.Compare(a.lo, b.lo) })

	var merged []emojiBlock
	for _, b := range sorted {
		if n := len(merged); n > 0 && b.lo <= merged[n-1].hi+1 {
			merged[n-1].hi = max(merged[n-1].hi, b.hi)
			continue
		}
		merged = append(merged, b)
	}

	table := &unicode.RangeTable{}
	for _, b := range merged {
		switch {
		case b.hi <= 0xFFFF:
			table.R16 = append(table.R16, unicode.Range16{Lo: uint16(b.lo), Hi: uint16(b.hi), Stride: 1})
		case b.lo > 0xFFFF:
			table.R32 = append(table.R32, unicode.Range32{Lo: uint32(b.lo), Hi: uint32(b.hi), Stride: 1})
		default:
			table.R16 = append(table.R16, unicode.Range16{Lo: uint16(b.lo), Hi: 0xFFFF, Stride: 1})
			table.R32 = append(table.R32, unicode.Range32{Lo: 0x10000, Hi: uint32(b.hi), Stride: 1})
		}
	}
	return table
}

func isEmoji(r rune) bool {
	return unicode.Is(emojiTable, r)
}

var (
	emoticon  = regexp.MustCompile(`(^|\s)(?:[:;][-']?[)(\]\[DPpOo3/|*]|[)(\]\[][-']?[:;]|</?3|\\o/|[xX]D)(\s|$|[.,!?])`)
	// A shortcode names something, so it needs a letter. :+1: and :-1: are
	// the exceptions; :---: is a table alignment cell.
	shortcode = regexp.MustCompile(`(^|[^\w:]):(?:[\w+-]*[A-Za-z][\w+-]*|[+-]1):($|[^\w:])`)
	spaceRun  = regexp.MustCompile(` {2,}`)
)

// removeEmoji deletes emoji code points, ASCII emoticons and :shortcodes:
// from a line. Table separator rows are left for the tables stage. A changed
// line keeps its indentation and has the gaps left behind collapsed.
func removeEmoji(line string) string {
	if line == "" || tableSeparator.MatchString(line) {
		return line
	}
	out := strings.Map(func(r rune) rune {
		if isEmoji(r) {
			return -1
		}
		return r
	}, line)
	if strings.ContainsAny(out, ":;<>\\xX()[]") {
		out = replaceUntilStable(emoticon, out, "$1$2")
		out = replaceUntilStable(shortcode, out, "$1$2")
	}
	if out == line {
		return line
	}

	rest := strings.TrimLeft(out, " \t")
	if rest == "" {
		return ""
	}
	return leadingSpace(line) + spaceRun.ReplaceAllString(rest, " ")
}

func leadingSpace(line string) string {
	return line[:len(line)-len(strings.TrimLeft(line, " \t"))]
}
