package plaintext

import (
	"regexp"
	"strings"
)

var tableSeparator = regexp.MustCompile(`^[ \t]*\|?(?:[ \t]*:?-+:?[ \t]*\|)+(?:[ \t]*:?-+:?[ \t]*)?$`)

// flattenTables rewrites pipe tables as one line of space separated cells
// per row. A run of pipe lines counts as a table when it has a separator row
// or every line is bounded by pipes, so prose such as "a | b" is left alone.
func flattenTables(text string) string {
	if !strings.Contains(text, "|") {
		return text
	}
	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))

	for i := 0; i < len(lines); {
		if !strings.Contains(lines[i], "|") {
			out = append(out, lines[i])
			i++
			continue
		}
		j := i
		for j < len(lines) && strings.Contains(lines[j], "|") {
			j++
		}
		block := lines[i:j]
		i = j

		if !isTable(block) {
			out = append(out, block...)
			continue
		}
		for _, row := range block {
			if tableSeparator.MatchString(row) {
				continue
			}
			if cells := tableCells(row); len(cells) > 0 {
				out = append(out, strings.Join(cells, " "))
			}
		}
	}
	return strings.Join(out, "\n")
}

func isTable(block []string) bool {
	bounded := true
	for _, row := range block {
		if tableSeparator.MatchString(row) {
			return true
		}
		trimmed := strings.TrimSpace(row)
		if len(trimmed) < 2 || trimmed[0] != '|' || trimmed[len(trimmed)-1] != '|' {
			bounded = false
		}
	}
	return bounded
}

// tableCells returns the trimmed, non-empty cells of a row.
func tableCells(row string) []string {
	var cells []string
	for _, cell := range strings.Split(row, "|") {
		if cell = strings.TrimSpace(cell); cell != "" {
			cells = append(cells, cell)
		}
	}
	return cells
}
