package plaintext

import (
	"regexp"
	"strings"
)

// Phase groups stages that share an ordering concern.
type Phase int

const (
	PhaseBlock Phase = iota + 1
	PhaseInline
	PhaseStructure
	PhaseFinalize
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseBlock:
		return "block"
	case PhaseInline:
		return "inline"
	case PhaseStructure:
		return "structure"
	case PhaseFinalize:
		return "finalize"
	default:
		return "unknown"
	}
}

// lineFunc rewrites a single line. It never receives a newline.
type lineFunc func(line string) string

// textFunc rewrites the whole buffer and may match across lines.
type textFunc func(text string) string

// stage is one step of the pipeline. Exactly one of line and text is set.
type stage struct {
	name  string
	phase Phase
	line  lineFunc
	text  textFunc
}

func lineStage(name string, phase Phase, fn lineFunc) stage {
	return stage{name: name, phase: phase, line: fn}
}

func textStage(name string, phase Phase, fn textFunc) stage {
	return stage{name: name, phase: phase, text: fn}
}

// apply runs the stage over text.
func (s stage) apply(text string) string {
	if s.line != nil {
		return mapLines(text, s.line)
	}
	return s.text(text)
}

// mapLines applies fn to every line of text, keeping the line structure.
func mapLines(text string, fn lineFunc) string {
	if !strings.Contains(text, "\n") {
		return fn(text)
	}
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = fn(line)
	}
	return strings.Join(lines, "\n")
}

// buildStages returns the pipeline in its mandated order.
func buildStages(cfg *Config) []stage {
	links := newLinkRewriter(cfg.linkPolicy())

	return []stage{
		// Phase 1: block-level removal. Later block stages need unmangled text.
		textStage("code_blocks", PhaseBlock, removeCodeBlocks),
		lineStage("footnote_definitions", PhaseBlock, removeFootnoteDefinition),
		lineStage("reference_definitions", PhaseBlock, removeReferenceDefinition),
		lineStage("blockquotes", PhaseBlock, removeBlockquote),
		textStage("headers", PhaseBlock, removeHeaders),
		lineStage("horizontal_rules", PhaseBlock, removeHorizontalRule),

		// Phase 2: inline formatting.
		lineStage("emphasis", PhaseInline, removeEmphasis),
		lineStage("inline_code", PhaseInline, removeInlineCode),
		textStage("links", PhaseInline, links.rewrite),
		lineStage("footnote_references", PhaseInline, removeFootnoteReferences),

		// Phase 3: structural cleanup.
		textStage("html", PhaseStructure, removeHTML),
		lineStage("task_lists", PhaseStructure, normalizeTaskItem),
		lineStage("list_markers", PhaseStructure, normalizeListMarker),
		lineStage("emoji", PhaseStructure, removeEmoji),

		// Phase 4: tables and final cleanup. Escapes must come after every
		// stage that matches on delimiters.
		textStage("tables", PhaseFinalize, flattenTables),
		textStage("escapes", PhaseFinalize, removeEscapes),
		textStage("whitespace", PhaseFinalize, normalizeWhitespace),
	}
}

// replaceUntilStable applies re until the text stops changing. Patterns that
// consume a boundary character on both sides cannot match adjacent
// occurrences in a single pass.
func replaceUntilStable(re *regexp.Regexp, s, repl string) string {
	for range maxPasses {
		next := re.ReplaceAllString(s, repl)
		if next == s {
			return s
		}
		s = next
	}
	return s
}

const maxPasses = 8
