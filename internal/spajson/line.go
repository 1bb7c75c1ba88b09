package spajson

import (
	"strings"
	"unicode"
)

// lineKind classifies one line of dialect text.
type lineKind int

const (
	lineSkip lineKind = iota
	lineAssignment
)

// assignment is a recognized `key = value` line after whitespace removal.
type assignment struct {
	key        string
	value      string
	annotation string
	annotated  bool
}

// classify tokenizes a single line. Only lines shaped like `key = value`,
// optionally behind exactly one `#`, produce an assignment.
func classify(line string) (assignment, lineKind, string) {
	body := strings.TrimSpace(line)
	if body == "" {
		return assignment{}, lineSkip, "blank"
	}
	if strings.HasPrefix(body, "##") {
		return assignment{}, lineSkip, "double comment"
	}
	body = strings.TrimPrefix(body, "#")
	if !hasSpacedEquals(body) {
		return assignment{}, lineSkip, "no assignment"
	}

	compact := stripSpace(body)
	key, rest, _ := strings.Cut(compact, "=")
	if key == "" {
		return assignment{}, lineSkip, "empty key"
	}

	out := assignment{key: key, value: rest}
	if value, annotation, found := strings.Cut(rest, "#"); found {
		out.value = value
		out.annotation = annotation
		out.annotated = true
	}
	return out, lineAssignment, ""
}

// hasSpacedEquals reports whether s holds a non-blank key, then an `=` with
// whitespace on both sides, then a non-blank remainder.
func hasSpacedEquals(s string) bool {
	runes := []rune(s)
	for i := 1; i < len(runes)-1; i++ {
		if runes[i] != '=' {
			continue
		}
		if !unicode.IsSpace(runes[i-1]) || !unicode.IsSpace(runes[i+1]) {
			continue
		}
		if strings.TrimSpace(string(runes[:i])) == "" {
			continue
		}
		if strings.TrimSpace(string(runes[i+1:])) == "" {
			continue
		}
		return true
	}
	return false
}

func stripSpace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

// optionTokens returns the alternatives listed in an annotation. An
// annotation is an options hint only when some comma has text on both sides
// of it. Tokens are split on every comma and empty tokens are kept.
func optionTokens(annotation string) ([]string, bool) {
	if len(annotation) < 3 || !strings.Contains(annotation[1:len(annotation)-1], ",") {
		return nil, false
	}
	return strings.Split(annotation, ","), true
}
