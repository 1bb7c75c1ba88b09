package spajson

import (
	"log/slog"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"

	"pwtune/internal/catalog"
	"pwtune/internal/logging"
	"pwtune/internal/services"
)

// Result is the outcome of parsing a default dump.
type Result struct {
	// JSON is a flat object literal holding one member per recognized key.
	JSON string
	// Options maps keys to their enumerated alternatives. The first element
	// of each list is the key's own default text.
	Options map[string][]string
}

// Option configures Parse.
type Option func(*parser)

// WithLogger routes skipped-line diagnostics to logger at debug level.
func WithLogger(logger *slog.Logger) Option {
	return func(p *parser) {
		if logger != nil {
			p.logger = logger
		}
	}
}

type parser struct {
	logger *slog.Logger
}

type fragment struct {
	key  string
	text string
}

// Parse converts dialect text into a flat JSON object plus recovered option
// lists. A repeated key keeps its first position but takes the value and
// option list of its last occurrence. Parse fails with ErrOutputParse when
// the assembled text is not a JSON object; no partial result is returned.
func Parse(text string, opts ...Option) (Result, error) {
	p := parser{logger: logging.NewNop()}
	for _, opt := range opts {
		opt(&p)
	}

	var fragments []fragment
	positions := make(map[string]int)
	options := make(map[string][]string)

	for n, line := range strings.Split(text, "\n") {
		entry, kind, reason := classify(line)
		if kind == lineSkip {
			if reason != "blank" {
				p.logger.Debug("skipping dialect line",
					logging.Int("line", n+1),
					logging.String("reason", reason),
				)
			}
			continue
		}

		rendered := `"` + entry.key + `":` + literal(entry.value)
		if pos, seen := positions[entry.key]; seen {
			fragments[pos].text = rendered
		} else {
			positions[entry.key] = len(fragments)
			fragments = append(fragments, fragment{key: entry.key, text: rendered})
		}

		delete(options, entry.key)
		if entry.annotated {
			if tokens, ok := optionTokens(entry.annotation); ok {
				options[entry.key] = append([]string{entry.value}, tokens...)
			}
		}
	}

	parts := make([]string, len(fragments))
	for i, frag := range fragments {
		parts[i] = frag.text
	}
	out := "{" + strings.Join(parts, ",") + "}"

	if !gjson.Valid(out) || !gjson.Parse(out).IsObject() {
		return Result{}, services.Wrap(services.ErrOutputParse, "spajson", "parse",
			"assembled defaults are not a json object", nil)
	}
	return Result{JSON: out, Options: options}, nil
}

// literal renders a value segment as JSON text following the inference rule
// used by InferValue.
func literal(value string) string {
	switch {
	case isNumber(value):
		return value
	case value == "true" || value == "false":
		return value
	default:
		return `"` + value + `"`
	}
}

// isNumber accepts text that is both a float64 literal and a JSON number.
// Literals such as "inf", "NaN", "0x10" or "1." stay strings.
func isNumber(value string) bool {
	if _, err := strconv.ParseFloat(value, 64); err != nil {
		return false
	}
	res := gjson.Parse(value)
	return gjson.Valid(value) && res.Type == gjson.Number
}

// InferValue applies the dialect's typing rule to a bare value.
func InferValue(text string) catalog.Value {
	switch {
	case isNumber(text):
		n, _ := strconv.ParseFloat(text, 64)
		return catalog.Number(n)
	case text == "true":
		return catalog.Bool(true)
	case text == "false":
		return catalog.Bool(false)
	default:
		return catalog.String(text)
	}
}

// Decode converts a parse result into ordered typed fields.
func Decode(res Result) ([]catalog.Field, error) {
	fields, _, err := catalog.DecodeFields(res.JSON)
	if err != nil {
		return nil, services.Wrap(services.ErrOutputParse, "spajson", "decode", "", err)
	}
	return fields, nil
}
