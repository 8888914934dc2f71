package jsonrepair

import (
	"encoding/json"
	"strings"

	"github.com/tidwall/gjson"
)

// Pair is a matching open/close delimiter, e.g. '{' and '}'.
type Pair struct {
	Open  byte
	Close byte
}

// Options configures one repair attempt.
type Options struct {
	// Pair, when set, scopes extraction to the first balanced span bounded
	// by the pair. Without it the whole trimmed text is the candidate.
	Pair *Pair
}

// WithPair scopes extraction to the first balanced open/close span.
func WithPair(open, close byte) func(o *Options) {
	return func(o *Options) {
		o.Pair = &Pair{Open: open, Close: close}
	}
}

// Repair extracts the best-effort embedded JSON value from text. Policy, in
// order: strict parse of the trimmed text; delimiter-pair extraction when a
// pair is configured; a syntax-repair pass over the candidate span (trailing
// commas, unquoted keys, single quotes, truncated strings, unbalanced
// brackets) followed by a re-parse. Empty input and unrecoverable text both
// yield nil.
func Repair(text string, optFns ...func(o *Options)) any {
	opts := Options{}
	for _, fn := range optFns {
		fn(&opts)
	}

	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil
	}

	if v, ok := parseStrict(trimmed); ok {
		return v
	}

	candidate := trimmed
	if opts.Pair != nil {
		candidate = extractSpan(trimmed, *opts.Pair)
	}
	if v, ok := parseStrict(candidate); ok {
		return v
	}

	if v, ok := parseStrict(repairSyntax(candidate)); ok {
		return v
	}
	return nil
}

func parseStrict(s string) (any, bool) {
	if !gjson.Valid(s) {
		return nil, false
	}
	var v any
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		return nil, false
	}
	return v, true
}

// extractSpan returns the first balanced span bounded by pair. An opener
// with no matching close yields the unbounded remainder so repair can still
// finish the truncated value; no opener at all yields the whole text.
func extractSpan(text string, pair Pair) string {
	start := strings.IndexByte(text, pair.Open)
	if start < 0 {
		return text
	}

	depth := 0
	inString := false
	for i := start; i < len(text); i++ {
		c := text[i]
		if inString {
			switch c {
			case '\\':
				i++
			case '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case pair.Open:
			depth++
		case pair.Close:
			depth--
			if depth == 0 {
				return text[start : i+1]
			}
		}
	}
	return text[start:]
}

// repairSyntax is a single pass over the candidate fixing the malformations
// that show up in model output: single-quoted strings, unquoted object
// keys, trailing commas, strings truncated mid-value, and containers left
// open at the end of the blob.
func repairSyntax(input string) string {
	var b strings.Builder
	b.Grow(len(input) + 8)

	var stack []byte
	inString := false
	var quote byte

	i := 0
	for i < len(input) {
		c := input[i]

		if inString {
			switch c {
			case '\\':
				if i+1 < len(input) {
					next := input[i+1]
					if quote == '\'' && next == '\'' {
						// JSON has no \' escape; the apostrophe is literal
						b.WriteByte('\'')
					} else {
						b.WriteByte('\\')
						b.WriteByte(next)
					}
					i += 2
					continue
				}
				// dangling escape at the end of a truncated blob
				i++
				continue
			case quote:
				inString = false
				b.WriteByte('"')
			case '"':
				// a double quote inside a single-quoted string
				b.WriteString(`\"`)
			case '\n', '\r':
				// raw newline means the string was truncated mid-value
				inString = false
				b.WriteByte('"')
				b.WriteByte(c)
			default:
				b.WriteByte(c)
			}
			i++
			continue
		}

		switch {
		case c == '"' || c == '\'':
			inString = true
			quote = c
			b.WriteByte('"')
			i++
		case c == '{' || c == '[':
			stack = append(stack, c)
			b.WriteByte(c)
			i++
		case c == '}' || c == ']':
			if n := len(stack); n > 0 {
				stack = stack[:n-1]
				b.WriteByte(c)
			}
			// a stray closer with nothing open is dropped
			i++
		case c == ',':
			j := i + 1
			for j < len(input) && isSpace(input[j]) {
				j++
			}
			// drop the comma when its container closes right after it
			if j >= len(input) || input[j] == '}' || input[j] == ']' {
				i++
				continue
			}
			b.WriteByte(c)
			i++
		case isIdentByte(c):
			j := i
			for j < len(input) && isIdentByte(input[j]) {
				j++
			}
			word := input[i:j]
			k := j
			for k < len(input) && isSpace(input[k]) {
				k++
			}
			if k < len(input) && input[k] == ':' {
				// unquoted object key
				b.WriteByte('"')
				b.WriteString(word)
				b.WriteByte('"')
			} else {
				b.WriteString(word)
			}
			i = j
		default:
			b.WriteByte(c)
			i++
		}
	}

	out := b.String()
	if inString {
		out += `"`
	}

	// Trim a dangling comma left right before the implicit closers.
	for {
		t := strings.TrimRight(out, " \t\r\n")
		if len(stack) > 0 && strings.HasSuffix(t, ",") {
			out = t[:len(t)-1]
			continue
		}
		out = t
		break
	}

	for n := len(stack) - 1; n >= 0; n-- {
		if stack[n] == '{' {
			out += "}"
		} else {
			out += "]"
		}
	}
	return out
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func isIdentByte(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' ||
		c >= '0' && c <= '9' || c == '_' || c == '$'
}
