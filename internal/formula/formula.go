// Package formula turns the LaTeX-like markup used in the report narrative
// into runs of text with subscript and superscript positions, ready to be
// written as styled runs of a paragraph.
package formula

import (
	"fmt"
	"strings"
)

// HardSpace is what "\ " and "~" produce.
const HardSpace = "\u00a0"

// Script is the vertical position of a run.
type Script int

const (
	Baseline Script = iota
	Subscript
	Superscript
)

func (s Script) String() string {
	switch s {
	case Subscript:
		return "subscript"
	case Superscript:
		return "superscript"
	default:
		return "baseline"
	}
}

// Segment is a run of text at one vertical position.
type Segment struct {
	Text   string
	Script Script
}

var symbols = map[string]string{
	"cdot":   "·",
	"times":  "×",
	"sum":    "Σ",
	"le":     "≤",
	"leq":    "≤",
	"ge":     "≥",
	"geq":    "≥",
	"ne":     "≠",
	"approx": "≈",
	"lceil":  "⌈",
	"rceil":  "⌉",
	"lfloor": "⌊",
	"rfloor": "⌋",
	"alpha":  "α",
	"beta":   "β",
	"gamma":  "γ",
	"Gamma":  "Γ",
	"delta":  "δ",
	"Delta":  "Δ",
	"eta":    "η",
	"lambda": "λ",
	"mu":     "μ",
	"pi":     "π",
	"rho":    "ρ",
	"sigma":  "σ",
	"Sigma":  "Σ",
	"tau":    "τ",
	"phi":    "φ",
	"omega":  "ω",
	"left":   "",
	"right":  "",
}

// SyntaxError reports malformed markup.
type SyntaxError struct {
	Pos int // rune offset
	Msg string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("formula: %s at %d", e.Msg, e.Pos)
}

type parser struct {
	src  []rune
	pos  int
	segs []Segment
}

// Parse converts markup into segments. Adjacent segments never share a
// script.
func Parse(src string) ([]Segment, error) {
	p := &parser{src: []rune(src)}
	if err := p.sequence(Baseline, false); err != nil {
		return nil, err
	}
	return p.segs, nil
}

// MustParse is Parse for markup known to be valid; it panics on error.
func MustParse(src string) []Segment {
	segs, err := Parse(src)
	if err != nil {
		panic(err)
	}
	return segs
}

// Plain flattens segments back to text.
func Plain(segs []Segment) string {
	var b strings.Builder
	for _, s := range segs {
		b.WriteString(s.Text)
	}
	return b.String()
}

func (p *parser) emit(text string, script Script) {
	if text == "" {
		return
	}
	if n := len(p.segs); n > 0 && p.segs[n-1].Script == script {
		p.segs[n-1].Text += text
		return
	}
	p.segs = append(p.segs, Segment{Text: text, Script: script})
}

// sequence consumes runes until the end of input or, inside a group, the
// closing brace.
func (p *parser) sequence(script Script, inGroup bool) error {
	for p.pos < len(p.src) {
		r := p.src[p.pos]
		switch r {
		case '}':
			if !inGroup {
				return &SyntaxError{Pos: p.pos, Msg: "unexpected }"}
			}
			p.pos++
			return nil
		case '{':
			p.pos++
			if err := p.sequence(script, true); err != nil {
				return err
			}
		case '_', '^':
			p.pos++
			inner := Subscript
			if r == '^' {
				inner = Superscript
			}
			if err := p.argument(inner); err != nil {
				return err
			}
		case '\\':
			if err := p.command(script); err != nil {
				return err
			}
		case '~':
			p.pos++
			p.emit(HardSpace, script)
		default:
			p.pos++
			p.emit(string(r), script)
		}
	}
	if inGroup {
		return &SyntaxError{Pos: p.pos, Msg: "missing }"}
	}
	return nil
}

// argument parses one braced group or a single token at script.
func (p *parser) argument(script Script) error {
	if p.pos >= len(p.src) {
		return &SyntaxError{Pos: p.pos, Msg: "missing argument"}
	}
	switch r := p.src[p.pos]; r {
	case '{':
		p.pos++
		return p.sequence(script, true)
	case '\\':
		return p.command(script)
	case '}':
		return &SyntaxError{Pos: p.pos, Msg: "missing argument"}
	default:
		p.pos++
		p.emit(string(r), script)
		return nil
	}
}

func (p *parser) command(script Script) error {
	start := p.pos
	p.pos++ // backslash
	if p.pos >= len(p.src) {
		return &SyntaxError{Pos: start, Msg: "dangling \\"}
	}
	if !isCommandLetter(p.src[p.pos]) {
		r := p.src[p.pos]
		p.pos++
		switch r {
		case ' ', '~':
			p.emit(HardSpace, script)
		case ',':
			p.emit("\u2009", script)
		case '{', '}', '\\', '_', '^', '%':
			p.emit(string(r), script)
		default:
			return &SyntaxError{Pos: start, Msg: fmt.Sprintf("unknown escape \\%c", r)}
		}
		return nil
	}

	nameStart := p.pos
	for p.pos < len(p.src) && isCommandLetter(p.src[p.pos]) {
		p.pos++
	}
	name := string(p.src[nameStart:p.pos])
	if name == "frac" {
		return p.fraction(script)
	}
	sym, ok := symbols[name]
	if !ok {
		return &SyntaxError{Pos: start, Msg: "unknown command \\" + name}
	}
	p.emit(sym, script)
	return nil
}

// fraction renders \frac{a}{b} inline as a/b, parenthesising compound
// parts.
func (p *parser) fraction(script Script) error {
	num, err := p.capture(script)
	if err != nil {
		return err
	}
	den, err := p.capture(script)
	if err != nil {
		return err
	}
	p.emitAll(parenthesise(num, script))
	p.emit("/", script)
	p.emitAll(parenthesise(den, script))
	return nil
}

// capture parses one argument into a separate segment list.
func (p *parser) capture(script Script) ([]Segment, error) {
	saved := p.segs
	p.segs = nil
	err := p.argument(script)
	out := p.segs
	p.segs = saved
	return out, err
}

func (p *parser) emitAll(segs []Segment) {
	for _, s := range segs {
		p.emit(s.Text, s.Script)
	}
}

func parenthesise(segs []Segment, script Script) []Segment {
	var level strings.Builder
	for _, s := range segs {
		if s.Script == script {
			level.WriteString(s.Text)
		}
	}
	if !strings.ContainsAny(strings.TrimSpace(level.String()), " +-·×") {
		return segs
	}
	out := append([]Segment{{Text: "(", Script: script}}, segs...)
	return append(out, Segment{Text: ")", Script: script})
}

func isCommandLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}
