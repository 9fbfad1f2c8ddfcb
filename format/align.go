package format

import (
	"log/slog"
	"slices"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/Urethramancer/fmt68/source"
)

// Tabstops are the cumulative column boundaries every line is aligned to.
type Tabstops struct {
	// Instruction is where mnemonics start.
	Instruction int
	// Arg is where operands start.
	Arg int
	// Comment is where trailing comments start.
	Comment int
	// SourceColumns are the distinct columns mnemonics started at in the input, sorted.
	SourceColumns []int
}

// Measure computes the tabstops for a file from its code lines.
// Instruction < Arg < Comment always holds.
func Measure(lines []source.Line, tabWidth int) Tabstops {
	var ts Tabstops
	var label, mnemonic, operands int
	for _, l := range lines {
		c, ok := l.(*source.Code)
		if !ok {
			continue
		}

		w := runewidth.StringWidth(c.Label)
		if c.HasColon {
			w++
		}
		label = max(label, w)
		mnemonic = max(mnemonic, runewidth.StringWidth(c.Mnemonic()))
		operands = max(operands, runewidth.StringWidth(c.Operands))

		if col := c.Column(); !slices.Contains(ts.SourceColumns, col) {
			ts.SourceColumns = append(ts.SourceColumns, col)
		}
	}
	slices.Sort(ts.SourceColumns)

	ts.Instruction = snap(label, tabWidth)
	ts.Arg = ts.Instruction + snap(mnemonic, tabWidth)
	ts.Comment = ts.Arg + snap(operands, tabWidth)
	return ts
}

// snap rounds w up to the next multiple of tab strictly above it,
// leaving at least one column of separation.
func snap(w, tab int) int {
	if tab < 1 {
		tab = 1
	}
	return (w/tab + 1) * tab
}

// nearInstruction reports whether a full-line comment indented by indent
// belonged with the mnemonics, i.e. sat no further right than the mean
// source mnemonic column.
func (ts Tabstops) nearInstruction(indent int) bool {
	if len(ts.SourceColumns) == 0 {
		return true
	}
	sum := 0
	for _, c := range ts.SourceColumns {
		sum += c
	}
	return indent*len(ts.SourceColumns) <= sum
}

// Render recomposes every line against the tabstops.
func Render(lines []source.Line, ts Tabstops) []string {
	r := renderer{ts: ts, log: slog.New(slog.DiscardHandler)}
	return r.render(lines)
}

type renderer struct {
	ts    Tabstops
	log   *slog.Logger
	sb    strings.Builder
	width int
	line  int
}

func (r *renderer) render(lines []source.Line) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		r.line = i + 1
		r.sb.Reset()
		r.width = 0
		switch l := l.(type) {
		case *source.Code:
			r.code(l)
		case *source.Comment:
			r.comment(l)
		case *source.Label:
			r.label(l)
		case *source.Unknown:
			r.write(l.Text)
		}
		out[i] = r.sb.String()
	}
	return out
}

func (r *renderer) code(c *source.Code) {
	r.sb.Grow(int(c.OrigLength))
	r.write(c.Label)
	if c.HasColon {
		r.write(":")
	}
	r.padTo(r.ts.Instruction, 1)
	r.write(c.Mnemonic())
	if c.Operands != "" {
		r.padTo(r.ts.Arg, 1)
		r.write(c.Operands)
	}
	if c.HasComment() {
		r.padTo(r.ts.Comment, 1)
		r.write(commentText(c.CommentPrefix, c.Comment))
	}
}

func (r *renderer) comment(c *source.Comment) {
	r.sb.Grow(int(c.OrigLength))
	switch {
	case c.Indent == 0:
	case r.ts.nearInstruction(c.Indent):
		r.padTo(r.ts.Instruction, 0)
	default:
		r.padTo(r.ts.Comment, 0)
	}
	r.write(commentText(c.Prefix, c.Text))
}

func (r *renderer) label(l *source.Label) {
	r.sb.Grow(int(l.OrigLength))
	r.write(l.Name)
	if l.HasColon {
		r.write(":")
	}
	if l.HasComment() {
		r.padTo(r.ts.Comment, 1)
		r.write(commentText(l.Prefix, l.Comment))
	}
}

func (r *renderer) write(s string) {
	r.sb.WriteString(s)
	r.width += runewidth.StringWidth(s)
}

// padTo pads with spaces up to col, writing at least least spaces.
func (r *renderer) padTo(col, least int) {
	n := col - r.width
	if n < least {
		r.log.Debug("field overflows tabstop", "line", r.line, "column", r.width, "tabstop", col)
		n = least
	}
	r.write(strings.Repeat(" ", n))
}

// commentText joins a prefix and its text with one space, unless the text is
// empty or continues a run of prefix characters (e.g. "*****" banners).
func commentText(prefix rune, text string) string {
	switch {
	case prefix == 0:
		return text
	case text == "" || source.IsCommentPrefix(rune(text[0])):
		return string(prefix) + text
	}
	return string(prefix) + " " + text
}
