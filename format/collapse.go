package format

import (
	"strings"

	"github.com/Urethramancer/fmt68/source"
)

// Collapse merges runs of exactly two or four collapsible MOVE.B lines into a
// single MOVE.W or MOVE.L storing the same characters. Runs of any other
// length are left alone. A collapsible line with its own label always starts
// a new run, so no label is lost. The input slice is not modified.
func (f *Formatter) Collapse(lines []source.Line) []source.Line {
	out := make([]source.Line, 0, len(lines))
	var group []*source.Code
	start := 0

	flush := func() {
		var size source.Size
		switch len(group) {
		case 2:
			size = source.SizeWord
		case 4:
			size = source.SizeLong
		}
		if size != source.SizeNone {
			if merged, ok := f.merge(group, size, start); ok {
				out = append(out, merged)
				group = group[:0]
				return
			}
		}
		for _, c := range group {
			out = append(out, c)
		}
		group = group[:0]
	}

	for i, l := range lines {
		c, ok := l.(*source.Code)
		if !ok || !c.Collapsible {
			flush()
			out = append(out, l)
			continue
		}
		if c.Label != "" && len(group) > 0 {
			flush()
		}
		if len(group) == 0 {
			start = i
		}
		group = append(group, c)
	}
	flush()

	return out
}

// merge builds the replacement for a group. The first member is copied, its
// literal grows to hold every member's character, and the members' comments
// are joined. It refuses (ok == false) if any member lost its literal.
func (f *Formatter) merge(group []*source.Code, size source.Size, start int) (*source.Code, bool) {
	var chars strings.Builder
	var comments []string
	var prefix rune
	for i, c := range group {
		m := reCollapsible.FindStringSubmatch(c.Operands)
		if m == nil {
			f.log.Warn("collapsible line has no literal, leaving group as is",
				"line", start+i+1,
				"operands", c.Operands,
			)
			return nil, false
		}
		chars.WriteString(m[1])
		if c.Comment != "" {
			comments = append(comments, c.Comment)
		}
		if prefix == 0 {
			prefix = c.CommentPrefix
		}
	}

	merged := *group[0]
	loc := reCollapsible.FindStringSubmatchIndex(merged.Operands)
	merged.Operands = merged.Operands[:loc[2]] + chars.String() + merged.Operands[loc[3]:]
	merged.Size = size
	merged.Collapsible = false
	if len(comments) > 0 {
		merged.Comment = strings.Join(comments, " ")
		merged.CommentPrefix = prefix
	}

	f.log.Debug("collapsed move group",
		"line", start+1,
		"members", len(group),
		"size", size.String(),
		"operands", merged.Operands,
	)
	return &merged, true
}
