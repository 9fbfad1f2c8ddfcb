package format

import (
	"regexp"

	"github.com/Urethramancer/fmt68/source"
)

// A single-character immediate stored through (A5)+. Group 1 is the character.
var reCollapsible = regexp.MustCompile(`^#'([^'])',\((?i:a5)\)\+$`)

// Normalize applies the per-line edits in place. Only flags and prefixes change.
func (f *Formatter) Normalize(l source.Line) {
	switch l := l.(type) {
	case *source.Code:
		l.Collapsible = isCollapsible(l)
		if f.cfg.RewriteCommentPrefix && l.HasComment() {
			l.CommentPrefix = f.prefix
		}
	case *source.Comment:
		if f.cfg.RewriteCommentPrefix {
			l.Prefix = f.prefix
		}
	case *source.Label:
		l.HasColon = f.cfg.LabelColon
		if f.cfg.RewriteCommentPrefix && l.HasComment() {
			l.Prefix = f.prefix
		}
	}
}

func isCollapsible(c *source.Code) bool {
	return c.Instruction == "MOVE" &&
		c.Size == source.SizeByte &&
		reCollapsible.MatchString(c.Operands)
}
