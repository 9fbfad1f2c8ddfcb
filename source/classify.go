package source

import (
	"math"
	"regexp"
	"strings"

	"fortio.org/safecast"
)

const whitespace = " \t\n\v\f\r"

// Operand tokens: an optional immediate marker, then a quoted literal or a
// run of symbol/register/addressing characters with an optional radix prefix.
const operandPattern = `#?(?:'[^']*'|[$%]?[\w/()+\-.]+)`

var (
	// label, colon, ws, mnemonic, ws, prefix, comment
	reArgless = regexp.MustCompile(`^([.\w]+)?(:)?(\s+)((?i:end|even|halt|illegal|nop|reset|rte|rtr|rts|trapv))(?:(\s+)([;*])?\s*(.*))?$`)
	// label, colon, prefix, comment
	reLabelComment = regexp.MustCompile(`^([.\w]+)(:)?(?:\s*([;*])\s*(.*))?$`)
	// label, colon, ws, mnemonic, size, ws, operands, ws, prefix, comment
	reCode = regexp.MustCompile(`^([.\w]+)?(:)?(\s+)([A-Za-z]+)(?:\.([SBWLsbwl]))?(\s+)(` +
		operandPattern + `(?:,` + operandPattern + `)*)(?:(\s+)([;*])?\s*(.*))?$`)
)

// Classify turns one raw source line into a Line. It never fails: a line
// matching none of the grammars becomes *Unknown.
func Classify(raw string) Line {
	line := strings.TrimRight(raw, whitespace)
	trimmed := strings.TrimLeft(line, whitespace)
	if trimmed == "" {
		return &Blank{}
	}

	n := origLength(line)

	// The grammars overlap, so the order here decides which one wins.
	if l, ok := tryComment(line, trimmed, n); ok {
		return l
	}
	if l, ok := tryBareLabel(line, n); ok {
		return l
	}
	if l, ok := tryArgless(line, n); ok {
		return l
	}
	if l, ok := tryLabelComment(line, n); ok {
		return l
	}
	if l, ok := tryCode(line, n); ok {
		return l
	}

	return &Unknown{OrigLength: n, Text: line}
}

// ClassifyAll classifies every line of a file, keeping the order.
func ClassifyAll(raw []string) []Line {
	lines := make([]Line, len(raw))
	for i, r := range raw {
		lines[i] = Classify(r)
	}
	return lines
}

// IsCommentPrefix reports whether r starts a comment.
func IsCommentPrefix(r rune) bool {
	return r == ';' || r == '*'
}

func origLength(line string) uint16 {
	n, err := safecast.Conv[uint16](len(line))
	if err != nil {
		return math.MaxUint16
	}
	return n
}

// tryComment handles full-line comments starting with ';' or '*'.
func tryComment(line, trimmed string, n uint16) (Line, bool) {
	prefix := rune(trimmed[0])
	if !IsCommentPrefix(prefix) {
		return nil, false
	}
	return &Comment{
		OrigLength: n,
		Indent:     len(line) - len(trimmed),
		Prefix:     prefix,
		Text:       strings.TrimLeft(trimmed[1:], whitespace),
	}, true
}

// tryBareLabel handles a single token occupying the whole line.
func tryBareLabel(line string, n uint16) (Line, bool) {
	if strings.ContainsAny(line, whitespace) {
		return nil, false
	}
	name, colon := strings.CutSuffix(line, ":")
	if name == "" {
		name, colon = line, false
	}
	return &Label{OrigLength: n, HasColon: colon, Name: name}, true
}

// tryArgless handles mnemonics that never take operands, such as RTS or END.
func tryArgless(line string, n uint16) (Line, bool) {
	m := reArgless.FindStringSubmatch(line)
	if m == nil {
		return nil, false
	}
	c := &Code{
		OrigLength:  n,
		Label:       m[1],
		HasColon:    m[2] != "",
		Indent:      len(m[3]),
		Instruction: strings.ToUpper(m[4]),
		Size:        SizeNone,
		TrailingGap: len(m[5]),
		Comment:     m[7],
	}
	if m[6] != "" {
		c.CommentPrefix = rune(m[6][0])
	}
	return c, true
}

// tryLabelComment handles a label followed by a prefixed comment.
func tryLabelComment(line string, n uint16) (Line, bool) {
	m := reLabelComment.FindStringSubmatch(line)
	if m == nil {
		return nil, false
	}
	l := &Label{
		OrigLength: n,
		HasColon:   m[2] != "",
		Name:       m[1],
		Comment:    m[4],
	}
	if m[3] != "" {
		l.Prefix = rune(m[3][0])
	}
	return l, true
}

// tryCode handles the full instruction grammar.
func tryCode(line string, n uint16) (Line, bool) {
	m := reCode.FindStringSubmatch(line)
	if m == nil {
		return nil, false
	}
	size, _ := ParseSize(m[5])
	c := &Code{
		OrigLength:  n,
		Label:       m[1],
		HasColon:    m[2] != "",
		Indent:      len(m[3]),
		Instruction: strings.ToUpper(m[4]),
		Size:        size,
		Gap:         len(m[6]),
		Operands:    m[7],
		TrailingGap: len(m[8]),
		Comment:     m[10],
	}
	if m[9] != "" {
		c.CommentPrefix = rune(m[9][0])
	}
	return c, true
}
