package source

// Kind identifies the variant of a Line.
type Kind int

const (
	// KindBlank type.
	KindBlank Kind = iota
	// KindComment type.
	KindComment
	// KindLabel type.
	KindLabel
	// KindCode type.
	KindCode
	// KindUnknown type.
	KindUnknown
)

func (k Kind) String() string {
	switch k {
	case KindBlank:
		return "blank"
	case KindComment:
		return "comment"
	case KindLabel:
		return "label"
	case KindCode:
		return "code"
	}
	return "unknown"
}

// Line is one classified source line. The concrete type is one of
// *Blank, *Comment, *Label, *Code or *Unknown.
type Line interface {
	Kind() Kind
}

// Blank is an empty or whitespace-only line.
type Blank struct{}

// Comment is a line holding nothing but a comment.
type Comment struct {
	OrigLength uint16
	// Indent is the width of the leading whitespace.
	Indent int
	// Prefix is ';' or '*'.
	Prefix rune
	// Text follows the prefix, with leading whitespace removed.
	Text string
}

// Label is a line holding only a label and, optionally, a comment.
type Label struct {
	OrigLength uint16
	HasColon   bool
	Name       string
	// Prefix is 0 when there is no comment.
	Prefix  rune
	Comment string
}

// Code is an instruction line.
type Code struct {
	OrigLength uint16
	Label      string
	HasColon   bool
	// Indent is the whitespace between the label (or line start) and the mnemonic.
	Indent      int
	Instruction string
	Size        Size
	// Gap is the whitespace between the mnemonic and the operands.
	Gap      int
	Operands string
	// TrailingGap is the whitespace between the operands and the comment.
	TrailingGap int
	// CommentPrefix is 0 when the comment had none.
	CommentPrefix rune
	Comment       string
	// Collapsible marks a MOVE.B #'c',(A5)+ line eligible for merging.
	Collapsible bool
}

// Unknown is a line no grammar recognised. It is echoed verbatim.
type Unknown struct {
	OrigLength uint16
	Text       string
}

// Kind returns KindBlank.
func (*Blank) Kind() Kind { return KindBlank }

// Kind returns KindComment.
func (*Comment) Kind() Kind { return KindComment }

// Kind returns KindLabel.
func (*Label) Kind() Kind { return KindLabel }

// Kind returns KindCode.
func (*Code) Kind() Kind { return KindCode }

// Kind returns KindUnknown.
func (*Unknown) Kind() Kind { return KindUnknown }

// HasComment reports whether the label carries a trailing comment.
func (l *Label) HasComment() bool {
	return l.Prefix != 0 || l.Comment != ""
}

// HasComment reports whether the instruction carries a trailing comment.
func (c *Code) HasComment() bool {
	return c.CommentPrefix != 0 || c.Comment != ""
}

// Mnemonic returns the instruction with its size suffix, e.g. "MOVE.B".
func (c *Code) Mnemonic() string {
	return c.Instruction + c.Size.Suffix()
}

// Column returns the column the mnemonic started at in the source line.
func (c *Code) Column() int {
	col := len(c.Label) + c.Indent
	if c.HasColon {
		col++
	}
	return col
}
