package source

import "strings"

// Size defines the operand size suffix of an instruction.
type Size int

const (
	// SizeNone is the zero value, indicating no size suffix was provided.
	SizeNone Size = iota
	// SizeShort is the .S suffix used by branch instructions.
	SizeShort
	// SizeByte represents the .B suffix.
	SizeByte
	// SizeWord represents the .W suffix.
	SizeWord
	// SizeLong represents the .L suffix.
	SizeLong
)

// ParseSize converts a suffix letter (with or without the leading dot) to a Size.
// Unknown suffixes return SizeNone and false.
func ParseSize(s string) (Size, bool) {
	switch strings.ToLower(strings.TrimPrefix(s, ".")) {
	case "s":
		return SizeShort, true
	case "b":
		return SizeByte, true
	case "w":
		return SizeWord, true
	case "l":
		return SizeLong, true
	case "":
		return SizeNone, true
	}
	return SizeNone, false
}

// Suffix renders the size as it is written after a mnemonic, e.g. ".W".
func (s Size) Suffix() string {
	switch s {
	case SizeShort:
		return ".S"
	case SizeByte:
		return ".B"
	case SizeWord:
		return ".W"
	case SizeLong:
		return ".L"
	}
	return ""
}

func (s Size) String() string {
	switch s {
	case SizeShort:
		return "short"
	case SizeByte:
		return "byte"
	case SizeWord:
		return "word"
	case SizeLong:
		return "long"
	}
	return "none"
}
