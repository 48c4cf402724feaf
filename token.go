// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package aslan

// Delim is the kind of an ASLAN delimiter token.
type Delim byte

// Constants defining the valid Delim values.
const (
	InvalidDelim     Delim = iota // not a delimiter
	DataDelim                     // [Pd_NAME], [Pd_NAME:POLICY], [Pd]
	ObjectDelim                   // [Po]
	ArrayDelim                    // [Pa]
	InstructionDelim              // [Pi_NAME], [Pi_NAME:ARG:...]
	CommentDelim                  // [Pc]
	EscapeDelim                   // [Pe_NAME]
	PartDelim                     // [Pp]
	VoidDelim                     // [Pv]
	GoDelim                       // [Pg]
	StopDelim                     // [Ps]
	ReservedDelim                 // [Px...] for any other alphanumeric x
)

var delimStr = [...]string{
	InvalidDelim:     "invalid",
	DataDelim:        "DATA",
	ObjectDelim:      "OBJECT",
	ArrayDelim:       "ARRAY",
	InstructionDelim: "INSTRUCTION",
	CommentDelim:     "COMMENT",
	EscapeDelim:      "ESCAPE",
	PartDelim:        "PART",
	VoidDelim:        "VOID",
	GoDelim:          "GO",
	StopDelim:        "STOP",
	ReservedDelim:    "RESERVED",
}

func (d Delim) String() string {
	v := int(d)
	if v >= len(delimStr) {
		return delimStr[InvalidDelim]
	}
	return delimStr[v]
}

// delimForCode returns the delimiter kind selected by the character that
// follows the open sequence, or InvalidDelim.
func delimForCode(ch rune) Delim {
	switch ch {
	case 'd':
		return DataDelim
	case 'o':
		return ObjectDelim
	case 'a':
		return ArrayDelim
	case 'i':
		return InstructionDelim
	case 'c':
		return CommentDelim
	case 'e':
		return EscapeDelim
	case 'p':
		return PartDelim
	case 'v':
		return VoidDelim
	case 'g':
		return GoDelim
	case 's':
		return StopDelim
	}
	if isAlnum(ch) {
		return ReservedDelim
	}
	return InvalidDelim
}

// hasName reports whether tokens of kind d carry a "_NAME" body.
func (d Delim) hasName() bool { return d == DataDelim || d == InstructionDelim || d == EscapeDelim }

func isAlnum(ch rune) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || (ch >= '0' && ch <= '9')
}

func isNameRune(ch rune) bool { return ch == '_' || isAlnum(ch) }

// ValidName reports whether s is a valid NAME for a DATA, INSTRUCTION, or
// ESCAPE delimiter.
func ValidName(s string) bool {
	if s == "" || s[0] == '_' || s[len(s)-1] == '_' {
		return false
	}
	for _, ch := range s {
		if !isNameRune(ch) {
			return false
		}
	}
	return true
}
