// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package aslan

// Config carries settings for a Parser. A zero Config is ready for use and
// selects the default behavior.
type Config struct {
	// Prefix is the text following "[" that marks a delimiter.
	// If empty, DefaultPrefix is used.
	Prefix string `json:"prefix,omitempty" yaml:"prefix,omitempty"`

	// DefaultField is the name of the root field that receives text before
	// the first delimiter. If empty, DefaultFieldName is used.
	DefaultField string `json:"defaultField,omitempty" yaml:"defaultField,omitempty"`

	// StrictStart, if true, causes the parser to ignore all input until a GO
	// delimiter, and to begin a new document at each GO that follows an open
	// document.
	StrictStart bool `json:"strictStart,omitempty" yaml:"strictStart,omitempty"`

	// StrictEnd, if true, causes each STOP delimiter to finish the current
	// document and begin a new one.
	StrictEnd bool `json:"strictEnd,omitempty" yaml:"strictEnd,omitempty"`

	// MultiDocument, if true, causes Parse to return every document root.
	MultiDocument bool `json:"multiDocument,omitempty" yaml:"multiDocument,omitempty"`

	// PreserveWhitespace, if true, counts whitespace-only text as content
	// when deciding whether an OBJECT or ARRAY delimiter opens a container.
	PreserveWhitespace bool `json:"preserveWhitespace,omitempty" yaml:"preserveWhitespace,omitempty"`

	// Suppress delivery of the corresponding event kinds.
	NoContentEvents bool `json:"noContentEvents,omitempty" yaml:"noContentEvents,omitempty"`
	NoEndEvents     bool `json:"noEndEvents,omitempty" yaml:"noEndEvents,omitempty"`
	NoEndDataEvents bool `json:"noEndDataEvents,omitempty" yaml:"noEndDataEvents,omitempty"`

	// AppendSeparator, if non-empty, is written between the spans of a key
	// that is declared more than once under the Default or Append policy.
	AppendSeparator string `json:"appendSeparator,omitempty" yaml:"appendSeparator,omitempty"`

	// If LimitObjectDepth is true, an OBJECT delimiter always closes when
	// MaxObjectDepth or more objects are open below the root.
	LimitObjectDepth bool `json:"limitObjectDepth,omitempty" yaml:"limitObjectDepth,omitempty"`
	MaxObjectDepth   int  `json:"maxObjectDepth,omitempty" yaml:"maxObjectDepth,omitempty"`
}

const (
	// DefaultPrefix is the delimiter prefix used if none is configured.
	DefaultPrefix = "aslan"

	// DefaultFieldName is the default field used if none is configured.
	DefaultFieldName = "_default"
)

func (c Config) prefix() string {
	if c.Prefix == "" {
		return DefaultPrefix
	}
	return c.Prefix
}

func (c Config) defaultField() string {
	if c.DefaultField == "" {
		return DefaultFieldName
	}
	return c.DefaultField
}

func (c Config) enabled(tag Tag) bool {
	switch tag {
	case TagContent:
		return !c.NoContentEvents
	case TagEnd:
		return !c.NoEndEvents
	case TagEndData:
		return !c.NoEndDataEvents
	}
	return false
}
