package format

import (
	"fmt"
	"strings"
)

// Type identifies one of the recognized formatting styles.
type Type uint8

const (
	Bold Type = iota
	Italic
	Underline
	Strikethrough
	H1
	H2
	H3
	Bullet
)

// Types lists every style in display order.
var Types = []Type{Bold, Italic, Underline, Strikethrough, H1, H2, H3, Bullet}

// String returns the lowercase name of the style.
func (t Type) String() string {
	switch t {
	case Bold:
		return "bold"
	case Italic:
		return "italic"
	case Underline:
		return "underline"
	case Strikethrough:
		return "strikethrough"
	case H1:
		return "h1"
	case H2:
		return "h2"
	case H3:
		return "h3"
	case Bullet:
		return "bullet"
	default:
		return "unknown"
	}
}

// IsInline reports whether the style wraps a span of text regardless of
// line boundaries.
func (t Type) IsInline() bool {
	return t <= Strikethrough
}

// IsBlock reports whether the style applies to whole lines.
func (t Type) IsBlock() bool {
	return t >= H1 && t <= Bullet
}

// IsHeading reports whether the style is a heading level.
func (t Type) IsHeading() bool {
	return t >= H1 && t <= H3
}

// Level returns the heading level (1-3), or 0 for non-heading styles.
func (t Type) Level() int {
	if !t.IsHeading() {
		return 0
	}
	return int(t-H1) + 1
}

// ParseType parses a style name. Matching is case-insensitive.
func ParseType(name string) (Type, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "bold", "b":
		return Bold, nil
	case "italic", "i":
		return Italic, nil
	case "underline", "u":
		return Underline, nil
	case "strikethrough", "strike", "s":
		return Strikethrough, nil
	case "h1", "heading1":
		return H1, nil
	case "h2", "heading2":
		return H2, nil
	case "h3", "heading3":
		return H3, nil
	case "bullet", "list":
		return Bullet, nil
	default:
		return 0, fmt.Errorf("unknown format type %q", name)
	}
}
