package format

import (
	"regexp"
	"strings"
	"unicode"
)

// Style bundles the detector and appliers of one formatting style.
// All functions are pure and operate on a single line or span of text.
type Style struct {
	Type Type

	// Detect reports whether the trimmed text carries the style.
	Detect func(s string) bool

	// Apply adds the style to the text.
	Apply func(s string) string

	// Remove strips the style from the text. Remove is idempotent except
	// for nested underline and strikethrough, which lose one layer per call.
	Remove func(s string) string
}

// Toggle removes the style if the text carries it and applies it otherwise.
func (st Style) Toggle(s string) string {
	if st.Detect(s) {
		return st.Remove(s)
	}
	return st.Apply(s)
}

var (
	bold          = wrapper{open: "<b>", close: "</b>", nested: true}
	italic        = wrapper{open: "<i>", close: "</i>", nested: true, exclude: isBoldMarked}
	underline     = wrapper{open: "<u>", close: "</u>"}
	strikethrough = wrapper{open: "~~", close: "~~"}
)

// styles is indexed by Type.
var styles = [...]Style{
	Bold:          bold.style(Bold),
	Italic:        italic.style(Italic),
	Underline:     underline.style(Underline),
	Strikethrough: strikethrough.style(Strikethrough),
	H1:            heading(1).style(H1),
	H2:            heading(2).style(H2),
	H3:            heading(3).style(H3),
	Bullet:        bulletStyle(),
}

// Lookup returns the style registered for t.
func Lookup(t Type) (Style, bool) {
	if int(t) >= len(styles) {
		return Style{}, false
	}
	return styles[t], true
}

// Detect reports whether s carries style t.
func Detect(t Type, s string) bool {
	st, ok := Lookup(t)
	return ok && st.Detect(s)
}

// Apply adds style t to s.
func Apply(t Type, s string) string {
	if st, ok := Lookup(t); ok {
		return st.Apply(s)
	}
	return s
}

// Remove strips style t from s.
func Remove(t Type, s string) string {
	if st, ok := Lookup(t); ok {
		return st.Remove(s)
	}
	return s
}

// ToggleText toggles style t on s.
func ToggleText(t Type, s string) string {
	if st, ok := Lookup(t); ok {
		return st.Toggle(s)
	}
	return s
}

// splitSpace splits s into leading whitespace, trimmed core and trailing
// whitespace. lead+core+trail == s.
func splitSpace(s string) (lead, core, trail string) {
	rest := strings.TrimLeftFunc(s, unicode.IsSpace)
	lead = s[:len(s)-len(rest)]
	core = strings.TrimRightFunc(rest, unicode.IsSpace)
	trail = rest[len(core):]
	return lead, core, trail
}

// wrapper is an inline style delimited by an opening and closing marker.
type wrapper struct {
	open  string
	close string

	// nested strips every layer on remove instead of just the outermost.
	nested bool

	// exclude rejects text that must not be treated as this style.
	exclude func(core string) bool
}

func (w wrapper) style(t Type) Style {
	return Style{
		Type:   t,
		Detect: w.detect,
		Apply:  w.apply,
		Remove: w.remove,
	}
}

// matches reports whether an already trimmed string is wrapped with a
// non-empty body.
func (w wrapper) matches(core string) bool {
	if len(core) <= len(w.open)+len(w.close) {
		return false
	}
	if !strings.HasPrefix(core, w.open) || !strings.HasSuffix(core, w.close) {
		return false
	}
	return w.exclude == nil || !w.exclude(core)
}

func (w wrapper) detect(s string) bool {
	return w.matches(strings.TrimSpace(s))
}

// apply returns blank text unchanged; an empty marker pair is never detected.
func (w wrapper) apply(s string) string {
	lead, core, trail := splitSpace(s)
	if core == "" {
		return s
	}
	return lead + w.open + core + w.close + trail
}

func (w wrapper) remove(s string) string {
	lead, core, trail := splitSpace(s)
	for w.matches(core) {
		l, c, t := splitSpace(core[len(w.open) : len(core)-len(w.close)])
		lead, core, trail = lead+l, c, t+trail
		if !w.nested {
			break
		}
	}
	return lead + core + trail
}

// isBoldMarked reports whether the text starts or ends with a bold marker.
// Bold takes precedence over italic when both could match.
func isBoldMarked(core string) bool {
	return strings.HasPrefix(core, bold.open) || strings.HasSuffix(core, bold.close)
}

var headingPrefix = regexp.MustCompile(`^#+\s+`)

// heading is a block style for a single heading level.
type heading int

func (h heading) style(t Type) Style {
	return Style{
		Type:   t,
		Detect: h.detect,
		Apply:  h.apply,
		Remove: removeHeading,
	}
}

func (h heading) marker() string {
	return strings.Repeat("#", int(h)) + " "
}

// detect matches exactly h '#' characters followed by a space, so at most
// one level matches any line.
func (h heading) detect(s string) bool {
	return strings.HasPrefix(strings.TrimSpace(s), h.marker())
}

func (h heading) apply(s string) string {
	lead, core, trail := splitSpace(s)
	return lead + h.marker() + headingPrefix.ReplaceAllLiteralString(core, "") + trail
}

func removeHeading(s string) string {
	lead, core, trail := splitSpace(s)
	return lead + headingPrefix.ReplaceAllLiteralString(core, "") + trail
}

var (
	bulletMatch  = regexp.MustCompile(`^[-*]\s`)
	bulletPrefix = regexp.MustCompile(`^[-*]\s+`)
)

const bulletMarker = "- "

func bulletStyle() Style {
	return Style{
		Type: Bullet,
		Detect: func(s string) bool {
			return bulletMatch.MatchString(strings.TrimSpace(s))
		},
		Apply: func(s string) string {
			lead, core, trail := splitSpace(s)
			return lead + bulletMarker + bulletPrefix.ReplaceAllLiteralString(core, "") + trail
		},
		Remove: func(s string) string {
			lead, core, trail := splitSpace(s)
			return lead + bulletPrefix.ReplaceAllLiteralString(core, "") + trail
		},
	}
}
