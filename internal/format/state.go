package format

import "strings"

// State records which styles are active for a selection.
// At most one of H1, H2 and H3 is true.
type State struct {
	Bold          bool
	Italic        bool
	Underline     bool
	Strikethrough bool
	H1            bool
	H2            bool
	H3            bool
	Bullet        bool
}

// Active reports whether style t is active.
func (s State) Active(t Type) bool {
	switch t {
	case Bold:
		return s.Bold
	case Italic:
		return s.Italic
	case Underline:
		return s.Underline
	case Strikethrough:
		return s.Strikethrough
	case H1:
		return s.H1
	case H2:
		return s.H2
	case H3:
		return s.H3
	case Bullet:
		return s.Bullet
	default:
		return false
	}
}

// Set updates the flag for style t.
func (s *State) Set(t Type, on bool) {
	switch t {
	case Bold:
		s.Bold = on
	case Italic:
		s.Italic = on
	case Underline:
		s.Underline = on
	case Strikethrough:
		s.Strikethrough = on
	case H1:
		s.H1 = on
	case H2:
		s.H2 = on
	case H3:
		s.H3 = on
	case Bullet:
		s.Bullet = on
	}
}

// ActiveTypes returns the active styles in display order.
func (s State) ActiveTypes() []Type {
	var active []Type
	for _, t := range Types {
		if s.Active(t) {
			active = append(active, t)
		}
	}
	return active
}

// Heading returns the active heading level, or 0 if none is active.
func (s State) Heading() int {
	switch {
	case s.H1:
		return 1
	case s.H2:
		return 2
	case s.H3:
		return 3
	default:
		return 0
	}
}

// String returns the active style names joined by '+', or "plain".
func (s State) String() string {
	active := s.ActiveTypes()
	if len(active) == 0 {
		return "plain"
	}
	names := make([]string, len(active))
	for i, t := range active {
		names[i] = t.String()
	}
	return strings.Join(names, "+")
}
