package strukt

import "strings"

// pathSep separates segments in dotted paths; wildcardMark prefixes a
// wildcard segment ("pets.$string.name").
const (
	pathSep      = "."
	wildcardMark = "$"
)

// Segment is one step of a parsed Path. A wildcard segment carries the key
// type name ("$string" parses to {Name: "string", Wildcard: true}).
type Segment struct {
	Name     string
	Wildcard bool
}

func (s Segment) String() string {
	if s.Wildcard {
		return wildcardMark + s.Name
	}
	return s.Name
}

// Path is a parsed dotted path. The zero value is invalid; obtain one via
// ParsePath or MustParsePath.
type Path struct {
	raw  string
	segs []Segment
}

// ParsePath splits a dotted path into segments. Empty paths and empty
// segments (leading, trailing or doubled separators) are rejected with a
// malformed_path violation.
func ParsePath(s string) (Path, error) {
	if s == "" {
		return Path{}, malformedPath(s, "empty path")
	}
	parts := strings.Split(s, pathSep)
	segs := make([]Segment, 0, len(parts))
	for i, part := range parts {
		if part == "" {
			switch {
			case i == 0:
				return Path{}, malformedPath(s, "leading separator")
			case i == len(parts)-1:
				return Path{}, malformedPath(s, "trailing separator")
			default:
				return Path{}, malformedPath(s, "doubled separator")
			}
		}
		if strings.HasPrefix(part, wildcardMark) {
			name := part[len(wildcardMark):]
			if name == "" {
				return Path{}, malformedPath(s, "empty wildcard type name")
			}
			segs = append(segs, Segment{Name: name, Wildcard: true})
			continue
		}
		segs = append(segs, Segment{Name: part})
	}
	return Path{raw: s, segs: segs}, nil
}

// MustParsePath is ParsePath that panics on malformed input. Intended for
// literals.
func MustParsePath(s string) Path {
	p, err := ParsePath(s)
	if err != nil {
		panic(err)
	}
	return p
}

// String returns the path as written.
func (p Path) String() string { return p.raw }

// IsZero reports whether p is the (invalid) zero Path.
func (p Path) IsZero() bool { return p.raw == "" && p.segs == nil }

// Segments returns a copy of the parsed segments.
func (p Path) Segments() []Segment {
	return append([]Segment(nil), p.segs...)
}

// HasWildcard reports whether any segment is a wildcard.
func (p Path) HasWildcard() bool {
	for _, s := range p.segs {
		if s.Wildcard {
			return true
		}
	}
	return false
}

func malformedPath(path, reason string) Violations {
	v := violationAt(path, CodeMalformedPath, map[string]string{"reason": reason})
	v.Params["path"] = path
	return Violations{v}
}

// joinPath appends one rendered segment to a dotted prefix.
func joinPath(prefix, seg string) string {
	if prefix == "" {
		return seg
	}
	return prefix + pathSep + seg
}

// renderTail joins a concrete prefix with the remaining declared segments,
// wildcard markers rendered as written. Used when a check fails before the
// whole path could be walked.
func renderTail(prefix string, rest []Segment) string {
	out := prefix
	for _, s := range rest {
		out = joinPath(out, s.String())
	}
	return out
}
