package router

import "strings"

// PathMatcher is the compiled form of a route pattern. A pattern is a
// sequence of slash-separated segments; a segment prefixed with ':'
// declares a named capturing parameter, every other segment is a literal
// that must match exactly. Parameters never span multiple segments.
type PathMatcher struct {
	pattern  string
	names    []string
	segments []patternSegment
}

type patternSegment struct {
	literal string
	param   bool
}

// CompilePattern compiles a route pattern into a PathMatcher.
// Parameter names are collected left to right, so extraction always
// binds names to captured values in declaration order.
func CompilePattern(pattern string) *PathMatcher {
	parts := splitPath(pattern)

	m := &PathMatcher{
		pattern:  pattern,
		segments: make([]patternSegment, 0, len(parts)),
	}
	for _, part := range parts {
		if strings.HasPrefix(part, ":") {
			name := strings.TrimPrefix(part, ":")
			m.names = append(m.names, name)
			m.segments = append(m.segments, patternSegment{param: true})
			continue
		}
		m.segments = append(m.segments, patternSegment{literal: part})
	}
	return m
}

// Pattern returns the original pattern the matcher was compiled from.
func (m *PathMatcher) Pattern() string {
	return m.pattern
}

// ParamNames returns the declared parameter names in declaration order.
func (m *PathMatcher) ParamNames() []string {
	return m.names
}

// Matches tests a concrete path against the compiled pattern. On a match
// it returns a map binding each declared parameter name to the
// corresponding path segment. It returns ok=false when the segment
// counts differ, any literal segment differs, or a parameter position
// is empty.
func (m *PathMatcher) Matches(path string) (map[string]string, bool) {
	parts := splitPath(path)
	if len(parts) != len(m.segments) {
		return nil, false
	}

	var params map[string]string
	if len(m.names) > 0 {
		params = make(map[string]string, len(m.names))
	}

	i := 0
	for pos, seg := range m.segments {
		if !seg.param {
			if parts[pos] != seg.literal {
				return nil, false
			}
			continue
		}
		if parts[pos] == "" {
			return nil, false
		}
		params[m.names[i]] = parts[pos]
		i++
	}
	return params, true
}

// splitPath breaks a path into its segments, ignoring leading and
// trailing separators so "/api/meals" and "/api/meals/" are the same shape.
func splitPath(path string) []string {
	return strings.Split(strings.Trim(path, "/"), "/")
}
