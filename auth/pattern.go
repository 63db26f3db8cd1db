package auth

import (
	"path"
	"strings"
)

const (
	wildcardSegment = "*"
	// restSegment matches one or more trailing path components; it must be last
	restSegment = "**"
)

// PathPattern matches request paths segment by segment.
// "*" matches exactly one non-empty component, a trailing "**" matches
// one or more remaining components.
type PathPattern struct {
	raw      string
	segments []string
}

// CompilePattern parses a pattern such as "/api/users/*/registrations"
func CompilePattern(pattern string) PathPattern {
	return PathPattern{
		raw:      pattern,
		segments: splitPath(pattern),
	}
}

// String returns the pattern as written
func (p PathPattern) String() string {
	return p.raw
}

// Match reports whether the path matches and returns the components
// captured by "*" segments in order.
func (p PathPattern) Match(requestPath string) ([]string, bool) {
	parts := splitPath(requestPath)
	var params []string

	for i, seg := range p.segments {
		if seg == restSegment && i == len(p.segments)-1 {
			return params, len(parts) > i
		}
		if i >= len(parts) {
			return nil, false
		}
		switch seg {
		case wildcardSegment:
			if parts[i] == "" {
				return nil, false
			}
			params = append(params, parts[i])
		default:
			if parts[i] != seg {
				return nil, false
			}
		}
	}

	if len(parts) != len(p.segments) {
		return nil, false
	}
	return params, true
}

// NormalizePath cleans dot segments, duplicate and trailing slashes so
// that classification never sees a path the router would treat differently
// from its canonical form.
func NormalizePath(requestPath string) string {
	if requestPath == "" {
		return "/"
	}
	if !strings.HasPrefix(requestPath, "/") {
		requestPath = "/" + requestPath
	}
	return path.Clean(requestPath)
}

// HasEmptySegment reports whether the raw path contains an empty component
// between two slashes. NormalizePath removes these, the router does not.
func HasEmptySegment(requestPath string) bool {
	return strings.Contains(requestPath, "//")
}

func splitPath(p string) []string {
	p = strings.Trim(p, "/")
	if p == "" {
		return nil
	}
	return strings.Split(p, "/")
}
