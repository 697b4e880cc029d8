package auth

import "strings"

// PathMatcher classifies request paths against an allow-list of public
// patterns. Patterns are hierarchical globs over '/'-separated segments:
//
//	/healthz              exact match
//	/api/v1/auth/*        one segment
//	/api/v1/auth/**       any number of trailing segments (including none)
//
// '*' never crosses a '/' boundary; '**' is only meaningful as a full
// segment and swallows the rest of the path.
type PathMatcher struct {
	patterns [][]string
}

func NewPathMatcher(patterns []string) *PathMatcher {
	m := &PathMatcher{}
	for _, p := range patterns {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		m.patterns = append(m.patterns, splitPath(p))
	}
	return m
}

// IsPublic reports whether path matches any configured public pattern.
func (m *PathMatcher) IsPublic(path string) bool {
	segs := splitPath(path)
	for _, pat := range m.patterns {
		if matchSegments(pat, segs) {
			return true
		}
	}
	return false
}

func splitPath(p string) []string {
	p = strings.Trim(p, "/")
	if p == "" {
		return nil
	}
	return strings.Split(p, "/")
}

func matchSegments(pat, segs []string) bool {
	for i := 0; i < len(pat); i++ {
		if pat[i] == "**" {
			// '**' matches the remainder, including the empty remainder.
			if i != len(pat)-1 {
				// interior '**': try every possible split
				for j := i; j <= len(segs); j++ {
					if matchSegments(pat[i+1:], segs[j:]) {
						return true
					}
				}
				return false
			}
			return true
		}
		if i >= len(segs) {
			return false
		}
		if pat[i] != "*" && pat[i] != segs[i] {
			return false
		}
	}
	return len(pat) == len(segs)
}
