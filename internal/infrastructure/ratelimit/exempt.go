package ratelimit

import "strings"

// ExemptPaths matches request paths that bypass admission control.
// A pattern ending in "*" matches every path with that prefix; any other
// pattern must match exactly.
type ExemptPaths struct {
	exact    map[string]struct{}
	prefixes []string
}

func NewExemptPaths(patterns []string) *ExemptPaths {
	e := &ExemptPaths{exact: make(map[string]struct{}, len(patterns))}
	for _, p := range patterns {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if prefix, ok := strings.CutSuffix(p, "*"); ok {
			e.prefixes = append(e.prefixes, prefix)
			continue
		}
		e.exact[p] = struct{}{}
	}
	return e
}

// Match reports whether path is exempt.
func (e *ExemptPaths) Match(path string) bool {
	if e == nil {
		return false
	}
	if _, ok := e.exact[path]; ok {
		return true
	}
	for _, prefix := range e.prefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}
