package auth

import "strings"

// pathPattern matches request paths segment by segment. Segments starting
// with ':' capture the request segment at the same position. Literal segments
// compare case-insensitively, as fiber routes them.
type pathPattern struct {
	segments []string
}

func compilePattern(pattern string) pathPattern {
	return pathPattern{segments: splitPath(pattern)}
}

func (p pathPattern) match(path string) (map[string]string, bool) {
	parts := splitPath(path)
	if len(parts) != len(p.segments) {
		return nil, false
	}
	params := map[string]string{}
	for i, seg := range p.segments {
		if strings.HasPrefix(seg, ":") {
			if parts[i] == "" {
				return nil, false
			}
			params[seg[1:]] = parts[i]
			continue
		}
		if !strings.EqualFold(seg, parts[i]) {
			return nil, false
		}
	}
	return params, true
}

func splitPath(path string) []string {
	trimmed := strings.Trim(path, "/")
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "/")
}

// pathAllowList holds exact paths and prefixes (entries ending in "*").
type pathAllowList struct {
	exact    map[string]struct{}
	prefixes []string
}

func newPathAllowList(paths []string) pathAllowList {
	list := pathAllowList{exact: make(map[string]struct{}, len(paths))}
	for _, p := range paths {
		p = strings.TrimSpace(p)
		switch {
		case p == "":
		case strings.HasSuffix(p, "*"):
			list.prefixes = append(list.prefixes, strings.TrimSuffix(p, "*"))
		default:
			list.exact[p] = struct{}{}
		}
	}
	return list
}

func (l pathAllowList) allows(path string) bool {
	if _, ok := l.exact[path]; ok {
		return true
	}
	for _, prefix := range l.prefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}
