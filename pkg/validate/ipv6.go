package validate

import "strings"

const (
	ipv6Groups       = 8
	ipv6MaxGroupLen  = 4
	compressionToken = "::"
)

// IPv6 reports whether s is a syntactically valid IPv6 address in standard
// textual form: eight colon-separated groups of 1-4 hex digits, or fewer
// groups with a single "::" standing in for at least one all-zero group.
func IPv6(s string) bool {
	if s == "" {
		return false
	}

	idx := strings.Index(s, compressionToken)
	if idx < 0 {
		groups := strings.Split(s, ":")
		return len(groups) == ipv6Groups && allGroupsValid(groups)
	}

	head, tail := s[:idx], s[idx+len(compressionToken):]
	if strings.Contains(tail, compressionToken) {
		return false
	}

	var explicit int
	for _, part := range []string{head, tail} {
		if part == "" {
			continue
		}
		groups := strings.Split(part, ":")
		if !allGroupsValid(groups) {
			return false
		}
		explicit += len(groups)
	}

	// "::" replaces at least one group.
	return explicit <= ipv6Groups-1
}

func allGroupsValid(groups []string) bool {
	for _, g := range groups {
		if !validGroup(g) {
			return false
		}
	}
	return true
}

// validGroup reports whether g is 1-4 hex digits. Four hex digits never
// exceed 0xffff, so no numeric range check is needed.
func validGroup(g string) bool {
	if len(g) == 0 || len(g) > ipv6MaxGroupLen {
		return false
	}
	for i := 0; i < len(g); i++ {
		if !isHex(g[i]) {
			return false
		}
	}
	return true
}

func isHex(c byte) bool {
	switch {
	case '0' <= c && c <= '9':
		return true
	case 'a' <= c && c <= 'f':
		return true
	case 'A' <= c && c <= 'F':
		return true
	}
	return false
}
