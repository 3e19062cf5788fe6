package validate

import "strings"

const minTopLevelLen = 2

// Email reports whether s is a valid email address under a strict ASCII
// grammar:
//
//	local  = 1*( ALPHA / DIGIT / "." / "_" / "%" / "+" / "-" )   ; not ending in "."
//	domain = 1*( ALPHA / DIGIT / "." / "-" ) "." 2*ALPHA
//	email  = local "@" domain
//
// Two consecutive dots are rejected anywhere in s. The whole string must
// match; surrounding whitespace is not tolerated.
func Email(s string) bool {
	at := strings.IndexByte(s, '@')
	if at < 0 {
		return false
	}
	local, domain := s[:at], s[at+1:]

	if strings.Contains(s, "..") {
		return false
	}
	return validLocal(local) && validDomain(domain)
}

func validLocal(local string) bool {
	if local == "" || local[len(local)-1] == '.' {
		return false
	}
	for i := 0; i < len(local); i++ {
		if !isLocalChar(local[i]) {
			return false
		}
	}
	return true
}

// validDomain checks the part after "@". Labels may contain dots, so the
// top-level label is whatever follows the last dot.
func validDomain(domain string) bool {
	dot := strings.LastIndexByte(domain, '.')
	if dot <= 0 {
		return false
	}
	labels, tld := domain[:dot], domain[dot+1:]

	for i := 0; i < len(labels); i++ {
		if !isDomainChar(labels[i]) {
			return false
		}
	}

	if len(tld) < minTopLevelLen {
		return false
	}
	for i := 0; i < len(tld); i++ {
		if !isAlpha(tld[i]) {
			return false
		}
	}
	return true
}

func isAlpha(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

func isDomainChar(c byte) bool {
	return isAlpha(c) || isDigit(c) || c == '.' || c == '-'
}

func isLocalChar(c byte) bool {
	switch c {
	case '.', '_', '%', '+', '-':
		return true
	}
	return isAlpha(c) || isDigit(c)
}
