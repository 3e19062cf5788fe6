package validate

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidArgument is returned by Check when no candidate is supplied.
	// An absent candidate is a caller error, not a validation outcome.
	ErrInvalidArgument = errors.New("addrcheck: invalid argument: candidate is absent")

	// ErrUnknownKind is returned when a validator kind is not recognized.
	ErrUnknownKind = errors.New("addrcheck: unknown validator kind")
)

// Result is the outcome of validating a single candidate.
type Result int

const (
	// Invalid means the candidate does not conform to the grammar.
	Invalid Result = iota
	// Valid means the candidate conforms to the grammar.
	Valid
)

// String returns "VALID" or "INVALID".
func (r Result) String() string {
	if r == Valid {
		return "VALID"
	}
	return "INVALID"
}

// Bool reports whether r is Valid.
func (r Result) Bool() bool { return r == Valid }

// ResultOf converts a boolean verdict to a Result.
func ResultOf(ok bool) Result {
	if ok {
		return Valid
	}
	return Invalid
}

// Kind names a validator.
type Kind string

const (
	// KindIPv6 selects IPv6.
	KindIPv6 Kind = "ipv6"
	// KindEmail selects Email.
	KindEmail Kind = "email"
)

// Kinds lists every supported validator kind.
func Kinds() []Kind {
	return []Kind{KindIPv6, KindEmail}
}

// Label returns a human-readable name for the kind, as used in messages.
func (k Kind) Label() string {
	switch k {
	case KindIPv6:
		return "IPv6 address"
	case KindEmail:
		return "email address"
	}
	return string(k)
}

// ParseKind parses a validator kind, case-insensitively.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	if _, err := Func(k); err != nil {
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
	}
	return k, nil
}

// Func returns the validator function for kind.
func Func(kind Kind) (func(string) bool, error) {
	switch kind {
	case KindIPv6:
		return IPv6, nil
	case KindEmail:
		return Email, nil
	}
	return nil, ErrUnknownKind
}

// Validate validates candidate with the validator named by kind.
// Malformed candidates yield Invalid with a nil error; only an unknown kind
// produces an error.
func Validate(kind Kind, candidate string) (Result, error) {
	fn, err := Func(kind)
	if err != nil {
		return Invalid, fmt.Errorf("%w: %q", err, kind)
	}
	return ResultOf(fn(candidate)), nil
}

// Check is like Validate but accepts a possibly absent candidate. A nil
// candidate returns ErrInvalidArgument rather than Invalid.
func Check(kind Kind, candidate *string) (Result, error) {
	if candidate == nil {
		return Invalid, ErrInvalidArgument
	}
	return Validate(kind, *candidate)
}
