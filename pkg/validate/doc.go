// Package validate provides strict, purely syntactic validation of IPv6
// address literals and email address literals.
//
// Both validators are total functions of their input: malformed input is
// reported as invalid, never as an error or a panic. They hold no state and
// are safe for concurrent use.
//
// # Usage
//
//	if validate.IPv6("2001:db8::8a2e:370:7334") {
//	    // ...
//	}
//
//	if validate.Email("user.name+tag@example.co.uk") {
//	    // ...
//	}
//
// When the kind of candidate is only known at runtime, use [Validate] or
// [Check]:
//
//	kind, err := validate.ParseKind("email")
//	res, err := validate.Validate(kind, candidate)
//
// [Check] takes a *string and distinguishes an absent candidate
// ([ErrInvalidArgument]) from an invalid one.
//
// # Scope
//
// No trimming is performed. IPv6 zone identifiers and embedded IPv4 notation
// are rejected. Email validation is ASCII-only and does not accept quoted
// local parts. No DNS lookups are made.
package validate
