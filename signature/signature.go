// Package signature parses call patterns such as
// "assert.equal(actual, expected, [message])" into Matchers
// describing the callee and the declared arguments.
package signature

import (
	"fmt"
	"strings"

	"github.com/asaskevich/govalidator"
	"github.com/hashicorp/go-multierror"
)

type (
	// Kind distinguishes a bare function call from a method call.
	Kind uint8

	// Callee describes what a pattern calls.
	Callee struct {
		Kind   Kind
		Name   string // Identifier only
		Object string // MemberExpression only
		Member string // MemberExpression only
	}

	// Arg is a declared argument of a pattern.
	Arg struct {
		Name     string
		Optional bool
	}

	// Matcher is the parsed form of one call pattern.
	// It is immutable once parsed.
	Matcher struct {
		Pattern string
		Callee  Callee
		Args    []Arg
	}

	// Error reports a pattern that could not be parsed.
	Error struct {
		Pattern string
		Reason  string
	}
)

const (
	Identifier Kind = iota
	MemberExpression
)

const identifier = `^[A-Za-z_$][A-Za-z0-9_$]*$`


// Kind

func (k Kind) String() string {
	switch k {
	case Identifier: return "Identifier"
	case MemberExpression: return "MemberExpression"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}


// Callee

func (c Callee) String() string {
	if c.Kind == MemberExpression {
		return c.Object + "." + c.Member
	}
	return c.Name
}


// Matcher

// IsFunctionCall reports whether the pattern calls the assertion itself.
func (m Matcher) IsFunctionCall() bool {
	return m.Callee.Kind == Identifier
}

// IsMethodCall reports whether the pattern calls a member of the assertion.
func (m Matcher) IsMethodCall() bool {
	return m.Callee.Kind == MemberExpression
}

func (m Matcher) String() string {
	var sb strings.Builder
	sb.WriteString(m.Callee.String())
	sb.WriteByte('(')
	for i, arg := range m.Args {
		if i > 0 {
			sb.WriteString(", ")
		}
		if arg.Optional {
			sb.WriteString("[" + arg.Name + "]")
		} else {
			sb.WriteString(arg.Name)
		}
	}
	sb.WriteByte(')')
	return sb.String()
}


// Error

func (e *Error) Error() string {
	return fmt.Sprintf("invalid pattern %q: %s", e.Pattern, e.Reason)
}


// Parse parses a single call pattern.
func Parse(pattern string) (Matcher, error) {
	src  := strings.TrimSpace(pattern)
	open := strings.IndexByte(src, '(')
	if open < 0 || !strings.HasSuffix(src, ")") {
		return Matcher{}, &Error{pattern, "expected callee(args)"}
	}
	callee, err := parseCallee(strings.TrimSpace(src[:open]))
	if err != nil {
		return Matcher{}, &Error{pattern, err.Error()}
	}
	args, err := parseArgs(src[open+1:len(src)-1])
	if err != nil {
		return Matcher{}, &Error{pattern, err.Error()}
	}
	return Matcher{Pattern: pattern, Callee: callee, Args: args}, nil
}

// MustParse is like Parse but panics if the pattern is invalid.
func MustParse(pattern string) Matcher {
	m, err := Parse(pattern)
	if err != nil {
		panic(err)
	}
	return m
}

// ParseAll parses patterns in order.
// All invalid patterns are reported together.
func ParseAll(patterns []string) ([]Matcher, error) {
	var invalid error
	matchers := make([]Matcher, 0, len(patterns))
	for _, pattern := range patterns {
		if m, err := Parse(pattern); err != nil {
			invalid = multierror.Append(invalid, err)
		} else {
			matchers = append(matchers, m)
		}
	}
	if invalid != nil {
		return nil, invalid
	}
	return matchers, nil
}

func parseCallee(src string) (Callee, error) {
	if src == "" {
		return Callee{}, fmt.Errorf("missing callee")
	}
	parts := strings.Split(src, ".")
	for _, part := range parts {
		if !govalidator.Matches(part, identifier) {
			return Callee{}, fmt.Errorf("invalid callee %q", src)
		}
	}
	if len(parts) == 1 {
		return Callee{Kind: Identifier, Name: src}, nil
	}
	last := len(parts) - 1
	return Callee{
		Kind:   MemberExpression,
		Object: strings.Join(parts[:last], "."),
		Member: parts[last],
	}, nil
}

func parseArgs(src string) ([]Arg, error) {
	if strings.TrimSpace(src) == "" {
		return nil, nil
	}
	tokens := strings.Split(src, ",")
	args   := make([]Arg, 0, len(tokens))
	for _, token := range tokens {
		token = strings.TrimSpace(token)
		arg   := Arg{Name: token}
		if strings.HasPrefix(token, "[") {
			if !strings.HasSuffix(token, "]") {
				return nil, fmt.Errorf("unterminated optional argument %q", token)
			}
			arg.Name     = strings.TrimSpace(token[1:len(token)-1])
			arg.Optional = true
		}
		if !govalidator.Matches(arg.Name, identifier) {
			return nil, fmt.Errorf("invalid argument %q", token)
		}
		args = append(args, arg)
	}
	return args, nil
}
