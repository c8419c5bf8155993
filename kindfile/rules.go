package kindfile

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	strukt "github.com/reoring/strukt"
	"github.com/reoring/strukt/rule"
)

// ParseRule turns a rule expression into a validator. Expressions are a
// name, optionally with a parenthesized argument: "non-empty",
// "min-length(3)", "in(red,green,blue)", "each(non-empty)",
// "and(min(1),max(9))". Options.Validators factories are consulted first.
func ParseRule(s string, opts Options) (strukt.Validator, error) {
	name, arg, hasArg, err := splitRule(strings.TrimSpace(s))
	if err != nil {
		return nil, err
	}
	if f, ok := opts.Validators[name]; ok {
		return f(arg)
	}
	switch name {
	case "non-empty":
		return rule.NonEmpty(), nil
	case "min-length":
		n, err := strconv.Atoi(strings.TrimSpace(arg))
		if err != nil {
			return nil, fmt.Errorf("kindfile: min-length wants an integer, got %q", arg)
		}
		return rule.MinLength(n), nil
	case "max-length":
		n, err := strconv.Atoi(strings.TrimSpace(arg))
		if err != nil {
			return nil, fmt.Errorf("kindfile: max-length wants an integer, got %q", arg)
		}
		return rule.MaxLength(n), nil
	case "match":
		if _, err := regexp.Compile(arg); err != nil {
			return nil, fmt.Errorf("kindfile: match pattern: %w", err)
		}
		return rule.Match(arg), nil
	case "in":
		parts := splitArgs(arg)
		if len(parts) == 0 {
			return nil, fmt.Errorf("kindfile: in wants at least one value")
		}
		allowed := make([]any, len(parts))
		for i, p := range parts {
			allowed[i] = coerceLiteral(p)
		}
		return rule.In(allowed...), nil
	case "range":
		parts := splitArgs(arg)
		if len(parts) != 2 {
			return nil, fmt.Errorf("kindfile: range wants two numbers, got %q", arg)
		}
		lo, err1 := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
		hi, err2 := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
		if err1 != nil || err2 != nil {
			return nil, fmt.Errorf("kindfile: range wants two numbers, got %q", arg)
		}
		return rule.Range(lo, hi), nil
	case "min":
		f, err := strconv.ParseFloat(strings.TrimSpace(arg), 64)
		if err != nil {
			return nil, fmt.Errorf("kindfile: min wants a number, got %q", arg)
		}
		return rule.Min(f), nil
	case "max":
		f, err := strconv.ParseFloat(strings.TrimSpace(arg), 64)
		if err != nil {
			return nil, fmt.Errorf("kindfile: max wants a number, got %q", arg)
		}
		return rule.Max(f), nil
	case "each":
		inner, err := ParseRule(arg, opts)
		if err != nil {
			return nil, err
		}
		return rule.Each(inner), nil
	case "and", "or":
		parts := splitArgs(arg)
		if len(parts) == 0 {
			return nil, fmt.Errorf("kindfile: %s wants nested rules", name)
		}
		inner := make([]strukt.Validator, len(parts))
		for i, p := range parts {
			v, err := ParseRule(p, opts)
			if err != nil {
				return nil, err
			}
			inner[i] = v
		}
		if name == "and" {
			return rule.And(inner...), nil
		}
		return rule.Or(inner...), nil
	case "":
		return nil, fmt.Errorf("kindfile: empty rule")
	default:
		if hasArg {
			return nil, fmt.Errorf("kindfile: unknown rule %q", name)
		}
		return nil, fmt.Errorf("kindfile: unknown rule %q", s)
	}
}

// splitRule separates "name(arg)" checking the parentheses balance; a bare
// name returns hasArg=false.
func splitRule(s string) (name, arg string, hasArg bool, err error) {
	i := strings.IndexByte(s, '(')
	if i < 0 {
		if strings.ContainsRune(s, ')') {
			return "", "", false, fmt.Errorf("kindfile: unbalanced parentheses in rule %q", s)
		}
		return s, "", false, nil
	}
	depth := 0
	for j, r := range s {
		switch r {
		case '(':
			depth++
		case ')':
			depth--
			if depth < 0 {
				return "", "", false, fmt.Errorf("kindfile: unbalanced parentheses in rule %q", s)
			}
			if depth == 0 && j != len(s)-1 {
				return "", "", false, fmt.Errorf("kindfile: trailing text after rule %q", s)
			}
		}
	}
	if depth != 0 {
		return "", "", false, fmt.Errorf("kindfile: unbalanced parentheses in rule %q", s)
	}
	return s[:i], s[i+1 : len(s)-1], true, nil
}

// splitArgs splits on commas outside nested parentheses.
func splitArgs(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	var parts []string
	depth, start := 0, 0
	for i, r := range s {
		switch r {
		case '(':
			depth++
		case ')':
			depth--
		case ',':
			if depth == 0 {
				parts = append(parts, strings.TrimSpace(s[start:i]))
				start = i + 1
			}
		}
	}
	parts = append(parts, strings.TrimSpace(s[start:]))
	return parts
}

// coerceLiteral reads int, float and bool literals; everything else stays a
// string.
func coerceLiteral(s string) any {
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	if b, err := strconv.ParseBool(s); err == nil {
		return b
	}
	return s
}
