// Package schema loads data set description schemas.
//
// A schema file is a YAML mapping from field name to a validator
// expression, in the yamale dialect:
//
//	name: str()
//	category: enum('A', 'B', required=False)
//	sources: list(str(), min=1)
//
// Field order in the file is preserved.
package schema

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Type is the validator name of a field rule, as written in the schema.
type Type string

const (
	TypeString    Type = "str"
	TypeInt       Type = "int"
	TypeNumber    Type = "num"
	TypeBool      Type = "bool"
	TypeEnum      Type = "enum"
	TypeList      Type = "list"
	TypeMap       Type = "map"
	TypeAny       Type = "any"
	TypeRegex     Type = "regex"
	TypeDay       Type = "day"
	TypeTimestamp Type = "timestamp"
	TypeNull      Type = "null"
)

// signature describes which arguments a validator accepts.
type signature struct {
	// args is the kind of positional arguments allowed.
	args argKind
	// bounds reports whether min= and max= are accepted.
	bounds bool
}

type argKind int

const (
	argNone argKind = iota
	argLiterals
	argRules
	argPatterns
)

var validators = map[Type]signature{
	TypeString:    {args: argNone, bounds: true},
	TypeInt:       {args: argNone, bounds: true},
	TypeNumber:    {args: argNone, bounds: true},
	TypeBool:      {args: argNone},
	TypeEnum:      {args: argLiterals},
	TypeList:      {args: argRules, bounds: true},
	TypeMap:       {args: argRules, bounds: true},
	TypeAny:       {args: argRules},
	TypeRegex:     {args: argPatterns},
	TypeDay:       {args: argNone},
	TypeTimestamp: {args: argNone},
	TypeNull:      {args: argNone},
}

// KnownTypes returns the validator names the schema dialect understands.
func KnownTypes() []string {
	return []string{
		string(TypeString), string(TypeInt), string(TypeNumber), string(TypeBool),
		string(TypeEnum), string(TypeList), string(TypeMap), string(TypeAny),
		string(TypeRegex), string(TypeDay), string(TypeTimestamp), string(TypeNull),
	}
}

// Rule is the constraint for one schema field or nested value.
type Rule struct {
	Type Type

	// Required is true unless the expression sets required=False.
	Required bool

	// Choices holds the allowed values of an enum, in declaration order.
	Choices []Literal

	// Items are the alternatives a list item, map value or any() value must match.
	Items []*Rule

	// Patterns are the expressions a regex() value must match one of.
	Patterns []*regexp.Regexp

	// Min and Max bound string length, numeric value or collection size.
	Min *float64
	Max *float64
}

// Name returns the validator name, e.g. "str" or "enum".
func (r *Rule) Name() string {
	return string(r.Type)
}

// IsEnum reports whether the rule restricts values to a closed set of choices.
func (r *Rule) IsEnum() bool {
	return r.Type == TypeEnum
}

// ChoicesString renders the enum choices as a tuple, e.g. ('A', 'B').
// A single choice keeps the trailing comma: ('A',).
func (r *Rule) ChoicesString() string {
	parts := make([]string, len(r.Choices))
	for i, c := range r.Choices {
		parts[i] = c.String()
	}
	if len(parts) == 1 {
		return "(" + parts[0] + ",)"
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// String renders the rule back into schema expression syntax.
func (r *Rule) String() string {
	var args []string
	for _, c := range r.Choices {
		args = append(args, c.String())
	}
	for _, item := range r.Items {
		args = append(args, item.String())
	}
	for _, p := range r.Patterns {
		args = append(args, Literal{Value: p.String()}.String())
	}
	if r.Min != nil {
		args = append(args, "min="+formatNumber(*r.Min))
	}
	if r.Max != nil {
		args = append(args, "max="+formatNumber(*r.Max))
	}
	if !r.Required {
		args = append(args, "required=False")
	}
	return fmt.Sprintf("%s(%s)", r.Type, strings.Join(args, ", "))
}

// Literal is a constant in a schema expression: a string, int, float64, bool or nil.
type Literal struct {
	Value any
}

// String renders the literal the way it is written in schema expressions.
func (l Literal) String() string {
	switch v := l.Value.(type) {
	case nil:
		return "None"
	case bool:
		if v {
			return "True"
		}
		return "False"
	case int:
		return strconv.Itoa(v)
	case float64:
		return formatNumber(v)
	case string:
		return quote(v)
	default:
		return fmt.Sprint(v)
	}
}

// Equal reports whether the literal equals a decoded YAML value.
// Strings never equal numbers; ints and floats compare numerically.
func (l Literal) Equal(value any) bool {
	switch v := l.Value.(type) {
	case nil:
		return value == nil
	case bool:
		b, ok := value.(bool)
		return ok && b == v
	case string:
		s, ok := value.(string)
		return ok && s == v
	case int:
		f, ok := toFloat(value)
		return ok && f == float64(v)
	case float64:
		f, ok := toFloat(value)
		return ok && f == v
	}
	return false
}

func toFloat(value any) (float64, bool) {
	switch n := value.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

func formatNumber(f float64) string {
	if f == float64(int64(f)) {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// quote renders a string the way Python's repr does: single quotes unless
// the value contains a single quote and no double quote.
func quote(s string) string {
	q := '\''
	if strings.ContainsRune(s, '\'') && !strings.ContainsRune(s, '"') {
		q = '"'
	}

	var b strings.Builder
	b.WriteRune(q)
	for _, r := range s {
		switch r {
		case q:
			b.WriteRune('\\')
			b.WriteRune(r)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteRune(q)
	return b.String()
}
