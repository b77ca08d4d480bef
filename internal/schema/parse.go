package schema

import (
	"fmt"
	"math/big"
	"regexp"
	"strings"

	"github.com/k14s/starlark-go/syntax"
)

// SyntaxError describes an invalid validator expression.
type SyntaxError struct {
	Expr string
	// Offset is the byte offset in Expr where the problem was found.
	Offset int
	Msg    string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s at offset %d in %q", e.Msg, e.Offset, e.Expr)
}

// ParseRule parses a single validator expression such as "enum('A', 'B', required=False)".
// The expression is parsed as a call expression and never evaluated.
func ParseRule(expr string) (*Rule, error) {
	src := strings.TrimSpace(expr)
	p := &parser{src: src, lead: len(expr) - len(strings.TrimLeft(expr, " \t\r\n"))}

	if src == "" {
		return nil, p.errorAt(0, "empty expression")
	}
	if strings.ContainsAny(src, "\n\r") {
		return nil, p.errorAt(0, "expression must be on one line")
	}

	x, err := syntax.ParseExpr("schema", src, 0)
	if err != nil {
		if serr, ok := err.(syntax.Error); ok {
			return nil, p.errorf(serr.Pos, "%s", serr.Msg)
		}
		return nil, p.errorAt(0, err.Error())
	}
	return p.rule(x)
}

type parser struct {
	src string
	// lead is the whitespace trimmed from the front of the expression.
	lead int
}

func (p *parser) errorAt(offset int, msg string) error {
	return &SyntaxError{Expr: p.src, Offset: p.lead + offset, Msg: msg}
}

// errorf reports an error at a position of the single-line expression.
func (p *parser) errorf(pos syntax.Position, format string, args ...any) error {
	offset := 0
	if pos.Col > 0 {
		offset = runeOffset(p.src, int(pos.Col)-1)
	}
	return p.errorAt(offset, fmt.Sprintf(format, args...))
}

func runeOffset(s string, runes int) int {
	for i := range s {
		if runes == 0 {
			return i
		}
		runes--
	}
	return len(s)
}

func start(x syntax.Expr) syntax.Position {
	pos, _ := x.Span()
	return pos
}

// rule converts a call such as list(str(), min=1) into a Rule.
func (p *parser) rule(x syntax.Expr) (*Rule, error) {
	call, ok := x.(*syntax.CallExpr)
	if !ok {
		return nil, p.errorf(start(x), "expected a validator call such as str()")
	}
	fn, ok := call.Fn.(*syntax.Ident)
	if !ok {
		return nil, p.errorf(start(call.Fn), "validator name must be an identifier")
	}

	typ := Type(fn.Name)
	sig, ok := validators[typ]
	if !ok {
		return nil, p.errorf(fn.NamePos, "unknown validator %q (known: %s)", fn.Name, strings.Join(KnownTypes(), ", "))
	}

	rule := &Rule{Type: typ, Required: true}
	for _, arg := range call.Args {
		if err := p.argument(rule, sig, arg); err != nil {
			return nil, err
		}
	}

	if typ == TypeEnum && len(rule.Choices) == 0 {
		return nil, p.errorf(call.Rparen, "enum() needs at least one choice")
	}
	if typ == TypeRegex && len(rule.Patterns) == 0 {
		return nil, p.errorf(call.Rparen, "regex() needs at least one pattern")
	}
	if rule.Min != nil && rule.Max != nil && *rule.Min > *rule.Max {
		return nil, p.errorf(call.Rparen, "min is greater than max")
	}
	return rule, nil
}

func (p *parser) argument(rule *Rule, sig signature, arg syntax.Expr) error {
	switch a := arg.(type) {
	case *syntax.BinaryExpr:
		if a.Op == syntax.EQ {
			return p.keyword(rule, sig, a)
		}

	case *syntax.CallExpr:
		if sig.args != argRules {
			return p.errorf(start(a), "%s() does not take validator arguments", rule.Type)
		}
		item, err := p.rule(a)
		if err != nil {
			return err
		}
		rule.Items = append(rule.Items, item)
		return nil

	case *syntax.UnaryExpr:
		if a.Op == syntax.STAR || a.Op == syntax.STARSTAR {
			return p.errorf(a.OpPos, "%s arguments are not supported", a.Op)
		}
	}

	lit, err := p.literal(arg)
	if err != nil {
		return err
	}
	switch sig.args {
	case argLiterals:
		rule.Choices = append(rule.Choices, lit)
	case argPatterns:
		s, ok := lit.Value.(string)
		if !ok {
			return p.errorf(start(arg), "regex() patterns must be strings")
		}
		re, err := regexp.Compile(s)
		if err != nil {
			return p.errorf(start(arg), "invalid pattern: %v", err)
		}
		rule.Patterns = append(rule.Patterns, re)
	default:
		return p.errorf(start(arg), "%s() does not take positional arguments", rule.Type)
	}
	return nil
}

func (p *parser) keyword(rule *Rule, sig signature, kw *syntax.BinaryExpr) error {
	name := kw.X.(*syntax.Ident)
	lit, err := p.literal(kw.Y)
	if err != nil {
		return err
	}

	switch name.Name {
	case "required":
		b, ok := lit.Value.(bool)
		if !ok {
			return p.errorf(start(kw.Y), "required must be True or False")
		}
		rule.Required = b
	case "min", "max":
		if !sig.bounds {
			return p.errorf(name.NamePos, "%s() does not accept %s=", rule.Type, name.Name)
		}
		f, ok := toFloat(lit.Value)
		if !ok {
			return p.errorf(start(kw.Y), "%s must be a number", name.Name)
		}
		if name.Name == "min" {
			rule.Min = &f
		} else {
			rule.Max = &f
		}
	default:
		return p.errorf(name.NamePos, "unknown keyword %q", name.Name)
	}
	return nil
}

// literal converts a constant argument. Signed numbers are accepted.
func (p *parser) literal(x syntax.Expr) (Literal, error) {
	switch e := x.(type) {
	case *syntax.Literal:
		switch v := e.Value.(type) {
		case string:
			return Literal{Value: v}, nil
		case int64:
			return Literal{Value: int(v)}, nil
		case float64:
			return Literal{Value: v}, nil
		case *big.Int:
			return Literal{}, p.errorf(e.TokenPos, "integer %s is out of range", e.Raw)
		}

	case *syntax.Ident:
		switch e.Name {
		case "True":
			return Literal{Value: true}, nil
		case "False":
			return Literal{Value: false}, nil
		case "None":
			return Literal{Value: nil}, nil
		}
		return Literal{}, p.errorf(e.NamePos, "expected a literal, found %q", e.Name)

	case *syntax.UnaryExpr:
		if e.Op == syntax.MINUS || e.Op == syntax.PLUS {
			lit, err := p.literal(e.X)
			if err != nil {
				return lit, err
			}
			if e.Op == syntax.PLUS {
				return lit, nil
			}
			switch v := lit.Value.(type) {
			case int:
				return Literal{Value: -v}, nil
			case float64:
				return Literal{Value: -v}, nil
			}
		}
	}
	return Literal{}, p.errorf(start(x), "expected a literal")
}
