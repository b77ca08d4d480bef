package corpus

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/santhosh-tekuri/jsonschema/v6/kind"
	"gopkg.in/yaml.v3"

	oerrors "github.com/dataroadmap/dsdcheck/internal/errors"
	"github.com/dataroadmap/dsdcheck/internal/schema"
)

// Violation is one broken rule inside a document.
type Violation struct {
	// Field is the dotted path of the value, e.g. "sources.2".
	Field   string
	Line    int
	Kind    oerrors.ViolationKind
	Message string
}

// ValidateDocument checks one decoded YAML document against the schema.
// A nil root is treated as an empty mapping. Merge keys are expanded
// before checking. Violations are ordered by schema field, then by
// unexpected keys in document order.
func (v *Validator) ValidateDocument(root *yaml.Node) []Violation {
	if r := resolve(root); r != nil && !isNull(r) && r.Kind != yaml.MappingNode {
		return []Violation{{
			Line:    r.Line,
			Kind:    oerrors.UnreadableDocument,
			Message: "document root must be a mapping",
		}}
	}

	in := newInstance(root)
	err := v.compiled.schema.Validate(in.value)
	if err == nil {
		return nil
	}

	var verr *jsonschema.ValidationError
	if !errors.As(err, &verr) {
		return []Violation{{Line: in.line, Kind: oerrors.UnreadableDocument, Message: err.Error()}}
	}

	c := &collector{v: v, in: in, seen: make(map[string]bool)}
	c.walk(verr)
	return c.sorted()
}

// collector turns a JSON Schema error tree into violations.
type collector struct {
	v    *Validator
	in   *instance
	out  []ranked
	seen map[string]bool
}

type ranked struct {
	Violation
	rank int
}

func (c *collector) walk(e *jsonschema.ValidationError) {
	switch k := e.ErrorKind.(type) {
	case *kind.Required:
		for _, name := range k.Missing {
			loc := child(e.InstanceLocation, name)
			c.add(loc, Violation{
				Line:    c.in.lineOf(e.InstanceLocation),
				Kind:    oerrors.MissingRequiredField,
				Message: "Required field missing",
			})
		}
		return

	case *kind.AdditionalProperties:
		if len(e.Causes) == 0 {
			for _, name := range k.Properties {
				loc := child(e.InstanceLocation, name)
				c.add(loc, Violation{
					Line:    c.in.keyLine(loc),
					Kind:    oerrors.UnexpectedField,
					Message: "Unexpected element",
				})
			}
			return
		}

	case *kind.AnyOf:
		c.leaf(e)
		return
	}

	if len(e.Causes) == 0 {
		c.leaf(e)
		return
	}
	for _, cause := range e.Causes {
		c.walk(cause)
	}
}

// leaf reports one violation per value; later errors for the same value
// are dropped.
func (c *collector) leaf(e *jsonschema.ValidationError) {
	loc := e.InstanceLocation
	if c.seen[locKey(loc)] {
		return
	}

	n := c.in.node(loc)
	ref := c.v.compiled.lookup(e.SchemaURL)
	viol := Violation{Line: c.in.lineOf(loc)}

	if n == nil || isNull(n) {
		viol.Kind = oerrors.MissingRequiredField
		viol.Message = "Required field missing"
		c.add(loc, viol)
		return
	}

	path := strings.Join(loc, ".")
	typeName := "valid value"
	if ref.rule != nil {
		typeName = string(ref.rule.Type)
	}

	switch e.ErrorKind.(type) {
	case *kind.Type, *kind.Format:
		viol.Kind = oerrors.TypeMismatch
		viol.Message = fmt.Sprintf("'%s' is not a %s.", display(n), typeName)

	case *kind.Enum:
		viol.Kind = oerrors.InvalidEnumValue
		choices := ""
		if ref.rule != nil {
			choices = ref.rule.ChoicesString()
		}
		viol.Message = fmt.Sprintf("'%s' not in %s", display(n), choices)

	case *kind.Pattern:
		viol.Kind = oerrors.ConstraintViolation
		viol.Message = fmt.Sprintf("'%s' is not a regex match.", n.Value)

	case *kind.AnyOf:
		if ref.rule != nil && ref.rule.Type == schema.TypeRegex {
			viol.Kind = oerrors.ConstraintViolation
			viol.Message = fmt.Sprintf("'%s' is not a regex match.", n.Value)
			break
		}
		names := make([]string, len(ref.alts))
		for i, r := range ref.alts {
			names[i] = r.String()
		}
		viol.Kind = oerrors.TypeMismatch
		viol.Message = fmt.Sprintf("'%s' is not a valid value for any of %s", display(n), strings.Join(names, ", "))

	case *kind.MinLength:
		viol.Kind = oerrors.ConstraintViolation
		viol.Message = boundMessage("Length of '"+n.Value+"'", "less", ref.rule, true)
	case *kind.MaxLength:
		viol.Kind = oerrors.ConstraintViolation
		viol.Message = boundMessage("Length of '"+n.Value+"'", "greater", ref.rule, false)
	case *kind.MinItems, *kind.MinProperties:
		viol.Kind = oerrors.ConstraintViolation
		viol.Message = boundMessage("Length of "+path, "less", ref.rule, true)
	case *kind.MaxItems, *kind.MaxProperties:
		viol.Kind = oerrors.ConstraintViolation
		viol.Message = boundMessage("Length of "+path, "greater", ref.rule, false)
	case *kind.Minimum:
		viol.Kind = oerrors.ConstraintViolation
		viol.Message = boundMessage(n.Value, "less", ref.rule, true)
	case *kind.Maximum:
		viol.Kind = oerrors.ConstraintViolation
		viol.Message = boundMessage(n.Value, "greater", ref.rule, false)

	default:
		viol.Kind = oerrors.ConstraintViolation
		viol.Message = e.Error()
	}
	c.add(loc, viol)
}

func (c *collector) add(loc []string, viol Violation) {
	c.seen[locKey(loc)] = true
	viol.Field = strings.Join(loc, ".")

	rank := c.v.schema.Len()
	if len(loc) > 0 && (viol.Kind != oerrors.UnexpectedField || len(loc) > 1) {
		if i, ok := c.v.order[loc[0]]; ok {
			rank = i
		}
	}
	c.out = append(c.out, ranked{Violation: viol, rank: rank})
}

func (c *collector) sorted() []Violation {
	sort.SliceStable(c.out, func(i, j int) bool {
		if c.out[i].rank != c.out[j].rank {
			return c.out[i].rank < c.out[j].rank
		}
		return c.out[i].Line < c.out[j].Line
	})
	out := make([]Violation, len(c.out))
	for i, r := range c.out {
		out[i] = r.Violation
	}
	return out
}

func boundMessage(subject, cmp string, rule *schema.Rule, lower bool) string {
	bound := ""
	if rule != nil {
		if lower && rule.Min != nil {
			bound = strconv.FormatFloat(*rule.Min, 'g', -1, 64)
		}
		if !lower && rule.Max != nil {
			bound = strconv.FormatFloat(*rule.Max, 'g', -1, 64)
		}
	}
	return fmt.Sprintf("%s is %s than %s", subject, cmp, bound)
}
