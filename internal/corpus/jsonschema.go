package corpus

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/dataroadmap/dsdcheck/internal/schema"
)

const schemaURL = "mem:///dsdcheck/schema.json"

const (
	formatDay       = "dsd-day"
	formatTimestamp = "dsd-timestamp"
	formatInteger   = "dsd-integer"
)

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02",
}

// Format checks only apply to strings and numbers; type mismatches are
// reported by the type keyword.
var formats = []*jsonschema.Format{
	{
		Name: formatDay,
		Validate: func(v any) error {
			s, ok := v.(string)
			if !ok {
				return nil
			}
			_, err := time.Parse("2006-01-02", s)
			return err
		},
	},
	{
		Name: formatTimestamp,
		Validate: func(v any) error {
			s, ok := v.(string)
			if !ok || parsesAsTimestamp(s) {
				return nil
			}
			return fmt.Errorf("%q is not a timestamp", s)
		},
	},
	{
		// YAML floats such as 1.0 are numerically whole but are not ints.
		Name: formatInteger,
		Validate: func(v any) error {
			n, ok := v.(json.Number)
			if ok && strings.ContainsAny(string(n), ".eE") {
				return errors.New("not an integer literal")
			}
			return nil
		},
	},
}

// ruleRef ties a location in the compiled JSON Schema back to the rule it
// was built from.
type ruleRef struct {
	rule *schema.Rule
	// alts are the alternatives behind an anyOf.
	alts []*schema.Rule
}

// compiled is a schema translated to JSON Schema.
type compiled struct {
	schema *jsonschema.Schema
	// refs is keyed by JSON pointer into the schema document.
	refs map[string]ruleRef
}

func compile(s *schema.Schema) (*compiled, error) {
	b := &builder{refs: make(map[string]ruleRef)}
	doc := b.document(s)

	c := jsonschema.NewCompiler()
	c.AssertFormat()
	for _, f := range formats {
		c.RegisterFormat(f)
	}
	if err := c.AddResource(schemaURL, doc); err != nil {
		return nil, fmt.Errorf("adding schema resource: %w", err)
	}
	sch, err := c.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("compiling schema: %w", err)
	}
	return &compiled{schema: sch, refs: b.refs}, nil
}

// lookup returns the rule behind the schema location of a validation error.
func (c *compiled) lookup(location string) ruleRef {
	_, frag, _ := strings.Cut(location, "#")
	if p, err := url.PathUnescape(frag); err == nil {
		frag = p
	}
	for {
		if ref, ok := c.refs[frag]; ok {
			return ref
		}
		i := strings.LastIndexByte(frag, '/')
		if i < 0 {
			return ruleRef{}
		}
		frag = frag[:i]
	}
}

type builder struct {
	refs map[string]ruleRef
}

var pointerEscaper = strings.NewReplacer("~", "~0", "/", "~1")

func (b *builder) document(s *schema.Schema) map[string]any {
	props := make(map[string]any, s.Len())
	var required []any
	for _, f := range s.Fields() {
		props[f.Name] = b.rule(f.Rule, "/properties/"+pointerEscaper.Replace(f.Name))
		if f.Rule.Required {
			required = append(required, f.Name)
		}
	}

	doc := map[string]any{
		"type":                 "object",
		"properties":           props,
		"additionalProperties": false,
	}
	if len(required) > 0 {
		doc["required"] = required
	}
	return doc
}

func (b *builder) rule(r *schema.Rule, ptr string) map[string]any {
	return b.fragment(r, ptr, !r.Required)
}

// fragment builds the JSON Schema for r at ptr. A nullable fragment also
// accepts null.
func (b *builder) fragment(r *schema.Rule, ptr string, nullable bool) map[string]any {
	b.refs[ptr] = ruleRef{rule: r}
	frag := make(map[string]any)
	typed := func(t string) {
		if nullable {
			frag["type"] = []any{t, "null"}
			return
		}
		frag["type"] = t
	}

	switch r.Type {
	case schema.TypeString:
		typed("string")
		lengthBounds(frag, r, "minLength", "maxLength")

	case schema.TypeInt:
		typed("integer")
		frag["format"] = formatInteger
		valueBounds(frag, r)

	case schema.TypeNumber:
		typed("number")
		valueBounds(frag, r)

	case schema.TypeBool:
		typed("boolean")

	case schema.TypeNull:
		frag["type"] = "null"

	case schema.TypeDay:
		typed("string")
		frag["format"] = formatDay

	case schema.TypeTimestamp:
		typed("string")
		frag["format"] = formatTimestamp

	case schema.TypeEnum:
		choices := make([]any, 0, len(r.Choices)+1)
		for _, c := range r.Choices {
			choices = append(choices, jsonValue(c.Value))
		}
		if nullable {
			choices = append(choices, nil)
		}
		frag["enum"] = choices

	case schema.TypeRegex:
		typed("string")
		if len(r.Patterns) == 1 {
			frag["pattern"] = r.Patterns[0].String()
			break
		}
		alts := make([]any, len(r.Patterns))
		for i, p := range r.Patterns {
			alts[i] = map[string]any{"pattern": p.String()}
		}
		frag["anyOf"] = alts

	case schema.TypeList:
		typed("array")
		lengthBounds(frag, r, "minItems", "maxItems")
		if items := b.items(r.Items, ptr+"/items"); items != nil {
			frag["items"] = items
		}

	case schema.TypeMap:
		typed("object")
		lengthBounds(frag, r, "minProperties", "maxProperties")
		if items := b.items(r.Items, ptr+"/additionalProperties"); items != nil {
			frag["additionalProperties"] = items
		}

	case schema.TypeAny:
		switch len(r.Items) {
		case 0:
		case 1:
			return b.fragment(r.Items[0], ptr, nullable)
		default:
			alts := make([]any, 0, len(r.Items)+1)
			for i, item := range r.Items {
				alts = append(alts, b.rule(item, fmt.Sprintf("%s/anyOf/%d", ptr, i)))
			}
			if nullable {
				alts = append(alts, map[string]any{"type": "null"})
			}
			frag["anyOf"] = alts
			b.refs[ptr] = ruleRef{rule: r, alts: r.Items}
		}
	}
	return frag
}

// items builds the schema a list item or map value must match.
func (b *builder) items(rules []*schema.Rule, ptr string) map[string]any {
	switch len(rules) {
	case 0:
		return nil
	case 1:
		return b.rule(rules[0], ptr)
	}

	alts := make([]any, len(rules))
	for i, r := range rules {
		alts[i] = b.rule(r, fmt.Sprintf("%s/anyOf/%d", ptr, i))
	}
	b.refs[ptr] = ruleRef{alts: rules}
	return map[string]any{"anyOf": alts}
}

func lengthBounds(frag map[string]any, r *schema.Rule, minKey, maxKey string) {
	if r.Min != nil {
		frag[minKey] = json.Number(strconv.FormatFloat(math.Max(0, math.Ceil(*r.Min)), 'f', -1, 64))
	}
	if r.Max != nil {
		frag[maxKey] = json.Number(strconv.FormatFloat(math.Max(0, math.Floor(*r.Max)), 'f', -1, 64))
	}
}

func valueBounds(frag map[string]any, r *schema.Rule) {
	if r.Min != nil {
		frag["minimum"] = json.Number(strconv.FormatFloat(*r.Min, 'g', -1, 64))
	}
	if r.Max != nil {
		frag["maximum"] = json.Number(strconv.FormatFloat(*r.Max, 'g', -1, 64))
	}
}

// jsonValue converts a schema literal to its JSON form.
func jsonValue(v any) any {
	switch n := v.(type) {
	case int:
		return json.Number(strconv.Itoa(n))
	case float64:
		return json.Number(strconv.FormatFloat(n, 'g', -1, 64))
	}
	return v
}

func parsesAsTimestamp(s string) bool {
	for _, layout := range timestampLayouts {
		if _, err := time.Parse(layout, s); err == nil {
			return true
		}
	}
	return false
}
