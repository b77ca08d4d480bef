package corpus

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// instance is a YAML document converted to JSON values. The source nodes
// are kept by location so violations can report line numbers.
type instance struct {
	value any
	nodes map[string]*yaml.Node
	keys  map[string]*yaml.Node
	// line is the fallback for locations without a node.
	line int
}

func newInstance(root *yaml.Node) *instance {
	in := &instance{
		nodes: make(map[string]*yaml.Node),
		keys:  make(map[string]*yaml.Node),
		line:  1,
	}
	root = resolve(root)
	if root == nil || isNull(root) {
		in.value = map[string]any{}
		return in
	}
	in.line = root.Line
	in.value = in.convert(root, nil)
	return in
}

func locKey(loc []string) string {
	return strings.Join(loc, "\x00")
}

func child(loc []string, token string) []string {
	return append(loc[:len(loc):len(loc)], token)
}

// node returns the value node at loc, or nil.
func (in *instance) node(loc []string) *yaml.Node {
	return in.nodes[locKey(loc)]
}

// lineOf returns the line of the nearest node at or above loc.
func (in *instance) lineOf(loc []string) int {
	for i := len(loc); i >= 0; i-- {
		if n := in.nodes[locKey(loc[:i])]; n != nil {
			return n.Line
		}
	}
	return in.line
}

// keyLine returns the line of the mapping key naming loc.
func (in *instance) keyLine(loc []string) int {
	if k := in.keys[locKey(loc)]; k != nil {
		return k.Line
	}
	return in.lineOf(loc)
}

func (in *instance) convert(n *yaml.Node, loc []string) any {
	n = resolve(n)
	if n == nil {
		return nil
	}
	in.nodes[locKey(loc)] = n

	switch n.Kind {
	case yaml.SequenceNode:
		items := make([]any, len(n.Content))
		for i, c := range n.Content {
			items[i] = in.convert(c, child(loc, strconv.Itoa(i)))
		}
		return items

	case yaml.MappingNode:
		pairs := mappingPairs(n)
		m := make(map[string]any, len(pairs))
		for _, p := range pairs {
			l := child(loc, p.key.Value)
			in.keys[locKey(l)] = p.key
			m[p.key.Value] = in.convert(p.value, l)
		}
		return m
	}
	return scalar(n)
}

func scalar(n *yaml.Node) any {
	switch n.ShortTag() {
	case "!!null":
		return nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err == nil {
			return b
		}
	case "!!int":
		return json.Number(intValue(n))
	case "!!float":
		var f float64
		if err := n.Decode(&f); err == nil && !math.IsInf(f, 0) && !math.IsNaN(f) {
			s := strconv.FormatFloat(f, 'g', -1, 64)
			if !strings.ContainsAny(s, ".eE") {
				s += ".0"
			}
			return json.Number(s)
		}
	}
	return n.Value
}

type pair struct {
	key, value *yaml.Node
}

// mappingPairs returns the entries of a mapping with merge keys expanded.
// Explicit keys win over merged ones and earlier merge sources win over
// later ones.
func mappingPairs(n *yaml.Node) []pair {
	var explicit, merged []pair
	for i := 0; i+1 < len(n.Content); i += 2 {
		key, val := n.Content[i], n.Content[i+1]
		if isMergeKey(key) {
			merged = append(merged, mergeSources(val)...)
			continue
		}
		explicit = append(explicit, pair{key: key, value: val})
	}
	if len(merged) == 0 {
		return explicit
	}

	seen := make(map[string]bool, len(explicit)+len(merged))
	for _, p := range explicit {
		seen[p.key.Value] = true
	}
	out := explicit
	for _, p := range merged {
		if seen[p.key.Value] {
			continue
		}
		seen[p.key.Value] = true
		out = append(out, p)
	}
	return out
}

func mergeSources(n *yaml.Node) []pair {
	n = resolve(n)
	if n == nil {
		return nil
	}
	switch n.Kind {
	case yaml.MappingNode:
		return mappingPairs(n)
	case yaml.SequenceNode:
		var out []pair
		for _, c := range n.Content {
			if c = resolve(c); c != nil && c.Kind == yaml.MappingNode {
				out = append(out, mappingPairs(c)...)
			}
		}
		return out
	}
	return nil
}

func isMergeKey(n *yaml.Node) bool {
	return n.Kind == yaml.ScalarNode && n.ShortTag() == "!!merge"
}

// intValue normalises YAML int spellings (0x1f, 0o17) to decimal.
func intValue(n *yaml.Node) string {
	var i int64
	if err := n.Decode(&i); err == nil {
		return strconv.FormatInt(i, 10)
	}
	var u uint64
	if err := n.Decode(&u); err == nil {
		return strconv.FormatUint(u, 10)
	}
	return n.Value
}

func resolve(n *yaml.Node) *yaml.Node {
	for n != nil && n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	return n
}

func isNull(n *yaml.Node) bool {
	return n != nil && n.Kind == yaml.ScalarNode && n.ShortTag() == "!!null"
}

func display(n *yaml.Node) string {
	if n == nil {
		return ""
	}
	switch n.Kind {
	case yaml.SequenceNode:
		return "[...]"
	case yaml.MappingNode:
		return "{...}"
	}
	return n.Value
}
