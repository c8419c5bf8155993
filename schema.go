package strukt

import "sort"

// Node is one position in a kind's structure tree. Implementations are
// TypedNode (terminal of one Type), FixedNode (declared field set) and
// WildcardNode (homogeneous mapping keyed by a type).
type Node interface{ isNode() }

// TypedNode declares a terminal of a single Type.
type TypedNode struct{ Type Type }

func (*TypedNode) isNode() {}

// Typed returns a terminal node of type t.
func Typed(t Type) Node { return &TypedNode{Type: t} }

// FixedNode declares an exact field set; document keys outside it are
// unknown.
type FixedNode struct {
	children map[string]Node
	sorted   []string
}

func (*FixedNode) isNode() {}

// Fixed builds a field-set node from a name→child mapping. The mapping is
// copied; iteration everywhere uses the sorted key order.
func Fixed(children map[string]Node) *FixedNode {
	n := &FixedNode{children: make(map[string]Node, len(children)), sorted: make([]string, 0, len(children))}
	for k, c := range children {
		n.children[k] = c
		n.sorted = append(n.sorted, k)
	}
	sort.Strings(n.sorted)
	return n
}

// Keys returns the declared field names in sorted order.
func (n *FixedNode) Keys() []string { return append([]string(nil), n.sorted...) }

// Child returns the node declared under name.
func (n *FixedNode) Child(name string) (Node, bool) {
	c, ok := n.children[name]
	return c, ok
}

// WildcardNode declares a homogeneous mapping: any number of keys, each key
// an instance of KeyType, each value conforming to Elem.
type WildcardNode struct {
	KeyType Type
	Elem    Node
}

func (*WildcardNode) isNode() {}

// Wildcard builds a homogeneous mapping node.
func Wildcard(keyType Type, elem Node) *WildcardNode {
	return &WildcardNode{KeyType: keyType, Elem: elem}
}

// CheckSchema verifies a structure tree is well formed: no nil nodes, every
// declared type valid, wildcard key types key-capable. NewKind calls it;
// it is exported for callers assembling trees by hand.
func CheckSchema(root Node) error {
	if vs := checkSchema(root, ""); len(vs) > 0 {
		return vs
	}
	return nil
}

func checkSchema(node Node, at string) Violations {
	var vs Violations
	switch n := node.(type) {
	case nil:
		vs = append(vs, nilNodeViolation(at))
	case *TypedNode:
		if n == nil {
			vs = append(vs, nilNodeViolation(at))
			break
		}
		if !n.Type.Valid() {
			vs = append(vs, unauthorizedType(at, n.Type.name))
			break
		}
		if n.Type.node != nil {
			vs = append(vs, checkSchema(n.Type.node, at)...)
		}
	case *FixedNode:
		if n == nil {
			vs = append(vs, nilNodeViolation(at))
			break
		}
		for _, k := range n.sorted {
			if k == "" {
				v := violationAt(at, CodeMalformedPath, map[string]string{"reason": "empty field name"})
				vs = append(vs, v)
				continue
			}
			vs = append(vs, checkSchema(n.children[k], joinPath(at, k))...)
		}
	case *WildcardNode:
		if n == nil {
			vs = append(vs, nilNodeViolation(at))
			break
		}
		mark := joinPath(at, wildcardMark+n.KeyType.name)
		if !n.KeyType.Valid() || !n.KeyType.keyCapable() {
			vs = append(vs, unauthorizedType(mark, n.KeyType.name))
		}
		vs = append(vs, checkSchema(n.Elem, mark)...)
	default:
		vs = append(vs, nilNodeViolation(at))
	}
	return vs
}

func nilNodeViolation(at string) Violation {
	v := violationAt(at, CodeUnauthorizedType, nil)
	v.Hint = "nil or unknown node"
	return v
}

func unauthorizedType(at, name string) Violation {
	return violationAt(at, CodeUnauthorizedType, map[string]string{"type": name})
}

// resolve walks a parsed descriptor path against the tree and returns the
// node it lands on. Literal segments must name declared fields; wildcard
// segments must name the wildcard's key type exactly. Structure-like
// terminals are entered transparently.
func resolve(root Node, p Path) (Node, Violations) {
	cur := root
	for i, seg := range p.segs {
		if tn, ok := cur.(*TypedNode); ok && tn.Type.node != nil {
			cur = tn.Type.node
		}
		prefix := renderTail("", p.segs[:i])
		switch n := cur.(type) {
		case *FixedNode:
			if seg.Wildcard {
				v := violationAt(p.String(), CodeUnknownKey, nil)
				v.Hint = "wildcard segment " + seg.String() + " where fields are declared under " + quoteOrRoot(prefix)
				return nil, Violations{v}
			}
			child, ok := n.Child(seg.Name)
			if !ok {
				v := violationAt(p.String(), CodeUnknownKey, nil)
				v.Hint = "no field " + quote(seg.Name) + " under " + quoteOrRoot(prefix)
				if s := nearestKey(seg.Name, n.sorted); s != "" {
					v.Hint += "; did you mean " + quote(s) + "?"
				}
				return nil, Violations{v}
			}
			cur = child
		case *WildcardNode:
			if !seg.Wildcard {
				v := violationAt(p.String(), CodeUnknownKey, nil)
				v.Hint = "literal segment " + quote(seg.Name) + " where wildcard $" + n.KeyType.name + " is declared under " + quoteOrRoot(prefix)
				return nil, Violations{v}
			}
			if seg.Name != n.KeyType.name {
				v := violationAt(p.String(), CodeUnauthorizedType, map[string]string{"type": seg.Name})
				v.Hint = "wildcard under " + quoteOrRoot(prefix) + " is keyed by " + n.KeyType.name
				return nil, Violations{v}
			}
			cur = n.Elem
		default:
			v := violationAt(p.String(), CodeUnknownKey, nil)
			v.Hint = "path continues past terminal at " + quoteOrRoot(prefix)
			return nil, Violations{v}
		}
	}
	return cur, nil
}

func quote(s string) string { return `"` + s + `"` }

func quoteOrRoot(prefix string) string {
	if prefix == "" {
		return "the document root"
	}
	return quote(prefix)
}
