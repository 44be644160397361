package semantic

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/odvcencio/sift/diff"
	"github.com/odvcencio/sift/grammars"
)

// extract walks the top level of a parsed tree and produces containers with
// their members, following the grammar's rule tables.
func extract(root *sitter.Node, src []byte, rules grammars.Rules) []Container {
	var out []Container
	walkLevel(root, src, rules, &out)
	return out
}

func walkLevel(parent *sitter.Node, src []byte, rules grammars.Rules, out *[]Container) {
	for i := 0; i < int(parent.ChildCount()); i++ {
		child := parent.Child(i)
		typ := child.Type()

		if contains(rules.Descend, typ) {
			walkLevel(child, src, rules, out)
			continue
		}

		// A wrapper (e.g. decorated_definition) supplies the range while
		// the wrapped node supplies the declaration.
		rangeNode, decl := child, child
		if field, ok := rules.Wrappers[typ]; ok {
			if def := child.ChildByFieldName(field); def != nil {
				decl = def
			}
		}

		for _, rule := range rules.Containers {
			if rule.NodeType != decl.Type() {
				continue
			}
			if c, ok := applyContainerRule(rule, decl, rangeNode, src, rules, out); ok {
				*out = append(*out, c)
			}
			break
		}
	}
}

func applyContainerRule(rule grammars.ContainerRule, decl, rangeNode *sitter.Node, src []byte, rules grammars.Rules, out *[]Container) (Container, bool) {
	spec := decl
	if rule.SpecType != "" {
		spec = firstChildOfType(decl, rule.SpecType)
		if spec == nil {
			return Container{}, false
		}
	}

	kind := rule.Kind
	if rule.KindField != "" {
		if tn := spec.ChildByFieldName(rule.KindField); tn != nil {
			if k, ok := rule.KindByType[tn.Type()]; ok {
				kind = k
			}
		}
	}
	for childType, k := range rule.KindByChild {
		if firstChildOfType(decl, childType) != nil {
			kind = k
		}
	}

	var name, qualifier string
	switch {
	case rule.LabelKinds != nil:
		ident := firstChildOfType(decl, "identifier")
		if ident == nil {
			return Container{}, false
		}
		blockType := nodeText(ident, src)
		if k, ok := rule.LabelKinds[blockType]; ok {
			kind = k
		}
		labels := childStringLabels(decl, src)
		qualifier = blockType
		switch len(labels) {
		case 0:
			name = blockType
		case 1:
			name = labels[0]
		default:
			qualifier += " " + strings.Join(labels[:len(labels)-1], " ")
			name = labels[len(labels)-1]
		}
	case rule.NameField != "":
		n := spec.ChildByFieldName(rule.NameField)
		if n == nil {
			return Container{}, false
		}
		name = nodeText(n, src)
	default:
		n := findShallow(spec, rule.NameTypes, 3)
		if n == nil {
			return Container{}, false
		}
		name = nodeText(n, src)
	}

	if rule.QualifierField != "" {
		if qn := decl.ChildByFieldName(rule.QualifierField); qn != nil {
			qualifier = nodeText(qn, src)
			if len(rule.QualifierTypes) > 0 {
				if sub := findShallow(qn, rule.QualifierTypes, 3); sub != nil {
					qualifier = nodeText(sub, src)
				}
			}
		}
	}

	c := Container{
		Kind:      kind,
		Name:      name,
		Qualifier: qualifier,
		Span:      triviaSpan(rangeNode, rules.Trivia),
	}

	body := findBody(rule, spec)
	if body != nil {
		c.Members = extractMembers(body, src, rule.Members, rules)
		if rule.LiftFunctions {
			liftFunctions(body, src, rules, out)
		}
	}
	return c, true
}

func findBody(rule grammars.ContainerRule, spec *sitter.Node) *sitter.Node {
	if rule.BodyField != "" {
		if body := spec.ChildByFieldName(rule.BodyField); body != nil {
			return body
		}
	}
	if len(rule.BodyTypes) > 0 {
		return findShallow(spec, rule.BodyTypes, 3)
	}
	return nil
}

func extractMembers(body *sitter.Node, src []byte, memberRules []grammars.MemberRule, rules grammars.Rules) []Member {
	var members []Member
	for i := 0; i < int(body.ChildCount()); i++ {
		child := body.Child(i)

		rangeNode, decl := child, child
		if field, ok := rules.Wrappers[child.Type()]; ok {
			if def := child.ChildByFieldName(field); def != nil {
				decl = def
			}
		}

		for _, mr := range memberRules {
			if mr.NodeType != decl.Type() {
				continue
			}
			nameHost := decl
			if mr.ViaChild != "" {
				nameHost = firstChildOfType(decl, mr.ViaChild)
				if nameHost == nil {
					break
				}
			}
			var nameNode *sitter.Node
			if mr.NameField != "" {
				nameNode = nameHost.ChildByFieldName(mr.NameField)
			} else {
				nameNode = findShallow(nameHost, mr.NameTypes, 3)
			}
			if nameNode == nil {
				break
			}
			members = append(members, Member{
				Kind: mr.Kind,
				Name: nodeText(nameNode, src),
				Span: triviaSpan(rangeNode, rules.Trivia),
			})
			break
		}
	}
	return members
}

// liftFunctions promotes function declarations nested inside a module body
// to top-level containers so they stay individually selectable.
func liftFunctions(body *sitter.Node, src []byte, rules grammars.Rules, out *[]Container) {
	for i := 0; i < int(body.ChildCount()); i++ {
		child := body.Child(i)

		rangeNode, decl := child, child
		if field, ok := rules.Wrappers[child.Type()]; ok {
			if def := child.ChildByFieldName(field); def != nil {
				decl = def
			}
		}

		for _, rule := range rules.Containers {
			if rule.Kind != grammars.KindFunction || rule.NodeType != decl.Type() {
				continue
			}
			if c, ok := applyContainerRule(rule, decl, rangeNode, src, rules, out); ok {
				*out = append(*out, c)
			}
			break
		}
	}
}

// triviaSpan returns the node's line range, extended backward over the
// contiguous run of immediately preceding trivia siblings (comments,
// attributes) so that a declaration carries its own documentation.
func triviaSpan(node *sitter.Node, trivia []string) diff.Span {
	start := int(node.StartPoint().Row)
	for prev := node.PrevSibling(); prev != nil && contains(trivia, prev.Type()); prev = prev.PrevSibling() {
		start = int(prev.StartPoint().Row)
	}
	return diff.Span{Start: start, End: int(node.EndPoint().Row) + 1}
}

// findShallow returns the first node of one of the wanted types within a
// bounded breadth-first search, or nil.
func findShallow(node *sitter.Node, types []string, depth int) *sitter.Node {
	if len(types) == 0 || depth <= 0 {
		return nil
	}
	queue := []*sitter.Node{}
	for i := 0; i < int(node.ChildCount()); i++ {
		queue = append(queue, node.Child(i))
	}
	for level := 0; level < depth && len(queue) > 0; level++ {
		var next []*sitter.Node
		for _, n := range queue {
			if contains(types, n.Type()) {
				return n
			}
			for i := 0; i < int(n.ChildCount()); i++ {
				next = append(next, n.Child(i))
			}
		}
		queue = next
	}
	return nil
}

func firstChildOfType(node *sitter.Node, typ string) *sitter.Node {
	for i := 0; i < int(node.ChildCount()); i++ {
		if c := node.Child(i); c.Type() == typ {
			return c
		}
	}
	return nil
}

// childStringLabels collects the unquoted texts of string label children
// (HCL block labels).
func childStringLabels(node *sitter.Node, src []byte) []string {
	var labels []string
	for i := 0; i < int(node.ChildCount()); i++ {
		c := node.Child(i)
		if c.Type() != "string_lit" && c.Type() != "string_literal" {
			continue
		}
		labels = append(labels, strings.Trim(nodeText(c, src), `"`))
	}
	return labels
}

func nodeText(node *sitter.Node, src []byte) string {
	start, end := node.StartByte(), node.EndByte()
	if int(end) > len(src) {
		end = uint32(len(src))
	}
	if start >= end {
		return ""
	}
	return string(src[start:end])
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
