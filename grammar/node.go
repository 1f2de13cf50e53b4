package grammar

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Node is a node of the concrete syntax tree produced by a compiled
// grammar. Productions yield nodes named after the production; tokens in
// syntactic productions yield leaves named after the quoted token.
type Node struct {
	Name     string
	Text     string  // Source text matched by this node, without leading whitespace
	Children []*Node // Nil for leaves and lexical productions
}

// IsLeaf reports whether n has no children.
func (n *Node) IsLeaf() bool {
	return len(n.Children) == 0
}

// Find returns the first descendant of n, in depth-first order, named name.
func (n *Node) Find(name string) *Node {
	for _, child := range n.Children {
		if child.Name == name {
			return child
		}
		if found := child.Find(name); found != nil {
			return found
		}
	}
	return nil
}

// String renders the tree one node per line, indented by depth.
func (n *Node) String() string {
	var b strings.Builder
	n.write(&b, 0)
	return strings.TrimSuffix(b.String(), "\n")
}

func (n *Node) write(b *strings.Builder, depth int) {
	b.WriteString(strings.Repeat("  ", depth))
	if n.IsLeaf() {
		fmt.Fprintf(b, "%s %q\n", n.Name, n.Text)
		return
	}
	b.WriteString(n.Name)
	b.WriteByte('\n')
	for _, child := range n.Children {
		child.write(b, depth+1)
	}
}

type jsonNode struct {
	Name     string      `json:"name"`
	Text     string      `json:"text,omitempty"`
	Children []*jsonNode `json:"children,omitempty"`
}

func (n *Node) MarshalJSON() ([]byte, error) {
	return json.Marshal(n.toJSON())
}

func (n *Node) toJSON() *jsonNode {
	jn := &jsonNode{Name: n.Name}
	if n.IsLeaf() {
		jn.Text = n.Text
		return jn
	}
	jn.Children = make([]*jsonNode, len(n.Children))
	for i, child := range n.Children {
		jn.Children[i] = child.toJSON()
	}
	return jn
}
