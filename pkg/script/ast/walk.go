package ast

// Walk traverses the tree rooted at n in pre-order and calls fn for each
// node. If fn returns false, the children of that node are skipped.
func Walk(n *Node, fn func(*Node) bool) {
	if n == nil || n.Released() {
		return
	}
	if !fn(n) {
		return
	}
	for _, c := range n.Children() {
		Walk(c, fn)
	}
}

// Stats summarizes a tree.
type Stats struct {
	Nodes     int
	Functions []string
	Kinds     map[Kind]int
}

// Inspect collects statistics about the tree rooted at n.
func Inspect(n *Node) *Stats {
	s := &Stats{Kinds: make(map[Kind]int)}
	Walk(n, func(c *Node) bool {
		s.Nodes++
		s.Kinds[c.Kind]++
		if c.Kind == KindFunctionDef {
			s.Functions = append(s.Functions, c.Name)
		}
		return true
	})
	return s
}
