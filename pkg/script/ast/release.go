package ast

import "sync"

// Release tears down n and all of its children in post-order and returns the
// number of nodes released. Function-definition nodes are skipped together
// with their bodies: a registered function must outlive the tree that
// declared it. A released node has an empty Kind.
func Release(n *Node) int {
	return release(n, false)
}

func release(n *Node, all bool) int {
	if n == nil || n.Kind == "" {
		return 0
	}
	if n.Kind == KindFunctionDef && !all {
		return 0
	}

	count := 0
	for _, c := range n.Children() {
		count += release(c, all)
	}

	*n = Node{}
	return count + 1
}

// Released returns true if n has been torn down.
func (n *Node) Released() bool {
	return n.Kind == ""
}

// Arena owns every tree handed to an interpreter process.
// Trees are tracked when they are parsed and freed in bulk at shutdown,
// which covers function bodies that Release deliberately leaves alive.
type Arena struct {
	mu        sync.Mutex
	roots     []*Node
	functions []*Node
}

// NewArena creates an empty arena.
func NewArena() *Arena {
	return &Arena{}
}

// Track registers a tree with the arena and returns it.
// Function definitions inside the tree are remembered separately so they can
// still be freed after the tree itself has been released.
func (a *Arena) Track(root *Node) *Node {
	if root == nil {
		return nil
	}

	var fns []*Node
	Walk(root, func(n *Node) bool {
		if n.Kind == KindFunctionDef {
			fns = append(fns, n)
		}
		return true
	})

	a.mu.Lock()
	a.roots = append(a.roots, root)
	a.functions = append(a.functions, fns...)
	a.mu.Unlock()
	return root
}

// Len returns the number of tracked trees.
func (a *Arena) Len() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.roots)
}

// Free releases every tracked tree, function definitions included, and
// returns the number of nodes released.
func (a *Arena) Free() int {
	a.mu.Lock()
	roots, fns := a.roots, a.functions
	a.roots, a.functions = nil, nil
	a.mu.Unlock()

	count := 0
	for _, r := range roots {
		count += release(r, true)
	}
	for _, fn := range fns {
		count += release(fn, true)
	}
	return count
}
