package syntax

// WalkFunc is called once per node during a pre-order Walk. Returning a
// non-nil error stops the walk immediately.
type WalkFunc func(n *Node) error

// Walk performs a pre-order traversal of the tree rooted at root.
func Walk(root *Node, fn WalkFunc) error {
	if root == nil {
		return nil
	}
	if err := fn(root); err != nil {
		return err
	}
	for c := root.FirstChild; c != nil; c = c.Next {
		if err := Walk(c, fn); err != nil {
			return err
		}
	}
	return nil
}

// Leaves returns every childless node in the tree, in pre-order.
func Leaves(root *Node) []*Node {
	var out []*Node
	_ = Walk(root, func(n *Node) error {
		if !n.HasChildren() {
			out = append(out, n)
		}
		return nil
	})
	return out
}
