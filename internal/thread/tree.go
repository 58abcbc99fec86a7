package thread

// BuildTree groups a flat, oldest-first comment list into top-level
// comments with their replies. Input order is kept at every level. A
// comment whose parent does not appear earlier in the list becomes a
// top-level comment, so the result is always acyclic.
func BuildTree(comments []*Comment) []*Node {
	seen := make(map[int64]*Node, len(comments))

	var roots []*Node
	for _, c := range comments {
		n := &Node{Comment: c}
		if c.ParentID != nil {
			if parent, ok := seen[*c.ParentID]; ok {
				parent.Replies = append(parent.Replies, n)
				seen[c.ID] = n
				continue
			}
		}
		roots = append(roots, n)
		seen[c.ID] = n
	}
	return roots
}

// Count returns the number of comments in the tree.
func Count(roots []*Node) int {
	total := 0
	for _, n := range roots {
		total += 1 + Count(n.Replies)
	}
	return total
}
