package post

// BuildTree arranges comments into threads. A comment is a root when it
// has no parent or its parent is not among comments. Roots and children
// keep the relative order of comments. The input is not modified.
//
// Each comment has at most one parent, so comments that only reply to each
// other in a cycle are unreachable from any root and are left out.
func BuildTree(comments []Comment) []Thread {
	known := make(map[PostID]bool, len(comments))
	for _, c := range comments {
		known[c.ID] = true
	}
	children := make(map[PostID][]int)
	var roots []int
	for i, c := range comments {
		if c.ParentID == "" || !known[c.ParentID] {
			roots = append(roots, i)
			continue
		}
		children[c.ParentID] = append(children[c.ParentID], i)
	}
	return buildLevel(comments, children, roots, 0)
}

func buildLevel(comments []Comment, children map[PostID][]int, idx []int, level int) []Thread {
	result := make([]Thread, 0, len(idx))
	for _, i := range idx {
		c := comments[i]
		result = append(result, Thread{
			Comment:  c,
			Level:    level,
			Children: buildLevel(comments, children, children[c.ID], level+1),
		})
	}
	return result
}

// FindThread returns the root thread containing the comment id.
func FindThread(threads []Thread, id PostID) (Thread, bool) {
	for _, t := range threads {
		if t.contains(id) {
			return t, true
		}
	}
	return Thread{}, false
}

func (t Thread) contains(id PostID) bool {
	if t.ID == id {
		return true
	}
	for _, c := range t.Children {
		if c.contains(id) {
			return true
		}
	}
	return false
}

// Walk calls fn for t and every descendant, depth first.
func (t Thread) Walk(fn func(Thread)) {
	fn(t)
	for _, c := range t.Children {
		c.Walk(fn)
	}
}
