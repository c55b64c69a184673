package navigation

// BuildMenu turns published rows into a nested menu.
//
// Rows are expected in (parent_id NULLS FIRST, display_order) order; siblings
// keep the order in which they appear in rows and no sorting happens here.
// Roots keep their full slug as path, children their last slug segment.
// Rows that cannot be reached from a root (their parent is missing from the
// input, or an ancestor of theirs is) are left out of the menu and returned
// as dropped so the caller can report them.
func BuildMenu(rows []NavNode) (menu []MenuNode, dropped []NavNode) {
	index := make(map[string]int, len(rows))
	for i, row := range rows {
		index[row.ID()] = i
	}

	children := make([][]int, len(rows))
	roots := make([]int, 0, len(rows))
	for i, row := range rows {
		if row.IsRoot() {
			roots = append(roots, i)
			continue
		}
		if parent, ok := index[row.ParentID()]; ok {
			children[parent] = append(children[parent], i)
		}
	}

	reached := make([]bool, len(rows))
	var build func(i int) MenuNode
	build = func(i int) MenuNode {
		reached[i] = true
		row := rows[i]
		path := row.Slug()
		if !row.IsRoot() {
			path = LastSegment(path)
		}
		node := MenuNode{title: row.Label(), path: path}
		for _, child := range children[i] {
			if reached[child] {
				continue
			}
			node.submenu = append(node.submenu, build(child))
		}
		return node
	}

	menu = make([]MenuNode, 0, len(roots))
	for _, i := range roots {
		menu = append(menu, build(i))
	}

	for i, row := range rows {
		if !reached[i] {
			dropped = append(dropped, row)
		}
	}
	return menu, dropped
}
