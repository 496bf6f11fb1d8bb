package catalog

import "github.com/marciomedrado/casa/internal/model"

// LocationNode is a location with its resolved children.
type LocationNode struct {
	model.Location
	Children []*LocationNode `json:"children"`
}

// ItemNode is an item with its resolved container contents.
type ItemNode struct {
	model.Item
	Children []*ItemNode `json:"children"`
}

// LocationTree nests the indexed locations below the given parent (nil for
// the property roots). Sibling order preserves input order. Locations whose
// ancestor chain is broken never appear below a missing ancestor; they are
// reported by Warnings instead.
func (ix *Index) LocationTree(parentID *string) []*LocationNode {
	children := ix.locChildren[refKey(parentID)]
	nodes := make([]*LocationNode, 0, len(children))
	for _, loc := range children {
		nodes = append(nodes, &LocationNode{
			Location: *loc,
			Children: ix.LocationTree(&loc.ID),
		})
	}
	return nodes
}

// ItemTree nests the indexed items by container. Items with no parent, and
// items whose parent reference does not resolve, appear at the root so the
// catalog stays browsable with partial data.
func (ix *Index) ItemTree() []*ItemNode {
	nodeByID := make(map[string]*ItemNode, len(ix.items))
	for i := range ix.items {
		item := &ix.items[i]
		nodeByID[item.ID] = &ItemNode{Item: *item}
	}

	var roots []*ItemNode
	for i := range ix.items {
		node := nodeByID[ix.items[i].ID]
		if p := ix.items[i].ParentID; p != nil && nodeByID[*p] != nil {
			parent := nodeByID[*p]
			parent.Children = append(parent.Children, node)
		} else {
			roots = append(roots, node)
		}
	}
	return roots
}
