package catalog

// CheckLocationDelete reports whether the location may be deleted. A
// location with child locations or with items directly placed in it is
// blocked with a ConstraintError; the user has to empty a space before
// removing it, there is no cascade for locations.
func (ix *Index) CheckLocationDelete(locationID string) error {
	if len(ix.locChildren[locationID]) > 0 {
		return &ConstraintError{Reason: HasChildLocations, ID: locationID}
	}
	for i := range ix.items {
		if ix.items[i].LocationID == locationID {
			return &ConstraintError{Reason: HasItems, ID: locationID}
		}
	}
	return nil
}

// ItemDeletionSet computes the closure of item ids removed when deleting
// the given item: the item itself plus, when it is a container, every item
// transitively inside it. The caller is responsible for deleting the whole
// set atomically. Returns nil for an unknown id.
func (ix *Index) ItemDeletionSet(itemID string) []string {
	root := ix.itemByID[itemID]
	if root == nil {
		return nil
	}

	ids := []string{itemID}
	if !root.IsContainer {
		return ids
	}

	seen := map[string]bool{itemID: true}
	queue := []string{itemID}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, child := range ix.itemChildren[cur] {
			if seen[child.ID] {
				continue
			}
			seen[child.ID] = true
			ids = append(ids, child.ID)
			if child.IsContainer {
				queue = append(queue, child.ID)
			}
		}
	}
	return ids
}
