package catalog

// Scope returns the set of location ids comprising locationID and every
// descendant location, for "this room and everything inside it" filtering.
// The iterative walk with a membership check terminates even if the stored
// records accidentally form a cycle.
func (ix *Index) Scope(locationID string) map[string]bool {
	scope := map[string]bool{locationID: true}
	stack := []string{locationID}

	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, child := range ix.locChildren[cur] {
			if scope[child.ID] {
				continue
			}
			scope[child.ID] = true
			stack = append(stack, child.ID)
		}
	}
	return scope
}
