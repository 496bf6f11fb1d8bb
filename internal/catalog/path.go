package catalog

// MaterializePath produces the ordered display path for a placement:
// location names from the root-most location down to the item's room,
// then container names from the outermost container inward, then the
// sub-compartment label if one is set.
//
// The room itself must resolve; a broken reference further up either chain
// truncates the path there instead of failing, matching the warning
// semantics of Index. The result is a snapshot: callers must recompute it
// whenever any ancestor in the chain is renamed or re-parented, not only
// when the item itself is edited.
func (ix *Index) MaterializePath(p Placement) ([]string, error) {
	loc := ix.locByID[p.LocationID]
	if loc == nil {
		return nil, &ResolutionError{Reason: DanglingLocation, ID: p.LocationID}
	}

	var segments []string

	visited := make(map[string]bool)
	for cur := loc; cur != nil && !visited[cur.ID]; {
		visited[cur.ID] = true
		segments = append(segments, cur.Name)
		if cur.ParentID == nil {
			break
		}
		cur = ix.locByID[*cur.ParentID]
	}
	reverse(segments)

	if p.ParentID != nil {
		var containers []string
		visited = make(map[string]bool)
		for cur := ix.itemByID[*p.ParentID]; cur != nil && !visited[cur.ID]; {
			visited[cur.ID] = true
			containers = append(containers, cur.Name)
			if cur.ParentID == nil {
				break
			}
			cur = ix.itemByID[*cur.ParentID]
		}
		reverse(containers)
		segments = append(segments, containers...)
	}

	if p.SubContainer != nil {
		segments = append(segments, p.SubContainer.Label())
	}

	return segments, nil
}

func reverse(s []string) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}
