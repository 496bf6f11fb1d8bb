package catalog

import "github.com/marciomedrado/casa/internal/model"

// Placement is a candidate or canonical set of containment fields for one
// item: the room it lives in, optionally the container item holding it, and
// optionally the container compartment it occupies.
type Placement struct {
	LocationID   string
	ParentID     *string
	SubContainer *model.SubContainer
}

// ResolvePlacement validates a user's placement choice and returns the
// canonical fields to store. itemID identifies the item being edited and is
// empty when creating a new item; it is needed to reject placing a
// container inside itself or inside one of its own descendants.
//
// A sub-compartment selection that has no container, or that falls outside
// the container's door/drawer range, is dropped rather than rejected:
// choosing a compartment only means something once a valid container is
// chosen. ResolvePlacement never writes anything.
func (ix *Index) ResolvePlacement(itemID string, p Placement) (Placement, error) {
	if p.LocationID == "" {
		return Placement{}, &ValidationError{Reason: MissingLocation, Field: "locationId"}
	}

	var parent *model.Item
	if p.ParentID != nil {
		parent = ix.itemByID[*p.ParentID]
		if parent == nil || !parent.IsContainer || parent.LocationID != p.LocationID {
			return Placement{}, &ValidationError{Reason: InvalidContainer, ID: *p.ParentID, Field: "parentId"}
		}
		if itemID != "" {
			if err := ix.checkContainmentCycle(itemID, parent); err != nil {
				return Placement{}, err
			}
		}
	}

	resolved := Placement{LocationID: p.LocationID, ParentID: p.ParentID}
	if sc := p.SubContainer; sc != nil && parent != nil && subContainerFits(parent, *sc) {
		copy := *sc
		resolved.SubContainer = &copy
	}
	return resolved, nil
}

// checkContainmentCycle walks the candidate container's ancestor chain and
// fails if the item being placed appears in it. The visited set keeps the
// walk finite even over corrupt data.
func (ix *Index) checkContainmentCycle(itemID string, parent *model.Item) error {
	visited := make(map[string]bool)
	for cur := parent; cur != nil; {
		if cur.ID == itemID {
			return &ValidationError{Reason: CyclicContainment, ID: itemID, Field: "parentId"}
		}
		if visited[cur.ID] {
			break
		}
		visited[cur.ID] = true
		if cur.ParentID == nil {
			break
		}
		cur = ix.itemByID[*cur.ParentID]
	}
	return nil
}

// subContainerFits reports whether the compartment selection addresses a
// compartment the container actually has.
func subContainerFits(parent *model.Item, sc model.SubContainer) bool {
	if sc.Number < 1 {
		return false
	}
	switch sc.Type {
	case model.SubContainerDoor:
		return sc.Number <= parent.DoorCount
	case model.SubContainerDrawer:
		return sc.Number <= parent.DrawerCount
	}
	return false
}
