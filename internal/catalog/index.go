package catalog

import "github.com/marciomedrado/casa/internal/model"

// Index holds id and parent lookups over one property's flat location and
// item records. It is built once per operation and shared by the tree,
// scope, path and deletion computations so that every call site walks the
// hierarchy the same way. An Index never outlives the record snapshot it
// was built from.
type Index struct {
	locations []model.Location
	items     []model.Item

	locByID      map[string]*model.Location
	locChildren  map[string][]*model.Location
	itemByID     map[string]*model.Item
	itemChildren map[string][]*model.Item

	warnings []Warning
}

// NewIndex builds an Index from flat record sets. Sibling order follows
// input order. Records whose parent reference points at a nonexistent
// record are collected as integrity warnings.
func NewIndex(locations []model.Location, items []model.Item) *Index {
	ix := &Index{
		locations:    locations,
		items:        items,
		locByID:      make(map[string]*model.Location, len(locations)),
		locChildren:  make(map[string][]*model.Location, len(locations)),
		itemByID:     make(map[string]*model.Item, len(items)),
		itemChildren: make(map[string][]*model.Item, len(items)),
	}

	for i := range locations {
		loc := &locations[i]
		ix.locByID[loc.ID] = loc
	}
	for i := range items {
		item := &items[i]
		ix.itemByID[item.ID] = item
	}

	for i := range locations {
		loc := &locations[i]
		ix.locChildren[refKey(loc.ParentID)] = append(ix.locChildren[refKey(loc.ParentID)], loc)
		if loc.ParentID != nil && ix.locByID[*loc.ParentID] == nil {
			ix.warnings = append(ix.warnings, Warning{Kind: "location", ID: loc.ID, MissingRef: *loc.ParentID})
		}
	}
	for i := range items {
		item := &items[i]
		ix.itemChildren[refKey(item.ParentID)] = append(ix.itemChildren[refKey(item.ParentID)], item)
		if item.ParentID != nil && ix.itemByID[*item.ParentID] == nil {
			ix.warnings = append(ix.warnings, Warning{Kind: "item", ID: item.ID, MissingRef: *item.ParentID})
		}
	}

	return ix
}

// refKey maps a nullable parent reference to a children-map key. Roots live
// under the empty key.
func refKey(id *string) string {
	if id == nil {
		return ""
	}
	return *id
}

// Location returns the location with the given id, or nil.
func (ix *Index) Location(id string) *model.Location {
	return ix.locByID[id]
}

// Item returns the item with the given id, or nil.
func (ix *Index) Item(id string) *model.Item {
	return ix.itemByID[id]
}

// ChildLocations returns the direct child locations of parentID, in input
// order. An empty parentID returns the roots.
func (ix *Index) ChildLocations(parentID string) []*model.Location {
	return ix.locChildren[parentID]
}

// ChildItems returns the items directly inside the container with the given
// id, in input order.
func (ix *Index) ChildItems(parentID string) []*model.Item {
	return ix.itemChildren[parentID]
}

// Warnings returns the dangling-reference warnings found while indexing.
func (ix *Index) Warnings() []Warning {
	return ix.warnings
}
