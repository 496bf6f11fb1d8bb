package catalog

import "github.com/marciomedrado/casa/internal/model"

// Shared fixture: one property with three rooms, nested storage locations
// and a mix of loose items and nested containers.
//
//	garage (room)
//	└── cabinet (cabinet)
//	    └── box-a (box)
//	living (room)
//	└── shelf (shelf)
//	office (room)
//
// Items: a drill in box-a, books on the shelf, and in the office a wardrobe
// container (2 doors, 3 drawers) holding a document box (itself a
// container) which holds a folder. A loose lamp sits directly in the
// office.
func strp(s string) *string { return &s }

func fixtureLocations() []model.Location {
	return []model.Location{
		{ID: "garage", PropertyID: "prop", Name: "Garage", Type: model.LocationTypeRoom, Icon: "Warehouse"},
		{ID: "cabinet", PropertyID: "prop", Name: "Tool Cabinet", ParentID: strp("garage"), Type: model.LocationTypeCabinet, Icon: "Archive"},
		{ID: "box-a", PropertyID: "prop", Name: "Box A", ParentID: strp("cabinet"), Type: model.LocationTypeBox, Icon: "Box"},
		{ID: "living", PropertyID: "prop", Name: "Living Room", Type: model.LocationTypeRoom, Icon: "DoorOpen"},
		{ID: "shelf", PropertyID: "prop", Name: "Bookshelf", ParentID: strp("living"), Type: model.LocationTypeShelf, Icon: "Library"},
		{ID: "office", PropertyID: "prop", Name: "Office", Type: model.LocationTypeRoom, Icon: "BookOpen"},
	}
}

func fixtureItems() []model.Item {
	return []model.Item{
		{ID: "drill", PropertyID: "prop", LocationID: "box-a", Name: "Furadeira Bosch",
			Description: "110V with bit set", Quantity: 1, Tags: []string{"tool", "electric"}},
		{ID: "books", PropertyID: "prop", LocationID: "shelf", Name: "Hitchhiker's Guide Box Set",
			Description: "5 book box set", Quantity: 1, Tags: []string{"book", "sci-fi"}},
		{ID: "wardrobe", PropertyID: "prop", LocationID: "office", Name: "Wardrobe",
			Quantity: 1, IsContainer: true, DoorCount: 2, DrawerCount: 3},
		{ID: "docbox", PropertyID: "prop", LocationID: "office", ParentID: strp("wardrobe"), Name: "Document Box",
			Quantity: 1, IsContainer: true,
			SubContainer: &model.SubContainer{Type: model.SubContainerDrawer, Number: 1}},
		{ID: "folder", PropertyID: "prop", LocationID: "office", ParentID: strp("docbox"), Name: "Contracts Folder",
			Quantity: 1, Tags: []string{"documents", "legal"}},
		{ID: "lamp", PropertyID: "prop", LocationID: "office", Name: "Desk Lamp", Quantity: 1},
	}
}

func fixtureIndex() *Index {
	return NewIndex(fixtureLocations(), fixtureItems())
}
