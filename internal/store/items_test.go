package store

import (
	"bytes"
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/marciomedrado/casa/internal/catalog"
	"github.com/marciomedrado/casa/internal/model"
)

func TestCreateItemMaterializesPath(t *testing.T) {
	database := newTestDB(t)
	prop := testProperty(t, database)
	garage := testLocation(t, database, prop.ID, "Garage", nil)
	cabinet := testLocation(t, database, prop.ID, "Tool Cabinet", &garage.ID)

	drill := testItem(t, database, model.Item{
		PropertyID: prop.ID, LocationID: cabinet.ID, Name: "Drill", Quantity: 1,
	})
	if want := []string{"Garage", "Tool Cabinet"}; !reflect.DeepEqual(drill.LocationPath, want) {
		t.Errorf("expected path %v, got %v", want, drill.LocationPath)
	}
}

func TestCreateItemNormalizesFields(t *testing.T) {
	database := newTestDB(t)
	prop := testProperty(t, database)
	office := testLocation(t, database, prop.ID, "Office", nil)

	wardrobe := testItem(t, database, model.Item{
		PropertyID: prop.ID, LocationID: office.ID, Name: "Wardrobe",
		Quantity: 5, IsContainer: true, DoorCount: 2, DrawerCount: 3,
		Tags: []string{" Furniture ", "wood", "furniture"},
	})
	if wardrobe.Quantity != 1 {
		t.Errorf("container quantity should be forced to 1, got %d", wardrobe.Quantity)
	}
	if want := []string{"furniture", "wood"}; !reflect.DeepEqual(wardrobe.Tags, want) {
		t.Errorf("expected normalized tags %v, got %v", want, wardrobe.Tags)
	}

	lamp := testItem(t, database, model.Item{
		PropertyID: prop.ID, LocationID: office.ID, Name: "Lamp",
		Quantity: 2, DoorCount: 4, DrawerCount: 1,
	})
	if lamp.DoorCount != 0 || lamp.DrawerCount != 0 {
		t.Errorf("non-container should have zero compartment counts, got %d/%d", lamp.DoorCount, lamp.DrawerCount)
	}

	_, err := CreateItem(context.Background(), database, model.Item{
		PropertyID: prop.ID, LocationID: office.ID, Name: "  ", Quantity: 1,
	})
	if err == nil {
		t.Error("expected error for blank item name")
	}
}

func TestCreateItemInContainer(t *testing.T) {
	database := newTestDB(t)
	ctx := context.Background()
	prop := testProperty(t, database)
	office := testLocation(t, database, prop.ID, "Office", nil)

	wardrobe := testItem(t, database, model.Item{
		PropertyID: prop.ID, LocationID: office.ID, Name: "Wardrobe",
		Quantity: 1, IsContainer: true, DoorCount: 2, DrawerCount: 3,
	})

	docs := testItem(t, database, model.Item{
		PropertyID: prop.ID, LocationID: office.ID, ParentID: &wardrobe.ID,
		Name: "Documents", Quantity: 1,
		SubContainer: &model.SubContainer{Type: model.SubContainerDrawer, Number: 2},
	})
	if want := []string{"Office", "Wardrobe", "Drawer 2"}; !reflect.DeepEqual(docs.LocationPath, want) {
		t.Errorf("expected path %v, got %v", want, docs.LocationPath)
	}

	// Out-of-range compartments are dropped, not rejected.
	keys := testItem(t, database, model.Item{
		PropertyID: prop.ID, LocationID: office.ID, ParentID: &wardrobe.ID,
		Name: "Keys", Quantity: 1,
		SubContainer: &model.SubContainer{Type: model.SubContainerDoor, Number: 9},
	})
	if keys.SubContainer != nil {
		t.Errorf("expected out-of-range sub-container to be cleared, got %+v", keys.SubContainer)
	}

	lamp := testItem(t, database, model.Item{
		PropertyID: prop.ID, LocationID: office.ID, Name: "Lamp", Quantity: 1,
	})
	_, err := CreateItem(ctx, database, model.Item{
		PropertyID: prop.ID, LocationID: office.ID, ParentID: &lamp.ID,
		Name: "Bulb", Quantity: 1,
	})
	var verr *catalog.ValidationError
	if !errors.As(err, &verr) || verr.Reason != catalog.InvalidContainer {
		t.Fatalf("expected invalid_container placing inside a non-container, got %v", err)
	}
}

func TestUpdateItemRejectsContainmentCycle(t *testing.T) {
	database := newTestDB(t)
	prop := testProperty(t, database)
	office := testLocation(t, database, prop.ID, "Office", nil)

	outer := testItem(t, database, model.Item{
		PropertyID: prop.ID, LocationID: office.ID, Name: "Outer Box",
		Quantity: 1, IsContainer: true,
	})
	inner := testItem(t, database, model.Item{
		PropertyID: prop.ID, LocationID: office.ID, ParentID: &outer.ID,
		Name: "Inner Box", Quantity: 1, IsContainer: true,
	})

	outer.ParentID = &inner.ID
	_, err := UpdateItem(context.Background(), database, *outer)
	var verr *catalog.ValidationError
	if !errors.As(err, &verr) || verr.Reason != catalog.CyclicContainment {
		t.Fatalf("expected cyclic_containment, got %v", err)
	}
}

func TestMovingItemUpdatesPath(t *testing.T) {
	database := newTestDB(t)
	ctx := context.Background()
	prop := testProperty(t, database)
	garage := testLocation(t, database, prop.ID, "Garage", nil)
	office := testLocation(t, database, prop.ID, "Office", nil)

	drill := testItem(t, database, model.Item{
		PropertyID: prop.ID, LocationID: garage.ID, Name: "Drill", Quantity: 1,
	})

	drill.LocationID = office.ID
	moved, err := UpdateItem(ctx, database, *drill)
	if err != nil {
		t.Fatalf("moving item: %v", err)
	}
	if want := []string{"Office"}; !reflect.DeepEqual(moved.LocationPath, want) {
		t.Errorf("expected path %v, got %v", want, moved.LocationPath)
	}
}

func TestMovingContainerCarriesContents(t *testing.T) {
	database := newTestDB(t)
	ctx := context.Background()
	prop := testProperty(t, database)
	office := testLocation(t, database, prop.ID, "Office", nil)
	living := testLocation(t, database, prop.ID, "Living Room", nil)

	wardrobe := testItem(t, database, model.Item{
		PropertyID: prop.ID, LocationID: office.ID, Name: "Wardrobe",
		Quantity: 1, IsContainer: true, DrawerCount: 2,
	})
	docs := testItem(t, database, model.Item{
		PropertyID: prop.ID, LocationID: office.ID, ParentID: &wardrobe.ID,
		Name: "Documents", Quantity: 1,
		SubContainer: &model.SubContainer{Type: model.SubContainerDrawer, Number: 1},
	})
	docbox := testItem(t, database, model.Item{
		PropertyID: prop.ID, LocationID: office.ID, ParentID: &wardrobe.ID,
		Name: "Document Box", Quantity: 1, IsContainer: true,
	})
	folder := testItem(t, database, model.Item{
		PropertyID: prop.ID, LocationID: office.ID, ParentID: &docbox.ID,
		Name: "Folder", Quantity: 1,
	})

	wardrobe.LocationID = living.ID
	if _, err := UpdateItem(ctx, database, *wardrobe); err != nil {
		t.Fatalf("moving container: %v", err)
	}

	// Everything transitively inside the wardrobe follows it into the
	// new room, with paths recomputed.
	for _, id := range []string{docs.ID, docbox.ID, folder.ID} {
		moved, err := GetItem(ctx, database, id)
		if err != nil {
			t.Fatalf("getting item: %v", err)
		}
		if moved.LocationID != living.ID {
			t.Errorf("%s: expected location %s, got %s", moved.Name, living.ID, moved.LocationID)
		}
		if len(moved.LocationPath) == 0 || moved.LocationPath[0] != "Living Room" {
			t.Errorf("%s: expected path rooted at Living Room, got %v", moved.Name, moved.LocationPath)
		}
	}

	movedDocs, _ := GetItem(ctx, database, docs.ID)
	if want := []string{"Living Room", "Wardrobe", "Drawer 1"}; !reflect.DeepEqual(movedDocs.LocationPath, want) {
		t.Errorf("expected path %v, got %v", want, movedDocs.LocationPath)
	}
}

func TestDeleteItemCascadesIntoContainers(t *testing.T) {
	database := newTestDB(t)
	ctx := context.Background()
	prop := testProperty(t, database)
	office := testLocation(t, database, prop.ID, "Office", nil)

	wardrobe := testItem(t, database, model.Item{
		PropertyID: prop.ID, LocationID: office.ID, Name: "Wardrobe",
		Quantity: 1, IsContainer: true, DoorCount: 1,
	})
	docbox := testItem(t, database, model.Item{
		PropertyID: prop.ID, LocationID: office.ID, ParentID: &wardrobe.ID,
		Name: "Document Box", Quantity: 1, IsContainer: true,
	})
	testItem(t, database, model.Item{
		PropertyID: prop.ID, LocationID: office.ID, ParentID: &docbox.ID,
		Name: "Folder", Quantity: 1,
	})
	lamp := testItem(t, database, model.Item{
		PropertyID: prop.ID, LocationID: office.ID, Name: "Lamp", Quantity: 1,
	})

	deleted, err := DeleteItem(ctx, database, wardrobe.ID)
	if err != nil {
		t.Fatalf("deleting container: %v", err)
	}
	if deleted != 3 {
		t.Errorf("expected 3 deleted rows, got %d", deleted)
	}

	remaining, err := ListItems(ctx, database, prop.ID)
	if err != nil {
		t.Fatalf("listing items: %v", err)
	}
	if len(remaining) != 1 || remaining[0].ID != lamp.ID {
		t.Errorf("expected only the lamp to survive, got %d items", len(remaining))
	}
}

func TestItemImageRoundTrip(t *testing.T) {
	database := newTestDB(t)
	ctx := context.Background()
	prop := testProperty(t, database)
	office := testLocation(t, database, prop.ID, "Office", nil)
	lamp := testItem(t, database, model.Item{
		PropertyID: prop.ID, LocationID: office.ID, Name: "Lamp", Quantity: 1,
	})

	data := []byte("not-really-a-jpeg")
	if err := SetItemImage(ctx, database, lamp.ID, data, "image/jpeg"); err != nil {
		t.Fatalf("setting image: %v", err)
	}

	got, mime, err := GetItemImage(ctx, database, lamp.ID)
	if err != nil {
		t.Fatalf("getting image: %v", err)
	}
	if !bytes.Equal(got, data) || mime != "image/jpeg" {
		t.Errorf("image round trip mismatch: %d bytes, mime %s", len(got), mime)
	}
}
