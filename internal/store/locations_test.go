package store

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/marciomedrado/casa/internal/catalog"
	"github.com/marciomedrado/casa/internal/model"
)

func TestCreateLocationValidatesEnums(t *testing.T) {
	database := newTestDB(t)
	ctx := context.Background()
	prop := testProperty(t, database)

	_, err := CreateLocation(ctx, database, model.Location{
		PropertyID: prop.ID, Name: "Garage", Type: "hallway", Icon: "Home",
	})
	if err == nil {
		t.Error("expected error for unknown location type")
	}

	_, err = CreateLocation(ctx, database, model.Location{
		PropertyID: prop.ID, Name: "Garage", Type: model.LocationTypeRoom, Icon: "Sparkles",
	})
	if err == nil {
		t.Error("expected error for unknown icon key")
	}
}

func TestCreateLocationRejectsCrossPropertyParent(t *testing.T) {
	database := newTestDB(t)
	ctx := context.Background()
	prop := testProperty(t, database)
	other, _ := CreateProperty(ctx, database, "Beach Apartment", "", "", "")
	room := testLocation(t, database, other.ID, "Kitchen", nil)

	_, err := CreateLocation(ctx, database, model.Location{
		PropertyID: prop.ID, Name: "Shelf", ParentID: &room.ID,
		Type: model.LocationTypeShelf, Icon: "Library",
	})
	if err == nil {
		t.Error("expected error for parent in another property")
	}
}

func TestListLocationsPreservesInsertionOrder(t *testing.T) {
	database := newTestDB(t)
	prop := testProperty(t, database)

	names := []string{"Garage", "Living Room", "Office"}
	for _, name := range names {
		testLocation(t, database, prop.ID, name, nil)
	}

	locations, err := ListLocations(context.Background(), database, prop.ID)
	if err != nil {
		t.Fatalf("listing locations: %v", err)
	}
	for i, name := range names {
		if locations[i].Name != name {
			t.Errorf("position %d: expected %s, got %s", i, name, locations[i].Name)
		}
	}
}

func TestUpdateLocationRejectsMoveIntoOwnSubtree(t *testing.T) {
	database := newTestDB(t)
	prop := testProperty(t, database)
	garage := testLocation(t, database, prop.ID, "Garage", nil)
	cabinet := testLocation(t, database, prop.ID, "Cabinet", &garage.ID)

	garage.ParentID = &cabinet.ID
	if _, err := UpdateLocation(context.Background(), database, *garage); err == nil {
		t.Error("expected error moving a location under its own descendant")
	}

	garage.ParentID = &garage.ID
	if _, err := UpdateLocation(context.Background(), database, *garage); err == nil {
		t.Error("expected error making a location its own parent")
	}
}

func TestRenamingLocationReconcilesItemPaths(t *testing.T) {
	database := newTestDB(t)
	ctx := context.Background()
	prop := testProperty(t, database)
	garage := testLocation(t, database, prop.ID, "Garage", nil)
	boxA := testLocation(t, database, prop.ID, "Box A", &garage.ID)

	drill := testItem(t, database, model.Item{
		PropertyID: prop.ID, LocationID: boxA.ID, Name: "Drill", Quantity: 1,
	})
	if want := []string{"Garage", "Box A"}; !reflect.DeepEqual(drill.LocationPath, want) {
		t.Fatalf("expected initial path %v, got %v", want, drill.LocationPath)
	}

	// Renaming the room must rewrite the path of every item inside it,
	// including items placed in nested locations.
	garage.Name = "Workshop"
	if _, err := UpdateLocation(ctx, database, *garage); err != nil {
		t.Fatalf("renaming location: %v", err)
	}

	updated, err := GetItem(ctx, database, drill.ID)
	if err != nil {
		t.Fatalf("getting item: %v", err)
	}
	if want := []string{"Workshop", "Box A"}; !reflect.DeepEqual(updated.LocationPath, want) {
		t.Errorf("expected reconciled path %v, got %v", want, updated.LocationPath)
	}
}

func TestDeleteLocationConstraints(t *testing.T) {
	database := newTestDB(t)
	ctx := context.Background()
	prop := testProperty(t, database)
	garage := testLocation(t, database, prop.ID, "Garage", nil)
	shelf := testLocation(t, database, prop.ID, "Shelf", &garage.ID)

	err := DeleteLocation(ctx, database, garage.ID)
	var cerr *catalog.ConstraintError
	if !errors.As(err, &cerr) || cerr.Reason != catalog.HasChildLocations {
		t.Fatalf("expected has_child_locations, got %v", err)
	}

	testItem(t, database, model.Item{PropertyID: prop.ID, LocationID: shelf.ID, Name: "Books", Quantity: 1})
	err = DeleteLocation(ctx, database, shelf.ID)
	if !errors.As(err, &cerr) || cerr.Reason != catalog.HasItems {
		t.Fatalf("expected has_items, got %v", err)
	}
}

func TestDeleteEmptyLocation(t *testing.T) {
	database := newTestDB(t)
	ctx := context.Background()
	prop := testProperty(t, database)
	garage := testLocation(t, database, prop.ID, "Garage", nil)
	shelf := testLocation(t, database, prop.ID, "Shelf", &garage.ID)

	if err := DeleteLocation(ctx, database, shelf.ID); err != nil {
		t.Fatalf("deleting empty leaf: %v", err)
	}
	if err := DeleteLocation(ctx, database, garage.ID); err != nil {
		t.Fatalf("deleting now-empty parent: %v", err)
	}

	locations, _ := ListLocations(ctx, database, prop.ID)
	if len(locations) != 0 {
		t.Errorf("expected no locations left, got %d", len(locations))
	}
}
