package store

import (
	"context"
	"database/sql"
	"testing"

	"github.com/marciomedrado/casa/internal/db"
	"github.com/marciomedrado/casa/internal/model"
)

func testProperty(t *testing.T, database *sql.DB) *model.Property {
	t.Helper()
	p, err := CreateProperty(context.Background(), database, "Main House", "123 Flower St", "", "")
	if err != nil {
		t.Fatalf("creating test property: %v", err)
	}
	return p
}

func testLocation(t *testing.T, database *sql.DB, propertyID, name string, parentID *string) *model.Location {
	t.Helper()
	loc, err := CreateLocation(context.Background(), database, model.Location{
		PropertyID: propertyID,
		Name:       name,
		ParentID:   parentID,
		Type:       model.LocationTypeRoom,
		Icon:       "Home",
	})
	if err != nil {
		t.Fatalf("creating test location %q: %v", name, err)
	}
	return loc
}

func testItem(t *testing.T, database *sql.DB, item model.Item) *model.Item {
	t.Helper()
	created, err := CreateItem(context.Background(), database, item)
	if err != nil {
		t.Fatalf("creating test item %q: %v", item.Name, err)
	}
	return created
}

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	return db.NewTestDB(t)
}
