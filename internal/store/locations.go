package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/marciomedrado/casa/internal/catalog"
	"github.com/marciomedrado/casa/internal/model"
)

// ListLocations returns one property's locations in insertion order.
func ListLocations(ctx context.Context, db *sql.DB, propertyID string) ([]model.Location, error) {
	return listLocations(ctx, db, propertyID)
}

// GetLocation returns a location by ID.
func GetLocation(ctx context.Context, db *sql.DB, id string) (*model.Location, error) {
	loc, err := scanLocation(db.QueryRowContext(ctx,
		`SELECT `+locationColumns+` FROM locations WHERE id = ?`, id,
	))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting location: %w", err)
	}
	return loc, nil
}

// validateLocationFields rejects unknown type and icon keys at the boundary.
func validateLocationFields(loc model.Location) error {
	if loc.Name == "" {
		return fmt.Errorf("location name required")
	}
	if !model.ValidLocationType(loc.Type) {
		return fmt.Errorf("unknown location type: %q", loc.Type)
	}
	if !model.ValidIcon(loc.Icon) {
		return fmt.Errorf("unknown icon key: %q", loc.Icon)
	}
	return nil
}

// checkLocationParent verifies that the parent reference, if set, resolves
// to a location of the same property. Locations form a per-property forest.
func checkLocationParent(ctx context.Context, q querier, loc model.Location) error {
	if loc.ParentID == nil {
		return nil
	}
	var parentProperty string
	err := q.QueryRowContext(ctx,
		`SELECT property_id FROM locations WHERE id = ?`, *loc.ParentID,
	).Scan(&parentProperty)
	if err == sql.ErrNoRows {
		return fmt.Errorf("parent location not found")
	}
	if err != nil {
		return fmt.Errorf("checking parent location: %w", err)
	}
	if parentProperty != loc.PropertyID {
		return fmt.Errorf("parent location belongs to another property")
	}
	return nil
}

// CreateLocation creates a new location.
func CreateLocation(ctx context.Context, db *sql.DB, loc model.Location) (*model.Location, error) {
	if err := validateLocationFields(loc); err != nil {
		return nil, err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if err := checkLocationParent(ctx, tx, loc); err != nil {
		return nil, err
	}

	id := uuid.NewString()
	_, err = tx.ExecContext(ctx,
		`INSERT INTO locations (id, property_id, name, parent_id, type, icon) VALUES (?, ?, ?, ?, ?, ?)`,
		id, loc.PropertyID, loc.Name, nullableRef(loc.ParentID), loc.Type, loc.Icon,
	)
	if err != nil {
		return nil, fmt.Errorf("creating location: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing location: %w", err)
	}
	return GetLocation(ctx, db, id)
}

// UpdateLocation renames or re-parents a location. Re-parenting under the
// location itself or one of its descendants is rejected to keep the forest
// acyclic. Because materialized item paths quote ancestor names, every item
// inside the location's subtree has its path recomputed in the same
// transaction.
func UpdateLocation(ctx context.Context, db *sql.DB, loc model.Location) (*model.Location, error) {
	if err := validateLocationFields(loc); err != nil {
		return nil, err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	current, err := scanLocation(tx.QueryRowContext(ctx,
		`SELECT `+locationColumns+` FROM locations WHERE id = ?`, loc.ID,
	))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("location not found")
	}
	if err != nil {
		return nil, fmt.Errorf("getting location: %w", err)
	}
	loc.PropertyID = current.PropertyID

	if err := checkLocationParent(ctx, tx, loc); err != nil {
		return nil, err
	}

	if loc.ParentID != nil {
		locations, err := listLocations(ctx, tx, loc.PropertyID)
		if err != nil {
			return nil, err
		}
		ix := catalog.NewIndex(locations, nil)
		if ix.Scope(loc.ID)[*loc.ParentID] {
			return nil, fmt.Errorf("cannot move a location inside its own subtree")
		}
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE locations SET name = ?, parent_id = ?, type = ?, icon = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ?`,
		loc.Name, nullableRef(loc.ParentID), loc.Type, loc.Icon, loc.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("updating location: %w", err)
	}

	if err := reconcilePaths(ctx, tx, loc.PropertyID); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing location update: %w", err)
	}
	return GetLocation(ctx, db, loc.ID)
}

// DeleteLocation deletes a location. Locations never cascade: the delete is
// blocked with a catalog.ConstraintError while child locations or items
// remain, forcing the user to empty the space first.
func DeleteLocation(ctx context.Context, db *sql.DB, id string) error {
	loc, err := GetLocation(ctx, db, id)
	if err != nil {
		return err
	}
	if loc == nil {
		return fmt.Errorf("location not found")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	locations, err := listLocations(ctx, tx, loc.PropertyID)
	if err != nil {
		return err
	}
	items, err := listItems(ctx, tx, loc.PropertyID)
	if err != nil {
		return err
	}

	if err := catalog.NewIndex(locations, items).CheckLocationDelete(id); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM locations WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting location: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing location deletion: %w", err)
	}
	return nil
}
