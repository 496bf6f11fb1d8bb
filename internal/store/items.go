package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/marciomedrado/casa/internal/catalog"
	"github.com/marciomedrado/casa/internal/model"
)

// ListItems returns one property's items in insertion order.
func ListItems(ctx context.Context, db *sql.DB, propertyID string) ([]model.Item, error) {
	return listItems(ctx, db, propertyID)
}

// GetItem returns an item by ID.
func GetItem(ctx context.Context, db *sql.DB, id string) (*model.Item, error) {
	item, err := scanItem(db.QueryRowContext(ctx,
		`SELECT `+itemColumns+` FROM items WHERE id = ?`, id,
	))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting item: %w", err)
	}
	return item, nil
}

// normalizeItemFields applies the save-time invariants that do not depend
// on other records: containers track a single physical object, quantities
// start at one, tags are normalized.
func normalizeItemFields(item *model.Item) error {
	item.Name = strings.TrimSpace(item.Name)
	if item.Name == "" {
		return fmt.Errorf("item name required")
	}
	if item.IsContainer || item.Quantity < 1 {
		item.Quantity = 1
	}
	if !item.IsContainer {
		item.DoorCount = 0
		item.DrawerCount = 0
	}
	if item.DoorCount < 0 || item.DrawerCount < 0 {
		return fmt.Errorf("compartment counts must be non-negative")
	}
	if sc := item.SubContainer; sc != nil && !model.ValidSubContainerType(sc.Type) {
		return fmt.Errorf("unknown sub-container type: %q", sc.Type)
	}
	item.Tags = model.NormalizeTags(item.Tags)
	return nil
}

// resolveItemPlacement runs the candidate placement through the catalog
// engine against a fresh in-transaction snapshot and stamps the canonical
// placement and materialized path onto the item. itemID is empty on create.
func resolveItemPlacement(ctx context.Context, tx querier, itemID string, item *model.Item) error {
	locations, err := listLocations(ctx, tx, item.PropertyID)
	if err != nil {
		return err
	}
	items, err := listItems(ctx, tx, item.PropertyID)
	if err != nil {
		return err
	}
	ix := catalog.NewIndex(locations, items)

	placement, err := ix.ResolvePlacement(itemID, catalog.Placement{
		LocationID:   item.LocationID,
		ParentID:     item.ParentID,
		SubContainer: item.SubContainer,
	})
	if err != nil {
		return err
	}

	path, err := ix.MaterializePath(placement)
	if err != nil {
		return err
	}

	item.ParentID = placement.ParentID
	item.SubContainer = placement.SubContainer
	item.LocationPath = path
	return nil
}

// CreateItem validates the item's placement and creates it with its
// materialized path.
func CreateItem(ctx context.Context, db *sql.DB, item model.Item) (*model.Item, error) {
	if err := normalizeItemFields(&item); err != nil {
		return nil, err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if err := resolveItemPlacement(ctx, tx, "", &item); err != nil {
		return nil, err
	}

	subType, subNumber := subContainerColumns(item.SubContainer)
	id := uuid.NewString()
	_, err = tx.ExecContext(ctx,
		`INSERT INTO items (id, property_id, location_id, parent_id, name, description, quantity, tags,
		                    image_url, image_hint, is_container, door_count, drawer_count,
		                    sub_type, sub_number, location_path)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, item.PropertyID, item.LocationID, nullableRef(item.ParentID), item.Name, item.Description,
		item.Quantity, encodeList(item.Tags), item.ImageURL, item.ImageHint, item.IsContainer,
		item.DoorCount, item.DrawerCount, subType, subNumber, encodeList(item.LocationPath),
	)
	if err != nil {
		return nil, fmt.Errorf("creating item: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing item: %w", err)
	}
	return GetItem(ctx, db, id)
}

// UpdateItem validates the edited item's placement and rewrites it. Edits
// to a container (rename, compartment counts, moves) can invalidate the
// materialized paths of everything inside it, so the property's paths are
// reconciled in the same transaction.
func UpdateItem(ctx context.Context, db *sql.DB, item model.Item) (*model.Item, error) {
	if err := normalizeItemFields(&item); err != nil {
		return nil, err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	current, err := scanItem(tx.QueryRowContext(ctx,
		`SELECT `+itemColumns+` FROM items WHERE id = ?`, item.ID,
	))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("item not found")
	}
	if err != nil {
		return nil, fmt.Errorf("getting item: %w", err)
	}
	item.PropertyID = current.PropertyID

	if err := resolveItemPlacement(ctx, tx, item.ID, &item); err != nil {
		return nil, err
	}

	subType, subNumber := subContainerColumns(item.SubContainer)
	_, err = tx.ExecContext(ctx,
		`UPDATE items SET location_id = ?, parent_id = ?, name = ?, description = ?, quantity = ?,
		                  tags = ?, image_url = ?, image_hint = ?, is_container = ?,
		                  door_count = ?, drawer_count = ?, sub_type = ?, sub_number = ?,
		                  location_path = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ?`,
		item.LocationID, nullableRef(item.ParentID), item.Name, item.Description, item.Quantity,
		encodeList(item.Tags), item.ImageURL, item.ImageHint, item.IsContainer,
		item.DoorCount, item.DrawerCount, subType, subNumber, encodeList(item.LocationPath), item.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("updating item: %w", err)
	}

	// Moving a container moves everything stored inside it. The children
	// keep their parent reference, so their location must follow the
	// container's or the containment chain would span two rooms.
	if current.LocationID != item.LocationID {
		if err := cascadeLocation(ctx, tx, item.PropertyID, item.ID, item.LocationID); err != nil {
			return nil, err
		}
	}

	if err := reconcilePaths(ctx, tx, item.PropertyID); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing item update: %w", err)
	}
	return GetItem(ctx, db, item.ID)
}

// cascadeLocation rewrites the location of every item transitively inside
// the given container to the container's new location.
func cascadeLocation(ctx context.Context, tx querier, propertyID, containerID, locationID string) error {
	items, err := listItems(ctx, tx, propertyID)
	if err != nil {
		return err
	}

	for _, id := range catalog.NewIndex(nil, items).ItemDeletionSet(containerID) {
		if id == containerID {
			continue
		}
		_, err := tx.ExecContext(ctx,
			`UPDATE items SET location_id = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
			locationID, id,
		)
		if err != nil {
			return fmt.Errorf("moving contained item: %w", err)
		}
	}
	return nil
}

// DeleteItem deletes an item and returns how many records were removed.
// Deleting a container cascades to everything transitively inside it; the
// whole closure is removed in one transaction so a failure never leaves
// orphaned children behind.
func DeleteItem(ctx context.Context, db *sql.DB, id string) (int, error) {
	item, err := GetItem(ctx, db, id)
	if err != nil {
		return 0, err
	}
	if item == nil {
		return 0, fmt.Errorf("item not found")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	items, err := listItems(ctx, tx, item.PropertyID)
	if err != nil {
		return 0, err
	}

	ids := catalog.NewIndex(nil, items).ItemDeletionSet(id)
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(ids)), ", ")
	args := make([]any, len(ids))
	for i, delID := range ids {
		args[i] = delID
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM items WHERE id IN (`+placeholders+`)`, args...); err != nil {
		return 0, fmt.Errorf("deleting items: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing item deletion: %w", err)
	}
	return len(ids), nil
}

// SetItemImage sets an item's photo data.
func SetItemImage(ctx context.Context, db *sql.DB, id string, image []byte, mime string) error {
	_, err := db.ExecContext(ctx,
		`UPDATE items SET image = ?, image_mime = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		image, mime, id,
	)
	if err != nil {
		return fmt.Errorf("setting item image: %w", err)
	}
	return nil
}

// GetItemImage returns an item's photo data and MIME type.
func GetItemImage(ctx context.Context, db *sql.DB, id string) ([]byte, string, error) {
	var image []byte
	var mime sql.NullString
	err := db.QueryRowContext(ctx,
		`SELECT image, image_mime FROM items WHERE id = ?`, id,
	).Scan(&image, &mime)
	if err == sql.ErrNoRows {
		return nil, "", nil
	}
	if err != nil {
		return nil, "", fmt.Errorf("getting item image: %w", err)
	}
	return image, mime.String, nil
}
