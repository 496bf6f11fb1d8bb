package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/marciomedrado/casa/internal/model"
)

// querier is the subset of a database handle the read helpers need; both
// *sql.DB and *sql.Tx satisfy it, so loads can run inside transactions.
type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// scanner abstracts *sql.Row and *sql.Rows for the record scan helpers.
type scanner interface {
	Scan(dest ...any) error
}

// encodeList stores a string slice as a JSON array text column. Nil and
// empty slices round-trip as NULL.
func encodeList(values []string) any {
	if len(values) == 0 {
		return nil
	}
	data, _ := json.Marshal(values)
	return string(data)
}

// decodeList reverses encodeList.
func decodeList(column sql.NullString) ([]string, error) {
	if !column.Valid || column.String == "" {
		return nil, nil
	}
	var values []string
	if err := json.Unmarshal([]byte(column.String), &values); err != nil {
		return nil, fmt.Errorf("decoding list column: %w", err)
	}
	return values, nil
}

func nullableRef(id *string) any {
	if id == nil {
		return nil
	}
	return *id
}

func refFromColumn(column sql.NullString) *string {
	if !column.Valid {
		return nil
	}
	s := column.String
	return &s
}

const locationColumns = `id, property_id, name, parent_id, type, icon, created_at, updated_at`

func scanLocation(s scanner) (*model.Location, error) {
	loc := &model.Location{}
	var parentID sql.NullString
	err := s.Scan(&loc.ID, &loc.PropertyID, &loc.Name, &parentID, &loc.Type, &loc.Icon, &loc.CreatedAt, &loc.UpdatedAt)
	if err != nil {
		return nil, err
	}
	loc.ParentID = refFromColumn(parentID)
	return loc, nil
}

const itemColumns = `id, property_id, location_id, parent_id, name, description, quantity, tags,
	image_url, image_hint, image_mime, is_container, door_count, drawer_count,
	sub_type, sub_number, location_path, created_at, updated_at`

func scanItem(s scanner) (*model.Item, error) {
	item := &model.Item{}
	var parentID, description, tags, imageURL, imageHint, imageMime, subType, path sql.NullString
	var subNumber sql.NullInt64
	err := s.Scan(&item.ID, &item.PropertyID, &item.LocationID, &parentID, &item.Name, &description,
		&item.Quantity, &tags, &imageURL, &imageHint, &imageMime, &item.IsContainer,
		&item.DoorCount, &item.DrawerCount, &subType, &subNumber, &path, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return nil, err
	}

	item.ParentID = refFromColumn(parentID)
	item.Description = description.String
	item.ImageURL = imageURL.String
	item.ImageHint = imageHint.String
	item.ImageMime = imageMime.String
	if subType.Valid && subNumber.Valid {
		item.SubContainer = &model.SubContainer{Type: subType.String, Number: int(subNumber.Int64)}
	}
	if item.Tags, err = decodeList(tags); err != nil {
		return nil, err
	}
	if item.LocationPath, err = decodeList(path); err != nil {
		return nil, err
	}
	return item, nil
}

// subContainerColumns splits a SubContainer into its two columns.
func subContainerColumns(sc *model.SubContainer) (any, any) {
	if sc == nil {
		return nil, nil
	}
	return sc.Type, sc.Number
}

// listLocations loads one property's locations in insertion order, so that
// the catalog engine's sibling ordering is deterministic.
func listLocations(ctx context.Context, q querier, propertyID string) ([]model.Location, error) {
	rows, err := q.QueryContext(ctx,
		`SELECT `+locationColumns+` FROM locations WHERE property_id = ? ORDER BY rowid`, propertyID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing locations: %w", err)
	}
	defer rows.Close()

	var locations []model.Location
	for rows.Next() {
		loc, err := scanLocation(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning location: %w", err)
		}
		locations = append(locations, *loc)
	}
	return locations, rows.Err()
}

// listItems loads one property's items in insertion order.
func listItems(ctx context.Context, q querier, propertyID string) ([]model.Item, error) {
	rows, err := q.QueryContext(ctx,
		`SELECT `+itemColumns+` FROM items WHERE property_id = ? ORDER BY rowid`, propertyID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing items: %w", err)
	}
	defer rows.Close()

	var items []model.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning item: %w", err)
		}
		items = append(items, *item)
	}
	return items, rows.Err()
}
