package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/marciomedrado/casa/internal/model"
)

// CreateProperty creates a new property.
func CreateProperty(ctx context.Context, db *sql.DB, name, address, imageURL, imageHint string) (*model.Property, error) {
	id := uuid.NewString()
	_, err := db.ExecContext(ctx,
		`INSERT INTO properties (id, name, address, image_url, image_hint) VALUES (?, ?, ?, ?, ?)`,
		id, name, address, imageURL, imageHint,
	)
	if err != nil {
		return nil, fmt.Errorf("creating property: %w", err)
	}
	return GetProperty(ctx, db, id)
}

// GetProperty returns a property by ID.
func GetProperty(ctx context.Context, db *sql.DB, id string) (*model.Property, error) {
	p := &model.Property{}
	var address, imageURL, imageHint sql.NullString
	err := db.QueryRowContext(ctx,
		`SELECT id, name, address, image_url, image_hint, created_at FROM properties WHERE id = ?`, id,
	).Scan(&p.ID, &p.Name, &address, &imageURL, &imageHint, &p.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting property: %w", err)
	}
	p.Address = address.String
	p.ImageURL = imageURL.String
	p.ImageHint = imageHint.String
	return p, nil
}

// ListProperties returns all properties.
func ListProperties(ctx context.Context, db *sql.DB) ([]model.Property, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT id, name, address, image_url, image_hint, created_at FROM properties ORDER BY rowid`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing properties: %w", err)
	}
	defer rows.Close()

	var properties []model.Property
	for rows.Next() {
		var p model.Property
		var address, imageURL, imageHint sql.NullString
		if err := rows.Scan(&p.ID, &p.Name, &address, &imageURL, &imageHint, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning property: %w", err)
		}
		p.Address = address.String
		p.ImageURL = imageURL.String
		p.ImageHint = imageHint.String
		properties = append(properties, p)
	}
	return properties, rows.Err()
}

// UpdateProperty updates a property's name and address.
func UpdateProperty(ctx context.Context, db *sql.DB, id, name, address string) error {
	_, err := db.ExecContext(ctx,
		`UPDATE properties SET name = ?, address = ? WHERE id = ?`,
		name, address, id,
	)
	if err != nil {
		return fmt.Errorf("updating property: %w", err)
	}
	return nil
}

// DeleteProperty deletes a property and everything it owns: all of its
// items and locations go with it, in one transaction.
func DeleteProperty(ctx context.Context, db *sql.DB, id string) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM items WHERE property_id = ?`, id); err != nil {
		return fmt.Errorf("deleting property items: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM locations WHERE property_id = ?`, id); err != nil {
		return fmt.Errorf("deleting property locations: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM properties WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting property: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing property deletion: %w", err)
	}
	return nil
}
