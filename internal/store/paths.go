package store

import (
	"context"
	"fmt"
	"slices"

	"github.com/marciomedrado/casa/internal/catalog"
)

// reconcilePaths recomputes the materialized locationPath of every item in
// the property and rewrites the rows that changed. Paths are snapshots of
// ancestor names, so any rename or re-parent in either hierarchy can
// invalidate items far from the edited record; recomputing the whole
// property is cheap at catalog scale and cannot miss an affected item.
// Must run inside the transaction of the mutation that triggered it.
func reconcilePaths(ctx context.Context, tx querier, propertyID string) error {
	locations, err := listLocations(ctx, tx, propertyID)
	if err != nil {
		return err
	}
	items, err := listItems(ctx, tx, propertyID)
	if err != nil {
		return err
	}

	ix := catalog.NewIndex(locations, items)
	for i := range items {
		item := &items[i]
		path, err := ix.MaterializePath(catalog.Placement{
			LocationID:   item.LocationID,
			ParentID:     item.ParentID,
			SubContainer: item.SubContainer,
		})
		if err != nil {
			// A dangling room reference leaves the stale path in place;
			// the record stays browsable and the tree build reports it.
			continue
		}
		if slices.Equal(path, item.LocationPath) {
			continue
		}
		_, err = tx.ExecContext(ctx,
			`UPDATE items SET location_path = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
			encodeList(path), item.ID,
		)
		if err != nil {
			return fmt.Errorf("reconciling item path: %w", err)
		}
	}
	return nil
}
