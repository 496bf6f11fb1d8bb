package store

import (
	"context"
	"database/sql"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/marciomedrado/casa/internal/model"
)

// Backup format: one CSV with a kind column distinguishing location and
// item rows. List fields (tags, locationPath) are ;-delimited in order,
// with backslash escaping so values containing the delimiter survive the
// round trip; the sub-container is encoded as "type:number". The format
// round-trips every persisted field except image blobs, which stay on
// the server.
var backupHeader = []string{
	"kind", "id", "propertyId", "name", "parentId", "type", "icon",
	"locationId", "description", "quantity", "tags", "imageUrl", "imageHint",
	"isContainer", "doorCount", "drawerCount", "subContainer", "locationPath",
}

const (
	backupListSep    = ';'
	backupListEscape = '\\'
)

// ExportProperty writes the property's full location and item record set
// as CSV, locations first.
func ExportProperty(ctx context.Context, db *sql.DB, propertyID string, w io.Writer) error {
	locations, err := listLocations(ctx, db, propertyID)
	if err != nil {
		return err
	}
	items, err := listItems(ctx, db, propertyID)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(backupHeader); err != nil {
		return fmt.Errorf("writing backup header: %w", err)
	}

	for _, loc := range locations {
		row := emptyBackupRow()
		row["kind"] = "location"
		row["id"] = loc.ID
		row["propertyId"] = loc.PropertyID
		row["name"] = loc.Name
		row["parentId"] = refString(loc.ParentID)
		row["type"] = loc.Type
		row["icon"] = loc.Icon
		if err := writeBackupRow(cw, row); err != nil {
			return err
		}
	}

	for _, item := range items {
		row := emptyBackupRow()
		row["kind"] = "item"
		row["id"] = item.ID
		row["propertyId"] = item.PropertyID
		row["name"] = item.Name
		row["parentId"] = refString(item.ParentID)
		row["locationId"] = item.LocationID
		row["description"] = item.Description
		row["quantity"] = strconv.Itoa(item.Quantity)
		row["tags"] = joinBackupList(item.Tags)
		row["imageUrl"] = item.ImageURL
		row["imageHint"] = item.ImageHint
		row["isContainer"] = strconv.FormatBool(item.IsContainer)
		row["doorCount"] = strconv.Itoa(item.DoorCount)
		row["drawerCount"] = strconv.Itoa(item.DrawerCount)
		row["subContainer"] = encodeSubContainer(item.SubContainer)
		row["locationPath"] = joinBackupList(item.LocationPath)
		if err := writeBackupRow(cw, row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// ImportProperty restores a property's record set from a backup, fully
// replacing the existing locations and items in one transaction; merging
// would leave orphaned duplicates behind. Record ids come from the backup,
// property ownership is forced to the target property.
func ImportProperty(ctx context.Context, db *sql.DB, propertyID string, r io.Reader) error {
	cr := csv.NewReader(r)
	header, err := cr.Read()
	if err != nil {
		return fmt.Errorf("reading backup header: %w", err)
	}
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[name] = i
	}
	for _, name := range backupHeader {
		if _, ok := col[name]; !ok {
			return fmt.Errorf("backup missing column %q", name)
		}
	}

	var locations []model.Location
	var items []model.Item
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("reading backup row: %w", err)
		}
		field := func(name string) string { return record[col[name]] }

		switch kind := field("kind"); kind {
		case "location":
			if !model.ValidLocationType(field("type")) {
				return fmt.Errorf("location %s: unknown type %q", field("id"), field("type"))
			}
			if !model.ValidIcon(field("icon")) {
				return fmt.Errorf("location %s: unknown icon %q", field("id"), field("icon"))
			}
			locations = append(locations, model.Location{
				ID:         field("id"),
				PropertyID: propertyID,
				Name:       field("name"),
				ParentID:   refFromString(field("parentId")),
				Type:       field("type"),
				Icon:       field("icon"),
			})
		case "item":
			item := model.Item{
				ID:           field("id"),
				PropertyID:   propertyID,
				LocationID:   field("locationId"),
				ParentID:     refFromString(field("parentId")),
				Name:         field("name"),
				Description:  field("description"),
				ImageURL:     field("imageUrl"),
				ImageHint:    field("imageHint"),
				Tags:         splitBackupList(field("tags")),
				LocationPath: splitBackupList(field("locationPath")),
			}
			if item.Quantity, err = strconv.Atoi(field("quantity")); err != nil {
				return fmt.Errorf("item %s: bad quantity: %w", item.ID, err)
			}
			if item.IsContainer, err = strconv.ParseBool(field("isContainer")); err != nil {
				return fmt.Errorf("item %s: bad isContainer: %w", item.ID, err)
			}
			if item.DoorCount, err = strconv.Atoi(field("doorCount")); err != nil {
				return fmt.Errorf("item %s: bad doorCount: %w", item.ID, err)
			}
			if item.DrawerCount, err = strconv.Atoi(field("drawerCount")); err != nil {
				return fmt.Errorf("item %s: bad drawerCount: %w", item.ID, err)
			}
			if item.SubContainer, err = decodeSubContainer(field("subContainer")); err != nil {
				return fmt.Errorf("item %s: %w", item.ID, err)
			}
			items = append(items, item)
		default:
			return fmt.Errorf("unknown backup record kind %q", kind)
		}
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM items WHERE property_id = ?`, propertyID); err != nil {
		return fmt.Errorf("clearing items: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM locations WHERE property_id = ?`, propertyID); err != nil {
		return fmt.Errorf("clearing locations: %w", err)
	}

	for _, loc := range locations {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO locations (id, property_id, name, parent_id, type, icon) VALUES (?, ?, ?, ?, ?, ?)`,
			loc.ID, loc.PropertyID, loc.Name, nullableRef(loc.ParentID), loc.Type, loc.Icon,
		)
		if err != nil {
			return fmt.Errorf("restoring location %s: %w", loc.ID, err)
		}
	}
	for _, item := range items {
		subType, subNumber := subContainerColumns(item.SubContainer)
		_, err := tx.ExecContext(ctx,
			`INSERT INTO items (id, property_id, location_id, parent_id, name, description, quantity, tags,
			                    image_url, image_hint, is_container, door_count, drawer_count,
			                    sub_type, sub_number, location_path)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			item.ID, item.PropertyID, item.LocationID, nullableRef(item.ParentID), item.Name, item.Description,
			item.Quantity, encodeList(item.Tags), item.ImageURL, item.ImageHint, item.IsContainer,
			item.DoorCount, item.DrawerCount, subType, subNumber, encodeList(item.LocationPath),
		)
		if err != nil {
			return fmt.Errorf("restoring item %s: %w", item.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing restore: %w", err)
	}
	return nil
}

func emptyBackupRow() map[string]string {
	return make(map[string]string, len(backupHeader))
}

func writeBackupRow(cw *csv.Writer, row map[string]string) error {
	record := make([]string, len(backupHeader))
	for i, name := range backupHeader {
		record[i] = row[name]
	}
	if err := cw.Write(record); err != nil {
		return fmt.Errorf("writing backup row: %w", err)
	}
	return nil
}

func refString(id *string) string {
	if id == nil {
		return ""
	}
	return *id
}

func refFromString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// joinBackupList serializes an ordered list field, escaping the list
// separator and the escape character themselves so that values containing
// either (tag text, location names) survive the round trip byte for byte.
func joinBackupList(values []string) string {
	var b strings.Builder
	for i, value := range values {
		if i > 0 {
			b.WriteByte(backupListSep)
		}
		for _, r := range value {
			if r == backupListSep || r == backupListEscape {
				b.WriteByte(backupListEscape)
			}
			b.WriteRune(r)
		}
	}
	return b.String()
}

// splitBackupList reverses joinBackupList.
func splitBackupList(s string) []string {
	if s == "" {
		return nil
	}
	var values []string
	var cur strings.Builder
	escaped := false
	for _, r := range s {
		switch {
		case escaped:
			cur.WriteRune(r)
			escaped = false
		case r == backupListEscape:
			escaped = true
		case r == backupListSep:
			values = append(values, cur.String())
			cur.Reset()
		default:
			cur.WriteRune(r)
		}
	}
	values = append(values, cur.String())
	return values
}

func encodeSubContainer(sc *model.SubContainer) string {
	if sc == nil {
		return ""
	}
	return fmt.Sprintf("%s:%d", sc.Type, sc.Number)
}

func decodeSubContainer(s string) (*model.SubContainer, error) {
	if s == "" {
		return nil, nil
	}
	subType, numberStr, ok := strings.Cut(s, ":")
	if !ok || !model.ValidSubContainerType(subType) {
		return nil, fmt.Errorf("bad subContainer %q", s)
	}
	number, err := strconv.Atoi(numberStr)
	if err != nil {
		return nil, fmt.Errorf("bad subContainer number %q", numberStr)
	}
	return &model.SubContainer{Type: subType, Number: number}, nil
}
