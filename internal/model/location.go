package model

import "time"

// Location is a physical space inside a property: a room, or a nested
// space inside another location (shelf, drawer, box). ParentID is nil for
// root-level locations.
type Location struct {
	ID         string    `json:"id"`
	PropertyID string    `json:"propertyId"`
	Name       string    `json:"name"`
	ParentID   *string   `json:"parentId"`
	Type       string    `json:"type"`
	Icon       string    `json:"icon"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// Location types. Informational only, the hierarchy does not depend on them.
const (
	LocationTypeRoom    = "room"
	LocationTypeCabinet = "cabinet"
	LocationTypeShelf   = "shelf"
	LocationTypeDrawer  = "drawer"
	LocationTypeBox     = "box"
	LocationTypeBin     = "bin"
	LocationTypeOther   = "other"
)

var locationTypes = map[string]bool{
	LocationTypeRoom:    true,
	LocationTypeCabinet: true,
	LocationTypeShelf:   true,
	LocationTypeDrawer:  true,
	LocationTypeBox:     true,
	LocationTypeBin:     true,
	LocationTypeOther:   true,
}

// ValidLocationType reports whether t is a known location type.
func ValidLocationType(t string) bool {
	return locationTypes[t]
}

// locationIcons is the closed set of icon keys the clients know how to
// render. Unknown keys are rejected at the boundary instead of silently
// rendering nothing.
var locationIcons = map[string]bool{
	"Box":              true,
	"Library":          true,
	"Drill":            true,
	"Wine":             true,
	"FolderKanban":     true,
	"Home":             true,
	"DoorOpen":         true,
	"Warehouse":        true,
	"Archive":          true,
	"BookOpen":         true,
	"FileText":         true,
	"GanttChartSquare": true,
}

// ValidIcon reports whether icon is a known icon key.
func ValidIcon(icon string) bool {
	return locationIcons[icon]
}
