package model

import (
	"fmt"
	"strings"
	"time"
)

// SubContainer addresses a numbered door or drawer slot inside a container
// item.
type SubContainer struct {
	Type   string `json:"type"`
	Number int    `json:"number"`
}

// Sub-compartment types.
const (
	SubContainerDoor   = "door"
	SubContainerDrawer = "drawer"
)

// ValidSubContainerType reports whether t is a known sub-compartment type.
func ValidSubContainerType(t string) bool {
	return t == SubContainerDoor || t == SubContainerDrawer
}

// Label returns the display label for the sub-compartment, e.g. "Door 2".
func (sc SubContainer) Label() string {
	switch sc.Type {
	case SubContainerDoor:
		return fmt.Sprintf("Door %d", sc.Number)
	case SubContainerDrawer:
		return fmt.Sprintf("Drawer %d", sc.Number)
	}
	return fmt.Sprintf("%s %d", sc.Type, sc.Number)
}

// Item is a physical object, or a container holding other items.
// LocationID is the room-level location the item lives in and is always
// set. ParentID, if set, references a container item in the same location.
// LocationPath is a denormalized display cache, recomputed on every save.
type Item struct {
	ID           string        `json:"id"`
	PropertyID   string        `json:"propertyId"`
	LocationID   string        `json:"locationId"`
	ParentID     *string       `json:"parentId"`
	Name         string        `json:"name"`
	Description  string        `json:"description,omitempty"`
	Quantity     int           `json:"quantity"`
	Tags         []string      `json:"tags"`
	ImageURL     string        `json:"imageUrl,omitempty"`
	ImageHint    string        `json:"imageHint,omitempty"`
	ImageMime    string        `json:"imageMime,omitempty"`
	IsContainer  bool          `json:"isContainer"`
	DoorCount    int           `json:"doorCount"`
	DrawerCount  int           `json:"drawerCount"`
	SubContainer *SubContainer `json:"subContainer"`
	LocationPath []string      `json:"locationPath"`
	CreatedAt    time.Time     `json:"createdAt"`
	UpdatedAt    time.Time     `json:"updatedAt"`
}

// NormalizeTags trims, lower-cases and de-duplicates tags, preserving
// first-seen order. Empty tags are dropped.
func NormalizeTags(tags []string) []string {
	seen := make(map[string]bool, len(tags))
	var out []string
	for _, tag := range tags {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		out = append(out, tag)
	}
	return out
}
