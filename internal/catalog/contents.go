package catalog

import (
	"sort"

	"github.com/marciomedrado/casa/internal/model"
)

// CompartmentGroup is one door or drawer of a container together with the
// items placed in it.
type CompartmentGroup struct {
	Number int          `json:"number"`
	Label  string       `json:"label"`
	Items  []model.Item `json:"items"`
}

// Contents is a container's inventory grouped for display: per-door and
// per-drawer groups in numeric order, then items not assigned to any
// compartment.
type Contents struct {
	Doors   []CompartmentGroup `json:"doors"`
	Drawers []CompartmentGroup `json:"drawers"`
	Loose   []model.Item       `json:"loose"`
}

// ContainerContents groups the direct children of a container by
// sub-compartment. Items whose compartment selection does not match the
// container (stale counts after an edit) fall back to the loose group.
func (ix *Index) ContainerContents(containerID string) Contents {
	doors := make(map[int][]model.Item)
	drawers := make(map[int][]model.Item)
	var contents Contents

	for _, child := range ix.itemChildren[containerID] {
		switch {
		case child.SubContainer != nil && child.SubContainer.Type == model.SubContainerDoor:
			n := child.SubContainer.Number
			doors[n] = append(doors[n], *child)
		case child.SubContainer != nil && child.SubContainer.Type == model.SubContainerDrawer:
			n := child.SubContainer.Number
			drawers[n] = append(drawers[n], *child)
		default:
			contents.Loose = append(contents.Loose, *child)
		}
	}

	contents.Doors = sortedGroups(doors, model.SubContainerDoor)
	contents.Drawers = sortedGroups(drawers, model.SubContainerDrawer)
	return contents
}

func sortedGroups(byNumber map[int][]model.Item, subType string) []CompartmentGroup {
	numbers := make([]int, 0, len(byNumber))
	for n := range byNumber {
		numbers = append(numbers, n)
	}
	sort.Ints(numbers)

	groups := make([]CompartmentGroup, 0, len(numbers))
	for _, n := range numbers {
		groups = append(groups, CompartmentGroup{
			Number: n,
			Label:  model.SubContainer{Type: subType, Number: n}.Label(),
			Items:  byNumber[n],
		})
	}
	return groups
}
