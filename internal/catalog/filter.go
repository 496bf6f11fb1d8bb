package catalog

import (
	"strings"

	"github.com/marciomedrado/casa/internal/model"
)

// FilterItems narrows items to those inside the scope (nil scope keeps
// everything) and, independently, those matching the free-text query
// (case-insensitive substring over name, description and tags). Scope and
// query always compose: an active scope is never widened by searching.
// Output order preserves input order.
func FilterItems(items []model.Item, scope map[string]bool, query string) []model.Item {
	query = strings.ToLower(strings.TrimSpace(query))

	var out []model.Item
	for _, item := range items {
		if scope != nil && !scope[item.LocationID] {
			continue
		}
		if query != "" && !matchesQuery(item, query) {
			continue
		}
		out = append(out, item)
	}
	return out
}

func matchesQuery(item model.Item, query string) bool {
	if strings.Contains(strings.ToLower(item.Name), query) {
		return true
	}
	if strings.Contains(strings.ToLower(item.Description), query) {
		return true
	}
	for _, tag := range item.Tags {
		if strings.Contains(strings.ToLower(tag), query) {
			return true
		}
	}
	return false
}
