package model

import "time"

// Property is a top-level building (a house, an apartment). It owns a
// disjoint set of locations and items.
type Property struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address,omitempty"`
	ImageURL  string    `json:"imageUrl,omitempty"`
	ImageHint string    `json:"imageHint,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}
