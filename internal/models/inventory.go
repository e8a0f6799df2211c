package models

// InventoryItem is one physical rentable copy of a film at a store.
// Whether it is checked out is derived from the rentals table, never
// stored here, so the count cannot drift.
type InventoryItem struct {
	ID      int `json:"inventory_id"`
	FilmID  int `json:"film_id"`
	StoreID int `json:"store_id"`
}

type Store struct {
	ID   int    `json:"store_id"`
	Name string `json:"name"`
}

// DefaultStoreID is used when a request leaves store_id unset.
const DefaultStoreID = 1
