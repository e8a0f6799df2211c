package models

import "time"

type Actor struct {
	ID        int        `json:"actor_id"`
	FirstName string     `json:"first_name"`
	LastName  string     `json:"last_name"`
	BirthDate *time.Time `json:"birth_date,omitempty"`
	ImageURL  string     `json:"image_url,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// ActorWithRentals carries the aggregate rental count for top-actor listings.
type ActorWithRentals struct {
	Actor
	TotalRentals int `json:"total_rentals"`
}

// ActorDetails is the single-actor view with their most rented films.
type ActorDetails struct {
	Actor
	TopFilms []*Film `json:"top_films"`
}
