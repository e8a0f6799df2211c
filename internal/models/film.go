package models

import "time"

type Film struct {
	ID          int       `json:"film_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	ReleaseYear int       `json:"release_year"`
	RentalRate  float64   `json:"rental_rate"`
	Length      int       `json:"length"`
	Rating      string    `json:"rating"`
	Category    string    `json:"category"`
	RentalCount int       `json:"rental_count"`
	ImageURL    string    `json:"image_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// FilmDetails is the single-film view with actors and derived copy counts.
type FilmDetails struct {
	Film
	Actors          []*Actor `json:"actors"`
	TotalCopies     int      `json:"total_copies"`
	RentedCopies    int      `json:"rented_copies"`
	AvailableCopies int      `json:"available_copies"`
}

// CreateFilmRequest represents the request body for adding a film to the catalog
type CreateFilmRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	ReleaseYear int     `json:"release_year"`
	RentalRate  float64 `json:"rental_rate"`
	Length      int     `json:"length"`
	Rating      string  `json:"rating"`
	Category    string  `json:"category"`
}
