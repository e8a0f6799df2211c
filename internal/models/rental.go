package models

import "time"

// Rental tracks one copy checked out by one customer. A rental is active
// while ReturnDate is nil; setting ReturnDate is its only mutation.
type Rental struct {
	ID          int        `json:"rental_id"`
	InventoryID int        `json:"inventory_id"`
	CustomerID  int        `json:"customer_id"`
	StaffID     int        `json:"staff_id"`
	RentalDate  time.Time  `json:"rental_date"`
	ReturnDate  *time.Time `json:"return_date"`
}

// Active reports whether the copy is still out.
func (r *Rental) Active() bool {
	return r.ReturnDate == nil
}

// RentalWithFilm joins the rented film's title and rate for history views.
type RentalWithFilm struct {
	Rental
	FilmID     int     `json:"film_id"`
	Title      string  `json:"title"`
	RentalRate float64 `json:"rental_rate"`
}

// RentalReceipt carries everything the printed receipt needs.
type RentalReceipt struct {
	Rental
	FilmTitle     string  `json:"film_title"`
	CustomerName  string  `json:"customer_name"`
	CustomerEmail string  `json:"customer_email"`
	StoreName     string  `json:"store_name"`
	Amount        float64 `json:"amount"`
	PaymentID     int     `json:"payment_id"`
}

// CreateRentalRequest represents the request body for renting a film
type CreateRentalRequest struct {
	CustomerID int `json:"customer_id"`
	FilmID     int `json:"film_id"`
	StoreID    int `json:"store_id"`
}
