package models

import "time"

type Customer struct {
	ID        int       `json:"customer_id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CustomerWithRentals is the single-customer view with rental history.
type CustomerWithRentals struct {
	Customer
	Rentals []*RentalWithFilm `json:"rentals"`
}

// CreateCustomerRequest represents the request body for creating a customer
type CreateCustomerRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
}

// UpdateCustomerRequest represents the request body for updating a customer.
// Nil pointers leave the existing value untouched.
type UpdateCustomerRequest struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Email     *string `json:"email"`
	Phone     *string `json:"phone"`
	Address   *string `json:"address"`
	Active    *bool   `json:"active"`
}
