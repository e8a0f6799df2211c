package models

import "time"

// Payment records the rate charged when the rental was created. The amount
// is captured at rent time; later price changes never alter it.
type Payment struct {
	ID          int       `json:"payment_id"`
	RentalID    int       `json:"rental_id"`
	CustomerID  int       `json:"customer_id"`
	StaffID     int       `json:"staff_id"`
	Amount      float64   `json:"amount"`
	PaymentDate time.Time `json:"payment_date"`
}
