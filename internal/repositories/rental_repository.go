package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"video-backend/internal/apperrors"
	"video-backend/internal/models"
)

type RentalRepository struct {
	DB *pgxpool.Pool
}

func NewRentalRepository(db *pgxpool.Pool) *RentalRepository {
	return &RentalRepository{DB: db}
}

// RentFilm performs the checkout as one transaction: lock a free copy,
// insert the rental, insert the payment. Committing the transaction is the
// claim; any failure rolls back all three steps so a partial rental/payment
// pair can never exist.
//
// Two concurrent calls racing for the last copy cannot both succeed: the
// free-copy select takes a row lock, and SKIP LOCKED makes the loser see
// no rows instead of blocking on the winner's lock.
func (r *RentalRepository) RentFilm(ctx context.Context, customerID, filmID, storeID, staffID int) (*models.Rental, *models.Payment, error) {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("begin rent transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	// Rate is read inside the transaction so the payment records the price
	// in effect at rent time.
	var rentalRate float64
	err = tx.QueryRow(ctx, "SELECT rental_rate FROM films WHERE film_id = $1", filmID).Scan(&rentalRate)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, apperrors.NotFound("film", int64(filmID))
		}
		return nil, nil, fmt.Errorf("load film rate: %w", err)
	}

	var totalCopies int
	err = tx.QueryRow(ctx,
		"SELECT COUNT(*) FROM inventory WHERE film_id = $1 AND store_id = $2",
		filmID, storeID,
	).Scan(&totalCopies)
	if err != nil {
		return nil, nil, fmt.Errorf("count copies: %w", err)
	}
	if totalCopies == 0 {
		return nil, nil, apperrors.NotFound("film", int64(filmID))
	}

	// Find-and-claim in one statement. Lowest id first keeps copy selection
	// deterministic.
	var inventoryID int
	err = tx.QueryRow(ctx, `
		SELECT i.inventory_id
		FROM inventory i
		WHERE i.film_id = $1 AND i.store_id = $2
		  AND NOT EXISTS (
			SELECT 1 FROM rentals r
			WHERE r.inventory_id = i.inventory_id AND r.return_date IS NULL
		  )
		ORDER BY i.inventory_id
		FOR UPDATE OF i SKIP LOCKED
		LIMIT 1
	`, filmID, storeID).Scan(&inventoryID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, apperrors.Conflict("no copies available", "film", int64(filmID))
		}
		return nil, nil, fmt.Errorf("claim copy: %w", err)
	}

	rental := &models.Rental{
		InventoryID: inventoryID,
		CustomerID:  customerID,
		StaffID:     staffID,
	}
	err = tx.QueryRow(ctx, `
		INSERT INTO rentals (inventory_id, customer_id, staff_id)
		VALUES ($1, $2, $3)
		RETURNING rental_id, rental_date
	`, inventoryID, customerID, staffID).Scan(&rental.ID, &rental.RentalDate)
	if err != nil {
		return nil, nil, fmt.Errorf("insert rental: %w", err)
	}

	payment := &models.Payment{
		RentalID:   rental.ID,
		CustomerID: customerID,
		StaffID:    staffID,
		Amount:     rentalRate,
	}
	err = tx.QueryRow(ctx, `
		INSERT INTO payments (rental_id, customer_id, staff_id, amount)
		VALUES ($1, $2, $3, $4)
		RETURNING payment_id, payment_date
	`, rental.ID, customerID, staffID, rentalRate).Scan(&payment.ID, &payment.PaymentDate)
	if err != nil {
		return nil, nil, fmt.Errorf("insert payment: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, nil, fmt.Errorf("commit rent transaction: %w", err)
	}
	return rental, payment, nil
}

// ReturnRental sets return_date on an active rental and thereby releases
// the copy; both facts live in the same row, so they cannot disagree. The
// rental row is locked so a concurrent return and re-rent of the same copy
// serialize. Returns the updated rental plus the film/store the copy
// belongs to, for cache invalidation and availability broadcasts.
func (r *RentalRepository) ReturnRental(ctx context.Context, rentalID int) (*models.Rental, int, int, error) {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("begin return transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	rental := &models.Rental{}
	var filmID, storeID int
	err = tx.QueryRow(ctx, `
		SELECT r.rental_id, r.inventory_id, r.customer_id, r.staff_id,
		       r.rental_date, r.return_date, i.film_id, i.store_id
		FROM rentals r
		JOIN inventory i ON r.inventory_id = i.inventory_id
		WHERE r.rental_id = $1
		FOR UPDATE OF r
	`, rentalID).Scan(
		&rental.ID,
		&rental.InventoryID,
		&rental.CustomerID,
		&rental.StaffID,
		&rental.RentalDate,
		&rental.ReturnDate,
		&filmID,
		&storeID,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, 0, 0, apperrors.NotFound("rental", int64(rentalID))
		}
		return nil, 0, 0, fmt.Errorf("load rental: %w", err)
	}

	// RETURNED is terminal: a set return_date is never cleared or changed.
	if rental.ReturnDate != nil {
		return nil, 0, 0, apperrors.InvalidState("film already returned", "rental", int64(rentalID))
	}

	err = tx.QueryRow(ctx, `
		UPDATE rentals SET return_date = NOW()
		WHERE rental_id = $1
		RETURNING return_date
	`, rentalID).Scan(&rental.ReturnDate)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("set return date: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, 0, 0, fmt.Errorf("commit return transaction: %w", err)
	}
	return rental, filmID, storeID, nil
}

func (r *RentalRepository) Get(ctx context.Context, rentalID int) (*models.RentalWithFilm, error) {
	rental := &models.RentalWithFilm{}
	err := r.DB.QueryRow(ctx, `
		SELECT r.rental_id, r.inventory_id, r.customer_id, r.staff_id,
		       r.rental_date, r.return_date, f.film_id, f.title, f.rental_rate
		FROM rentals r
		JOIN inventory i ON r.inventory_id = i.inventory_id
		JOIN films f ON i.film_id = f.film_id
		WHERE r.rental_id = $1
	`, rentalID).Scan(
		&rental.ID,
		&rental.InventoryID,
		&rental.CustomerID,
		&rental.StaffID,
		&rental.RentalDate,
		&rental.ReturnDate,
		&rental.FilmID,
		&rental.Title,
		&rental.RentalRate,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("rental", int64(rentalID))
		}
		return nil, fmt.Errorf("load rental: %w", err)
	}
	return rental, nil
}

// Receipt loads everything the printed receipt needs in one query.
func (r *RentalRepository) Receipt(ctx context.Context, rentalID int) (*models.RentalReceipt, error) {
	receipt := &models.RentalReceipt{}
	err := r.DB.QueryRow(ctx, `
		SELECT r.rental_id, r.inventory_id, r.customer_id, r.staff_id,
		       r.rental_date, r.return_date,
		       f.title, c.first_name || ' ' || c.last_name, c.email,
		       s.name, p.amount, p.payment_id
		FROM rentals r
		JOIN inventory i ON r.inventory_id = i.inventory_id
		JOIN films f ON i.film_id = f.film_id
		JOIN stores s ON i.store_id = s.store_id
		JOIN customers c ON r.customer_id = c.customer_id
		JOIN payments p ON p.rental_id = r.rental_id
		WHERE r.rental_id = $1
	`, rentalID).Scan(
		&receipt.ID,
		&receipt.InventoryID,
		&receipt.CustomerID,
		&receipt.StaffID,
		&receipt.RentalDate,
		&receipt.ReturnDate,
		&receipt.FilmTitle,
		&receipt.CustomerName,
		&receipt.CustomerEmail,
		&receipt.StoreName,
		&receipt.Amount,
		&receipt.PaymentID,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("rental", int64(rentalID))
		}
		return nil, fmt.Errorf("load receipt: %w", err)
	}
	return receipt, nil
}

// ListByCustomer returns the customer's rental history, newest first.
// status filters to "active" or "returned"; empty means both.
func (r *RentalRepository) ListByCustomer(ctx context.Context, customerID int, status string) ([]*models.RentalWithFilm, error) {
	query := `
		SELECT r.rental_id, r.inventory_id, r.customer_id, r.staff_id,
		       r.rental_date, r.return_date, f.film_id, f.title, f.rental_rate
		FROM rentals r
		JOIN inventory i ON r.inventory_id = i.inventory_id
		JOIN films f ON i.film_id = f.film_id
		WHERE r.customer_id = $1
	`
	switch status {
	case "active":
		query += " AND r.return_date IS NULL"
	case "returned":
		query += " AND r.return_date IS NOT NULL"
	}
	query += " ORDER BY r.rental_date DESC"

	rows, err := r.DB.Query(ctx, query, customerID)
	if err != nil {
		return nil, fmt.Errorf("list rentals: %w", err)
	}
	defer rows.Close()

	var rentals []*models.RentalWithFilm
	for rows.Next() {
		rental := &models.RentalWithFilm{}
		err := rows.Scan(
			&rental.ID,
			&rental.InventoryID,
			&rental.CustomerID,
			&rental.StaffID,
			&rental.RentalDate,
			&rental.ReturnDate,
			&rental.FilmID,
			&rental.Title,
			&rental.RentalRate,
		)
		if err != nil {
			return nil, err
		}
		rentals = append(rentals, rental)
	}
	return rentals, rows.Err()
}

// CountActiveByCustomer backs the customer deletion guard.
func (r *RentalRepository) CountActiveByCustomer(ctx context.Context, customerID int) (int, error) {
	var count int
	err := r.DB.QueryRow(ctx,
		"SELECT COUNT(*) FROM rentals WHERE customer_id = $1 AND return_date IS NULL",
		customerID,
	).Scan(&count)
	return count, err
}
