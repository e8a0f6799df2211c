package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"video-backend/internal/apperrors"
	"video-backend/internal/models"
)

type CustomerRepository struct {
	DB *pgxpool.Pool
}

func NewCustomerRepository(db *pgxpool.Pool) *CustomerRepository {
	return &CustomerRepository{DB: db}
}

const customerColumns = `customer_id, first_name, last_name, email, phone, address, active, created_at, updated_at`

func scanCustomer(row pgx.Row) (*models.Customer, error) {
	c := &models.Customer{}
	err := row.Scan(
		&c.ID,
		&c.FirstName,
		&c.LastName,
		&c.Email,
		&c.Phone,
		&c.Address,
		&c.Active,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// List returns one page of customers ordered by last name.
func (r *CustomerRepository) List(ctx context.Context, page, limit int) ([]*models.Customer, int, error) {
	var total int
	if err := r.DB.QueryRow(ctx, "SELECT COUNT(*) FROM customers").Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count customers: %w", err)
	}

	rows, err := r.DB.Query(ctx, `
		SELECT `+customerColumns+`
		FROM customers
		ORDER BY last_name, first_name
		LIMIT $1 OFFSET $2
	`, limit, (page-1)*limit)
	if err != nil {
		return nil, 0, fmt.Errorf("list customers: %w", err)
	}
	defer rows.Close()

	customers, err := collectCustomers(rows)
	if err != nil {
		return nil, 0, err
	}
	return customers, total, nil
}

// Search finds customers by name or email.
func (r *CustomerRepository) Search(ctx context.Context, term string) ([]*models.Customer, error) {
	pattern := "%" + term + "%"
	rows, err := r.DB.Query(ctx, `
		SELECT `+customerColumns+`
		FROM customers
		WHERE first_name ILIKE $1 OR last_name ILIKE $1 OR email ILIKE $1
		ORDER BY last_name, first_name
	`, pattern)
	if err != nil {
		return nil, fmt.Errorf("search customers: %w", err)
	}
	defer rows.Close()

	return collectCustomers(rows)
}

func (r *CustomerRepository) Get(ctx context.Context, customerID int) (*models.Customer, error) {
	c, err := scanCustomer(r.DB.QueryRow(ctx,
		"SELECT "+customerColumns+" FROM customers WHERE customer_id = $1", customerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("customer", int64(customerID))
		}
		return nil, fmt.Errorf("load customer: %w", err)
	}
	return c, nil
}

func (r *CustomerRepository) Create(ctx context.Context, req *models.CreateCustomerRequest) (*models.Customer, error) {
	c := &models.Customer{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
		Address:   req.Address,
		Active:    true,
	}
	err := r.DB.QueryRow(ctx, `
		INSERT INTO customers (first_name, last_name, email, phone, address)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING customer_id, created_at, updated_at
	`, req.FirstName, req.LastName, req.Email, req.Phone, req.Address,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, apperrors.Conflict("email already registered", "customer", 0)
		}
		return nil, fmt.Errorf("insert customer: %w", err)
	}
	return c, nil
}

// Update applies only the fields present in the request.
func (r *CustomerRepository) Update(ctx context.Context, customerID int, req *models.UpdateCustomerRequest) (*models.Customer, error) {
	c, err := scanCustomer(r.DB.QueryRow(ctx, `
		UPDATE customers SET
			first_name = COALESCE($2, first_name),
			last_name  = COALESCE($3, last_name),
			email      = COALESCE($4, email),
			phone      = COALESCE($5, phone),
			address    = COALESCE($6, address),
			active     = COALESCE($7, active),
			updated_at = NOW()
		WHERE customer_id = $1
		RETURNING `+customerColumns+`
	`, customerID, req.FirstName, req.LastName, req.Email, req.Phone, req.Address, req.Active))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("customer", int64(customerID))
		}
		if isUniqueViolation(err) {
			return nil, apperrors.Conflict("email already registered", "customer", int64(customerID))
		}
		return nil, fmt.Errorf("update customer: %w", err)
	}
	return c, nil
}

// Delete removes the customer row. Rental and payment history cascades with
// it; callers must reject customers that still hold an active rental.
func (r *CustomerRepository) Delete(ctx context.Context, customerID int) error {
	tag, err := r.DB.Exec(ctx, "DELETE FROM customers WHERE customer_id = $1", customerID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return apperrors.InvalidState("customer still has referencing records", "customer", int64(customerID))
		}
		return fmt.Errorf("delete customer: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NotFound("customer", int64(customerID))
	}
	return nil
}

func collectCustomers(rows pgx.Rows) ([]*models.Customer, error) {
	var customers []*models.Customer
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, err
		}
		customers = append(customers, c)
	}
	return customers, rows.Err()
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23503"
}
