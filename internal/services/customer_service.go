package services

import (
	"context"
	"strings"

	"video-backend/internal/apperrors"
	"video-backend/internal/models"
)

// CustomerDirectory is the slice of the customer repository the service needs.
type CustomerDirectory interface {
	List(ctx context.Context, page, limit int) ([]*models.Customer, int, error)
	Search(ctx context.Context, term string) ([]*models.Customer, error)
	Get(ctx context.Context, customerID int) (*models.Customer, error)
	Create(ctx context.Context, req *models.CreateCustomerRequest) (*models.Customer, error)
	Update(ctx context.Context, customerID int, req *models.UpdateCustomerRequest) (*models.Customer, error)
	Delete(ctx context.Context, customerID int) error
}

// RentalLedger is what the service needs from the rental repository to
// enforce the deletion guard and build history views.
type RentalLedger interface {
	ListByCustomer(ctx context.Context, customerID int, status string) ([]*models.RentalWithFilm, error)
	CountActiveByCustomer(ctx context.Context, customerID int) (int, error)
}

type CustomerService struct {
	Customers CustomerDirectory
	Rentals   RentalLedger
}

func NewCustomerService(customers CustomerDirectory, rentals RentalLedger) *CustomerService {
	return &CustomerService{Customers: customers, Rentals: rentals}
}

func (s *CustomerService) List(ctx context.Context, page, limit int) ([]*models.Customer, int, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return s.Customers.List(ctx, page, limit)
}

func (s *CustomerService) Search(ctx context.Context, term string) ([]*models.Customer, error) {
	if strings.TrimSpace(term) == "" {
		return nil, apperrors.Validation("search term is required")
	}
	return s.Customers.Search(ctx, term)
}

// Get returns the customer with their full rental history.
func (s *CustomerService) Get(ctx context.Context, customerID int) (*models.CustomerWithRentals, error) {
	customer, err := s.Customers.Get(ctx, customerID)
	if err != nil {
		return nil, err
	}
	rentals, err := s.Rentals.ListByCustomer(ctx, customerID, "")
	if err != nil {
		return nil, err
	}
	return &models.CustomerWithRentals{Customer: *customer, Rentals: rentals}, nil
}

func (s *CustomerService) Create(ctx context.Context, req *models.CreateCustomerRequest) (*models.Customer, error) {
	if err := validateCustomer(req.FirstName, req.LastName, req.Email); err != nil {
		return nil, err
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	return s.Customers.Create(ctx, req)
}

func (s *CustomerService) Update(ctx context.Context, customerID int, req *models.UpdateCustomerRequest) (*models.Customer, error) {
	if req.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*req.Email))
		if !strings.Contains(email, "@") {
			return nil, apperrors.Validation("email is invalid")
		}
		req.Email = &email
	}
	if req.FirstName != nil && strings.TrimSpace(*req.FirstName) == "" {
		return nil, apperrors.Validation("first_name must not be empty")
	}
	if req.LastName != nil && strings.TrimSpace(*req.LastName) == "" {
		return nil, apperrors.Validation("last_name must not be empty")
	}
	return s.Customers.Update(ctx, customerID, req)
}

// Delete removes a customer. A customer holding copies cannot be deleted
// until every rental is returned.
func (s *CustomerService) Delete(ctx context.Context, customerID int) error {
	if _, err := s.Customers.Get(ctx, customerID); err != nil {
		return err
	}
	active, err := s.Rentals.CountActiveByCustomer(ctx, customerID)
	if err != nil {
		return err
	}
	if active > 0 {
		return apperrors.InvalidState("customer has active rentals", "customer", int64(customerID))
	}
	return s.Customers.Delete(ctx, customerID)
}

func validateCustomer(firstName, lastName, email string) error {
	if strings.TrimSpace(firstName) == "" {
		return apperrors.Validation("first_name is required")
	}
	if strings.TrimSpace(lastName) == "" {
		return apperrors.Validation("last_name is required")
	}
	if !strings.Contains(email, "@") {
		return apperrors.Validation("email is invalid")
	}
	return nil
}
