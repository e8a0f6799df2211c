package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"video-backend/internal/apperrors"
	"video-backend/internal/models"
)

// fakeDirectory keeps customers in memory behind the CustomerDirectory
// interface.
type fakeDirectory struct {
	customers map[int]*models.Customer
	nextID    int
}

func newFakeDirectory() *fakeDirectory {
	return &fakeDirectory{customers: make(map[int]*models.Customer), nextID: 1}
}

func (f *fakeDirectory) List(ctx context.Context, page, limit int) ([]*models.Customer, int, error) {
	var out []*models.Customer
	for _, c := range f.customers {
		out = append(out, c)
	}
	return out, len(out), nil
}

func (f *fakeDirectory) Search(ctx context.Context, term string) ([]*models.Customer, error) {
	return nil, nil
}

func (f *fakeDirectory) Get(ctx context.Context, customerID int) (*models.Customer, error) {
	c, ok := f.customers[customerID]
	if !ok {
		return nil, apperrors.NotFound("customer", int64(customerID))
	}
	return c, nil
}

func (f *fakeDirectory) Create(ctx context.Context, req *models.CreateCustomerRequest) (*models.Customer, error) {
	for _, c := range f.customers {
		if c.Email == req.Email {
			return nil, apperrors.Conflict("email already registered", "customer", 0)
		}
	}
	c := &models.Customer{
		ID:        f.nextID,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
		Address:   req.Address,
		Active:    true,
	}
	f.customers[c.ID] = c
	f.nextID++
	return c, nil
}

func (f *fakeDirectory) Update(ctx context.Context, customerID int, req *models.UpdateCustomerRequest) (*models.Customer, error) {
	c, ok := f.customers[customerID]
	if !ok {
		return nil, apperrors.NotFound("customer", int64(customerID))
	}
	if req.Email != nil {
		c.Email = *req.Email
	}
	if req.FirstName != nil {
		c.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		c.LastName = *req.LastName
	}
	if req.Active != nil {
		c.Active = *req.Active
	}
	return c, nil
}

func (f *fakeDirectory) Delete(ctx context.Context, customerID int) error {
	if _, ok := f.customers[customerID]; !ok {
		return apperrors.NotFound("customer", int64(customerID))
	}
	delete(f.customers, customerID)
	return nil
}

func newTestCustomerService(t *testing.T) (*CustomerService, *fakeDirectory, *fakeLedger) {
	t.Helper()
	dir := newFakeDirectory()
	ledger := newFakeLedger()
	return NewCustomerService(dir, ledger), dir, ledger
}

func TestCreateCustomerValidation(t *testing.T) {
	svc, _, _ := newTestCustomerService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, &models.CreateCustomerRequest{LastName: "Doe", Email: "a@b.c"})
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))

	_, err = svc.Create(ctx, &models.CreateCustomerRequest{FirstName: "Pat", Email: "a@b.c"})
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))

	_, err = svc.Create(ctx, &models.CreateCustomerRequest{FirstName: "Pat", LastName: "Doe", Email: "nope"})
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
}

func TestCreateCustomerNormalizesEmail(t *testing.T) {
	svc, _, _ := newTestCustomerService(t)

	c, err := svc.Create(context.Background(), &models.CreateCustomerRequest{
		FirstName: "Pat", LastName: "Doe", Email: " Pat@Example.COM ",
	})
	require.NoError(t, err)
	assert.Equal(t, "pat@example.com", c.Email)
}

func TestCreateCustomerDuplicateEmailConflicts(t *testing.T) {
	svc, _, _ := newTestCustomerService(t)
	ctx := context.Background()

	req := &models.CreateCustomerRequest{FirstName: "Pat", LastName: "Doe", Email: "pat@example.com"}
	_, err := svc.Create(ctx, req)
	require.NoError(t, err)

	_, err = svc.Create(ctx, req)
	assert.True(t, apperrors.IsKind(err, apperrors.KindConflict))
}

func TestDeleteCustomerBlockedByActiveRental(t *testing.T) {
	svc, dir, ledger := newTestCustomerService(t)
	ctx := context.Background()

	customer, err := svc.Create(ctx, &models.CreateCustomerRequest{
		FirstName: "Pat", LastName: "Doe", Email: "pat@example.com",
	})
	require.NoError(t, err)

	ledger.addFilm(1, 1, 2.99)
	rental, _, err := ledger.RentFilm(ctx, customer.ID, 1, models.DefaultStoreID, 1)
	require.NoError(t, err)

	err = svc.Delete(ctx, customer.ID)
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindInvalidState))

	// once the copy comes back, deletion goes through
	_, _, _, err = ledger.ReturnRental(ctx, rental.ID)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, customer.ID))
	_, ok := dir.customers[customer.ID]
	assert.False(t, ok)
}

func TestDeleteUnknownCustomerIsNotFound(t *testing.T) {
	svc, _, _ := newTestCustomerService(t)

	err := svc.Delete(context.Background(), 999)
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
}

func TestGetCustomerIncludesHistory(t *testing.T) {
	svc, _, ledger := newTestCustomerService(t)
	ctx := context.Background()

	customer, err := svc.Create(ctx, &models.CreateCustomerRequest{
		FirstName: "Pat", LastName: "Doe", Email: "pat@example.com",
	})
	require.NoError(t, err)

	ledger.addFilm(1, 2, 2.99)
	_, _, err = ledger.RentFilm(ctx, customer.ID, 1, models.DefaultStoreID, 1)
	require.NoError(t, err)

	got, err := svc.Get(ctx, customer.ID)
	require.NoError(t, err)
	assert.Len(t, got.Rentals, 1)
}

func TestUpdateCustomerValidatesFields(t *testing.T) {
	svc, _, _ := newTestCustomerService(t)
	ctx := context.Background()

	customer, err := svc.Create(ctx, &models.CreateCustomerRequest{
		FirstName: "Pat", LastName: "Doe", Email: "pat@example.com",
	})
	require.NoError(t, err)

	bad := "not-an-email"
	_, err = svc.Update(ctx, customer.ID, &models.UpdateCustomerRequest{Email: &bad})
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))

	empty := "  "
	_, err = svc.Update(ctx, customer.ID, &models.UpdateCustomerRequest{FirstName: &empty})
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))

	newEmail := "New@Example.com"
	updated, err := svc.Update(ctx, customer.ID, &models.UpdateCustomerRequest{Email: &newEmail})
	require.NoError(t, err)
	assert.Equal(t, "new@example.com", updated.Email)
}
