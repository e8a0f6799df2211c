package services

import (
	"context"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"video-backend/internal/apperrors"
	"video-backend/internal/models"
)

// fakeLedger backs the rental service with an in-memory inventory: a fixed
// number of copies per film, and rentals that hold a copy until returned.
// The mutex gives it the same claim semantics the database transaction has.
type fakeLedger struct {
	mu        sync.Mutex
	copies    map[int]int // film -> total copies
	rate      map[int]float64
	rentals   map[int]*models.Rental // rental id -> rental
	films     map[int]int            // rental id -> film id
	customers map[int]*models.Customer
	nextID    int
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{
		copies:    make(map[int]int),
		rate:      make(map[int]float64),
		rentals:   make(map[int]*models.Rental),
		films:     make(map[int]int),
		customers: make(map[int]*models.Customer),
		nextID:    1,
	}
}

func (f *fakeLedger) addFilm(filmID, copies int, rate float64) {
	f.copies[filmID] = copies
	f.rate[filmID] = rate
}

func (f *fakeLedger) addCustomer(id int) {
	f.customers[id] = &models.Customer{ID: id, FirstName: "Pat", LastName: "Doe", Active: true}
}

func (f *fakeLedger) activeCount(filmID int) int {
	n := 0
	for id, r := range f.rentals {
		if f.films[id] == filmID && r.ReturnDate == nil {
			n++
		}
	}
	return n
}

func (f *fakeLedger) RentFilm(ctx context.Context, customerID, filmID, storeID, staffID int) (*models.Rental, *models.Payment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	total, ok := f.copies[filmID]
	if !ok || total == 0 {
		return nil, nil, apperrors.NotFound("film", int64(filmID))
	}
	if f.activeCount(filmID) >= total {
		return nil, nil, apperrors.Conflict("no copies available", "film", int64(filmID))
	}

	id := f.nextID
	f.nextID++
	rental := &models.Rental{
		ID:          id,
		InventoryID: id,
		CustomerID:  customerID,
		StaffID:     staffID,
		RentalDate:  time.Now(),
	}
	f.rentals[id] = rental
	f.films[id] = filmID

	payment := &models.Payment{
		ID:          id,
		RentalID:    id,
		CustomerID:  customerID,
		Amount:      f.rate[filmID],
		PaymentDate: rental.RentalDate,
	}
	return rental, payment, nil
}

func (f *fakeLedger) ReturnRental(ctx context.Context, rentalID int) (*models.Rental, int, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	rental, ok := f.rentals[rentalID]
	if !ok {
		return nil, 0, 0, apperrors.NotFound("rental", int64(rentalID))
	}
	if rental.ReturnDate != nil {
		return nil, 0, 0, apperrors.InvalidState("film already returned", "rental", int64(rentalID))
	}
	now := time.Now()
	rental.ReturnDate = &now
	return rental, f.films[rentalID], models.DefaultStoreID, nil
}

func (f *fakeLedger) Get(ctx context.Context, rentalID int) (*models.RentalWithFilm, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rental, ok := f.rentals[rentalID]
	if !ok {
		return nil, apperrors.NotFound("rental", int64(rentalID))
	}
	return &models.RentalWithFilm{Rental: *rental, FilmID: f.films[rentalID]}, nil
}

func (f *fakeLedger) Receipt(ctx context.Context, rentalID int) (*models.RentalReceipt, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rental, ok := f.rentals[rentalID]
	if !ok {
		return nil, apperrors.NotFound("rental", int64(rentalID))
	}
	return &models.RentalReceipt{
		Rental:        *rental,
		FilmTitle:     "Some Film",
		CustomerName:  "Pat Doe",
		CustomerEmail: "pat@example.com",
		StoreName:     "Main Street Video",
		Amount:        f.rate[f.films[rentalID]],
		PaymentID:     rentalID,
	}, nil
}

func (f *fakeLedger) ListByCustomer(ctx context.Context, customerID int, status string) ([]*models.RentalWithFilm, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.RentalWithFilm
	for id, r := range f.rentals {
		if r.CustomerID != customerID {
			continue
		}
		if status == "active" && r.ReturnDate != nil {
			continue
		}
		if status == "returned" && r.ReturnDate == nil {
			continue
		}
		out = append(out, &models.RentalWithFilm{Rental: *r, FilmID: f.films[id]})
	}
	// Same ordering the repository query uses.
	sort.Slice(out, func(i, j int) bool {
		return out[i].RentalDate.After(out[j].RentalDate)
	})
	return out, nil
}

func (f *fakeLedger) CountActiveByCustomer(ctx context.Context, customerID int) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, r := range f.rentals {
		if r.CustomerID == customerID && r.ReturnDate == nil {
			n++
		}
	}
	return n, nil
}

// customerStore view of the ledger.
type fakeCustomers struct{ ledger *fakeLedger }

func (f *fakeCustomers) Get(ctx context.Context, customerID int) (*models.Customer, error) {
	f.ledger.mu.Lock()
	defer f.ledger.mu.Unlock()
	c, ok := f.ledger.customers[customerID]
	if !ok {
		return nil, apperrors.NotFound("customer", int64(customerID))
	}
	return c, nil
}

func (f *fakeLedger) CountAvailable(ctx context.Context, filmID, storeID int) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.copies[filmID] - f.activeCount(filmID), nil
}

func newTestRentalService(ledger *fakeLedger) *RentalService {
	return NewRentalService(ledger, &fakeCustomers{ledger: ledger}, ledger, nil)
}

func TestRentExhaustsCopiesThenConflicts(t *testing.T) {
	ledger := newFakeLedger()
	ledger.addFilm(1, 3, 3.99)
	ledger.addCustomer(10)
	svc := newTestRentalService(ledger)
	ctx := context.Background()

	req := &models.CreateRentalRequest{CustomerID: 10, FilmID: 1}
	for i := 0; i < 3; i++ {
		rental, payment, err := svc.Rent(ctx, req, 1)
		require.NoError(t, err)
		require.NotNil(t, rental)
		assert.Nil(t, rental.ReturnDate)
		assert.Equal(t, 3.99, payment.Amount)
	}

	_, _, err := svc.Rent(ctx, req, 1)
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindConflict))
}

func TestRentUnknownFilmIsNotFound(t *testing.T) {
	ledger := newFakeLedger()
	ledger.addCustomer(10)
	svc := newTestRentalService(ledger)

	_, _, err := svc.Rent(context.Background(), &models.CreateRentalRequest{CustomerID: 10, FilmID: 99}, 1)
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
}

func TestRentUnknownCustomerIsNotFound(t *testing.T) {
	ledger := newFakeLedger()
	ledger.addFilm(1, 1, 2.99)
	svc := newTestRentalService(ledger)

	_, _, err := svc.Rent(context.Background(), &models.CreateRentalRequest{CustomerID: 404, FilmID: 1}, 1)
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
}

func TestRentValidatesRequest(t *testing.T) {
	svc := newTestRentalService(newFakeLedger())
	ctx := context.Background()

	_, _, err := svc.Rent(ctx, &models.CreateRentalRequest{FilmID: 1}, 1)
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))

	_, _, err = svc.Rent(ctx, &models.CreateRentalRequest{CustomerID: 1}, 1)
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
}

func TestRentInactiveCustomerRejected(t *testing.T) {
	ledger := newFakeLedger()
	ledger.addFilm(1, 1, 2.99)
	ledger.addCustomer(10)
	ledger.customers[10].Active = false
	svc := newTestRentalService(ledger)

	_, _, err := svc.Rent(context.Background(), &models.CreateRentalRequest{CustomerID: 10, FilmID: 1}, 1)
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindInvalidState))
}

// The last copy can only go to one of the racing requests.
func TestConcurrentRentLastCopyExactlyOneWins(t *testing.T) {
	ledger := newFakeLedger()
	ledger.addFilm(1, 1, 1.99)
	ledger.addCustomer(10)
	ledger.addCustomer(11)
	svc := newTestRentalService(ledger)

	const attempts = 16
	var wg sync.WaitGroup
	errs := make([]error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			customer := 10 + i%2
			_, _, errs[i] = svc.Rent(context.Background(), &models.CreateRentalRequest{CustomerID: customer, FilmID: 1}, 1)
		}(i)
	}
	wg.Wait()

	successes, conflicts := 0, 0
	for _, err := range errs {
		switch {
		case err == nil:
			successes++
		case apperrors.IsKind(err, apperrors.KindConflict):
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, successes)
	assert.Equal(t, attempts-1, conflicts)
}

func TestReturnFreesCopyForNextCustomer(t *testing.T) {
	ledger := newFakeLedger()
	ledger.addFilm(1, 1, 2.99)
	ledger.addCustomer(10)
	ledger.addCustomer(11)
	svc := newTestRentalService(ledger)
	ctx := context.Background()

	rental, _, err := svc.Rent(ctx, &models.CreateRentalRequest{CustomerID: 10, FilmID: 1}, 1)
	require.NoError(t, err)

	// B cannot rent while A holds the only copy
	_, _, err = svc.Rent(ctx, &models.CreateRentalRequest{CustomerID: 11, FilmID: 1}, 1)
	assert.True(t, apperrors.IsKind(err, apperrors.KindConflict))

	returned, err := svc.Return(ctx, rental.ID)
	require.NoError(t, err)
	require.NotNil(t, returned.ReturnDate)
	assert.False(t, returned.ReturnDate.Before(returned.RentalDate))

	available, err := ledger.CountAvailable(ctx, 1, models.DefaultStoreID)
	require.NoError(t, err)
	assert.Equal(t, 1, available)

	// now B gets the copy
	_, _, err = svc.Rent(ctx, &models.CreateRentalRequest{CustomerID: 11, FilmID: 1}, 1)
	assert.NoError(t, err)
}

func TestReturnTwiceFails(t *testing.T) {
	ledger := newFakeLedger()
	ledger.addFilm(1, 2, 2.99)
	ledger.addCustomer(10)
	svc := newTestRentalService(ledger)
	ctx := context.Background()

	rental, _, err := svc.Rent(ctx, &models.CreateRentalRequest{CustomerID: 10, FilmID: 1}, 1)
	require.NoError(t, err)

	_, err = svc.Return(ctx, rental.ID)
	require.NoError(t, err)

	_, err = svc.Return(ctx, rental.ID)
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindInvalidState))

	// the double return must not free a second copy
	available, err := ledger.CountAvailable(ctx, 1, models.DefaultStoreID)
	require.NoError(t, err)
	assert.Equal(t, 2, available)
}

func TestReturnUnknownRentalIsNotFound(t *testing.T) {
	svc := newTestRentalService(newFakeLedger())

	_, err := svc.Return(context.Background(), 12345)
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
}

func TestHistoryFiltersByStatus(t *testing.T) {
	ledger := newFakeLedger()
	ledger.addFilm(1, 2, 2.99)
	ledger.addCustomer(10)
	svc := newTestRentalService(ledger)
	ctx := context.Background()

	first, _, err := svc.Rent(ctx, &models.CreateRentalRequest{CustomerID: 10, FilmID: 1}, 1)
	require.NoError(t, err)
	_, _, err = svc.Rent(ctx, &models.CreateRentalRequest{CustomerID: 10, FilmID: 1}, 1)
	require.NoError(t, err)
	_, err = svc.Return(ctx, first.ID)
	require.NoError(t, err)

	active, err := svc.History(ctx, 10, "active")
	require.NoError(t, err)
	assert.Len(t, active, 1)

	returned, err := svc.History(ctx, 10, "returned")
	require.NoError(t, err)
	assert.Len(t, returned, 1)

	all, err := svc.History(ctx, 10, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	_, err = svc.History(ctx, 10, "overdue")
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
}

func TestHistoryNewestFirst(t *testing.T) {
	ledger := newFakeLedger()
	ledger.addFilm(1, 3, 2.99)
	ledger.addCustomer(10)
	svc := newTestRentalService(ledger)
	ctx := context.Background()

	var ids []int
	for i := 0; i < 3; i++ {
		rental, _, err := svc.Rent(ctx, &models.CreateRentalRequest{CustomerID: 10, FilmID: 1}, 1)
		require.NoError(t, err)
		ids = append(ids, rental.ID)
	}

	// Spread the dates out so the order is unambiguous. The second rental is
	// the most recent, the third the oldest.
	base := time.Now()
	ledger.rentals[ids[0]].RentalDate = base.Add(-time.Hour)
	ledger.rentals[ids[1]].RentalDate = base
	ledger.rentals[ids[2]].RentalDate = base.Add(-2 * time.Hour)

	history, err := svc.History(ctx, 10, "")
	require.NoError(t, err)
	require.Len(t, history, 3)

	assert.Equal(t, []int{ids[1], ids[0], ids[2]}, []int{history[0].ID, history[1].ID, history[2].ID})
	for i := 1; i < len(history); i++ {
		assert.False(t, history[i].RentalDate.After(history[i-1].RentalDate))
	}
}

func TestTruncateTitleKeepsRunesIntact(t *testing.T) {
	assert.Equal(t, "Heat", truncateTitle("Heat", 40))

	long := strings.Repeat("a", 50)
	assert.Equal(t, strings.Repeat("a", 37)+"...", truncateTitle(long, 40))

	// Multi-byte titles must be cut on rune boundaries, never mid-character.
	accented := strings.Repeat("é", 50)
	got := truncateTitle(accented, 40)
	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, strings.Repeat("é", 37)+"...", got)
}

func TestReceiptPDFRenders(t *testing.T) {
	ledger := newFakeLedger()
	ledger.addFilm(1, 1, 4.50)
	ledger.addCustomer(10)
	svc := newTestRentalService(ledger)
	ctx := context.Background()

	rental, _, err := svc.Rent(ctx, &models.CreateRentalRequest{CustomerID: 10, FilmID: 1}, 1)
	require.NoError(t, err)

	pdf, err := svc.ReceiptPDF(ctx, rental.ID)
	require.NoError(t, err)
	assert.True(t, len(pdf) > 0)
	assert.Equal(t, "%PDF", string(pdf[:4]))
}
