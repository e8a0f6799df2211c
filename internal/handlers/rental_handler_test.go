package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"video-backend/internal/apperrors"
	"video-backend/internal/models"
	"video-backend/internal/services"
)

// rentalDesk is a canned RentalStore: one film with one copy.
type rentalDesk struct {
	rented bool
	rental *models.Rental
}

func (d *rentalDesk) RentFilm(ctx context.Context, customerID, filmID, storeID, staffID int) (*models.Rental, *models.Payment, error) {
	if filmID != 1 {
		return nil, nil, apperrors.NotFound("film", int64(filmID))
	}
	if d.rented {
		return nil, nil, apperrors.Conflict("no copies available", "film", int64(filmID))
	}
	d.rented = true
	d.rental = &models.Rental{ID: 1, InventoryID: 1, CustomerID: customerID, StaffID: staffID, RentalDate: time.Now()}
	payment := &models.Payment{ID: 1, RentalID: 1, CustomerID: customerID, Amount: 2.99}
	return d.rental, payment, nil
}

func (d *rentalDesk) ReturnRental(ctx context.Context, rentalID int) (*models.Rental, int, int, error) {
	if d.rental == nil || d.rental.ID != rentalID {
		return nil, 0, 0, apperrors.NotFound("rental", int64(rentalID))
	}
	if d.rental.ReturnDate != nil {
		return nil, 0, 0, apperrors.InvalidState("film already returned", "rental", int64(rentalID))
	}
	now := time.Now()
	d.rental.ReturnDate = &now
	d.rented = false
	return d.rental, 1, models.DefaultStoreID, nil
}

func (d *rentalDesk) Get(ctx context.Context, rentalID int) (*models.RentalWithFilm, error) {
	if d.rental == nil || d.rental.ID != rentalID {
		return nil, apperrors.NotFound("rental", int64(rentalID))
	}
	return &models.RentalWithFilm{Rental: *d.rental, FilmID: 1, Title: "Some Film", RentalRate: 2.99}, nil
}

func (d *rentalDesk) Receipt(ctx context.Context, rentalID int) (*models.RentalReceipt, error) {
	if d.rental == nil || d.rental.ID != rentalID {
		return nil, apperrors.NotFound("rental", int64(rentalID))
	}
	return &models.RentalReceipt{Rental: *d.rental, FilmTitle: "Some Film", Amount: 2.99, PaymentID: 1}, nil
}

func (d *rentalDesk) ListByCustomer(ctx context.Context, customerID int, status string) ([]*models.RentalWithFilm, error) {
	if d.rental == nil || d.rental.CustomerID != customerID {
		return nil, nil
	}
	return []*models.RentalWithFilm{{Rental: *d.rental, FilmID: 1}}, nil
}

type oneCustomer struct{}

func (oneCustomer) Get(ctx context.Context, customerID int) (*models.Customer, error) {
	if customerID != 10 {
		return nil, apperrors.NotFound("customer", int64(customerID))
	}
	return &models.Customer{ID: 10, Active: true}, nil
}

type oneCopyCounter struct{ desk *rentalDesk }

func (c oneCopyCounter) CountAvailable(ctx context.Context, filmID, storeID int) (int, error) {
	if c.desk.rented {
		return 0, nil
	}
	return 1, nil
}

func newRentalTestRouter(desk *rentalDesk) *mux.Router {
	svc := services.NewRentalService(desk, oneCustomer{}, oneCopyCounter{desk: desk}, nil)
	h := NewRentalHandler(svc)

	r := mux.NewRouter()
	r.HandleFunc("/api/rentals", h.CreateRental).Methods("POST")
	r.HandleFunc("/api/rentals/{id}", h.GetRental).Methods("GET")
	r.HandleFunc("/api/rentals/{id}/return", h.ReturnRental).Methods("PATCH")
	r.HandleFunc("/api/customers/{id}/rentals", h.CustomerRentals).Methods("GET")
	return r
}

func doJSON(t *testing.T, router *mux.Router, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestCreateRentalEndpoint(t *testing.T) {
	router := newRentalTestRouter(&rentalDesk{})

	rec := doJSON(t, router, "POST", "/api/rentals", models.CreateRentalRequest{CustomerID: 10, FilmID: 1})
	assert.Equal(t, http.StatusCreated, rec.Code)

	var env struct {
		Success bool `json:"success"`
		Data    struct {
			Rental  models.Rental  `json:"rental"`
			Payment models.Payment `json:"payment"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.True(t, env.Success)
	assert.Equal(t, 10, env.Data.Rental.CustomerID)
	assert.Equal(t, 2.99, env.Data.Payment.Amount)
}

func TestCreateRentalConflictIs409(t *testing.T) {
	router := newRentalTestRouter(&rentalDesk{})

	rec := doJSON(t, router, "POST", "/api/rentals", models.CreateRentalRequest{CustomerID: 10, FilmID: 1})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, router, "POST", "/api/rentals", models.CreateRentalRequest{CustomerID: 10, FilmID: 1})
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "no copies available")
}

func TestCreateRentalUnknownFilmIs404(t *testing.T) {
	router := newRentalTestRouter(&rentalDesk{})

	rec := doJSON(t, router, "POST", "/api/rentals", models.CreateRentalRequest{CustomerID: 10, FilmID: 99})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateRentalBadBodyIs400(t *testing.T) {
	router := newRentalTestRouter(&rentalDesk{})

	req := httptest.NewRequest("POST", "/api/rentals", bytes.NewBufferString("{not json"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestReturnRentalEndpoint(t *testing.T) {
	router := newRentalTestRouter(&rentalDesk{})

	rec := doJSON(t, router, "POST", "/api/rentals", models.CreateRentalRequest{CustomerID: 10, FilmID: 1})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, router, "PATCH", "/api/rentals/1/return", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	// second return is rejected
	rec = doJSON(t, router, "PATCH", "/api/rentals/1/return", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "already returned")
}

func TestReturnUnknownRentalIs404(t *testing.T) {
	router := newRentalTestRouter(&rentalDesk{})

	rec := doJSON(t, router, "PATCH", "/api/rentals/42/return", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestReturnNonNumericIDIs400(t *testing.T) {
	router := newRentalTestRouter(&rentalDesk{})

	rec := doJSON(t, router, "PATCH", "/api/rentals/abc/return", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCustomerRentalsEndpoint(t *testing.T) {
	router := newRentalTestRouter(&rentalDesk{})

	rec := doJSON(t, router, "POST", "/api/rentals", models.CreateRentalRequest{CustomerID: 10, FilmID: 1})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, router, "GET", "/api/customers/10/rentals", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, "GET", "/api/customers/404/rentals", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
