package services

import (
	"bytes"
	"context"
	"fmt"
	"log"

	"github.com/jung-kurt/gofpdf/v2"

	"video-backend/internal/apperrors"
	"video-backend/internal/cache"
	"video-backend/internal/live"
	"video-backend/internal/metrics"
	"video-backend/internal/models"
	"video-backend/internal/timeutil"
)

// RentalStore is the slice of the rental repository the service needs.
type RentalStore interface {
	RentFilm(ctx context.Context, customerID, filmID, storeID, staffID int) (*models.Rental, *models.Payment, error)
	ReturnRental(ctx context.Context, rentalID int) (*models.Rental, int, int, error)
	Get(ctx context.Context, rentalID int) (*models.RentalWithFilm, error)
	Receipt(ctx context.Context, rentalID int) (*models.RentalReceipt, error)
	ListByCustomer(ctx context.Context, customerID int, status string) ([]*models.RentalWithFilm, error)
}

// CustomerStore is the slice of the customer repository the service needs.
type CustomerStore interface {
	Get(ctx context.Context, customerID int) (*models.Customer, error)
}

// AvailabilityCounter reads the free-copy count after a rent or return so
// the broadcast carries a fresh number.
type AvailabilityCounter interface {
	CountAvailable(ctx context.Context, filmID, storeID int) (int, error)
}

type RentalService struct {
	Rentals   RentalStore
	Customers CustomerStore
	Inventory AvailabilityCounter
	Hub       *live.Hub
}

func NewRentalService(rentals RentalStore, customers CustomerStore, inventory AvailabilityCounter, hub *live.Hub) *RentalService {
	return &RentalService{
		Rentals:   rentals,
		Customers: customers,
		Inventory: inventory,
		Hub:       hub,
	}
}

// Rent checks the customer out with one free copy of the film. The copy
// claim itself is a single transaction in the repository; everything after
// the commit (metrics, cache, broadcast) is best effort.
func (s *RentalService) Rent(ctx context.Context, req *models.CreateRentalRequest, staffID int) (*models.Rental, *models.Payment, error) {
	if req.CustomerID <= 0 {
		return nil, nil, apperrors.Validation("customer_id is required")
	}
	if req.FilmID <= 0 {
		return nil, nil, apperrors.Validation("film_id is required")
	}
	storeID := req.StoreID
	if storeID == 0 {
		storeID = models.DefaultStoreID
	}

	customer, err := s.Customers.Get(ctx, req.CustomerID)
	if err != nil {
		return nil, nil, err
	}
	if !customer.Active {
		return nil, nil, apperrors.InvalidState("customer account is inactive", "customer", int64(customer.ID))
	}

	rental, payment, err := s.Rentals.RentFilm(ctx, req.CustomerID, req.FilmID, storeID, staffID)
	if err != nil {
		if apperrors.IsKind(err, apperrors.KindConflict) {
			metrics.RentalConflictsTotal.Inc()
		}
		return nil, nil, err
	}

	metrics.RentalsTotal.Inc()
	s.afterInventoryChange(ctx, "rented", req.FilmID, storeID)
	return rental, payment, nil
}

// Return closes an active rental. Returning an already-returned rental is
// an error, not a no-op.
func (s *RentalService) Return(ctx context.Context, rentalID int) (*models.Rental, error) {
	rental, filmID, storeID, err := s.Rentals.ReturnRental(ctx, rentalID)
	if err != nil {
		return nil, err
	}

	metrics.ReturnsTotal.Inc()
	s.afterInventoryChange(ctx, "returned", filmID, storeID)
	return rental, nil
}

func (s *RentalService) Get(ctx context.Context, rentalID int) (*models.RentalWithFilm, error) {
	return s.Rentals.Get(ctx, rentalID)
}

// History returns a customer's rentals, optionally filtered by status
// ("active" or "returned").
func (s *RentalService) History(ctx context.Context, customerID int, status string) ([]*models.RentalWithFilm, error) {
	switch status {
	case "", "active", "returned":
	default:
		return nil, apperrors.Validation("status must be 'active' or 'returned'")
	}
	if _, err := s.Customers.Get(ctx, customerID); err != nil {
		return nil, err
	}
	return s.Rentals.ListByCustomer(ctx, customerID, status)
}

func (s *RentalService) Receipt(ctx context.Context, rentalID int) (*models.RentalReceipt, error) {
	return s.Rentals.Receipt(ctx, rentalID)
}

// ReceiptPDF renders the rental receipt as a printable PDF.
func (s *RentalService) ReceiptPDF(ctx context.Context, rentalID int) ([]byte, error) {
	receipt, err := s.Rentals.Receipt(ctx, rentalID)
	if err != nil {
		return nil, err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(190, 10, receipt.StoreName+" - Rental Receipt", "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(190, 6, fmt.Sprintf("Generated: %s", timeutil.FormatStore(timeutil.Now(), timeutil.DisplayLayout)), "", 1, "C", false, 0, "")
	pdf.Ln(5)

	pdf.SetFillColor(240, 240, 240)
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(190, 8, "Rental Details", "1", 1, "L", true, 0, "")

	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(95, 7, fmt.Sprintf("Receipt #: %d", receipt.PaymentID), "LB", 0, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Rental #: %d", receipt.ID), "RB", 1, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Customer: %s", receipt.CustomerName), "LB", 0, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Email: %s", receipt.CustomerEmail), "RB", 1, "L", false, 0, "")
	pdf.Ln(5)

	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(200, 200, 200)
	pdf.CellFormat(95, 7, "Film", "1", 0, "C", true, 0, "")
	pdf.CellFormat(48, 7, "Rented", "1", 0, "C", true, 0, "")
	pdf.CellFormat(47, 7, "Returned", "1", 1, "C", true, 0, "")

	pdf.SetFont("Arial", "", 10)
	title := truncateTitle(receipt.FilmTitle, 40)
	returned := "-"
	if receipt.ReturnDate != nil {
		returned = timeutil.FormatStore(*receipt.ReturnDate, timeutil.DateTimeLayout)
	}
	pdf.CellFormat(95, 6, title, "1", 0, "L", false, 0, "")
	pdf.CellFormat(48, 6, timeutil.FormatStore(receipt.RentalDate, timeutil.DateTimeLayout), "1", 0, "C", false, 0, "")
	pdf.CellFormat(47, 6, returned, "1", 1, "C", false, 0, "")
	pdf.Ln(5)

	pdf.SetFont("Arial", "B", 12)
	pdf.SetFillColor(200, 255, 200)
	pdf.CellFormat(190, 8, fmt.Sprintf("Amount Paid: $%.2f", receipt.Amount), "1", 1, "C", true, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render receipt pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// truncateTitle caps the title at max runes so long names fit their cell
// without splitting a multi-byte character.
func truncateTitle(title string, max int) string {
	runes := []rune(title)
	if len(runes) <= max {
		return title
	}
	return string(runes[:max-3]) + "..."
}

// afterInventoryChange refreshes derived state once a copy changes hands.
// Failures here never fail the rental.
func (s *RentalService) afterInventoryChange(ctx context.Context, event string, filmID, storeID int) {
	cache.InvalidateAvailability(ctx, filmID, storeID)
	cache.InvalidateCatalog(ctx)

	available, err := s.Inventory.CountAvailable(ctx, filmID, storeID)
	if err != nil {
		log.Printf("[Rental] availability count after %s failed: %v", event, err)
		return
	}
	if s.Hub != nil {
		s.Hub.Publish(live.AvailabilityEvent{
			Type:            event,
			FilmID:          filmID,
			StoreID:         storeID,
			AvailableCopies: available,
			Timestamp:       timeutil.Now(),
		})
	}
}
