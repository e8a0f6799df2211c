package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

type InventoryRepository struct {
	DB *pgxpool.Pool
}

func NewInventoryRepository(db *pgxpool.Pool) *InventoryRepository {
	return &InventoryRepository{DB: db}
}

// CountAvailable derives the free copy count for a film at a store:
// copies with no active rental. Never stored, so it cannot drift.
func (r *InventoryRepository) CountAvailable(ctx context.Context, filmID, storeID int) (int, error) {
	var count int
	err := r.DB.QueryRow(ctx, `
		SELECT COUNT(*)
		FROM inventory i
		WHERE i.film_id = $1 AND i.store_id = $2
		  AND NOT EXISTS (
			SELECT 1 FROM rentals r
			WHERE r.inventory_id = i.inventory_id AND r.return_date IS NULL
		  )
	`, filmID, storeID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count available copies: %w", err)
	}
	return count, nil
}

// CopyCounts returns total and currently rented copies of a film across
// all stores, for the film detail view.
func (r *InventoryRepository) CopyCounts(ctx context.Context, filmID int) (total, rented int, err error) {
	err = r.DB.QueryRow(ctx, `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE EXISTS (
			SELECT 1 FROM rentals r
			WHERE r.inventory_id = i.inventory_id AND r.return_date IS NULL
		  ))
		FROM inventory i
		WHERE i.film_id = $1
	`, filmID).Scan(&total, &rented)
	if err != nil {
		return 0, 0, fmt.Errorf("count copies: %w", err)
	}
	return total, rented, nil
}

// AddCopies stocks n new copies of a film at a store.
func (r *InventoryRepository) AddCopies(ctx context.Context, filmID, storeID, n int) error {
	for i := 0; i < n; i++ {
		if _, err := r.DB.Exec(ctx,
			"INSERT INTO inventory (film_id, store_id) VALUES ($1, $2)",
			filmID, storeID,
		); err != nil {
			return fmt.Errorf("add copy: %w", err)
		}
	}
	return nil
}
