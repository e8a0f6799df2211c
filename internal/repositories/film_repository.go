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

type FilmRepository struct {
	DB *pgxpool.Pool
}

func NewFilmRepository(db *pgxpool.Pool) *FilmRepository {
	return &FilmRepository{DB: db}
}

const filmColumns = `f.film_id, f.title, f.description, f.release_year,
	f.rental_rate, f.length, f.rating, f.category, f.created_at`

func scanFilm(row pgx.Row) (*models.Film, error) {
	film := &models.Film{}
	err := row.Scan(
		&film.ID,
		&film.Title,
		&film.Description,
		&film.ReleaseYear,
		&film.RentalRate,
		&film.Length,
		&film.Rating,
		&film.Category,
		&film.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return film, nil
}

// List returns one page of the catalog ordered by title, plus the total
// row count for the pagination block.
func (r *FilmRepository) List(ctx context.Context, page, limit int) ([]*models.Film, int, error) {
	var total int
	if err := r.DB.QueryRow(ctx, "SELECT COUNT(*) FROM films").Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count films: %w", err)
	}

	rows, err := r.DB.Query(ctx,
		"SELECT "+filmColumns+" FROM films f ORDER BY f.title ASC LIMIT $1 OFFSET $2",
		limit, (page-1)*limit,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("list films: %w", err)
	}
	defer rows.Close()

	films, err := collectFilms(rows)
	if err != nil {
		return nil, 0, err
	}
	return films, total, nil
}

// TopByRentals returns the most rented films, counting rental rows through
// the inventory join.
func (r *FilmRepository) TopByRentals(ctx context.Context, limit int) ([]*models.Film, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT `+filmColumns+`, COUNT(r.rental_id) AS rental_count
		FROM films f
		LEFT JOIN inventory i ON f.film_id = i.film_id
		LEFT JOIN rentals r ON i.inventory_id = r.inventory_id
		GROUP BY f.film_id
		ORDER BY rental_count DESC, f.film_id
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("top films: %w", err)
	}
	defer rows.Close()

	var films []*models.Film
	for rows.Next() {
		film := &models.Film{}
		err := rows.Scan(
			&film.ID,
			&film.Title,
			&film.Description,
			&film.ReleaseYear,
			&film.RentalRate,
			&film.Length,
			&film.Rating,
			&film.Category,
			&film.CreatedAt,
			&film.RentalCount,
		)
		if err != nil {
			return nil, err
		}
		films = append(films, film)
	}
	return films, rows.Err()
}

// Search finds films by title, by actor name, or by category.
func (r *FilmRepository) Search(ctx context.Context, term, searchType string) ([]*models.Film, error) {
	pattern := "%" + term + "%"

	var rows pgx.Rows
	var err error
	switch searchType {
	case "actor":
		rows, err = r.DB.Query(ctx, `
			SELECT DISTINCT `+filmColumns+`
			FROM films f
			JOIN film_actors fa ON f.film_id = fa.film_id
			JOIN actors a ON fa.actor_id = a.actor_id
			WHERE a.first_name ILIKE $1 OR a.last_name ILIKE $1
			ORDER BY f.title ASC
		`, pattern)
	case "category":
		rows, err = r.DB.Query(ctx,
			"SELECT "+filmColumns+" FROM films f WHERE f.category ILIKE $1 ORDER BY f.title ASC",
			pattern,
		)
	default:
		rows, err = r.DB.Query(ctx,
			"SELECT "+filmColumns+" FROM films f WHERE f.title ILIKE $1 ORDER BY f.title ASC",
			pattern,
		)
	}
	if err != nil {
		return nil, fmt.Errorf("search films: %w", err)
	}
	defer rows.Close()

	return collectFilms(rows)
}

// Get returns the film with its rental count and derived copy counts, the
// availability figures computed the same way the rent transaction sees them.
func (r *FilmRepository) Get(ctx context.Context, filmID int) (*models.FilmDetails, error) {
	details := &models.FilmDetails{}
	err := r.DB.QueryRow(ctx, `
		SELECT `+filmColumns+`,
		       (SELECT COUNT(*) FROM inventory i
		          JOIN rentals r ON i.inventory_id = r.inventory_id
		          WHERE i.film_id = f.film_id) AS rental_count,
		       (SELECT COUNT(*) FROM inventory i WHERE i.film_id = f.film_id) AS total_copies,
		       (SELECT COUNT(*) FROM inventory i
		          JOIN rentals r ON i.inventory_id = r.inventory_id
		          WHERE i.film_id = f.film_id AND r.return_date IS NULL) AS rented_copies
		FROM films f
		WHERE f.film_id = $1
	`, filmID).Scan(
		&details.ID,
		&details.Title,
		&details.Description,
		&details.ReleaseYear,
		&details.RentalRate,
		&details.Length,
		&details.Rating,
		&details.Category,
		&details.CreatedAt,
		&details.RentalCount,
		&details.TotalCopies,
		&details.RentedCopies,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("film", int64(filmID))
		}
		return nil, fmt.Errorf("load film: %w", err)
	}
	details.AvailableCopies = details.TotalCopies - details.RentedCopies
	return details, nil
}

// Actors returns a film's cast ordered by last name.
func (r *FilmRepository) Actors(ctx context.Context, filmID int) ([]*models.Actor, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT a.actor_id, a.first_name, a.last_name, a.birth_date, a.created_at
		FROM actors a
		JOIN film_actors fa ON a.actor_id = fa.actor_id
		WHERE fa.film_id = $1
		ORDER BY a.last_name, a.first_name
	`, filmID)
	if err != nil {
		return nil, fmt.Errorf("film actors: %w", err)
	}
	defer rows.Close()

	return collectActors(rows)
}

// Create adds a film to the catalog and stocks its initial copies in the
// same transaction.
func (r *FilmRepository) Create(ctx context.Context, req *models.CreateFilmRequest, copies, storeID int) (*models.Film, error) {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin create film: %w", err)
	}
	defer tx.Rollback(ctx)

	film := &models.Film{
		Title:       req.Title,
		Description: req.Description,
		ReleaseYear: req.ReleaseYear,
		RentalRate:  req.RentalRate,
		Length:      req.Length,
		Rating:      req.Rating,
		Category:    req.Category,
	}
	err = tx.QueryRow(ctx, `
		INSERT INTO films (title, description, release_year, rental_rate, length, rating, category)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING film_id, created_at
	`, req.Title, req.Description, req.ReleaseYear, req.RentalRate, req.Length, req.Rating, req.Category,
	).Scan(&film.ID, &film.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert film: %w", err)
	}

	for i := 0; i < copies; i++ {
		if _, err := tx.Exec(ctx,
			"INSERT INTO inventory (film_id, store_id) VALUES ($1, $2)",
			film.ID, storeID,
		); err != nil {
			return nil, fmt.Errorf("stock copy: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit create film: %w", err)
	}
	return film, nil
}

func collectFilms(rows pgx.Rows) ([]*models.Film, error) {
	var films []*models.Film
	for rows.Next() {
		film, err := scanFilm(rows)
		if err != nil {
			return nil, err
		}
		films = append(films, film)
	}
	return films, rows.Err()
}
