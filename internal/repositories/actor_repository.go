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

type ActorRepository struct {
	DB *pgxpool.Pool
}

func NewActorRepository(db *pgxpool.Pool) *ActorRepository {
	return &ActorRepository{DB: db}
}

// List returns one page of actors ordered by last name.
func (r *ActorRepository) List(ctx context.Context, page, limit int) ([]*models.Actor, int, error) {
	var total int
	if err := r.DB.QueryRow(ctx, "SELECT COUNT(*) FROM actors").Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count actors: %w", err)
	}

	rows, err := r.DB.Query(ctx, `
		SELECT actor_id, first_name, last_name, birth_date, created_at
		FROM actors
		ORDER BY last_name, first_name
		LIMIT $1 OFFSET $2
	`, limit, (page-1)*limit)
	if err != nil {
		return nil, 0, fmt.Errorf("list actors: %w", err)
	}
	defer rows.Close()

	actors, err := collectActors(rows)
	if err != nil {
		return nil, 0, err
	}
	return actors, total, nil
}

// TopByRentals ranks actors by how often their films have been rented.
func (r *ActorRepository) TopByRentals(ctx context.Context, limit int) ([]*models.ActorWithRentals, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT a.actor_id, a.first_name, a.last_name, a.birth_date, a.created_at,
		       COUNT(r.rental_id) AS rental_count
		FROM actors a
		LEFT JOIN film_actors fa ON a.actor_id = fa.actor_id
		LEFT JOIN inventory i ON fa.film_id = i.film_id
		LEFT JOIN rentals r ON i.inventory_id = r.inventory_id
		GROUP BY a.actor_id
		ORDER BY rental_count DESC, a.actor_id
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("top actors: %w", err)
	}
	defer rows.Close()

	var actors []*models.ActorWithRentals
	for rows.Next() {
		actor := &models.ActorWithRentals{}
		err := rows.Scan(
			&actor.ID,
			&actor.FirstName,
			&actor.LastName,
			&actor.BirthDate,
			&actor.CreatedAt,
			&actor.TotalRentals,
		)
		if err != nil {
			return nil, err
		}
		actors = append(actors, actor)
	}
	return actors, rows.Err()
}

func (r *ActorRepository) Get(ctx context.Context, actorID int) (*models.Actor, error) {
	actor := &models.Actor{}
	err := r.DB.QueryRow(ctx, `
		SELECT actor_id, first_name, last_name, birth_date, created_at
		FROM actors
		WHERE actor_id = $1
	`, actorID).Scan(&actor.ID, &actor.FirstName, &actor.LastName, &actor.BirthDate, &actor.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("actor", int64(actorID))
		}
		return nil, fmt.Errorf("load actor: %w", err)
	}
	return actor, nil
}

// TopFilms returns the actor's most rented films.
func (r *ActorRepository) TopFilms(ctx context.Context, actorID, limit int) ([]*models.Film, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT `+filmColumns+`, COUNT(r.rental_id) AS rental_count
		FROM films f
		JOIN film_actors fa ON f.film_id = fa.film_id
		LEFT JOIN inventory i ON f.film_id = i.film_id
		LEFT JOIN rentals r ON i.inventory_id = r.inventory_id
		WHERE fa.actor_id = $1
		GROUP BY f.film_id
		ORDER BY rental_count DESC, f.film_id
		LIMIT $2
	`, actorID, limit)
	if err != nil {
		return nil, fmt.Errorf("actor top films: %w", err)
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

// Films returns the actor's full filmography ordered by title.
func (r *ActorRepository) Films(ctx context.Context, actorID int) ([]*models.Film, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT `+filmColumns+`
		FROM films f
		JOIN film_actors fa ON f.film_id = fa.film_id
		WHERE fa.actor_id = $1
		ORDER BY f.title ASC
	`, actorID)
	if err != nil {
		return nil, fmt.Errorf("actor films: %w", err)
	}
	defer rows.Close()

	return collectFilms(rows)
}

func collectActors(rows pgx.Rows) ([]*models.Actor, error) {
	var actors []*models.Actor
	for rows.Next() {
		actor := &models.Actor{}
		err := rows.Scan(&actor.ID, &actor.FirstName, &actor.LastName, &actor.BirthDate, &actor.CreatedAt)
		if err != nil {
			return nil, err
		}
		actors = append(actors, actor)
	}
	return actors, rows.Err()
}
