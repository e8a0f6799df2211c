package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"video-backend/internal/apperrors"
	"video-backend/internal/cache"
	"video-backend/internal/images"
	"video-backend/internal/models"
	"video-backend/internal/repositories"
)

const (
	topFilmsLimit   = 5
	catalogCacheTTL = 5 * time.Minute
)

type FilmService struct {
	FilmRepo      *repositories.FilmRepository
	InventoryRepo *repositories.InventoryRepository
	Images        *images.Service
}

func NewFilmService(filmRepo *repositories.FilmRepository, inventoryRepo *repositories.InventoryRepository, imgs *images.Service) *FilmService {
	return &FilmService{
		FilmRepo:      filmRepo,
		InventoryRepo: inventoryRepo,
		Images:        imgs,
	}
}

// List returns one catalog page, served from cache when possible.
func (s *FilmService) List(ctx context.Context, page, limit int) ([]*models.Film, int, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	key := fmt.Sprintf(cache.FilmListKeyFmt, page, limit)
	var cached struct {
		Films []*models.Film `json:"films"`
		Total int            `json:"total"`
	}
	if data, ok := cache.GetCached(ctx, key); ok {
		if err := json.Unmarshal(data, &cached); err == nil {
			return cached.Films, cached.Total, nil
		}
	}

	films, total, err := s.FilmRepo.List(ctx, page, limit)
	if err != nil {
		return nil, 0, err
	}
	s.attachPosters(ctx, films)

	cached.Films = films
	cached.Total = total
	if data, err := json.Marshal(cached); err == nil {
		cache.SetCached(ctx, key, data, catalogCacheTTL)
	}
	return films, total, nil
}

// Top returns the five most rented films.
func (s *FilmService) Top(ctx context.Context) ([]*models.Film, error) {
	if data, ok := cache.GetCached(ctx, cache.TopFilmsKey); ok {
		var films []*models.Film
		if err := json.Unmarshal(data, &films); err == nil {
			return films, nil
		}
	}

	films, err := s.FilmRepo.TopByRentals(ctx, topFilmsLimit)
	if err != nil {
		return nil, err
	}
	s.attachPosters(ctx, films)

	if data, err := json.Marshal(films); err == nil {
		cache.SetCached(ctx, cache.TopFilmsKey, data, catalogCacheTTL)
	}
	return films, nil
}

// Search looks films up by title, actor name or category.
func (s *FilmService) Search(ctx context.Context, term, searchType string) ([]*models.Film, error) {
	if term == "" {
		return nil, apperrors.Validation("search term is required")
	}
	switch searchType {
	case "", "title", "actor", "category":
	default:
		return nil, apperrors.Validation("type must be 'title', 'actor' or 'category'")
	}

	films, err := s.FilmRepo.Search(ctx, term, searchType)
	if err != nil {
		return nil, err
	}
	s.attachPosters(ctx, films)
	return films, nil
}

// Get returns the full film view: cast, copy counts and poster.
func (s *FilmService) Get(ctx context.Context, filmID int) (*models.FilmDetails, error) {
	details, err := s.FilmRepo.Get(ctx, filmID)
	if err != nil {
		return nil, err
	}

	actors, err := s.FilmRepo.Actors(ctx, filmID)
	if err != nil {
		return nil, err
	}
	for _, a := range actors {
		a.ImageURL = s.Images.ActorPhoto(a.ID)
	}
	details.Actors = actors
	details.ImageURL = s.Images.FilmPoster(ctx, details.ID, details.Category)
	return details, nil
}

// Availability returns the free-copy count for a film at a store.
func (s *FilmService) Availability(ctx context.Context, filmID, storeID int) (int, error) {
	if storeID == 0 {
		storeID = models.DefaultStoreID
	}

	key := cache.AvailabilityKey(filmID, storeID)
	if data, ok := cache.GetCached(ctx, key); ok {
		if n, err := strconv.Atoi(string(data)); err == nil {
			return n, nil
		}
	}

	if _, err := s.FilmRepo.Get(ctx, filmID); err != nil {
		return 0, err
	}
	available, err := s.InventoryRepo.CountAvailable(ctx, filmID, storeID)
	if err != nil {
		return 0, err
	}
	cache.SetCached(ctx, key, []byte(strconv.Itoa(available)), time.Minute)
	return available, nil
}

// Create adds a film and its initial copies.
func (s *FilmService) Create(ctx context.Context, req *models.CreateFilmRequest, copies int) (*models.Film, error) {
	if req.Title == "" {
		return nil, apperrors.Validation("title is required")
	}
	if req.RentalRate < 0 {
		return nil, apperrors.Validation("rental_rate must not be negative")
	}
	if req.Length <= 0 {
		return nil, apperrors.Validation("length must be positive")
	}
	if copies < 1 {
		copies = 1
	}

	film, err := s.FilmRepo.Create(ctx, req, copies, models.DefaultStoreID)
	if err != nil {
		return nil, err
	}
	cache.InvalidateCatalog(ctx)
	film.ImageURL = s.Images.FilmPoster(ctx, film.ID, film.Category)
	return film, nil
}

func (s *FilmService) attachPosters(ctx context.Context, films []*models.Film) {
	for _, f := range films {
		f.ImageURL = s.Images.FilmPoster(ctx, f.ID, f.Category)
	}
}
