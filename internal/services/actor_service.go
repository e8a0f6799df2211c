package services

import (
	"context"
	"encoding/json"

	"video-backend/internal/cache"
	"video-backend/internal/images"
	"video-backend/internal/models"
	"video-backend/internal/repositories"
)

const topActorsLimit = 5

type ActorService struct {
	ActorRepo *repositories.ActorRepository
	Images    *images.Service
}

func NewActorService(actorRepo *repositories.ActorRepository, imgs *images.Service) *ActorService {
	return &ActorService{ActorRepo: actorRepo, Images: imgs}
}

func (s *ActorService) List(ctx context.Context, page, limit int) ([]*models.Actor, int, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	actors, total, err := s.ActorRepo.List(ctx, page, limit)
	if err != nil {
		return nil, 0, err
	}
	for _, a := range actors {
		a.ImageURL = s.Images.ActorPhoto(a.ID)
	}
	return actors, total, nil
}

// Top returns the five actors whose films rent the most.
func (s *ActorService) Top(ctx context.Context) ([]*models.ActorWithRentals, error) {
	if data, ok := cache.GetCached(ctx, cache.TopActorsKey); ok {
		var actors []*models.ActorWithRentals
		if err := json.Unmarshal(data, &actors); err == nil {
			return actors, nil
		}
	}

	actors, err := s.ActorRepo.TopByRentals(ctx, topActorsLimit)
	if err != nil {
		return nil, err
	}
	for _, a := range actors {
		a.ImageURL = s.Images.ActorPhoto(a.ID)
	}

	if data, err := json.Marshal(actors); err == nil {
		cache.SetCached(ctx, cache.TopActorsKey, data, catalogCacheTTL)
	}
	return actors, nil
}

// Get returns the actor with their most rented films.
func (s *ActorService) Get(ctx context.Context, actorID int) (*models.ActorDetails, error) {
	actor, err := s.ActorRepo.Get(ctx, actorID)
	if err != nil {
		return nil, err
	}
	actor.ImageURL = s.Images.ActorPhoto(actor.ID)

	topFilms, err := s.ActorRepo.TopFilms(ctx, actorID, topActorsLimit)
	if err != nil {
		return nil, err
	}
	for _, f := range topFilms {
		f.ImageURL = s.Images.FilmPoster(ctx, f.ID, f.Category)
	}

	return &models.ActorDetails{Actor: *actor, TopFilms: topFilms}, nil
}

// Films returns the actor's full filmography.
func (s *ActorService) Films(ctx context.Context, actorID int) ([]*models.Film, error) {
	if _, err := s.ActorRepo.Get(ctx, actorID); err != nil {
		return nil, err
	}
	films, err := s.ActorRepo.Films(ctx, actorID)
	if err != nil {
		return nil, err
	}
	for _, f := range films {
		f.ImageURL = s.Images.FilmPoster(ctx, f.ID, f.Category)
	}
	return films, nil
}
