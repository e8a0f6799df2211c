package images

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"video-backend/internal/config"
)

func TestCategoryImageFallback(t *testing.T) {
	assert.Equal(t, categoryImages["Horror"], CategoryImage("Horror"))
	assert.Equal(t, defaultImage, CategoryImage("No Such Category"))
	assert.Equal(t, defaultImage, CategoryImage(""))
}

func TestDisabledServiceServesStockImages(t *testing.T) {
	svc := NewService(&config.Config{})

	url := svc.FilmPoster(context.Background(), 7, "Comedy")
	assert.Equal(t, categoryImages["Comedy"], url)

	url = svc.FilmPoster(context.Background(), 7, "Unknown")
	assert.Equal(t, defaultImage, url)
}

func TestActorPhotoIsStable(t *testing.T) {
	svc := NewService(&config.Config{})

	first := svc.ActorPhoto(13)
	second := svc.ActorPhoto(13)
	assert.Equal(t, first, second)
	assert.NotEmpty(t, first)
}
