package services_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/treasuryofflair/flairmarket/app/models"
	"github.com/treasuryofflair/flairmarket/app/repositories"
	"github.com/treasuryofflair/flairmarket/app/services"
	"github.com/treasuryofflair/flairmarket/pkg/apperr"
)

func TestArtworkSearchRejectsBlankQuery(t *testing.T) {
	svc := services.NewArtworkService(repositories.NewArtworkRepository(newTestDB(t)))

	_, err := svc.Search("   ")
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, apperr.StatusOf(err))
}

func TestArtworkSearchTrimsQuery(t *testing.T) {
	db := newTestDB(t)
	repo := repositories.NewArtworkRepository(db)
	svc := services.NewArtworkService(repo)

	require.NoError(t, repo.Create(&models.Artwork{Title: "Sunset Field", Artist: "Ana", Popularity: 1}))

	artworks, err := svc.Search("  sunset  ")
	require.NoError(t, err)
	assert.Len(t, artworks, 1)
}
