package repositories_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/treasuryofflair/flairmarket/app/models"
	"github.com/treasuryofflair/flairmarket/app/repositories"
)

func seedArtwork(t *testing.T, db *gorm.DB, title, artist, description, category string, popularity int) {
	t.Helper()

	a := models.Artwork{
		Title:       title,
		Artist:      artist,
		Description: description,
		Category:    category,
		Popularity:  popularity,
	}
	require.NoError(t, db.Create(&a).Error)
}

func TestArtworkSearchMatchesAllColumns(t *testing.T) {
	db := newTestDB(t)
	repo := repositories.NewArtworkRepository(db)

	seedArtwork(t, db, "Starry Night", "Vincent", "swirling sky over a village", "painting", 10)
	seedArtwork(t, db, "Untitled", "Nightingale Studio", "abstract forms", "sculpture", 5)
	seedArtwork(t, db, "Harbor at Dawn", "Mori", "boats at night in the harbor", "painting", 3)
	seedArtwork(t, db, "Red Square", "Kass", "geometric study", "nightworks", 1)

	artworks, err := repo.Search("night")
	require.NoError(t, err)
	assert.Len(t, artworks, 4)
}

func TestArtworkSearchCaseInsensitive(t *testing.T) {
	db := newTestDB(t)
	repo := repositories.NewArtworkRepository(db)

	seedArtwork(t, db, "The WAVE", "Hokusai", "great wave off kanagawa", "print", 1)

	for _, q := range []string{"wave", "WAVE", "hokusai", "KANAGAWA"} {
		artworks, err := repo.Search(q)
		require.NoError(t, err)
		assert.Len(t, artworks, 1, "query %q", q)
	}
}

func TestArtworkSearchMostPopularFirst(t *testing.T) {
	db := newTestDB(t)
	repo := repositories.NewArtworkRepository(db)

	seedArtwork(t, db, "Print A", "X", "", "print", 2)
	seedArtwork(t, db, "Print B", "X", "", "print", 9)
	seedArtwork(t, db, "Print C", "X", "", "print", 5)

	artworks, err := repo.Search("print")
	require.NoError(t, err)
	require.Len(t, artworks, 3)
	assert.Equal(t, "Print B", artworks[0].Title)
	assert.Equal(t, "Print C", artworks[1].Title)
	assert.Equal(t, "Print A", artworks[2].Title)
}

func TestArtworkSearchNoMatchIsEmptySlice(t *testing.T) {
	db := newTestDB(t)
	repo := repositories.NewArtworkRepository(db)

	artworks, err := repo.Search("nothing-here")
	require.NoError(t, err)
	assert.NotNil(t, artworks)
	assert.Empty(t, artworks)
}
