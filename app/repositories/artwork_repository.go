package repositories

import (
	"gorm.io/gorm"

	"github.com/treasuryofflair/flairmarket/app/models"
)

// artworkSearchLimit caps the catalogue search result set.
const artworkSearchLimit = 50

// ArtworkRepository handles database operations for Artwork.
type ArtworkRepository struct {
	db *gorm.DB
}

func NewArtworkRepository(db *gorm.DB) *ArtworkRepository {
	return &ArtworkRepository{db: db}
}

// Search runs a case-insensitive substring match over title, artist,
// description, and category, most popular first, capped at 50 rows.
func (r *ArtworkRepository) Search(q string) ([]models.Artwork, error) {
	like := "%" + q + "%"

	var artworks []models.Artwork
	err := r.db.
		Where("LOWER(title) LIKE LOWER(?) OR LOWER(artist) LIKE LOWER(?) OR LOWER(description) LIKE LOWER(?) OR LOWER(category) LIKE LOWER(?)",
			like, like, like, like).
		Order("popularity DESC").
		Limit(artworkSearchLimit).
		Find(&artworks).Error
	if artworks == nil {
		artworks = []models.Artwork{}
	}
	return artworks, err
}

// Create persists a new artwork record. Used by the seeder.
func (r *ArtworkRepository) Create(artwork *models.Artwork) error {
	return r.db.Create(artwork).Error
}
