package services

import (
	"strings"

	"github.com/treasuryofflair/flairmarket/app/models"
	"github.com/treasuryofflair/flairmarket/app/repositories"
	"github.com/treasuryofflair/flairmarket/pkg/apperr"
)

// ArtworkService implements the catalogue full-text search.
type ArtworkService struct {
	artworks *repositories.ArtworkRepository
}

func NewArtworkService(artworks *repositories.ArtworkRepository) *ArtworkService {
	return &ArtworkService{artworks: artworks}
}

// Search matches q against title, artist, description, and category, most
// popular first. A blank query is rejected rather than dumping the table.
func (s *ArtworkService) Search(q string) ([]models.Artwork, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return nil, apperr.Validation("Search query is required")
	}
	return s.artworks.Search(q)
}
