package controllers

import (
	"net/http"

	"github.com/treasuryofflair/flairmarket/app/services"
	"github.com/treasuryofflair/flairmarket/pkg/response"
)

// ArtworkController serves the catalogue full-text search.
type ArtworkController struct {
	service *services.ArtworkService
}

func NewArtworkController(service *services.ArtworkService) *ArtworkController {
	return &ArtworkController{service: service}
}

// Search handles GET /api/search?q=.
func (c *ArtworkController) Search(w http.ResponseWriter, r *http.Request) {
	artworks, err := c.service.Search(r.URL.Query().Get("q"))
	if err != nil {
		response.Error(w, r, err)
		return
	}

	response.JSON(w, artworks)
}
