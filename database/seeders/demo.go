package seeders

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/treasuryofflair/flairmarket/app/models"
	"github.com/treasuryofflair/flairmarket/pkg/auth"
)

func init() {
	Register("artworks", SeedArtworks)
	Register("demo_sellers", SeedDemoSellers)
}

// SeedArtworks loads a small browsable catalogue so the search endpoint
// returns something on a fresh install. Idempotent on title+artist.
func SeedArtworks(db *gorm.DB) error {
	artworks := []models.Artwork{
		{Category: "painting", Title: "Monsoon Over the Ghats", Artist: "Leela Raghavan", Description: "Oil on canvas, dusk light over terraced hills.", ImagePath: "seed/monsoon-ghats.jpg", Price: 420, Availability: "available", Popularity: 87},
		{Category: "painting", Title: "Brass and Marigold", Artist: "Leela Raghavan", Description: "Still life with temple brass and fresh marigolds.", ImagePath: "seed/brass-marigold.jpg", Price: 310, Availability: "available", Popularity: 64},
		{Category: "sculpture", Title: "Folded Crane No. 4", Artist: "Tomas Eriksen", Description: "Welded steel crane, brushed finish.", ImagePath: "seed/folded-crane.jpg", Price: 1150, Availability: "sold", Popularity: 91},
		{Category: "print", Title: "Night Market Series I", Artist: "Ana Beltran", Description: "Limited screen print, edition of 40.", ImagePath: "seed/night-market-1.jpg", Price: 95, Availability: "available", Popularity: 52},
		{Category: "print", Title: "Night Market Series II", Artist: "Ana Beltran", Description: "Limited screen print, edition of 40.", ImagePath: "seed/night-market-2.jpg", Price: 95, Availability: "available", Popularity: 45},
		{Category: "textile", Title: "Indigo Field Study", Artist: "Mei Watanabe", Description: "Hand-dyed shibori panel.", ImagePath: "seed/indigo-field.jpg", Price: 260, Availability: "available", Popularity: 73},
	}

	for _, a := range artworks {
		if err := db.Where("title = ? AND artist = ?", a.Title, a.Artist).
			FirstOrCreate(&a).Error; err != nil {
			return err
		}
	}
	return nil
}

// SeedDemoSellers creates one demo seller with a few listings. Idempotent
// on the seller email.
func SeedDemoSellers(db *gorm.DB) error {
	var existing models.Seller
	if err := db.Where("email = ?", "demo@flairmarket.test").First(&existing).Error; err == nil {
		return nil
	}

	hash, err := auth.HashPassword("demo-password")
	if err != nil {
		return err
	}

	seller := models.Seller{
		Name:         "Demo Seller",
		Email:        "demo@flairmarket.test",
		PasswordHash: hash,
	}
	if err := db.Create(&seller).Error; err != nil {
		return err
	}

	products := []models.Product{
		{SellerID: &seller.ID, UUID: uuid.NewString(), Title: "Brass Peacock Lamp", Category: "decor", Price: 149.5, Status: models.StatusActive},
		{SellerID: &seller.ID, UUID: uuid.NewString(), Title: "Hand-carved Chess Set", Category: "games", Price: 89, Status: models.StatusActive},
		{SellerID: &seller.ID, UUID: uuid.NewString(), Title: "Vintage Film Camera", Category: "electronics", Price: 230, Status: models.StatusSold},
		{SellerID: &seller.ID, UUID: uuid.NewString(), Title: "Unlisted Sketchbook", Category: models.DefaultCategory, Price: 25, Status: models.StatusDraft},
	}
	for i := range products {
		if err := db.Create(&products[i]).Error; err != nil {
			return err
		}
	}
	return nil
}
