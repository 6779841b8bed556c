package models

import "time"

// Product statuses form a closed set; anything else is rejected at the
// boundary.
const (
	StatusActive = "active"
	StatusSold   = "sold"
	StatusDraft  = "draft"
)

// DefaultCategory is the sentinel applied when a listing is created without
// a category.
const DefaultCategory = "uncategorized"

// ValidStatus reports whether s is one of the closed status set.
func ValidStatus(s string) bool {
	return s == StatusActive || s == StatusSold || s == StatusDraft
}

// Product is a marketplace listing.
//
// The numeric ID is internal only; every public URL uses the random UUID so
// listing ids are not guessable. SellerID is nullable: a listing survives
// its seller's removal as an unowned row.
type Product struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	SellerID  *uint     `gorm:"index" json:"-"`
	Seller    *Seller   `gorm:"constraint:OnDelete:SET NULL" json:"-"`
	UUID      string    `gorm:"size:36;uniqueIndex;not null" json:"uuid"`
	Title     string    `gorm:"size:255;not null" json:"title"`
	Category  string    `gorm:"size:100;not null;default:uncategorized" json:"category"`
	Price     float64   `gorm:"not null;default:0" json:"price"`
	Status    string    `gorm:"size:20;not null;default:active" json:"status"`
	Image     *string   `gorm:"size:512" json:"image"`
	Views     uint      `gorm:"not null;default:0" json:"views"`
	Likes     uint      `gorm:"not null;default:0" json:"likes"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Artwork is the full-text-search catalogue row. It predates the product
// table and is served by its own unrestricted search endpoint.
type Artwork struct {
	ID           uint    `gorm:"primaryKey" json:"id"`
	Category     string  `gorm:"size:100" json:"category"`
	Title        string  `gorm:"size:255;not null;index" json:"title"`
	Artist       string  `gorm:"size:150" json:"artist"`
	Description  string  `gorm:"type:text" json:"description"`
	ImagePath    string  `gorm:"size:512" json:"image_path"`
	Price        float64 `gorm:"not null;default:0" json:"price"`
	Availability string  `gorm:"size:50" json:"availability"`
	Popularity   int     `gorm:"not null;default:0" json:"popularity"`
}
