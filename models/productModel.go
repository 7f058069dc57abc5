package models

import (
	"encoding/json"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Price is stored in the smallest currency unit (paise).
type Product struct {
	gorm.Model
	Name        string         `json:"name" binding:"required"`
	Description string         `json:"description" binding:"required"`
	Price       int64          `json:"price" binding:"required"`
	Category    string         `json:"category" binding:"required"`
	SubCategory string         `json:"subCategory"`
	Sizes       datatypes.JSON `json:"sizes"`
	Images      datatypes.JSON `json:"images"`
	Bestseller  bool           `json:"bestseller"`
	InStock     bool           `json:"inStock"`
}

// SizeList decodes the stored size set. A product with a malformed or
// empty size column has no purchasable sizes.
func (p *Product) SizeList() []string {
	var sizes []string
	if len(p.Sizes) == 0 {
		return nil
	}
	if err := json.Unmarshal(p.Sizes, &sizes); err != nil {
		return nil
	}
	return sizes
}

func (p *Product) HasSize(size string) bool {
	for _, s := range p.SizeList() {
		if s == size {
			return true
		}
	}
	return false
}

// FirstImage returns the primary image URL for order line snapshots.
func (p *Product) FirstImage() string {
	var images []string
	if len(p.Images) == 0 {
		return ""
	}
	if err := json.Unmarshal(p.Images, &images); err != nil || len(images) == 0 {
		return ""
	}
	return images[0]
}
