package models

import "gorm.io/gorm"

type Banner struct {
	gorm.Model
	Image    string `json:"image" binding:"required"`
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
}
