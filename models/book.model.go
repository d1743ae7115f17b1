package models

import "gorm.io/gorm"

// Book represents a study book sold on the platform
type Book struct {
	gorm.Model
	Title       string `json:"title"`
	Author      string `json:"author"`
	Description string `json:"description"`
	Price       uint   `json:"price" gorm:"default:0"` // price in INR
	CoverURL    string `json:"cover_url"`
	IsPublished bool   `json:"is_published" gorm:"default:false"`
	IsDeleted   bool   `gorm:"default:false"`
}
