package models

import (
	"time"

	"gorm.io/gorm"
)

// Coupon discount kinds
const (
	CouponFlat    = "FLAT"
	CouponPercent = "PERCENT"
)

// Coupon represents a discount code applied at checkout
type Coupon struct {
	gorm.Model
	Code         string     `json:"code" gorm:"uniqueIndex;not null"`
	DiscountType string     `json:"discount_type" gorm:"not null"` // FLAT, PERCENT
	Value        uint       `json:"value" gorm:"not null"`         // rupees for FLAT, percent for PERCENT
	IsActive     bool       `json:"is_active" gorm:"default:true"`
	ExpiresAt    *time.Time `json:"expires_at"`
	IsDeleted    bool       `gorm:"default:false"`
}
