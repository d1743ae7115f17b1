package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Purchase resource types
const (
	ResourceCourse     = "COURSE"
	ResourceBook       = "BOOK"
	ResourceTestSeries = "TEST_SERIES"
)

// Purchase payment states
const (
	PaymentPending  = "PENDING"
	PaymentPaid     = "PAID"
	PaymentFailed   = "FAILED"
	PaymentRefunded = "REFUNDED"
)

// Purchase represents one grant of access by one user to one resource.
// ResourceRef holds either a managed record key or a tier shorthand code
// for test series; both forms coexist in old rows, so every query must
// search both (see testseries.CatalogKey.Alternates).
//
// A user may hold several PAID purchases for the same series (incremental
// subject purchases); entitlement is computed from the union of them.
type Purchase struct {
	gorm.Model
	UserID            uint           `json:"user_id" gorm:"index;not null"`
	ResourceType      string         `json:"resource_type" gorm:"index;not null"` // COURSE, BOOK, TEST_SERIES
	ResourceRef       string         `json:"resource_ref" gorm:"index;not null"`
	PaymentStatus     string         `json:"payment_status" gorm:"index;default:'PENDING'"` // PENDING, PAID, FAILED, REFUNDED
	GatewayOrderID    string         `json:"gateway_order_id" gorm:"index"`
	GatewayPaymentID  string         `json:"gateway_payment_id"`
	PurchasedSubjects datatypes.JSON `json:"purchased_subjects"` // []string; empty means all subjects
	Amount            uint           `json:"amount" gorm:"default:0"`
	PaidAt            *time.Time     `json:"paid_at"`
	IsDeleted         bool           `gorm:"default:false"`
}
