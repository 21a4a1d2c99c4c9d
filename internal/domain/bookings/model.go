package bookings

import "time"

const StatusConfirmed = "confirmed"

// Booking is only ever created from a completed deposit checkout.
type Booking struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	ListingID       uint      `gorm:"not null;index" json:"listing_id"`
	UserID          string    `gorm:"type:uuid;not null;index" json:"user_id"`
	StartDate       time.Time `gorm:"type:date;not null" json:"start_date"`
	EndDate         time.Time `gorm:"type:date;not null" json:"end_date"`
	TotalPrice      float64   `gorm:"not null" json:"total_price"`
	DepositPaid     bool      `gorm:"not null" json:"deposit_paid"`
	Status          string    `gorm:"type:varchar(20);not null" json:"status"`
	StripeSessionID string    `gorm:"column:stripe_session_id;index" json:"stripe_session_id,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}
