package listings

import "time"

const (
	KindAccommodation = "accommodation"
	KindVehicle       = "vehicle"
)

// Listing is owned by a host. Only active listings count against the plan cap.
type Listing struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	HostID      string    `gorm:"type:uuid;not null;index:idx_listings_host_active,priority:1" json:"host_id"`
	Kind        string    `gorm:"type:varchar(20);not null" json:"kind"`
	Title       string    `gorm:"not null" json:"title"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	PricePerDay float64   `json:"price_per_day"`
	Images      []string  `gorm:"serializer:json" json:"images"`
	Active      bool      `gorm:"not null;index:idx_listings_host_active,priority:2" json:"active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func ValidKind(kind string) bool {
	return kind == KindAccommodation || kind == KindVehicle
}
