package users

import "time"

// Roles a profile can hold.
const (
	RoleUser  = "user"
	RoleHost  = "host"
	RoleAdmin = "admin"
)

// Profile extends a platform identity with marketplace fields. ID is the
// identity id, so there is exactly one profile per identity.
type Profile struct {
	ID               string    `gorm:"type:uuid;primaryKey" json:"id"`
	Email            string    `gorm:"index" json:"email"`
	FullName         string    `json:"full_name"`
	Phone            string    `json:"phone"`
	Address          string    `json:"address"`
	City             string    `json:"city"`
	PostalCode       string    `json:"postal_code"`
	Country          string    `json:"country"`
	DateOfBirth      string    `gorm:"column:date_of_birth" json:"date_of_birth"`
	Role             string    `gorm:"type:varchar(20);not null" json:"role"`
	ProfileCompleted bool      `gorm:"column:profile_completed;not null" json:"profile_completed"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// IsAdmin reports whether the profile carries the admin role.
func (p *Profile) IsAdmin() bool {
	return p != nil && p.Role == RoleAdmin
}

// NewProfile is the row created lazily on the first session of an identity.
func NewProfile(id, email string) *Profile {
	return &Profile{
		ID:               id,
		Email:            email,
		Role:             RoleUser,
		ProfileCompleted: false,
	}
}
