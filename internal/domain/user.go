package domain

import "time"

type Role string

const (
	RoleGeneral   Role = "General"
	RoleArchitect Role = "Architect"
	RoleDealer    Role = "Dealer"
	RoleManager   Role = "Manager"
	RoleAdmin     Role = "Admin"
)

// IsStaff reports whether the role may act on orders owned by other users.
func (r Role) IsStaff() bool {
	return r == RoleManager || r == RoleAdmin
}

// Requester identifies the authenticated caller of a service operation.
type Requester struct {
	UserID uint
	Role   Role
}

type User struct {
	ID           uint   `json:"id" gorm:"primaryKey;autoIncrement"`
	Name         string `json:"name" gorm:"not null"`
	Email        string `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash string `json:"-" gorm:"not null"`
	Phone        string `json:"phone"`
	Role         Role   `json:"role" gorm:"type:varchar(20);default:'General'"`

	// Profile address, used by the address resolver when no explicit
	// shipping address is requested.
	Street     string `json:"street"`
	City       string `json:"city"`
	State      string `json:"state"`
	Country    string `json:"country"`
	PostalCode string `json:"postalCode"`

	CreatedAt time.Time `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updatedAt" gorm:"autoUpdateTime"`
}

// HasCompleteAddress reports whether every profile address field needed for
// a delivery snapshot is populated.
func (u *User) HasCompleteAddress() bool {
	return u.Street != "" && u.City != "" && u.State != "" && u.Country != "" && u.PostalCode != ""
}
