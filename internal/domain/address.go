package domain

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// ShippingAddress is owned by exactly one user. At most one record per user
// carries IsDefault=true; the address service enforces this, not the schema.
type ShippingAddress struct {
	ID         uint   `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID     uint   `json:"userId" gorm:"not null;index"`
	Name       string `json:"name" gorm:"not null"`
	Phone      string `json:"phone" gorm:"not null"`
	Street     string `json:"street" gorm:"not null"`
	City       string `json:"city" gorm:"not null"`
	State      string `json:"state" gorm:"not null"`
	Country    string `json:"country" gorm:"not null"`
	PostalCode string `json:"postalCode" gorm:"not null"`
	Label      string `json:"label"`
	IsDefault  bool   `json:"isDefault" gorm:"default:false"`

	CreatedAt time.Time `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updatedAt" gorm:"autoUpdateTime"`
}

// Address snapshot type discriminants.
const (
	AddressTypeNew      = "new"
	AddressTypeShipping = "shipping"
	AddressTypeDefault  = "default"
)

// Address snapshot provenance values.
const (
	AddressSourceNew      = "new_address"
	AddressSourceShipping = "shipping_address"
	AddressSourceProfile  = "user_profile"
	AddressSourceFallback = "address_fallback"
)

// AddressSnapshot is the denormalized copy of the address chosen at
// order-creation time. It is embedded in the order as a JSON column, so
// later edits or deletes of the live address record never touch historical
// orders.
type AddressSnapshot struct {
	Type       string `json:"type"`
	Source     string `json:"source"`
	Name       string `json:"name"`
	Phone      string `json:"phone"`
	Street     string `json:"street"`
	City       string `json:"city"`
	State      string `json:"state"`
	Country    string `json:"country"`
	PostalCode string `json:"postalCode"`
}

func (s AddressSnapshot) Value() (driver.Value, error) {
	return json.Marshal(s)
}

func (s *AddressSnapshot) Scan(value interface{}) error {
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, s)
	case string:
		return json.Unmarshal([]byte(v), s)
	case nil:
		*s = AddressSnapshot{}
		return nil
	default:
		return errors.New("address snapshot: unsupported column type")
	}
}

// SnapshotOf copies a shipping address record into an immutable snapshot.
func SnapshotOf(a *ShippingAddress, snapshotType, source string) AddressSnapshot {
	return AddressSnapshot{
		Type:       snapshotType,
		Source:     source,
		Name:       a.Name,
		Phone:      a.Phone,
		Street:     a.Street,
		City:       a.City,
		State:      a.State,
		Country:    a.Country,
		PostalCode: a.PostalCode,
	}
}
