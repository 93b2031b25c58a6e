package services

import (
	"context"

	"github.com/Kalaitechtubee/ratan-decor-api/internal/domain"
	"github.com/Kalaitechtubee/ratan-decor-api/internal/repository"
	"github.com/sirupsen/logrus"
)

type NewAddressInput struct {
	Name       string `json:"name"`
	Phone      string `json:"phone"`
	Street     string `json:"street"`
	City       string `json:"city"`
	State      string `json:"state"`
	Country    string `json:"country"`
	PostalCode string `json:"postalCode"`
	Label      string `json:"label"`
	IsDefault  bool   `json:"isDefault"`
}

// AddressRequest carries the caller's address intent for one order.
type AddressRequest struct {
	Type              string
	ShippingAddressID uint
	NewAddress        *NewAddressInput
}

// AddressResolver turns an address intent into a concrete delivery snapshot,
// creating a shipping address record when the intent is "new". It runs
// before the order transaction opens, so a created record survives even if
// the order itself fails; that matches the original system's behavior.
type AddressResolver struct {
	store repository.Store
	log   *logrus.Logger
}

func NewAddressResolver(store repository.Store, log *logrus.Logger) *AddressResolver {
	return &AddressResolver{store: store, log: log}
}

// Resolve evaluates the intent in priority order, first match wins:
// explicit new payload, explicit shipping record, complete profile address,
// newest shipping record as fallback, then failure.
func (r *AddressResolver) Resolve(ctx context.Context, requester domain.Requester, req AddressRequest) (domain.AddressSnapshot, error) {
	if req.Type == domain.AddressTypeNew && req.NewAddress != nil {
		return r.resolveNew(ctx, requester, req.NewAddress)
	}

	if req.Type == domain.AddressTypeShipping || req.ShippingAddressID != 0 {
		return r.resolveShipping(ctx, requester, req.ShippingAddressID)
	}

	return r.resolveDefault(ctx, requester)
}

func missingAddressFields(in *NewAddressInput) []string {
	var missing []string
	for _, f := range []struct {
		name, value string
	}{
		{"name", in.Name},
		{"phone", in.Phone},
		{"street", in.Street},
		{"city", in.City},
		{"state", in.State},
		{"country", in.Country},
		{"postalCode", in.PostalCode},
	} {
		if f.value == "" {
			missing = append(missing, f.name)
		}
	}
	return missing
}

// CreateAddress persists a shipping address for the requester, keeping at
// most one default record per user.
func (r *AddressResolver) CreateAddress(ctx context.Context, requester domain.Requester, in *NewAddressInput) (*domain.ShippingAddress, error) {
	if missing := missingAddressFields(in); len(missing) > 0 {
		return nil, NewValidationError("Missing required address fields", missing...)
	}

	if in.IsDefault {
		if err := r.store.Addresses().ClearDefaultForUser(ctx, requester.UserID); err != nil {
			return nil, err
		}
	}

	addr := &domain.ShippingAddress{
		UserID:     requester.UserID,
		Name:       in.Name,
		Phone:      in.Phone,
		Street:     in.Street,
		City:       in.City,
		State:      in.State,
		Country:    in.Country,
		PostalCode: in.PostalCode,
		Label:      in.Label,
		IsDefault:  in.IsDefault,
	}
	if err := r.store.Addresses().Create(ctx, addr); err != nil {
		return nil, err
	}

	r.log.WithFields(logrus.Fields{"userId": requester.UserID, "addressId": addr.ID}).
		Info("created shipping address")

	return addr, nil
}

// ListAddresses returns the requester's records, newest first.
func (r *AddressResolver) ListAddresses(ctx context.Context, requester domain.Requester) ([]domain.ShippingAddress, error) {
	return r.store.Addresses().FindAllByUser(ctx, requester.UserID)
}

func (r *AddressResolver) resolveNew(ctx context.Context, requester domain.Requester, in *NewAddressInput) (domain.AddressSnapshot, error) {
	addr, err := r.CreateAddress(ctx, requester, in)
	if err != nil {
		return domain.AddressSnapshot{}, err
	}
	return domain.SnapshotOf(addr, domain.AddressTypeNew, domain.AddressSourceNew), nil
}

func (r *AddressResolver) resolveShipping(ctx context.Context, requester domain.Requester, id uint) (domain.AddressSnapshot, error) {
	addr, err := r.store.Addresses().FindByID(ctx, id)
	if err != nil {
		return domain.AddressSnapshot{}, err
	}
	if addr == nil || addr.UserID != requester.UserID {
		return domain.AddressSnapshot{}, NewNotFoundError("shipping address")
	}
	return domain.SnapshotOf(addr, domain.AddressTypeShipping, domain.AddressSourceShipping), nil
}

func (r *AddressResolver) resolveDefault(ctx context.Context, requester domain.Requester) (domain.AddressSnapshot, error) {
	user, err := r.store.Users().FindByID(ctx, requester.UserID)
	if err != nil {
		return domain.AddressSnapshot{}, err
	}
	if user == nil {
		return domain.AddressSnapshot{}, NewNotFoundError("user")
	}

	if user.HasCompleteAddress() {
		return domain.AddressSnapshot{
			Type:       domain.AddressTypeDefault,
			Source:     domain.AddressSourceProfile,
			Name:       user.Name,
			Phone:      user.Phone,
			Street:     user.Street,
			City:       user.City,
			State:      user.State,
			Country:    user.Country,
			PostalCode: user.PostalCode,
		}, nil
	}

	// Profile incomplete: fall back to the most recent shipping record.
	addrs, err := r.store.Addresses().FindAllByUser(ctx, requester.UserID)
	if err != nil {
		return domain.AddressSnapshot{}, err
	}
	if len(addrs) > 0 {
		return domain.SnapshotOf(&addrs[0], domain.AddressTypeShipping, domain.AddressSourceFallback), nil
	}

	return domain.AddressSnapshot{}, NewValidationError("No complete address available.")
}
