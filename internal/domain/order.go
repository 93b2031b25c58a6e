package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	StatusPending    OrderStatus = "Pending"
	StatusProcessing OrderStatus = "Processing"
	StatusShipped    OrderStatus = "Shipped"
	StatusCompleted  OrderStatus = "Completed"
	StatusCancelled  OrderStatus = "Cancelled"
)

type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "Pending"
	PaymentStatusPaid     PaymentStatus = "Paid"
	PaymentStatusFailed   PaymentStatus = "Failed"
	PaymentStatusRefunded PaymentStatus = "Refunded"
)

type PaymentMethod string

const (
	PaymentGateway      PaymentMethod = "Gateway"
	PaymentUPI          PaymentMethod = "UPI"
	PaymentBankTransfer PaymentMethod = "BankTransfer"
	PaymentCOD          PaymentMethod = "COD"
)

// NormalizePaymentMethod folds common aliases into the canonical method set.
// Unrecognized values pass through unchanged instead of erroring.
func NormalizePaymentMethod(raw string) PaymentMethod {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "gateway":
		return PaymentGateway
	case "upi", "gpay", "phonepe", "paytm", "bhim", "qr":
		return PaymentUPI
	case "bank", "banktransfer", "bank_transfer", "neft", "imps", "rtgs":
		return PaymentBankTransfer
	case "cod", "cash":
		return PaymentCOD
	default:
		return PaymentMethod(raw)
	}
}

// CanTransitionTo reports whether the forward lifecycle permits moving to
// next. Cancellation is handled separately because its permission depends on
// the requester's role.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	switch s {
	case StatusPending:
		return next == StatusProcessing || next == StatusCancelled
	case StatusProcessing:
		return next == StatusShipped || next == StatusCancelled
	case StatusShipped:
		return next == StatusCompleted || next == StatusCancelled
	default:
		return false
	}
}

type Order struct {
	ID          uint   `json:"id" gorm:"primaryKey;autoIncrement"`
	OrderNumber string `json:"orderNumber" gorm:"uniqueIndex;not null"`
	UserID      uint   `json:"userId" gorm:"not null;index"`

	Status        OrderStatus   `json:"status" gorm:"type:varchar(20);default:'Pending'"`
	PaymentStatus PaymentStatus `json:"paymentStatus" gorm:"type:varchar(20);default:'Pending'"`
	PaymentMethod PaymentMethod `json:"paymentMethod" gorm:"type:varchar(40)"`

	Subtotal   decimal.Decimal `json:"subtotal" gorm:"type:decimal(12,2);not null"`
	GSTTotal   decimal.Decimal `json:"gstTotal" gorm:"type:decimal(12,2);not null"`
	GrandTotal decimal.Decimal `json:"total" gorm:"type:decimal(12,2);not null"`

	DeliveryAddress AddressSnapshot `json:"deliveryAddress" gorm:"type:json"`

	Notes                string     `json:"notes,omitempty"`
	ExpectedDeliveryDate *time.Time `json:"expectedDeliveryDate,omitempty"`

	Items []OrderItem `json:"orderItems" gorm:"foreignKey:OrderID"`

	CreatedAt time.Time `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updatedAt" gorm:"autoUpdateTime"`
}

// CancellableBy applies the cancellation policy: staff may cancel any order
// that is not already cancelled, non-staff only their own pending orders.
// Ownership is checked by the caller.
func (o *Order) CancellableBy(role Role) bool {
	if o.Status == StatusCancelled {
		return false
	}
	if role.IsStaff() {
		return true
	}
	return o.Status == StatusPending
}

// OrderItem captures unit price, subtotal, GST and total at creation time.
// Later product price changes never alter persisted amounts.
type OrderItem struct {
	ID        uint `json:"id" gorm:"primaryKey;autoIncrement"`
	OrderID   uint `json:"orderId" gorm:"not null;index"`
	ProductID uint `json:"productId" gorm:"not null;index"`

	ProductName  string `json:"productName"`
	ProductImage string `json:"productImage,omitempty"`

	Quantity  int             `json:"quantity" gorm:"not null"`
	UnitPrice decimal.Decimal `json:"price" gorm:"type:decimal(10,2);not null"`
	Subtotal  decimal.Decimal `json:"subtotal" gorm:"type:decimal(12,2);not null"`
	GSTAmount decimal.Decimal `json:"gstAmount" gorm:"type:decimal(12,2);not null"`
	Total     decimal.Decimal `json:"total" gorm:"type:decimal(12,2);not null"`

	CreatedAt time.Time `json:"createdAt" gorm:"autoCreateTime"`
}
