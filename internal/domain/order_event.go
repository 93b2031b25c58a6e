package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderCreatedEvent struct {
	OrderID       uint            `json:"orderId"`
	OrderNumber   string          `json:"orderNumber"`
	UserID        uint            `json:"userId"`
	PaymentMethod PaymentMethod   `json:"paymentMethod"`
	GrandTotal    decimal.Decimal `json:"grandTotal"`
	ItemCount     int             `json:"itemCount"`
	CreatedAt     time.Time       `json:"createdAt"`
}

type OrderCancelledEvent struct {
	OrderID     uint      `json:"orderId"`
	OrderNumber string    `json:"orderNumber"`
	UserID      uint      `json:"userId"`
	CancelledBy uint      `json:"cancelledBy"`
	CancelledAt time.Time `json:"cancelledAt"`
}
