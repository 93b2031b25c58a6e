package http

import (
	"time"

	"github.com/Kalaitechtubee/ratan-decor-api/internal/domain"
	"github.com/Kalaitechtubee/ratan-decor-api/internal/services"
	"github.com/gin-gonic/gin"
)

type CreateOrderRequest struct {
	PaymentMethod        string                    `json:"paymentMethod" binding:"required"`
	Items                []services.ItemInput      `json:"items"`
	ShippingAddressID    uint                      `json:"shippingAddressId"`
	AddressType          string                    `json:"addressType"`
	NewAddressData       *services.NewAddressInput `json:"newAddressData"`
	Notes                string                    `json:"notes"`
	ExpectedDeliveryDate *time.Time                `json:"expectedDeliveryDate"`
}

type AddToCartRequest struct {
	ProductID uint `json:"productId" binding:"required"`
	Quantity  int  `json:"quantity"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	Phone    string `json:"phone"`
	Role     string `json:"role"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func orderPayload(o *domain.Order) gin.H {
	return gin.H{
		"id":                   o.ID,
		"orderNumber":          o.OrderNumber,
		"status":               o.Status,
		"paymentStatus":        o.PaymentStatus,
		"paymentMethod":        o.PaymentMethod,
		"subtotal":             o.Subtotal,
		"gstTotal":             o.GSTTotal,
		"total":                o.GrandTotal,
		"itemCount":            len(o.Items),
		"deliveryAddress":      o.DeliveryAddress,
		"orderItems":           o.Items,
		"notes":                o.Notes,
		"expectedDeliveryDate": o.ExpectedDeliveryDate,
		"createdAt":            o.CreatedAt,
		"updatedAt":            o.UpdatedAt,
	}
}
