package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Kalaitechtubee/ratan-decor-api/internal/auth"
	"github.com/Kalaitechtubee/ratan-decor-api/internal/domain"
	"github.com/Kalaitechtubee/ratan-decor-api/internal/services"
	"github.com/gin-gonic/gin"
)

type Handler struct {
	orders     *services.OrderService
	catalog    *services.CatalogService
	carts      *services.CartService
	addresses  *services.AddressResolver
	authSvc    *services.AuthService
	jwtService *auth.JWTService
	production bool
}

func NewHandler(
	orders *services.OrderService,
	catalog *services.CatalogService,
	carts *services.CartService,
	addresses *services.AddressResolver,
	authSvc *services.AuthService,
	jwtService *auth.JWTService,
	production bool,
) *Handler {
	return &Handler{
		orders:     orders,
		catalog:    catalog,
		carts:      carts,
		addresses:  addresses,
		authSvc:    authSvc,
		jwtService: jwtService,
		production: production,
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	api := r.Group("/api")

	api.POST("/auth/register", h.Register)
	api.POST("/auth/login", h.Login)

	api.GET("/products", OptionalAuthMiddleware(h.jwtService), h.ListProducts)
	api.GET("/products/:id", OptionalAuthMiddleware(h.jwtService), h.GetProduct)

	authed := api.Group("", AuthMiddleware(h.jwtService))
	authed.POST("/orders", h.CreateOrder)
	authed.GET("/orders", h.ListOrders)
	authed.GET("/orders/:id", h.GetOrder)
	authed.POST("/orders/:id/cancel", h.CancelOrder)
	authed.PATCH("/orders/:id/status", RequireRole(domain.RoleManager, domain.RoleAdmin), h.UpdateOrderStatus)

	authed.GET("/cart", h.GetCart)
	authed.POST("/cart", h.AddToCart)
	authed.DELETE("/cart/:productId", h.RemoveFromCart)

	authed.GET("/addresses", h.ListAddresses)
	authed.POST("/addresses", h.CreateAddress)
}

// respondError maps service errors to status codes. Validation and
// not-found failures both surface as 400, matching the original API; error
// detail is attached only outside production.
func (h *Handler) respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	var validationErr *services.ValidationError
	var notFoundErr *services.NotFoundError
	if errors.As(err, &validationErr) || errors.As(err, &notFoundErr) {
		status = http.StatusBadRequest
	}

	body := gin.H{"success": false, "message": err.Error()}
	if status == http.StatusInternalServerError {
		if h.production {
			body["message"] = "internal server error"
		} else {
			body["error"] = err.Error()
		}
	}
	c.JSON(status, body)
}

func pathID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid " + name})
		return 0, false
	}
	return uint(id), true
}

func (h *Handler) CreateOrder(c *gin.Context) {
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	requester := requesterFrom(c)
	order, err := h.orders.CreateOrder(c.Request.Context(), requester, services.CreateOrderInput{
		PaymentMethod: req.PaymentMethod,
		Items:         req.Items,
		Address: services.AddressRequest{
			Type:              req.AddressType,
			ShippingAddressID: req.ShippingAddressID,
			NewAddress:        req.NewAddressData,
		},
		Notes:                req.Notes,
		ExpectedDeliveryDate: req.ExpectedDeliveryDate,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":           true,
		"redirectToPayment": order.PaymentMethod == domain.PaymentGateway,
		"order":             orderPayload(order),
	})
}

func (h *Handler) ListOrders(c *gin.Context) {
	orders, err := h.orders.ListOrders(c.Request.Context(), requesterFrom(c))
	if err != nil {
		h.respondError(c, err)
		return
	}

	payloads := make([]gin.H, 0, len(orders))
	for i := range orders {
		payloads = append(payloads, orderPayload(&orders[i]))
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "orders": payloads})
}

func (h *Handler) GetOrder(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	order, err := h.orders.GetOrder(c.Request.Context(), requesterFrom(c), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "order": orderPayload(order)})
}

func (h *Handler) CancelOrder(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	order, err := h.orders.CancelOrder(c.Request.Context(), requesterFrom(c), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "order": orderPayload(order)})
}

func (h *Handler) UpdateOrderStatus(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	order, err := h.orders.UpdateStatus(c.Request.Context(), id, domain.OrderStatus(req.Status))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "order": orderPayload(order)})
}

func (h *Handler) ListProducts(c *gin.Context) {
	views, err := h.catalog.ListProducts(c.Request.Context(), requesterFrom(c).Role)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "products": views})
}

func (h *Handler) GetProduct(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	view, err := h.catalog.GetProduct(c.Request.Context(), id, requesterFrom(c).Role)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "product": view})
}

func (h *Handler) GetCart(c *gin.Context) {
	cart, err := h.carts.GetCart(c.Request.Context(), requesterFrom(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "cart": cart})
}

func (h *Handler) AddToCart(c *gin.Context) {
	var req AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	if err := h.carts.AddItem(c.Request.Context(), requesterFrom(c), req.ProductID, req.Quantity); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true})
}

func (h *Handler) RemoveFromCart(c *gin.Context) {
	id, ok := pathID(c, "productId")
	if !ok {
		return
	}

	if err := h.carts.RemoveItem(c.Request.Context(), requesterFrom(c), id); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *Handler) ListAddresses(c *gin.Context) {
	addrs, err := h.addresses.ListAddresses(c.Request.Context(), requesterFrom(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "addresses": addrs})
}

func (h *Handler) CreateAddress(c *gin.Context) {
	var req services.NewAddressInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	addr, err := h.addresses.CreateAddress(c.Request.Context(), requesterFrom(c), &req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "address": addr})
}

func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	result, err := h.authSvc.Register(c.Request.Context(), services.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Phone:    req.Phone,
		Role:     req.Role,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":   true,
		"token":     result.Token,
		"expiresAt": result.ExpiresAt,
		"user":      result.User,
	})
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	result, err := h.authSvc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "invalid email or password"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"token":     result.Token,
		"expiresAt": result.ExpiresAt,
		"user":      result.User,
	})
}
