package api

import (
	"errors"
	"net/http"
	"strconv"

	"vitrine-engine/internal/domain/cart"
	"vitrine-engine/internal/domain/coupon"
	reqdto "vitrine-engine/internal/handler/dto/request"
	resdto "vitrine-engine/internal/handler/dto/response"
	"vitrine-engine/internal/handler/middleware"
	"vitrine-engine/internal/pkg/errs"
	"vitrine-engine/internal/usecase/commands"
	"vitrine-engine/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CartHandler struct {
	cartCommands commands.CartCommands
	cartQueries  queries.CartQueries
}

func NewCartHandler(cartCommands commands.CartCommands, cartQueries queries.CartQueries) *CartHandler {
	return &CartHandler{
		cartCommands: cartCommands,
		cartQueries:  cartQueries,
	}
}

// @Summary Get cart
// @Description Current cart with subtotal, discount, cashback and total
// @Tags cart
// @Produce json
// @Param X-Session-ID header string false "Session id"
// @Success 200 {object} resdto.CartResponse
// @Router /cart [get]
func (h *CartHandler) GetCart(c *gin.Context) {
	sessionID, ok := middleware.GetSessionID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	view, err := h.cartQueries.GetCart(c.Request.Context(), sessionID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, resdto.FromCartView(view))
}

// @Summary Add item
// @Description Add a product to the cart, capped by the current stock ceiling
// @Tags cart
// @Accept json
// @Produce json
// @Param X-Session-ID header string false "Session id"
// @Param request body reqdto.AddItemRequest true "Item to add"
// @Success 200 {object} resdto.CartResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]any
// @Router /cart/items [post]
func (h *CartHandler) AddItem(c *gin.Context) {
	sessionID, ok := middleware.GetSessionID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	var req reqdto.AddItemRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	view, err := h.cartCommands.AddItem(c.Request.Context(), sessionID, req.ProductID, req.Quantity)
	if err != nil {
		h.renderCartError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromCartView(view))
}

// @Summary Set item quantity
// @Description Set a line item quantity; out-of-range values are clamped to [1, stock]
// @Tags cart
// @Accept json
// @Produce json
// @Param X-Session-ID header string false "Session id"
// @Param id path int true "Product id"
// @Param request body reqdto.SetQuantityRequest true "New quantity"
// @Success 200 {object} resdto.CartResponse
// @Router /cart/items/{id} [patch]
func (h *CartHandler) SetQuantity(c *gin.Context) {
	sessionID, productID, ok := h.sessionAndProduct(c)
	if !ok {
		return
	}

	var req reqdto.SetQuantityRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	view, err := h.cartCommands.SetQuantity(c.Request.Context(), sessionID, productID, *req.Quantity)
	if err != nil {
		h.renderCartError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromCartView(view))
}

// @Summary Remove item
// @Tags cart
// @Produce json
// @Param X-Session-ID header string false "Session id"
// @Param id path int true "Product id"
// @Success 200 {object} resdto.CartResponse
// @Router /cart/items/{id} [delete]
func (h *CartHandler) RemoveItem(c *gin.Context) {
	sessionID, productID, ok := h.sessionAndProduct(c)
	if !ok {
		return
	}

	view, err := h.cartCommands.RemoveItem(c.Request.Context(), sessionID, productID)
	if err != nil {
		h.renderCartError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromCartView(view))
}

// @Summary Clear cart
// @Description Empty the cart and drop any applied coupon
// @Tags cart
// @Produce json
// @Param X-Session-ID header string false "Session id"
// @Success 200 {object} resdto.CartResponse
// @Router /cart [delete]
func (h *CartHandler) ClearCart(c *gin.Context) {
	sessionID, ok := middleware.GetSessionID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	view, err := h.cartCommands.ClearCart(c.Request.Context(), sessionID)
	if err != nil {
		h.renderCartError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromCartView(view))
}

// @Summary Apply coupon
// @Tags cart
// @Accept json
// @Produce json
// @Param X-Session-ID header string false "Session id"
// @Param request body reqdto.ApplyCouponRequest true "Coupon code"
// @Success 200 {object} resdto.CartResponse
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]any
// @Router /cart/coupon [post]
func (h *CartHandler) ApplyCoupon(c *gin.Context) {
	sessionID, ok := middleware.GetSessionID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	var req reqdto.ApplyCouponRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	view, err := h.cartCommands.ApplyCoupon(c.Request.Context(), sessionID, req.Code)
	if err != nil {
		h.renderCartError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromCartView(view))
}

// @Summary Remove coupon
// @Tags cart
// @Produce json
// @Param X-Session-ID header string false "Session id"
// @Success 200 {object} resdto.CartResponse
// @Router /cart/coupon [delete]
func (h *CartHandler) RemoveCoupon(c *gin.Context) {
	sessionID, ok := middleware.GetSessionID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	view, err := h.cartCommands.RemoveCoupon(c.Request.Context(), sessionID)
	if err != nil {
		h.renderCartError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromCartView(view))
}

func (h *CartHandler) sessionAndProduct(c *gin.Context) (uuid.UUID, int64, bool) {
	sessionID, ok := middleware.GetSessionID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return uuid.Nil, 0, false
	}

	productID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || productID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product id"})
		return uuid.Nil, 0, false
	}

	return sessionID, productID, true
}

func (h *CartHandler) renderCartError(c *gin.Context, err error) {
	var (
		stockErr    *cart.InsufficientStockError
		belowMinErr *coupon.BelowMinimumError
	)
	switch {
	case errors.Is(err, errs.ErrProductNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
	case errors.Is(err, errs.ErrInsufficientStock):
		resp := gin.H{"error": "Insufficient stock"}
		if errors.As(err, &stockErr) {
			resp["available"] = stockErr.Available
		}
		c.JSON(http.StatusConflict, resp)
	case errors.Is(err, errs.ErrSubmissionInProgress):
		c.JSON(http.StatusConflict, gin.H{"error": "Submission in progress, cart is locked"})
	case errors.Is(err, errs.ErrCouponNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Coupon not found"})
	case errors.Is(err, errs.ErrCouponBelowMinimum):
		resp := gin.H{"error": "Order total below coupon minimum"}
		if errors.As(err, &belowMinErr) {
			resp["required"] = float64(belowMinErr.RequiredCents) / 100
		}
		c.JSON(http.StatusUnprocessableEntity, resp)
	case errors.Is(err, errs.ErrCouponExpired):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Coupon expired"})
	case errors.Is(err, errs.ErrCouponExhaustedUsage):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Coupon usage limit reached"})
	case errors.Is(err, errs.ErrCatalogUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Catalog temporarily unavailable"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
