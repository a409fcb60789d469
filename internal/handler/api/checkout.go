package api

import (
	"errors"
	"net/http"

	reqdto "vitrine-engine/internal/handler/dto/request"
	resdto "vitrine-engine/internal/handler/dto/response"
	"vitrine-engine/internal/handler/middleware"
	"vitrine-engine/internal/pkg/errs"
	"vitrine-engine/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

type CheckoutHandler struct {
	checkoutCommands commands.CheckoutCommands
}

func NewCheckoutHandler(checkoutCommands commands.CheckoutCommands) *CheckoutHandler {
	return &CheckoutHandler{checkoutCommands: checkoutCommands}
}

// @Summary Submit order
// @Description Settle the cart into a confirmed order and return the WhatsApp deep link
// @Tags checkout
// @Accept json
// @Produce json
// @Param X-Session-ID header string false "Session id"
// @Param request body reqdto.SubmitOrderRequest true "Customer details"
// @Success 201 {object} resdto.OrderResponse
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Router /checkout [post]
func (h *CheckoutHandler) Submit(c *gin.Context) {
	sessionID, ok := middleware.GetSessionID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	var req reqdto.SubmitOrderRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	result, err := h.checkoutCommands.Submit(c.Request.Context(), sessionID, req.CustomerName, req.CustomerContact)
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrCustomerValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid customer details"})
		case errors.Is(err, errs.ErrEmptyCart):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Cart is empty"})
		case errors.Is(err, errs.ErrSubmissionInProgress):
			c.JSON(http.StatusConflict, gin.H{"error": "Submission already in progress"})
		case errors.Is(err, errs.ErrConcurrentModification):
			c.JSON(http.StatusConflict, gin.H{"error": "Order ledger changed concurrently, try again"})
		case errors.Is(err, errs.ErrLedgerUnavailable):
			c.JSON(http.StatusBadGateway, gin.H{"error": "Order ledger unavailable, your cart was kept"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	c.JSON(http.StatusCreated, resdto.FromSubmitOrderResult(result))
}
