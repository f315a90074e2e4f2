package handlers

import (
	"net/http"

	"restaurant_orders/internal/services"

	"github.com/gin-gonic/gin"
)

// OrderHandler covers the diner-side surface: open or view the table's
// order, build it line by line and confirm it to the kitchen.
type OrderHandler struct {
	orderService services.OrderService
}

func NewOrderHandler(orderService services.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// GetOrCreate handles GET /api/tables/:table_id/order.
func (h *OrderHandler) GetOrCreate(c *gin.Context) {
	tableID, ok := paramID(c, "table_id")
	if !ok {
		return
	}
	order, err := h.orderService.OpenOrGet(tableID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

// AddLine handles POST /api/tables/:table_id/order/lines.
func (h *OrderHandler) AddLine(c *gin.Context) {
	tableID, ok := paramID(c, "table_id")
	if !ok {
		return
	}

	var req struct {
		ProductID uint   `json:"product_id" binding:"required"`
		Quantity  int    `json:"quantity"`
		Note      string `json:"note"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	order, err := h.orderService.OpenOrGet(tableID)
	if err != nil {
		respondError(c, err)
		return
	}
	order, err = h.orderService.AddLine(order.ID, req.ProductID, req.Quantity, req.Note)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

// RemoveLine handles DELETE /api/orders/lines/:line_id.
func (h *OrderHandler) RemoveLine(c *gin.Context) {
	lineID, ok := paramID(c, "line_id")
	if !ok {
		return
	}
	order, err := h.orderService.RemoveOrDecrementLine(lineID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

// Confirm handles POST /api/orders/:order_id/confirm.
func (h *OrderHandler) Confirm(c *gin.Context) {
	orderID, ok := paramID(c, "order_id")
	if !ok {
		return
	}
	order, err := h.orderService.Confirm(orderID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

// Receipt handles GET /api/orders/:order_id/receipt.
func (h *OrderHandler) Receipt(c *gin.Context) {
	orderID, ok := paramID(c, "order_id")
	if !ok {
		return
	}
	receipt, err := h.orderService.Receipt(orderID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, receipt)
}
