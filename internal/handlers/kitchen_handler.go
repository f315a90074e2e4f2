package handlers

import (
	"net/http"

	"restaurant_orders/internal/services"

	"github.com/gin-gonic/gin"
)

// KitchenHandler is the kitchen screen: the pending queue, the polling
// snapshot and the attend/fulfill/close transitions.
type KitchenHandler struct {
	kitchenService services.KitchenService
	orderService   services.OrderService
}

func NewKitchenHandler(kitchenService services.KitchenService, orderService services.OrderService) *KitchenHandler {
	return &KitchenHandler{
		kitchenService: kitchenService,
		orderService:   orderService,
	}
}

// List handles GET /api/kitchen/orders.
func (h *KitchenHandler) List(c *gin.Context) {
	orders, err := h.kitchenService.ListPending()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

// Poll handles GET /api/kitchen/orders/poll, the lightweight refresh payload.
func (h *KitchenHandler) Poll(c *gin.Context) {
	snapshot, err := h.kitchenService.Snapshot()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, snapshot)
}

// AttendOrder handles POST /api/kitchen/orders/:order_id/attend.
func (h *KitchenHandler) AttendOrder(c *gin.Context) {
	orderID, ok := paramID(c, "order_id")
	if !ok {
		return
	}
	if err := h.kitchenService.MarkOrderAttended(orderID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "attended"})
}

// AttendLine handles POST /api/kitchen/lines/:line_id/attend.
func (h *KitchenHandler) AttendLine(c *gin.Context) {
	lineID, ok := paramID(c, "line_id")
	if !ok {
		return
	}
	if err := h.kitchenService.MarkLineAttended(lineID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "attended"})
}

// FulfillLine handles POST /api/kitchen/lines/:line_id/fulfill.
func (h *KitchenHandler) FulfillLine(c *gin.Context) {
	lineID, ok := paramID(c, "line_id")
	if !ok {
		return
	}
	if err := h.kitchenService.FulfillLine(lineID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "fulfilled"})
}

// Close handles POST /api/kitchen/orders/:order_id/close and returns the
// receipt payload.
func (h *KitchenHandler) Close(c *gin.Context) {
	orderID, ok := paramID(c, "order_id")
	if !ok {
		return
	}
	receipt, err := h.orderService.Close(orderID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, receipt)
}
