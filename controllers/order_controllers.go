package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kmuchiri/jikoni-orders/models"
	"github.com/kmuchiri/jikoni-orders/services"
	"github.com/kmuchiri/jikoni-orders/utils"
)

type OrderController struct {
	Orders *services.OrderSynchronizer
}

func NewOrderController(orders *services.OrderSynchronizer) *OrderController {
	return &OrderController{Orders: orders}
}

// GetAllOrders -> list orders newest first
func (oc *OrderController) GetAllOrders(c *gin.Context) {
	utils.RespondJSON(c, http.StatusOK, "List of orders", oc.Orders.Orders())
}

// UpdateOrderStatus moves an order forward through its lifecycle.
func (oc *OrderController) UpdateOrderStatus(c *gin.Context) {
	id := c.Param("order_id")

	var body struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if !models.ValidStatus(body.Status) {
		utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("unknown status %q", body.Status))
		return
	}

	err := oc.Orders.SetStatus(c.Request.Context(), id, body.Status)
	switch {
	case errors.Is(err, services.ErrUnknownOrder):
		utils.RespondError(c, http.StatusNotFound, err)
	case errors.Is(err, services.ErrInvalidTransition):
		utils.RespondError(c, http.StatusConflict, err)
	case err != nil:
		utils.RespondError(c, http.StatusInternalServerError, err)
	default:
		utils.RespondJSON(c, http.StatusOK, "Order status updated", gin.H{"id": id, "status": body.Status})
	}
}

// DeleteOrder
func (oc *OrderController) DeleteOrder(c *gin.Context) {
	id := c.Param("order_id")
	if err := oc.Orders.Remove(c.Request.Context(), id); err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order deleted", gin.H{"id": id})
}

// ExportOrders streams the current order list as a CSV download.
func (oc *OrderController) ExportOrders(c *gin.Context) {
	filename := fmt.Sprintf("orders-%s.csv", time.Now().Format("2006-01-02"))
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	if err := services.WriteOrdersCSV(c.Writer, oc.Orders.Orders()); err != nil {
		utils.ErrorLogger.Printf("orders export failed: %v", err)
	}
}
