package handlers

import (
	"net/http"

	"chucks-kitchen-api/config"
	"chucks-kitchen-api/middleware"
	"chucks-kitchen-api/models"
	"chucks-kitchen-api/statemachine"

	"github.com/gin-gonic/gin"
)

type UpdateOrderStatusRequest struct {
	Status models.OrderStatus `json:"status" binding:"required"`
}

// GetMyOrders returns the caller's orders, most recent first
func GetMyOrders(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var orders []models.Order
	config.DB.Preload("Items").
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&orders)

	c.JSON(http.StatusOK, gin.H{"count": len(orders), "orders": orders})
}

// GetOrder returns a single order. Owners see their own; admins see any.
func GetOrder(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var order models.Order
	if err := config.DB.Preload("Items").First(&order, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}
	if order.UserID != userID && !callerIsAdmin(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "This order does not belong to you"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"order": order})
}

// UpdateOrderStatus moves an order along its lifecycle (admin only)
func UpdateOrderStatus(c *gin.Context) {
	var order models.Order
	if err := config.DB.First(&order, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := statemachine.CanTransition(order.Status, req.Status); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	prevStatus := order.Status
	if err := config.DB.Model(&order).Update("status", req.Status).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update order status"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":         "Order status updated",
		"order_id":        order.ID,
		"previous_status": prevStatus,
		"current_status":  req.Status,
	})
}

// CancelOrder lets the owner cancel an order that has not entered
// preparation. Checks run in a fixed precedence: existence, ownership,
// then status.
func CancelOrder(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var order models.Order
	if err := config.DB.First(&order, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}
	if order.UserID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "You can only cancel your own orders"})
		return
	}
	if !statemachine.CanCancel(order.Status) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Cannot cancel an order with status '" + string(order.Status) +
				"'. Only 'pending' or 'confirmed' orders can be cancelled",
		})
		return
	}

	if err := config.DB.Model(&order).Update("status", models.StatusCancelled).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to cancel order"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":       "Order cancelled successfully",
		"order_id":      order.ID,
		"status":        models.StatusCancelled,
		"refund_amount": order.TotalAmount,
	})
}

// AdminListOrders returns all orders with a status summary (admin only)
func AdminListOrders(c *gin.Context) {
	query := config.DB.Preload("Items")
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var orders []models.Order
	query.Order("created_at desc").Find(&orders)

	summary := map[string]int{}
	for _, o := range orders {
		summary[string(o.Status)]++
	}

	c.JSON(http.StatusOK, gin.H{
		"order_summary": summary,
		"count":         len(orders),
		"orders":        orders,
	})
}

// GetStateMachineInfo returns the order lifecycle for documentation
func GetStateMachineInfo(c *gin.Context) {
	transitions := []gin.H{}
	for from, tos := range statemachine.AllTransitions() {
		for _, to := range tos {
			transitions = append(transitions, gin.H{"from": from, "to": to})
		}
	}
	c.JSON(http.StatusOK, gin.H{
		"state_machine":   transitions,
		"terminal_states": []models.OrderStatus{models.StatusCompleted, models.StatusCancelled},
		"description":     "Order Lifecycle State Machine",
	})
}

func callerIsAdmin(c *gin.Context) bool {
	user, err := middleware.CurrentUser(c)
	return err == nil && user.IsAdmin
}
