package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"chucks-kitchen-api/config"
	"chucks-kitchen-api/middleware"
	"chucks-kitchen-api/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type AddToCartRequest struct {
	FoodID   uint `json:"food_id" binding:"required"`
	Quantity int  `json:"quantity"`
}

// errItemUnavailable marks checkout failures the caller can fix,
// as opposed to storage errors.
var errItemUnavailable = errors.New("item unavailable")

// ViewCart returns the session cart's contents
func ViewCart(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"cart": middleware.GetSession(c).Cart})
}

// AddToCart adds a quantity of a food to the session cart. Quantities
// accumulate; the catalog is only consulted at checkout.
func AddToCart(c *gin.Context) {
	var req AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Quantity < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Quantity must be positive"})
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	sess := middleware.GetSession(c)
	sess.Cart[req.FoodID] += req.Quantity

	c.JSON(http.StatusOK, gin.H{"message": "Item added to cart", "cart": sess.Cart})
}

// RemoveFromCart drops an item from the session cart entirely
func RemoveFromCart(c *gin.Context) {
	foodID, err := strconv.ParseUint(c.Param("food_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid food id"})
		return
	}

	sess := middleware.GetSession(c)
	if _, ok := sess.Cart[uint(foodID)]; !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Item not found in cart"})
		return
	}
	delete(sess.Cart, uint(foodID))

	c.JSON(http.StatusOK, gin.H{"message": "Item removed", "cart": sess.Cart})
}

// Checkout turns the session cart into a durable order. Every item is
// validated against the live catalog and its current price frozen into
// the order; the order and its items commit as one unit or not at all.
func Checkout(c *gin.Context) {
	sess := middleware.GetSession(c)
	userID := middleware.GetUserID(c)

	if len(sess.Cart) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Your cart is empty"})
		return
	}

	var order models.Order
	err := config.DB.Transaction(func(tx *gorm.DB) error {
		var items []models.OrderItem
		var total float64

		for foodID, quantity := range sess.Cart {
			var food models.Food
			if err := tx.First(&food, foodID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("item %d is no longer available: %w", foodID, errItemUnavailable)
				}
				return err
			}
			if !food.IsAvailable {
				return fmt.Errorf("'%s' is no longer available: %w", food.Name, errItemUnavailable)
			}

			total += food.Price * float64(quantity)
			items = append(items, models.OrderItem{
				FoodID:    food.ID,
				Quantity:  quantity,
				UnitPrice: food.Price,
			})
		}

		order = models.Order{
			UserID:      userID,
			TotalAmount: total,
			Status:      models.StatusPending,
			Items:       items,
		}
		return tx.Create(&order).Error
	})
	if err != nil {
		if errors.Is(err, errItemUnavailable) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to place order"})
		return
	}

	sess.ClearCart()

	c.JSON(http.StatusCreated, gin.H{
		"message": "Order placed successfully",
		"order":   order,
	})
}
