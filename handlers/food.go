package handlers

import (
	"net/http"

	"chucks-kitchen-api/config"
	"chucks-kitchen-api/models"

	"github.com/gin-gonic/gin"
)

type CreateFoodRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" binding:"required,gt=0"`
	CategoryID  uint    `json:"category_id" binding:"required"`
}

// UpdateFoodRequest carries partial updates; nil fields stay untouched.
type UpdateFoodRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	CategoryID  *uint    `json:"category_id"`
	IsAvailable *bool    `json:"is_available"`
}

type CreateCategoryRequest struct {
	Name string `json:"name" binding:"required"`
}

// ListFoods returns menu items, filtered by category when requested.
// Unavailable items are hidden unless ?available=false is passed.
func ListFoods(c *gin.Context) {
	available := c.Query("available") != "false"

	query := config.DB.Where("is_available = ?", available)
	if categoryID := c.Query("category_id"); categoryID != "" {
		query = query.Where("category_id = ?", categoryID)
	}

	var foods []models.Food
	query.Find(&foods)
	c.JSON(http.StatusOK, gin.H{"count": len(foods), "foods": foods})
}

// GetFood returns a single menu item
func GetFood(c *gin.Context) {
	var food models.Food
	if err := config.DB.Preload("Category").First(&food, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Food item not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"food": food})
}

// ListCategories returns all menu categories
func ListCategories(c *gin.Context) {
	var categories []models.Category
	config.DB.Find(&categories)
	c.JSON(http.StatusOK, gin.H{"count": len(categories), "categories": categories})
}

// CreateCategory creates a category by name, or returns the existing
// row. Also backs the startup seeding, so repeated calls must never
// duplicate rows.
func CreateCategory(c *gin.Context) {
	var req CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var category models.Category
	result := config.DB.Where(models.Category{Name: req.Name}).FirstOrCreate(&category)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create category"})
		return
	}

	status := http.StatusOK
	if result.RowsAffected > 0 {
		status = http.StatusCreated
	}
	c.JSON(status, gin.H{"category": category})
}

// CreateFood adds a new item to the menu (admin only)
func CreateFood(c *gin.Context) {
	var req CreateFoodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var category models.Category
	if err := config.DB.First(&category, req.CategoryID).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Category does not exist"})
		return
	}

	food := models.Food{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		CategoryID:  req.CategoryID,
		IsAvailable: true,
	}
	if err := config.DB.Create(&food).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create food item"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"food": food})
}

// UpdateFood applies a partial update to a menu item (admin only).
// Already-placed orders keep their frozen unit prices.
func UpdateFood(c *gin.Context) {
	var food models.Food
	if err := config.DB.First(&food, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Food item not found"})
		return
	}

	var req UpdateFoodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Price != nil && *req.Price <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Price must be positive"})
		return
	}
	if req.CategoryID != nil {
		var category models.Category
		if err := config.DB.First(&category, *req.CategoryID).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Category does not exist"})
			return
		}
		food.CategoryID = *req.CategoryID
	}
	if req.Name != nil {
		food.Name = *req.Name
	}
	if req.Description != nil {
		food.Description = *req.Description
	}
	if req.Price != nil {
		food.Price = *req.Price
	}
	if req.IsAvailable != nil {
		food.IsAvailable = *req.IsAvailable
	}

	if err := config.DB.Save(&food).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update food item"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"food": food})
}
