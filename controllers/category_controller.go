package controllers

import (
	"net/http"

	"github.com/KanayaActa/IceBreaker/db"
	"github.com/KanayaActa/IceBreaker/models"
	"github.com/KanayaActa/IceBreaker/structs"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CreateCategory adds a new competitive category
func CreateCategory(c *gin.Context) {
	var request structs.CategoryRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "message": err.Error()})
		return
	}

	category, err := db.CreateCategory(c.Request.Context(), models.Category{
		Name:        request.Name,
		Description: request.Description,
		Color:       request.Color,
		Image:       request.Image,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, category)
}

// GetCategory fetches category details by ID
func GetCategory(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("categoryId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category ID format"})
		return
	}

	category, err := db.GetCategory(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, category)
}

// UpdateCategory applies a partial category update
func UpdateCategory(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("categoryId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category ID format"})
		return
	}

	var request structs.UpdateCategoryRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "message": err.Error()})
		return
	}

	fields := bson.M{}
	if request.Name != nil {
		fields["name"] = *request.Name
	}
	if request.Description != nil {
		fields["description"] = *request.Description
	}
	if request.Color != nil {
		fields["color"] = *request.Color
	}
	if request.Image != nil {
		fields["image"] = *request.Image
	}
	if len(fields) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No fields to update"})
		return
	}

	category, err := db.UpdateCategory(c.Request.Context(), id, fields)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, category)
}

// ListCategories returns every category
func ListCategories(c *gin.Context) {
	categories, err := db.ListCategories(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, categories)
}
