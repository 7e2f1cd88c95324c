package controllers

import (
	"errors"
	"log"
	"net/http"

	"github.com/KanayaActa/IceBreaker/config"
	"github.com/KanayaActa/IceBreaker/db"

	"github.com/gin-gonic/gin"
)

var cfg *config.Config

// Init wires the loaded configuration into the controllers
func Init(c *config.Config) {
	cfg = c
}

// respondError maps the storage error taxonomy onto HTTP statuses.
func respondError(c *gin.Context, err error) {
	if errors.Is(err, db.ErrInvalidID) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	var notFound *db.NotFoundError
	if errors.As(err, &notFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": notFound.Error()})
		return
	}

	var validation *db.ValidationError
	if errors.As(err, &validation) {
		c.JSON(http.StatusBadRequest, gin.H{"error": validation.Error()})
		return
	}

	log.Printf("Internal error: %v", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
}
