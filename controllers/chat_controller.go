package controllers

import (
	"net/http"

	"github.com/KanayaActa/IceBreaker/services"
	"github.com/KanayaActa/IceBreaker/structs"

	"github.com/gin-gonic/gin"
)

// CreateChat sends a message to the assistant and returns the stored exchange
func CreateChat(c *gin.Context) {
	var request structs.ChatRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "message": err.Error()})
		return
	}

	chat, err := services.Ask(c.Request.Context(), request.UserID, request.Content)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, chat)
}

// GetUserChats returns a user's chat log
func GetUserChats(c *gin.Context) {
	chats, err := services.GetUserChatLog(c.Request.Context(), c.Param("userId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, chats)
}
