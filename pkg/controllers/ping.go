package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

func Ping(c *gin.Context) {
	now := time.Now().Local()
	c.JSON(http.StatusOK, gin.H{"message": "pong", "local_time": now})
}
