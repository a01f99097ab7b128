package handlers

import (
	"time"

	"github.com/dmitriina1/AnalogueJira/db"
	"github.com/gin-gonic/gin"
)

func HealthCheck(c *gin.Context) {
	database := "connected"

	if sqlDB, err := db.DB.DB(); err != nil || sqlDB.Ping() != nil {
		database = "disconnected"
	}

	c.JSON(200, gin.H{
		"status":    "ok",
		"database":  database,
		"timestamp": time.Now().Format(time.RFC3339),
	})
}
