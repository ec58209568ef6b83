package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

func Health(c *gin.Context) {
	respondOK(c, http.StatusOK, "server is running", gin.H{
		"status": "ok",
		"time":   time.Now().UTC(),
	})
}
