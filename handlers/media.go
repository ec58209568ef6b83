package handlers

import (
	"net/http"
	"strings"

	"github.com/Franklin-pro/simpo-planet-studio-bn/storage"
	"github.com/Franklin-pro/simpo-planet-studio-bn/utils"

	"github.com/gin-gonic/gin"
)

// MediaServe returns objects of a disk store, other stores serve their own URLs
func MediaServe(disk *storage.DiskStorage) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := strings.TrimPrefix(c.Param("path"), "/")
		if key == "" {
			c.Status(http.StatusNotFound)
			return
		}
		c.Header("cache-control", utils.CacheControl(utils.CacheMedia))
		disk.Serve(key, c.Request, c.Writer)
	}
}
