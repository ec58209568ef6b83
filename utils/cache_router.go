package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	CacheNoCache = 0
	CacheCustom  = -1
	CacheMedia   = 30 * 86400 // stored media objects never change, their keys are unique
)

type CacheRouter struct {
	CacheTime int // defaults to CacheNoCache = 0
}

func (cr *CacheRouter) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if cr.CacheTime != CacheCustom {
			c.Header("cache-control", CacheControl(cr.CacheTime))
		}
		c.Next()
	}
}

func CacheControl(seconds int) string {
	if seconds <= CacheNoCache {
		return "no-cache"
	}
	return "public, max-age=" + strconv.Itoa(seconds)
}
