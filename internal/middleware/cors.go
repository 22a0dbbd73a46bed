package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Cors 跨域支持，预检请求直接放行
func Cors() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization, lang, "+DefaultTraceIDHeader)
		c.Header("Access-Control-Expose-Headers", DefaultTraceIDHeader)

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
