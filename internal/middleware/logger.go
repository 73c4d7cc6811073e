package middleware

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
)

// RequestLog 请求日志中间件
// 记录方法、路径、状态码与耗时；发布链路排障主要靠它对齐时间线
func RequestLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		if raw := c.Request.URL.RawQuery; raw != "" {
			path = path + "?" + raw
		}

		c.Next()

		log.Printf("[HTTP] %s %s -> %d (%v)",
			c.Request.Method, path, c.Writer.Status(), time.Since(start))
	}
}
