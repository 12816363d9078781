package gin

import (
	"strconv"
	"time"

	"github.com/RigelNana/arktube/pkg/metrics"
	"github.com/gin-gonic/gin"
)

// PrometheusMiddleware 为 Gin 添加 Prometheus 指标
func PrometheusMiddleware(serviceName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		// 未匹配的路由合并为一个标签，避免标签基数膨胀
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		statusCode := strconv.Itoa(c.Writer.Status())
		metrics.RecordRequest(serviceName, c.Request.Method+" "+route, statusCode, time.Since(start))
	}
}
