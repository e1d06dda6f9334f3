package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	resp "go-invoice-admin/internal/transport/http/response"
)

// MaxBodyBytes 限制请求体大小；上传头像上限 5MiB，给表单留足余量
func MaxBodyBytes(n int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, n)
		c.Next()
		if c.Err() != nil && !c.Writer.Written() {
			c.AbortWithStatusJSON(http.StatusOK, resp.Error(resp.CodeBadRequest, "request body too large"))
		}
	}
}
