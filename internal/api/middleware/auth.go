package middleware

import (
	"Naomi/internal/pkg/consts"
	"Naomi/internal/pkg/response"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AuthMiddleware 从网关注入的 X-User-Id 取用户身份
// 凭证校验在网关完成，这里只要求身份存在且格式合法
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetHeader("X-User-Id")
		if userID == "" {
			response.Fail(c, response.Unauthorized, "缺少用户身份")
			c.Abort()
			return
		}
		if _, err := primitive.ObjectIDFromHex(userID); err != nil {
			response.Fail(c, response.Unauthorized, "用户身份格式错误")
			c.Abort()
			return
		}

		c.Set(consts.CtxUserIDKey, userID)
		c.Next()
	}
}

// AuthOptionalMiddleware 身份存在且合法则注入，否则放行
func AuthOptionalMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetHeader("X-User-Id")
		if userID != "" {
			if _, err := primitive.ObjectIDFromHex(userID); err == nil {
				c.Set(consts.CtxUserIDKey, userID)
			}
		}
		c.Next()
	}
}
