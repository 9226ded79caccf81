package middleware

import (
	"net/http"

	"journal/global"
	"journal/models/ctypes"
	"journal/models/res"
	"journal/service/redis_ser"
	"journal/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// validateToken 验证 Token 并将用户信息存储到上下文
// 不调用 c.Next()，放行与否由调用它的中间件决定
func validateToken(c *gin.Context) bool {
	tokenString := c.Request.Header.Get("Authorization")
	// 检查 Token 是否存在并去除 "Bearer " 前缀
	if len(tokenString) < 7 || tokenString[:7] != "Bearer " {
		res.HttpError(c, http.StatusUnauthorized, res.TokenMissing, "缺少token")
		c.Abort()
		return false
	}
	tokenString = tokenString[7:]

	// 检查令牌是否在黑名单中
	isBlacklisted, err := redis_ser.IsTokenBlacklisted(tokenString)
	if err != nil {
		global.Log.Error("检查令牌黑名单失败", zap.Error(err))
		res.HttpError(c, http.StatusInternalServerError, res.ServerError, "服务器错误")
		c.Abort()
		return false
	}
	if isBlacklisted {
		res.HttpError(c, http.StatusUnauthorized, res.TokenInvalid, "token已失效")
		c.Abort()
		return false
	}

	// 解析 Token
	claims, err := utils.ParseToken(tokenString)
	if err != nil {
		if err.Error() == "token已过期" {
			// 尝试从过期的token中解析出用户ID
			expiredClaims, parseErr := utils.ParseExpiredToken(tokenString)
			if parseErr != nil {
				global.Log.Error("utils.ParseExpiredToken() failed", zap.String("error", parseErr.Error()))
				res.HttpError(c, http.StatusUnauthorized, res.TokenRefreshFailed, "token已过期且无法刷新")
				c.Abort()
				return false
			}

			// 使用解析出的用户ID尝试刷新token
			newAccessToken, refreshErr := utils.RefreshAccessToken(tokenString, expiredClaims.UserID)
			if refreshErr != nil || newAccessToken == "" {
				global.Log.Error("utils.RefreshAccessToken() failed", zap.String("error", refreshErr.Error()))
				res.HttpError(c, http.StatusUnauthorized, res.TokenRefreshFailed, "token刷新失败")
				c.Abort()
				return false
			}

			// 刷新成功，将新的 Token 设置到响应头中
			c.Request.Header.Set("Authorization", "Bearer "+newAccessToken)
			c.Set("claims", expiredClaims)
			return true
		}
		res.HttpError(c, http.StatusUnauthorized, res.TokenInvalid, "token无效")
		c.Abort()
		return false
	}

	// 将用户信息保存到上下文中，方便后续使用
	c.Set("claims", claims)
	return true
}

// JwtAuth 中间件，负责验证 Token 并将用户信息存储到上下文
func JwtAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !validateToken(c) {
			return
		}
		c.Next()
	}
}

// JwtRole 中间件，验证 Token 并检查用户角色是否在允许列表中
// 角色检查必须发生在放行之前，不能嵌套调用 JwtAuth 的闭包
func JwtRole(roles ...ctypes.UserRole) gin.HandlerFunc {
	allowed := make(map[ctypes.UserRole]struct{}, len(roles))
	for _, role := range roles {
		allowed[role] = struct{}{}
	}

	return func(c *gin.Context) {
		if !validateToken(c) {
			return
		}

		_claims, _ := c.Get("claims")
		claims := _claims.(*utils.CustomClaims)
		if _, ok := allowed[claims.Role]; !ok {
			res.HttpError(c, http.StatusForbidden, res.PermissionDenied, "权限不足")
			c.Abort()
			return
		}

		c.Next()
	}
}

// JwtAdmin 中间件，只放行管理员
func JwtAdmin() gin.HandlerFunc {
	return JwtRole(ctypes.RoleAdmin)
}

// JwtEditorial 中间件，放行全部编辑部角色
func JwtEditorial() gin.HandlerFunc {
	return JwtRole(
		ctypes.RoleEditor,
		ctypes.RoleEditorInChief,
		ctypes.RoleAssistantEditor,
		ctypes.RoleAdmin,
		ctypes.RolePatron,
		ctypes.RolePatronInChief,
	)
}

// GetClaims 从上下文取出JWT用户信息
func GetClaims(c *gin.Context) *utils.CustomClaims {
	_claims, ok := c.Get("claims")
	if !ok {
		return nil
	}
	claims, _ := _claims.(*utils.CustomClaims)
	return claims
}
