package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"journal/config"
	"journal/global"
	"journal/models/ctypes"
	"journal/models/res"
	"journal/service/redis_ser"
	"journal/utils"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func setupAuthEnv(t *testing.T) {
	t.Helper()
	mr := miniredis.RunT(t)
	global.Redis = redis.NewClient(&redis.Options{Addr: mr.Addr()})
	global.Config = &config.Config{
		Jwt: config.Jwt{Secret: "test-secret", Expires: 7, Issuer: "journal"},
	}
	global.Log = zap.NewNop().Sugar()
	gin.SetMode(gin.TestMode)
}

func issueToken(t *testing.T, role ctypes.UserRole, userID uint) string {
	t.Helper()
	token, err := utils.GenerateAccessToken(utils.PayLoad{
		Account: "tester",
		Role:    role,
		UserID:  userID,
	})
	if err != nil {
		t.Fatalf("生成token失败: %v", err)
	}
	return token
}

func deleteUserRouter(handlerRan *bool) *gin.Engine {
	router := gin.New()
	router.DELETE("/user/:id", JwtAdmin(), func(c *gin.Context) {
		*handlerRan = true
		c.JSON(http.StatusOK, gin.H{"deleted": true})
	})
	return router
}

// 作者角色带合法token访问管理员路由：处理函数一定不能执行，只返回403
func TestJwtRoleRejectsBeforeHandler(t *testing.T) {
	setupAuthEnv(t)

	handlerRan := false
	router := deleteUserRouter(&handlerRan)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/user/9", nil)
	req.Header.Set("Authorization", "Bearer "+issueToken(t, ctypes.RoleAuthor, 7))
	router.ServeHTTP(w, req)

	if handlerRan {
		t.Fatal("角色不符时删除处理函数不应执行")
	}
	if w.Code != http.StatusForbidden {
		t.Errorf("状态码 = %d，期望 403", w.Code)
	}

	// 响应体必须是单个权限不足的错误，不能混入业务响应
	var body res.StandardResponse
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("响应体不是单个JSON对象: %s", w.Body.String())
	}
	if body.Code != res.PermissionDenied {
		t.Errorf("业务码 = %d，期望 %d", body.Code, res.PermissionDenied)
	}
}

// 管理员正常放行
func TestJwtRoleAllowsAdmin(t *testing.T) {
	setupAuthEnv(t)

	handlerRan := false
	router := deleteUserRouter(&handlerRan)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/user/9", nil)
	req.Header.Set("Authorization", "Bearer "+issueToken(t, ctypes.RoleAdmin, 1))
	router.ServeHTTP(w, req)

	if !handlerRan {
		t.Fatal("管理员的请求应当到达处理函数")
	}
	if w.Code != http.StatusOK {
		t.Errorf("状态码 = %d，期望 200", w.Code)
	}
}

// JwtEditorial 放行编辑部角色，拒绝作者与审稿人
func TestJwtEditorialRoleSet(t *testing.T) {
	setupAuthEnv(t)

	tests := []struct {
		role ctypes.UserRole
		want int
	}{
		{ctypes.RoleEditor, http.StatusOK},
		{ctypes.RoleEditorInChief, http.StatusOK},
		{ctypes.RoleAssistantEditor, http.StatusOK},
		{ctypes.RolePatron, http.StatusOK},
		{ctypes.RoleAuthor, http.StatusForbidden},
		{ctypes.RoleReviewer, http.StatusForbidden},
	}

	for _, tt := range tests {
		handlerRan := false
		router := gin.New()
		router.POST("/review", JwtEditorial(), func(c *gin.Context) {
			handlerRan = true
			c.JSON(http.StatusOK, gin.H{})
		})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/review", nil)
		req.Header.Set("Authorization", "Bearer "+issueToken(t, tt.role, 5))
		router.ServeHTTP(w, req)

		if w.Code != tt.want {
			t.Errorf("角色 %s 状态码 = %d，期望 %d", tt.role, w.Code, tt.want)
		}
		if handlerRan != (tt.want == http.StatusOK) {
			t.Errorf("角色 %s 处理函数执行 = %v，与状态码不符", tt.role, handlerRan)
		}
	}
}

// 缺少token直接401
func TestJwtAuthMissingToken(t *testing.T) {
	setupAuthEnv(t)

	router := gin.New()
	router.GET("/me", JwtAuth(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("状态码 = %d，期望 401", w.Code)
	}
}

// 登出拉黑后的token被拒绝
func TestJwtAuthBlacklistedToken(t *testing.T) {
	setupAuthEnv(t)

	token := issueToken(t, ctypes.RoleAdmin, 1)
	if err := redis_ser.InvalidateTokens(1, token); err != nil {
		t.Fatalf("拉黑token失败: %v", err)
	}

	handlerRan := false
	router := deleteUserRouter(&handlerRan)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/user/9", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	if handlerRan {
		t.Fatal("拉黑token的请求不应到达处理函数")
	}
	if w.Code != http.StatusUnauthorized {
		t.Errorf("状态码 = %d，期望 401", w.Code)
	}
}
