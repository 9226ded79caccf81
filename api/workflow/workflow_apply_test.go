package workflow

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"journal/global"
	"journal/models/ctypes"
	"journal/models/res"
	"journal/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// send_comments 不带意见内容必须在进入工作流之前被拒绝
func TestWorkflowApplySendCommentsRequiresComments(t *testing.T) {
	global.Log = zap.NewNop().Sugar()
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(func(c *gin.Context) {
		claims := &utils.CustomClaims{}
		claims.Account = "editor1"
		claims.Role = ctypes.RoleEditor
		claims.UserID = 300
		c.Set("claims", claims)
	})
	api := new(Workflow)
	router.POST("/article/:id/workflow", api.WorkflowApply)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/article/42/workflow",
		strings.NewReader(`{"action":"send_comments"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	var body res.StandardResponse
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("解析响应失败: %v, body=%s", err, w.Body.String())
	}
	if body.Success {
		t.Fatal("空意见的 send_comments 不应成功")
	}
	if body.Code != res.InvalidParameter {
		t.Errorf("业务码 = %d，期望 %d", body.Code, res.InvalidParameter)
	}
}
