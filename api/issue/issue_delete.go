package issue

import (
	"journal/global"
	"journal/models"
	"journal/models/res"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// IssueDelete 删除刊期
func (i *Issue) IssueDelete(c *gin.Context) {
	var req models.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		global.Log.Error("c.ShouldBindUri() failed", zap.String("error", err.Error()))
		res.Error(c, res.InvalidParameter, "请求参数格式错误")
		return
	}

	err := (&models.IssueModel{
		MODEL: models.MODEL{
			ID: req.ID,
		},
	}).Delete()
	if err != nil {
		global.Log.Error("issue.Delete() failed", zap.String("error", err.Error()))
		res.Error(c, res.ServerError, "删除失败")
		return
	}
	global.Log.Info("刊期删除成功", zap.String("method", c.Request.Method), zap.String("path", c.Request.URL.Path))
	res.Success(c, nil)
}
