package user

import (
	"journal/global"
	"journal/models"
	"journal/models/res"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// UserDelete 删除用户，管理员专用
func (u *User) UserDelete(c *gin.Context) {
	var req models.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		global.Log.Error("c.ShouldBindUri() failed", zap.String("error", err.Error()))
		res.Error(c, res.InvalidParameter, "请求参数格式错误")
		return
	}

	err := (&models.UserModel{
		MODEL: models.MODEL{
			ID: req.ID,
		},
	}).Delete()
	if err != nil {
		global.Log.Error("user.Delete() failed", zap.String("error", err.Error()))
		res.Error(c, res.ServerError, "删除失败")
		return
	}
	global.Log.Info("用户删除成功", zap.String("method", c.Request.Method), zap.String("path", c.Request.URL.Path))
	res.Success(c, nil)
}
