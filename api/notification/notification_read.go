package notification

import (
	"errors"

	"journal/global"
	"journal/models"
	"journal/models/res"
	"journal/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// NotificationRead 标记通知已读，只有接收人可以操作
func (n *Notification) NotificationRead(c *gin.Context) {
	var req models.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		global.Log.Error("c.ShouldBindUri() failed", zap.String("error", err.Error()))
		res.Error(c, res.InvalidParameter, "请求参数格式错误")
		return
	}

	_claims, _ := c.Get("claims")
	claims := _claims.(*utils.CustomClaims)

	err := models.NotificationMarkRead(req.ID, claims.UserID, claims.Role)
	if err != nil {
		if errors.Is(err, models.ErrNotRecipient) {
			res.Error(c, res.PermissionDenied, "只有接收人可以标记已读")
			return
		}
		global.Log.Error("models.NotificationMarkRead() failed", zap.String("error", err.Error()))
		res.Error(c, res.ServerError, "标记已读失败")
		return
	}
	global.Log.Info("通知标记已读成功", zap.String("method", c.Request.Method), zap.String("path", c.Request.URL.Path))
	res.Success(c, nil)
}
