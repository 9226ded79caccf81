package notification

import (
	"journal/global"
	"journal/models"
	"journal/models/res"
	"journal/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

type NotificationListResponse struct {
	List        []models.NotificationModel `json:"list"`
	Total       int64                      `json:"total"`
	UnreadCount int64                      `json:"unread_count"`
}

// NotificationList 当前用户的通知列表，含按角色广播的通知
func (n *Notification) NotificationList(c *gin.Context) {
	var req models.PageInfo
	if err := c.ShouldBindQuery(&req); err != nil {
		global.Log.Error("c.ShouldBindQuery() failed", zap.String("error", err.Error()))
		res.Error(c, res.InvalidParameter, "请求参数格式错误")
		return
	}

	err := utils.Validate(req)
	if err != nil {
		global.Log.Error("utils.Validate() failed", zap.String("error", err.Error()))
		res.Error(c, res.InvalidParameter, utils.FormatValidationError(err.(validator.ValidationErrors)))
		return
	}

	_claims, _ := c.Get("claims")
	claims := _claims.(*utils.CustomClaims)

	list, total, err := models.NotificationListByUser(claims.UserID, claims.Role, req)
	if err != nil {
		global.Log.Error("models.NotificationListByUser() failed", zap.String("error", err.Error()))
		res.Error(c, res.ServerError, "加载失败")
		return
	}

	unread, err := models.NotificationUnreadCount(claims.UserID, claims.Role)
	if err != nil {
		global.Log.Error("models.NotificationUnreadCount() failed", zap.String("error", err.Error()))
		res.Error(c, res.ServerError, "加载失败")
		return
	}

	global.Log.Info("通知列表成功", zap.String("method", c.Request.Method), zap.String("path", c.Request.URL.Path))
	res.Success(c, NotificationListResponse{
		List:        list,
		Total:       total,
		UnreadCount: unread,
	})
}
